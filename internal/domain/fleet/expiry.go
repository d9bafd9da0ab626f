package fleet

import (
	"time"

	"github.com/google/uuid"
)

// DocumentKind identifies a dated document carried by a fleet resource
type DocumentKind string

const (
	DocumentInspection DocumentKind = "INSPECTION"
	DocumentInsurance  DocumentKind = "INSURANCE"
	DocumentLicense    DocumentKind = "LICENSE"
)

// ResourceType identifies which fleet entity a document belongs to
type ResourceType string

const (
	ResourceVehicle ResourceType = "VEHICLE"
	ResourceTrailer ResourceType = "TRAILER"
	ResourceDriver  ResourceType = "DRIVER"
)

// ExpiringDocument is one row of the document expiry feed: a dated
// document that runs out within the report window, or already has.
type ExpiringDocument struct {
	ResourceType  ResourceType `json:"resource_type"`
	ResourceID    uuid.UUID    `json:"resource_id"`
	ResourceLabel string       `json:"resource_label"`
	Document      DocumentKind `json:"document"`
	ExpiresAt     time.Time    `json:"expires_at"`
	DaysLeft      int          `json:"days_left"`
}

// IsExpired reports whether the document already ran out
func (d ExpiringDocument) IsExpired() bool {
	return d.DaysLeft < 0
}

// expiryWithin builds the feed row when expiry falls inside the window
// ending withinDays after ref. Zero expiry dates mean the document is
// not tracked and produce no row.
func expiryWithin(ref, expiry time.Time, withinDays int) (int, bool) {
	if expiry.IsZero() {
		return 0, false
	}
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	expiryDay := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	daysLeft := int(expiryDay.Sub(refDay) / (24 * time.Hour))
	if daysLeft > withinDays {
		return 0, false
	}
	return daysLeft, true
}
