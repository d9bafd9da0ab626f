package fleet

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

// DriverStatus represents the duty status of a driver
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnRoute   DriverStatus = "ON_ROUTE"
	DriverStatusOffDuty   DriverStatus = "OFF_DUTY"
)

// IsValid checks if the status is valid
func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverStatusAvailable, DriverStatusOnRoute, DriverStatusOffDuty:
		return true
	}
	return false
}

// Driver represents a driver employed by the tenant
type Driver struct {
	shared.TenantAggregateRoot
	FirstName         string       `gorm:"type:varchar(100);not null"`
	LastName          string       `gorm:"type:varchar(100);not null"`
	Phone             string       `gorm:"type:varchar(50)"`
	LicenseCategories []string     `gorm:"serializer:json"`
	LicenseExpiry     time.Time    `gorm:"index"`
	Status            DriverStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	Notes             string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Driver) TableName() string {
	return "drivers"
}

// NewDriver creates a new driver with required fields
func NewDriver(tenantID uuid.UUID, firstName, lastName string) (*Driver, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Driver first and last name are required")
	}

	driver := &Driver{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FirstName:           firstName,
		LastName:            lastName,
		Status:              DriverStatusAvailable,
	}

	driver.AddDomainEvent(NewDriverCreatedEvent(driver))

	return driver, nil
}

// Update updates the driver's name
func (d *Driver) Update(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return shared.NewDomainError("INVALID_NAME", "Driver first and last name are required")
	}

	d.FirstName = firstName
	d.LastName = lastName
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetContact sets the driver's phone number
func (d *Driver) SetContact(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone format")
	}

	d.Phone = phone
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetLicense sets the driving licence categories and expiry date.
// Categories are uppercased and deduplicated, e.g. "C+E" or "B".
func (d *Driver) SetLicense(categories []string, expiry time.Time) error {
	seen := make(map[string]bool, len(categories))
	normalized := make([]string, 0, len(categories))
	for _, cat := range categories {
		cat = strings.ToUpper(strings.TrimSpace(cat))
		if cat == "" {
			return shared.NewDomainError("INVALID_LICENSE", "Licence category cannot be empty")
		}
		if seen[cat] {
			continue
		}
		seen[cat] = true
		normalized = append(normalized, cat)
	}

	d.LicenseCategories = normalized
	d.LicenseExpiry = expiry
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetStatus changes the duty status
func (d *Driver) SetStatus(status DriverStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid driver status: "+string(status))
	}
	if d.Status == status {
		return nil
	}

	oldStatus := d.Status
	d.Status = status
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDriverStatusChangedEvent(d, oldStatus, status))

	return nil
}

// SetNotes sets the driver's notes
func (d *Driver) SetNotes(notes string) {
	d.Notes = notes
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// FullName returns the driver's display name
func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

// HasCategory returns true if the driver holds the given licence category
func (d *Driver) HasCategory(category string) bool {
	category = strings.ToUpper(strings.TrimSpace(category))
	for _, cat := range d.LicenseCategories {
		if cat == category {
			return true
		}
	}
	return false
}

// IsAvailable returns true if the driver can be assigned to an order
func (d *Driver) IsAvailable() bool {
	return d.Status == DriverStatusAvailable
}

// HasValidLicense returns true if the licence has not expired at ref.
// A zero expiry date means the licence is not tracked and counts as valid.
func (d *Driver) HasValidLicense(ref time.Time) bool {
	if d.LicenseExpiry.IsZero() {
		return true
	}
	return !d.LicenseExpiry.Before(ref)
}

// ExpiringDocuments returns feed rows for the licence running out within
// the window.
func (d *Driver) ExpiringDocuments(ref time.Time, withinDays int) []ExpiringDocument {
	var out []ExpiringDocument
	if daysLeft, ok := expiryWithin(ref, d.LicenseExpiry, withinDays); ok {
		out = append(out, ExpiringDocument{
			ResourceType:  ResourceDriver,
			ResourceID:    d.ID,
			ResourceLabel: d.FullName(),
			Document:      DocumentLicense,
			ExpiresAt:     d.LicenseExpiry,
			DaysLeft:      daysLeft,
		})
	}
	return out
}
