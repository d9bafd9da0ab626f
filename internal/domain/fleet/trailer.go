package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/shared"
)

// TrailerKind represents the body type of a trailer
type TrailerKind string

const (
	TrailerKindCurtain TrailerKind = "CURTAIN"
	TrailerKindBox     TrailerKind = "BOX"
	TrailerKindReefer  TrailerKind = "REEFER"
	TrailerKindTipper  TrailerKind = "TIPPER"
)

// IsValid checks if the kind is valid
func (k TrailerKind) IsValid() bool {
	switch k {
	case TrailerKindCurtain, TrailerKindBox, TrailerKindReefer, TrailerKindTipper:
		return true
	}
	return false
}

// Trailer represents a trailer or semi-trailer in the fleet
type Trailer struct {
	shared.TenantAggregateRoot
	RegistrationNumber string          `gorm:"type:varchar(12);not null;uniqueIndex:idx_trailer_tenant_reg,priority:2"`
	Kind               TrailerKind     `gorm:"type:varchar(20);not null"`
	CapacityKg         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	InspectionExpiry   time.Time       `gorm:"index"`
	InsuranceExpiry    time.Time       `gorm:"index"`
	Status             EquipmentStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	Notes              string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Trailer) TableName() string {
	return "trailers"
}

// NewTrailer creates a new trailer with required fields
func NewTrailer(tenantID uuid.UUID, registrationNumber string, kind TrailerKind) (*Trailer, error) {
	reg, err := normalizeRegistration(registrationNumber)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Trailer kind must be CURTAIN, BOX, REEFER or TIPPER")
	}

	trailer := &Trailer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RegistrationNumber:  reg,
		Kind:                kind,
		CapacityKg:          decimal.Zero,
		Status:              EquipmentStatusAvailable,
	}

	trailer.AddDomainEvent(NewTrailerCreatedEvent(trailer))

	return trailer, nil
}

// Update updates the trailer's basic information
func (t *Trailer) Update(kind TrailerKind) error {
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Trailer kind must be CURTAIN, BOX, REEFER or TIPPER")
	}

	t.Kind = kind
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetCapacity sets the load capacity in kilograms
func (t *Trailer) SetCapacity(capacityKg decimal.Decimal) error {
	if capacityKg.IsNegative() {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	t.CapacityKg = capacityKg
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetDocumentDates sets the technical inspection and insurance expiry dates
func (t *Trailer) SetDocumentDates(inspectionExpiry, insuranceExpiry time.Time) {
	t.InspectionExpiry = inspectionExpiry
	t.InsuranceExpiry = insuranceExpiry
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetStatus changes the operational status
func (t *Trailer) SetStatus(status EquipmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid trailer status: "+string(status))
	}
	if t.Status == status {
		return nil
	}

	oldStatus := t.Status
	t.Status = status
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTrailerStatusChangedEvent(t, oldStatus, status))

	return nil
}

// SetNotes sets the trailer's notes
func (t *Trailer) SetNotes(notes string) {
	t.Notes = notes
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// IsAvailable returns true if the trailer can be assigned to an order
func (t *Trailer) IsAvailable() bool {
	return t.Status == EquipmentStatusAvailable
}

// HasValidDocuments reports whether both dated documents are valid at
// the reference date. Untracked (zero) dates count as valid.
func (t *Trailer) HasValidDocuments(ref time.Time) bool {
	if !t.InspectionExpiry.IsZero() && t.InspectionExpiry.Before(ref) {
		return false
	}
	if !t.InsuranceExpiry.IsZero() && t.InsuranceExpiry.Before(ref) {
		return false
	}
	return true
}

// ExpiringDocuments returns feed rows for documents running out within
// the window.
func (t *Trailer) ExpiringDocuments(ref time.Time, withinDays int) []ExpiringDocument {
	var out []ExpiringDocument
	if daysLeft, ok := expiryWithin(ref, t.InspectionExpiry, withinDays); ok {
		out = append(out, ExpiringDocument{
			ResourceType:  ResourceTrailer,
			ResourceID:    t.ID,
			ResourceLabel: t.RegistrationNumber,
			Document:      DocumentInspection,
			ExpiresAt:     t.InspectionExpiry,
			DaysLeft:      daysLeft,
		})
	}
	if daysLeft, ok := expiryWithin(ref, t.InsuranceExpiry, withinDays); ok {
		out = append(out, ExpiringDocument{
			ResourceType:  ResourceTrailer,
			ResourceID:    t.ID,
			ResourceLabel: t.RegistrationNumber,
			Document:      DocumentInsurance,
			ExpiresAt:     t.InsuranceExpiry,
			DaysLeft:      daysLeft,
		})
	}
	return out
}
