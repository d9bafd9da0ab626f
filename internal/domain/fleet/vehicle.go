package fleet

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/shared"
)

// EquipmentStatus represents the operational status of a vehicle or trailer
type EquipmentStatus string

const (
	EquipmentStatusAvailable    EquipmentStatus = "AVAILABLE"
	EquipmentStatusInService    EquipmentStatus = "IN_SERVICE"     // In the workshop
	EquipmentStatusOutOfService EquipmentStatus = "OUT_OF_SERVICE" // Withdrawn from the fleet
)

// IsValid checks if the status is valid
func (s EquipmentStatus) IsValid() bool {
	switch s {
	case EquipmentStatusAvailable, EquipmentStatusInService, EquipmentStatusOutOfService:
		return true
	}
	return false
}

// VehicleKind represents the type of a vehicle
type VehicleKind string

const (
	VehicleKindTractor       VehicleKind = "TRACTOR"
	VehicleKindStraightTruck VehicleKind = "STRAIGHT_TRUCK"
	VehicleKindVan           VehicleKind = "VAN"
)

// IsValid checks if the kind is valid
func (k VehicleKind) IsValid() bool {
	switch k {
	case VehicleKindTractor, VehicleKindStraightTruck, VehicleKindVan:
		return true
	}
	return false
}

// Vehicle represents a tractor unit, straight truck or van in the fleet
// It is the aggregate root for vehicle-related operations
type Vehicle struct {
	shared.TenantAggregateRoot
	RegistrationNumber string          `gorm:"type:varchar(12);not null;uniqueIndex:idx_vehicle_tenant_reg,priority:2"`
	Brand              string          `gorm:"type:varchar(100)"`
	Model              string          `gorm:"type:varchar(100)"`
	Kind               VehicleKind     `gorm:"type:varchar(20);not null"`
	CapacityKg         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	InspectionExpiry   time.Time       `gorm:"index"`
	InsuranceExpiry    time.Time       `gorm:"index"`
	Status             EquipmentStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	Notes              string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// NewVehicle creates a new vehicle with required fields
func NewVehicle(tenantID uuid.UUID, registrationNumber string, kind VehicleKind, brand, model string) (*Vehicle, error) {
	reg, err := normalizeRegistration(registrationNumber)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Vehicle kind must be TRACTOR, STRAIGHT_TRUCK or VAN")
	}

	vehicle := &Vehicle{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RegistrationNumber:  reg,
		Brand:               brand,
		Model:               model,
		Kind:                kind,
		CapacityKg:          decimal.Zero,
		Status:              EquipmentStatusAvailable,
	}

	vehicle.AddDomainEvent(NewVehicleCreatedEvent(vehicle))

	return vehicle, nil
}

// Update updates the vehicle's basic information
func (v *Vehicle) Update(brand, model string, kind VehicleKind) error {
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Vehicle kind must be TRACTOR, STRAIGHT_TRUCK or VAN")
	}

	v.Brand = brand
	v.Model = model
	v.Kind = kind
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetCapacity sets the load capacity in kilograms
func (v *Vehicle) SetCapacity(capacityKg decimal.Decimal) error {
	if capacityKg.IsNegative() {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	v.CapacityKg = capacityKg
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetDocumentDates sets the technical inspection and insurance expiry dates
func (v *Vehicle) SetDocumentDates(inspectionExpiry, insuranceExpiry time.Time) {
	v.InspectionExpiry = inspectionExpiry
	v.InsuranceExpiry = insuranceExpiry
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// SetStatus changes the operational status
func (v *Vehicle) SetStatus(status EquipmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid vehicle status: "+string(status))
	}
	if v.Status == status {
		return nil
	}

	oldStatus := v.Status
	v.Status = status
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVehicleStatusChangedEvent(v, oldStatus, status))

	return nil
}

// SetNotes sets the vehicle's notes
func (v *Vehicle) SetNotes(notes string) {
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// IsAvailable returns true if the vehicle can be assigned to an order
func (v *Vehicle) IsAvailable() bool {
	return v.Status == EquipmentStatusAvailable
}

// HasValidDocuments reports whether both dated documents are valid at
// the reference date. Untracked (zero) dates count as valid.
func (v *Vehicle) HasValidDocuments(ref time.Time) bool {
	if !v.InspectionExpiry.IsZero() && v.InspectionExpiry.Before(ref) {
		return false
	}
	if !v.InsuranceExpiry.IsZero() && v.InsuranceExpiry.Before(ref) {
		return false
	}
	return true
}

// ExpiringDocuments returns feed rows for documents running out within
// the window.
func (v *Vehicle) ExpiringDocuments(ref time.Time, withinDays int) []ExpiringDocument {
	var out []ExpiringDocument
	if daysLeft, ok := expiryWithin(ref, v.InspectionExpiry, withinDays); ok {
		out = append(out, ExpiringDocument{
			ResourceType:  ResourceVehicle,
			ResourceID:    v.ID,
			ResourceLabel: v.RegistrationNumber,
			Document:      DocumentInspection,
			ExpiresAt:     v.InspectionExpiry,
			DaysLeft:      daysLeft,
		})
	}
	if daysLeft, ok := expiryWithin(ref, v.InsuranceExpiry, withinDays); ok {
		out = append(out, ExpiringDocument{
			ResourceType:  ResourceVehicle,
			ResourceID:    v.ID,
			ResourceLabel: v.RegistrationNumber,
			Document:      DocumentInsurance,
			ExpiresAt:     v.InsuranceExpiry,
			DaysLeft:      daysLeft,
		})
	}
	return out
}

// Validation functions

var registrationPattern = regexp.MustCompile(`^[A-Z0-9]{2,3}[ ]?[A-Z0-9]{1,7}$`)

func normalizeRegistration(registration string) (string, error) {
	reg := strings.ToUpper(strings.TrimSpace(registration))
	if reg == "" {
		return "", shared.NewDomainError("INVALID_REGISTRATION", "Registration number cannot be empty")
	}
	if !registrationPattern.MatchString(reg) {
		return "", shared.NewDomainError("INVALID_REGISTRATION", "Invalid registration number format")
	}
	return reg, nil
}
