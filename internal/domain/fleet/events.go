package fleet

import (
	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeVehicle = "Vehicle"
	AggregateTypeTrailer = "Trailer"
	AggregateTypeDriver  = "Driver"
)

// Event type constants
const (
	EventTypeVehicleCreated       = "VehicleCreated"
	EventTypeVehicleStatusChanged = "VehicleStatusChanged"
	EventTypeTrailerCreated       = "TrailerCreated"
	EventTypeTrailerStatusChanged = "TrailerStatusChanged"
	EventTypeDriverCreated        = "DriverCreated"
	EventTypeDriverStatusChanged  = "DriverStatusChanged"
)

// VehicleCreatedEvent is published when a new vehicle is registered
type VehicleCreatedEvent struct {
	shared.BaseDomainEvent
	VehicleID          uuid.UUID   `json:"vehicle_id"`
	RegistrationNumber string      `json:"registration_number"`
	Kind               VehicleKind `json:"kind"`
}

// NewVehicleCreatedEvent creates a new VehicleCreatedEvent
func NewVehicleCreatedEvent(vehicle *Vehicle) *VehicleCreatedEvent {
	return &VehicleCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeVehicleCreated, AggregateTypeVehicle, vehicle.ID, vehicle.TenantID),
		VehicleID:          vehicle.ID,
		RegistrationNumber: vehicle.RegistrationNumber,
		Kind:               vehicle.Kind,
	}
}

// VehicleStatusChangedEvent is published when a vehicle's status changes
type VehicleStatusChangedEvent struct {
	shared.BaseDomainEvent
	VehicleID          uuid.UUID       `json:"vehicle_id"`
	RegistrationNumber string          `json:"registration_number"`
	OldStatus          EquipmentStatus `json:"old_status"`
	NewStatus          EquipmentStatus `json:"new_status"`
}

// NewVehicleStatusChangedEvent creates a new VehicleStatusChangedEvent
func NewVehicleStatusChangedEvent(vehicle *Vehicle, oldStatus, newStatus EquipmentStatus) *VehicleStatusChangedEvent {
	return &VehicleStatusChangedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeVehicleStatusChanged, AggregateTypeVehicle, vehicle.ID, vehicle.TenantID),
		VehicleID:          vehicle.ID,
		RegistrationNumber: vehicle.RegistrationNumber,
		OldStatus:          oldStatus,
		NewStatus:          newStatus,
	}
}

// TrailerCreatedEvent is published when a new trailer is registered
type TrailerCreatedEvent struct {
	shared.BaseDomainEvent
	TrailerID          uuid.UUID   `json:"trailer_id"`
	RegistrationNumber string      `json:"registration_number"`
	Kind               TrailerKind `json:"kind"`
}

// NewTrailerCreatedEvent creates a new TrailerCreatedEvent
func NewTrailerCreatedEvent(trailer *Trailer) *TrailerCreatedEvent {
	return &TrailerCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeTrailerCreated, AggregateTypeTrailer, trailer.ID, trailer.TenantID),
		TrailerID:          trailer.ID,
		RegistrationNumber: trailer.RegistrationNumber,
		Kind:               trailer.Kind,
	}
}

// TrailerStatusChangedEvent is published when a trailer's status changes
type TrailerStatusChangedEvent struct {
	shared.BaseDomainEvent
	TrailerID          uuid.UUID       `json:"trailer_id"`
	RegistrationNumber string          `json:"registration_number"`
	OldStatus          EquipmentStatus `json:"old_status"`
	NewStatus          EquipmentStatus `json:"new_status"`
}

// NewTrailerStatusChangedEvent creates a new TrailerStatusChangedEvent
func NewTrailerStatusChangedEvent(trailer *Trailer, oldStatus, newStatus EquipmentStatus) *TrailerStatusChangedEvent {
	return &TrailerStatusChangedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeTrailerStatusChanged, AggregateTypeTrailer, trailer.ID, trailer.TenantID),
		TrailerID:          trailer.ID,
		RegistrationNumber: trailer.RegistrationNumber,
		OldStatus:          oldStatus,
		NewStatus:          newStatus,
	}
}

// DriverCreatedEvent is published when a new driver is added
type DriverCreatedEvent struct {
	shared.BaseDomainEvent
	DriverID uuid.UUID `json:"driver_id"`
	FullName string    `json:"full_name"`
}

// NewDriverCreatedEvent creates a new DriverCreatedEvent
func NewDriverCreatedEvent(driver *Driver) *DriverCreatedEvent {
	return &DriverCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDriverCreated, AggregateTypeDriver, driver.ID, driver.TenantID),
		DriverID:        driver.ID,
		FullName:        driver.FullName(),
	}
}

// DriverStatusChangedEvent is published when a driver's duty status changes
type DriverStatusChangedEvent struct {
	shared.BaseDomainEvent
	DriverID  uuid.UUID    `json:"driver_id"`
	FullName  string       `json:"full_name"`
	OldStatus DriverStatus `json:"old_status"`
	NewStatus DriverStatus `json:"new_status"`
}

// NewDriverStatusChangedEvent creates a new DriverStatusChangedEvent
func NewDriverStatusChangedEvent(driver *Driver, oldStatus, newStatus DriverStatus) *DriverStatusChangedEvent {
	return &DriverStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDriverStatusChanged, AggregateTypeDriver, driver.ID, driver.TenantID),
		DriverID:        driver.ID,
		FullName:        driver.FullName(),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
