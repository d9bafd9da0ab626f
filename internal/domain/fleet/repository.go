package fleet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// VehicleRepository defines the interface for vehicle persistence
type VehicleRepository interface {
	// FindByID finds a vehicle by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// FindByIDForTenant finds a vehicle by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vehicle, error)

	// FindByRegistration finds a vehicle by registration number for a tenant
	FindByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (*Vehicle, error)

	// FindAllForTenant finds all vehicles for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vehicle, error)

	// FindAvailable finds vehicles that can be assigned to an order
	FindAvailable(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vehicle, error)

	// FindWithExpiringDocuments finds vehicles whose inspection or insurance
	// runs out on or before the deadline
	FindWithExpiringDocuments(ctx context.Context, tenantID uuid.UUID, deadline time.Time) ([]Vehicle, error)

	// Save creates or updates a vehicle
	Save(ctx context.Context, vehicle *Vehicle) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, vehicle *Vehicle) error

	// DeleteForTenant deletes a vehicle for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts vehicles for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByRegistration checks if a registration number exists for a tenant
	ExistsByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (bool, error)
}

// TrailerRepository defines the interface for trailer persistence
type TrailerRepository interface {
	// FindByID finds a trailer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Trailer, error)

	// FindByIDForTenant finds a trailer by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Trailer, error)

	// FindByRegistration finds a trailer by registration number for a tenant
	FindByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (*Trailer, error)

	// FindAllForTenant finds all trailers for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Trailer, error)

	// FindAvailable finds trailers that can be assigned to an order
	FindAvailable(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Trailer, error)

	// FindWithExpiringDocuments finds trailers whose inspection or insurance
	// runs out on or before the deadline
	FindWithExpiringDocuments(ctx context.Context, tenantID uuid.UUID, deadline time.Time) ([]Trailer, error)

	// Save creates or updates a trailer
	Save(ctx context.Context, trailer *Trailer) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, trailer *Trailer) error

	// DeleteForTenant deletes a trailer for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts trailers for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByRegistration checks if a registration number exists for a tenant
	ExistsByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (bool, error)
}

// DriverRepository defines the interface for driver persistence
type DriverRepository interface {
	// FindByID finds a driver by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Driver, error)

	// FindByIDForTenant finds a driver by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Driver, error)

	// FindAllForTenant finds all drivers for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Driver, error)

	// FindAvailable finds drivers that can be assigned to an order
	FindAvailable(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Driver, error)

	// FindWithExpiringLicense finds drivers whose licence runs out on or
	// before the deadline
	FindWithExpiringLicense(ctx context.Context, tenantID uuid.UUID, deadline time.Time) ([]Driver, error)

	// Save creates or updates a driver
	Save(ctx context.Context, driver *Driver) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, driver *Driver) error

	// DeleteForTenant deletes a driver for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts drivers for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
