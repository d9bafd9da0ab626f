package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// ContractorRepository defines the interface for contractor persistence
type ContractorRepository interface {
	// FindByID finds a contractor by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contractor, error)

	// FindByIDForTenant finds a contractor by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contractor, error)

	// FindByCode finds a contractor by code for a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Contractor, error)

	// FindByNIP finds a contractor by NIP for a tenant
	FindByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (*Contractor, error)

	// FindAllForTenant finds all contractors for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Contractor, error)

	// FindByKind finds contractors able to act in the given role
	FindByKind(ctx context.Context, tenantID uuid.UUID, kind ContractorKind, filter shared.Filter) ([]Contractor, error)

	// Save creates or updates a contractor
	Save(ctx context.Context, contractor *Contractor) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, contractor *Contractor) error

	// DeleteForTenant deletes a contractor for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts contractors for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a contractor code exists for a tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// ExistsByNIP checks if a NIP is already registered for a tenant
	ExistsByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (bool, error)
}
