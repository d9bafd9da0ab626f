package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByCode finds a tenant by code
	FindByCode(ctx context.Context, code string) (*Tenant, error)

	// FindByNIP finds a tenant by NIP
	FindByNIP(ctx context.Context, nip string) (*Tenant, error)

	// FindAll finds all tenants with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// FindAllActive finds every active tenant. The recurring-order sweep
	// iterates this list.
	FindAllActive(ctx context.Context) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, tenant *Tenant) error

	// Count counts tenants with optional filters
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a tenant code is taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByNIP checks if a NIP is already registered
	ExistsByNIP(ctx context.Context, nip string) (bool, error)
}
