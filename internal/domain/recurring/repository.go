package recurring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// TemplateRepository defines the interface for recurring template persistence
type TemplateRepository interface {
	// FindByID finds a template by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)

	// FindByIDForTenant finds a template by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Template, error)

	// FindAllForTenant finds all templates for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Template, error)

	// FindDue finds active templates whose next generation date is on or
	// before the reference date, for one tenant. Used by the generation sweep.
	FindDue(ctx context.Context, tenantID uuid.UUID, ref time.Time) ([]Template, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *Template) error

	// SaveWithLock saves a template with optimistic locking (version check)
	// Returns error if the version has changed (concurrent modification)
	SaveWithLock(ctx context.Context, template *Template) error

	// DeleteForTenant deletes a template within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts templates for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
