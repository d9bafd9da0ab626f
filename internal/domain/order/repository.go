package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// TransportOrderRepository defines the interface for transport order persistence
type TransportOrderRepository interface {
	// FindByID finds a transport order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*TransportOrder, error)

	// FindByIDForTenant finds a transport order by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*TransportOrder, error)

	// FindByOrderNumber finds a transport order by order number for a tenant
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*TransportOrder, error)

	// FindAllForTenant finds all transport orders for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]TransportOrder, error)

	// FindByContractor finds transport orders for a client contractor
	FindByContractor(ctx context.Context, tenantID, contractorID uuid.UUID, filter shared.Filter) ([]TransportOrder, error)

	// FindByStatus finds transport orders by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus, filter shared.Filter) ([]TransportOrder, error)

	// FindByLoadingWindow finds transport orders loading inside the window
	FindByLoadingWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) ([]TransportOrder, error)

	// FindByTemplate finds transport orders generated from a recurring template
	FindByTemplate(ctx context.Context, tenantID, templateID uuid.UUID, filter shared.Filter) ([]TransportOrder, error)

	// Save creates or updates a transport order
	Save(ctx context.Context, order *TransportOrder) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *TransportOrder) error

	// SaveWithLockAndEvents saves with optimistic locking and persists domain events atomically
	// This implements the transactional outbox pattern - events are saved to the outbox table
	// in the same transaction as the aggregate, ensuring guaranteed event delivery
	SaveWithLockAndEvents(ctx context.Context, order *TransportOrder, events []shared.DomainEvent) error

	// DeleteForTenant deletes a transport order for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts transport orders for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts transport orders by status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus) (int64, error)

	// CountByContractor counts transport orders for a contractor
	// Used for validation before contractor deletion
	CountByContractor(ctx context.Context, tenantID, contractorID uuid.UUID) (int64, error)

	// ExistsByOrderNumber checks if an order number exists for a tenant
	ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error)

	// GenerateOrderNumber generates the next TO-YYYY-NNNNN number for a tenant,
	// with the sequence restarting each year
	GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error)
}
