package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForTenant finds an invoice by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by invoice number for a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Invoice, error)

	// FindAllForTenant finds all invoices for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByContractor finds invoices for a contractor
	FindByContractor(ctx context.Context, tenantID, contractorID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByStatus finds invoices by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)

	// FindByOrder finds invoices linked to a transport order
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]Invoice, error)

	// FindOverdue finds issued invoices whose due date has passed at the reference date
	FindOverdue(ctx context.Context, tenantID uuid.UUID, ref time.Time, filter shared.Filter) ([]Invoice, error)

	// FindUnpaidIssued finds all issued invoices that are not yet paid, for receivables reporting
	FindUnpaidIssued(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error)

	// FindPendingKSeF finds invoices awaiting a KSeF processing outcome
	FindPendingKSeF(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, inv *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, inv *Invoice) error

	// SaveWithLockAndEvents saves with optimistic locking and persists
	// domain events to the outbox in the same transaction
	SaveWithLockAndEvents(ctx context.Context, inv *Invoice, events []shared.DomainEvent) error

	// DeleteForTenant deletes a draft invoice for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts invoices for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts invoices by status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status InvoiceStatus) (int64, error)

	// ExistsByNumber checks if an invoice number exists for a tenant
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (bool, error)

	// GenerateInvoiceNumber generates the next invoice number for a tenant
	// in the issue month, in the form FV/YYYY/MM/NNNN
	GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID, issueDate time.Time) (string, error)
}

// RateRepository provides read access to cached NBP exchange rates
type RateRepository interface {
	// FindRate returns the stored rate for a currency and effective date
	FindRate(ctx context.Context, currency string, date time.Time) (*ExchangeRate, error)

	// SaveRate stores a fetched rate
	SaveRate(ctx context.Context, rate ExchangeRate) error
}
