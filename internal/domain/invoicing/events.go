package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated         = "InvoiceCreated"
	EventTypeInvoiceIssued          = "InvoiceIssued"
	EventTypeInvoicePaid            = "InvoicePaid"
	EventTypeInvoiceCancelled       = "InvoiceCancelled"
	EventTypeInvoiceSubmittedToKSeF = "InvoiceSubmittedToKSeF"
)

// InvoiceCreatedEvent is published when a draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID    uuid.UUID            `json:"invoice_id"`
	ContractorID uuid.UUID            `json:"contractor_id"`
	Currency     valueobject.Currency `json:"currency"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		ContractorID:    inv.Buyer.ContractorID,
		Currency:        inv.Currency,
	}
}

// InvoiceIssuedEvent is published when an invoice receives its number
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID            `json:"invoice_id"`
	InvoiceNumber string               `json:"invoice_number"`
	ContractorID  uuid.UUID            `json:"contractor_id"`
	Currency      valueobject.Currency `json:"currency"`
	TotalGross    decimal.Decimal      `json:"total_gross"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		ContractorID:    inv.Buyer.ContractorID,
		Currency:        inv.Currency,
		TotalGross:      inv.TotalGross,
		DueDate:         inv.DueDate,
	}
}

// InvoicePaidEvent is published when a payment is recorded
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		TotalGross:      inv.TotalGross,
		PaidAt:          inv.PaidAt,
	}
}

// InvoiceCancelledEvent is published when an invoice is voided
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	Reason        string    `json:"reason,omitempty"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice, reason string) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		Reason:          reason,
	}
}

// InvoiceSubmittedToKSeFEvent is published after a successful gateway submission
type InvoiceSubmittedToKSeFEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Reference     string    `json:"reference"`
}

// NewInvoiceSubmittedToKSeFEvent creates a new InvoiceSubmittedToKSeFEvent
func NewInvoiceSubmittedToKSeFEvent(inv *Invoice) *InvoiceSubmittedToKSeFEvent {
	return &InvoiceSubmittedToKSeFEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSubmittedToKSeF, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		Reference:       inv.KSeFReference,
	}
}
