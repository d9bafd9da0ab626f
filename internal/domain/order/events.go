package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeTransportOrder = "TransportOrder"

// Event type constants
const (
	EventTypeTransportOrderCreated       = "TransportOrderCreated"
	EventTypeTransportOrderPlanned       = "TransportOrderPlanned"
	EventTypeTransportOrderFleetAssigned = "TransportOrderFleetAssigned"
	EventTypeTransportOrderDispatched    = "TransportOrderDispatched"
	EventTypeTransportOrderCompleted     = "TransportOrderCompleted"
	EventTypeTransportOrderInvoiced      = "TransportOrderInvoiced"
	EventTypeTransportOrderCancelled     = "TransportOrderCancelled"
)

// TransportOrderCreatedEvent is raised when a new transport order is created
type TransportOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID            `json:"order_id"`
	OrderNumber  string               `json:"order_number"`
	ContractorID uuid.UUID            `json:"contractor_id"`
	PriceNet     decimal.Decimal      `json:"price_net"`
	Currency     valueobject.Currency `json:"currency"`
}

// NewTransportOrderCreatedEvent creates a new TransportOrderCreatedEvent
func NewTransportOrderCreatedEvent(order *TransportOrder) *TransportOrderCreatedEvent {
	return &TransportOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransportOrderCreated, AggregateTypeTransportOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ContractorID:    order.ContractorID,
		PriceNet:        order.PriceNet,
		Currency:        order.Currency,
	}
}

// EventType returns the event type name
func (e *TransportOrderCreatedEvent) EventType() string {
	return EventTypeTransportOrderCreated
}

// TransportOrderPlannedEvent is raised when an order is confirmed for execution
type TransportOrderPlannedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	LoadingDate time.Time `json:"loading_date"`
}

// NewTransportOrderPlannedEvent creates a new TransportOrderPlannedEvent
func NewTransportOrderPlannedEvent(order *TransportOrder) *TransportOrderPlannedEvent {
	return &TransportOrderPlannedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransportOrderPlanned, AggregateTypeTransportOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		LoadingDate:     order.Route.LoadingDate,
	}
}

// EventType returns the event type name
func (e *TransportOrderPlannedEvent) EventType() string {
	return EventTypeTransportOrderPlanned
}

// TransportOrderFleetAssignedEvent is raised when vehicle, trailer or driver change
type TransportOrderFleetAssignedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID  `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	VehicleID   *uuid.UUID `json:"vehicle_id,omitempty"`
	TrailerID   *uuid.UUID `json:"trailer_id,omitempty"`
	DriverID    *uuid.UUID `json:"driver_id,omitempty"`
}

// NewTransportOrderFleetAssignedEvent creates a new TransportOrderFleetAssignedEvent
func NewTransportOrderFleetAssignedEvent(order *TransportOrder) *TransportOrderFleetAssignedEvent {
	return &TransportOrderFleetAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransportOrderFleetAssigned, AggregateTypeTransportOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		VehicleID:       order.VehicleID,
		TrailerID:       order.TrailerID,
		DriverID:        order.DriverID,
	}
}

// EventType returns the event type name
func (e *TransportOrderFleetAssignedEvent) EventType() string {
	return EventTypeTransportOrderFleetAssigned
}

// TransportOrderDispatchedEvent is raised when the haul starts
// Fleet status updates in the fleet context hang off this event
type TransportOrderDispatchedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID  `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	VehicleID   *uuid.UUID `json:"vehicle_id,omitempty"`
	DriverID    *uuid.UUID `json:"driver_id,omitempty"`
	CarrierID   *uuid.UUID `json:"carrier_id,omitempty"`
}

// NewTransportOrderDispatchedEvent creates a new TransportOrderDispatchedEvent
func NewTransportOrderDispatchedEvent(order *TransportOrder) *TransportOrderDispatchedEvent {
	return &TransportOrderDispatchedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransportOrderDispatched, AggregateTypeTransportOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		VehicleID:       order.VehicleID,
		DriverID:        order.DriverID,
		CarrierID:       order.CarrierID,
	}
}

// EventType returns the event type name
func (e *TransportOrderDispatchedEvent) EventType() string {
	return EventTypeTransportOrderDispatched
}

// TransportOrderCompletedEvent is raised when the order is delivered
// Invoicing picks completed orders up from this event
type TransportOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID            `json:"order_id"`
	OrderNumber  string               `json:"order_number"`
	ContractorID uuid.UUID            `json:"contractor_id"`
	PriceNet     decimal.Decimal      `json:"price_net"`
	Currency     valueobject.Currency `json:"currency"`
	VATRate      invoicing.VATRate    `json:"vat_rate"`
}

// NewTransportOrderCompletedEvent creates a new TransportOrderCompletedEvent
func NewTransportOrderCompletedEvent(order *TransportOrder) *TransportOrderCompletedEvent {
	return &TransportOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransportOrderCompleted, AggregateTypeTransportOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ContractorID:    order.ContractorID,
		PriceNet:        order.PriceNet,
		Currency:        order.Currency,
		VATRate:         order.VATRate,
	}
}

// EventType returns the event type name
func (e *TransportOrderCompletedEvent) EventType() string {
	return EventTypeTransportOrderCompleted
}

// TransportOrderInvoicedEvent is raised when an issued invoice closes the order
type TransportOrderInvoicedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
}

// NewTransportOrderInvoicedEvent creates a new TransportOrderInvoicedEvent
func NewTransportOrderInvoicedEvent(order *TransportOrder) *TransportOrderInvoicedEvent {
	var invoiceID uuid.UUID
	if order.InvoiceID != nil {
		invoiceID = *order.InvoiceID
	}
	return &TransportOrderInvoicedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransportOrderInvoiced, AggregateTypeTransportOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		InvoiceID:       invoiceID,
	}
}

// EventType returns the event type name
func (e *TransportOrderInvoicedEvent) EventType() string {
	return EventTypeTransportOrderInvoiced
}

// TransportOrderCancelledEvent is raised when an order is cancelled
// WasDispatched tells fleet whether resources need releasing
type TransportOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	Reason        string    `json:"reason"`
	WasDispatched bool      `json:"was_dispatched"`
}

// NewTransportOrderCancelledEvent creates a new TransportOrderCancelledEvent
func NewTransportOrderCancelledEvent(order *TransportOrder, wasDispatched bool) *TransportOrderCancelledEvent {
	return &TransportOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransportOrderCancelled, AggregateTypeTransportOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          order.CancelReason,
		WasDispatched:   wasDispatched,
	}
}

// EventType returns the event type name
func (e *TransportOrderCancelledEvent) EventType() string {
	return EventTypeTransportOrderCancelled
}
