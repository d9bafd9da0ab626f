package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of a transport order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusPlanned   OrderStatus = "PLANNED"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusInvoiced  OrderStatus = "INVOICED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPlanned, OrderStatusInTransit, OrderStatusCompleted, OrderStatusCancelled, OrderStatusInvoiced:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusPlanned || target == OrderStatusCancelled
	case OrderStatusPlanned:
		return target == OrderStatusInTransit || target == OrderStatusCancelled
	case OrderStatusInTransit:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted:
		return target == OrderStatusInvoiced || target == OrderStatusCancelled
	case OrderStatusCancelled, OrderStatusInvoiced:
		return false // Terminal states
	}
	return false
}

// Route describes the loading and unloading legs of a transport
type Route struct {
	LoadingPlace   valueobject.Address `json:"loading_place"`
	LoadingDate    time.Time           `json:"loading_date"`
	UnloadingPlace valueobject.Address `json:"unloading_place"`
	UnloadingDate  time.Time           `json:"unloading_date"`
}

// Validate checks the route fields
func (r Route) Validate() error {
	if r.LoadingPlace.IsEmpty() {
		return shared.NewDomainError("INVALID_ROUTE", "Loading place is required")
	}
	if r.UnloadingPlace.IsEmpty() {
		return shared.NewDomainError("INVALID_ROUTE", "Unloading place is required")
	}
	if r.LoadingDate.IsZero() {
		return shared.NewDomainError("INVALID_ROUTE", "Loading date is required")
	}
	if r.UnloadingDate.IsZero() {
		return shared.NewDomainError("INVALID_ROUTE", "Unloading date is required")
	}
	if r.UnloadingDate.Before(r.LoadingDate) {
		return shared.NewDomainError("INVALID_ROUTE", "Unloading date cannot precede loading date")
	}
	return nil
}

// Cargo describes what is carried on the order
type Cargo struct {
	Description string          `json:"description"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	Pallets     int             `json:"pallets"`
}

// Validate checks the cargo fields
func (c Cargo) Validate() error {
	if c.WeightKg.IsNegative() {
		return shared.NewDomainError("INVALID_CARGO", "Cargo weight cannot be negative")
	}
	if c.Pallets < 0 {
		return shared.NewDomainError("INVALID_CARGO", "Pallet count cannot be negative")
	}
	return nil
}

// TransportOrder represents a transport order aggregate root
// It manages the lifecycle of one haul from planning to invoicing
type TransportOrder struct {
	shared.TenantAggregateRoot
	OrderNumber         string
	ContractorID        uuid.UUID
	CarrierID           *uuid.UUID // Subcontracted carrier, if any
	Route               Route
	Cargo               Cargo
	PriceNet            decimal.Decimal
	Currency            valueobject.Currency
	VATRate             invoicing.VATRate
	VehicleID           *uuid.UUID
	TrailerID           *uuid.UUID
	DriverID            *uuid.UUID
	Status              OrderStatus
	RecurringTemplateID *uuid.UUID // Template provenance when generated
	InvoiceID           *uuid.UUID
	Remark              string
	PlannedAt           *time.Time
	DispatchedAt        *time.Time
	CompletedAt         *time.Time
	InvoicedAt          *time.Time
	CancelledAt         *time.Time
	CancelReason        string
}

// NewTransportOrder creates a new transport order in DRAFT status
func NewTransportOrder(tenantID uuid.UUID, orderNumber string, contractorID uuid.UUID, route Route, cargo Cargo, priceNet decimal.Decimal, currency valueobject.Currency, vatRate invoicing.VATRate) (*TransportOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if contractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor ID cannot be empty")
	}
	if err := route.Validate(); err != nil {
		return nil, err
	}
	if err := cargo.Validate(); err != nil {
		return nil, err
	}
	if priceNet.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Invalid currency: "+string(currency))
	}
	if !vatRate.IsValid() {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", fmt.Sprintf("Invalid VAT rate: %d", vatRate))
	}

	order := &TransportOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		ContractorID:        contractorID,
		Route:               route,
		Cargo:               cargo,
		PriceNet:            priceNet,
		Currency:            currency,
		VATRate:             vatRate,
		Status:              OrderStatusDraft,
	}

	order.AddDomainEvent(NewTransportOrderCreatedEvent(order))

	return order, nil
}

// UpdateRoute replaces the route
// Only allowed in DRAFT or PLANNED status
func (o *TransportOrder) UpdateRoute(route Route) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update route in "+o.Status.String()+" status")
	}
	if err := route.Validate(); err != nil {
		return err
	}

	o.Route = route
	o.UpdatedAt = time.Now()

	return nil
}

// UpdateCargo replaces the cargo description
// Only allowed in DRAFT or PLANNED status
func (o *TransportOrder) UpdateCargo(cargo Cargo) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update cargo in "+o.Status.String()+" status")
	}
	if err := cargo.Validate(); err != nil {
		return err
	}

	o.Cargo = cargo
	o.UpdatedAt = time.Now()

	return nil
}

// UpdatePrice replaces the agreed freight price
// Only allowed in DRAFT or PLANNED status
func (o *TransportOrder) UpdatePrice(priceNet decimal.Decimal, currency valueobject.Currency, vatRate invoicing.VATRate) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update price in "+o.Status.String()+" status")
	}
	if priceNet.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Invalid currency: "+string(currency))
	}
	if !vatRate.IsValid() {
		return shared.NewDomainError("INVALID_VAT_RATE", fmt.Sprintf("Invalid VAT rate: %d", vatRate))
	}

	o.PriceNet = priceNet
	o.Currency = currency
	o.VATRate = vatRate
	o.UpdatedAt = time.Now()

	return nil
}

// SetCarrier sets or clears the subcontracted carrier
// Only allowed in DRAFT or PLANNED status
func (o *TransportOrder) SetCarrier(carrierID *uuid.UUID) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change carrier in "+o.Status.String()+" status")
	}
	if carrierID != nil && *carrierID == uuid.Nil {
		return shared.NewDomainError("INVALID_CARRIER", "Carrier ID cannot be empty")
	}

	o.CarrierID = carrierID
	o.UpdatedAt = time.Now()

	return nil
}

// SetRemark sets the order remark
func (o *TransportOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// MarkGenerated records which recurring template produced this order
func (o *TransportOrder) MarkGenerated(templateID uuid.UUID) error {
	if templateID == uuid.Nil {
		return shared.NewDomainError("INVALID_TEMPLATE", "Template ID cannot be empty")
	}

	o.RecurringTemplateID = &templateID

	return nil
}

// AssignFleet sets the vehicle, trailer and driver for the haul
// Only allowed in PLANNED status; nil values clear an assignment
func (o *TransportOrder) AssignFleet(vehicleID, trailerID, driverID *uuid.UUID) error {
	if o.Status != OrderStatusPlanned {
		return shared.NewDomainError("INVALID_STATE", "Fleet can only be assigned to a planned order")
	}

	o.VehicleID = vehicleID
	o.TrailerID = trailerID
	o.DriverID = driverID
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewTransportOrderFleetAssignedEvent(o))

	return nil
}

// Plan confirms the order, transitioning from DRAFT to PLANNED
func (o *TransportOrder) Plan() error {
	if !o.Status.CanTransitionTo(OrderStatusPlanned) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot plan order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusPlanned
	o.PlannedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewTransportOrderPlannedEvent(o))

	return nil
}

// Dispatch marks the order as in transit
// Requires own fleet (vehicle and driver) or a subcontracted carrier
func (o *TransportOrder) Dispatch() error {
	if !o.Status.CanTransitionTo(OrderStatusInTransit) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot dispatch order in %s status", o.Status))
	}
	ownFleet := o.VehicleID != nil && o.DriverID != nil
	if !ownFleet && o.CarrierID == nil {
		return shared.NewDomainError("NO_ASSIGNMENT", "Assign a vehicle and driver or a carrier before dispatching")
	}

	now := time.Now()
	o.Status = OrderStatusInTransit
	o.DispatchedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewTransportOrderDispatchedEvent(o))

	return nil
}

// Complete marks the order as delivered
func (o *TransportOrder) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewTransportOrderCompletedEvent(o))

	return nil
}

// MarkInvoiced links the issued invoice and closes the order
func (o *TransportOrder) MarkInvoiced(invoiceID uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusInvoiced) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot invoice order in %s status", o.Status))
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}

	now := time.Now()
	o.Status = OrderStatusInvoiced
	o.InvoiceID = &invoiceID
	o.InvoicedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewTransportOrderInvoicedEvent(o))

	return nil
}

// Cancel cancels the order
// Allowed from any non-terminal status
func (o *TransportOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	wasDispatched := o.Status == OrderStatusInTransit
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewTransportOrderCancelledEvent(o, wasDispatched))

	return nil
}

// PriceGross returns the freight price including VAT, display-rounded
func (o *TransportOrder) PriceGross() decimal.Decimal {
	vat := o.PriceNet.Mul(o.VATRate.Percent()).Div(decimal.NewFromInt(100))
	return o.PriceNet.Add(vat).Round(2)
}

// IsSubcontracted returns true when a carrier hauls the order
func (o *TransportOrder) IsSubcontracted() bool {
	return o.CarrierID != nil
}

// IsGenerated returns true when the order came from a recurring template
func (o *TransportOrder) IsGenerated() bool {
	return o.RecurringTemplateID != nil
}

// IsDraft returns true if the order is in draft status
func (o *TransportOrder) IsDraft() bool {
	return o.Status == OrderStatusDraft
}

// IsTerminal returns true if the order is cancelled or invoiced
func (o *TransportOrder) IsTerminal() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusInvoiced
}

// CanModify returns true if the order fields can still be edited
func (o *TransportOrder) CanModify() bool {
	return o.Status == OrderStatusDraft || o.Status == OrderStatusPlanned
}

// CanDelete returns true if the order can be removed entirely
func (o *TransportOrder) CanDelete() bool {
	return o.Status == OrderStatusDraft
}
