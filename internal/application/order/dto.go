package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// ==================== Transport Order DTOs ====================

// RouteInput represents the haul route in requests
type RouteInput struct {
	LoadingPlace   valueobject.Address `json:"loading_place" binding:"required"`
	LoadingDate    time.Time           `json:"loading_date" binding:"required"`
	UnloadingPlace valueobject.Address `json:"unloading_place" binding:"required"`
	UnloadingDate  time.Time           `json:"unloading_date" binding:"required"`
}

// ToRoute converts the input into the domain route
func (in RouteInput) ToRoute() order.Route {
	return order.Route{
		LoadingPlace:   in.LoadingPlace,
		LoadingDate:    in.LoadingDate,
		UnloadingPlace: in.UnloadingPlace,
		UnloadingDate:  in.UnloadingDate,
	}
}

// CargoInput represents the cargo description in requests
type CargoInput struct {
	Description string          `json:"description" binding:"max=500"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	Pallets     int             `json:"pallets" binding:"min=0"`
}

// ToCargo converts the input into the domain cargo
func (in CargoInput) ToCargo() order.Cargo {
	return order.Cargo{
		Description: in.Description,
		WeightKg:    in.WeightKg,
		Pallets:     in.Pallets,
	}
}

// CreateOrderRequest represents a request to create a transport order
type CreateOrderRequest struct {
	ContractorID uuid.UUID       `json:"contractor_id" binding:"required"`
	CarrierID    *uuid.UUID      `json:"carrier_id"`
	Route        RouteInput      `json:"route" binding:"required"`
	Cargo        CargoInput      `json:"cargo"`
	PriceNet     decimal.Decimal `json:"price_net" binding:"required"`
	Currency     string          `json:"currency" binding:"required,len=3"`
	VATRate      int             `json:"vat_rate"`
	Remark       string          `json:"remark"`
}

// UpdateOrderRequest represents a partial order update. Price, currency
// and VAT rate travel together; route and cargo replace as a whole.
type UpdateOrderRequest struct {
	Route     *RouteInput      `json:"route"`
	Cargo     *CargoInput      `json:"cargo"`
	PriceNet  *decimal.Decimal `json:"price_net"`
	Currency  *string          `json:"currency" binding:"omitempty,len=3"`
	VATRate   *int             `json:"vat_rate"`
	CarrierID *uuid.UUID       `json:"carrier_id"`
	Remark    *string          `json:"remark"`
}

// AssignFleetRequest represents a fleet assignment. Nil values clear the
// corresponding slot.
type AssignFleetRequest struct {
	VehicleID *uuid.UUID `json:"vehicle_id"`
	TrailerID *uuid.UUID `json:"trailer_id"`
	DriverID  *uuid.UUID `json:"driver_id"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Search       string     `form:"search"`
	Status       *string    `form:"status"`
	ContractorID *uuid.UUID `form:"contractor_id"`
	CarrierID    *uuid.UUID `form:"carrier_id"`
	TemplateID   *uuid.UUID `form:"template_id"`
	LoadingFrom  *time.Time `form:"loading_from"`
	LoadingTo    *time.Time `form:"loading_to"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RouteResponse represents the haul route in API responses
type RouteResponse struct {
	LoadingPlace   valueobject.Address `json:"loading_place"`
	LoadingDate    time.Time           `json:"loading_date"`
	UnloadingPlace valueobject.Address `json:"unloading_place"`
	UnloadingDate  time.Time           `json:"unloading_date"`
}

// CargoResponse represents the cargo in API responses
type CargoResponse struct {
	Description string          `json:"description"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	Pallets     int             `json:"pallets"`
}

// OrderResponse represents a transport order in API responses
type OrderResponse struct {
	ID                  uuid.UUID       `json:"id"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	OrderNumber         string          `json:"order_number"`
	ContractorID        uuid.UUID       `json:"contractor_id"`
	CarrierID           *uuid.UUID      `json:"carrier_id,omitempty"`
	Route               RouteResponse   `json:"route"`
	Cargo               CargoResponse   `json:"cargo"`
	PriceNet            decimal.Decimal `json:"price_net"`
	Currency            string          `json:"currency"`
	VATRate             int             `json:"vat_rate"`
	PriceGross          decimal.Decimal `json:"price_gross"`
	VehicleID           *uuid.UUID      `json:"vehicle_id,omitempty"`
	TrailerID           *uuid.UUID      `json:"trailer_id,omitempty"`
	DriverID            *uuid.UUID      `json:"driver_id,omitempty"`
	Status              string          `json:"status"`
	IsSubcontracted     bool            `json:"is_subcontracted"`
	RecurringTemplateID *uuid.UUID      `json:"recurring_template_id,omitempty"`
	InvoiceID           *uuid.UUID      `json:"invoice_id,omitempty"`
	Remark              string          `json:"remark,omitempty"`
	PlannedAt           *time.Time      `json:"planned_at,omitempty"`
	DispatchedAt        *time.Time      `json:"dispatched_at,omitempty"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty"`
	InvoicedAt          *time.Time      `json:"invoiced_at,omitempty"`
	CancelledAt         *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason        string          `json:"cancel_reason,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Version             int             `json:"version"`
}

// OrderListItemResponse represents a transport order in list responses (less detail)
type OrderListItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	ContractorID    uuid.UUID       `json:"contractor_id"`
	LoadingCity     string          `json:"loading_city"`
	LoadingDate     time.Time       `json:"loading_date"`
	UnloadingCity   string          `json:"unloading_city"`
	UnloadingDate   time.Time       `json:"unloading_date"`
	PriceNet        decimal.Decimal `json:"price_net"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	IsSubcontracted bool            `json:"is_subcontracted"`
	IsGenerated     bool            `json:"is_generated"`
	InvoiceID       *uuid.UUID      `json:"invoice_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StatusSummaryResponse reports order counts per lifecycle status
type StatusSummaryResponse struct {
	Draft     int64 `json:"draft"`
	Planned   int64 `json:"planned"`
	InTransit int64 `json:"in_transit"`
	Completed int64 `json:"completed"`
	Invoiced  int64 `json:"invoiced"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

// ToRouteResponse converts the domain route to a response DTO
func ToRouteResponse(route order.Route) RouteResponse {
	return RouteResponse{
		LoadingPlace:   route.LoadingPlace,
		LoadingDate:    route.LoadingDate,
		UnloadingPlace: route.UnloadingPlace,
		UnloadingDate:  route.UnloadingDate,
	}
}

// ToCargoResponse converts the domain cargo to a response DTO
func ToCargoResponse(cargo order.Cargo) CargoResponse {
	return CargoResponse{
		Description: cargo.Description,
		WeightKg:    cargo.WeightKg,
		Pallets:     cargo.Pallets,
	}
}

// ToOrderResponse converts a domain transport order to a response DTO
func ToOrderResponse(o *order.TransportOrder) OrderResponse {
	return OrderResponse{
		ID:                  o.ID,
		TenantID:            o.TenantID,
		OrderNumber:         o.OrderNumber,
		ContractorID:        o.ContractorID,
		CarrierID:           o.CarrierID,
		Route:               ToRouteResponse(o.Route),
		Cargo:               ToCargoResponse(o.Cargo),
		PriceNet:            o.PriceNet,
		Currency:            string(o.Currency),
		VATRate:             int(o.VATRate),
		PriceGross:          o.PriceGross(),
		VehicleID:           o.VehicleID,
		TrailerID:           o.TrailerID,
		DriverID:            o.DriverID,
		Status:              string(o.Status),
		IsSubcontracted:     o.IsSubcontracted(),
		RecurringTemplateID: o.RecurringTemplateID,
		InvoiceID:           o.InvoiceID,
		Remark:              o.Remark,
		PlannedAt:           o.PlannedAt,
		DispatchedAt:        o.DispatchedAt,
		CompletedAt:         o.CompletedAt,
		InvoicedAt:          o.InvoicedAt,
		CancelledAt:         o.CancelledAt,
		CancelReason:        o.CancelReason,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Version:             o.Version,
	}
}

// ToOrderListItemResponse converts a domain transport order to a list response DTO
func ToOrderListItemResponse(o *order.TransportOrder) OrderListItemResponse {
	return OrderListItemResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		ContractorID:    o.ContractorID,
		LoadingCity:     o.Route.LoadingPlace.City(),
		LoadingDate:     o.Route.LoadingDate,
		UnloadingCity:   o.Route.UnloadingPlace.City(),
		UnloadingDate:   o.Route.UnloadingDate,
		PriceNet:        o.PriceNet,
		Currency:        string(o.Currency),
		Status:          string(o.Status),
		IsSubcontracted: o.IsSubcontracted(),
		IsGenerated:     o.IsGenerated(),
		InvoiceID:       o.InvoiceID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderListItemResponses converts a slice of domain transport orders to list responses
func ToOrderListItemResponses(orders []order.TransportOrder) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListItemResponse(&orders[i])
	}
	return responses
}

// vatRateOrDefault keeps the current rate when the update omits it
func vatRateOrDefault(v *int, current invoicing.VATRate) invoicing.VATRate {
	if v == nil {
		return current
	}
	return invoicing.VATRate(*v)
}

// currencyOrDefault keeps the current currency when the update omits it
func currencyOrDefault(v *string, current valueobject.Currency) valueobject.Currency {
	if v == nil {
		return current
	}
	return valueobject.Currency(*v)
}
