package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// TransportOrderModel is the persistence model for the TransportOrder
// aggregate root. The route and cargo value objects are flattened into
// columns; the loading and unloading places are stored as jsonb.
type TransportOrderModel struct {
	TenantAggregateModel
	OrderNumber         string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_transport_order_tenant_number,priority:2"`
	ContractorID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	CarrierID           *uuid.UUID           `gorm:"type:uuid;index"`
	LoadingPlace        valueobject.Address  `gorm:"type:jsonb"`
	LoadingDate         time.Time            `gorm:"not null;index"`
	UnloadingPlace      valueobject.Address  `gorm:"type:jsonb"`
	UnloadingDate       time.Time            `gorm:"not null"`
	CargoDescription    string               `gorm:"type:varchar(500)"`
	CargoWeightKg       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	CargoPallets        int                  `gorm:"not null;default:0"`
	PriceNet            decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Currency            valueobject.Currency `gorm:"type:varchar(3);not null;default:'PLN'"`
	VATRate             invoicing.VATRate    `gorm:"not null;default:23"`
	VehicleID           *uuid.UUID           `gorm:"type:uuid;index"`
	TrailerID           *uuid.UUID           `gorm:"type:uuid"`
	DriverID            *uuid.UUID           `gorm:"type:uuid;index"`
	Status              order.OrderStatus    `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	RecurringTemplateID *uuid.UUID           `gorm:"type:uuid;index"`
	InvoiceID           *uuid.UUID           `gorm:"type:uuid;index"`
	Remark              string               `gorm:"type:text"`
	PlannedAt           *time.Time
	DispatchedAt        *time.Time
	CompletedAt         *time.Time
	InvoicedAt          *time.Time
	CancelledAt         *time.Time
	CancelReason        string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TransportOrderModel) TableName() string {
	return "transport_orders"
}

// ToDomain converts the persistence model to a domain TransportOrder
func (m *TransportOrderModel) ToDomain() *order.TransportOrder {
	o := &order.TransportOrder{
		TenantAggregateRoot: shared.TenantAggregateRoot{},
		OrderNumber:         m.OrderNumber,
		ContractorID:        m.ContractorID,
		CarrierID:           m.CarrierID,
		Route: order.Route{
			LoadingPlace:   m.LoadingPlace,
			LoadingDate:    m.LoadingDate,
			UnloadingPlace: m.UnloadingPlace,
			UnloadingDate:  m.UnloadingDate,
		},
		Cargo: order.Cargo{
			Description: m.CargoDescription,
			WeightKg:    m.CargoWeightKg,
			Pallets:     m.CargoPallets,
		},
		PriceNet:            m.PriceNet,
		Currency:            m.Currency,
		VATRate:             m.VATRate,
		VehicleID:           m.VehicleID,
		TrailerID:           m.TrailerID,
		DriverID:            m.DriverID,
		Status:              m.Status,
		RecurringTemplateID: m.RecurringTemplateID,
		InvoiceID:           m.InvoiceID,
		Remark:              m.Remark,
		PlannedAt:           m.PlannedAt,
		DispatchedAt:        m.DispatchedAt,
		CompletedAt:         m.CompletedAt,
		InvoicedAt:          m.InvoicedAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)
	return o
}

// FromDomain populates the persistence model from a domain TransportOrder
func (m *TransportOrderModel) FromDomain(o *order.TransportOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.ContractorID = o.ContractorID
	m.CarrierID = o.CarrierID
	m.LoadingPlace = o.Route.LoadingPlace
	m.LoadingDate = o.Route.LoadingDate
	m.UnloadingPlace = o.Route.UnloadingPlace
	m.UnloadingDate = o.Route.UnloadingDate
	m.CargoDescription = o.Cargo.Description
	m.CargoWeightKg = o.Cargo.WeightKg
	m.CargoPallets = o.Cargo.Pallets
	m.PriceNet = o.PriceNet
	m.Currency = o.Currency
	m.VATRate = o.VATRate
	m.VehicleID = o.VehicleID
	m.TrailerID = o.TrailerID
	m.DriverID = o.DriverID
	m.Status = o.Status
	m.RecurringTemplateID = o.RecurringTemplateID
	m.InvoiceID = o.InvoiceID
	m.Remark = o.Remark
	m.PlannedAt = o.PlannedAt
	m.DispatchedAt = o.DispatchedAt
	m.CompletedAt = o.CompletedAt
	m.InvoicedAt = o.InvoicedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
}

// TransportOrderModelFromDomain creates a new persistence model from a domain TransportOrder
func TransportOrderModelFromDomain(o *order.TransportOrder) *TransportOrderModel {
	m := &TransportOrderModel{}
	m.FromDomain(o)
	return m
}
