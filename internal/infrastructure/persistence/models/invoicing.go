package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// The buyer snapshot and the optional NBP exchange rate are flattened
// into columns; the rate is present when exchange_rate is non-null.
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber        string               `gorm:"type:varchar(50);index:idx_invoice_tenant_number"`
	BuyerContractorID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	BuyerName            string               `gorm:"type:varchar(200);not null"`
	BuyerNIP             string               `gorm:"type:varchar(10)"`
	BuyerAddress         valueobject.Address  `gorm:"type:jsonb"`
	OrderID              *uuid.UUID           `gorm:"type:uuid;index"`
	IssueDate            *time.Time           `gorm:"index"`
	SaleDate             time.Time            `gorm:"not null"`
	DueDate              *time.Time           `gorm:"index"`
	Currency             valueobject.Currency `gorm:"type:varchar(3);not null;default:'PLN'"`
	Lines                []InvoiceLineModel   `gorm:"foreignKey:InvoiceID;references:ID"`
	TotalNet             decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	TotalVAT             decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	TotalGross           decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	ExchangeRate         *decimal.Decimal     `gorm:"type:decimal(18,6)"`
	ExchangeRateCurrency string               `gorm:"type:varchar(3)"`
	ExchangeRateDate     *time.Time
	ExchangeRateTable    string                  `gorm:"type:varchar(50)"`
	TotalGrossPLN        *decimal.Decimal        `gorm:"type:decimal(18,2)"`
	Status               invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	KSeFStatus           invoicing.KSeFStatus    `gorm:"type:varchar(20);not null;default:'NOT_SUBMITTED'"`
	KSeFReference        string                  `gorm:"type:varchar(100)"`
	PaidAt               *time.Time
	CancelledAt          *time.Time
	CancelReason         string `gorm:"type:varchar(500)"`
	Remark               string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for a single invoice
// position. Lines are value children of the invoice and are rewritten
// wholesale on every save.
type InvoiceLineModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key"`
	InvoiceID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Description  string            `gorm:"type:varchar(500);not null"`
	Quantity     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	UnitPriceNet decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	VATRate      invoicing.VATRate `gorm:"not null"`
	NetAmount    decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	VATAmount    decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	GrossAmount  decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain invoice Line
func (m *InvoiceLineModel) ToDomain() invoicing.Line {
	return invoicing.Line{
		ID:           m.ID,
		Description:  m.Description,
		Quantity:     m.Quantity,
		UnitPriceNet: m.UnitPriceNet,
		VATRate:      m.VATRate,
		NetAmount:    m.NetAmount,
		VATAmount:    m.VATAmount,
		GrossAmount:  m.GrossAmount,
	}
}

// InvoiceLineModelFromDomain creates a persistence model from a domain Line
func InvoiceLineModelFromDomain(invoiceID uuid.UUID, l *invoicing.Line) *InvoiceLineModel {
	return &InvoiceLineModel{
		ID:           l.ID,
		InvoiceID:    invoiceID,
		Description:  l.Description,
		Quantity:     l.Quantity,
		UnitPriceNet: l.UnitPriceNet,
		VATRate:      l.VATRate,
		NetAmount:    l.NetAmount,
		VATAmount:    l.VATAmount,
		GrossAmount:  l.GrossAmount,
	}
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		Buyer: invoicing.Buyer{
			ContractorID: m.BuyerContractorID,
			Name:         m.BuyerName,
			NIP:          m.BuyerNIP,
			Address:      m.BuyerAddress,
		},
		OrderID:       m.OrderID,
		IssueDate:     m.IssueDate,
		SaleDate:      m.SaleDate,
		DueDate:       m.DueDate,
		Currency:      m.Currency,
		Lines:         make([]invoicing.Line, len(m.Lines)),
		TotalNet:      m.TotalNet,
		TotalVAT:      m.TotalVAT,
		TotalGross:    m.TotalGross,
		TotalGrossPLN: m.TotalGrossPLN,
		Status:        m.Status,
		KSeFStatus:    m.KSeFStatus,
		KSeFReference: m.KSeFReference,
		PaidAt:        m.PaidAt,
		CancelledAt:   m.CancelledAt,
		CancelReason:  m.CancelReason,
		Remark:        m.Remark,
	}
	m.PopulateTenantAggregateRoot(&inv.TenantAggregateRoot)

	for i := range m.Lines {
		inv.Lines[i] = m.Lines[i].ToDomain()
	}

	if m.ExchangeRate != nil && m.ExchangeRateDate != nil {
		inv.ExchangeRate = &invoicing.ExchangeRate{
			Currency:      valueobject.Currency(m.ExchangeRateCurrency),
			Rate:          *m.ExchangeRate,
			EffectiveDate: *m.ExchangeRateDate,
			TableNo:       m.ExchangeRateTable,
		}
	}

	return inv
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.BuyerContractorID = inv.Buyer.ContractorID
	m.BuyerName = inv.Buyer.Name
	m.BuyerNIP = inv.Buyer.NIP
	m.BuyerAddress = inv.Buyer.Address
	m.OrderID = inv.OrderID
	m.IssueDate = inv.IssueDate
	m.SaleDate = inv.SaleDate
	m.DueDate = inv.DueDate
	m.Currency = inv.Currency
	m.TotalNet = inv.TotalNet
	m.TotalVAT = inv.TotalVAT
	m.TotalGross = inv.TotalGross
	m.TotalGrossPLN = inv.TotalGrossPLN
	m.Status = inv.Status
	m.KSeFStatus = inv.KSeFStatus
	m.KSeFReference = inv.KSeFReference
	m.PaidAt = inv.PaidAt
	m.CancelledAt = inv.CancelledAt
	m.CancelReason = inv.CancelReason
	m.Remark = inv.Remark

	if inv.ExchangeRate != nil {
		rate := inv.ExchangeRate.Rate
		date := inv.ExchangeRate.EffectiveDate
		m.ExchangeRate = &rate
		m.ExchangeRateCurrency = string(inv.ExchangeRate.Currency)
		m.ExchangeRateDate = &date
		m.ExchangeRateTable = inv.ExchangeRate.TableNo
	} else {
		m.ExchangeRate = nil
		m.ExchangeRateCurrency = ""
		m.ExchangeRateDate = nil
		m.ExchangeRateTable = ""
	}

	m.Lines = make([]InvoiceLineModel, len(inv.Lines))
	for i := range inv.Lines {
		m.Lines[i] = *InvoiceLineModelFromDomain(inv.ID, &inv.Lines[i])
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}
