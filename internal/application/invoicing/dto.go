package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// ==================== Invoice DTOs ====================

// LineInput represents an invoice position in requests. Amounts are
// never accepted from input; the engine computes them.
type LineInput struct {
	Description  string          `json:"description" binding:"required,min=1,max=500"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceNet decimal.Decimal `json:"unit_price_net" binding:"required"`
	VATRate      int             `json:"vat_rate"`
}

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	ContractorID uuid.UUID   `json:"contractor_id" binding:"required"`
	OrderID      *uuid.UUID  `json:"order_id"`
	SaleDate     time.Time   `json:"sale_date" binding:"required"`
	Currency     string      `json:"currency" binding:"omitempty,len=3"`
	Lines        []LineInput `json:"lines"`
	Remark       string      `json:"remark"`
}

// UpdateInvoiceRequest represents a draft update. A non-nil line list
// replaces all positions.
type UpdateInvoiceRequest struct {
	SaleDate *time.Time  `json:"sale_date"`
	Lines    []LineInput `json:"lines"`
	Remark   *string     `json:"remark"`
}

// AddLineRequest represents a request to append a position
type AddLineRequest struct {
	Description  string          `json:"description" binding:"required,min=1,max=500"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceNet decimal.Decimal `json:"unit_price_net" binding:"required"`
	VATRate      int             `json:"vat_rate"`
}

// AttachRateRequest represents a request to attach an NBP rate. A nil
// date defaults to the invoice sale date.
type AttachRateRequest struct {
	RateDate *time.Time `json:"rate_date"`
}

// IssueInvoiceRequest represents a request to issue a draft invoice
type IssueInvoiceRequest struct {
	IssueDate *time.Time `json:"issue_date"`
}

// PayInvoiceRequest represents a request to mark an invoice paid
type PayInvoiceRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

// CancelInvoiceRequest represents a request to cancel an invoice
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// RescaleInvoiceRequest represents a request to rescale a foreign
// currency draft to a target PLN gross total
type RescaleInvoiceRequest struct {
	TargetPLN decimal.Decimal `json:"target_pln" binding:"required"`
}

// InvoiceListFilter represents filter options for invoice lists
type InvoiceListFilter struct {
	Search       string     `form:"search"`
	ContractorID *uuid.UUID `form:"contractor_id"`
	Status       *string    `form:"status"`
	StartDate    *time.Time `form:"start_date"`
	EndDate      *time.Time `form:"end_date"`
	Overdue      *bool      `form:"overdue"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BuyerResponse represents the buyer snapshot in API responses
type BuyerResponse struct {
	ContractorID uuid.UUID           `json:"contractor_id"`
	Name         string              `json:"name"`
	NIP          string              `json:"nip,omitempty"`
	Address      valueobject.Address `json:"address"`
}

// LineResponse represents an invoice position in API responses
type LineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceNet decimal.Decimal `json:"unit_price_net"`
	VATRate      int             `json:"vat_rate"`
	VATRateLabel string          `json:"vat_rate_label"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
}

// RateResponse represents an NBP exchange rate in API responses
type RateResponse struct {
	Currency      string          `json:"currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
	TableNo       string          `json:"table_no"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID        `json:"id"`
	TenantID      uuid.UUID        `json:"tenant_id"`
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	Buyer         BuyerResponse    `json:"buyer"`
	OrderID       *uuid.UUID       `json:"order_id,omitempty"`
	IssueDate     *time.Time       `json:"issue_date,omitempty"`
	SaleDate      time.Time        `json:"sale_date"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	Currency      string           `json:"currency"`
	Lines         []LineResponse   `json:"lines"`
	TotalNet      decimal.Decimal  `json:"total_net"`
	TotalVAT      decimal.Decimal  `json:"total_vat"`
	TotalGross    decimal.Decimal  `json:"total_gross"`
	ExchangeRate  *RateResponse    `json:"exchange_rate,omitempty"`
	TotalGrossPLN *decimal.Decimal `json:"total_gross_pln,omitempty"`
	Status        string           `json:"status"`
	KSeFStatus    string           `json:"ksef_status"`
	KSeFReference string           `json:"ksef_reference,omitempty"`
	PaidAt        *time.Time       `json:"paid_at,omitempty"`
	CancelledAt   *time.Time       `json:"cancelled_at,omitempty"`
	CancelReason  string           `json:"cancel_reason,omitempty"`
	Remark        string           `json:"remark,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Version       int              `json:"version"`
}

// InvoiceListItemResponse represents an invoice in list responses (less detail)
type InvoiceListItemResponse struct {
	ID             uuid.UUID        `json:"id"`
	InvoiceNumber  string           `json:"invoice_number,omitempty"`
	ContractorID   uuid.UUID        `json:"contractor_id"`
	ContractorName string           `json:"contractor_name"`
	IssueDate      *time.Time       `json:"issue_date,omitempty"`
	SaleDate       time.Time        `json:"sale_date"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	Currency       string           `json:"currency"`
	TotalNet       decimal.Decimal  `json:"total_net"`
	TotalGross     decimal.Decimal  `json:"total_gross"`
	TotalGrossPLN  *decimal.Decimal `json:"total_gross_pln,omitempty"`
	Status         string           `json:"status"`
	KSeFStatus     string           `json:"ksef_status"`
	IsOverdue      bool             `json:"is_overdue"`
	DaysOverdue    int              `json:"days_overdue,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// RescaleResponse reports the outcome of a rescale operation: the
// achieved PLN total and its drift from the requested target.
type RescaleResponse struct {
	Invoice     InvoiceResponse `json:"invoice"`
	TargetPLN   decimal.Decimal `json:"target_pln"`
	AchievedPLN decimal.Decimal `json:"achieved_pln"`
	Drift       decimal.Decimal `json:"drift"`
}

// KSeFSubmissionResponse reports the gateway state of an invoice
type KSeFSubmissionResponse struct {
	InvoiceID       uuid.UUID `json:"invoice_id"`
	InvoiceNumber   string    `json:"invoice_number"`
	KSeFStatus      string    `json:"ksef_status"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Message         string    `json:"message,omitempty"`
}

// ToBuyerResponse converts the domain buyer snapshot to a response DTO
func ToBuyerResponse(buyer invoicing.Buyer) BuyerResponse {
	return BuyerResponse{
		ContractorID: buyer.ContractorID,
		Name:         buyer.Name,
		NIP:          buyer.NIP,
		Address:      buyer.Address,
	}
}

// ToLineResponse converts a domain line to a response DTO
func ToLineResponse(line *invoicing.Line) LineResponse {
	return LineResponse{
		ID:           line.ID,
		Description:  line.Description,
		Quantity:     line.Quantity,
		UnitPriceNet: line.UnitPriceNet,
		VATRate:      int(line.VATRate),
		VATRateLabel: line.VATRate.Label(),
		NetAmount:    line.NetAmount,
		VATAmount:    line.VATAmount,
		GrossAmount:  line.GrossAmount,
	}
}

// ToRateResponse converts a domain exchange rate to a response DTO
func ToRateResponse(rate invoicing.ExchangeRate) RateResponse {
	return RateResponse{
		Currency:      string(rate.Currency),
		Rate:          rate.Rate,
		EffectiveDate: rate.EffectiveDate,
		TableNo:       rate.TableNo,
	}
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	lines := make([]LineResponse, len(inv.Lines))
	for i := range inv.Lines {
		lines[i] = ToLineResponse(&inv.Lines[i])
	}

	var rate *RateResponse
	if inv.ExchangeRate != nil {
		r := ToRateResponse(*inv.ExchangeRate)
		rate = &r
	}

	return InvoiceResponse{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		InvoiceNumber: inv.InvoiceNumber,
		Buyer:         ToBuyerResponse(inv.Buyer),
		OrderID:       inv.OrderID,
		IssueDate:     inv.IssueDate,
		SaleDate:      inv.SaleDate,
		DueDate:       inv.DueDate,
		Currency:      string(inv.Currency),
		Lines:         lines,
		TotalNet:      inv.TotalNet,
		TotalVAT:      inv.TotalVAT,
		TotalGross:    inv.TotalGross,
		ExchangeRate:  rate,
		TotalGrossPLN: inv.TotalGrossPLN,
		Status:        string(inv.Status),
		KSeFStatus:    string(inv.KSeFStatus),
		KSeFReference: inv.KSeFReference,
		PaidAt:        inv.PaidAt,
		CancelledAt:   inv.CancelledAt,
		CancelReason:  inv.CancelReason,
		Remark:        inv.Remark,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Version:       inv.Version,
	}
}

// ToInvoiceListItemResponse converts a domain invoice to a list response
// DTO. Overdue is derived against the reference date.
func ToInvoiceListItemResponse(inv *invoicing.Invoice, ref time.Time) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		ContractorID:   inv.Buyer.ContractorID,
		ContractorName: inv.Buyer.Name,
		IssueDate:      inv.IssueDate,
		SaleDate:       inv.SaleDate,
		DueDate:        inv.DueDate,
		Currency:       string(inv.Currency),
		TotalNet:       inv.TotalNet,
		TotalGross:     inv.TotalGross,
		TotalGrossPLN:  inv.TotalGrossPLN,
		Status:         string(inv.Status),
		KSeFStatus:     string(inv.KSeFStatus),
		IsOverdue:      inv.IsOverdue(ref),
		DaysOverdue:    inv.DaysOverdue(ref),
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// ToInvoiceListItemResponses converts a slice of domain invoices to list responses
func ToInvoiceListItemResponses(invoices []invoicing.Invoice, ref time.Time) []InvoiceListItemResponse {
	responses := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceListItemResponse(&invoices[i], ref)
	}
	return responses
}
