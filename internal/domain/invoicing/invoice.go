package invoicing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusIssued || target == InvoiceStatusCancelled
	case InvoiceStatusIssued:
		return target == InvoiceStatusPaid || target == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Buyer is the contractor snapshot taken when the invoice is issued.
// Later edits to the contractor do not change issued invoices.
type Buyer struct {
	ContractorID uuid.UUID           `json:"contractor_id"`
	Name         string              `json:"name"`
	NIP          string              `json:"nip,omitempty"`
	Address      valueobject.Address `json:"address"`
}

// Invoice is the invoicing aggregate root. Its monetary fields are a
// projection of the engine over the lines: totals are recomputed on
// every mutation and never accepted from input.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber string
	Buyer         Buyer
	OrderID       *uuid.UUID
	IssueDate     *time.Time
	SaleDate      time.Time
	DueDate       *time.Time
	Currency      valueobject.Currency
	Lines         []Line
	TotalNet      decimal.Decimal
	TotalVAT      decimal.Decimal
	TotalGross    decimal.Decimal
	ExchangeRate  *ExchangeRate
	TotalGrossPLN *decimal.Decimal
	Status        InvoiceStatus
	KSeFStatus    KSeFStatus
	KSeFReference string
	PaidAt        *time.Time
	CancelledAt   *time.Time
	CancelReason  string
	Remark        string
}

// NewInvoice creates a draft invoice for a contractor. The buyer
// snapshot is provisional until the invoice is issued.
func NewInvoice(tenantID uuid.UUID, buyer Buyer, saleDate time.Time, currency valueobject.Currency) (*Invoice, error) {
	if buyer.ContractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor ID cannot be empty")
	}
	if buyer.Name == "" {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor name cannot be empty")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_SALE_DATE", "Sale date is required")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Invalid currency: %s", currency))
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Buyer:               buyer,
		SaleDate:            saleDate,
		Currency:            currency,
		Lines:               make([]Line, 0),
		TotalNet:            decimal.Zero,
		TotalVAT:            decimal.Zero,
		TotalGross:          decimal.Zero,
		Status:              InvoiceStatusDraft,
		KSeFStatus:          KSeFNotSubmitted,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddLine appends a position to a draft invoice
func (inv *Invoice) AddLine(description string, quantity, unitPriceNet decimal.Decimal, vatRate VATRate) (*Line, error) {
	if inv.Status != InvoiceStatusDraft {
		return nil, shared.ErrInvoiceNotDraft
	}

	line, err := NewLine(description, quantity, unitPriceNet, vatRate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_LINE", err.Error())
	}

	inv.Lines = append(inv.Lines, line)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return &inv.Lines[len(inv.Lines)-1], nil
}

// RemoveLine deletes a position from a draft invoice
func (inv *Invoice) RemoveLine(lineID uuid.UUID) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.ErrInvoiceNotDraft
	}

	for idx := range inv.Lines {
		if inv.Lines[idx].ID == lineID {
			inv.Lines = append(inv.Lines[:idx], inv.Lines[idx+1:]...)
			inv.recalculateTotals()
			inv.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Invoice line not found")
}

// ReplaceLines swaps the whole position list of a draft invoice
func (inv *Invoice) ReplaceLines(lines []Line) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.ErrInvoiceNotDraft
	}

	inv.Lines = lines
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// recalculateTotals refreshes every derived amount from the engine
func (inv *Invoice) recalculateTotals() {
	for idx := range inv.Lines {
		inv.Lines[idx].Recompute()
	}
	totals := ComputeTotals(inv.Lines)
	inv.TotalNet = totals.Net
	inv.TotalVAT = totals.VAT
	inv.TotalGross = totals.Gross
	inv.refreshPLNEquivalent()
}

// refreshPLNEquivalent keeps the PLN projection in sync with the totals
func (inv *Invoice) refreshPLNEquivalent() {
	if !inv.Currency.IsForeign() {
		inv.TotalGrossPLN = nil
		return
	}
	if inv.ExchangeRate == nil {
		inv.TotalGrossPLN = nil
		return
	}
	pln := ToPLN(inv.TotalGross, *inv.ExchangeRate)
	inv.TotalGrossPLN = &pln
}

// ChangeSaleDate moves the sale date of a draft invoice
func (inv *Invoice) ChangeSaleDate(saleDate time.Time) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.ErrInvoiceNotDraft
	}
	if saleDate.IsZero() {
		return shared.NewDomainError("INVALID_SALE_DATE", "Sale date is required")
	}
	inv.SaleDate = saleDate
	inv.UpdatedAt = time.Now()
	return nil
}

// AttachExchangeRate sets the NBP rate used for the PLN equivalent.
// Only foreign-currency invoices carry a rate.
func (inv *Invoice) AttachExchangeRate(rate ExchangeRate) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.ErrInvoiceNotDraft
	}
	if !inv.Currency.IsForeign() {
		return shared.NewDomainError("INVALID_CURRENCY", "PLN invoices do not take an exchange rate")
	}
	if rate.Currency != inv.Currency {
		return shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Exchange rate currency %s does not match invoice currency %s", rate.Currency, inv.Currency))
	}

	inv.ExchangeRate = &rate
	inv.refreshPLNEquivalent()
	inv.UpdatedAt = time.Now()
	return nil
}

// RescaleToTargetPLN proportionally adjusts every line's unit price so
// the PLN equivalent approximates the target amount. Draft only; the
// invoice must carry an exchange rate and a non-zero gross total.
func (inv *Invoice) RescaleToTargetPLN(targetPLN decimal.Decimal) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.ErrInvoiceNotDraft
	}
	if !inv.Currency.IsForeign() || inv.ExchangeRate == nil {
		return shared.ErrExchangeRateRequired
	}
	if !targetPLN.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Target PLN amount must be positive")
	}

	rescaled, err := RescaleToTargetPLN(inv.Lines, targetPLN, *inv.ExchangeRate)
	if err != nil {
		return err
	}

	inv.Lines = rescaled
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// Issue finalizes the invoice: it receives its number, the buyer
// snapshot freezes and the lines become immutable. Foreign-currency
// invoices must carry an exchange rate before issuing.
func (inv *Invoice) Issue(invoiceNumber string, buyer Buyer, issueDate time.Time, paymentTermDays int) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusIssued) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue invoice in %s status", inv.Status))
	}
	if invoiceNumber == "" {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(inv.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Cannot issue an invoice without lines")
	}
	if inv.Currency.IsForeign() && inv.ExchangeRate == nil {
		return shared.ErrExchangeRateRequired
	}
	if paymentTermDays < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Payment term cannot be negative")
	}

	issueDay := time.Date(issueDate.Year(), issueDate.Month(), issueDate.Day(), 0, 0, 0, 0, time.UTC)
	due := issueDay.AddDate(0, 0, paymentTermDays)

	inv.InvoiceNumber = invoiceNumber
	inv.Buyer = buyer
	inv.IssueDate = &issueDay
	inv.DueDate = &due
	inv.Status = InvoiceStatusIssued
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))

	return nil
}

// MarkPaid records the payment of an issued invoice
func (inv *Invoice) MarkPaid(paidAt time.Time) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice paid in %s status", inv.Status))
	}

	inv.Status = InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.UpdatedAt = time.Now()

	inv.AddDomainEvent(NewInvoicePaidEvent(inv))

	return nil
}

// Cancel voids a draft or issued invoice
func (inv *Invoice) Cancel(reason string) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}

	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.CancelReason = reason
	inv.UpdatedAt = now

	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv, reason))

	return nil
}

// LinkOrder associates the invoice with a transport order
func (inv *Invoice) LinkOrder(orderID uuid.UUID) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.ErrInvoiceNotDraft
	}
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Order ID cannot be empty")
	}
	inv.OrderID = &orderID
	inv.UpdatedAt = time.Now()
	return nil
}

// MarkKSeFPending records a successful submission to the gateway
func (inv *Invoice) MarkKSeFPending(referenceNumber string) error {
	if inv.Status != InvoiceStatusIssued {
		return shared.NewDomainError("INVALID_STATE", "Only issued invoices can be submitted to KSeF")
	}
	if inv.KSeFStatus != KSeFNotSubmitted && inv.KSeFStatus != KSeFRejected {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Invoice already submitted (status %s)", inv.KSeFStatus))
	}
	if referenceNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "KSeF reference number cannot be empty")
	}

	inv.KSeFStatus = KSeFPending
	inv.KSeFReference = referenceNumber
	inv.UpdatedAt = time.Now()

	inv.AddDomainEvent(NewInvoiceSubmittedToKSeFEvent(inv))

	return nil
}

// ApplyKSeFStatus records the gateway's processing outcome
func (inv *Invoice) ApplyKSeFStatus(status KSeFStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid KSeF status: %s", status))
	}
	if inv.KSeFStatus == KSeFNotSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Invoice has not been submitted to KSeF")
	}

	inv.KSeFStatus = status
	inv.UpdatedAt = time.Now()
	return nil
}

// IsOverdue reports whether an issued invoice has passed its due date
// without payment.
func (inv *Invoice) IsOverdue(ref time.Time) bool {
	return inv.Status == InvoiceStatusIssued &&
		inv.DueDate != nil &&
		inv.DueDate.Before(time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC))
}

// DaysOverdue returns how many whole days the invoice is past due at the
// reference date, zero when not overdue.
func (inv *Invoice) DaysOverdue(ref time.Time) int {
	if !inv.IsOverdue(ref) {
		return 0
	}
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return int(refDay.Sub(*inv.DueDate) / (24 * time.Hour))
}

// SetRemark sets a free-form note on the invoice
func (inv *Invoice) SetRemark(remark string) {
	inv.Remark = remark
	inv.UpdatedAt = time.Now()
}
