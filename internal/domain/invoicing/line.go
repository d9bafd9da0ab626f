package invoicing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is a single invoice position. The amount fields are derived and
// always recomputed by the monetary engine before the invoice is saved;
// they are stored only as a projection, never trusted as input.
type Line struct {
	ID           uuid.UUID       `json:"id"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceNet decimal.Decimal `json:"unit_price_net"`
	VATRate      VATRate         `json:"vat_rate"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
}

// NewLine creates a validated invoice line with computed amounts
func NewLine(description string, quantity, unitPriceNet decimal.Decimal, vatRate VATRate) (Line, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Line{}, fmt.Errorf("line description is required")
	}
	if !quantity.IsPositive() {
		return Line{}, fmt.Errorf("quantity must be positive")
	}
	if unitPriceNet.IsNegative() {
		return Line{}, fmt.Errorf("unit price cannot be negative")
	}
	if !vatRate.IsValid() {
		return Line{}, fmt.Errorf("invalid VAT rate: %d", vatRate)
	}

	l := Line{
		ID:           uuid.New(),
		Description:  description,
		Quantity:     quantity,
		UnitPriceNet: unitPriceNet,
		VATRate:      vatRate,
	}
	l.Recompute()
	return l, nil
}

// Recompute refreshes the derived amounts from the engine
func (l *Line) Recompute() {
	amounts := ComputeLineAmounts(l.Quantity, l.UnitPriceNet, l.VATRate)
	l.NetAmount = amounts.Net
	l.VATAmount = amounts.VAT
	l.GrossAmount = amounts.Gross
}
