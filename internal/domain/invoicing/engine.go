package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/shared"
)

// The monetary engine. Every function here is pure: explicit inputs,
// explicit outputs, no clock, no I/O. Amounts stay exact through all
// intermediate computation; rounding to two places happens only on
// values leaving the system (display, per-line rescale results).

// LineAmounts holds the derived amounts of a single line
type LineAmounts struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

// Totals holds invoice-level sums
type Totals struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputeLineAmounts derives net, VAT and gross for one position:
// net = quantity x unit price, VAT = net x rate / 100 (zero for exempt),
// gross = net + VAT. No rounding is applied.
func ComputeLineAmounts(quantity, unitPriceNet decimal.Decimal, rate VATRate) LineAmounts {
	net := quantity.Mul(unitPriceNet)
	vat := decimal.Zero
	if !rate.IsExempt() {
		vat = net.Mul(rate.Percent()).Div(oneHundred)
	}
	return LineAmounts{
		Net:   net,
		VAT:   vat,
		Gross: net.Add(vat),
	}
}

// ComputeTotals sums the derived amounts of all lines. Sums are exact;
// net + VAT equals gross at every line and therefore at the total.
func ComputeTotals(lines []Line) Totals {
	t := Totals{Net: decimal.Zero, VAT: decimal.Zero, Gross: decimal.Zero}
	for _, l := range lines {
		amounts := ComputeLineAmounts(l.Quantity, l.UnitPriceNet, l.VATRate)
		t.Net = t.Net.Add(amounts.Net)
		t.VAT = t.VAT.Add(amounts.VAT)
		t.Gross = t.Gross.Add(amounts.Gross)
	}
	return t
}

// ToPLN converts a native-currency amount to PLN with the given rate
func ToPLN(amount decimal.Decimal, rate ExchangeRate) decimal.Decimal {
	return amount.Mul(rate.Rate)
}

// RescaleToTargetPLN scales every line's unit price by a common ratio so
// that the recomputed gross total, converted with the rate, approximates
// targetPLN. Each scaled unit price is rounded half-up to two places
// independently, so the achieved total may drift from the target by up
// to a cent per line; callers accept results within 0.01 x rate.
//
// The input lines are not modified. When the current gross total is
// zero the ratio is undefined and ErrRescaleNotComputable is returned.
func RescaleToTargetPLN(lines []Line, targetPLN decimal.Decimal, rate ExchangeRate) ([]Line, error) {
	currentGross := ComputeTotals(lines).Gross
	if currentGross.IsZero() {
		return nil, shared.ErrRescaleNotComputable
	}

	targetNative := targetPLN.Div(rate.Rate)
	ratio := targetNative.Div(currentGross)

	rescaled := make([]Line, len(lines))
	for i, l := range lines {
		l.UnitPriceNet = l.UnitPriceNet.Mul(ratio).Round(2)
		l.Recompute()
		rescaled[i] = l
	}
	return rescaled, nil
}
