package invoicing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// Test helpers
func mustLine(t *testing.T, description string, quantity, unitPrice string, rate VATRate) Line {
	t.Helper()
	line, err := NewLine(description, decimal.RequireFromString(quantity), decimal.RequireFromString(unitPrice), rate)
	require.NoError(t, err)
	return line
}

func testRate(t *testing.T, currency valueobject.Currency, rate string) ExchangeRate {
	t.Helper()
	r, err := NewExchangeRate(currency, decimal.RequireFromString(rate), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "010/A/NBP/2026")
	require.NoError(t, err)
	return r
}

// ============================================
// ComputeLineAmounts Tests
// ============================================

func TestComputeLineAmounts(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		rate      VATRate
		wantNet   string
		wantVAT   string
		wantGross string
	}{
		{"standard rate", "10", "100", VATRate23, "1000", "230", "1230"},
		{"exempt computes as zero", "2", "50", VATRateExempt, "100", "0", "100"},
		{"no rounding on net", "3", "33.33", VATRate23, "99.99", "22.9977", "122.9877"},
		{"fractional quantity", "0.5", "19.99", VATRate8, "9.995", "0.7996", "10.7946"},
		{"zero rate", "4", "25", VATRate0, "100", "0", "100"},
		{"zero price", "10", "0", VATRate23, "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amounts := ComputeLineAmounts(decimal.RequireFromString(tt.quantity), decimal.RequireFromString(tt.unitPrice), tt.rate)
			assert.True(t, amounts.Net.Equal(decimal.RequireFromString(tt.wantNet)), "net: got %s", amounts.Net)
			assert.True(t, amounts.VAT.Equal(decimal.RequireFromString(tt.wantVAT)), "vat: got %s", amounts.VAT)
			assert.True(t, amounts.Gross.Equal(decimal.RequireFromString(tt.wantGross)), "gross: got %s", amounts.Gross)
		})
	}
}

func TestComputeLineAmounts_GrossIsNetPlusVAT(t *testing.T) {
	rates := []VATRate{VATRate23, VATRate8, VATRate5, VATRate0, VATRateExempt}
	prices := []string{"0.01", "33.33", "99.999", "12345.67"}

	for _, rate := range rates {
		for _, price := range prices {
			amounts := ComputeLineAmounts(decimal.RequireFromString("7"), decimal.RequireFromString(price), rate)
			assert.True(t, amounts.Gross.Equal(amounts.Net.Add(amounts.VAT)),
				"rate %d price %s: gross %s != net %s + vat %s", rate, price, amounts.Gross, amounts.Net, amounts.VAT)
		}
	}
}

// ============================================
// Line Tests
// ============================================

func TestNewLine(t *testing.T) {
	t.Run("creates line with computed amounts", func(t *testing.T) {
		line := mustLine(t, "Transport Warszawa-Berlin", "10", "100", VATRate23)

		assert.NotEqual(t, "", line.ID.String())
		assert.True(t, line.NetAmount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, line.VATAmount.Equal(decimal.NewFromInt(230)))
		assert.True(t, line.GrossAmount.Equal(decimal.NewFromInt(1230)))
	})

	t.Run("preserves exempt rate", func(t *testing.T) {
		line := mustLine(t, "Uslugi zwolnione", "2", "50", VATRateExempt)

		assert.Equal(t, VATRateExempt, line.VATRate)
		assert.True(t, line.VATAmount.IsZero())
		assert.True(t, line.GrossAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewLine("  ", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate23)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewLine("Fracht", decimal.Zero, decimal.NewFromInt(100), VATRate23)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewLine("Fracht", decimal.NewFromInt(-1), decimal.NewFromInt(100), VATRate23)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(-100), VATRate23)
		assert.Error(t, err)
	})

	t.Run("rejects unknown vat rate", func(t *testing.T) {
		_, err := NewLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate(19))
		assert.Error(t, err)
	})
}

// ============================================
// ComputeTotals Tests
// ============================================

func TestComputeTotals(t *testing.T) {
	t.Run("sums mixed rates exactly", func(t *testing.T) {
		lines := []Line{
			mustLine(t, "Fracht krajowy", "10", "100", VATRate23),
			mustLine(t, "Uslugi zwolnione", "2", "50", VATRateExempt),
			mustLine(t, "Przeladunek", "3", "33.33", VATRate8),
		}

		totals := ComputeTotals(lines)

		assert.True(t, totals.Net.Equal(decimal.RequireFromString("1199.99")), "net: got %s", totals.Net)
		assert.True(t, totals.VAT.Equal(decimal.RequireFromString("237.9992")), "vat: got %s", totals.VAT)
		assert.True(t, totals.Gross.Equal(decimal.RequireFromString("1437.9892")), "gross: got %s", totals.Gross)
		assert.True(t, totals.Gross.Equal(totals.Net.Add(totals.VAT)))
	})

	t.Run("empty invoice sums to zero", func(t *testing.T) {
		totals := ComputeTotals(nil)

		assert.True(t, totals.Net.IsZero())
		assert.True(t, totals.VAT.IsZero())
		assert.True(t, totals.Gross.IsZero())
	})

	t.Run("single line equals its own amounts", func(t *testing.T) {
		line := mustLine(t, "Fracht", "1", "1000", VATRate23)
		totals := ComputeTotals([]Line{line})

		assert.True(t, totals.Net.Equal(line.NetAmount))
		assert.True(t, totals.VAT.Equal(line.VATAmount))
		assert.True(t, totals.Gross.Equal(line.GrossAmount))
	})
}

// ============================================
// ToPLN Tests
// ============================================

func TestToPLN(t *testing.T) {
	rate := testRate(t, valueobject.EUR, "4.25")

	t.Run("multiplies gross by the rate", func(t *testing.T) {
		pln := ToPLN(decimal.NewFromInt(1000), rate)
		assert.True(t, pln.Equal(decimal.NewFromInt(4250)), "got %s", pln)
	})

	t.Run("keeps exact product", func(t *testing.T) {
		pln := ToPLN(decimal.NewFromInt(1230), rate)
		assert.True(t, pln.Equal(decimal.RequireFromString("5227.50")), "got %s", pln)
	})

	t.Run("zero amount converts to zero", func(t *testing.T) {
		assert.True(t, ToPLN(decimal.Zero, rate).IsZero())
	})
}

// ============================================
// RescaleToTargetPLN Tests
// ============================================

func TestRescaleToTargetPLN(t *testing.T) {
	t.Run("single line reaches target within tolerance", func(t *testing.T) {
		rate := testRate(t, valueobject.EUR, "4.25")
		lines := []Line{mustLine(t, "Fracht Berlin", "1", "1000", VATRate0)}

		rescaled, err := RescaleToTargetPLN(lines, decimal.NewFromInt(5000), rate)
		require.NoError(t, err)
		require.Len(t, rescaled, 1)

		assert.True(t, rescaled[0].UnitPriceNet.Equal(decimal.RequireFromString("1176.47")), "got %s", rescaled[0].UnitPriceNet)

		achieved := ToPLN(ComputeTotals(rescaled).Gross, rate)
		delta := achieved.Sub(decimal.NewFromInt(5000)).Abs()
		tolerance := decimal.RequireFromString("0.01").Mul(rate.Rate)
		assert.True(t, delta.LessThanOrEqual(tolerance), "delta %s exceeds tolerance %s", delta, tolerance)
	})

	t.Run("multiple lines keep proportions", func(t *testing.T) {
		rate := testRate(t, valueobject.EUR, "4")
		lines := []Line{
			mustLine(t, "Fracht", "1", "100", VATRate23),
			mustLine(t, "Postoj", "1", "200", VATRate23),
		}

		rescaled, err := RescaleToTargetPLN(lines, decimal.NewFromInt(2000), rate)
		require.NoError(t, err)
		require.Len(t, rescaled, 2)

		assert.True(t, rescaled[0].UnitPriceNet.Equal(decimal.RequireFromString("135.50")), "got %s", rescaled[0].UnitPriceNet)
		assert.True(t, rescaled[1].UnitPriceNet.Equal(decimal.RequireFromString("271.00")), "got %s", rescaled[1].UnitPriceNet)

		achieved := ToPLN(ComputeTotals(rescaled).Gross, rate)
		delta := achieved.Sub(decimal.NewFromInt(2000)).Abs()
		tolerance := decimal.RequireFromString("0.02").Mul(rate.Rate)
		assert.True(t, delta.LessThanOrEqual(tolerance), "delta %s exceeds tolerance %s", delta, tolerance)
	})

	t.Run("does not modify input lines", func(t *testing.T) {
		rate := testRate(t, valueobject.EUR, "4.25")
		lines := []Line{mustLine(t, "Fracht", "1", "1000", VATRate0)}

		_, err := RescaleToTargetPLN(lines, decimal.NewFromInt(5000), rate)
		require.NoError(t, err)

		assert.True(t, lines[0].UnitPriceNet.Equal(decimal.NewFromInt(1000)))
		assert.True(t, lines[0].GrossAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("preserves exempt marker through rescale", func(t *testing.T) {
		rate := testRate(t, valueobject.EUR, "4")
		lines := []Line{mustLine(t, "Uslugi zwolnione", "1", "100", VATRateExempt)}

		rescaled, err := RescaleToTargetPLN(lines, decimal.NewFromInt(800), rate)
		require.NoError(t, err)

		assert.Equal(t, VATRateExempt, rescaled[0].VATRate)
		assert.True(t, rescaled[0].VATAmount.IsZero())
		assert.True(t, rescaled[0].UnitPriceNet.Equal(decimal.NewFromInt(200)))
	})

	t.Run("zero gross is not computable", func(t *testing.T) {
		rate := testRate(t, valueobject.EUR, "4.25")
		lines := []Line{mustLine(t, "Fracht", "10", "0", VATRate23)}

		_, err := RescaleToTargetPLN(lines, decimal.NewFromInt(5000), rate)
		assert.ErrorIs(t, err, shared.ErrRescaleNotComputable)
	})

	t.Run("empty invoice is not computable", func(t *testing.T) {
		rate := testRate(t, valueobject.EUR, "4.25")

		_, err := RescaleToTargetPLN(nil, decimal.NewFromInt(5000), rate)
		assert.ErrorIs(t, err, shared.ErrRescaleNotComputable)
	})
}

// ============================================
// VATRate Tests
// ============================================

func TestVATRate_IsValid(t *testing.T) {
	tests := []struct {
		rate    VATRate
		isValid bool
	}{
		{VATRate23, true},
		{VATRate8, true},
		{VATRate5, true},
		{VATRate0, true},
		{VATRateExempt, true},
		{VATRate(19), false},
		{VATRate(-2), false},
		{VATRate(100), false},
	}

	for _, tt := range tests {
		t.Run(tt.rate.Label(), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.rate.IsValid())
		})
	}
}

func TestVATRate_Percent(t *testing.T) {
	assert.True(t, VATRate23.Percent().Equal(decimal.NewFromInt(23)))
	assert.True(t, VATRate0.Percent().IsZero())
	assert.True(t, VATRateExempt.Percent().IsZero())
}

func TestVATRate_Label(t *testing.T) {
	assert.Equal(t, "23%", VATRate23.Label())
	assert.Equal(t, "8%", VATRate8.Label())
	assert.Equal(t, "zw.", VATRateExempt.Label())
}

// ============================================
// ExchangeRate Tests
// ============================================

func TestNewExchangeRate(t *testing.T) {
	effective := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates valid rate", func(t *testing.T) {
		rate, err := NewExchangeRate(valueobject.EUR, decimal.RequireFromString("4.2500"), effective, "010/A/NBP/2026")
		require.NoError(t, err)

		assert.Equal(t, valueobject.EUR, rate.Currency)
		assert.True(t, rate.Rate.Equal(decimal.RequireFromString("4.25")))
		assert.Equal(t, "EUR 4.2500 (010/A/NBP/2026)", rate.String())
	})

	t.Run("rejects PLN", func(t *testing.T) {
		_, err := NewExchangeRate(valueobject.PLN, decimal.NewFromInt(1), effective, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		_, err := NewExchangeRate(valueobject.Currency("XXX"), decimal.NewFromInt(4), effective, "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive rate", func(t *testing.T) {
		_, err := NewExchangeRate(valueobject.EUR, decimal.Zero, effective, "")
		assert.Error(t, err)

		_, err = NewExchangeRate(valueobject.EUR, decimal.NewFromInt(-4), effective, "")
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewExchangeRate(valueobject.EUR, decimal.NewFromInt(4), time.Time{}, "")
		assert.Error(t, err)
	})
}
