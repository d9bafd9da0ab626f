package invoicing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// ExchangeRate is the NBP mid rate used to express a foreign-currency
// invoice in PLN. TableNo identifies the publication it came from
// (e.g. "165/A/NBP/2026").
type ExchangeRate struct {
	Currency      valueobject.Currency `json:"currency"`
	Rate          decimal.Decimal      `json:"rate"`
	EffectiveDate time.Time            `json:"effective_date"`
	TableNo       string               `json:"table_no"`
}

// NewExchangeRate creates a validated exchange rate
func NewExchangeRate(currency valueobject.Currency, rate decimal.Decimal, effectiveDate time.Time, tableNo string) (ExchangeRate, error) {
	if !currency.IsValid() {
		return ExchangeRate{}, fmt.Errorf("invalid currency: %s", currency)
	}
	if !currency.IsForeign() {
		return ExchangeRate{}, fmt.Errorf("exchange rate for PLN is meaningless")
	}
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("exchange rate must be positive")
	}
	if effectiveDate.IsZero() {
		return ExchangeRate{}, fmt.Errorf("effective date is required")
	}
	return ExchangeRate{
		Currency:      currency,
		Rate:          rate,
		EffectiveDate: effectiveDate,
		TableNo:       tableNo,
	}, nil
}

// IsZero reports whether the rate is unset
func (r ExchangeRate) IsZero() bool {
	return r.Rate.IsZero() && r.Currency == ""
}

// String returns a short display form, e.g. "EUR 4.2500 (165/A/NBP/2026)"
func (r ExchangeRate) String() string {
	return fmt.Sprintf("%s %s (%s)", r.Currency, r.Rate.StringFixed(4), r.TableNo)
}
