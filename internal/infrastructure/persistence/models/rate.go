package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// ExchangeRateModel is the persistence model for fetched NBP mid rates.
// Rates are published per currency and effective date, so they are not
// tenant-scoped; the unique index makes a re-fetch an upsert.
type ExchangeRateModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	Currency      string          `gorm:"type:varchar(3);not null;uniqueIndex:idx_rate_currency_date,priority:1"`
	EffectiveDate time.Time       `gorm:"not null;uniqueIndex:idx_rate_currency_date,priority:2"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	TableNo       string          `gorm:"type:varchar(50)"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "nbp_exchange_rates"
}

// ToDomain converts the persistence model to a domain ExchangeRate
func (m *ExchangeRateModel) ToDomain() *invoicing.ExchangeRate {
	return &invoicing.ExchangeRate{
		Currency:      valueobject.Currency(m.Currency),
		Rate:          m.Rate,
		EffectiveDate: m.EffectiveDate,
		TableNo:       m.TableNo,
	}
}

// ExchangeRateModelFromDomain creates a persistence model from a domain ExchangeRate
func ExchangeRateModelFromDomain(rate invoicing.ExchangeRate) *ExchangeRateModel {
	return &ExchangeRateModel{
		ID:            uuid.New(),
		Currency:      string(rate.Currency),
		EffectiveDate: rate.EffectiveDate,
		Rate:          rate.Rate,
		TableNo:       rate.TableNo,
		CreatedAt:     time.Now(),
	}
}
