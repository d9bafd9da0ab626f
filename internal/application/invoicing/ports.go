package invoicing

import (
	"context"
	"time"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// RateProvider supplies NBP mid rates. The infrastructure client behind
// it handles the table A lookup, the previous-business-day fallback and
// caching; callers only see a rate or an error.
type RateProvider interface {
	// GetRate returns the mid rate for a currency effective at the date
	GetRate(ctx context.Context, currency valueobject.Currency, date time.Time) (invoicing.ExchangeRate, error)
}
