package invoicing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// RateService exposes NBP mid rate lookups
type RateService struct {
	rates RateProvider
}

// NewRateService creates a new RateService
func NewRateService(rates RateProvider) *RateService {
	return &RateService{
		rates: rates,
	}
}

// GetRate returns the mid rate for a currency effective at the date.
// PLN has no rate; asking for one is an input error, not a lookup miss.
func (s *RateService) GetRate(ctx context.Context, currency string, date time.Time) (*RateResponse, error) {
	cur := valueobject.Currency(strings.ToUpper(strings.TrimSpace(currency)))
	if !cur.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency: %s", currency))
	}
	if !cur.IsForeign() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "PLN has no exchange rate")
	}
	if date.IsZero() {
		date = time.Now()
	}

	rate, err := s.rates.GetRate(ctx, cur, date)
	if err != nil {
		return nil, err
	}

	response := ToRateResponse(rate)
	return &response, nil
}
