package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/translog/backend/internal/domain/invoicing"
)

// defaultRateTTL bounds cache entries when the configuration does not
// set one. NBP publishes table A once per business day, so a day is the
// natural horizon.
const defaultRateTTL = 24 * time.Hour

// RateCache caches NBP mid rates keyed by currency and the requested
// date. The key carries the requested date, not the effective date: a
// Saturday lookup resolves to Friday's table and both days cache the
// same rate under their own keys.
type RateCache interface {
	// Get returns the cached rate for a currency and requested date
	Get(ctx context.Context, currency string, date time.Time) (*invoicing.ExchangeRate, bool)

	// Set stores a rate under the requested date
	Set(ctx context.Context, currency string, date time.Time, rate invoicing.ExchangeRate)
}

// rateKey builds the cache key for a currency and requested date
func rateKey(currency string, date time.Time) string {
	return fmt.Sprintf("nbp:rate:%s:%s", currency, date.Format("2006-01-02"))
}

// NewRateCache builds the rate cache for the given Redis client. With a
// client the cache is tiered (in-memory in front of Redis, shared across
// instances); without one it degrades to in-memory only, which is fine
// for single-instance and test deployments.
func NewRateCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) RateCache {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	memory := NewInMemoryRateCache(ttl)
	if client == nil {
		return memory
	}
	return NewTieredRateCache(memory, NewRedisRateCache(client, ttl, logger))
}
