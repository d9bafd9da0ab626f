package cache

import (
	"context"
	"time"

	"github.com/translog/backend/internal/domain/invoicing"
)

// TieredRateCache layers the in-memory cache in front of Redis.
// L1 hits stay on the instance; L2 hits backfill L1. There is no
// invalidation channel: published NBP rates do not change, TTL expiry
// is the only eviction.
type TieredRateCache struct {
	l1 *InMemoryRateCache
	l2 *RedisRateCache
}

// NewTieredRateCache creates a two-tier rate cache
func NewTieredRateCache(l1 *InMemoryRateCache, l2 *RedisRateCache) *TieredRateCache {
	return &TieredRateCache{l1: l1, l2: l2}
}

// Get returns the cached rate, checking memory before Redis
func (c *TieredRateCache) Get(ctx context.Context, currency string, date time.Time) (*invoicing.ExchangeRate, bool) {
	if rate, ok := c.l1.Get(ctx, currency, date); ok {
		return rate, true
	}
	if rate, ok := c.l2.Get(ctx, currency, date); ok {
		c.l1.Set(ctx, currency, date, *rate)
		return rate, true
	}
	return nil, false
}

// Set stores a rate in both tiers
func (c *TieredRateCache) Set(ctx context.Context, currency string, date time.Time, rate invoicing.ExchangeRate) {
	c.l1.Set(ctx, currency, date, rate)
	c.l2.Set(ctx, currency, date, rate)
}

// Ensure TieredRateCache implements RateCache
var _ RateCache = (*TieredRateCache)(nil)
