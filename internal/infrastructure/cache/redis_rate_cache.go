package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/translog/backend/internal/domain/invoicing"
)

// RedisRateCache implements RateCache using Redis, sharing fetched NBP
// rates across instances. Cache failures are logged and treated as
// misses; the rate lookup must not fail because Redis is down.
type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisRateCache creates a Redis-backed rate cache.
// The caller retains ownership of the client.
func NewRedisRateCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRateCache {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRateCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached rate for a currency and requested date
func (c *RedisRateCache) Get(ctx context.Context, currency string, date time.Time) (*invoicing.ExchangeRate, bool) {
	key := rateKey(currency, date)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis rate cache read failed",
				zap.String("key", key),
				zap.Error(err))
		}
		return nil, false
	}

	var rate invoicing.ExchangeRate
	if err := json.Unmarshal(data, &rate); err != nil {
		c.logger.Warn("redis rate cache entry corrupted, dropping",
			zap.String("key", key),
			zap.Error(err))
		c.client.Del(ctx, key)
		return nil, false
	}
	return &rate, true
}

// Set stores a rate under the requested date
func (c *RedisRateCache) Set(ctx context.Context, currency string, date time.Time, rate invoicing.ExchangeRate) {
	key := rateKey(currency, date)

	data, err := json.Marshal(rate)
	if err != nil {
		c.logger.Warn("redis rate cache marshal failed",
			zap.String("key", key),
			zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis rate cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Ensure RedisRateCache implements RateCache
var _ RateCache = (*RedisRateCache)(nil)
