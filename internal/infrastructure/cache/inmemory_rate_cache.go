package cache

import (
	"context"
	"sync"
	"time"

	"github.com/translog/backend/internal/domain/invoicing"
)

// maxRateEntries caps the in-memory tier. Currencies times dates stays
// tiny in practice; the cap only guards against unbounded historical
// lookups.
const maxRateEntries = 4096

// InMemoryRateCache implements RateCache with a local map. Designed as
// the L1 tier in front of Redis; entries expire by TTL and the map is
// swept lazily on writes.
type InMemoryRateCache struct {
	mu      sync.RWMutex
	entries map[string]rateEntry
	ttl     time.Duration
}

type rateEntry struct {
	rate      invoicing.ExchangeRate
	expiresAt time.Time
}

// NewInMemoryRateCache creates an in-memory rate cache with the given TTL
func NewInMemoryRateCache(ttl time.Duration) *InMemoryRateCache {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	return &InMemoryRateCache{
		entries: make(map[string]rateEntry),
		ttl:     ttl,
	}
}

// Get returns the cached rate for a currency and requested date
func (c *InMemoryRateCache) Get(_ context.Context, currency string, date time.Time) (*invoicing.ExchangeRate, bool) {
	key := rateKey(currency, date)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	rate := entry.rate
	return &rate, true
}

// Set stores a rate under the requested date
func (c *InMemoryRateCache) Set(_ context.Context, currency string, date time.Time, rate invoicing.ExchangeRate) {
	key := rateKey(currency, date)
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= maxRateEntries {
		c.sweepLocked(now)
	}
	c.entries[key] = rateEntry{rate: rate, expiresAt: now.Add(c.ttl)}
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryRateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// sweepLocked drops expired entries; if nothing expired the oldest
// entries go, keeping the map bounded. Caller holds the write lock.
func (c *InMemoryRateCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	for key := range c.entries {
		if len(c.entries) < maxRateEntries {
			break
		}
		delete(c.entries, key)
	}
}

// Ensure InMemoryRateCache implements RateCache
var _ RateCache = (*InMemoryRateCache)(nil)
