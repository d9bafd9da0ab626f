package nbp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
	"github.com/translog/backend/internal/infrastructure/cache"
	"github.com/translog/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the NBP API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ErrRateUnavailable indicates NBP has no table A rate for the currency at all
var ErrRateUnavailable = errors.New("nbp: rate unavailable")

// Client fetches table A mid rates from the NBP API. Lookups go through
// the tiered cache first, then the durable store of already-fetched
// rates, and only then over HTTP, a single attempt with the configured
// timeout. A date NBP has no table for (weekend, holiday) falls back to
// the most recent published rate.
type Client struct {
	baseURL    string
	httpClient *http.Client
	rateCache  cache.RateCache
	store      invoicing.RateRepository
	logger     *zap.Logger
}

// NewClient creates an NBP client. The store is optional; without it
// fetched rates live only in the cache.
func NewClient(cfg config.NBPConfig, rateCache cache.RateCache, store invoicing.RateRepository, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateCache: rateCache,
		store:     store,
		logger:    logger,
	}
}

// rateDocument mirrors the NBP exchangerates response
type rateDocument struct {
	Table    string `json:"table"`
	Currency string `json:"currency"`
	Code     string `json:"code"`
	Rates    []struct {
		No            string          `json:"no"`
		EffectiveDate string          `json:"effectiveDate"`
		Mid           decimal.Decimal `json:"mid"`
	} `json:"rates"`
}

// GetRate returns the mid rate for a currency effective at the date
func (c *Client) GetRate(ctx context.Context, currency valueobject.Currency, date time.Time) (invoicing.ExchangeRate, error) {
	code := string(currency)
	day := dateOnly(date)

	if c.rateCache != nil {
		if rate, ok := c.rateCache.Get(ctx, code, day); ok {
			return *rate, nil
		}
	}

	if c.store != nil {
		if rate, err := c.store.FindRate(ctx, code, day); err == nil {
			c.cacheRate(ctx, code, day, *rate)
			return *rate, nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			c.logger.Warn("nbp rate store lookup failed",
				zap.String("currency", code),
				zap.Error(err))
		}
	}

	rate, err := c.fetch(ctx, code, day)
	if err != nil {
		return invoicing.ExchangeRate{}, err
	}

	c.cacheRate(ctx, code, day, rate)
	if c.store != nil {
		if err := c.store.SaveRate(ctx, rate); err != nil {
			c.logger.Warn("nbp rate store write failed",
				zap.String("currency", code),
				zap.Error(err))
		}
	}
	return rate, nil
}

// fetch asks the API for the date's table, falling back to the most
// recent one when NBP published nothing that day
func (c *Client) fetch(ctx context.Context, code string, day time.Time) (invoicing.ExchangeRate, error) {
	url := fmt.Sprintf("%s/exchangerates/rates/a/%s/%s/?format=json", c.baseURL, code, day.Format("2006-01-02"))
	rate, err := c.fetchURL(ctx, url)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, errNoData) {
		return invoicing.ExchangeRate{}, err
	}

	c.logger.Debug("no nbp table for date, falling back to most recent",
		zap.String("currency", code),
		zap.String("date", day.Format("2006-01-02")))

	url = fmt.Sprintf("%s/exchangerates/rates/a/%s/?format=json", c.baseURL, code)
	rate, err = c.fetchURL(ctx, url)
	if errors.Is(err, errNoData) {
		return invoicing.ExchangeRate{}, fmt.Errorf("%w: %s", ErrRateUnavailable, code)
	}
	return rate, err
}

// errNoData marks a 404 from the API: no table for the date or an
// unlisted currency
var errNoData = errors.New("nbp: no data")

func (c *Client) fetchURL(ctx context.Context, url string) (invoicing.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return invoicing.ExchangeRate{}, fmt.Errorf("nbp: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return invoicing.ExchangeRate{}, fmt.Errorf("nbp: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return invoicing.ExchangeRate{}, errNoData
	}
	if resp.StatusCode != http.StatusOK {
		return invoicing.ExchangeRate{}, fmt.Errorf("nbp: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return invoicing.ExchangeRate{}, fmt.Errorf("nbp: read response: %w", err)
	}

	var doc rateDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return invoicing.ExchangeRate{}, fmt.Errorf("nbp: decode response: %w", err)
	}
	if len(doc.Rates) == 0 {
		return invoicing.ExchangeRate{}, errNoData
	}

	published := doc.Rates[len(doc.Rates)-1]
	effectiveDate, err := time.Parse("2006-01-02", published.EffectiveDate)
	if err != nil {
		return invoicing.ExchangeRate{}, fmt.Errorf("nbp: bad effective date %q: %w", published.EffectiveDate, err)
	}

	return invoicing.NewExchangeRate(valueobject.Currency(doc.Code), published.Mid, effectiveDate, published.No)
}

func (c *Client) cacheRate(ctx context.Context, code string, day time.Time, rate invoicing.ExchangeRate) {
	if c.rateCache != nil {
		c.rateCache.Set(ctx, code, day, rate)
	}
}

// dateOnly truncates to day granularity in UTC, matching the API's
// date-keyed tables
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
