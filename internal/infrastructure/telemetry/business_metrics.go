// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the transport back office.
// It tracks order intake, invoicing activity, exchange rate lookups, and
// receivables/fleet health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderCreatedTotal       *Counter
	orderFreightTotal       *Counter
	invoiceIssuedTotal      *Counter
	invoiceGrossTotal       *Counter
	recurringGeneratedTotal *Counter

	// Histogram metrics
	rateLookupDuration *Histogram

	// Gauge metrics (point-in-time values)
	openReceivablesCount   *Gauge
	expiringDocumentsCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	receivablesProvider ReceivablesMetricsProvider
	fleetProvider       FleetMetricsProvider
	documentHorizon     time.Duration
}

// ReceivablesMetricsProvider provides receivables data for periodic metrics
// collection. This interface lets the telemetry layer query invoice state
// without depending on the invoicing domain directly.
type ReceivablesMetricsProvider interface {
	// GetOpenReceivablesCount returns the number of issued, unpaid invoices for a tenant
	GetOpenReceivablesCount(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// FleetMetricsProvider provides fleet data for periodic metrics collection.
type FleetMetricsProvider interface {
	// GetExpiringDocumentCount returns the number of vehicles and trailers with
	// inspection or insurance expiring within the horizon for a tenant
	GetExpiringDocumentCount(ctx context.Context, tenantID uuid.UUID, horizon time.Duration) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter               metric.Meter
	Logger              *zap.Logger
	CollectInterval     time.Duration // Default: 5 minutes
	DocumentHorizon     time.Duration // Default: 30 days
	ReceivablesProvider ReceivablesMetricsProvider
	FleetProvider       FleetMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.DocumentHorizon <= 0 {
		cfg.DocumentHorizon = 30 * 24 * time.Hour
	}

	bm := &BusinessMetrics{
		meter:               cfg.Meter,
		logger:              logger,
		stopChan:            make(chan struct{}),
		receivablesProvider: cfg.ReceivablesProvider,
		fleetProvider:       cfg.FleetProvider,
		documentHorizon:     cfg.DocumentHorizon,
	}

	// Initialize counter metrics
	var err error

	// Transport order metrics
	bm.orderCreatedTotal, err = NewCounter(
		cfg.Meter,
		"tms_order_created_total",
		"Total number of transport orders created",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderFreightTotal, err = NewCounter(
		cfg.Meter,
		"tms_order_freight_total",
		"Total agreed freight in the smallest currency unit (grosz)",
		"{grosz}",
	)
	if err != nil {
		return nil, err
	}

	// Invoice metrics
	bm.invoiceIssuedTotal, err = NewCounter(
		cfg.Meter,
		"tms_invoice_issued_total",
		"Total number of invoices issued",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceGrossTotal, err = NewCounter(
		cfg.Meter,
		"tms_invoice_gross_total",
		"Total invoiced gross in the smallest currency unit (grosz)",
		"{grosz}",
	)
	if err != nil {
		return nil, err
	}

	// Recurring generation metrics
	bm.recurringGeneratedTotal, err = NewCounter(
		cfg.Meter,
		"tms_recurring_generated_total",
		"Total number of transport orders generated from recurring templates",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	// Exchange rate lookup latency
	bm.rateLookupDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "tms_nbp_rate_lookup_duration_seconds",
		Description: "NBP exchange rate lookup duration by outcome",
		Unit:        "s",
	})
	if err != nil {
		return nil, err
	}

	// Receivables gauge metrics
	bm.openReceivablesCount, err = NewGauge(
		cfg.Meter,
		"tms_open_receivables_count",
		"Number of issued, unpaid invoices",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	bm.expiringDocumentsCount, err = NewGauge(
		cfg.Meter,
		"tms_fleet_expiring_documents_count",
		"Number of fleet assets with inspection or insurance expiring soon",
		"{assets}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Transport Order Metrics
// =============================================================================

// OrderSource labels how a transport order entered the system.
type OrderSource string

const (
	OrderSourceManual    OrderSource = "manual"
	OrderSourceRecurring OrderSource = "recurring"
)

// RecordOrderCreated records a transport order creation event.
// This should be called from the application layer when an order is created.
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, tenantID uuid.UUID, source OrderSource) {
	bm.orderCreatedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrOrderSource.String(string(source)),
	)
}

// RecordOrderFreight records the agreed freight amount.
// Amount should be in the smallest currency unit (grosz/cent).
func (bm *BusinessMetrics) RecordOrderFreight(ctx context.Context, tenantID uuid.UUID, currency string, amountGrosz int64) {
	bm.orderFreightTotal.Add(ctx, amountGrosz,
		AttrTenantID.String(tenantID.String()),
		AttrCurrency.String(currency),
	)
}

// RecordOrderWithFreight is a convenience method that records both order count and freight.
func (bm *BusinessMetrics) RecordOrderWithFreight(ctx context.Context, tenantID uuid.UUID, source OrderSource, currency string, freight decimal.Decimal) {
	bm.RecordOrderCreated(ctx, tenantID, source)

	// Convert to grosz (multiply by 100)
	amountGrosz := freight.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordOrderFreight(ctx, tenantID, currency, amountGrosz)
}

// =============================================================================
// Invoice Metrics
// =============================================================================

// RecordInvoiceIssued records an invoice issue event together with its gross.
// Gross should be in the invoice currency; it is converted to grosz.
func (bm *BusinessMetrics) RecordInvoiceIssued(ctx context.Context, tenantID uuid.UUID, currency string, totalGross decimal.Decimal) {
	bm.invoiceIssuedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrCurrency.String(currency),
	)

	grossGrosz := totalGross.Mul(decimal.NewFromInt(100)).IntPart()
	bm.invoiceGrossTotal.Add(ctx, grossGrosz,
		AttrTenantID.String(tenantID.String()),
		AttrCurrency.String(currency),
	)
}

// RecordRecurringGenerated records orders generated by a recurring sweep.
func (bm *BusinessMetrics) RecordRecurringGenerated(ctx context.Context, tenantID uuid.UUID, count int64) {
	if count <= 0 {
		return
	}
	bm.recurringGeneratedTotal.Add(ctx, count,
		AttrTenantID.String(tenantID.String()),
	)
}

// =============================================================================
// Exchange Rate Metrics
// =============================================================================

// RateLookupOutcome labels where an exchange rate lookup was resolved.
type RateLookupOutcome string

const (
	RateLookupCache RateLookupOutcome = "cache"
	RateLookupStore RateLookupOutcome = "store"
	RateLookupFetch RateLookupOutcome = "fetch"
	RateLookupError RateLookupOutcome = "error"
)

// RecordRateLookup records the duration and outcome of an exchange rate lookup.
func (bm *BusinessMetrics) RecordRateLookup(ctx context.Context, currency string, outcome RateLookupOutcome, took time.Duration) {
	bm.rateLookupDuration.RecordDuration(ctx, took,
		AttrCurrency.String(currency),
		AttrRateOutcome.String(string(outcome)),
	)
}

// =============================================================================
// Receivables and Fleet Metrics
// =============================================================================

// RecordOpenReceivables records the current number of open receivables.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordOpenReceivables(ctx context.Context, tenantID uuid.UUID, count int64) {
	bm.openReceivablesCount.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
	)
}

// RecordExpiringDocuments records the number of fleet assets with documents
// expiring within the horizon. Gauge, updated periodically.
func (bm *BusinessMetrics) RecordExpiringDocuments(ctx context.Context, tenantID uuid.UUID, count int64) {
	bm.expiringDocumentsCount.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// TenantProvider provides tenant IDs for periodic metrics collection.
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects receivables and fleet metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, tenantProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectGaugeMetrics(ctx, tenantProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectGaugeMetrics(ctx, tenantProvider)
		}
	}
}

// collectGaugeMetrics collects gauge metrics for all tenants.
func (bm *BusinessMetrics) collectGaugeMetrics(ctx context.Context, tenantProvider TenantProvider) {
	if bm.receivablesProvider == nil && bm.fleetProvider == nil {
		bm.logger.Debug("No gauge providers configured, skipping collection")
		return
	}

	tenantIDs, err := tenantProvider.GetActiveTenantIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		bm.collectTenantGaugeMetrics(ctx, tenantID)
	}
}

// collectTenantGaugeMetrics collects gauge metrics for a single tenant.
func (bm *BusinessMetrics) collectTenantGaugeMetrics(ctx context.Context, tenantID uuid.UUID) {
	if bm.receivablesProvider != nil {
		count, err := bm.receivablesProvider.GetOpenReceivablesCount(ctx, tenantID)
		if err != nil {
			bm.logger.Warn("Failed to get open receivables count for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		} else {
			bm.RecordOpenReceivables(ctx, tenantID, count)
		}
	}

	if bm.fleetProvider != nil {
		count, err := bm.fleetProvider.GetExpiringDocumentCount(ctx, tenantID, bm.documentHorizon)
		if err != nil {
			bm.logger.Warn("Failed to get expiring document count for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		} else {
			bm.RecordExpiringDocuments(ctx, tenantID, count)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
