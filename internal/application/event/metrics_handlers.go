package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/infrastructure/telemetry"
)

// OrderMetricsHandler records order intake metrics when a transport
// order is created. Recurring provenance is tracked separately by
// RecurringMetricsHandler, so created orders count under one source.
type OrderMetricsHandler struct {
	metrics *telemetry.BusinessMetrics
	logger  *zap.Logger
}

// NewOrderMetricsHandler creates a handler for transport order created events
func NewOrderMetricsHandler(metrics *telemetry.BusinessMetrics, logger *zap.Logger) *OrderMetricsHandler {
	return &OrderMetricsHandler{
		metrics: metrics,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderMetricsHandler) EventTypes() []string {
	return []string{order.EventTypeTransportOrderCreated}
}

// Handle records order count and agreed freight for a created order
func (h *OrderMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*order.TransportOrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeTransportOrderCreated, event.EventType())
	}

	h.metrics.RecordOrderWithFreight(ctx, event.TenantID(), telemetry.OrderSourceManual,
		string(created.Currency), created.PriceNet)

	h.logger.Debug("recorded order created metric",
		zap.String("order_id", created.OrderID.String()),
		zap.String("order_number", created.OrderNumber),
		zap.String("currency", string(created.Currency)),
	)
	return nil
}

// InvoiceMetricsHandler records invoicing metrics when an invoice is issued
type InvoiceMetricsHandler struct {
	metrics *telemetry.BusinessMetrics
	logger  *zap.Logger
}

// NewInvoiceMetricsHandler creates a handler for invoice issued events
func NewInvoiceMetricsHandler(metrics *telemetry.BusinessMetrics, logger *zap.Logger) *InvoiceMetricsHandler {
	return &InvoiceMetricsHandler{
		metrics: metrics,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceMetricsHandler) EventTypes() []string {
	return []string{invoicing.EventTypeInvoiceIssued}
}

// Handle records invoice count and gross for an issued invoice
func (h *InvoiceMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	issued, ok := event.(*invoicing.InvoiceIssuedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			invoicing.EventTypeInvoiceIssued, event.EventType())
	}

	h.metrics.RecordInvoiceIssued(ctx, event.TenantID(), string(issued.Currency), issued.TotalGross)

	h.logger.Debug("recorded invoice issued metric",
		zap.String("invoice_id", issued.InvoiceID.String()),
		zap.String("invoice_number", issued.InvoiceNumber),
		zap.String("currency", string(issued.Currency)),
	)
	return nil
}

// RecurringMetricsHandler records how many transport orders a recurring
// template sweep generated
type RecurringMetricsHandler struct {
	metrics *telemetry.BusinessMetrics
	logger  *zap.Logger
}

// NewRecurringMetricsHandler creates a handler for recurring generation events
func NewRecurringMetricsHandler(metrics *telemetry.BusinessMetrics, logger *zap.Logger) *RecurringMetricsHandler {
	return &RecurringMetricsHandler{
		metrics: metrics,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *RecurringMetricsHandler) EventTypes() []string {
	return []string{recurring.EventTypeOrderGenerated}
}

// Handle records the generated order count for a template sweep
func (h *RecurringMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	generated, ok := event.(*recurring.OrderGeneratedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			recurring.EventTypeOrderGenerated, event.EventType())
	}

	h.metrics.RecordRecurringGenerated(ctx, event.TenantID(), int64(generated.GeneratedCount))

	h.logger.Debug("recorded recurring generation metric",
		zap.String("template_id", generated.TemplateID.String()),
		zap.Int("generated_count", generated.GeneratedCount),
	)
	return nil
}

// Interface guards
var (
	_ shared.EventHandler = (*OrderMetricsHandler)(nil)
	_ shared.EventHandler = (*InvoiceMetricsHandler)(nil)
	_ shared.EventHandler = (*RecurringMetricsHandler)(nil)
)
