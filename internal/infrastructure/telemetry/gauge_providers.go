// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivablesMetricsProvider implements ReceivablesMetricsProvider using GORM.
// It queries the invoices table directly for aggregated metrics.
type GormReceivablesMetricsProvider struct {
	db *gorm.DB
}

// NewGormReceivablesMetricsProvider creates a new GormReceivablesMetricsProvider.
func NewGormReceivablesMetricsProvider(db *gorm.DB) *GormReceivablesMetricsProvider {
	return &GormReceivablesMetricsProvider{db: db}
}

// GetOpenReceivablesCount returns the number of issued, unpaid invoices for a tenant.
func (p *GormReceivablesMetricsProvider) GetOpenReceivablesCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("invoices").
		Where("tenant_id = ? AND status = ?", tenantID, "ISSUED").
		Count(&count).Error

	return count, err
}

// GormFleetMetricsProvider implements FleetMetricsProvider using GORM.
type GormFleetMetricsProvider struct {
	db *gorm.DB
}

// NewGormFleetMetricsProvider creates a new GormFleetMetricsProvider.
func NewGormFleetMetricsProvider(db *gorm.DB) *GormFleetMetricsProvider {
	return &GormFleetMetricsProvider{db: db}
}

// GetExpiringDocumentCount returns the number of vehicles and trailers whose
// inspection or insurance expires within the horizon for a tenant.
func (p *GormFleetMetricsProvider) GetExpiringDocumentCount(ctx context.Context, tenantID uuid.UUID, horizon time.Duration) (int64, error) {
	cutoff := time.Now().Add(horizon)

	var vehicles int64
	err := p.db.WithContext(ctx).
		Table("vehicles").
		Where("tenant_id = ?", tenantID).
		Where("inspection_expiry <= ? OR insurance_expiry <= ?", cutoff, cutoff).
		Count(&vehicles).Error
	if err != nil {
		return 0, err
	}

	var trailers int64
	err = p.db.WithContext(ctx).
		Table("trailers").
		Where("tenant_id = ?", tenantID).
		Where("inspection_expiry <= ? OR insurance_expiry <= ?", cutoff, cutoff).
		Count(&trailers).Error
	if err != nil {
		return 0, err
	}

	return vehicles + trailers, nil
}

// GormTenantProvider implements TenantProvider using GORM.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GormTenantProvider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// GetActiveTenantIDs returns all active tenant IDs.
func (p *GormTenantProvider) GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("tenants").
		Select("id").
		Where("status = ?", "ACTIVE").
		Find(&ids).Error

	return ids, err
}
