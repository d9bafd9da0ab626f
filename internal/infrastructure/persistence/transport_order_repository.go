package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/infrastructure/persistence/models"
)

// GormTransportOrderRepository implements TransportOrderRepository using GORM
type GormTransportOrderRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormTransportOrderRepository creates a new GormTransportOrderRepository
func NewGormTransportOrderRepository(db *gorm.DB) *GormTransportOrderRepository {
	return &GormTransportOrderRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormTransportOrderRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a transport order by its ID
func (r *GormTransportOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.TransportOrder, error) {
	var model models.TransportOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a transport order by ID within a tenant
func (r *GormTransportOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.TransportOrder, error) {
	var model models.TransportOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds a transport order by order number for a tenant
func (r *GormTransportOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*order.TransportOrder, error) {
	var model models.TransportOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all transport orders for a tenant with filtering
func (r *GormTransportOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]order.TransportOrder, error) {
	var orderModels []models.TransportOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TransportOrderModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByContractor finds transport orders for a client contractor
func (r *GormTransportOrderRepository) FindByContractor(ctx context.Context, tenantID, contractorID uuid.UUID, filter shared.Filter) ([]order.TransportOrder, error) {
	var orderModels []models.TransportOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TransportOrderModel{}).
			Where("tenant_id = ? AND contractor_id = ?", tenantID, contractorID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByStatus finds transport orders by status for a tenant
func (r *GormTransportOrderRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status order.OrderStatus, filter shared.Filter) ([]order.TransportOrder, error) {
	var orderModels []models.TransportOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TransportOrderModel{}).
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByLoadingWindow finds transport orders loading inside the window
func (r *GormTransportOrderRepository) FindByLoadingWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) ([]order.TransportOrder, error) {
	var orderModels []models.TransportOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TransportOrderModel{}).
			Where("tenant_id = ? AND loading_date >= ? AND loading_date <= ?", tenantID, from, to),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByTemplate finds transport orders generated from a recurring template
func (r *GormTransportOrderRepository) FindByTemplate(ctx context.Context, tenantID, templateID uuid.UUID, filter shared.Filter) ([]order.TransportOrder, error) {
	var orderModels []models.TransportOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TransportOrderModel{}).
			Where("tenant_id = ? AND recurring_template_id = ?", tenantID, templateID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// Save creates or updates a transport order
func (r *GormTransportOrderRepository) Save(ctx context.Context, o *order.TransportOrder) error {
	model := models.TransportOrderModelFromDomain(o)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTransportOrderRepository) SaveWithLock(ctx context.Context, o *order.TransportOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithLockTx(tx, o)
	})
}

// SaveWithLockAndEvents saves with optimistic locking and persists domain events atomically
// This implements the transactional outbox pattern - events are saved to the outbox table
// in the same transaction as the aggregate, ensuring guaranteed event delivery
func (r *GormTransportOrderRepository) SaveWithLockAndEvents(ctx context.Context, o *order.TransportOrder, events []shared.DomainEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveWithLockTx(tx, o); err != nil {
			return err
		}

		// Save events to outbox within the same transaction
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}
		return nil
	})
}

// saveWithLockTx inserts a new order or updates an existing one under a
// version check. Newly generated orders arrive here through the outbox
// save path, so the insert case is part of the locking flow.
func (r *GormTransportOrderRepository) saveWithLockTx(tx *gorm.DB, o *order.TransportOrder) error {
	var count int64
	if err := tx.Model(&models.TransportOrderModel{}).
		Where("id = ?", o.ID).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		model := models.TransportOrderModelFromDomain(o)
		return tx.Create(model).Error
	}

	var currentVersion int
	if err := tx.Model(&models.TransportOrderModel{}).
		Where("id = ?", o.ID).
		Select("version").
		Scan(&currentVersion).Error; err != nil {
		return err
	}

	if currentVersion != o.Version {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
	}

	o.Version++
	o.UpdatedAt = time.Now()

	result := tx.Model(&models.TransportOrderModel{}).
		Where("id = ? AND version = ?", o.ID, currentVersion).
		Updates(map[string]interface{}{
			"contractor_id":         o.ContractorID,
			"carrier_id":            o.CarrierID,
			"loading_place":         o.Route.LoadingPlace,
			"loading_date":          o.Route.LoadingDate,
			"unloading_place":       o.Route.UnloadingPlace,
			"unloading_date":        o.Route.UnloadingDate,
			"cargo_description":     o.Cargo.Description,
			"cargo_weight_kg":       o.Cargo.WeightKg,
			"cargo_pallets":         o.Cargo.Pallets,
			"price_net":             o.PriceNet,
			"currency":              o.Currency,
			"vat_rate":              o.VATRate,
			"vehicle_id":            o.VehicleID,
			"trailer_id":            o.TrailerID,
			"driver_id":             o.DriverID,
			"status":                o.Status,
			"recurring_template_id": o.RecurringTemplateID,
			"invoice_id":            o.InvoiceID,
			"remark":                o.Remark,
			"planned_at":            o.PlannedAt,
			"dispatched_at":         o.DispatchedAt,
			"completed_at":          o.CompletedAt,
			"invoiced_at":           o.InvoicedAt,
			"cancelled_at":          o.CancelledAt,
			"cancel_reason":         o.CancelReason,
			"version":               o.Version,
			"updated_at":            o.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
	}
	return nil
}

// DeleteForTenant deletes a transport order for a tenant
func (r *GormTransportOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TransportOrderModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts transport orders for a tenant with optional filters
func (r *GormTransportOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TransportOrderModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts transport orders by status for a tenant
func (r *GormTransportOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status order.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransportOrderModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByContractor counts transport orders for a contractor
func (r *GormTransportOrderRepository) CountByContractor(ctx context.Context, tenantID, contractorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransportOrderModel{}).
		Where("tenant_id = ? AND (contractor_id = ? OR carrier_id = ?)", tenantID, contractorID, contractorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrderNumber checks if an order number exists for a tenant
func (r *GormTransportOrderRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransportOrderModel{}).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateOrderNumber generates a unique order number for a tenant
// Format: TO-YYYY-NNNNN (e.g., TO-2026-00001), sequence restarting each year
func (r *GormTransportOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	prefix := fmt.Sprintf("TO-%d-", date.Year())

	// Get the highest order number for this year
	var lastModel models.TransportOrderModel
	err := r.db.WithContext(ctx).
		Model(&models.TransportOrderModel{}).
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%").
		Order("order_number DESC").
		First(&lastModel).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastModel.OrderNumber != "" {
		parts := strings.Split(lastModel.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	orderNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness
	exists, err := r.ExistsByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			orderNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.ExistsByOrderNumber(ctx, tenantID, orderNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				return orderNumber, nil
			}
		}
		return "", fmt.Errorf("failed to generate unique order number after 100 attempts")
	}

	return orderNumber, nil
}

// toDomainSlice converts a slice of models to domain orders
func (r *GormTransportOrderRepository) toDomainSlice(orderModels []models.TransportOrderModel) []order.TransportOrder {
	orders := make([]order.TransportOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders
}

// applyFilter applies filter options to the query
func (r *GormTransportOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, TransportOrderSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTransportOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR cargo_description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "contractor_id":
			query = query.Where("contractor_id = ?", value)
		case "carrier_id":
			query = query.Where("carrier_id = ?", value)
		case "recurring_template_id":
			query = query.Where("recurring_template_id = ?", value)
		case "loading_from":
			query = query.Where("loading_date >= ?", value)
		case "loading_to":
			query = query.Where("loading_date <= ?", value)
		}
	}

	return query
}

// Ensure GormTransportOrderRepository implements TransportOrderRepository
var _ order.TransportOrderRepository = (*GormTransportOrderRepository)(nil)
