package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/shared"
)

// GormDriverRepository implements DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// FindByID finds a driver by its ID
func (r *GormDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Driver, error) {
	var driver fleet.Driver
	if err := r.db.WithContext(ctx).First(&driver, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// FindByIDForTenant finds a driver by ID within a tenant
func (r *GormDriverRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Driver, error) {
	var driver fleet.Driver
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// FindAllForTenant finds all drivers for a tenant
func (r *GormDriverRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Driver, error) {
	var drivers []fleet.Driver
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fleet.Driver{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// FindAvailable finds drivers that can be assigned to an order
func (r *GormDriverRepository) FindAvailable(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Driver, error) {
	var drivers []fleet.Driver
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fleet.Driver{}).
			Where("tenant_id = ? AND status = ?", tenantID, fleet.DriverStatusAvailable),
		filter,
	)

	if err := query.Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// FindWithExpiringLicense finds drivers whose licence runs out on or
// before the deadline
func (r *GormDriverRepository) FindWithExpiringLicense(ctx context.Context, tenantID uuid.UUID, deadline time.Time) ([]fleet.Driver, error) {
	var drivers []fleet.Driver
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND license_expiry <= ?", tenantID, deadline).
		Order("license_expiry ASC").
		Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// Save creates or updates a driver
func (r *GormDriverRepository) Save(ctx context.Context, driver *fleet.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDriverRepository) SaveWithLock(ctx context.Context, driver *fleet.Driver) error {
	result := r.db.WithContext(ctx).
		Model(driver).
		Where("id = ? AND version = ?", driver.ID, driver.Version-1).
		Updates(driver)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The driver record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes a driver within a tenant
func (r *GormDriverRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fleet.Driver{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts drivers for a tenant
func (r *GormDriverRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fleet.Driver{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDriverRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, DriverSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("last_name ASC")
		}
	} else {
		query = query.Order("last_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDriverRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormDriverRepository implements DriverRepository
var _ fleet.DriverRepository = (*GormDriverRepository)(nil)
