package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/shared"
)

// GormVehicleRepository implements VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by its ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByIDForTenant finds a vehicle by ID within a tenant
func (r *GormVehicleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByRegistration finds a vehicle by registration number for a tenant
func (r *GormVehicleRepository) FindByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND registration_number = ?", tenantID, normalizePlate(registrationNumber)).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindAllForTenant finds all vehicles for a tenant
func (r *GormVehicleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Vehicle, error) {
	var vehicles []fleet.Vehicle
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fleet.Vehicle{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindAvailable finds vehicles that can be assigned to an order
func (r *GormVehicleRepository) FindAvailable(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Vehicle, error) {
	var vehicles []fleet.Vehicle
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fleet.Vehicle{}).
			Where("tenant_id = ? AND status = ?", tenantID, fleet.EquipmentStatusAvailable),
		filter,
	)

	if err := query.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindWithExpiringDocuments finds vehicles whose inspection or insurance
// runs out on or before the deadline
func (r *GormVehicleRepository) FindWithExpiringDocuments(ctx context.Context, tenantID uuid.UUID, deadline time.Time) ([]fleet.Vehicle, error) {
	var vehicles []fleet.Vehicle
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND (inspection_expiry <= ? OR insurance_expiry <= ?)", tenantID, deadline, deadline).
		Order("registration_number ASC").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Save creates or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *fleet.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormVehicleRepository) SaveWithLock(ctx context.Context, vehicle *fleet.Vehicle) error {
	result := r.db.WithContext(ctx).
		Model(vehicle).
		Where("id = ? AND version = ?", vehicle.ID, vehicle.Version-1).
		Updates(vehicle)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The vehicle record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes a vehicle within a tenant
func (r *GormVehicleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fleet.Vehicle{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts vehicles for a tenant
func (r *GormVehicleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fleet.Vehicle{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByRegistration checks if a registration number exists for a tenant
func (r *GormVehicleRepository) ExistsByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fleet.Vehicle{}).
		Where("tenant_id = ? AND registration_number = ?", tenantID, normalizePlate(registrationNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormVehicleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, VehicleSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("registration_number ASC")
		}
	} else {
		query = query.Order("registration_number ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVehicleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("registration_number ILIKE ? OR brand ILIKE ? OR model ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		}
	}

	return query
}

// normalizePlate mirrors the domain's registration normalization for
// lookups by raw user input
func normalizePlate(registrationNumber string) string {
	return strings.ToUpper(strings.TrimSpace(registrationNumber))
}

// Ensure GormVehicleRepository implements VehicleRepository
var _ fleet.VehicleRepository = (*GormVehicleRepository)(nil)
