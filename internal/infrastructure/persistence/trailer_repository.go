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

// GormTrailerRepository implements TrailerRepository using GORM
type GormTrailerRepository struct {
	db *gorm.DB
}

// NewGormTrailerRepository creates a new GormTrailerRepository
func NewGormTrailerRepository(db *gorm.DB) *GormTrailerRepository {
	return &GormTrailerRepository{db: db}
}

// FindByID finds a trailer by its ID
func (r *GormTrailerRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Trailer, error) {
	var trailer fleet.Trailer
	if err := r.db.WithContext(ctx).First(&trailer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &trailer, nil
}

// FindByIDForTenant finds a trailer by ID within a tenant
func (r *GormTrailerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Trailer, error) {
	var trailer fleet.Trailer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&trailer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &trailer, nil
}

// FindByRegistration finds a trailer by registration number for a tenant
func (r *GormTrailerRepository) FindByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (*fleet.Trailer, error) {
	var trailer fleet.Trailer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND registration_number = ?", tenantID, normalizePlate(registrationNumber)).
		First(&trailer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &trailer, nil
}

// FindAllForTenant finds all trailers for a tenant
func (r *GormTrailerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Trailer, error) {
	var trailers []fleet.Trailer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fleet.Trailer{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&trailers).Error; err != nil {
		return nil, err
	}
	return trailers, nil
}

// FindAvailable finds trailers that can be assigned to an order
func (r *GormTrailerRepository) FindAvailable(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Trailer, error) {
	var trailers []fleet.Trailer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fleet.Trailer{}).
			Where("tenant_id = ? AND status = ?", tenantID, fleet.EquipmentStatusAvailable),
		filter,
	)

	if err := query.Find(&trailers).Error; err != nil {
		return nil, err
	}
	return trailers, nil
}

// FindWithExpiringDocuments finds trailers whose inspection or insurance
// runs out on or before the deadline
func (r *GormTrailerRepository) FindWithExpiringDocuments(ctx context.Context, tenantID uuid.UUID, deadline time.Time) ([]fleet.Trailer, error) {
	var trailers []fleet.Trailer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND (inspection_expiry <= ? OR insurance_expiry <= ?)", tenantID, deadline, deadline).
		Order("registration_number ASC").
		Find(&trailers).Error; err != nil {
		return nil, err
	}
	return trailers, nil
}

// Save creates or updates a trailer
func (r *GormTrailerRepository) Save(ctx context.Context, trailer *fleet.Trailer) error {
	return r.db.WithContext(ctx).Save(trailer).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTrailerRepository) SaveWithLock(ctx context.Context, trailer *fleet.Trailer) error {
	result := r.db.WithContext(ctx).
		Model(trailer).
		Where("id = ? AND version = ?", trailer.ID, trailer.Version-1).
		Updates(trailer)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The trailer record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes a trailer within a tenant
func (r *GormTrailerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fleet.Trailer{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts trailers for a tenant
func (r *GormTrailerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fleet.Trailer{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByRegistration checks if a registration number exists for a tenant
func (r *GormTrailerRepository) ExistsByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fleet.Trailer{}).
		Where("tenant_id = ? AND registration_number = ?", tenantID, normalizePlate(registrationNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormTrailerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, TrailerSortFields, "")
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
func (r *GormTrailerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("registration_number ILIKE ?", searchPattern)
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

// Ensure GormTrailerRepository implements TrailerRepository
var _ fleet.TrailerRepository = (*GormTrailerRepository)(nil)
