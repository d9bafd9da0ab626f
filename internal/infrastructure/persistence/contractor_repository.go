package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/partner"
	"github.com/translog/backend/internal/domain/shared"
)

// GormContractorRepository implements ContractorRepository using GORM
type GormContractorRepository struct {
	db *gorm.DB
}

// NewGormContractorRepository creates a new GormContractorRepository
func NewGormContractorRepository(db *gorm.DB) *GormContractorRepository {
	return &GormContractorRepository{db: db}
}

// FindByID finds a contractor by its ID
func (r *GormContractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contractor, error) {
	var contractor partner.Contractor
	if err := r.db.WithContext(ctx).First(&contractor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

// FindByIDForTenant finds a contractor by ID within a tenant
func (r *GormContractorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Contractor, error) {
	var contractor partner.Contractor
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&contractor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

// FindByCode finds a contractor by its code within a tenant
func (r *GormContractorRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Contractor, error) {
	var contractor partner.Contractor
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&contractor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

// FindByNIP finds a contractor by its NIP within a tenant
func (r *GormContractorRepository) FindByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (*partner.Contractor, error) {
	if nip == "" {
		return nil, shared.ErrNotFound
	}
	var contractor partner.Contractor
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND nip = ?", tenantID, nip).
		First(&contractor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

// FindAllForTenant finds all contractors for a tenant
func (r *GormContractorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Contractor, error) {
	var contractors []partner.Contractor
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Contractor{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&contractors).Error; err != nil {
		return nil, err
	}
	return contractors, nil
}

// FindByKind finds contractors able to act in the given role. A BOTH
// contractor matches both the CLIENT and the CARRIER role.
func (r *GormContractorRepository) FindByKind(ctx context.Context, tenantID uuid.UUID, kind partner.ContractorKind, filter shared.Filter) ([]partner.Contractor, error) {
	var contractors []partner.Contractor
	query := r.db.WithContext(ctx).Model(&partner.Contractor{}).Where("tenant_id = ?", tenantID)

	if kind == partner.ContractorKindBoth {
		query = query.Where("kind = ?", partner.ContractorKindBoth)
	} else {
		query = query.Where("kind IN ?", []partner.ContractorKind{kind, partner.ContractorKindBoth})
	}

	query = r.applyFilter(query, filter)

	if err := query.Find(&contractors).Error; err != nil {
		return nil, err
	}
	return contractors, nil
}

// Save creates or updates a contractor
func (r *GormContractorRepository) Save(ctx context.Context, contractor *partner.Contractor) error {
	return r.db.WithContext(ctx).Save(contractor).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormContractorRepository) SaveWithLock(ctx context.Context, contractor *partner.Contractor) error {
	result := r.db.WithContext(ctx).
		Model(contractor).
		Where("id = ? AND version = ?", contractor.ID, contractor.Version-1).
		Updates(contractor)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The contractor record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes a contractor within a tenant
func (r *GormContractorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Contractor{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts contractors for a tenant
func (r *GormContractorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&partner.Contractor{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a contractor with the given code exists in the tenant
func (r *GormContractorRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Contractor{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByNIP checks if a contractor with the given NIP exists in the tenant
func (r *GormContractorRepository) ExistsByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (bool, error) {
	if nip == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Contractor{}).
		Where("tenant_id = ? AND nip = ?", tenantID, nip).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormContractorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ContractorSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			// Default ordering if invalid field
			query = query.Order("name ASC")
		}
	} else {
		// Default ordering
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormContractorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR nip ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		case "currency":
			query = query.Where("default_currency = ?", value)
		}
	}

	return query
}

// Ensure GormContractorRepository implements ContractorRepository
var _ partner.ContractorRepository = (*GormContractorRepository)(nil)
