package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/shared"
)

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*recurring.Template, error) {
	var template recurring.Template
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindByIDForTenant finds a template by ID within a tenant
func (r *GormTemplateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*recurring.Template, error) {
	var template recurring.Template
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindAllForTenant finds all templates for a tenant
func (r *GormTemplateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]recurring.Template, error) {
	var templates []recurring.Template
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&recurring.Template{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// FindDue finds active templates whose next generation date is on or
// before the reference date. The sweep re-checks ShouldGenerateNow on the
// loaded aggregate, so a template another worker advanced between the
// query and the lock is skipped, not generated twice.
func (r *GormTemplateRepository) FindDue(ctx context.Context, tenantID uuid.UUID, ref time.Time) ([]recurring.Template, error) {
	var templates []recurring.Template
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ? AND next_generation_date IS NOT NULL AND next_generation_date <= ?",
			tenantID, true, recurring.DateOnly(ref)).
		Order("next_generation_date ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Save creates or updates a template
func (r *GormTemplateRepository) Save(ctx context.Context, template *recurring.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTemplateRepository) SaveWithLock(ctx context.Context, template *recurring.Template) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&recurring.Template{}).
			Where("id = ?", template.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != template.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The template has been modified by another user")
		}

		template.Version++
		template.UpdatedAt = time.Now()

		result := tx.Model(&recurring.Template{}).
			Where("id = ? AND version = ?", template.ID, currentVersion).
			Updates(map[string]interface{}{
				"name":                 template.Name,
				"frequency":            template.Frequency,
				"day_of_week":          template.DayOfWeek,
				"day_of_month":         template.DayOfMonth,
				"start_date":           template.StartDate,
				"end_date":             template.EndDate,
				"is_active":            template.IsActive,
				"next_generation_date": template.NextGenerationDate,
				"last_generated_at":    template.LastGeneratedAt,
				"generated_count":      template.GeneratedCount,
				"contractor_id":        template.Draft.ContractorID,
				"carrier_id":           template.Draft.CarrierID,
				"loading_place":        template.Draft.LoadingPlace,
				"unloading_place":      template.Draft.UnloadingPlace,
				"transit_days":         template.Draft.TransitDays,
				"cargo_description":    template.Draft.CargoDescription,
				"weight_kg":            template.Draft.WeightKg,
				"pallets":              template.Draft.Pallets,
				"price_net":            template.Draft.PriceNet,
				"currency":             template.Draft.Currency,
				"vat_rate":             template.Draft.VATRate,
				"version":              template.Version,
				"updated_at":           template.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The template has been modified by another user")
		}
		return nil
	})
}

// DeleteForTenant deletes a template within a tenant
func (r *GormTemplateRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&recurring.Template{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts templates for a tenant
func (r *GormTemplateRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&recurring.Template{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, TemplateSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("name ASC")
		}
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTemplateRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "frequency":
			query = query.Where("frequency = ?", value)
		case "contractor_id":
			query = query.Where("contractor_id = ?", value)
		}
	}

	return query
}

// Ensure GormTemplateRepository implements TemplateRepository
var _ recurring.TemplateRepository = (*GormTemplateRepository)(nil)
