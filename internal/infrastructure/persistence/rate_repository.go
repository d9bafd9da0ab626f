package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/infrastructure/persistence/models"
)

// GormRateRepository implements RateRepository using GORM. It is the
// durable tier behind the NBP rate cache: rates fetched from the API are
// written here so restarts do not refetch published history.
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// FindRate returns the stored rate for a currency and effective date
func (r *GormRateRepository) FindRate(ctx context.Context, currency string, date time.Time) (*invoicing.ExchangeRate, error) {
	var model models.ExchangeRateModel
	if err := r.db.WithContext(ctx).
		Where("currency = ? AND effective_date = ?", currency, date).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveRate stores a fetched rate. A rate for the same currency and date
// is overwritten; NBP corrections are rare but possible.
func (r *GormRateRepository) SaveRate(ctx context.Context, rate invoicing.ExchangeRate) error {
	model := models.ExchangeRateModelFromDomain(rate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "currency"}, {Name: "effective_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "table_no"}),
		}).
		Create(model).Error
}

// Ensure GormRateRepository implements RateRepository
var _ invoicing.RateRepository = (*GormRateRepository)(nil)
