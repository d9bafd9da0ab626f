package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormInvoiceRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an invoice by ID within a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by invoice number for a tenant
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND invoice_number = ?", tenantID, invoiceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all invoices for a tenant with filtering
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Lines").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels), nil
}

// FindByContractor finds invoices for a contractor
func (r *GormInvoiceRepository) FindByContractor(ctx context.Context, tenantID, contractorID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Lines").
			Where("tenant_id = ? AND buyer_contractor_id = ?", tenantID, contractorID),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels), nil
}

// FindByStatus finds invoices by status for a tenant
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status invoicing.InvoiceStatus, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Lines").
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels), nil
}

// FindByOrder finds invoices linked to a transport order
func (r *GormInvoiceRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at DESC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels), nil
}

// FindOverdue finds issued invoices whose due date has passed at the reference date
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, tenantID uuid.UUID, ref time.Time, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Lines").
			Where("tenant_id = ? AND status = ? AND due_date < ?", tenantID, invoicing.InvoiceStatusIssued, ref),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels), nil
}

// FindUnpaidIssued finds all issued invoices that are not yet paid
func (r *GormInvoiceRepository) FindUnpaidIssued(ctx context.Context, tenantID uuid.UUID) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND status = ?", tenantID, invoicing.InvoiceStatusIssued).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels), nil
}

// FindPendingKSeF finds invoices awaiting a KSeF processing outcome
func (r *GormInvoiceRepository) FindPendingKSeF(ctx context.Context, tenantID uuid.UUID) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND ksef_status = ?", tenantID, invoicing.KSeFPending).
		Order("updated_at ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels), nil
}

// Save creates or updates an invoice with its lines
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.InvoiceModelFromDomain(inv)
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		return r.saveLinesTx(tx, inv)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, inv *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithLockTx(tx, inv)
	})
}

// SaveWithLockAndEvents saves with optimistic locking and persists domain events atomically
// This implements the transactional outbox pattern - events are saved to the outbox table
// in the same transaction as the invoice, ensuring guaranteed event delivery
func (r *GormInvoiceRepository) SaveWithLockAndEvents(ctx context.Context, inv *invoicing.Invoice, events []shared.DomainEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveWithLockTx(tx, inv); err != nil {
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

// saveWithLockTx inserts a new invoice or updates an existing one under a
// version check. Draft creation goes through the outbox save path too, so
// the insert case is part of the locking flow.
func (r *GormInvoiceRepository) saveWithLockTx(tx *gorm.DB, inv *invoicing.Invoice) error {
	var count int64
	if err := tx.Model(&models.InvoiceModel{}).
		Where("id = ?", inv.ID).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		model := models.InvoiceModelFromDomain(inv)
		if err := tx.Omit("Lines").Create(model).Error; err != nil {
			return err
		}
		return r.saveLinesTx(tx, inv)
	}

	var currentVersion int
	if err := tx.Model(&models.InvoiceModel{}).
		Where("id = ?", inv.ID).
		Select("version").
		Scan(&currentVersion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	if currentVersion != inv.Version {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The invoice has been modified by another user")
	}

	inv.Version++
	inv.UpdatedAt = time.Now()

	model := models.InvoiceModelFromDomain(inv)

	result := tx.Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", inv.ID, currentVersion).
		Updates(map[string]interface{}{
			"invoice_number":         model.InvoiceNumber,
			"buyer_contractor_id":    model.BuyerContractorID,
			"buyer_name":             model.BuyerName,
			"buyer_nip":              model.BuyerNIP,
			"buyer_address":          model.BuyerAddress,
			"order_id":               model.OrderID,
			"issue_date":             model.IssueDate,
			"sale_date":              model.SaleDate,
			"due_date":               model.DueDate,
			"currency":               model.Currency,
			"total_net":              model.TotalNet,
			"total_vat":              model.TotalVAT,
			"total_gross":            model.TotalGross,
			"exchange_rate":          model.ExchangeRate,
			"exchange_rate_currency": model.ExchangeRateCurrency,
			"exchange_rate_date":     model.ExchangeRateDate,
			"exchange_rate_table":    model.ExchangeRateTable,
			"total_gross_pln":        model.TotalGrossPLN,
			"status":                 model.Status,
			"ksef_status":            model.KSeFStatus,
			"ksef_reference":         model.KSeFReference,
			"paid_at":                model.PaidAt,
			"cancelled_at":           model.CancelledAt,
			"cancel_reason":          model.CancelReason,
			"remark":                 model.Remark,
			"version":                inv.Version,
			"updated_at":             inv.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The invoice has been modified by another user")
	}

	return r.saveLinesTx(tx, inv)
}

// saveLinesTx rewrites the invoice's line set: lines removed from the
// aggregate are deleted, the rest are upserted
func (r *GormInvoiceRepository) saveLinesTx(tx *gorm.DB, inv *invoicing.Invoice) error {
	currentLineIDs := make([]uuid.UUID, len(inv.Lines))
	for i, line := range inv.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("invoice_id = ? AND id NOT IN ?", inv.ID, currentLineIDs).
			Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("invoice_id = ?", inv.ID).
			Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
	}

	for i := range inv.Lines {
		lineModel := models.InvoiceLineModelFromDomain(inv.ID, &inv.Lines[i])
		if err := tx.Save(lineModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// DeleteForTenant deletes a draft invoice for a tenant
func (r *GormInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.InvoiceModel
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.InvoiceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountForTenant counts invoices for a tenant with optional filters
func (r *GormInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts invoices by status for a tenant
func (r *GormInvoiceRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status invoicing.InvoiceStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if an invoice number exists for a tenant
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("tenant_id = ? AND invoice_number = ?", tenantID, invoiceNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateInvoiceNumber generates the next invoice number for a tenant
// Format: FV/YYYY/MM/NNNN (e.g., FV/2026/03/0001), sequence restarting each month
func (r *GormInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID, issueDate time.Time) (string, error) {
	prefix := fmt.Sprintf("FV/%04d/%02d/", issueDate.Year(), int(issueDate.Month()))

	// Get the highest invoice number for this month
	var lastModel models.InvoiceModel
	err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("tenant_id = ? AND invoice_number LIKE ?", tenantID, prefix+"%").
		Order("invoice_number DESC").
		First(&lastModel).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastModel.InvoiceNumber != "" {
		parts := strings.Split(lastModel.InvoiceNumber, "/")
		if len(parts) == 4 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[3], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	invoiceNumber := fmt.Sprintf("%s%04d", prefix, nextNum)

	// Verify uniqueness
	exists, err := r.ExistsByNumber(ctx, tenantID, invoiceNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			invoiceNumber = fmt.Sprintf("%s%04d", prefix, nextNum)
			exists, err = r.ExistsByNumber(ctx, tenantID, invoiceNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				return invoiceNumber, nil
			}
		}
		return "", fmt.Errorf("failed to generate unique invoice number after 100 attempts")
	}

	return invoiceNumber, nil
}

// toDomainSlice converts a slice of models to domain invoices
func (r *GormInvoiceRepository) toDomainSlice(invoiceModels []models.InvoiceModel) []invoicing.Invoice {
	invoices := make([]invoicing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "")
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
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR buyer_name ILIKE ? OR buyer_nip ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "ksef_status":
			query = query.Where("ksef_status = ?", value)
		case "contractor_id":
			query = query.Where("buyer_contractor_id = ?", value)
		case "currency":
			query = query.Where("currency = ?", value)
		case "issued_from":
			query = query.Where("issue_date >= ?", value)
		case "issued_to":
			query = query.Where("issue_date <= ?", value)
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
