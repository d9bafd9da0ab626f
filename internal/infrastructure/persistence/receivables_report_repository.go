package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/report"
)

// GormReceivablesReportRepository implements ReceivablesReportRepository
// using GORM
type GormReceivablesReportRepository struct {
	db *gorm.DB
}

// NewGormReceivablesReportRepository creates a new GormReceivablesReportRepository
func NewGormReceivablesReportRepository(db *gorm.DB) *GormReceivablesReportRepository {
	return &GormReceivablesReportRepository{db: db}
}

// GetOpenReceivables returns every unpaid issued invoice with its
// PLN-equivalent gross and days overdue at the filter's AsOf date.
// Bucketing happens in the domain, this query only supplies the rows.
func (r *GormReceivablesReportRepository) GetOpenReceivables(filter report.ReceivablesReportFilter) ([]report.OpenReceivable, error) {
	var rows []struct {
		InvoiceID      uuid.UUID
		InvoiceNumber  string
		ContractorID   uuid.UUID
		ContractorName string
		GrossPLN       decimal.Decimal
		DueDate        time.Time
	}

	query := r.db.Table("invoices i").
		Select(`
			i.id as invoice_id,
			i.invoice_number,
			i.buyer_contractor_id as contractor_id,
			COALESCE(c.name, i.buyer_name) as contractor_name,
			COALESCE(i.total_gross_pln, i.total_gross) as gross_pln,
			i.due_date
		`).
		Joins("LEFT JOIN contractors c ON c.id = i.buyer_contractor_id").
		Where("i.tenant_id = ?", filter.TenantID).
		Where("i.status = ?", "ISSUED").
		Where("i.issue_date <= ?", filter.AsOf).
		Order("i.due_date ASC")

	if filter.ContractorID != nil {
		query = query.Where("i.buyer_contractor_id = ?", *filter.ContractorID)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	asOf := filter.AsOf.Truncate(24 * time.Hour)
	items := make([]report.OpenReceivable, len(rows))
	for i, row := range rows {
		due := row.DueDate.Truncate(24 * time.Hour)
		daysOverdue := int(asOf.Sub(due).Hours() / 24)
		items[i] = report.OpenReceivable{
			InvoiceID:      row.InvoiceID,
			InvoiceNumber:  row.InvoiceNumber,
			ContractorID:   row.ContractorID,
			ContractorName: row.ContractorName,
			GrossPLN:       row.GrossPLN,
			DueDate:        row.DueDate,
			DaysOverdue:    daysOverdue,
			Bucket:         report.BucketForDaysOverdue(daysOverdue),
		}
	}
	return items, nil
}

// Ensure GormReceivablesReportRepository implements ReceivablesReportRepository
var _ report.ReceivablesReportRepository = (*GormReceivablesReportRepository)(nil)
