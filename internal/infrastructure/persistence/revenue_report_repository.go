package persistence

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/translog/backend/internal/domain/report"
)

// revenueStatuses are the invoice states that count as revenue. Drafts
// are not yet receivables and cancelled invoices never were.
var revenueStatuses = []string{"ISSUED", "PAID"}

// GormRevenueReportRepository implements RevenueReportRepository using GORM.
// All amounts are PLN equivalents: total_gross_pln where the invoice was
// rescaled from a foreign currency, the raw totals otherwise.
type GormRevenueReportRepository struct {
	db *gorm.DB
}

// NewGormRevenueReportRepository creates a new GormRevenueReportRepository
func NewGormRevenueReportRepository(db *gorm.DB) *GormRevenueReportRepository {
	return &GormRevenueReportRepository{db: db}
}

// GetRevenueSummary returns aggregated revenue for the period
func (r *GormRevenueReportRepository) GetRevenueSummary(filter report.RevenueReportFilter) (*report.RevenueSummary, error) {
	var row struct {
		InvoiceCount  int64
		PaidCount     int64
		TotalNetPLN   decimal.Decimal
		TotalGrossPLN decimal.Decimal
	}

	query := r.db.Table("invoices i").
		Select(`
			COUNT(i.id) as invoice_count,
			COUNT(i.id) FILTER (WHERE i.status = 'PAID') as paid_count,
			COALESCE(SUM(i.total_net * COALESCE(i.exchange_rate, 1)), 0) as total_net_pln,
			COALESCE(SUM(COALESCE(i.total_gross_pln, i.total_gross)), 0) as total_gross_pln
		`).
		Where("i.tenant_id = ?", filter.TenantID).
		Where("i.issue_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("i.status IN ?", revenueStatuses)

	if filter.ContractorID != nil {
		query = query.Where("i.buyer_contractor_id = ?", *filter.ContractorID)
	}

	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if row.InvoiceCount > 0 {
		avg = row.TotalGrossPLN.Div(decimal.NewFromInt(row.InvoiceCount)).Round(2)
	}

	return &report.RevenueSummary{
		PeriodStart:     filter.StartDate,
		PeriodEnd:       filter.EndDate,
		InvoiceCount:    row.InvoiceCount,
		PaidCount:       row.PaidCount,
		TotalNetPLN:     row.TotalNetPLN,
		TotalGrossPLN:   row.TotalGrossPLN,
		AvgInvoiceGross: avg,
	}, nil
}

// GetMonthlyRevenue returns revenue per month inside the period
func (r *GormRevenueReportRepository) GetMonthlyRevenue(filter report.RevenueReportFilter) ([]report.MonthlyRevenue, error) {
	var rows []struct {
		Year          int
		Month         int
		InvoiceCount  int64
		PaidCount     int64
		TotalNetPLN   decimal.Decimal
		TotalGrossPLN decimal.Decimal
	}

	query := r.db.Table("invoices i").
		Select(`
			EXTRACT(YEAR FROM i.issue_date)::int as year,
			EXTRACT(MONTH FROM i.issue_date)::int as month,
			COUNT(i.id) as invoice_count,
			COUNT(i.id) FILTER (WHERE i.status = 'PAID') as paid_count,
			COALESCE(SUM(i.total_net * COALESCE(i.exchange_rate, 1)), 0) as total_net_pln,
			COALESCE(SUM(COALESCE(i.total_gross_pln, i.total_gross)), 0) as total_gross_pln
		`).
		Where("i.tenant_id = ?", filter.TenantID).
		Where("i.issue_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("i.status IN ?", revenueStatuses).
		Group("year, month").
		Order("year, month")

	if filter.ContractorID != nil {
		query = query.Where("i.buyer_contractor_id = ?", *filter.ContractorID)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]report.MonthlyRevenue, len(rows))
	for i, row := range rows {
		result[i] = report.MonthlyRevenue{
			Year:          row.Year,
			Month:         row.Month,
			InvoiceCount:  row.InvoiceCount,
			PaidCount:     row.PaidCount,
			TotalNetPLN:   row.TotalNetPLN,
			TotalGrossPLN: row.TotalGrossPLN,
		}
	}
	return result, nil
}

// GetTopContractors returns the top N clients by invoiced revenue
func (r *GormRevenueReportRepository) GetTopContractors(filter report.RevenueReportFilter) ([]report.ContractorRanking, error) {
	topN := filter.TopN
	if topN <= 0 {
		topN = 10
	}

	var rows []struct {
		ContractorID  uuid.UUID
		Name          string
		NIP           string
		InvoiceCount  int64
		OrderCount    int64
		TotalGrossPLN decimal.Decimal
	}

	if err := r.db.Table("invoices i").
		Select(`
			i.buyer_contractor_id as contractor_id,
			COALESCE(c.name, i.buyer_name) as name,
			COALESCE(c.nip, i.buyer_nip) as nip,
			COUNT(i.id) as invoice_count,
			(SELECT COUNT(*) FROM transport_orders o
				WHERE o.tenant_id = i.tenant_id
				AND o.contractor_id = i.buyer_contractor_id
				AND o.created_at BETWEEN ? AND ?) as order_count,
			COALESCE(SUM(COALESCE(i.total_gross_pln, i.total_gross)), 0) as total_gross_pln
		`, filter.StartDate, filter.EndDate).
		Joins("LEFT JOIN contractors c ON c.id = i.buyer_contractor_id").
		Where("i.tenant_id = ?", filter.TenantID).
		Where("i.issue_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("i.status IN ?", revenueStatuses).
		Group("i.tenant_id, i.buyer_contractor_id, c.name, c.nip, i.buyer_name, i.buyer_nip").
		Order("total_gross_pln DESC").
		Limit(topN).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	rankings := make([]report.ContractorRanking, len(rows))
	for i, row := range rows {
		rankings[i] = report.ContractorRanking{
			Rank:          i + 1,
			ContractorID:  row.ContractorID,
			Name:          row.Name,
			NIP:           row.NIP,
			InvoiceCount:  row.InvoiceCount,
			OrderCount:    row.OrderCount,
			TotalGrossPLN: row.TotalGrossPLN,
		}
	}
	return rankings, nil
}

// Ensure GormRevenueReportRepository implements RevenueReportRepository
var _ report.RevenueReportRepository = (*GormRevenueReportRepository)(nil)
