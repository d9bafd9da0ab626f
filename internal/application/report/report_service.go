package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/report"
	"github.com/translog/backend/internal/domain/shared"
)

// ReportService provides application-level report operations. All reports
// are computed on demand from the live data, nothing is pre-aggregated.
// Money stays decimal end to end, the JSON layer renders it as strings.
type ReportService struct {
	revenueRepo     report.RevenueReportRepository
	receivablesRepo report.ReceivablesReportRepository
	templateRepo    recurring.TemplateRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	revenueRepo report.RevenueReportRepository,
	receivablesRepo report.ReceivablesReportRepository,
	templateRepo recurring.TemplateRepository,
) *ReportService {
	return &ReportService{
		revenueRepo:     revenueRepo,
		receivablesRepo: receivablesRepo,
		templateRepo:    templateRepo,
	}
}

// ===================== Revenue Operations =====================

// RevenueReportFilter defines the request filter for revenue reports
type RevenueReportFilter struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// TopContractorsFilter defines the request filter for contractor rankings
type TopContractorsFilter struct {
	From  time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To    time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	Limit int       `form:"limit"`
}

// RevenueReportResponse bundles the period summary with the monthly breakdown
type RevenueReportResponse struct {
	Summary report.RevenueSummary   `json:"summary"`
	Monthly []report.MonthlyRevenue `json:"monthly"`
}

// GetRevenueReport returns invoiced revenue for the period, total and per month
func (s *ReportService) GetRevenueReport(ctx context.Context, tenantID uuid.UUID, filter RevenueReportFilter) (*RevenueReportResponse, error) {
	domainFilter := report.RevenueReportFilter{
		TenantID:  tenantID,
		StartDate: filter.From,
		EndDate:   filter.To,
	}

	summary, err := s.revenueRepo.GetRevenueSummary(domainFilter)
	if err != nil {
		return nil, err
	}

	monthly, err := s.revenueRepo.GetMonthlyRevenue(domainFilter)
	if err != nil {
		return nil, err
	}

	return &RevenueReportResponse{
		Summary: *summary,
		Monthly: monthly,
	}, nil
}

// GetTopContractors returns the highest-grossing contractors for the period
func (s *ReportService) GetTopContractors(ctx context.Context, tenantID uuid.UUID, filter TopContractorsFilter) ([]report.ContractorRanking, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	domainFilter := report.RevenueReportFilter{
		TenantID:  tenantID,
		StartDate: filter.From,
		EndDate:   filter.To,
		TopN:      limit,
	}

	return s.revenueRepo.GetTopContractors(domainFilter)
}

// ===================== Receivables Operations =====================

// ReceivablesAgingResponse bundles the bucketed totals with the open items
type ReceivablesAgingResponse struct {
	Aging report.ReceivablesAging `json:"aging"`
	Items []report.OpenReceivable `json:"items"`
}

// GetReceivablesAging buckets every unpaid issued invoice by how far past
// due it is at the reference date
func (s *ReportService) GetReceivablesAging(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*ReceivablesAgingResponse, error) {
	items, err := s.receivablesRepo.GetOpenReceivables(report.ReceivablesReportFilter{
		TenantID: tenantID,
		AsOf:     asOf,
	})
	if err != nil {
		return nil, err
	}

	aging := report.BuildReceivablesAging(asOf, items)

	return &ReceivablesAgingResponse{
		Aging: aging,
		Items: items,
	}, nil
}

// ===================== Recurring Generation Operations =====================

// RecurringGenerationResponse bundles per-template rows with the counters
type RecurringGenerationResponse struct {
	Summary   report.RecurringStats            `json:"summary"`
	Templates []report.TemplateGenerationStats `json:"templates"`
}

// GetRecurringGeneration reports generation activity for every recurring
// template of the tenant, evaluated at the reference date
func (s *ReportService) GetRecurringGeneration(ctx context.Context, tenantID uuid.UUID, ref time.Time) (*RecurringGenerationResponse, error) {
	// PageSize zero disables pagination, the counters need every template.
	templates, err := s.templateRepo.FindAllForTenant(ctx, tenantID, shared.Filter{
		OrderBy:  "name",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}

	rows, stats := report.BuildRecurringGeneration(templates, ref)

	return &RecurringGenerationResponse{
		Summary:   stats,
		Templates: rows,
	}, nil
}
