package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyRevenue is a read model for revenue per calendar month.
// Amounts are PLN equivalents: domestic invoices contribute their gross
// directly, foreign-currency invoices contribute TotalGrossPLN.
type MonthlyRevenue struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	InvoiceCount  int64           `json:"invoice_count"`
	PaidCount     int64           `json:"paid_count"`
	TotalNetPLN   decimal.Decimal `json:"total_net_pln"`
	TotalGrossPLN decimal.Decimal `json:"total_gross_pln"`
}

// RevenueSummary provides aggregated revenue statistics for a period
type RevenueSummary struct {
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	InvoiceCount    int64           `json:"invoice_count"`
	PaidCount       int64           `json:"paid_count"`
	TotalNetPLN     decimal.Decimal `json:"total_net_pln"`
	TotalGrossPLN   decimal.Decimal `json:"total_gross_pln"`
	AvgInvoiceGross decimal.Decimal `json:"avg_invoice_gross"`
}

// ContractorRanking represents top clients by invoiced revenue
type ContractorRanking struct {
	Rank          int             `json:"rank"`
	ContractorID  uuid.UUID       `json:"contractor_id"`
	Name          string          `json:"name"`
	NIP           string          `json:"nip,omitempty"`
	InvoiceCount  int64           `json:"invoice_count"`
	OrderCount    int64           `json:"order_count"`
	TotalGrossPLN decimal.Decimal `json:"total_gross_pln"`
}

// RevenueReportFilter defines filtering options for revenue reports
type RevenueReportFilter struct {
	TenantID     uuid.UUID  `json:"-"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	ContractorID *uuid.UUID `json:"contractor_id,omitempty"`
	TopN         int        `json:"top_n,omitempty"` // For rankings
}

// RevenueReportRepository defines the interface for revenue report queries
type RevenueReportRepository interface {
	// GetRevenueSummary returns aggregated revenue for the period
	GetRevenueSummary(filter RevenueReportFilter) (*RevenueSummary, error)

	// GetMonthlyRevenue returns revenue per month inside the period
	GetMonthlyRevenue(filter RevenueReportFilter) ([]MonthlyRevenue, error)

	// GetTopContractors returns the top N clients by invoiced revenue
	GetTopContractors(filter RevenueReportFilter) ([]ContractorRanking, error)
}
