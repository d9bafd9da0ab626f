package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgingBucket identifies how far past due an open receivable is
type AgingBucket string

const (
	BucketCurrent    AgingBucket = "CURRENT" // Not yet due, including due today
	BucketDays1To30  AgingBucket = "DAYS_1_30"
	BucketDays31To60 AgingBucket = "DAYS_31_60"
	BucketDays61To90 AgingBucket = "DAYS_61_90"
	BucketOver90     AgingBucket = "OVER_90"
)

// BucketForDaysOverdue maps days past the due date to the aging bucket
func BucketForDaysOverdue(days int) AgingBucket {
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return BucketDays1To30
	case days <= 60:
		return BucketDays31To60
	case days <= 90:
		return BucketDays61To90
	default:
		return BucketOver90
	}
}

// OpenReceivable is one unpaid issued invoice in the aging report
type OpenReceivable struct {
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	ContractorID   uuid.UUID       `json:"contractor_id"`
	ContractorName string          `json:"contractor_name"`
	GrossPLN       decimal.Decimal `json:"gross_pln"`
	DueDate        time.Time       `json:"due_date"`
	DaysOverdue    int             `json:"days_overdue"`
	Bucket         AgingBucket     `json:"bucket"`
}

// ReceivablesAging is the bucketed sum of all open receivables
type ReceivablesAging struct {
	AsOf       time.Time       `json:"as_of"`
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days_1_30"`
	Days31To60 decimal.Decimal `json:"days_31_60"`
	Days61To90 decimal.Decimal `json:"days_61_90"`
	Over90     decimal.Decimal `json:"over_90"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int64           `json:"item_count"`
}

// BuildReceivablesAging buckets open receivables by days overdue and
// sums each bucket. Items get their Bucket field filled in place.
func BuildReceivablesAging(asOf time.Time, items []OpenReceivable) ReceivablesAging {
	aging := ReceivablesAging{
		AsOf:       asOf,
		Current:    decimal.Zero,
		Days1To30:  decimal.Zero,
		Days31To60: decimal.Zero,
		Days61To90: decimal.Zero,
		Over90:     decimal.Zero,
		Total:      decimal.Zero,
	}

	for i := range items {
		bucket := BucketForDaysOverdue(items[i].DaysOverdue)
		items[i].Bucket = bucket

		switch bucket {
		case BucketCurrent:
			aging.Current = aging.Current.Add(items[i].GrossPLN)
		case BucketDays1To30:
			aging.Days1To30 = aging.Days1To30.Add(items[i].GrossPLN)
		case BucketDays31To60:
			aging.Days31To60 = aging.Days31To60.Add(items[i].GrossPLN)
		case BucketDays61To90:
			aging.Days61To90 = aging.Days61To90.Add(items[i].GrossPLN)
		case BucketOver90:
			aging.Over90 = aging.Over90.Add(items[i].GrossPLN)
		}

		aging.Total = aging.Total.Add(items[i].GrossPLN)
		aging.ItemCount++
	}

	return aging
}

// ReceivablesReportFilter defines filtering options for receivables reports
type ReceivablesReportFilter struct {
	TenantID     uuid.UUID  `json:"-"`
	AsOf         time.Time  `json:"as_of"`
	ContractorID *uuid.UUID `json:"contractor_id,omitempty"`
}

// ReceivablesReportRepository defines the interface for receivables queries
type ReceivablesReportRepository interface {
	// GetOpenReceivables returns every unpaid issued invoice with its
	// PLN-equivalent gross and days overdue at the filter's AsOf date
	GetOpenReceivables(filter ReceivablesReportFilter) ([]OpenReceivable, error)
}
