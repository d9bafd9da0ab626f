package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/report"
	"github.com/translog/backend/internal/domain/shared"
)

// MockRevenueReportRepository is a mock for report.RevenueReportRepository
type MockRevenueReportRepository struct {
	mock.Mock
}

func (m *MockRevenueReportRepository) GetRevenueSummary(filter report.RevenueReportFilter) (*report.RevenueSummary, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RevenueSummary), args.Error(1)
}

func (m *MockRevenueReportRepository) GetMonthlyRevenue(filter report.RevenueReportFilter) ([]report.MonthlyRevenue, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.MonthlyRevenue), args.Error(1)
}

func (m *MockRevenueReportRepository) GetTopContractors(filter report.RevenueReportFilter) ([]report.ContractorRanking, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.ContractorRanking), args.Error(1)
}

// MockReceivablesReportRepository is a mock for report.ReceivablesReportRepository
type MockReceivablesReportRepository struct {
	mock.Mock
}

func (m *MockReceivablesReportRepository) GetOpenReceivables(filter report.ReceivablesReportFilter) ([]report.OpenReceivable, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.OpenReceivable), args.Error(1)
}

// MockTemplateRepository is a mock for recurring.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*recurring.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recurring.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*recurring.Template, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recurring.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]recurring.Template, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recurring.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindDue(ctx context.Context, tenantID uuid.UUID, ref time.Time) ([]recurring.Template, error) {
	args := m.Called(ctx, tenantID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recurring.Template), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *recurring.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) SaveWithLock(ctx context.Context, template *recurring.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

var testTenantID = uuid.New()

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, d int) *time.Time {
	v := day(year, month, d)
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type reportMocks struct {
	revenue     *MockRevenueReportRepository
	receivables *MockReceivablesReportRepository
	templates   *MockTemplateRepository
}

func newTestReportService() (*ReportService, *reportMocks) {
	m := &reportMocks{
		revenue:     new(MockRevenueReportRepository),
		receivables: new(MockReceivablesReportRepository),
		templates:   new(MockTemplateRepository),
	}
	return NewReportService(m.revenue, m.receivables, m.templates), m
}

// ============================================================================
// Revenue Report Tests
// ============================================================================

func TestReportService_GetRevenueReport(t *testing.T) {
	ctx := context.Background()
	from := day(2026, time.January, 1)
	to := day(2026, time.February, 28)

	t.Run("bundles summary and monthly breakdown", func(t *testing.T) {
		service, mocks := newTestReportService()

		domainFilter := report.RevenueReportFilter{
			TenantID:  testTenantID,
			StartDate: from,
			EndDate:   to,
		}
		summary := &report.RevenueSummary{
			PeriodStart:     from,
			PeriodEnd:       to,
			InvoiceCount:    14,
			PaidCount:       9,
			TotalNetPLN:     dec("41050.00"),
			TotalGrossPLN:   dec("50491.50"),
			AvgInvoiceGross: dec("3606.54"),
		}
		monthly := []report.MonthlyRevenue{
			{Year: 2026, Month: 1, InvoiceCount: 6, PaidCount: 5, TotalNetPLN: dec("17550.00"), TotalGrossPLN: dec("21586.50")},
			{Year: 2026, Month: 2, InvoiceCount: 8, PaidCount: 4, TotalNetPLN: dec("23500.00"), TotalGrossPLN: dec("28905.00")},
		}
		mocks.revenue.On("GetRevenueSummary", domainFilter).Return(summary, nil)
		mocks.revenue.On("GetMonthlyRevenue", domainFilter).Return(monthly, nil)

		response, err := service.GetRevenueReport(ctx, testTenantID, RevenueReportFilter{From: from, To: to})

		require.NoError(t, err)
		assert.Equal(t, *summary, response.Summary)
		require.Len(t, response.Monthly, 2)
		assert.Equal(t, int64(5), response.Monthly[0].PaidCount)
		assert.True(t, response.Monthly[1].TotalGrossPLN.Equal(dec("28905.00")))
		mocks.revenue.AssertExpectations(t)
	})

	t.Run("summary failure propagates", func(t *testing.T) {
		service, mocks := newTestReportService()

		mocks.revenue.On("GetRevenueSummary", mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := service.GetRevenueReport(ctx, testTenantID, RevenueReportFilter{From: from, To: to})

		require.Error(t, err)
		mocks.revenue.AssertNotCalled(t, "GetMonthlyRevenue", mock.Anything)
	})
}

func TestReportService_GetTopContractors(t *testing.T) {
	ctx := context.Background()
	from := day(2026, time.January, 1)
	to := day(2026, time.March, 31)

	rankings := []report.ContractorRanking{
		{Rank: 1, ContractorID: uuid.New(), Name: "Transmar Logistyka Sp. z o.o.", NIP: "5260250995", InvoiceCount: 5, OrderCount: 7, TotalGrossPLN: dec("18200.00")},
		{Rank: 2, ContractorID: uuid.New(), Name: "Sped-Trans SA", NIP: "7740001454", InvoiceCount: 3, OrderCount: 3, TotalGrossPLN: dec("9840.00")},
	}

	t.Run("defaults to top ten", func(t *testing.T) {
		service, mocks := newTestReportService()

		expected := report.RevenueReportFilter{
			TenantID:  testTenantID,
			StartDate: from,
			EndDate:   to,
			TopN:      10,
		}
		mocks.revenue.On("GetTopContractors", expected).Return(rankings, nil)

		result, err := service.GetTopContractors(ctx, testTenantID, TopContractorsFilter{From: from, To: to})

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, 1, result[0].Rank)
		assert.Equal(t, "Transmar Logistyka Sp. z o.o.", result[0].Name)
		mocks.revenue.AssertExpectations(t)
	})

	t.Run("limit passed through", func(t *testing.T) {
		service, mocks := newTestReportService()

		mocks.revenue.On("GetTopContractors", mock.MatchedBy(func(f report.RevenueReportFilter) bool {
			return f.TopN == 3
		})).Return(rankings[:1], nil)

		result, err := service.GetTopContractors(ctx, testTenantID, TopContractorsFilter{From: from, To: to, Limit: 3})

		require.NoError(t, err)
		assert.Len(t, result, 1)
	})
}

// ============================================================================
// Receivables Aging Tests
// ============================================================================

func TestReportService_GetReceivablesAging(t *testing.T) {
	ctx := context.Background()
	asOf := day(2026, time.March, 10)

	openItem := func(number, amount string, daysOverdue int) report.OpenReceivable {
		return report.OpenReceivable{
			InvoiceID:      uuid.New(),
			InvoiceNumber:  number,
			ContractorID:   uuid.New(),
			ContractorName: "Transmar Logistyka Sp. z o.o.",
			GrossPLN:       dec(amount),
			DueDate:        asOf.AddDate(0, 0, -daysOverdue),
			DaysOverdue:    daysOverdue,
		}
	}

	t.Run("buckets open receivables at the reference date", func(t *testing.T) {
		service, mocks := newTestReportService()

		items := []report.OpenReceivable{
			openItem("FV/2026/03/0007", "1200.50", 0),
			openItem("FV/2026/02/0019", "800.00", 12),
			openItem("FV/2026/01/0011", "450.25", 45),
			openItem("FV/2025/12/0031", "300.00", 75),
			openItem("FV/2025/11/0002", "95.75", 120),
		}
		mocks.receivables.On("GetOpenReceivables", report.ReceivablesReportFilter{
			TenantID: testTenantID,
			AsOf:     asOf,
		}).Return(items, nil)

		response, err := service.GetReceivablesAging(ctx, testTenantID, asOf)

		require.NoError(t, err)
		assert.Equal(t, asOf, response.Aging.AsOf)
		assert.True(t, response.Aging.Current.Equal(dec("1200.50")))
		assert.True(t, response.Aging.Days1To30.Equal(dec("800.00")))
		assert.True(t, response.Aging.Days31To60.Equal(dec("450.25")))
		assert.True(t, response.Aging.Days61To90.Equal(dec("300.00")))
		assert.True(t, response.Aging.Over90.Equal(dec("95.75")))
		assert.True(t, response.Aging.Total.Equal(dec("2846.50")))
		assert.Equal(t, int64(5), response.Aging.ItemCount)

		require.Len(t, response.Items, 5)
		assert.Equal(t, report.BucketCurrent, response.Items[0].Bucket)
		assert.Equal(t, report.BucketOver90, response.Items[4].Bucket)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		service, mocks := newTestReportService()

		mocks.receivables.On("GetOpenReceivables", mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := service.GetReceivablesAging(ctx, testTenantID, asOf)

		require.Error(t, err)
	})
}

// ============================================================================
// Recurring Generation Tests
// ============================================================================

func TestReportService_GetRecurringGeneration(t *testing.T) {
	ctx := context.Background()
	ref := day(2026, time.March, 10)

	t.Run("summarizes template activity", func(t *testing.T) {
		service, mocks := newTestReportService()

		weekly := recurring.Template{
			TenantAggregateRoot: shared.NewTenantAggregateRoot(testTenantID),
			Name:                "Poniedzialkowa linia WAW-GDA",
			Frequency:           recurring.FrequencyWeekly,
			IsActive:            true,
			NextGenerationDate:  datePtr(2026, time.March, 9),
			LastGeneratedAt:     datePtr(2026, time.March, 2),
			GeneratedCount:      8,
		}
		paused := recurring.Template{
			TenantAggregateRoot: shared.NewTenantAggregateRoot(testTenantID),
			Name:                "Miesieczny przerzut Lodz-Poznan",
			Frequency:           recurring.FrequencyMonthly,
			IsActive:            false,
			NextGenerationDate:  datePtr(2026, time.April, 1),
			GeneratedCount:      3,
		}
		exhausted := recurring.Template{
			TenantAggregateRoot: shared.NewTenantAggregateRoot(testTenantID),
			Name:                "Sezonowa trasa Gdynia-Hamburg",
			Frequency:           recurring.FrequencyDaily,
			IsActive:            true,
			GeneratedCount:      12,
		}

		mocks.templates.On("FindAllForTenant", ctx, testTenantID, shared.Filter{
			OrderBy:  "name",
			OrderDir: "asc",
		}).Return([]recurring.Template{paused, weekly, exhausted}, nil)

		response, err := service.GetRecurringGeneration(ctx, testTenantID, ref)

		require.NoError(t, err)
		assert.Equal(t, int64(3), response.Summary.TotalTemplates)
		assert.Equal(t, int64(2), response.Summary.ActiveTemplates)
		assert.Equal(t, int64(1), response.Summary.InactiveTemplates)
		assert.Equal(t, int64(1), response.Summary.ExhaustedTemplates)
		assert.Equal(t, int64(1), response.Summary.DueTemplates)
		assert.Equal(t, int64(23), response.Summary.GeneratedOrders)

		require.Len(t, response.Templates, 3)
		assert.Equal(t, "Miesieczny przerzut Lodz-Poznan", response.Templates[0].Name)
		assert.Equal(t, "WEEKLY", response.Templates[1].Frequency)
		assert.True(t, response.Templates[2].IsExhausted)
		mocks.templates.AssertExpectations(t)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		service, mocks := newTestReportService()

		mocks.templates.On("FindAllForTenant", ctx, testTenantID, mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := service.GetRecurringGeneration(ctx, testTenantID, ref)

		require.Error(t, err)
	})
}
