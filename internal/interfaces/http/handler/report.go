package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/translog/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetRevenue godoc
// @ID           getRevenueReport
// @Summary      Get the revenue report
// @Description  Invoiced revenue for the period in PLN, total and per month
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        from query string true "Period start (YYYY-MM-DD)"
// @Param        to query string true "Period end (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[reportapp.RevenueReportResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /reports/revenue [get]
func (h *ReportHandler) GetRevenue(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter reportapp.RevenueReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.GetRevenueReport(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// GetTopContractors godoc
// @ID           getTopContractors
// @Summary      Get the contractor revenue ranking
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        from query string true "Period start (YYYY-MM-DD)"
// @Param        to query string true "Period end (YYYY-MM-DD)"
// @Param        limit query int false "Ranking size" default(10)
// @Success      200 {object} APIResponse[[]report.ContractorRanking]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /reports/top-contractors [get]
func (h *ReportHandler) GetTopContractors(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter reportapp.TopContractorsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ranking, err := h.reportService.GetTopContractors(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ranking)
}

// GetReceivablesAging godoc
// @ID           getReceivablesAging
// @Summary      Get the receivables aging report
// @Description  Open issued invoices bucketed by days overdue as of the reference date
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} APIResponse[reportapp.ReceivablesAgingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /reports/receivables-aging [get]
func (h *ReportHandler) GetReceivablesAging(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		asOf, err = time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of format, expected YYYY-MM-DD")
			return
		}
	}

	report, err := h.reportService.GetReceivablesAging(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// GetRecurringGeneration godoc
// @ID           getRecurringGenerationReport
// @Summary      Get the recurring generation report
// @Description  Per-template view of the last and next generation dates relative to the reference date
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} APIResponse[reportapp.RecurringGenerationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /reports/recurring-generation [get]
func (h *ReportHandler) GetRecurringGeneration(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	ref := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		ref, err = time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	report, err := h.reportService.GetRecurringGeneration(c.Request.Context(), tenantID, ref)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
