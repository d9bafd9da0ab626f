package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	fleetapp "github.com/translog/backend/internal/application/fleet"
)

// FleetExpiryHandler serves the cross-resource document expiry report
type FleetExpiryHandler struct {
	BaseHandler
	expiryService *fleetapp.ExpiryService
}

// NewFleetExpiryHandler creates a new FleetExpiryHandler
func NewFleetExpiryHandler(expiryService *fleetapp.ExpiryService) *FleetExpiryHandler {
	return &FleetExpiryHandler{
		expiryService: expiryService,
	}
}

// ExpiringDocumentsQuery represents query parameters for the expiry report
type ExpiringDocumentsQuery struct {
	WithinDays int    `form:"within_days" binding:"omitempty,min=1,max=365"`
	Date       string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ExpiringDocuments godoc
// @ID           listExpiringDocuments
// @Summary      List expiring fleet documents
// @Description  Inspections, insurance, licenses and medical checks expiring within the given horizon, soonest first
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        within_days query int false "Horizon in days" default(30)
// @Param        date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} APIResponse[[]fleet.ExpiringDocument]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /fleet/expiring-documents [get]
func (h *FleetExpiryHandler) ExpiringDocuments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query ExpiringDocumentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	withinDays := query.WithinDays
	if withinDays <= 0 {
		withinDays = 30
	}

	ref := time.Now().UTC()
	if query.Date != "" {
		ref, err = time.Parse("2006-01-02", query.Date)
		if err != nil {
			h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	documents, err := h.expiryService.ExpiringDocuments(c.Request.Context(), tenantID, ref, withinDays)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, documents)
}
