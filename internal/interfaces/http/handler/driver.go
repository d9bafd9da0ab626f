package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fleetapp "github.com/translog/backend/internal/application/fleet"
)

// DriverHandler handles driver-related API endpoints
type DriverHandler struct {
	BaseHandler
	driverService *fleetapp.DriverService
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(driverService *fleetapp.DriverService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
	}
}

// Create godoc
// @ID           createDriver
// @Summary      Register a driver
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body fleetapp.CreateDriverRequest true "Driver creation request"
// @Success      201 {object} APIResponse[fleetapp.DriverResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req fleetapp.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, driver)
}

// GetByID godoc
// @ID           getDriverById
// @Summary      Get driver by ID
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Driver ID" format(uuid)
// @Success      200 {object} APIResponse[fleetapp.DriverResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /fleet/drivers/{id} [get]
func (h *DriverHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	driver, err := h.driverService.GetByID(c.Request.Context(), tenantID, driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// List godoc
// @ID           listDrivers
// @Summary      List drivers
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Search term (name, license)"
// @Param        status query string false "Driver status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]fleetapp.DriverListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /fleet/drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter fleetapp.DriverListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	drivers, total, err := h.driverService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, drivers, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateDriver
// @Summary      Update a driver
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Driver ID" format(uuid)
// @Param        request body fleetapp.UpdateDriverRequest true "Driver update request"
// @Success      200 {object} APIResponse[fleetapp.DriverResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/drivers/{id} [put]
func (h *DriverHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	var req fleetapp.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), tenantID, driverID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// Delete godoc
// @ID           deleteDriver
// @Summary      Delete a driver
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Driver ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/drivers/{id} [delete]
func (h *DriverHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	err = h.driverService.Delete(c.Request.Context(), tenantID, driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
