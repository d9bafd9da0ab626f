package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fleetapp "github.com/translog/backend/internal/application/fleet"
)

// VehicleHandler handles vehicle-related API endpoints
type VehicleHandler struct {
	BaseHandler
	vehicleService *fleetapp.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *fleetapp.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// Create godoc
// @ID           createVehicle
// @Summary      Register a vehicle
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body fleetapp.CreateVehicleRequest true "Vehicle creation request"
// @Success      201 {object} APIResponse[fleetapp.VehicleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req fleetapp.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, vehicle)
}

// GetByID godoc
// @ID           getVehicleById
// @Summary      Get vehicle by ID
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} APIResponse[fleetapp.VehicleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /fleet/vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), tenantID, vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// List godoc
// @ID           listVehicles
// @Summary      List vehicles
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Search term (registration, brand)"
// @Param        status query string false "Vehicle status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]fleetapp.VehicleListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /fleet/vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter fleetapp.VehicleListFilter
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

	vehicles, total, err := h.vehicleService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, vehicles, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateVehicle
// @Summary      Update a vehicle
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        request body fleetapp.UpdateVehicleRequest true "Vehicle update request"
// @Success      200 {object} APIResponse[fleetapp.VehicleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	var req fleetapp.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), tenantID, vehicleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// Delete godoc
// @ID           deleteVehicle
// @Summary      Delete a vehicle
// @Description  Fails when the vehicle is assigned to an open transport order
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	err = h.vehicleService.Delete(c.Request.Context(), tenantID, vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
