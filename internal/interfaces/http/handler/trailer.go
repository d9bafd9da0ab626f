package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fleetapp "github.com/translog/backend/internal/application/fleet"
)

// TrailerHandler handles trailer-related API endpoints
type TrailerHandler struct {
	BaseHandler
	trailerService *fleetapp.TrailerService
}

// NewTrailerHandler creates a new TrailerHandler
func NewTrailerHandler(trailerService *fleetapp.TrailerService) *TrailerHandler {
	return &TrailerHandler{
		trailerService: trailerService,
	}
}

// Create godoc
// @ID           createTrailer
// @Summary      Register a trailer
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body fleetapp.CreateTrailerRequest true "Trailer creation request"
// @Success      201 {object} APIResponse[fleetapp.TrailerResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/trailers [post]
func (h *TrailerHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req fleetapp.CreateTrailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trailer, err := h.trailerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, trailer)
}

// GetByID godoc
// @ID           getTrailerById
// @Summary      Get trailer by ID
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Trailer ID" format(uuid)
// @Success      200 {object} APIResponse[fleetapp.TrailerResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /fleet/trailers/{id} [get]
func (h *TrailerHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	trailerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trailer ID format")
		return
	}

	trailer, err := h.trailerService.GetByID(c.Request.Context(), tenantID, trailerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, trailer)
}

// List godoc
// @ID           listTrailers
// @Summary      List trailers
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Search term (registration)"
// @Param        status query string false "Trailer status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]fleetapp.TrailerListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /fleet/trailers [get]
func (h *TrailerHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter fleetapp.TrailerListFilter
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

	trailers, total, err := h.trailerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, trailers, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateTrailer
// @Summary      Update a trailer
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Trailer ID" format(uuid)
// @Param        request body fleetapp.UpdateTrailerRequest true "Trailer update request"
// @Success      200 {object} APIResponse[fleetapp.TrailerResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/trailers/{id} [put]
func (h *TrailerHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	trailerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trailer ID format")
		return
	}

	var req fleetapp.UpdateTrailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trailer, err := h.trailerService.Update(c.Request.Context(), tenantID, trailerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, trailer)
}

// Delete godoc
// @ID           deleteTrailer
// @Summary      Delete a trailer
// @Tags         fleet
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Trailer ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /fleet/trailers/{id} [delete]
func (h *TrailerHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	trailerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trailer ID format")
		return
	}

	err = h.trailerService.Delete(c.Request.Context(), tenantID, trailerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
