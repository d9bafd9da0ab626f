package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tenantapp "github.com/translog/backend/internal/application/tenant"
)

// TenantHandler handles tenant management endpoints. These routes are
// platform-level and sit outside the tenant-scoped middleware.
type TenantHandler struct {
	BaseHandler
	tenantService *tenantapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *tenantapp.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// Create godoc
// @ID           createTenant
// @Summary      Onboard a transport company
// @Description  Create a new tenant with its NIP and billing address
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body tenantapp.CreateTenantRequest true "Tenant creation request"
// @Success      201 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req tenantapp.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tenant)
}

// GetByID godoc
// @ID           getTenantById
// @Summary      Get tenant by ID
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// List godoc
// @ID           listTenants
// @Summary      List tenants
// @Description  Retrieve a paginated list of tenants with optional filtering
// @Tags         tenants
// @Produce      json
// @Param        search query string false "Search term (name, code, NIP)"
// @Param        status query string false "Tenant status" Enums(active, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tenantapp.TenantListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	var filter tenantapp.TenantListFilter
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

	tenants, total, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tenants, total, filter.Page, filter.PageSize)
}

// Activate godoc
// @ID           activateTenant
// @Summary      Activate a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /tenants/{id}/activate [post]
func (h *TenantHandler) Activate(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.Activate(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Deactivate godoc
// @ID           deactivateTenant
// @Summary      Deactivate a tenant
// @Description  Deactivated tenants are rejected by the tenant middleware on every scoped route
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /tenants/{id}/deactivate [post]
func (h *TenantHandler) Deactivate(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.Deactivate(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}
