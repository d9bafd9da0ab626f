package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	recurringapp "github.com/translog/backend/internal/application/recurring"
)

// RecurringHandler handles recurring order template API endpoints
type RecurringHandler struct {
	BaseHandler
	templateService   *recurringapp.TemplateService
	generationService *recurringapp.GenerationService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(
	templateService *recurringapp.TemplateService,
	generationService *recurringapp.GenerationService,
) *RecurringHandler {
	return &RecurringHandler{
		templateService:   templateService,
		generationService: generationService,
	}
}

// refDate reads the optional date query parameter, defaulting to today
func refDate(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// Create godoc
// @ID           createTemplate
// @Summary      Create a recurring order template
// @Description  Define a schedule and an order draft that the generator stamps out on due dates
// @Tags         recurring-orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body recurringapp.CreateTemplateRequest true "Template creation request"
// @Success      201 {object} APIResponse[recurringapp.TemplateResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /recurring-orders [post]
func (h *RecurringHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req recurringapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, template)
}

// GetByID godoc
// @ID           getTemplateById
// @Summary      Get template by ID
// @Tags         recurring-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Success      200 {object} APIResponse[recurringapp.TemplateResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recurring-orders/{id} [get]
func (h *RecurringHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	template, err := h.templateService.GetByID(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, template)
}

// List godoc
// @ID           listTemplates
// @Summary      List recurring order templates
// @Tags         recurring-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Search term (name)"
// @Param        is_active query bool false "Filter by active flag"
// @Param        frequency query string false "Schedule frequency" Enums(DAILY, WEEKLY, MONTHLY)
// @Param        contractor_id query string false "Client contractor ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]recurringapp.TemplateListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /recurring-orders [get]
func (h *RecurringHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter recurringapp.TemplateListFilter
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

	templates, total, err := h.templateService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, templates, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateTemplate
// @Summary      Update a recurring order template
// @Tags         recurring-orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Param        request body recurringapp.UpdateTemplateRequest true "Template update request"
// @Success      200 {object} APIResponse[recurringapp.TemplateResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /recurring-orders/{id} [put]
func (h *RecurringHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req recurringapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), tenantID, templateID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, template)
}

// Activate godoc
// @ID           activateTemplate
// @Summary      Activate a template
// @Tags         recurring-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Success      200 {object} APIResponse[recurringapp.TemplateResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /recurring-orders/{id}/activate [post]
func (h *RecurringHandler) Activate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	template, err := h.templateService.Activate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, template)
}

// Deactivate godoc
// @ID           deactivateTemplate
// @Summary      Deactivate a template
// @Description  Deactivated templates are skipped by the generation sweep
// @Tags         recurring-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Success      200 {object} APIResponse[recurringapp.TemplateResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /recurring-orders/{id}/deactivate [post]
func (h *RecurringHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	template, err := h.templateService.Deactivate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, template)
}

// Delete godoc
// @ID           deleteTemplate
// @Summary      Delete a template
// @Description  Generated orders keep their template reference after deletion
// @Tags         recurring-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recurring-orders/{id} [delete]
func (h *RecurringHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	err = h.templateService.Delete(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Generate godoc
// @ID           generateFromTemplate
// @Summary      Generate an order from a template
// @Description  Force a single generation for a due template. The reference date defaults to today.
// @Tags         recurring-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Template ID" format(uuid)
// @Param        date query string false "Reference date (YYYY-MM-DD)"
// @Success      201 {object} APIResponse[recurringapp.GenerationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /recurring-orders/{id}/generate [post]
func (h *RecurringHandler) Generate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	ref, err := refDate(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	generation, err := h.generationService.Generate(c.Request.Context(), tenantID, templateID, ref)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, generation)
}

// GenerateDue godoc
// @ID           generateDueTemplates
// @Summary      Run the generation sweep for the tenant
// @Description  Generate orders for every active template that is due. The scheduler runs the same sweep on a cron.
// @Tags         recurring-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        date query string false "Reference date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[recurringapp.SweepResult]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /recurring-orders/generate-due [post]
func (h *RecurringHandler) GenerateDue(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	ref, err := refDate(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	result, err := h.generationService.GenerateDueForTenant(c.Request.Context(), tenantID, ref)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
