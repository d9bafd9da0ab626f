package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/translog/backend/internal/application/partner"
)

// ContractorHandler handles contractor-related API endpoints
type ContractorHandler struct {
	BaseHandler
	contractorService *partnerapp.ContractorService
}

// NewContractorHandler creates a new ContractorHandler
func NewContractorHandler(contractorService *partnerapp.ContractorService) *ContractorHandler {
	return &ContractorHandler{
		contractorService: contractorService,
	}
}

// Create godoc
// @ID           createContractor
// @Summary      Create a new contractor
// @Description  Create a client or carrier. With fill_from_gus the name and address come from the GUS registry.
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body partnerapp.CreateContractorRequest true "Contractor creation request"
// @Success      201 {object} APIResponse[partnerapp.ContractorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      502 {object} dto.ErrorResponse
// @Router       /contractors [post]
func (h *ContractorHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req partnerapp.CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contractor, err := h.contractorService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, contractor)
}

// GetByID godoc
// @ID           getContractorById
// @Summary      Get contractor by ID
// @Tags         contractors
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Contractor ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.ContractorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /contractors/{id} [get]
func (h *ContractorHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID format")
		return
	}

	contractor, err := h.contractorService.GetByID(c.Request.Context(), tenantID, contractorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contractor)
}

// GetByCode godoc
// @ID           getContractorByCode
// @Summary      Get contractor by code
// @Tags         contractors
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        code path string true "Contractor Code"
// @Success      200 {object} APIResponse[partnerapp.ContractorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /contractors/code/{code} [get]
func (h *ContractorHandler) GetByCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Contractor code is required")
		return
	}

	contractor, err := h.contractorService.GetByCode(c.Request.Context(), tenantID, code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contractor)
}

// List godoc
// @ID           listContractors
// @Summary      List contractors
// @Description  Retrieve a paginated list of contractors with optional filtering
// @Tags         contractors
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Search term (name, code, NIP)"
// @Param        kind query string false "Contractor kind" Enums(CLIENT, CARRIER, BOTH)
// @Param        status query string false "Contractor status" Enums(ACTIVE, BLOCKED)
// @Param        city query string false "City"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]partnerapp.ContractorListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /contractors [get]
func (h *ContractorHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter partnerapp.ContractorListFilter
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

	contractors, total, err := h.contractorService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, contractors, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateContractor
// @Summary      Update a contractor
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Contractor ID" format(uuid)
// @Param        request body partnerapp.UpdateContractorRequest true "Contractor update request"
// @Success      200 {object} APIResponse[partnerapp.ContractorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /contractors/{id} [put]
func (h *ContractorHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID format")
		return
	}

	var req partnerapp.UpdateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contractor, err := h.contractorService.Update(c.Request.Context(), tenantID, contractorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contractor)
}

// Block godoc
// @ID           blockContractor
// @Summary      Block a contractor
// @Description  Blocked contractors cannot be used on new transport orders or invoices
// @Tags         contractors
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Contractor ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.ContractorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /contractors/{id}/block [post]
func (h *ContractorHandler) Block(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID format")
		return
	}

	contractor, err := h.contractorService.Block(c.Request.Context(), tenantID, contractorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contractor)
}

// Activate godoc
// @ID           activateContractor
// @Summary      Activate a blocked contractor
// @Tags         contractors
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Contractor ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.ContractorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /contractors/{id}/activate [post]
func (h *ContractorHandler) Activate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID format")
		return
	}

	contractor, err := h.contractorService.Activate(c.Request.Context(), tenantID, contractorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contractor)
}

// Delete godoc
// @ID           deleteContractor
// @Summary      Delete a contractor
// @Description  Fails when the contractor is referenced by orders or invoices
// @Tags         contractors
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Contractor ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /contractors/{id} [delete]
func (h *ContractorHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	contractorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID format")
		return
	}

	err = h.contractorService.Delete(c.Request.Context(), tenantID, contractorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Lookup godoc
// @ID           lookupCompany
// @Summary      Look up a company by NIP
// @Description  Query the GUS registry for company data without creating a contractor
// @Tags         contractors
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        nip path string true "Tax identification number (NIP)"
// @Success      200 {object} APIResponse[partnerapp.CompanyRecord]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      502 {object} dto.ErrorResponse
// @Router       /contractors/lookup/{nip} [get]
func (h *ContractorHandler) Lookup(c *gin.Context) {
	nip := c.Param("nip")
	if nip == "" {
		h.BadRequest(c, "NIP is required")
		return
	}

	record, err := h.contractorService.LookupCompany(c.Request.Context(), nip)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}
