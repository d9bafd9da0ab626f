package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared/valueobject"
	"github.com/translog/backend/internal/domain/tenant"
)

// CreateTenantRequest represents a request to onboard a transport company
type CreateTenantRequest struct {
	Code         string               `json:"code" binding:"required,min=1,max=50"`
	Name         string               `json:"name" binding:"required,min=1,max=200"`
	NIP          string               `json:"nip" binding:"required"`
	Address      *valueobject.Address `json:"address"`
	ContactEmail string               `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string               `json:"contact_phone" binding:"max=50"`
	Notes        string               `json:"notes"`
}

// TenantListFilter represents filter options for the tenant list
type TenantListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID           uuid.UUID           `json:"id"`
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	NIP          string              `json:"nip"`
	NIPFormatted string              `json:"nip_formatted"`
	Address      valueobject.Address `json:"address"`
	ContactEmail string              `json:"contact_email,omitempty"`
	ContactPhone string              `json:"contact_phone,omitempty"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// TenantListItemResponse represents a list item for tenants
type TenantListItemResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	NIP    string    `json:"nip"`
	City   string    `json:"city,omitempty"`
	Status string    `json:"status"`
}

// ToTenantResponse converts a domain tenant to a response DTO
func ToTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		NIP:          t.NIP.String(),
		NIPFormatted: t.NIP.Formatted(),
		Address:      t.Address,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		Status:       string(t.Status),
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		Version:      t.Version,
	}
}

// ToTenantListItemResponse converts a domain tenant to a list item DTO
func ToTenantListItemResponse(t *tenant.Tenant) TenantListItemResponse {
	return TenantListItemResponse{
		ID:     t.ID,
		Code:   t.Code,
		Name:   t.Name,
		NIP:    t.NIP.String(),
		City:   t.Address.City(),
		Status: string(t.Status),
	}
}

// ToTenantListItemResponses converts a slice of tenants to list item DTOs
func ToTenantListItemResponses(tenants []tenant.Tenant) []TenantListItemResponse {
	responses := make([]TenantListItemResponse, len(tenants))
	for i := range tenants {
		responses[i] = ToTenantListItemResponse(&tenants[i])
	}
	return responses
}
