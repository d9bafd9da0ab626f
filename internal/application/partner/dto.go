package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/partner"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Contractor DTOs
// =============================================================================

// CreateContractorRequest represents a request to create a new contractor.
// When FillFromGUS is set the name and address may be omitted; they are
// taken from the registry record instead.
type CreateContractorRequest struct {
	Code            string               `json:"code" binding:"required,min=1,max=50"`
	Name            string               `json:"name" binding:"max=200"`
	Kind            string               `json:"kind" binding:"required,oneof=CLIENT CARRIER BOTH"`
	NIP             string               `json:"nip" binding:"required"`
	REGON           string               `json:"regon" binding:"max=14"`
	Address         *valueobject.Address `json:"address"`
	Email           string               `json:"email" binding:"omitempty,email,max=200"`
	Phone           string               `json:"phone" binding:"max=50"`
	PaymentTermDays *int                 `json:"payment_term_days" binding:"omitempty,min=0,max=365"`
	DefaultCurrency string               `json:"default_currency" binding:"omitempty,len=3"`
	Notes           string               `json:"notes"`
	FillFromGUS     bool                 `json:"fill_from_gus"`
}

// UpdateContractorRequest represents a request to update a contractor
type UpdateContractorRequest struct {
	Name            *string              `json:"name" binding:"omitempty,min=1,max=200"`
	Kind            *string              `json:"kind" binding:"omitempty,oneof=CLIENT CARRIER BOTH"`
	REGON           *string              `json:"regon" binding:"omitempty,max=14"`
	Address         *valueobject.Address `json:"address"`
	Email           *string              `json:"email" binding:"omitempty,email,max=200"`
	Phone           *string              `json:"phone" binding:"omitempty,max=50"`
	PaymentTermDays *int                 `json:"payment_term_days" binding:"omitempty,min=0,max=365"`
	DefaultCurrency *string              `json:"default_currency" binding:"omitempty,len=3"`
	Notes           *string              `json:"notes"`
}

// ContractorListFilter represents filter options for the contractor list
type ContractorListFilter struct {
	Search   string `form:"search"`
	Kind     string `form:"kind" binding:"omitempty,oneof=CLIENT CARRIER BOTH"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE BLOCKED"`
	City     string `form:"city"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ContractorResponse represents a contractor in API responses
type ContractorResponse struct {
	ID              uuid.UUID           `json:"id"`
	TenantID        uuid.UUID           `json:"tenant_id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Kind            string              `json:"kind"`
	NIP             string              `json:"nip"`
	NIPFormatted    string              `json:"nip_formatted"`
	REGON           string              `json:"regon,omitempty"`
	Address         valueobject.Address `json:"address"`
	Email           string              `json:"email,omitempty"`
	Phone           string              `json:"phone,omitempty"`
	PaymentTermDays int                 `json:"payment_term_days"`
	DefaultCurrency string              `json:"default_currency"`
	Status          string              `json:"status"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// ContractorListItemResponse represents a list item for contractors
type ContractorListItemResponse struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Kind            string    `json:"kind"`
	NIP             string    `json:"nip"`
	City            string    `json:"city"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	PaymentTermDays int       `json:"payment_term_days"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// =============================================================================
// Converters
// =============================================================================

// ToContractorResponse converts a domain contractor to a response DTO
func ToContractorResponse(c *partner.Contractor) ContractorResponse {
	return ContractorResponse{
		ID:              c.ID,
		TenantID:        c.TenantID,
		Code:            c.Code,
		Name:            c.Name,
		Kind:            string(c.Kind),
		NIP:             c.NIP.String(),
		NIPFormatted:    c.NIP.Formatted(),
		REGON:           c.REGON,
		Address:         c.Address,
		Email:           c.Email,
		Phone:           c.Phone,
		PaymentTermDays: c.PaymentTermDays,
		DefaultCurrency: string(c.DefaultCurrency),
		Status:          string(c.Status),
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// ToContractorListItemResponse converts a domain contractor to a list item DTO
func ToContractorListItemResponse(c *partner.Contractor) ContractorListItemResponse {
	return ContractorListItemResponse{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		Kind:            string(c.Kind),
		NIP:             c.NIP.String(),
		City:            c.Address.City(),
		Email:           c.Email,
		Phone:           c.Phone,
		PaymentTermDays: c.PaymentTermDays,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
	}
}

// ToContractorListItemResponses converts a slice of contractors to list item DTOs
func ToContractorListItemResponses(contractors []partner.Contractor) []ContractorListItemResponse {
	responses := make([]ContractorListItemResponse, len(contractors))
	for i := range contractors {
		responses[i] = ToContractorListItemResponse(&contractors[i])
	}
	return responses
}
