package recurring

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// ==================== Template DTOs ====================

// ScheduleInput carries a complete generation rule. Schedule updates
// always replace the whole rule because the anchor fields only make
// sense together with the frequency.
type ScheduleInput struct {
	Frequency  string     `json:"frequency" binding:"required,oneof=DAILY WEEKLY BIWEEKLY MONTHLY"`
	DayOfWeek  *int       `json:"day_of_week"`
	DayOfMonth *int       `json:"day_of_month"`
	StartDate  time.Time  `json:"start_date" binding:"required"`
	EndDate    *time.Time `json:"end_date"`
}

// OrderDraftInput represents the order payload embedded in a template
type OrderDraftInput struct {
	ContractorID     uuid.UUID           `json:"contractor_id" binding:"required"`
	CarrierID        *uuid.UUID          `json:"carrier_id"`
	LoadingPlace     valueobject.Address `json:"loading_place" binding:"required"`
	UnloadingPlace   valueobject.Address `json:"unloading_place" binding:"required"`
	TransitDays      int                 `json:"transit_days" binding:"min=0"`
	CargoDescription string              `json:"cargo_description" binding:"max=500"`
	WeightKg         decimal.Decimal     `json:"weight_kg"`
	Pallets          int                 `json:"pallets" binding:"min=0"`
	PriceNet         decimal.Decimal     `json:"price_net" binding:"required"`
	Currency         string              `json:"currency" binding:"required,len=3"`
	VATRate          int                 `json:"vat_rate"`
}

// ToDraft converts the input into the domain draft
func (in OrderDraftInput) ToDraft() recurring.OrderDraft {
	return recurring.OrderDraft{
		ContractorID:     in.ContractorID,
		CarrierID:        in.CarrierID,
		LoadingPlace:     in.LoadingPlace,
		UnloadingPlace:   in.UnloadingPlace,
		TransitDays:      in.TransitDays,
		CargoDescription: in.CargoDescription,
		WeightKg:         in.WeightKg,
		Pallets:          in.Pallets,
		PriceNet:         in.PriceNet,
		Currency:         valueobject.Currency(in.Currency),
		VATRate:          invoicing.VATRate(in.VATRate),
	}
}

// CreateTemplateRequest represents a request to create a recurring template
type CreateTemplateRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Schedule ScheduleInput   `json:"schedule" binding:"required"`
	Draft    OrderDraftInput `json:"draft" binding:"required"`
}

// UpdateTemplateRequest represents a partial template update. A nil
// schedule or draft leaves the current one untouched.
type UpdateTemplateRequest struct {
	Name     *string          `json:"name"`
	Schedule *ScheduleInput   `json:"schedule"`
	Draft    *OrderDraftInput `json:"draft"`
}

// TemplateListFilter represents filter options for template lists
type TemplateListFilter struct {
	Search       string     `form:"search"`
	IsActive     *bool      `form:"is_active"`
	Frequency    *string    `form:"frequency"`
	ContractorID *uuid.UUID `form:"contractor_id"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderDraftResponse represents the embedded order payload in responses
type OrderDraftResponse struct {
	ContractorID     uuid.UUID           `json:"contractor_id"`
	CarrierID        *uuid.UUID          `json:"carrier_id,omitempty"`
	LoadingPlace     valueobject.Address `json:"loading_place"`
	UnloadingPlace   valueobject.Address `json:"unloading_place"`
	TransitDays      int                 `json:"transit_days"`
	CargoDescription string              `json:"cargo_description"`
	WeightKg         decimal.Decimal     `json:"weight_kg"`
	Pallets          int                 `json:"pallets"`
	PriceNet         decimal.Decimal     `json:"price_net"`
	Currency         string              `json:"currency"`
	VATRate          int                 `json:"vat_rate"`
}

// TemplateResponse represents a recurring template in API responses
type TemplateResponse struct {
	ID                 uuid.UUID          `json:"id"`
	TenantID           uuid.UUID          `json:"tenant_id"`
	Name               string             `json:"name"`
	Frequency          string             `json:"frequency"`
	DayOfWeek          *int               `json:"day_of_week,omitempty"`
	DayOfMonth         *int               `json:"day_of_month,omitempty"`
	StartDate          time.Time          `json:"start_date"`
	EndDate            *time.Time         `json:"end_date,omitempty"`
	IsActive           bool               `json:"is_active"`
	IsExhausted        bool               `json:"is_exhausted"`
	NextGenerationDate *time.Time         `json:"next_generation_date,omitempty"`
	LastGeneratedAt    *time.Time         `json:"last_generated_at,omitempty"`
	GeneratedCount     int                `json:"generated_count"`
	Draft              OrderDraftResponse `json:"draft"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	Version            int                `json:"version"`
}

// TemplateListItemResponse represents a template in list responses (less detail)
type TemplateListItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Frequency          string          `json:"frequency"`
	IsActive           bool            `json:"is_active"`
	IsExhausted        bool            `json:"is_exhausted"`
	NextGenerationDate *time.Time      `json:"next_generation_date,omitempty"`
	LastGeneratedAt    *time.Time      `json:"last_generated_at,omitempty"`
	GeneratedCount     int             `json:"generated_count"`
	ContractorID       uuid.UUID       `json:"contractor_id"`
	PriceNet           decimal.Decimal `json:"price_net"`
	Currency           string          `json:"currency"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ==================== Generation DTOs ====================

// GenerationResponse represents one generated transport order
type GenerationResponse struct {
	OrderID            uuid.UUID  `json:"order_id"`
	OrderNumber        string     `json:"order_number"`
	TemplateID         uuid.UUID  `json:"template_id"`
	TemplateName       string     `json:"template_name"`
	OccurrenceDate     time.Time  `json:"occurrence_date"`
	NextGenerationDate *time.Time `json:"next_generation_date,omitempty"`
	GeneratedCount     int        `json:"generated_count"`
}

// GenerationFailure describes a template the sweep could not generate for
type GenerationFailure struct {
	TemplateID   uuid.UUID `json:"template_id"`
	TemplateName string    `json:"template_name"`
	Error        string    `json:"error"`
}

// SweepResult summarizes one generation sweep over a tenant
type SweepResult struct {
	TenantID  uuid.UUID            `json:"tenant_id"`
	Due       int                  `json:"due"`
	Generated []GenerationResponse `json:"generated"`
	Failed    []GenerationFailure  `json:"failed"`
}

// ToDraftResponse converts the domain draft to a response DTO
func ToDraftResponse(draft recurring.OrderDraft) OrderDraftResponse {
	return OrderDraftResponse{
		ContractorID:     draft.ContractorID,
		CarrierID:        draft.CarrierID,
		LoadingPlace:     draft.LoadingPlace,
		UnloadingPlace:   draft.UnloadingPlace,
		TransitDays:      draft.TransitDays,
		CargoDescription: draft.CargoDescription,
		WeightKg:         draft.WeightKg,
		Pallets:          draft.Pallets,
		PriceNet:         draft.PriceNet,
		Currency:         string(draft.Currency),
		VATRate:          int(draft.VATRate),
	}
}

// ToTemplateResponse converts a domain template to a response DTO
func ToTemplateResponse(t *recurring.Template) TemplateResponse {
	return TemplateResponse{
		ID:                 t.ID,
		TenantID:           t.TenantID,
		Name:               t.Name,
		Frequency:          string(t.Frequency),
		DayOfWeek:          t.DayOfWeek,
		DayOfMonth:         t.DayOfMonth,
		StartDate:          t.StartDate,
		EndDate:            t.EndDate,
		IsActive:           t.IsActive,
		IsExhausted:        t.IsExhausted(),
		NextGenerationDate: t.NextGenerationDate,
		LastGeneratedAt:    t.LastGeneratedAt,
		GeneratedCount:     t.GeneratedCount,
		Draft:              ToDraftResponse(t.Draft),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
		Version:            t.Version,
	}
}

// ToTemplateListItemResponse converts a domain template to a list response DTO
func ToTemplateListItemResponse(t *recurring.Template) TemplateListItemResponse {
	return TemplateListItemResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Frequency:          string(t.Frequency),
		IsActive:           t.IsActive,
		IsExhausted:        t.IsExhausted(),
		NextGenerationDate: t.NextGenerationDate,
		LastGeneratedAt:    t.LastGeneratedAt,
		GeneratedCount:     t.GeneratedCount,
		ContractorID:       t.Draft.ContractorID,
		PriceNet:           t.Draft.PriceNet,
		Currency:           string(t.Draft.Currency),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// ToTemplateListItemResponses converts a slice of domain templates to list responses
func ToTemplateListItemResponses(templates []recurring.Template) []TemplateListItemResponse {
	responses := make([]TemplateListItemResponse, len(templates))
	for i := range templates {
		responses[i] = ToTemplateListItemResponse(&templates[i])
	}
	return responses
}
