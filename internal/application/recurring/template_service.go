package recurring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/shared"
)

// TemplateService handles recurring template business operations
type TemplateService struct {
	templateRepo recurring.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo recurring.TemplateRepository) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
	}
}

// Create creates a new recurring template. The first generation date is
// computed immediately so operators see when the template will fire.
func (s *TemplateService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error) {
	template, err := recurring.NewTemplate(
		tenantID,
		req.Name,
		recurring.Frequency(req.Schedule.Frequency),
		req.Schedule.DayOfWeek,
		req.Schedule.DayOfMonth,
		req.Schedule.StartDate,
		req.Schedule.EndDate,
		req.Draft.ToDraft(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(template)
	return &response, nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}
	response := ToTemplateResponse(template)
	return &response, nil
}

// List retrieves templates with filtering and pagination
func (s *TemplateService) List(ctx context.Context, tenantID uuid.UUID, filter TemplateListFilter) ([]TemplateListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.Frequency != nil {
		domainFilter.Filters["frequency"] = *filter.Frequency
	}
	if filter.ContractorID != nil {
		domainFilter.Filters["contractor_id"] = *filter.ContractorID
	}

	templates, err := s.templateRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.templateRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTemplateListItemResponses(templates), total, nil
}

// Update applies a partial update: name, schedule and draft are each
// replaced only when present in the request.
func (s *TemplateService) Update(ctx context.Context, tenantID, templateID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := template.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Schedule != nil {
		err := template.UpdateSchedule(
			recurring.Frequency(req.Schedule.Frequency),
			req.Schedule.DayOfWeek,
			req.Schedule.DayOfMonth,
			req.Schedule.StartDate,
			req.Schedule.EndDate,
			time.Now(),
		)
		if err != nil {
			return nil, err
		}
	}

	if req.Draft != nil {
		if err := template.UpdateDraft(req.Draft.ToDraft()); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.SaveWithLock(ctx, template); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(template)
	return &response, nil
}

// Activate re-enables generation for a paused template
func (s *TemplateService) Activate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}

	template.Activate(time.Now())

	if err := s.templateRepo.SaveWithLock(ctx, template); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(template)
	return &response, nil
}

// Deactivate pauses generation for a template
func (s *TemplateService) Deactivate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}

	template.Deactivate()

	if err := s.templateRepo.SaveWithLock(ctx, template); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(template)
	return &response, nil
}

// Delete deletes a template. Generated orders keep their provenance ID,
// so deletion never cascades to orders; only inactive templates can go.
func (s *TemplateService) Delete(ctx context.Context, tenantID, templateID uuid.UUID) error {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, templateID)
	if err != nil {
		return err
	}

	if template.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Only inactive templates can be deleted")
	}

	return s.templateRepo.DeleteForTenant(ctx, tenantID, templateID)
}
