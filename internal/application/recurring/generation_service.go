package recurring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/shared"
)

// GenerationService turns due recurring templates into planned transport
// orders. The schedule engine decides whether a template fires; this
// service owns the copy step and the persistence ordering.
type GenerationService struct {
	templateRepo recurring.TemplateRepository
	orderRepo    order.TransportOrderRepository
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(templateRepo recurring.TemplateRepository, orderRepo order.TransportOrderRepository) *GenerationService {
	return &GenerationService{
		templateRepo: templateRepo,
		orderRepo:    orderRepo,
	}
}

// Generate runs one generation cycle for one template at the reference
// date. The template is saved before the order: its version check is the
// guard against double generation, so a lost race leaves no order
// behind. Calling again with the same reference date returns ErrNotDue
// because the schedule has already advanced.
func (s *GenerationService) Generate(ctx context.Context, tenantID, templateID uuid.UUID, ref time.Time) (*GenerationResponse, error) {
	template, err := s.templateRepo.FindByIDForTenant(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}

	if template.IsExhausted() {
		return nil, shared.ErrScheduleExhausted
	}
	if !template.ShouldGenerateNow(ref) {
		return nil, shared.ErrNotDue
	}

	// The occurrence the order is created for; captured before
	// MarkGenerated advances the schedule.
	occurrence := recurring.DateOnly(*template.NextGenerationDate)

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}

	newOrder, err := s.buildOrder(template, orderNumber, occurrence)
	if err != nil {
		return nil, err
	}

	template.MarkGenerated(recurring.DateOnly(ref))

	if err := s.templateRepo.SaveWithLock(ctx, template); err != nil {
		return nil, err
	}

	events := newOrder.GetDomainEvents()
	newOrder.ClearDomainEvents()

	if err := s.orderRepo.SaveWithLockAndEvents(ctx, newOrder, events); err != nil {
		return nil, err
	}

	return &GenerationResponse{
		OrderID:            newOrder.ID,
		OrderNumber:        newOrder.OrderNumber,
		TemplateID:         template.ID,
		TemplateName:       template.Name,
		OccurrenceDate:     occurrence,
		NextGenerationDate: template.NextGenerationDate,
		GeneratedCount:     template.GeneratedCount,
	}, nil
}

// GenerateDueForTenant runs one generation cycle for every due template
// of a tenant. Templates another worker got to first surface as ErrNotDue
// and are skipped; other failures are collected without aborting the
// sweep.
func (s *GenerationService) GenerateDueForTenant(ctx context.Context, tenantID uuid.UUID, ref time.Time) (*SweepResult, error) {
	due, err := s.templateRepo.FindDue(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{
		TenantID:  tenantID,
		Due:       len(due),
		Generated: make([]GenerationResponse, 0, len(due)),
		Failed:    make([]GenerationFailure, 0),
	}

	for i := range due {
		generated, err := s.Generate(ctx, tenantID, due[i].ID, ref)
		if err != nil {
			if errors.Is(err, shared.ErrNotDue) || errors.Is(err, shared.ErrScheduleExhausted) {
				continue
			}
			result.Failed = append(result.Failed, GenerationFailure{
				TemplateID:   due[i].ID,
				TemplateName: due[i].Name,
				Error:        err.Error(),
			})
			continue
		}
		result.Generated = append(result.Generated, *generated)
	}

	return result, nil
}

// buildOrder copies the template draft into a planned transport order.
// The loading date is the occurrence date; unloading follows after the
// draft's transit time.
func (s *GenerationService) buildOrder(template *recurring.Template, orderNumber string, occurrence time.Time) (*order.TransportOrder, error) {
	draft := template.Draft

	route := order.Route{
		LoadingPlace:   draft.LoadingPlace,
		LoadingDate:    occurrence,
		UnloadingPlace: draft.UnloadingPlace,
		UnloadingDate:  occurrence.AddDate(0, 0, draft.TransitDays),
	}
	cargo := order.Cargo{
		Description: draft.CargoDescription,
		WeightKg:    draft.WeightKg,
		Pallets:     draft.Pallets,
	}

	newOrder, err := order.NewTransportOrder(
		template.TenantID,
		orderNumber,
		draft.ContractorID,
		route,
		cargo,
		draft.PriceNet,
		draft.Currency,
		draft.VATRate,
	)
	if err != nil {
		return nil, err
	}

	if draft.CarrierID != nil {
		if err := newOrder.SetCarrier(draft.CarrierID); err != nil {
			return nil, err
		}
	}
	if err := newOrder.MarkGenerated(template.ID); err != nil {
		return nil, err
	}
	if err := newOrder.Plan(); err != nil {
		return nil, err
	}

	return newOrder, nil
}
