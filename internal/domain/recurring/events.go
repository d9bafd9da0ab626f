package recurring

import (
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTemplate = "RecurringTemplate"

// Event type constants
const (
	EventTypeTemplateCreated       = "RecurringTemplateCreated"
	EventTypeTemplateUpdated       = "RecurringTemplateUpdated"
	EventTypeTemplateStatusChanged = "RecurringTemplateStatusChanged"
	EventTypeOrderGenerated        = "RecurringOrderGenerated"
)

// TemplateCreatedEvent is published when a new template is created
type TemplateCreatedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	Frequency  Frequency `json:"frequency"`
}

// NewTemplateCreatedEvent creates a new TemplateCreatedEvent
func NewTemplateCreatedEvent(t *Template) *TemplateCreatedEvent {
	return &TemplateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateCreated, AggregateTypeTemplate, t.ID, t.TenantID),
		TemplateID:      t.ID,
		Name:            t.Name,
		Frequency:       t.Frequency,
	}
}

// TemplateUpdatedEvent is published when a template's schedule or draft changes
type TemplateUpdatedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	Frequency  Frequency `json:"frequency"`
}

// NewTemplateUpdatedEvent creates a new TemplateUpdatedEvent
func NewTemplateUpdatedEvent(t *Template) *TemplateUpdatedEvent {
	return &TemplateUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateUpdated, AggregateTypeTemplate, t.ID, t.TenantID),
		TemplateID:      t.ID,
		Name:            t.Name,
		Frequency:       t.Frequency,
	}
}

// TemplateStatusChangedEvent is published when a template is activated or deactivated
type TemplateStatusChangedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
}

// NewTemplateStatusChangedEvent creates a new TemplateStatusChangedEvent
func NewTemplateStatusChangedEvent(t *Template, isActive bool) *TemplateStatusChangedEvent {
	return &TemplateStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateStatusChanged, AggregateTypeTemplate, t.ID, t.TenantID),
		TemplateID:      t.ID,
		Name:            t.Name,
		IsActive:        isActive,
	}
}

// OrderGeneratedEvent is published when a template materializes an order
type OrderGeneratedEvent struct {
	shared.BaseDomainEvent
	TemplateID     uuid.UUID  `json:"template_id"`
	Name           string     `json:"name"`
	GeneratedAt    time.Time  `json:"generated_at"`
	GeneratedCount int        `json:"generated_count"`
	NextGeneration *time.Time `json:"next_generation,omitempty"`
}

// NewOrderGeneratedEvent creates a new OrderGeneratedEvent
func NewOrderGeneratedEvent(t *Template, ref time.Time) *OrderGeneratedEvent {
	return &OrderGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderGenerated, AggregateTypeTemplate, t.ID, t.TenantID),
		TemplateID:      t.ID,
		Name:            t.Name,
		GeneratedAt:     ref,
		GeneratedCount:  t.GeneratedCount,
		NextGeneration:  t.NextGenerationDate,
	}
}
