package recurring

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// OrderDraft is the payload copied into every generated transport order.
// Route, cargo and price fields are taken verbatim; the loading date is
// the occurrence date and the unloading date follows after TransitDays.
type OrderDraft struct {
	ContractorID     uuid.UUID            `json:"contractor_id"`
	CarrierID        *uuid.UUID           `json:"carrier_id,omitempty"`
	LoadingPlace     valueobject.Address  `json:"loading_place"`
	UnloadingPlace   valueobject.Address  `json:"unloading_place"`
	TransitDays      int                  `json:"transit_days"`
	CargoDescription string               `json:"cargo_description"`
	WeightKg         decimal.Decimal      `json:"weight_kg"`
	Pallets          int                  `json:"pallets"`
	PriceNet         decimal.Decimal      `json:"price_net"`
	Currency         valueobject.Currency `json:"currency"`
	VATRate          invoicing.VATRate    `json:"vat_rate"`
}

// Validate checks the draft fields that every generated order needs
func (d OrderDraft) Validate() error {
	if d.ContractorID == uuid.Nil {
		return fmt.Errorf("contractor is required")
	}
	if d.LoadingPlace.IsEmpty() {
		return fmt.Errorf("loading place is required")
	}
	if d.UnloadingPlace.IsEmpty() {
		return fmt.Errorf("unloading place is required")
	}
	if d.TransitDays < 0 {
		return fmt.Errorf("transit days cannot be negative")
	}
	if d.WeightKg.IsNegative() {
		return fmt.Errorf("weight cannot be negative")
	}
	if d.Pallets < 0 {
		return fmt.Errorf("pallets cannot be negative")
	}
	if d.PriceNet.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if !d.Currency.IsValid() {
		return fmt.Errorf("invalid currency: %s", d.Currency)
	}
	if !d.VATRate.IsValid() {
		return fmt.Errorf("invalid VAT rate: %d", d.VATRate)
	}
	return nil
}

// Template is a recurring-order template. The schedule engine mutates
// only the generation bookkeeping fields (NextGenerationDate,
// LastGeneratedAt, GeneratedCount); everything else is operator-edited.
type Template struct {
	shared.TenantAggregateRoot
	Name               string     `gorm:"type:varchar(200);not null"`
	Frequency          Frequency  `gorm:"type:varchar(20);not null"`
	DayOfWeek          *int
	DayOfMonth         *int
	StartDate          time.Time `gorm:"not null"`
	EndDate            *time.Time
	IsActive           bool        `gorm:"not null;default:true;index"`
	NextGenerationDate *time.Time  `gorm:"index"`
	LastGeneratedAt    *time.Time
	GeneratedCount     int        `gorm:"not null;default:0"`
	Draft              OrderDraft `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (Template) TableName() string {
	return "recurring_templates"
}

// NewTemplate creates a recurring template and computes its first
// generation date relative to the injected now.
func NewTemplate(tenantID uuid.UUID, name string, frequency Frequency, dayOfWeek, dayOfMonth *int, startDate time.Time, endDate *time.Time, draft OrderDraft, now time.Time) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Template name is required")
	}
	if err := validateSchedule(frequency, dayOfWeek, dayOfMonth, startDate, endDate); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	t := &Template{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Frequency:           frequency,
		DayOfWeek:           dayOfWeek,
		DayOfMonth:          dayOfMonth,
		StartDate:           DateOnly(startDate),
		EndDate:             normalizeEndDate(endDate),
		IsActive:            true,
		Draft:               draft,
	}
	t.NextGenerationDate = NextOccurrence(t.Schedule(), now)

	t.AddDomainEvent(NewTemplateCreatedEvent(t))
	return t, nil
}

func validateSchedule(frequency Frequency, dayOfWeek, dayOfMonth *int, startDate time.Time, endDate *time.Time) error {
	if !frequency.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid frequency: %s", frequency))
	}
	if frequency.NeedsDayOfWeek() {
		if dayOfWeek == nil {
			return shared.NewDomainError("INVALID_INPUT", "Day of week is required for weekly and biweekly templates")
		}
		if *dayOfWeek < 0 || *dayOfWeek > 6 {
			return shared.NewDomainError("INVALID_INPUT", "Day of week must be between 0 (Sunday) and 6 (Saturday)")
		}
	} else if dayOfWeek != nil {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Day of week is not allowed for %s templates", frequency))
	}
	if frequency.NeedsDayOfMonth() {
		if dayOfMonth == nil {
			return shared.NewDomainError("INVALID_INPUT", "Day of month is required for monthly templates")
		}
		// Capped at 28 so the slot exists in every month, February included.
		if *dayOfMonth < 1 || *dayOfMonth > 28 {
			return shared.NewDomainError("INVALID_INPUT", "Day of month must be between 1 and 28")
		}
	} else if dayOfMonth != nil {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Day of month is not allowed for %s templates", frequency))
	}
	if startDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Start date is required")
	}
	if endDate != nil && DateOnly(*endDate).Before(DateOnly(startDate)) {
		return shared.NewDomainError("INVALID_INPUT", "End date cannot be before start date")
	}
	return nil
}

func normalizeEndDate(endDate *time.Time) *time.Time {
	if endDate == nil {
		return nil
	}
	d := DateOnly(*endDate)
	return &d
}

// Schedule returns the value view consumed by the schedule engine
func (t *Template) Schedule() Schedule {
	return Schedule{
		Frequency:       t.Frequency,
		DayOfWeek:       t.DayOfWeek,
		DayOfMonth:      t.DayOfMonth,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		LastGeneratedAt: t.LastGeneratedAt,
	}
}

// ShouldGenerateNow reports whether the template is due at the reference
// date: it must be active, not exhausted and its cached next generation
// date must not lie in the future.
func (t *Template) ShouldGenerateNow(ref time.Time) bool {
	return t.IsActive &&
		t.NextGenerationDate != nil &&
		!DateOnly(*t.NextGenerationDate).After(DateOnly(ref))
}

// IsExhausted reports whether the schedule has run past its end date
func (t *Template) IsExhausted() bool {
	return t.NextGenerationDate == nil
}

// MarkGenerated records a successful generation at the reference date and
// advances the schedule. The next occurrence is computed against ref+1
// day, which guarantees forward progress: a second ShouldGenerateNow with
// the same ref returns false.
func (t *Template) MarkGenerated(ref time.Time) {
	t.GeneratedCount++
	t.LastGeneratedAt = &ref
	t.NextGenerationDate = NextOccurrence(t.Schedule(), DateOnly(ref).AddDate(0, 0, 1))
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewOrderGeneratedEvent(t, ref))
}

// UpdateSchedule replaces the generation rule and recomputes the next
// occurrence relative to the injected now.
func (t *Template) UpdateSchedule(frequency Frequency, dayOfWeek, dayOfMonth *int, startDate time.Time, endDate *time.Time, now time.Time) error {
	if err := validateSchedule(frequency, dayOfWeek, dayOfMonth, startDate, endDate); err != nil {
		return err
	}
	t.Frequency = frequency
	t.DayOfWeek = dayOfWeek
	t.DayOfMonth = dayOfMonth
	t.StartDate = DateOnly(startDate)
	t.EndDate = normalizeEndDate(endDate)
	t.NextGenerationDate = NextOccurrence(t.Schedule(), now)
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTemplateUpdatedEvent(t))
	return nil
}

// UpdateDraft replaces the order payload
func (t *Template) UpdateDraft(draft OrderDraft) error {
	if err := draft.Validate(); err != nil {
		return shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	t.Draft = draft
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTemplateUpdatedEvent(t))
	return nil
}

// Rename changes the template name
func (t *Template) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Template name is required")
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	return nil
}

// Activate re-enables generation. The next occurrence is recomputed so a
// template reactivated after a pause does not fire for missed dates.
func (t *Template) Activate(now time.Time) {
	if t.IsActive {
		return
	}
	t.IsActive = true
	t.NextGenerationDate = NextOccurrence(t.Schedule(), now)
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTemplateStatusChangedEvent(t, true))
}

// Deactivate pauses generation without touching the schedule fields
func (t *Template) Deactivate() {
	if !t.IsActive {
		return
	}
	t.IsActive = false
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTemplateStatusChangedEvent(t, false))
}
