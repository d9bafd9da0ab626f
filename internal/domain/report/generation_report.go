package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/recurring"
)

// TemplateGenerationStats is one row of the recurring generation report
type TemplateGenerationStats struct {
	TemplateID         uuid.UUID  `json:"template_id"`
	Name               string     `json:"name"`
	Frequency          string     `json:"frequency"`
	IsActive           bool       `json:"is_active"`
	IsExhausted        bool       `json:"is_exhausted"`
	GeneratedCount     int        `json:"generated_count"`
	LastGeneratedAt    *time.Time `json:"last_generated_at,omitempty"`
	NextGenerationDate *time.Time `json:"next_generation_date,omitempty"`
}

// RecurringStats summarizes recurring template activity for a tenant
type RecurringStats struct {
	TotalTemplates     int64 `json:"total_templates"`
	ActiveTemplates    int64 `json:"active_templates"`
	InactiveTemplates  int64 `json:"inactive_templates"`
	ExhaustedTemplates int64 `json:"exhausted_templates"` // Active but past their window
	DueTemplates       int64 `json:"due_templates"`       // Would generate on the next sweep
	GeneratedOrders    int64 `json:"generated_orders"`    // All-time, sum of template counters
}

// BuildRecurringGeneration maps templates to report rows and aggregate
// counters evaluated at the reference date.
func BuildRecurringGeneration(templates []recurring.Template, ref time.Time) ([]TemplateGenerationStats, RecurringStats) {
	rows := make([]TemplateGenerationStats, len(templates))
	stats := RecurringStats{TotalTemplates: int64(len(templates))}

	for i := range templates {
		t := &templates[i]
		rows[i] = TemplateGenerationStats{
			TemplateID:         t.ID,
			Name:               t.Name,
			Frequency:          string(t.Frequency),
			IsActive:           t.IsActive,
			IsExhausted:        t.IsExhausted(),
			GeneratedCount:     t.GeneratedCount,
			LastGeneratedAt:    t.LastGeneratedAt,
			NextGenerationDate: t.NextGenerationDate,
		}

		if t.IsActive {
			stats.ActiveTemplates++
		} else {
			stats.InactiveTemplates++
		}
		if t.IsActive && t.IsExhausted() {
			stats.ExhaustedTemplates++
		}
		if t.ShouldGenerateNow(ref) {
			stats.DueTemplates++
		}
		stats.GeneratedOrders += int64(t.GeneratedCount)
	}

	return rows, stats
}
