package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/translog/backend/internal/application/recurring"
)

// GenerationRunner runs the recurring-order sweep for one tenant
type GenerationRunner interface {
	GenerateDueForTenant(ctx context.Context, tenantID uuid.UUID, ref time.Time) (*recurring.SweepResult, error)
}

// SweepExecutor generates transport orders from due recurring templates
type SweepExecutor struct {
	generator GenerationRunner
	logger    *zap.Logger
}

// NewSweepExecutor creates a sweep executor
func NewSweepExecutor(generator GenerationRunner, logger *zap.Logger) *SweepExecutor {
	return &SweepExecutor{
		generator: generator,
		logger:    logger,
	}
}

// Execute runs the sweep for the job's tenant. Individual template
// failures are collected in the result, not surfaced as an error, so a
// retry only re-runs templates that are still due.
func (e *SweepExecutor) Execute(ctx context.Context, job *Job) error {
	result, err := e.generator.GenerateDueForTenant(ctx, job.TenantID, job.SweepDate)
	if err != nil {
		return fmt.Errorf("sweep tenant %s: %w", job.TenantID, err)
	}

	if len(result.Failed) > 0 {
		for _, failure := range result.Failed {
			e.logger.Warn("Template generation failed",
				zap.String("tenant_id", job.TenantID.String()),
				zap.String("template_id", failure.TemplateID.String()),
				zap.String("template_name", failure.TemplateName),
				zap.String("error", failure.Error),
			)
		}
	}

	e.logger.Info("Sweep finished",
		zap.String("tenant_id", job.TenantID.String()),
		zap.Time("sweep_date", job.SweepDate),
		zap.Int("due", result.Due),
		zap.Int("generated", len(result.Generated)),
		zap.Int("failed", len(result.Failed)),
	)
	return nil
}

// Ensure SweepExecutor implements JobExecutor
var _ JobExecutor = (*SweepExecutor)(nil)
