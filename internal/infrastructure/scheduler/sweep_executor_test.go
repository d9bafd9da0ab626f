package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/translog/backend/internal/application/recurring"
)

type stubGenerationRunner struct {
	result   *recurring.SweepResult
	err      error
	tenantID uuid.UUID
	ref      time.Time
}

func (r *stubGenerationRunner) GenerateDueForTenant(_ context.Context, tenantID uuid.UUID, ref time.Time) (*recurring.SweepResult, error) {
	r.tenantID = tenantID
	r.ref = ref
	return r.result, r.err
}

func TestSweepExecutor_Execute(t *testing.T) {
	t.Run("passes the job's tenant and date to the generator", func(t *testing.T) {
		tenantID := uuid.New()
		runner := &stubGenerationRunner{
			result: &recurring.SweepResult{TenantID: tenantID, Due: 2},
		}
		executor := NewSweepExecutor(runner, zap.NewNop())

		sweepDate := time.Date(2026, time.March, 9, 6, 0, 0, 0, time.UTC)
		err := executor.Execute(context.Background(), NewJob(tenantID, sweepDate, 3))

		assert.NoError(t, err)
		assert.Equal(t, tenantID, runner.tenantID)
		assert.Equal(t, sweepDate, runner.ref)
	})

	t.Run("template failures do not fail the job", func(t *testing.T) {
		tenantID := uuid.New()
		runner := &stubGenerationRunner{
			result: &recurring.SweepResult{
				TenantID: tenantID,
				Due:      2,
				Failed: []recurring.GenerationFailure{
					{TemplateID: uuid.New(), TemplateName: "Weekly Gdansk run", Error: "CONCURRENT_MODIFICATION"},
				},
			},
		}
		executor := NewSweepExecutor(runner, zap.NewNop())

		err := executor.Execute(context.Background(), NewJob(tenantID, time.Now(), 3))

		assert.NoError(t, err)
	})

	t.Run("sweep-level errors propagate for retry", func(t *testing.T) {
		runner := &stubGenerationRunner{err: errors.New("connection refused")}
		executor := NewSweepExecutor(runner, zap.NewNop())

		err := executor.Execute(context.Background(), NewJob(uuid.New(), time.Now(), 3))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
