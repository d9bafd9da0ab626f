package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingExecutor records executed jobs and fails the first N attempts per tenant
type recordingExecutor struct {
	mu       sync.Mutex
	executed []*Job
	failures map[uuid.UUID]int
	done     chan struct{}
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{
		failures: make(map[uuid.UUID]int),
		done:     make(chan struct{}, 16),
	}
}

func (e *recordingExecutor) Execute(_ context.Context, job *Job) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executed = append(e.executed, job)
	if e.failures[job.TenantID] > 0 {
		e.failures[job.TenantID]--
		e.done <- struct{}{}
		return errors.New("database unavailable")
	}
	e.done <- struct{}{}
	return nil
}

func (e *recordingExecutor) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.executed)
}

func waitFor(t *testing.T, ch chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for execution %d of %d", i+1, n)
		}
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxConcurrentTenants = 2
	cfg.JobTimeout = time.Second
	cfg.RetryAttempts = 2
	cfg.RetryDelay = 0
	return cfg
}

func TestScheduler_ExecutesSubmittedSweep(t *testing.T) {
	executor := newRecordingExecutor()
	sched := NewScheduler(testConfig(), executor, zap.NewNop())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop(context.Background())

	tenantID := uuid.New()
	sweepDate := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	require.NoError(t, sched.ScheduleSweep(tenantID, sweepDate))

	waitFor(t, executor.done, 1)

	executor.mu.Lock()
	job := executor.executed[0]
	executor.mu.Unlock()

	assert.Equal(t, tenantID, job.TenantID)
	assert.Equal(t, sweepDate, job.SweepDate)
	assert.Eventually(t, func() bool {
		return job.Status == JobStatusSuccess
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_RetriesFailedSweep(t *testing.T) {
	executor := newRecordingExecutor()
	tenantID := uuid.New()
	executor.failures[tenantID] = 1

	sched := NewScheduler(testConfig(), executor, zap.NewNop())
	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop(context.Background())

	require.NoError(t, sched.ScheduleSweep(tenantID, time.Now()))

	// First attempt fails, second succeeds
	waitFor(t, executor.done, 2)
	assert.Equal(t, 2, executor.count())
}

func TestScheduler_GivesUpAfterMaxRetries(t *testing.T) {
	executor := newRecordingExecutor()
	tenantID := uuid.New()
	executor.failures[tenantID] = 100

	cfg := testConfig()
	cfg.RetryAttempts = 2
	sched := NewScheduler(cfg, executor, zap.NewNop())
	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop(context.Background())

	require.NoError(t, sched.ScheduleSweep(tenantID, time.Now()))

	// Initial attempt plus two retries
	waitFor(t, executor.done, 3)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 3, executor.count())
}

func TestScheduler_RejectsJobsWhenStopped(t *testing.T) {
	sched := NewScheduler(testConfig(), newRecordingExecutor(), zap.NewNop())

	err := sched.ScheduleSweep(uuid.New(), time.Now())

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestJob_RetryLifecycle(t *testing.T) {
	job := NewJob(uuid.New(), time.Now(), 2)
	assert.Equal(t, JobStatusPending, job.Status)

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	job.Fail("timeout")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "timeout", job.Error)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Minute)
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, JobStatusPending, job.Status)
	require.NotNil(t, job.NextRetryAt)

	job.Start()
	job.Fail("timeout again")
	job.ScheduleRetry(time.Minute)
	job.Start()
	job.Fail("still down")
	assert.False(t, job.ShouldRetry())
}
