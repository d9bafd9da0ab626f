package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TenantProvider lists the tenants eligible for sweeps
type TenantProvider interface {
	ActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// defaultCronSchedule runs the sweep at the top of every hour
const defaultCronSchedule = "@hourly"

// CronTrigger fires the recurring-order sweep on a cron schedule,
// submitting one job per active tenant. There is no date-level dedup:
// a sweep only generates from templates that are still due, so an
// extra run is a no-op.
type CronTrigger struct {
	schedule       string
	scheduler      *Scheduler
	tenantProvider TenantProvider
	logger         *zap.Logger

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(
	schedule string,
	scheduler *Scheduler,
	tenantProvider TenantProvider,
	logger *zap.Logger,
) *CronTrigger {
	if schedule == "" {
		schedule = defaultCronSchedule
	}
	return &CronTrigger{
		schedule:       schedule,
		scheduler:      scheduler,
		tenantProvider: tenantProvider,
		logger:         logger,
	}
}

// Start parses the schedule and begins triggering sweeps
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRunning {
		return nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	runner := cron.New(cron.WithParser(parser), cron.WithLocation(time.UTC))

	if _, err := runner.AddFunc(c.schedule, func() {
		c.TriggerSweep(ctx, time.Now().UTC())
	}); err != nil {
		return err
	}

	runner.Start()
	c.cron = runner
	c.isRunning = true

	c.logger.Info("Sweep cron trigger started", zap.String("schedule", c.schedule))
	return nil
}

// Stop stops the cron trigger, waiting for a running trigger to finish
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isRunning {
		return nil
	}
	c.isRunning = false

	select {
	case <-c.cron.Stop().Done():
		c.logger.Info("Sweep cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerSweep submits one sweep job per active tenant. Exposed so the
// sweep can also be forced from an operator endpoint.
func (c *CronTrigger) TriggerSweep(ctx context.Context, ref time.Time) {
	tenantIDs, err := c.tenantProvider.ActiveTenantIDs(ctx)
	if err != nil {
		c.logger.Error("Failed to list tenants for sweep", zap.Error(err))
		return
	}

	c.logger.Info("Scheduling sweeps",
		zap.Int("tenant_count", len(tenantIDs)),
		zap.Time("sweep_date", ref),
	)

	for _, tenantID := range tenantIDs {
		if err := c.scheduler.ScheduleSweep(tenantID, ref); err != nil {
			c.logger.Error("Failed to schedule sweep for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}
}
