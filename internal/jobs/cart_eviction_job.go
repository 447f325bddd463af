package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodbot/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultEvictionSchedule runs the eviction once a minute, on second zero.
const DefaultEvictionSchedule = "0 * * * * *"

// CartEvictionJob drops carts of conversations that went quiet. Carts live only
// in memory, so without it abandoned sessions would be held forever.
type CartEvictionJob struct {
	handler  commands.EvictIdleCartsCommandHandler
	idleFor  time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCartEvictionJob creates the job. schedule is a six-field cron expression
// (seconds first); an empty schedule means DefaultEvictionSchedule.
func NewCartEvictionJob(
	handler commands.EvictIdleCartsCommandHandler,
	idleFor time.Duration,
	schedule string,
	logger *slog.Logger,
) *CartEvictionJob {
	if schedule == "" {
		schedule = DefaultEvictionSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CartEvictionJob{
		handler:  handler,
		idleFor:  idleFor,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "cart_eviction_job"),
	}
}

// Start registers the eviction with the scheduler and starts it.
func (j *CartEvictionJob) Start() error {
	cmd, err := commands.NewEvictIdleCartsCommand(j.idleFor)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		evicted, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart eviction failed", "error", err)
			return
		}
		if evicted > 0 {
			j.logger.InfoContext(ctx, "Evicted idle carts", "count", evicted, "idle_for", j.idleFor)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart eviction job started", "schedule", j.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running eviction to finish.
func (j *CartEvictionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Cart eviction job stopped")
}
