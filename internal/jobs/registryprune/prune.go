// Package registryprune periodically deregisters gateway instances whose
// heartbeat has gone stale, so shard resolution only ever sees addresses that
// are plausibly alive.
package registryprune

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	gatewaysvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/gateway"
)

type registry interface {
	List(ctx context.Context) ([]gatewaysvc.InstanceRecord, error)
	Deregister(ctx context.Context, id string) error
}

type Job struct {
	registry registry
	window   time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func New(reg registry, window time.Duration, logger *zap.Logger) *Job {
	if window <= 0 {
		window = 90 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		registry: reg,
		window:   window,
		now:      time.Now,
		logger:   logger,
	}
}

// Run performs one sweep. Instances with a zero last-seen timestamp are kept:
// they were registered by an operator without heartbeats and expire only by
// explicit deregistration.
func (j *Job) Run(ctx context.Context) error {
	if j.registry == nil {
		return nil
	}

	records, err := j.registry.List(ctx)
	if err != nil {
		return fmt.Errorf("list gateway instances: %w", err)
	}

	cutoff := j.now().Add(-j.window)
	var pruned int
	for _, record := range records {
		if record.LastSeen.IsZero() || record.LastSeen.After(cutoff) {
			continue
		}
		if err := j.registry.Deregister(ctx, record.ID); err != nil {
			return fmt.Errorf("deregister stale instance %q: %w", record.ID, err)
		}
		j.logger.Info("pruned stale gateway instance",
			zap.String("instance_id", record.ID),
			zap.String("instance_addr", record.Addr),
			zap.Time("last_seen", record.LastSeen),
		)
		pruned++
	}

	if pruned > 0 {
		j.logger.Info("registry prune completed", zap.Int("pruned", pruned))
	}
	return nil
}

// RunPeriodic sweeps on the given interval until the context is done.
func (j *Job) RunPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("registry prune sweep failed", zap.Error(err))
			}
		}
	}
}
