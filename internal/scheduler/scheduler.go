// Package scheduler runs the periodic directory-size refresh behind the
// channels/users gauges.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/esterlin12/tvplus/internal/metrics"
	"github.com/robfig/cron/v3"
)

// Counter reports a row count, e.g. ChannelRepo.CountActive or UserRepo.Count.
type Counter func(ctx context.Context) (int, error)

const refreshTimeout = 10 * time.Second

// Refresh recounts active channels and users and publishes them as gauges.
func Refresh(ctx context.Context, activeChannels, users Counter) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	channels, err := activeChannels(ctx)
	if err != nil {
		return fmt.Errorf("count active channels: %w", err)
	}
	userCount, err := users(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	metrics.SetDirectorySize(channels, userCount)
	return nil
}

// Run refreshes once immediately and then on every tick of spec (standard cron or
// descriptors like "@every 1m") until ctx is done.
func Run(ctx context.Context, spec string, activeChannels, users Counter, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	refresh := func() {
		if err := Refresh(ctx, activeChannels, users); err != nil {
			logger.Warn("scheduler: refresh directory gauges", "error", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, refresh); err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", spec, err)
	}

	refresh()
	c.Start()
	logger.Info("scheduler: started", "schedule", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("scheduler: stopped")
	return nil
}
