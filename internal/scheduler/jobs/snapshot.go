package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/gridsix/g6/internal/collector"
	"github.com/gridsix/g6/internal/expiry"
	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/pkg/logger"
)

// SnapshotJob runs one collection cycle per tick.
type SnapshotJob struct {
	collector *collector.Collector
	interval  time.Duration
	logger    *logger.Logger
}

// NewSnapshotJob creates a snapshot job that fires every interval.
func NewSnapshotJob(col *collector.Collector, interval time.Duration, log *logger.Logger) *SnapshotJob {
	return &SnapshotJob{
		collector: col,
		interval:  interval,
		logger:    log,
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "options_snapshot"
}

// Schedule returns the cron schedule derived from the configured interval.
func (j *SnapshotJob) Schedule() string {
	return fmt.Sprintf("@every %s", j.interval)
}

// Run executes one collection cycle
func (j *SnapshotJob) Run(ctx context.Context) error {
	return j.collector.RunCycle(ctx)
}

// ExpiryRefreshJob invalidates the cached expiry dates for every index once
// a day before market open, so the first cycle of the session resolves
// against fresh dates instead of yesterday's.
type ExpiryRefreshJob struct {
	resolver *expiry.Resolver
	logger   *logger.Logger
}

// NewExpiryRefreshJob creates a new expiry refresh job
func NewExpiryRefreshJob(res *expiry.Resolver, log *logger.Logger) *ExpiryRefreshJob {
	return &ExpiryRefreshJob{
		resolver: res,
		logger:   log,
	}
}

// Name returns the job name
func (j *ExpiryRefreshJob) Name() string {
	return "expiry_refresh"
}

// Schedule returns the cron schedule (9:00 AM IST on weekdays, before open)
func (j *ExpiryRefreshJob) Schedule() string {
	return "0 0 9 * * MON-FRI"
}

// Run invalidates every index's cached expiry dates
func (j *ExpiryRefreshJob) Run(_ context.Context) error {
	for _, index := range market.All() {
		j.resolver.Invalidate(index)
	}
	j.logger.Info("Expiry caches invalidated")
	return nil
}
