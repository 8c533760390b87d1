package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of the service.
type JobManager struct {
	regionRefreshJob *RegionRefreshJob
}

// NewJobManager creates a job manager refreshing regions on schedule.
func NewJobManager(refresher RegionRefresher, schedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		regionRefreshJob: NewRegionRefreshJob(refresher, schedule, logger),
	}
}

// Warmup loads region data once before the first request. A failure is
// returned but is not fatal: requests load the data on demand later.
func (jm *JobManager) Warmup(ctx context.Context) error {
	return jm.regionRefreshJob.RunOnce(ctx)
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.regionRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start region refresh job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.regionRefreshJob.Stop()
}
