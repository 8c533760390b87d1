package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dronedelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRegionRefreshSchedule reloads region data every five minutes.
const DefaultRegionRefreshSchedule = "0 */5 * * * *"

// refreshTimeout bounds one scheduled refresh.
const refreshTimeout = 30 * time.Second

// RegionRefresher runs the refresh command.
type RegionRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshRegionsCommand) error
}

// RegionRefreshJob reloads the central area, the no-fly zones and the
// restaurants on a cron schedule with a seconds field.
type RegionRefreshJob struct {
	handler  RegionRefresher
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRegionRefreshJob creates the job. An empty schedule uses
// DefaultRegionRefreshSchedule.
func NewRegionRefreshJob(handler RegionRefresher, schedule string, logger *slog.Logger) *RegionRefreshJob {
	if schedule == "" {
		schedule = DefaultRegionRefreshSchedule
	}
	return &RegionRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "region_refresh_job"),
	}
}

// RunOnce performs one refresh and logs its failure. Failures leave the
// previous snapshot in place.
func (j *RegionRefreshJob) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	if err := j.handler.Handle(ctx, commands.NewRefreshRegionsCommand()); err != nil {
		j.logger.ErrorContext(ctx, "Region refresh failed", "error", err)
		return err
	}
	return nil
}

// Start schedules the job.
func (j *RegionRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid region refresh schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Region refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the schedule and waits for a running refresh to finish.
func (j *RegionRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Region refresh job stopped")
}
