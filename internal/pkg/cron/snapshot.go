package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/earnings"
)

const SnapshotJobName = "capture_reconciliation_snapshots"

// SnapshotJobs stores a month-window reconciliation per agency.
type SnapshotJobs struct {
	earningsService earnings.EarningsService
	interval        time.Duration
}

func NewSnapshotJobs(earningsService earnings.EarningsService, interval time.Duration) *SnapshotJobs {
	return &SnapshotJobs{
		earningsService: earningsService,
		interval:        interval,
	}
}

func (j *SnapshotJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(Job{
		Name:     SnapshotJobName,
		Interval: j.interval,
		Fn:       j.CaptureSnapshots,
	})
}

func (j *SnapshotJobs) CaptureSnapshots(ctx context.Context) error {
	written, err := j.earningsService.CaptureSnapshots(ctx)
	slog.Info("Reconciliation snapshots captured", "count", written)
	return err
}
