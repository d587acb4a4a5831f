package jobs

import (
	"context"
	"log/slog"

	"transportorder/internal/core/application/usecases/commands"
	"transportorder/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSchedule runs a dispatch every 30 seconds. Schedules use
// the six-field cron format with seconds.
const DefaultDispatchSchedule = "*/30 * * * * *"

type dispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchQueuedDocumentsCommand) (commands.DispatchSummary, error)
}

// DispatchJob periodically delivers queued documents to the exchange. A run
// still in progress makes the next tick a no-op.
type DispatchJob struct {
	handler   dispatcher
	schedule  string
	batchSize int
	cron      *cron.Cron
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewDispatchJob returns a stopped job. An empty schedule falls back to
// DefaultDispatchSchedule.
func NewDispatchJob(
	handler dispatcher,
	schedule string,
	batchSize int,
	m *metrics.Metrics,
	logger *slog.Logger,
) *DispatchJob {
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}
	return &DispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		metrics:   m,
		logger:    logger.With("component", "dispatch_job"),
	}
}

// Start registers the schedule and starts the scheduler. It returns an error
// for a malformed schedule.
func (j *DispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running dispatch to finish.
func (j *DispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}

func (j *DispatchJob) run() {
	ctx := context.Background()
	tracker := j.metrics.Track("dispatch")

	cmd, err := commands.NewDispatchQueuedDocumentsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch job misconfigured", "error", tracker.End(err))
		return
	}

	summary, err := j.handler.Handle(ctx, cmd)
	if err = tracker.End(err); err != nil {
		j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err)
		return
	}

	if summary.Submitted+summary.Retrying+summary.Rejected > 0 {
		j.logger.InfoContext(ctx, "Dispatch job finished",
			"submitted", summary.Submitted, "retrying", summary.Retrying, "rejected", summary.Rejected)
	}
}
