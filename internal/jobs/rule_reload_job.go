package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type resetter interface {
	Reset()
}

// RuleReloadJob drops the parsed rule data on a schedule so edits to an
// on-disk rule directory are picked up without a restart.
type RuleReloadJob struct {
	store    resetter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRuleReloadJob returns a stopped job that calls store.Reset on schedule.
func NewRuleReloadJob(store resetter, schedule string, logger *slog.Logger) *RuleReloadJob {
	return &RuleReloadJob{
		store:    store,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "rule_reload_job"),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *RuleReloadJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.store.Reset()
		j.logger.DebugContext(context.Background(), "Rule data cache cleared")
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rule reload job started", "schedule", j.schedule)
	return nil
}

// Stop halts the scheduler. A reset already running is not waited for.
func (j *RuleReloadJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rule reload job stopped")
}
