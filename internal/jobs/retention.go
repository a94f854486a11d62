// Package jobs hosts the scheduled maintenance work, currently the history
// retention purge.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"prepmate/interview/internal/session"
)

// RetentionJob periodically purges persisted sessions past the retention
// window. The per-write cap is enforced on every persist; this job only
// handles age-based expiry.
type RetentionJob struct {
	manager *session.Manager
	logger  *zap.Logger
	cron    *cron.Cron

	Schedule string // cron schedule, e.g. "0 3 * * *" for 3 AM daily
}

func NewRetentionJob(manager *session.Manager, schedule string, logger *zap.Logger) *RetentionJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionJob{
		manager:  manager,
		logger:   logger,
		cron:     cron.New(),
		Schedule: schedule,
	}
}

// Start schedules the purge and runs it once immediately to catch anything
// that expired while the service was down.
func (j *RetentionJob) Start() error {
	_, err := j.cron.AddFunc(j.Schedule, func() {
		j.RunPurge()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}

	j.cron.Start()
	j.logger.Info("retention job started", zap.String("schedule", j.Schedule))

	go j.RunPurge()

	return nil
}

func (j *RetentionJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunPurge executes one purge pass.
func (j *RetentionJob) RunPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := j.manager.PurgeExpired(ctx)
	if err != nil {
		j.logger.Warn("retention purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("retention purge removed expired sessions", zap.Int("removed", removed))
	}
}
