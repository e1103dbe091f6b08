package jobs

import (
	"context"
	"log/slog"
	"time"

	"mealbot/internal/core/domain/model/session"
	"mealbot/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// SessionCleanupJob periodically deletes buyer sessions that sat idle past
// the session TTL, so abandoned conversations do not pile up in storage.
type SessionCleanupJob struct {
	sessions ports.SessionRepository
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionCleanupJob creates an hourly cleanup job for stale sessions.
// A non-positive ttl falls back to the session default of 24 hours.
func NewSessionCleanupJob(sessions ports.SessionRepository, ttl time.Duration, logger *slog.Logger) *SessionCleanupJob {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}

	return &SessionCleanupJob{
		sessions: sessions,
		ttl:      ttl,
		cron:     cron.New(),
		logger:   logger.With("component", "session_cleanup_job"),
	}
}

// Start schedules the cleanup to run at the top of every hour.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.ttl)

		deleted, err := j.sessions.DeleteStale(ctx, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup failed", "error", err)
			return
		}

		if deleted > 0 {
			j.logger.InfoContext(ctx, "Stale sessions deleted", "count", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
