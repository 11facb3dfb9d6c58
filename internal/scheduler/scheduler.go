// Package scheduler runs the daily ingestion jobs on a fixed schedule.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhive/bookhive-server/internal/ingest"
)

// Scheduler triggers the ingestion jobs once a day at a fixed UTC hour.
// Each trigger targets the previous calendar day, so a full day of feed
// data is available when the jobs run.
type Scheduler struct {
	orchestrator *ingest.Orchestrator
	hour         int
	logger       *slog.Logger
	cancel       context.CancelFunc
}

// New creates a scheduler that fires at the given UTC hour (0-23).
func New(orchestrator *ingest.Orchestrator, hour int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		orchestrator: orchestrator,
		hour:         hour,
		logger:       logger,
	}
}

// Start launches the scheduling loop in the background.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.run(ctx)

	s.logger.Info("ingest scheduler started", "hour_utc", s.hour)
}

// Stop cancels the scheduling loop. A job already in flight finishes
// its current chunk and records a failed run.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		next := nextRunAfter(time.Now().UTC(), s.hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			s.runJobs(ctx)
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// runJobs runs both ingestion jobs for yesterday. RunDaily never
// returns an error; failures are recorded on the run itself.
func (s *Scheduler) runJobs(ctx context.Context) {
	targetDate := time.Now().UTC().AddDate(0, 0, -1)

	for _, jobName := range []string{ingest.JobSeojiFeed, ingest.JobKeywordReplay} {
		run := s.orchestrator.RunDaily(ctx, jobName, targetDate, false)
		s.logger.Info("scheduled ingest run finished",
			"job", jobName,
			"status", run.Status,
			"read", run.ReadCount,
			"written", run.WriteCount,
			"skipped", run.SkipCount,
		)
	}
}

// nextRunAfter returns the next scheduled instant strictly after now.
func nextRunAfter(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
