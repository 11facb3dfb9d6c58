package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/metadata/kakao"
	"github.com/bookhive/bookhive-server/internal/metadata/seoji"
)

// Job names. The (name, target date) pair is the idempotency key.
const (
	JobSeojiFeed     = "seoji-feed-ingest"
	JobKeywordReplay = "keyword-replay-ingest"
)

// Store is the persistence surface the orchestrator needs.
type Store interface {
	ChunkStore
	SearchLogStore

	HasCompletedRun(ctx context.Context, name, targetDate string) (bool, error)
	CreateJobRun(ctx context.Context, run *domain.JobRun) error
	UpdateJobRun(ctx context.Context, run *domain.JobRun) error
	LoadCheckpoint(ctx context.Context, jobName string) (map[string]string, error)
	ClearCheckpoint(ctx context.Context, jobName string) error
}

// Config holds pipeline tuning knobs.
type Config struct {
	ChunkSize     int
	FeedPageSize  int
	QueryPageSize int
}

// SearchAPI combines the two uses of the book search client: ISBN
// lookup for enrichment and keyword queries for the replay.
type SearchAPI interface {
	SearchClient
	KeywordSearchClient
}

// Orchestrator builds and runs ingestion jobs with idempotency and
// crash recovery. One completed run per (job, target date); a failed
// run leaves its checkpoint behind so the next attempt resumes where
// it stopped.
type Orchestrator struct {
	store   Store
	feed    FeedClient
	search  SearchAPI
	cfg     Config
	metrics *Metrics
	logger  *slog.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(store Store, feed FeedClient, search SearchAPI, cfg Config, metrics *Metrics, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:   store,
		feed:    feed,
		search:  search,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// RunDaily executes one ingestion job for a target date. It never
// returns an error: every outcome, including panics, ends as a
// persisted JobRun with a terminal status.
func (o *Orchestrator) RunDaily(ctx context.Context, jobName string, targetDate time.Time, force bool) *domain.JobRun {
	dateStr := targetDate.Format(domain.TargetDateLayout)
	now := time.Now().UTC()

	run := &domain.JobRun{
		ID:         uuid.NewString(),
		Name:       jobName,
		TargetDate: dateStr,
		Status:     domain.JobStatusRunning,
		StartedAt:  now,
	}

	if jobName != JobSeojiFeed && jobName != JobKeywordReplay {
		return o.finish(ctx, run, Stats{}, fmt.Errorf("unknown job %q", jobName), false)
	}

	// Idempotency: a completed (job, date) pair is never re-run unless
	// forced.
	if !force {
		done, err := o.store.HasCompletedRun(ctx, jobName, dateStr)
		if err != nil {
			return o.finish(ctx, run, Stats{}, fmt.Errorf("check completed run: %w", err), false)
		}
		if done {
			finished := time.Now().UTC()
			run.Status = domain.JobStatusSkipped
			run.FinishedAt = &finished
			if err := o.store.CreateJobRun(ctx, run); err != nil {
				o.logger.Error("record skipped run", "job", jobName, "error", err)
			}
			o.metrics.RunsTotal.WithLabelValues(jobName, string(domain.JobStatusSkipped)).Inc()
			o.logger.Info("ingestion skipped, already completed",
				"job", jobName,
				"target_date", dateStr,
			)
			return run
		}
	}

	if err := o.store.CreateJobRun(ctx, run); err != nil {
		run.Status = domain.JobStatusFailed
		run.Error = fmt.Sprintf("create job run: %v", err)
		o.logger.Error("create job run", "job", jobName, "error", err)
		return run
	}

	o.logger.Info("ingestion started",
		"job", jobName,
		"target_date", dateStr,
		"run_id", run.ID,
		"force", force,
	)

	var stats Stats
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic: %v", r)
			}
		}()
		stats, runErr = o.runStep(ctx, jobName, targetDate)
	}()

	return o.finish(ctx, run, stats, runErr, true)
}

// runStep builds and executes the step for a job.
func (o *Orchestrator) runStep(ctx context.Context, jobName string, targetDate time.Time) (Stats, error) {
	ec, err := o.restoreContext(ctx, jobName, targetDate)
	if err != nil {
		return Stats{}, err
	}

	writer := NewBookWriter(o.store, jobName, o.logger)

	switch jobName {
	case JobSeojiFeed:
		enricher, err := NewEnricher(o.search, o.logger)
		if err != nil {
			return Stats{}, fmt.Errorf("create enricher: %w", err)
		}
		step := &Step[seoji.Document]{
			Name:      jobName,
			Reader:    NewFeedReader(o.feed, targetDate, o.cfg.FeedPageSize, o.logger),
			Processor: enricher,
			Writer:    writer,
			ChunkSize: o.cfg.ChunkSize,
			Logger:    o.logger,
		}
		return step.Run(ctx, ec)

	case JobKeywordReplay:
		from := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, time.UTC)
		to := from.Add(24 * time.Hour)
		step := &Step[kakao.Document]{
			Name:      jobName,
			Reader:    NewKeywordReader(o.store, o.search, from, to, o.cfg.QueryPageSize, o.logger),
			Processor: NewKeywordProcessor(o.logger),
			Writer:    writer,
			ChunkSize: o.cfg.ChunkSize,
			Logger:    o.logger,
		}
		return step.Run(ctx, ec)
	}

	return Stats{}, fmt.Errorf("unknown job %q", jobName)
}

// restoreContext loads the job's checkpoint. A checkpoint left by a
// run for a different target date is stale and is discarded.
func (o *Orchestrator) restoreContext(ctx context.Context, jobName string, targetDate time.Time) (*ExecutionContext, error) {
	snapshot, err := o.store.LoadCheckpoint(ctx, jobName)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	dateStr := targetDate.Format(domain.TargetDateLayout)
	if saved, ok := snapshot["target_date"]; ok && saved != dateStr {
		o.logger.Info("discarding checkpoint for different date",
			"job", jobName,
			"saved", saved,
			"target_date", dateStr,
		)
		snapshot = nil
	} else if len(snapshot) > 0 {
		o.logger.Info("resuming from checkpoint", "job", jobName, "checkpoint", snapshot)
	}

	ec := RestoreExecutionContext(snapshot)
	ec.Put("target_date", dateStr)
	return ec, nil
}

// finish persists the run's terminal state and records metrics.
func (o *Orchestrator) finish(ctx context.Context, run *domain.JobRun, stats Stats, runErr error, persisted bool) *domain.JobRun {
	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.ReadCount = stats.Read
	run.WriteCount = stats.Written
	run.SkipCount = stats.Skipped
	run.LogCount = stats.LogsConsumed

	if runErr != nil {
		run.Status = domain.JobStatusFailed
		run.Error = runErr.Error()
		o.logger.Error("ingestion failed",
			"job", run.Name,
			"target_date", run.TargetDate,
			"read", stats.Read,
			"written", stats.Written,
			"error", runErr,
		)
	} else {
		run.Status = domain.JobStatusCompleted
		if err := o.store.ClearCheckpoint(ctx, run.Name); err != nil {
			o.logger.Error("clear checkpoint", "job", run.Name, "error", err)
		}
		o.logger.Info("ingestion completed",
			"job", run.Name,
			"target_date", run.TargetDate,
			"read", stats.Read,
			"written", stats.Written,
			"skipped", stats.Skipped,
			"logs", stats.LogsConsumed,
		)
	}

	if persisted {
		if err := o.store.UpdateJobRun(ctx, run); err != nil {
			o.logger.Error("update job run", "job", run.Name, "error", err)
		}
	} else {
		if err := o.store.CreateJobRun(ctx, run); err != nil {
			o.logger.Error("record job run", "job", run.Name, "error", err)
		}
	}

	o.metrics.Record(run.Name, string(run.Status), stats)
	return run
}
