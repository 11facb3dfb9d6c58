package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/errors"
	"github.com/bookhive/bookhive-server/internal/ingest"
	"github.com/bookhive/bookhive-server/internal/store"
)

// IngestService exposes the ingestion pipeline to the admin API.
type IngestService struct {
	orchestrator *ingest.Orchestrator
	store        *store.Store
	logger       *slog.Logger
}

// NewIngestService creates a new ingest service.
func NewIngestService(orchestrator *ingest.Orchestrator, store *store.Store, logger *slog.Logger) *IngestService {
	return &IngestService{
		orchestrator: orchestrator,
		store:        store,
		logger:       logger,
	}
}

// TriggerRun runs an ingestion job synchronously for a target date.
// targetDate must be yyyy-MM-dd; empty defaults to yesterday.
func (s *IngestService) TriggerRun(ctx context.Context, jobName, targetDate string, force bool) (*domain.JobRun, error) {
	var date time.Time
	if targetDate == "" {
		date = time.Now().UTC().AddDate(0, 0, -1)
	} else {
		var err error
		date, err = time.Parse(domain.TargetDateLayout, targetDate)
		if err != nil {
			return nil, errors.Validation("target_date must be yyyy-MM-dd")
		}
	}

	if jobName != ingest.JobSeojiFeed && jobName != ingest.JobKeywordReplay {
		return nil, errors.Validation("unknown ingestion job")
	}

	return s.orchestrator.RunDaily(ctx, jobName, date, force), nil
}

// ListRuns returns the most recent ingestion runs.
func (s *IngestService) ListRuns(ctx context.Context, limit int) ([]*domain.JobRun, error) {
	return s.store.ListJobRuns(ctx, limit)
}

// LogSearch records a user search keyword for later replay.
func (s *IngestService) LogSearch(ctx context.Context, keyword string) (*domain.SearchLog, error) {
	if keyword == "" {
		return nil, errors.Validation("keyword is required")
	}
	return s.store.CreateSearchLog(ctx, keyword, time.Now().UTC())
}
