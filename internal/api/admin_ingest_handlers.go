package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/ingest"
)

func (s *Server) registerIngestRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "runSeojiIngest",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/ingest/seoji/run",
		Summary:     "Run feed ingestion",
		Description: "Runs the national bibliography feed ingestion for a target date. The run is synchronous and always returns a run record, even on failure.",
		Tags:        []string{"Admin"},
	}, s.handleRunSeojiIngest)

	huma.Register(s.api, huma.Operation{
		OperationID: "runKeywordReplay",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/ingest/replay/run",
		Summary:     "Run keyword replay ingestion",
		Description: "Replays recorded search keywords against the book search API for a target date window.",
		Tags:        []string{"Admin"},
	}, s.handleRunKeywordReplay)

	huma.Register(s.api, huma.Operation{
		OperationID: "listIngestRuns",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/ingest/runs",
		Summary:     "List ingestion runs",
		Description: "Returns recent ingestion runs, newest first",
		Tags:        []string{"Admin"},
	}, s.handleListIngestRuns)
}

// JobRunResponse contains ingestion run data in API responses.
type JobRunResponse struct {
	ID         string     `json:"id" doc:"Run ID"`
	Name       string     `json:"name" doc:"Job name"`
	TargetDate string     `json:"target_date" doc:"Target date (yyyy-MM-dd)"`
	Status     string     `json:"status" doc:"Run status: running, completed, failed, or skipped"`
	ReadCount  int64      `json:"read_count" doc:"Items read from the source"`
	WriteCount int64      `json:"write_count" doc:"Books written to the catalog"`
	SkipCount  int64      `json:"skip_count" doc:"Items skipped as duplicates or unusable"`
	LogCount   int64      `json:"log_count" doc:"Search logs replayed, keyword job only"`
	Error      string     `json:"error,omitempty" doc:"Failure reason, when status is failed"`
	StartedAt  time.Time  `json:"started_at" doc:"When the run started"`
	FinishedAt *time.Time `json:"finished_at,omitempty" doc:"When the run finished"`
}

// RunIngestInput is the request to trigger an ingestion run.
type RunIngestInput struct {
	Body struct {
		TargetDate string `json:"target_date,omitempty" doc:"Target date (yyyy-MM-dd), defaults to yesterday"`
		Force      bool   `json:"force,omitempty" doc:"Run even if a completed run exists for the date"`
	}
}

// JobRunOutput wraps a single run response.
type JobRunOutput struct {
	Body JobRunResponse
}

// ListIngestRunsInput carries parameters for listing runs.
type ListIngestRunsInput struct {
	Limit int `query:"limit" doc:"Maximum runs to return (default 50)"`
}

// JobRunListResponse is a list of ingestion runs.
type JobRunListResponse struct {
	Items []JobRunResponse `json:"items" doc:"Ingestion runs, newest first"`
}

// JobRunListOutput wraps a list of runs.
type JobRunListOutput struct {
	Body JobRunListResponse
}

func (s *Server) handleRunSeojiIngest(ctx context.Context, input *RunIngestInput) (*JobRunOutput, error) {
	run, err := s.services.Ingest.TriggerRun(ctx, ingest.JobSeojiFeed, input.Body.TargetDate, input.Body.Force)
	if err != nil {
		return nil, err
	}
	return &JobRunOutput{Body: mapJobRunResponse(run)}, nil
}

func (s *Server) handleRunKeywordReplay(ctx context.Context, input *RunIngestInput) (*JobRunOutput, error) {
	run, err := s.services.Ingest.TriggerRun(ctx, ingest.JobKeywordReplay, input.Body.TargetDate, input.Body.Force)
	if err != nil {
		return nil, err
	}
	return &JobRunOutput{Body: mapJobRunResponse(run)}, nil
}

func (s *Server) handleListIngestRuns(ctx context.Context, input *ListIngestRunsInput) (*JobRunListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	runs, err := s.services.Ingest.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]JobRunResponse, 0, len(runs))
	for _, run := range runs {
		items = append(items, mapJobRunResponse(run))
	}
	return &JobRunListOutput{Body: JobRunListResponse{Items: items}}, nil
}

// mapJobRunResponse converts a domain run to an API response.
func mapJobRunResponse(r *domain.JobRun) JobRunResponse {
	return JobRunResponse{
		ID:         r.ID,
		Name:       r.Name,
		TargetDate: r.TargetDate,
		Status:     string(r.Status),
		ReadCount:  r.ReadCount,
		WriteCount: r.WriteCount,
		SkipCount:  r.SkipCount,
		LogCount:   r.LogCount,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}
