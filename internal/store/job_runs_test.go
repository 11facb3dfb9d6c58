package store

import (
	"context"
	"testing"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
)

func testJobRun(id, name, targetDate string, status domain.JobStatus) *domain.JobRun {
	return &domain.JobRun{
		ID:         id,
		Name:       name,
		TargetDate: targetDate,
		Status:     status,
		StartedAt:  time.Now().UTC(),
	}
}

func TestJobRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := testJobRun("run-1", "seoji-feed-ingest", "2026-08-28", domain.JobStatusRunning)
	if err := s.CreateJobRun(ctx, run); err != nil {
		t.Fatalf("create job run: %v", err)
	}

	finished := time.Now().UTC()
	run.Status = domain.JobStatusCompleted
	run.ReadCount = 120
	run.WriteCount = 100
	run.SkipCount = 20
	run.LogCount = 7
	run.FinishedAt = &finished
	if err := s.UpdateJobRun(ctx, run); err != nil {
		t.Fatalf("update job run: %v", err)
	}

	got, err := s.GetJobRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get job run: %v", err)
	}
	if got.Status != domain.JobStatusCompleted || got.WriteCount != 100 || got.LogCount != 7 {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.FinishedAt == nil {
		t.Error("expected finished_at to be set")
	}
}

func TestHasCompletedRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	done, err := s.HasCompletedRun(ctx, "seoji-feed-ingest", "2026-08-28")
	if err != nil {
		t.Fatalf("has completed run: %v", err)
	}
	if done {
		t.Error("expected no completed run yet")
	}

	// A failed run does not count as completed.
	failed := testJobRun("run-f", "seoji-feed-ingest", "2026-08-28", domain.JobStatusFailed)
	if err := s.CreateJobRun(ctx, failed); err != nil {
		t.Fatalf("create job run: %v", err)
	}
	done, err = s.HasCompletedRun(ctx, "seoji-feed-ingest", "2026-08-28")
	if err != nil {
		t.Fatalf("has completed run: %v", err)
	}
	if done {
		t.Error("failed run should not count as completed")
	}

	completed := testJobRun("run-c", "seoji-feed-ingest", "2026-08-28", domain.JobStatusCompleted)
	if err := s.CreateJobRun(ctx, completed); err != nil {
		t.Fatalf("create job run: %v", err)
	}
	done, err = s.HasCompletedRun(ctx, "seoji-feed-ingest", "2026-08-28")
	if err != nil {
		t.Fatalf("has completed run: %v", err)
	}
	if !done {
		t.Error("expected completed run to be found")
	}

	// Other dates and job names stay independent.
	done, _ = s.HasCompletedRun(ctx, "seoji-feed-ingest", "2026-08-29")
	if done {
		t.Error("other date should not be completed")
	}
	done, _ = s.HasCompletedRun(ctx, "keyword-replay-ingest", "2026-08-28")
	if done {
		t.Error("other job should not be completed")
	}
}

func TestListJobRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := testJobRun(id, "seoji-feed-ingest", "2026-08-28", domain.JobStatusCompleted)
		run.StartedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		if err := s.CreateJobRun(ctx, run); err != nil {
			t.Fatalf("create job run: %v", err)
		}
	}

	runs, err := s.ListJobRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list job runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-c" {
		t.Errorf("expected newest first, got %s", runs[0].ID)
	}
}
