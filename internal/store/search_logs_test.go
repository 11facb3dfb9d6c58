package store

import (
	"context"
	"testing"
	"time"
)

func TestSearchLogStream(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	// One log before the window, three inside, one after.
	if _, err := s.CreateSearchLog(ctx, "too-early", day.Add(-time.Hour)); err != nil {
		t.Fatalf("create search log: %v", err)
	}
	inside := []string{"sqlite", "golang", "kafka"}
	for i, kw := range inside {
		if _, err := s.CreateSearchLog(ctx, kw, day.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("create search log: %v", err)
		}
	}
	if _, err := s.CreateSearchLog(ctx, "too-late", day.Add(25*time.Hour)); err != nil {
		t.Fatalf("create search log: %v", err)
	}

	logs, err := s.ListSearchLogsAfter(ctx, 0, day, day.Add(24*time.Hour), 10)
	if err != nil {
		t.Fatalf("list search logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs in window, got %d", len(logs))
	}
	for i, log := range logs {
		if log.Keyword != inside[i] {
			t.Errorf("expected %q at position %d, got %q", inside[i], i, log.Keyword)
		}
	}

	// Resume after the first in-window log.
	resumed, err := s.ListSearchLogsAfter(ctx, logs[0].ID, day, day.Add(24*time.Hour), 10)
	if err != nil {
		t.Fatalf("list search logs resumed: %v", err)
	}
	if len(resumed) != 2 || resumed[0].Keyword != "golang" {
		t.Errorf("unexpected resume result: %+v", resumed)
	}

	// Limit caps the batch.
	limited, err := s.ListSearchLogsAfter(ctx, 0, day, day.Add(24*time.Hour), 1)
	if err != nil {
		t.Fatalf("list search logs limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 log, got %d", len(limited))
	}
}
