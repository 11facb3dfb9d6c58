package store

import (
	"context"
	"testing"
)

func TestCheckpointRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// No checkpoint yet: empty map, no error.
	cp, err := s.LoadCheckpoint(ctx, "keyword-replay-ingest")
	if err != nil {
		t.Fatalf("load checkpoint: %v", err)
	}
	if len(cp) != 0 {
		t.Errorf("expected empty checkpoint, got %v", cp)
	}

	snapshot := map[string]string{
		"log_id":  "42",
		"keyword": "distributed systems",
		"page":    "3",
	}
	if err := s.SaveCheckpoint(ctx, "keyword-replay-ingest", snapshot); err != nil {
		t.Fatalf("save checkpoint: %v", err)
	}

	cp, err = s.LoadCheckpoint(ctx, "keyword-replay-ingest")
	if err != nil {
		t.Fatalf("load checkpoint: %v", err)
	}
	if cp["log_id"] != "42" || cp["keyword"] != "distributed systems" || cp["page"] != "3" {
		t.Errorf("unexpected checkpoint: %v", cp)
	}

	// Save replaces the whole snapshot, stale keys disappear.
	if err := s.SaveCheckpoint(ctx, "keyword-replay-ingest", map[string]string{"log_id": "50"}); err != nil {
		t.Fatalf("save checkpoint: %v", err)
	}
	cp, _ = s.LoadCheckpoint(ctx, "keyword-replay-ingest")
	if len(cp) != 1 || cp["log_id"] != "50" {
		t.Errorf("expected replaced snapshot, got %v", cp)
	}

	// Checkpoints are namespaced by job.
	other, _ := s.LoadCheckpoint(ctx, "seoji-feed-ingest")
	if len(other) != 0 {
		t.Errorf("expected no checkpoint for other job, got %v", other)
	}

	if err := s.ClearCheckpoint(ctx, "keyword-replay-ingest"); err != nil {
		t.Fatalf("clear checkpoint: %v", err)
	}
	cp, _ = s.LoadCheckpoint(ctx, "keyword-replay-ingest")
	if len(cp) != 0 {
		t.Errorf("expected cleared checkpoint, got %v", cp)
	}
}
