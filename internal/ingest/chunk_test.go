package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/bookhive/bookhive-server/internal/domain"
)

// sliceReader serves items from a slice and checkpoints its position.
type sliceReader struct {
	items []string
	pos   int
}

func (r *sliceReader) Open(_ context.Context, ec *ExecutionContext) error {
	r.pos = ec.GetInt("pos", 0)
	return nil
}

func (r *sliceReader) Next(context.Context) (string, error) {
	if r.pos >= len(r.items) {
		return "", ErrEndOfData
	}
	item := r.items[r.pos]
	r.pos++
	return item, nil
}

func (r *sliceReader) Close(context.Context) error { return nil }

func (r *sliceReader) SaveTo(ec *ExecutionContext) {
	ec.PutInt("pos", r.pos)
}

// isbnProcessor treats each item as an ISBN; "skip" items are filtered
// and "boom" items fail.
type isbnProcessor struct{}

func (isbnProcessor) Process(_ context.Context, item string) (*domain.Book, error) {
	switch item {
	case "skip":
		return nil, nil
	case "boom":
		return nil, errors.New("processing exploded")
	}
	return &domain.Book{ISBN: item, Title: "Book " + item}, nil
}

func TestStepRunsInChunks(t *testing.T) {
	store := &fakeChunkStore{existing: map[string]bool{}}
	step := &Step[string]{
		Name:      "test-step",
		Reader:    &sliceReader{items: []string{"1", "2", "3", "4", "5"}},
		Processor: isbnProcessor{},
		Writer:    NewBookWriter(store, "test-step", testLogger()),
		ChunkSize: 2,
		Logger:    testLogger(),
	}

	stats, err := step.Run(context.Background(), NewExecutionContext())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Read != 5 || stats.Written != 5 || stats.Skipped != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	// 2 + 2 + 1 items means three commits.
	if len(store.checkpoints) != 3 {
		t.Errorf("expected 3 chunk commits, got %d", len(store.checkpoints))
	}
	// Each commit carries the reader position past its chunk.
	if store.checkpoints[0]["pos"] != "2" || store.checkpoints[2]["pos"] != "5" {
		t.Errorf("unexpected checkpoints: %v", store.checkpoints)
	}
}

func TestStepCountsFilteredItems(t *testing.T) {
	store := &fakeChunkStore{existing: map[string]bool{}}
	step := &Step[string]{
		Name:      "test-step",
		Reader:    &sliceReader{items: []string{"1", "skip", "2"}},
		Processor: isbnProcessor{},
		Writer:    NewBookWriter(store, "test-step", testLogger()),
		ChunkSize: 10,
		Logger:    testLogger(),
	}

	stats, err := step.Run(context.Background(), NewExecutionContext())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Read != 3 || stats.Written != 2 || stats.Skipped != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStepAbortsOnProcessorError(t *testing.T) {
	store := &fakeChunkStore{existing: map[string]bool{}}
	step := &Step[string]{
		Name:      "test-step",
		Reader:    &sliceReader{items: []string{"1", "2", "boom", "3"}},
		Processor: isbnProcessor{},
		Writer:    NewBookWriter(store, "test-step", testLogger()),
		ChunkSize: 2,
		Logger:    testLogger(),
	}

	stats, err := step.Run(context.Background(), NewExecutionContext())
	if err == nil {
		t.Fatal("expected processor error to abort the step")
	}
	// The first chunk committed before the failure.
	if stats.Written != 2 {
		t.Errorf("expected first chunk committed, got %+v", stats)
	}
	if len(store.checkpoints) != 1 {
		t.Errorf("expected 1 commit, got %d", len(store.checkpoints))
	}
}

func TestStepEmptySource(t *testing.T) {
	store := &fakeChunkStore{existing: map[string]bool{}}
	step := &Step[string]{
		Name:      "test-step",
		Reader:    &sliceReader{},
		Processor: isbnProcessor{},
		Writer:    NewBookWriter(store, "test-step", testLogger()),
		ChunkSize: 10,
		Logger:    testLogger(),
	}

	stats, err := step.Run(context.Background(), NewExecutionContext())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Read != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(store.checkpoints) != 0 {
		t.Error("empty source must not commit")
	}
}
