package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-server/internal/errors"
)

func newIngestService(t *testing.T) *IngestService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	// Orchestrator paths that need live clients are covered in the
	// ingest package; these tests exercise the validation surface.
	return NewIngestService(nil, newTestStore(t), logger)
}

func TestTriggerRunRejectsBadDate(t *testing.T) {
	svc := newIngestService(t)

	_, err := svc.TriggerRun(context.Background(), "seoji-feed-ingest", "28-08-2026", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestTriggerRunRejectsUnknownJob(t *testing.T) {
	svc := newIngestService(t)

	_, err := svc.TriggerRun(context.Background(), "mystery-job", "2026-08-28", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestLogSearch(t *testing.T) {
	svc := newIngestService(t)
	ctx := context.Background()

	log, err := svc.LogSearch(ctx, "distributed systems")
	require.NoError(t, err)
	assert.Equal(t, "distributed systems", log.Keyword)
	assert.NotZero(t, log.ID)

	_, err = svc.LogSearch(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
