package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSeojiIngestRejectsBadDate(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/admin/ingest/seoji/run", map[string]any{
		"target_date": "28-08-2026",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestListIngestRunsEmpty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/admin/ingest/runs")
	require.Equal(t, http.StatusOK, resp.Code)

	var runs JobRunListResponse
	decodeBody(t, resp, &runs)
	assert.Empty(t, runs.Items)
}

func TestLogSearchKeyword(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/search-logs", map[string]any{"keyword": "korean literature"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var log SearchLogResponse
	decodeBody(t, resp, &log)
	assert.Equal(t, "korean literature", log.Keyword)
	assert.NotZero(t, log.ID)
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.Components, "database")
}
