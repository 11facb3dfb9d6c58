package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-server/internal/service"
	"github.com/bookhive/bookhive-server/internal/store"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a test server over a temp-dir store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := store.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	services := &Services{
		Book:    service.NewBookService(st, logger),
		Catalog: service.NewCatalogService(st, logger),
		Ingest:  service.NewIngestService(nil, st, logger),
	}

	router := chi.NewRouter()
	humaConfig := huma.DefaultConfig("BookHive API Test", "1.0.0")
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		api:      api,
		logger:   logger,
	}

	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerAuthorRoutes()
	s.registerPublisherRoutes()
	s.registerEventRoutes()
	s.registerContentRoutes()
	s.registerSearchLogRoutes()
	s.registerIngestRoutes()

	return &testServer{Server: s, api: humatest.Wrap(t, api)}
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), v))
}

func TestCreateAndGetBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"isbn":  "9788936434120 9788936434121",
		"title": "The Vegetarian",
		"price": 15000,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var created BookResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "9788936434120", created.ISBN)
	assert.Equal(t, "9788936434120 9788936434121", created.ISBNRaw)

	resp = ts.api.Get("/api/v1/books/9788936434120")
	require.Equal(t, http.StatusOK, resp.Code)

	var got BookResponse
	decodeBody(t, resp, &got)
	assert.Equal(t, "The Vegetarian", got.Title)
}

func TestGetBookNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books/0000000000000")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateBookDuplicate(t *testing.T) {
	ts := setupTestServer(t)

	body := map[string]any{"isbn": "9788936434120", "title": "X"}
	resp := ts.api.Post("/api/v1/books", body)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/books", body)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateBookValidation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", map[string]any{"title": "No ISBN"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestUpdateBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", map[string]any{"isbn": "9788936434120", "title": "Old"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Patch("/api/v1/books/9788936434120", map[string]any{
		"title": "New",
		"price": 20000,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated BookResponse
	decodeBody(t, resp, &updated)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, int64(20000), updated.Price)
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", map[string]any{"isbn": "9788936434120", "title": "X"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/books/9788936434120")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/books/9788936434120")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListBooksPagination(t *testing.T) {
	ts := setupTestServer(t)

	for _, isbn := range []string{"1000000000001", "1000000000002", "1000000000003"} {
		resp := ts.api.Post("/api/v1/books", map[string]any{"isbn": isbn, "title": "Book " + isbn})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/books?limit=2")
	require.Equal(t, http.StatusOK, resp.Code)

	var page BookListResponse
	decodeBody(t, resp, &page)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	require.NotEmpty(t, page.NextCursor)

	resp = ts.api.Get("/api/v1/books?limit=2&cursor=" + page.NextCursor)
	require.Equal(t, http.StatusOK, resp.Code)

	decodeBody(t, resp, &page)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)
}
