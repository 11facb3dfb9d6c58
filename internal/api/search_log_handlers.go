package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSearchLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "logSearch",
		Method:      http.MethodPost,
		Path:        "/api/v1/search-logs",
		Summary:     "Record search keyword",
		Description: "Records a user search keyword. Logged keywords are replayed against the book search API by the keyword ingestion job.",
		Tags:        []string{"Search"},
	}, s.handleLogSearch)
}

// SearchLogResponse contains a recorded search keyword.
type SearchLogResponse struct {
	ID         int64     `json:"id" doc:"Search log ID"`
	Keyword    string    `json:"keyword" doc:"Recorded keyword"`
	SearchedAt time.Time `json:"searched_at" doc:"When the search happened"`
}

// LogSearchInput is the request to record a search keyword.
type LogSearchInput struct {
	Body struct {
		Keyword string `json:"keyword" doc:"Search keyword to record" minLength:"1" maxLength:"200"`
	}
}

// SearchLogOutput wraps a search log response.
type SearchLogOutput struct {
	Body SearchLogResponse
}

func (s *Server) handleLogSearch(ctx context.Context, input *LogSearchInput) (*SearchLogOutput, error) {
	log, err := s.services.Ingest.LogSearch(ctx, input.Body.Keyword)
	if err != nil {
		return nil, err
	}
	return &SearchLogOutput{Body: SearchLogResponse{
		ID:         log.ID,
		Keyword:    log.Keyword,
		SearchedAt: log.SearchedAt,
	}}, nil
}
