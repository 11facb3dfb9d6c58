package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/store"
)

func (s *Server) registerContentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createContent",
		Method:      http.MethodPost,
		Path:        "/api/v1/contents",
		Summary:     "Create content",
		Description: "Creates an editorial content entry (curation, notice, or article)",
		Tags:        []string{"Contents"},
	}, s.handleCreateContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "listContents",
		Method:      http.MethodGet,
		Path:        "/api/v1/contents",
		Summary:     "List contents",
		Tags:        []string{"Contents"},
	}, s.handleListContents)

	huma.Register(s.api, huma.Operation{
		OperationID: "getContent",
		Method:      http.MethodGet,
		Path:        "/api/v1/contents/{id}",
		Summary:     "Get content",
		Tags:        []string{"Contents"},
	}, s.handleGetContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateContent",
		Method:      http.MethodPatch,
		Path:        "/api/v1/contents/{id}",
		Summary:     "Update content",
		Tags:        []string{"Contents"},
	}, s.handleUpdateContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteContent",
		Method:      http.MethodDelete,
		Path:        "/api/v1/contents/{id}",
		Summary:     "Delete content",
		Tags:        []string{"Contents"},
	}, s.handleDeleteContent)
}

// ContentResponse contains content data in API responses.
type ContentResponse struct {
	ID        string    `json:"id" doc:"Content ID"`
	Title     string    `json:"title" doc:"Content title"`
	Body      string    `json:"body,omitempty" doc:"Content body text"`
	Kind      string    `json:"kind,omitempty" doc:"Content kind: curation, notice, or article"`
	CreatedAt time.Time `json:"created_at" doc:"When the content was created"`
	UpdatedAt time.Time `json:"updated_at" doc:"When the content was last updated"`
}

// ContentListResponse is a page of content entries.
type ContentListResponse struct {
	Items      []ContentResponse `json:"items" doc:"Content entries in this page"`
	NextCursor string            `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool              `json:"has_more" doc:"Whether more pages exist"`
}

// CreateContentInput is the request to create a content entry.
type CreateContentInput struct {
	Body domain.CreateContentRequest
}

// ContentOutput wraps a single content response.
type ContentOutput struct {
	Body ContentResponse
}

// ContentListInput carries pagination parameters for listing content entries.
type ContentListInput struct {
	Limit  int    `query:"limit" doc:"Maximum items per page (default 100, max 1000)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// ContentListOutput wraps a page of content entries.
type ContentListOutput struct {
	Body ContentListResponse
}

// GetContentInput identifies a content entry by ID.
type GetContentInput struct {
	ID string `path:"id" doc:"Content ID"`
}

// UpdateContentInput is the request to update a content entry.
type UpdateContentInput struct {
	ID   string `path:"id" doc:"Content ID"`
	Body domain.UpdateContentRequest
}

func (s *Server) handleCreateContent(ctx context.Context, input *CreateContentInput) (*ContentOutput, error) {
	content, err := s.services.Catalog.CreateContent(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &ContentOutput{Body: mapContentResponse(content)}, nil
}

func (s *Server) handleListContents(ctx context.Context, input *ContentListInput) (*ContentListOutput, error) {
	params := store.PaginationParams{Limit: input.Limit, Cursor: input.Cursor}
	params.Validate()

	page, err := s.services.Catalog.ListContents(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]ContentResponse, 0, len(page.Items))
	for _, content := range page.Items {
		items = append(items, mapContentResponse(content))
	}

	return &ContentListOutput{Body: ContentListResponse{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleGetContent(ctx context.Context, input *GetContentInput) (*ContentOutput, error) {
	content, err := s.services.Catalog.GetContent(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ContentOutput{Body: mapContentResponse(content)}, nil
}

func (s *Server) handleUpdateContent(ctx context.Context, input *UpdateContentInput) (*ContentOutput, error) {
	content, err := s.services.Catalog.UpdateContent(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ContentOutput{Body: mapContentResponse(content)}, nil
}

func (s *Server) handleDeleteContent(ctx context.Context, input *GetContentInput) (*MessageOutput, error) {
	if err := s.services.Catalog.DeleteContent(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Content deleted"}}, nil
}

// mapContentResponse converts domain content to an API response.
func mapContentResponse(c *domain.Content) ContentResponse {
	return ContentResponse{
		ID:        c.ID,
		Title:     c.Title,
		Body:      c.Body,
		Kind:      c.Kind,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
