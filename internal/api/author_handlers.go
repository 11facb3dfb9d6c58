package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/store"
)

func (s *Server) registerAuthorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createAuthor",
		Method:      http.MethodPost,
		Path:        "/api/v1/authors",
		Summary:     "Create author",
		Tags:        []string{"Authors"},
	}, s.handleCreateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAuthors",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors",
		Summary:     "List authors",
		Tags:        []string{"Authors"},
	}, s.handleListAuthors)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthor",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors/{id}",
		Summary:     "Get author",
		Tags:        []string{"Authors"},
	}, s.handleGetAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAuthor",
		Method:      http.MethodPatch,
		Path:        "/api/v1/authors/{id}",
		Summary:     "Update author",
		Tags:        []string{"Authors"},
	}, s.handleUpdateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAuthor",
		Method:      http.MethodDelete,
		Path:        "/api/v1/authors/{id}",
		Summary:     "Delete author",
		Tags:        []string{"Authors"},
	}, s.handleDeleteAuthor)
}

// AuthorResponse contains author data in API responses.
type AuthorResponse struct {
	ID          string    `json:"id" doc:"Author ID"`
	Name        string    `json:"name" doc:"Author name"`
	Description string    `json:"description,omitempty" doc:"Author biography"`
	CreatedAt   time.Time `json:"created_at" doc:"When the author was created"`
	UpdatedAt   time.Time `json:"updated_at" doc:"When the author was last updated"`
}

// AuthorListResponse is a page of authors.
type AuthorListResponse struct {
	Items      []AuthorResponse `json:"items" doc:"Authors in this page"`
	NextCursor string           `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool             `json:"has_more" doc:"Whether more pages exist"`
}

// CreateAuthorInput is the request to create an author.
type CreateAuthorInput struct {
	Body domain.CreateAuthorRequest
}

// AuthorOutput wraps a single author response.
type AuthorOutput struct {
	Body AuthorResponse
}

// AuthorListInput carries pagination parameters for listing authors.
type AuthorListInput struct {
	Limit  int    `query:"limit" doc:"Maximum items per page (default 100, max 1000)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// AuthorListOutput wraps a page of authors.
type AuthorListOutput struct {
	Body AuthorListResponse
}

// GetAuthorInput identifies an author by ID.
type GetAuthorInput struct {
	ID string `path:"id" doc:"Author ID"`
}

// UpdateAuthorInput is the request to update an author.
type UpdateAuthorInput struct {
	ID   string `path:"id" doc:"Author ID"`
	Body domain.UpdateAuthorRequest
}

func (s *Server) handleCreateAuthor(ctx context.Context, input *CreateAuthorInput) (*AuthorOutput, error) {
	author, err := s.services.Catalog.CreateAuthor(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: mapAuthorResponse(author)}, nil
}

func (s *Server) handleListAuthors(ctx context.Context, input *AuthorListInput) (*AuthorListOutput, error) {
	params := store.PaginationParams{Limit: input.Limit, Cursor: input.Cursor}
	params.Validate()

	page, err := s.services.Catalog.ListAuthors(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]AuthorResponse, 0, len(page.Items))
	for _, author := range page.Items {
		items = append(items, mapAuthorResponse(author))
	}

	return &AuthorListOutput{Body: AuthorListResponse{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleGetAuthor(ctx context.Context, input *GetAuthorInput) (*AuthorOutput, error) {
	author, err := s.services.Catalog.GetAuthor(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: mapAuthorResponse(author)}, nil
}

func (s *Server) handleUpdateAuthor(ctx context.Context, input *UpdateAuthorInput) (*AuthorOutput, error) {
	author, err := s.services.Catalog.UpdateAuthor(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: mapAuthorResponse(author)}, nil
}

func (s *Server) handleDeleteAuthor(ctx context.Context, input *GetAuthorInput) (*MessageOutput, error) {
	if err := s.services.Catalog.DeleteAuthor(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Author deleted"}}, nil
}

// mapAuthorResponse converts a domain author to an API response.
func mapAuthorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
