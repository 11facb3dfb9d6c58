package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/store"
)

func (s *Server) registerPublisherRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createPublisher",
		Method:      http.MethodPost,
		Path:        "/api/v1/publishers",
		Summary:     "Create publisher",
		Tags:        []string{"Publishers"},
	}, s.handleCreatePublisher)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPublishers",
		Method:      http.MethodGet,
		Path:        "/api/v1/publishers",
		Summary:     "List publishers",
		Tags:        []string{"Publishers"},
	}, s.handleListPublishers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPublisher",
		Method:      http.MethodGet,
		Path:        "/api/v1/publishers/{id}",
		Summary:     "Get publisher",
		Tags:        []string{"Publishers"},
	}, s.handleGetPublisher)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePublisher",
		Method:      http.MethodPatch,
		Path:        "/api/v1/publishers/{id}",
		Summary:     "Update publisher",
		Tags:        []string{"Publishers"},
	}, s.handleUpdatePublisher)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePublisher",
		Method:      http.MethodDelete,
		Path:        "/api/v1/publishers/{id}",
		Summary:     "Delete publisher",
		Tags:        []string{"Publishers"},
	}, s.handleDeletePublisher)
}

// PublisherResponse contains publisher data in API responses.
type PublisherResponse struct {
	ID        string    `json:"id" doc:"Publisher ID"`
	Name      string    `json:"name" doc:"Publisher name"`
	CreatedAt time.Time `json:"created_at" doc:"When the publisher was created"`
	UpdatedAt time.Time `json:"updated_at" doc:"When the publisher was last updated"`
}

// PublisherListResponse is a page of publishers.
type PublisherListResponse struct {
	Items      []PublisherResponse `json:"items" doc:"Publishers in this page"`
	NextCursor string              `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool                `json:"has_more" doc:"Whether more pages exist"`
}

// CreatePublisherInput is the request to create a publisher.
type CreatePublisherInput struct {
	Body domain.CreatePublisherRequest
}

// PublisherOutput wraps a single publisher response.
type PublisherOutput struct {
	Body PublisherResponse
}

// PublisherListInput carries pagination parameters for listing publishers.
type PublisherListInput struct {
	Limit  int    `query:"limit" doc:"Maximum items per page (default 100, max 1000)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// PublisherListOutput wraps a page of publishers.
type PublisherListOutput struct {
	Body PublisherListResponse
}

// GetPublisherInput identifies a publisher by ID.
type GetPublisherInput struct {
	ID string `path:"id" doc:"Publisher ID"`
}

// UpdatePublisherInput is the request to update a publisher.
type UpdatePublisherInput struct {
	ID   string `path:"id" doc:"Publisher ID"`
	Body domain.UpdatePublisherRequest
}

func (s *Server) handleCreatePublisher(ctx context.Context, input *CreatePublisherInput) (*PublisherOutput, error) {
	publisher, err := s.services.Catalog.CreatePublisher(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &PublisherOutput{Body: mapPublisherResponse(publisher)}, nil
}

func (s *Server) handleListPublishers(ctx context.Context, input *PublisherListInput) (*PublisherListOutput, error) {
	params := store.PaginationParams{Limit: input.Limit, Cursor: input.Cursor}
	params.Validate()

	page, err := s.services.Catalog.ListPublishers(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]PublisherResponse, 0, len(page.Items))
	for _, publisher := range page.Items {
		items = append(items, mapPublisherResponse(publisher))
	}

	return &PublisherListOutput{Body: PublisherListResponse{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleGetPublisher(ctx context.Context, input *GetPublisherInput) (*PublisherOutput, error) {
	publisher, err := s.services.Catalog.GetPublisher(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PublisherOutput{Body: mapPublisherResponse(publisher)}, nil
}

func (s *Server) handleUpdatePublisher(ctx context.Context, input *UpdatePublisherInput) (*PublisherOutput, error) {
	publisher, err := s.services.Catalog.UpdatePublisher(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &PublisherOutput{Body: mapPublisherResponse(publisher)}, nil
}

func (s *Server) handleDeletePublisher(ctx context.Context, input *GetPublisherInput) (*MessageOutput, error) {
	if err := s.services.Catalog.DeletePublisher(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Publisher deleted"}}, nil
}

// mapPublisherResponse converts a domain publisher to an API response.
func mapPublisherResponse(p *domain.Publisher) PublisherResponse {
	return PublisherResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
