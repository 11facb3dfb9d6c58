package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/store"
)

func (s *Server) registerEventRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createEvent",
		Method:      http.MethodPost,
		Path:        "/api/v1/events",
		Summary:     "Create event",
		Tags:        []string{"Events"},
	}, s.handleCreateEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEvents",
		Method:      http.MethodGet,
		Path:        "/api/v1/events",
		Summary:     "List events",
		Tags:        []string{"Events"},
	}, s.handleListEvents)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEvent",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/{id}",
		Summary:     "Get event",
		Tags:        []string{"Events"},
	}, s.handleGetEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateEvent",
		Method:      http.MethodPatch,
		Path:        "/api/v1/events/{id}",
		Summary:     "Update event",
		Tags:        []string{"Events"},
	}, s.handleUpdateEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEvent",
		Method:      http.MethodDelete,
		Path:        "/api/v1/events/{id}",
		Summary:     "Delete event",
		Tags:        []string{"Events"},
	}, s.handleDeleteEvent)
}

// EventResponse contains event data in API responses.
type EventResponse struct {
	ID        string     `json:"id" doc:"Event ID"`
	Title     string     `json:"title" doc:"Event title"`
	Body      string     `json:"body,omitempty" doc:"Event body text"`
	ImageURL  string     `json:"image_url,omitempty" doc:"Banner image URL"`
	StartsAt  *time.Time `json:"starts_at,omitempty" doc:"When the event starts"`
	EndsAt    *time.Time `json:"ends_at,omitempty" doc:"When the event ends"`
	CreatedAt time.Time  `json:"created_at" doc:"When the event was created"`
	UpdatedAt time.Time  `json:"updated_at" doc:"When the event was last updated"`
}

// EventListResponse is a page of events.
type EventListResponse struct {
	Items      []EventResponse `json:"items" doc:"Events in this page"`
	NextCursor string          `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool            `json:"has_more" doc:"Whether more pages exist"`
}

// CreateEventInput is the request to create an event.
type CreateEventInput struct {
	Body domain.CreateEventRequest
}

// EventOutput wraps a single event response.
type EventOutput struct {
	Body EventResponse
}

// EventListInput carries pagination parameters for listing events.
type EventListInput struct {
	Limit  int    `query:"limit" doc:"Maximum items per page (default 100, max 1000)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// EventListOutput wraps a page of events.
type EventListOutput struct {
	Body EventListResponse
}

// GetEventInput identifies an event by ID.
type GetEventInput struct {
	ID string `path:"id" doc:"Event ID"`
}

// UpdateEventInput is the request to update an event.
type UpdateEventInput struct {
	ID   string `path:"id" doc:"Event ID"`
	Body domain.UpdateEventRequest
}

func (s *Server) handleCreateEvent(ctx context.Context, input *CreateEventInput) (*EventOutput, error) {
	event, err := s.services.Catalog.CreateEvent(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &EventOutput{Body: mapEventResponse(event)}, nil
}

func (s *Server) handleListEvents(ctx context.Context, input *EventListInput) (*EventListOutput, error) {
	params := store.PaginationParams{Limit: input.Limit, Cursor: input.Cursor}
	params.Validate()

	page, err := s.services.Catalog.ListEvents(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]EventResponse, 0, len(page.Items))
	for _, event := range page.Items {
		items = append(items, mapEventResponse(event))
	}

	return &EventListOutput{Body: EventListResponse{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleGetEvent(ctx context.Context, input *GetEventInput) (*EventOutput, error) {
	event, err := s.services.Catalog.GetEvent(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &EventOutput{Body: mapEventResponse(event)}, nil
}

func (s *Server) handleUpdateEvent(ctx context.Context, input *UpdateEventInput) (*EventOutput, error) {
	event, err := s.services.Catalog.UpdateEvent(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &EventOutput{Body: mapEventResponse(event)}, nil
}

func (s *Server) handleDeleteEvent(ctx context.Context, input *GetEventInput) (*MessageOutput, error) {
	if err := s.services.Catalog.DeleteEvent(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Event deleted"}}, nil
}

// mapEventResponse converts a domain event to an API response.
func mapEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Body:      e.Body,
		ImageURL:  e.ImageURL,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
