package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/errors"
	"github.com/bookhive/bookhive-server/internal/id"
	"github.com/bookhive/bookhive-server/internal/store"
	"github.com/bookhive/bookhive-server/internal/validation"
)

// CatalogService orchestrates author, publisher, event, and content
// operations.
type CatalogService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// Authors

// CreateAuthor creates a new author.
func (s *CatalogService) CreateAuthor(ctx context.Context, req domain.CreateAuthorRequest) (*domain.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	authorID, err := id.Generate("aut")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate author id")
	}

	now := time.Now().UTC()
	author := &domain.Author{
		ID:          authorID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateAuthor(ctx, author); err != nil {
		return nil, mapStoreErr(err, "author not found", "author already exists")
	}

	s.logger.Info("author created", "id", authorID, "name", req.Name)
	return author, nil
}

// GetAuthor returns a single author.
func (s *CatalogService) GetAuthor(ctx context.Context, authorID string) (*domain.Author, error) {
	author, err := s.store.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, mapStoreErr(err, "author not found", "")
	}
	return author, nil
}

// ListAuthors returns a page of authors.
func (s *CatalogService) ListAuthors(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Author], error) {
	return s.store.ListAuthors(ctx, params)
}

// UpdateAuthor applies a partial update to an author.
func (s *CatalogService) UpdateAuthor(ctx context.Context, authorID string, req domain.UpdateAuthorRequest) (*domain.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	author, err := s.store.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, mapStoreErr(err, "author not found", "")
	}

	if req.Name != nil {
		author.Name = *req.Name
	}
	if req.Description != nil {
		author.Description = *req.Description
	}
	author.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateAuthor(ctx, author); err != nil {
		return nil, mapStoreErr(err, "author not found", "")
	}
	return author, nil
}

// DeleteAuthor removes an author.
func (s *CatalogService) DeleteAuthor(ctx context.Context, authorID string) error {
	if err := s.store.DeleteAuthor(ctx, authorID); err != nil {
		return mapStoreErr(err, "author not found", "")
	}
	return nil
}

// Publishers

// CreatePublisher creates a new publisher.
func (s *CatalogService) CreatePublisher(ctx context.Context, req domain.CreatePublisherRequest) (*domain.Publisher, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	publisherID, err := id.Generate("pub")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate publisher id")
	}

	now := time.Now().UTC()
	publisher := &domain.Publisher{
		ID:        publisherID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreatePublisher(ctx, publisher); err != nil {
		return nil, mapStoreErr(err, "publisher not found", "publisher already exists")
	}

	s.logger.Info("publisher created", "id", publisherID, "name", req.Name)
	return publisher, nil
}

// GetPublisher returns a single publisher.
func (s *CatalogService) GetPublisher(ctx context.Context, publisherID string) (*domain.Publisher, error) {
	publisher, err := s.store.GetPublisher(ctx, publisherID)
	if err != nil {
		return nil, mapStoreErr(err, "publisher not found", "")
	}
	return publisher, nil
}

// ListPublishers returns a page of publishers.
func (s *CatalogService) ListPublishers(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Publisher], error) {
	return s.store.ListPublishers(ctx, params)
}

// UpdatePublisher applies a partial update to a publisher.
func (s *CatalogService) UpdatePublisher(ctx context.Context, publisherID string, req domain.UpdatePublisherRequest) (*domain.Publisher, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	publisher, err := s.store.GetPublisher(ctx, publisherID)
	if err != nil {
		return nil, mapStoreErr(err, "publisher not found", "")
	}

	if req.Name != nil {
		publisher.Name = *req.Name
	}
	publisher.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePublisher(ctx, publisher); err != nil {
		return nil, mapStoreErr(err, "publisher not found", "")
	}
	return publisher, nil
}

// DeletePublisher removes a publisher.
func (s *CatalogService) DeletePublisher(ctx context.Context, publisherID string) error {
	if err := s.store.DeletePublisher(ctx, publisherID); err != nil {
		return mapStoreErr(err, "publisher not found", "")
	}
	return nil
}

// Events

// CreateEvent creates a new event.
func (s *CatalogService) CreateEvent(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, errors.Validation("event cannot end before it starts")
	}

	eventID, err := id.Generate("evt")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate event id")
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:        eventID,
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, mapStoreErr(err, "event not found", "event already exists")
	}

	s.logger.Info("event created", "id", eventID, "title", req.Title)
	return event, nil
}

// GetEvent returns a single event.
func (s *CatalogService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, mapStoreErr(err, "event not found", "")
	}
	return event, nil
}

// ListEvents returns a page of events.
func (s *CatalogService) ListEvents(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Event], error) {
	return s.store.ListEvents(ctx, params)
}

// UpdateEvent applies a partial update to an event.
func (s *CatalogService) UpdateEvent(ctx context.Context, eventID string, req domain.UpdateEventRequest) (*domain.Event, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, mapStoreErr(err, "event not found", "")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Body != nil {
		event.Body = *req.Body
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.StartsAt != nil {
		event.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}
	if event.StartsAt != nil && event.EndsAt != nil && event.EndsAt.Before(*event.StartsAt) {
		return nil, errors.Validation("event cannot end before it starts")
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, mapStoreErr(err, "event not found", "")
	}
	return event, nil
}

// DeleteEvent removes an event.
func (s *CatalogService) DeleteEvent(ctx context.Context, eventID string) error {
	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return mapStoreErr(err, "event not found", "")
	}
	return nil
}

// Contents

// CreateContent creates a new content entry.
func (s *CatalogService) CreateContent(ctx context.Context, req domain.CreateContentRequest) (*domain.Content, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	contentID, err := id.Generate("cnt")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate content id")
	}

	now := time.Now().UTC()
	content := &domain.Content{
		ID:        contentID,
		Title:     req.Title,
		Body:      req.Body,
		Kind:      req.Kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateContent(ctx, content); err != nil {
		return nil, mapStoreErr(err, "content not found", "content already exists")
	}

	s.logger.Info("content created", "id", contentID, "title", req.Title)
	return content, nil
}

// GetContent returns a single content entry.
func (s *CatalogService) GetContent(ctx context.Context, contentID string) (*domain.Content, error) {
	content, err := s.store.GetContent(ctx, contentID)
	if err != nil {
		return nil, mapStoreErr(err, "content not found", "")
	}
	return content, nil
}

// ListContents returns a page of content entries.
func (s *CatalogService) ListContents(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Content], error) {
	return s.store.ListContents(ctx, params)
}

// UpdateContent applies a partial update to a content entry.
func (s *CatalogService) UpdateContent(ctx context.Context, contentID string, req domain.UpdateContentRequest) (*domain.Content, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	content, err := s.store.GetContent(ctx, contentID)
	if err != nil {
		return nil, mapStoreErr(err, "content not found", "")
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Body != nil {
		content.Body = *req.Body
	}
	if req.Kind != nil {
		content.Kind = *req.Kind
	}
	content.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateContent(ctx, content); err != nil {
		return nil, mapStoreErr(err, "content not found", "")
	}
	return content, nil
}

// DeleteContent removes a content entry.
func (s *CatalogService) DeleteContent(ctx context.Context, contentID string) error {
	if err := s.store.DeleteContent(ctx, contentID); err != nil {
		return mapStoreErr(err, "content not found", "")
	}
	return nil
}
