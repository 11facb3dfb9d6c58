package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/store"
	"github.com/bookhive/bookhive-server/internal/validation"
)

// BookService orchestrates book operations.
type BookService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateBook creates a book from a manual catalog entry.
func (s *BookService) CreateBook(ctx context.Context, req domain.CreateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &domain.Book{
		ISBN:        domain.PrimaryISBN(req.ISBN),
		ISBNRaw:     req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		Translator:  req.Translator,
		Publisher:   req.Publisher,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Status:      req.Status,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		PublishedAt: req.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, mapStoreErr(err, "book not found", "book already exists")
	}

	s.logger.Info("book created", "isbn", book.ISBN, "title", book.Title)
	return book, nil
}

// GetBook returns a single book by primary ISBN.
func (s *BookService) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, isbn)
	if err != nil {
		return nil, mapStoreErr(err, "book not found", "")
	}
	return book, nil
}

// ListBooks returns a page of books.
func (s *BookService) ListBooks(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Book], error) {
	return s.store.ListBooks(ctx, params)
}

// UpdateBook applies a partial update to a book.
func (s *BookService) UpdateBook(ctx context.Context, isbn string, req domain.UpdateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, isbn)
	if err != nil {
		return nil, mapStoreErr(err, "book not found", "")
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Translator != nil {
		book.Translator = *req.Translator
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.SalePrice != nil {
		book.SalePrice = *req.SalePrice
	}
	if req.Status != nil {
		book.Status = *req.Status
	}
	if req.URL != nil {
		book.URL = *req.URL
	}
	if req.ImageURL != nil {
		book.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.PublishedAt != nil {
		book.PublishedAt = req.PublishedAt
	}
	book.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, mapStoreErr(err, "book not found", "")
	}

	s.logger.Info("book updated", "isbn", isbn)
	return book, nil
}

// DeleteBook removes a book from the catalog.
func (s *BookService) DeleteBook(ctx context.Context, isbn string) error {
	if err := s.store.DeleteBook(ctx, isbn); err != nil {
		return mapStoreErr(err, "book not found", "")
	}
	s.logger.Info("book deleted", "isbn", isbn)
	return nil
}
