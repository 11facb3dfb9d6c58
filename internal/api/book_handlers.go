package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/store"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Create book",
		Description: "Creates a catalog entry. The primary ISBN is the first whitespace-separated token of the submitted ISBN.",
		Tags:        []string{"Books"},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns a cursor-paginated list of books ordered by ISBN",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{isbn}",
		Summary:     "Get book",
		Description: "Returns a single book by primary ISBN",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{isbn}",
		Summary:     "Update book",
		Description: "Applies a partial update to a book",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{isbn}",
		Summary:     "Delete book",
		Description: "Removes a book from the catalog",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)
}

// BookResponse contains book data in API responses.
type BookResponse struct {
	ISBN        string     `json:"isbn" doc:"Primary ISBN, the catalog key"`
	ISBNRaw     string     `json:"isbn_raw,omitempty" doc:"ISBN string as received from the source"`
	Title       string     `json:"title" doc:"Book title"`
	Author      string     `json:"author,omitempty" doc:"Author display string"`
	Translator  string     `json:"translator,omitempty" doc:"Translator display string"`
	Publisher   string     `json:"publisher,omitempty" doc:"Publisher name"`
	Price       int64      `json:"price" doc:"List price in KRW"`
	SalePrice   int64      `json:"sale_price,omitempty" doc:"Sale price in KRW"`
	Status      string     `json:"status,omitempty" doc:"Sale status"`
	URL         string     `json:"url,omitempty" doc:"Detail page URL"`
	ImageURL    string     `json:"image_url,omitempty" doc:"Cover image URL"`
	Description string     `json:"description,omitempty" doc:"Book description"`
	PublishedAt *time.Time `json:"published_at,omitempty" doc:"Publication date"`
	CreatedAt   time.Time  `json:"created_at" doc:"When the entry was created"`
	UpdatedAt   time.Time  `json:"updated_at" doc:"When the entry was last updated"`
}

// BookListResponse is a page of books.
type BookListResponse struct {
	Items      []BookResponse `json:"items" doc:"Books in this page"`
	NextCursor string         `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool           `json:"has_more" doc:"Whether more pages exist"`
}

// CreateBookInput is the request to create a book.
type CreateBookInput struct {
	Body domain.CreateBookRequest
}

// BookOutput wraps a single book response.
type BookOutput struct {
	Body BookResponse
}

// BookListInput carries pagination parameters for listing books.
type BookListInput struct {
	Limit  int    `query:"limit" doc:"Maximum items per page (default 100, max 1000)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// BookListOutput wraps a page of books.
type BookListOutput struct {
	Body BookListResponse
}

// GetBookInput identifies a book by primary ISBN.
type GetBookInput struct {
	ISBN string `path:"isbn" doc:"Primary ISBN"`
}

// UpdateBookInput is the request to update a book.
type UpdateBookInput struct {
	ISBN string `path:"isbn" doc:"Primary ISBN"`
	Body domain.UpdateBookRequest
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.CreateBook(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleListBooks(ctx context.Context, input *BookListInput) (*BookListOutput, error) {
	params := store.PaginationParams{Limit: input.Limit, Cursor: input.Cursor}
	params.Validate()

	page, err := s.services.Book.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]BookResponse, 0, len(page.Items))
	for _, book := range page.Items {
		items = append(items, mapBookResponse(book))
	}

	return &BookListOutput{Body: BookListResponse{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ISBN)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.UpdateBook(ctx, input.ISBN, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *GetBookInput) (*MessageOutput, error) {
	if err := s.services.Book.DeleteBook(ctx, input.ISBN); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}

// mapBookResponse converts a domain book to an API response.
func mapBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ISBN:        b.ISBN,
		ISBNRaw:     b.ISBNRaw,
		Title:       b.Title,
		Author:      b.Author,
		Translator:  b.Translator,
		Publisher:   b.Publisher,
		Price:       b.Price,
		SalePrice:   b.SalePrice,
		Status:      b.Status,
		URL:         b.URL,
		ImageURL:    b.ImageURL,
		Description: b.Description,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
