package ingest

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/metadata/kakao"
	"github.com/bookhive/bookhive-server/internal/metadata/seoji"
)

// SearchClient is the slice of the kakao client the enricher needs.
type SearchClient interface {
	SearchISBN(ctx context.Context, isbn string) (*kakao.Document, error)
}

const enrichCacheSize = 4096

// Enricher turns feed documents into catalog books by matching them
// against the book search API. A feed item that cannot be matched is
// skipped, not written bare: a failed or empty lookup returns
// (nil, nil), as does a document without a usable ISBN. The step
// counts all of these as skipped; none of them fail the run.
type Enricher struct {
	search SearchClient
	cache  *lru.Cache[string, *kakao.Document]
	logger *slog.Logger
}

// NewEnricher creates an enricher backed by the search client.
func NewEnricher(search SearchClient, logger *slog.Logger) (*Enricher, error) {
	cache, err := lru.New[string, *kakao.Document](enrichCacheSize)
	if err != nil {
		return nil, err
	}
	return &Enricher{search: search, cache: cache, logger: logger}, nil
}

// Process converts one feed document into a book.
func (e *Enricher) Process(ctx context.Context, doc seoji.Document) (*domain.Book, error) {
	isbn := domain.PrimaryISBN(doc.ISBN)
	if isbn == "" {
		e.logger.Warn("feed document without isbn skipped", "title", doc.Title)
		return nil, nil
	}

	found, err := e.lookup(ctx, isbn)
	if err != nil {
		e.logger.Warn("isbn lookup failed, skipping item",
			"isbn", isbn,
			"error", err,
		)
		return nil, nil
	}
	if found == nil {
		e.logger.Debug("no search match for isbn, skipping item", "isbn", isbn)
		return nil, nil
	}

	now := time.Now().UTC()
	book := &domain.Book{
		ISBN:      isbn,
		ISBNRaw:   strings.TrimSpace(doc.ISBN),
		Title:     doc.Title,
		Author:    doc.Author,
		Publisher: doc.Publisher,
		ImageURL:  doc.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if price, err := strconv.ParseInt(strings.TrimSpace(doc.PrePrice), 10, 64); err == nil {
		book.Price = price
	}
	if doc.PublishPredate != "" {
		if t, err := time.ParseInLocation(seoji.DateLayout, doc.PublishPredate, time.UTC); err == nil {
			book.PublishedAt = &t
		}
	}

	ApplySearchDocument(book, found)
	return book, nil
}

// lookup resolves an ISBN against the search API through the cache.
// A nil document with a nil error means zero matches; that answer is
// cached too. Errors are not cached.
func (e *Enricher) lookup(ctx context.Context, isbn string) (*kakao.Document, error) {
	if doc, ok := e.cache.Get(isbn); ok {
		return doc, nil
	}
	doc, err := e.search.SearchISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	e.cache.Add(isbn, doc)
	return doc, nil
}

// ApplySearchDocument copies search API fields onto a book, filling
// only what the book does not already have.
func ApplySearchDocument(book *domain.Book, doc *kakao.Document) {
	if book.Title == "" {
		book.Title = doc.Title
	}
	if book.Author == "" && len(doc.Authors) > 0 {
		book.Author = strings.Join(doc.Authors, ", ")
	}
	if book.Translator == "" && len(doc.Translator) > 0 {
		book.Translator = strings.Join(doc.Translator, ", ")
	}
	if book.Publisher == "" {
		book.Publisher = doc.Publisher
	}
	if book.Description == "" {
		book.Description = doc.Contents
	}
	if book.URL == "" {
		book.URL = doc.URL
	}
	if book.ImageURL == "" {
		book.ImageURL = doc.Thumbnail
	}
	if book.Price == 0 {
		book.Price = doc.Price
	}
	if book.SalePrice == 0 {
		book.SalePrice = doc.SalePrice
	}
	if book.Status == "" {
		book.Status = doc.Status
	}
	if book.PublishedAt == nil && !doc.Datetime.IsZero() {
		// The API reports local midnight with a zone offset. Keep the
		// wall-clock date rather than shifting it through UTC.
		d := doc.Datetime
		pub := time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), 0, time.UTC)
		book.PublishedAt = &pub
	}
}
