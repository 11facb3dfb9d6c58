package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/metadata/kakao"
)

// KeywordProcessor turns search API documents from the keyword replay
// into catalog books. No further lookup is needed; the document is
// already the enriched record.
//
// Process returns (nil, nil) for documents without a usable ISBN.
type KeywordProcessor struct {
	logger *slog.Logger
}

// NewKeywordProcessor creates a keyword processor.
func NewKeywordProcessor(logger *slog.Logger) *KeywordProcessor {
	return &KeywordProcessor{logger: logger}
}

// Process converts one search document into a book.
func (p *KeywordProcessor) Process(_ context.Context, doc kakao.Document) (*domain.Book, error) {
	isbn := domain.PrimaryISBN(doc.ISBN)
	if isbn == "" {
		p.logger.Warn("search document without isbn skipped", "title", doc.Title)
		return nil, nil
	}

	now := time.Now().UTC()
	book := &domain.Book{
		ISBN:      isbn,
		ISBNRaw:   strings.TrimSpace(doc.ISBN),
		CreatedAt: now,
		UpdatedAt: now,
	}
	ApplySearchDocument(book, &doc)
	return book, nil
}
