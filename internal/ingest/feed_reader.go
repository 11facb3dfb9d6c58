package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhive/bookhive-server/internal/metadata/seoji"
)

// FeedClient is the slice of the seoji client the feed reader needs.
type FeedClient interface {
	ListByDate(ctx context.Context, date time.Time, page, pageSize int) (*seoji.Page, error)
}

// FeedReader streams bibliographic records for one target date from
// the feed, page by page. Feed failures are fatal to the step: the
// feed is the source of record and a partial day must not look
// complete.
type FeedReader struct {
	client   FeedClient
	date     time.Time
	pageSize int
	logger   *slog.Logger

	page       int // Next page to fetch, 1-based
	totalCount int
	buffer     []seoji.Document
	bufferPos  int
	exhausted  bool
}

// NewFeedReader creates a reader over the feed for the given date.
func NewFeedReader(client FeedClient, date time.Time, pageSize int, logger *slog.Logger) *FeedReader {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &FeedReader{
		client:   client,
		date:     date,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Open restores the page cursor from the execution context.
func (r *FeedReader) Open(_ context.Context, ec *ExecutionContext) error {
	r.page = ec.GetInt("page", 1)
	return nil
}

// Next returns the next feed document, fetching pages as needed. An
// empty intermediate page is re-fetched; only the reported total count
// ends the stream. Returns ErrEndOfData once the last page is served.
func (r *FeedReader) Next(ctx context.Context) (seoji.Document, error) {
	for r.bufferPos >= len(r.buffer) {
		if r.exhausted {
			return seoji.Document{}, ErrEndOfData
		}
		if err := r.fetchPage(ctx); err != nil {
			return seoji.Document{}, err
		}
	}

	doc := r.buffer[r.bufferPos]
	r.bufferPos++
	return doc, nil
}

func (r *FeedReader) fetchPage(ctx context.Context) error {
	requested := r.page
	page, err := r.client.ListByDate(ctx, r.date, requested, r.pageSize)
	if err != nil {
		return err
	}

	r.totalCount = page.TotalCount

	// Trust the server's page number when present; otherwise assume it
	// served the page we asked for.
	servedPage := page.PageNo
	if servedPage <= 0 {
		servedPage = requested
	}
	r.page = servedPage + 1

	r.buffer = page.Documents
	r.bufferPos = 0

	// The last page is the one the total count says it is, not the
	// first short or empty one.
	maxPage := (page.TotalCount + r.pageSize - 1) / r.pageSize
	if maxPage <= servedPage {
		r.exhausted = true
	}

	r.logger.Debug("feed page fetched",
		"date", r.date.Format(seoji.DateLayout),
		"page", servedPage,
		"docs", len(page.Documents),
		"total", page.TotalCount,
	)
	return nil
}

// Close releases the reader. The feed client is shared and stays open.
func (r *FeedReader) Close(context.Context) error {
	return nil
}

// SaveTo records the next page to fetch so a restart resumes there.
func (r *FeedReader) SaveTo(ec *ExecutionContext) {
	// Unconsumed buffered items belong to the saved page; re-fetching
	// them is safe because the writer deduplicates.
	if r.bufferPos < len(r.buffer) {
		ec.PutInt("page", r.page-1)
	} else {
		ec.PutInt("page", r.page)
	}
}
