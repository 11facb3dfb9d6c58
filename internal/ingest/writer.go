package ingest

import (
	"context"
	"log/slog"

	"github.com/bookhive/bookhive-server/internal/domain"
)

// ChunkStore is the slice of the store the writer needs.
type ChunkStore interface {
	ExistingISBNs(ctx context.Context, isbns []string) (map[string]bool, error)
	CommitChunk(ctx context.Context, books []*domain.Book, jobName string, checkpoint map[string]string) (int64, error)
}

// BookWriter commits chunks of books, skipping ISBNs that already
// exist in the catalog or appear twice within the chunk. Books and
// checkpoint land in one transaction, so a restart never replays a
// committed chunk.
type BookWriter struct {
	store   ChunkStore
	jobName string
	logger  *slog.Logger
}

// NewBookWriter creates a writer that commits under the given job name.
func NewBookWriter(store ChunkStore, jobName string, logger *slog.Logger) *BookWriter {
	return &BookWriter{store: store, jobName: jobName, logger: logger}
}

// Write commits one chunk.
func (w *BookWriter) Write(ctx context.Context, books []*domain.Book, checkpoint map[string]string) (written, skipped int64, err error) {
	isbns := make([]string, 0, len(books))
	for _, b := range books {
		isbns = append(isbns, b.ISBN)
	}

	existing, err := w.store.ExistingISBNs(ctx, isbns)
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[string]bool, len(books))
	fresh := make([]*domain.Book, 0, len(books))
	for _, b := range books {
		if existing[b.ISBN] || seen[b.ISBN] {
			skipped++
			continue
		}
		seen[b.ISBN] = true
		fresh = append(fresh, b)
	}

	// INSERT OR IGNORE inside CommitChunk catches rows created between
	// the existence check and the commit.
	written, err = w.store.CommitChunk(ctx, fresh, w.jobName, checkpoint)
	if err != nil {
		return 0, 0, err
	}
	skipped += int64(len(fresh)) - written

	w.logger.Debug("chunk written",
		"job", w.jobName,
		"written", written,
		"skipped", skipped,
	)
	return written, skipped, nil
}
