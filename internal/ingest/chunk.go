package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookhive/bookhive-server/internal/domain"
)

// ErrEndOfData is returned by a Reader's Next when the stream is
// exhausted.
var ErrEndOfData = errors.New("ingest: end of data")

// Reader streams items from a source. Open restores position from the
// execution context; Next returns ErrEndOfData when exhausted.
type Reader[T any] interface {
	Open(ctx context.Context, ec *ExecutionContext) error
	Next(ctx context.Context) (T, error)
	Close(ctx context.Context) error
}

// Checkpointer is implemented by readers that can save their position
// into the execution context before each chunk commit.
type Checkpointer interface {
	SaveTo(ec *ExecutionContext)
}

// Processor turns a source item into a catalog book. Returning
// (nil, nil) filters the item out of the chunk; it is counted as
// skipped.
type Processor[T any] interface {
	Process(ctx context.Context, item T) (*domain.Book, error)
}

// Writer commits a chunk of books together with the step's checkpoint
// snapshot. It returns how many books were written and how many were
// skipped as duplicates.
type Writer interface {
	Write(ctx context.Context, books []*domain.Book, checkpoint map[string]string) (written, skipped int64, err error)
}

// Stats are the counters accumulated by a step execution. Read doubles
// as the documents-fetched counter for readers whose Next returns one
// fetched document at a time.
type Stats struct {
	Read         int64
	Written      int64
	Skipped      int64
	LogsConsumed int64
}

// LogCounter is implemented by readers that replay an outer log stream
// and report how many entries they consumed.
type LogCounter interface {
	LogsConsumed() int64
}

// Step wires a reader, processor, and writer into a chunk-oriented
// loop: read up to ChunkSize items, process them, commit the survivors
// and the checkpoint in one transaction, repeat until the reader is
// exhausted.
type Step[T any] struct {
	Name      string
	Reader    Reader[T]
	Processor Processor[T]
	Writer    Writer
	ChunkSize int
	Logger    *slog.Logger
}

// Run executes the step to completion. Any reader, processor, or
// writer failure aborts the step; progress up to the last committed
// chunk survives in the checkpoint.
func (s *Step[T]) Run(ctx context.Context, ec *ExecutionContext) (stats Stats, err error) {
	defer func() {
		if lc, ok := s.Reader.(LogCounter); ok {
			stats.LogsConsumed = lc.LogsConsumed()
		}
	}()

	chunkSize := s.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 100
	}

	if err := s.Reader.Open(ctx, ec); err != nil {
		return stats, fmt.Errorf("open reader: %w", err)
	}
	defer s.Reader.Close(ctx)

	done := false
	for !done {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		books := make([]*domain.Book, 0, chunkSize)
		itemsInChunk := 0

		for itemsInChunk < chunkSize {
			item, err := s.Reader.Next(ctx)
			if errors.Is(err, ErrEndOfData) {
				done = true
				break
			}
			if err != nil {
				return stats, fmt.Errorf("read item: %w", err)
			}

			stats.Read++
			itemsInChunk++

			book, err := s.Processor.Process(ctx, item)
			if err != nil {
				return stats, fmt.Errorf("process item: %w", err)
			}
			if book == nil {
				stats.Skipped++
				continue
			}
			books = append(books, book)
		}

		if itemsInChunk == 0 && done {
			break
		}

		// Save the reader's position so a restart resumes after this
		// chunk, not before it.
		if cp, ok := s.Reader.(Checkpointer); ok {
			cp.SaveTo(ec)
		}

		written, skipped, err := s.Writer.Write(ctx, books, ec.Snapshot())
		if err != nil {
			return stats, fmt.Errorf("write chunk: %w", err)
		}
		stats.Written += written
		stats.Skipped += skipped

		s.Logger.Debug("chunk committed",
			"step", s.Name,
			"read", stats.Read,
			"written", stats.Written,
			"skipped", stats.Skipped,
		)
	}

	return stats, nil
}
