package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/errors"
	"github.com/bookhive/bookhive-server/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := store.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newBookService(t *testing.T) *BookService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewBookService(newTestStore(t), logger)
}

func TestBookServiceCreateAndGet(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, domain.CreateBookRequest{
		ISBN:  "9788936434120 9788936434121",
		Title: "The Vegetarian",
		Price: 15000,
	})
	require.NoError(t, err)
	assert.Equal(t, "9788936434120", book.ISBN, "primary isbn is the first token")
	assert.Equal(t, "9788936434120 9788936434121", book.ISBNRaw)

	got, err := svc.GetBook(ctx, "9788936434120")
	require.NoError(t, err)
	assert.Equal(t, "The Vegetarian", got.Title)
}

func TestBookServiceValidation(t *testing.T) {
	svc := newBookService(t)

	_, err := svc.CreateBook(context.Background(), domain.CreateBookRequest{Title: "No ISBN"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestBookServiceDuplicate(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	req := domain.CreateBookRequest{ISBN: "9788936434120", Title: "X"}
	_, err := svc.CreateBook(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestBookServiceGetNotFound(t *testing.T) {
	svc := newBookService(t)

	_, err := svc.GetBook(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestBookServiceUpdate(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, domain.CreateBookRequest{ISBN: "9788936434120", Title: "Old"})
	require.NoError(t, err)

	newTitle := "New"
	newPrice := int64(20000)
	updated, err := svc.UpdateBook(ctx, "9788936434120", domain.UpdateBookRequest{
		Title: &newTitle,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, int64(20000), updated.Price)
}

func TestBookServiceDelete(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, domain.CreateBookRequest{ISBN: "9788936434120", Title: "X"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, "9788936434120"))

	err = svc.DeleteBook(ctx, "9788936434120")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestBookServiceList(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	for _, isbn := range []string{"1000000000001", "1000000000002"} {
		_, err := svc.CreateBook(ctx, domain.CreateBookRequest{ISBN: isbn, Title: "Book " + isbn})
		require.NoError(t, err)
	}

	page, err := svc.ListBooks(ctx, store.PaginationParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasMore)
}
