package service

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/errors"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewCatalogService(newTestStore(t), logger)
}

func TestAuthorLifecycle(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	author, err := svc.CreateAuthor(ctx, domain.CreateAuthorRequest{Name: "Han Kang"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(author.ID, "aut-"))

	got, err := svc.GetAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Han Kang", got.Name)

	newName := "Kim Young-ha"
	updated, err := svc.UpdateAuthor(ctx, author.ID, domain.UpdateAuthorRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Kim Young-ha", updated.Name)

	require.NoError(t, svc.DeleteAuthor(ctx, author.ID))
	_, err = svc.GetAuthor(ctx, author.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestAuthorValidation(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.CreateAuthor(context.Background(), domain.CreateAuthorRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestPublisherLifecycle(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	publisher, err := svc.CreatePublisher(ctx, domain.CreatePublisherRequest{Name: "Changbi"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publisher.ID, "pub-"))

	require.NoError(t, svc.DeletePublisher(ctx, publisher.ID))
	err = svc.DeletePublisher(ctx, publisher.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestEventWindowValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	starts := time.Now().UTC()
	ends := starts.Add(-time.Hour)
	_, err := svc.CreateEvent(ctx, domain.CreateEventRequest{
		Title:    "Backwards",
		StartsAt: &starts,
		EndsAt:   &ends,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	ends = starts.Add(time.Hour)
	event, err := svc.CreateEvent(ctx, domain.CreateEventRequest{
		Title:    "Sale",
		StartsAt: &starts,
		EndsAt:   &ends,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(event.ID, "evt-"))
}

func TestContentKindValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateContent(ctx, domain.CreateContentRequest{Title: "X", Kind: "bogus"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	content, err := svc.CreateContent(ctx, domain.CreateContentRequest{Title: "Picks", Kind: "curation"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content.ID, "cnt-"))
}
