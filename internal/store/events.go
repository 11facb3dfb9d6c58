package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookhive/bookhive-server/internal/domain"
)

const eventColumns = `id, title, body, image_url, starts_at, ends_at, created_at, updated_at`

func scanEvent(scanner interface{ Scan(dest ...any) error }) (*domain.Event, error) {
	var e domain.Event

	var (
		body      sql.NullString
		imageURL  sql.NullString
		startsAt  sql.NullString
		endsAt    sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(&e.ID, &e.Title, &body, &imageURL, &startsAt, &endsAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	e.StartsAt, err = parseNullableTime(startsAt)
	if err != nil {
		return nil, err
	}
	e.EndsAt, err = parseNullableTime(endsAt)
	if err != nil {
		return nil, err
	}

	if body.Valid {
		e.Body = body.String
	}
	if imageURL.Valid {
		e.ImageURL = imageURL.String
	}

	return &e, nil
}

// CreateEvent inserts a new event.
// Returns ErrAlreadyExists if the event ID already exists.
func (s *Store) CreateEvent(ctx context.Context, e *domain.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, body, image_url, starts_at, ends_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Title,
		nullString(e.Body),
		nullString(e.ImageURL),
		nullTimeString(e.StartsAt),
		nullTimeString(e.EndsAt),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetEvent retrieves an event by ID.
// Returns ErrNotFound if the event does not exist.
func (s *Store) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEvents returns events ordered by ID using cursor pagination.
func (s *Store) ListEvents(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Event], error) {
	params.Validate()

	after, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id > ? ORDER BY id ASC LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &PaginatedResult[*domain.Event]{Items: events}
	if len(events) > params.Limit {
		result.Items = events[:params.Limit]
		result.HasMore = true
		result.NextCursor = EncodeCursor(result.Items[params.Limit-1].ID)
	}
	return result, nil
}

// UpdateEvent performs a full row update on an existing event.
// Returns ErrNotFound if the event does not exist.
func (s *Store) UpdateEvent(ctx context.Context, e *domain.Event) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE events SET
			title = ?,
			body = ?,
			image_url = ?,
			starts_at = ?,
			ends_at = ?,
			updated_at = ?
		WHERE id = ?`,
		e.Title,
		nullString(e.Body),
		nullString(e.ImageURL),
		nullTimeString(e.StartsAt),
		nullTimeString(e.EndsAt),
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event by ID.
// Returns ErrNotFound if the event does not exist.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
