package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookhive/bookhive-server/internal/domain"
)

const contentColumns = `id, title, body, kind, created_at, updated_at`

func scanContent(scanner interface{ Scan(dest ...any) error }) (*domain.Content, error) {
	var c domain.Content

	var (
		body      sql.NullString
		kind      sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(&c.ID, &c.Title, &body, &kind, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if body.Valid {
		c.Body = body.String
	}
	if kind.Valid {
		c.Kind = kind.String
	}

	return &c, nil
}

// CreateContent inserts a new content entry.
// Returns ErrAlreadyExists if the content ID already exists.
func (s *Store) CreateContent(ctx context.Context, c *domain.Content) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contents (id, title, body, kind, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Title,
		nullString(c.Body),
		nullString(c.Kind),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetContent retrieves a content entry by ID.
// Returns ErrNotFound if the content does not exist.
func (s *Store) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE id = ?`, id)

	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListContents returns content entries ordered by ID using cursor pagination.
func (s *Store) ListContents(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Content], error) {
	params.Validate()

	after, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE id > ? ORDER BY id ASC LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []*domain.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &PaginatedResult[*domain.Content]{Items: contents}
	if len(contents) > params.Limit {
		result.Items = contents[:params.Limit]
		result.HasMore = true
		result.NextCursor = EncodeCursor(result.Items[params.Limit-1].ID)
	}
	return result, nil
}

// UpdateContent performs a full row update on an existing content entry.
// Returns ErrNotFound if the content does not exist.
func (s *Store) UpdateContent(ctx context.Context, c *domain.Content) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE contents SET title = ?, body = ?, kind = ?, updated_at = ?
		WHERE id = ?`,
		c.Title,
		nullString(c.Body),
		nullString(c.Kind),
		formatTime(c.UpdatedAt),
		c.ID,
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

// DeleteContent removes a content entry by ID.
// Returns ErrNotFound if the content does not exist.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contents WHERE id = ?`, id)
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
