package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookhive/bookhive-server/internal/domain"
)

const publisherColumns = `id, name, created_at, updated_at`

func scanPublisher(scanner interface{ Scan(dest ...any) error }) (*domain.Publisher, error) {
	var p domain.Publisher

	var createdAt, updatedAt string

	err := scanner.Scan(&p.ID, &p.Name, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePublisher inserts a new publisher.
// Returns ErrAlreadyExists if the publisher ID already exists.
func (s *Store) CreatePublisher(ctx context.Context, p *domain.Publisher) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO publishers (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		p.ID,
		p.Name,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPublisher retrieves a publisher by ID.
// Returns ErrNotFound if the publisher does not exist.
func (s *Store) GetPublisher(ctx context.Context, id string) (*domain.Publisher, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+publisherColumns+` FROM publishers WHERE id = ?`, id)

	p, err := scanPublisher(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPublishers returns publishers ordered by ID using cursor pagination.
func (s *Store) ListPublishers(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Publisher], error) {
	params.Validate()

	after, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+publisherColumns+` FROM publishers WHERE id > ? ORDER BY id ASC LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var publishers []*domain.Publisher
	for rows.Next() {
		p, err := scanPublisher(rows)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &PaginatedResult[*domain.Publisher]{Items: publishers}
	if len(publishers) > params.Limit {
		result.Items = publishers[:params.Limit]
		result.HasMore = true
		result.NextCursor = EncodeCursor(result.Items[params.Limit-1].ID)
	}
	return result, nil
}

// UpdatePublisher performs a full row update on an existing publisher.
// Returns ErrNotFound if the publisher does not exist.
func (s *Store) UpdatePublisher(ctx context.Context, p *domain.Publisher) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE publishers SET name = ?, updated_at = ?
		WHERE id = ?`,
		p.Name,
		formatTime(p.UpdatedAt),
		p.ID,
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

// DeletePublisher removes a publisher by ID.
// Returns ErrNotFound if the publisher does not exist.
func (s *Store) DeletePublisher(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM publishers WHERE id = ?`, id)
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
