package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookhive/bookhive-server/internal/domain"
)

// authorColumns is the ordered list of columns selected in author queries.
// Must match the scan order in scanAuthor.
const authorColumns = `id, name, description, created_at, updated_at`

// scanAuthor scans a sql.Row (or sql.Rows via its Scan method) into a domain.Author.
func scanAuthor(scanner interface{ Scan(dest ...any) error }) (*domain.Author, error) {
	var a domain.Author

	var (
		description sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(&a.ID, &a.Name, &description, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		a.Description = description.String
	}

	return &a, nil
}

// CreateAuthor inserts a new author.
// Returns ErrAlreadyExists if the author ID already exists.
func (s *Store) CreateAuthor(ctx context.Context, a *domain.Author) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO authors (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID,
		a.Name,
		nullString(a.Description),
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetAuthor retrieves an author by ID.
// Returns ErrNotFound if the author does not exist.
func (s *Store) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE id = ?`, id)

	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAuthors returns authors ordered by ID using cursor pagination.
func (s *Store) ListAuthors(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Author], error) {
	params.Validate()

	after, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE id > ? ORDER BY id ASC LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*domain.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &PaginatedResult[*domain.Author]{Items: authors}
	if len(authors) > params.Limit {
		result.Items = authors[:params.Limit]
		result.HasMore = true
		result.NextCursor = EncodeCursor(result.Items[params.Limit-1].ID)
	}
	return result, nil
}

// UpdateAuthor performs a full row update on an existing author.
// Returns ErrNotFound if the author does not exist.
func (s *Store) UpdateAuthor(ctx context.Context, a *domain.Author) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE authors SET name = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		a.Name,
		nullString(a.Description),
		formatTime(a.UpdatedAt),
		a.ID,
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

// DeleteAuthor removes an author by ID.
// Returns ErrNotFound if the author does not exist.
func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
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
