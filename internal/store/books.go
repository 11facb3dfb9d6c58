package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `isbn, isbn_raw, title, author, translator, publisher, price,
	sale_price, status, url, image_url, description, published_at, created_at, updated_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		isbnRaw     sql.NullString
		author      sql.NullString
		translator  sql.NullString
		publisher   sql.NullString
		status      sql.NullString
		url         sql.NullString
		imageURL    sql.NullString
		description sql.NullString
		publishedAt sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&b.ISBN,
		&isbnRaw,
		&b.Title,
		&author,
		&translator,
		&publisher,
		&b.Price,
		&b.SalePrice,
		&status,
		&url,
		&imageURL,
		&description,
		&publishedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	b.PublishedAt, err = parseNullableTime(publishedAt)
	if err != nil {
		return nil, err
	}

	// Optional string fields.
	if isbnRaw.Valid {
		b.ISBNRaw = isbnRaw.String
	}
	if author.Valid {
		b.Author = author.String
	}
	if translator.Valid {
		b.Translator = translator.String
	}
	if publisher.Valid {
		b.Publisher = publisher.String
	}
	if status.Valid {
		b.Status = status.String
	}
	if url.Valid {
		b.URL = url.String
	}
	if imageURL.Valid {
		b.ImageURL = imageURL.String
	}
	if description.Valid {
		b.Description = description.String
	}

	return &b, nil
}

// CreateBook inserts a new book.
// Returns ErrAlreadyExists if a book with the same ISBN exists.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			isbn, isbn_raw, title, author, translator, publisher, price,
			sale_price, status, url, image_url, description, published_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ISBN,
		nullString(b.ISBNRaw),
		b.Title,
		nullString(b.Author),
		nullString(b.Translator),
		nullString(b.Publisher),
		b.Price,
		b.SalePrice,
		nullString(b.Status),
		nullString(b.URL),
		nullString(b.ImageURL),
		nullString(b.Description),
		nullTimeString(b.PublishedAt),
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBook retrieves a book by its primary ISBN.
// Returns ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE isbn = ?`, isbn)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns books ordered by ISBN using cursor pagination.
func (s *Store) ListBooks(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Book], error) {
	params.Validate()

	after, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE isbn > ? ORDER BY isbn ASC LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &PaginatedResult[*domain.Book]{Items: books}
	if len(books) > params.Limit {
		result.Items = books[:params.Limit]
		result.HasMore = true
		result.NextCursor = EncodeCursor(result.Items[params.Limit-1].ISBN)
	}
	return result, nil
}

// UpdateBook performs a full row update on an existing book.
// Returns ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			isbn_raw = ?,
			title = ?,
			author = ?,
			translator = ?,
			publisher = ?,
			price = ?,
			sale_price = ?,
			status = ?,
			url = ?,
			image_url = ?,
			description = ?,
			published_at = ?,
			updated_at = ?
		WHERE isbn = ?`,
		nullString(b.ISBNRaw),
		b.Title,
		nullString(b.Author),
		nullString(b.Translator),
		nullString(b.Publisher),
		b.Price,
		b.SalePrice,
		nullString(b.Status),
		nullString(b.URL),
		nullString(b.ImageURL),
		nullString(b.Description),
		nullTimeString(b.PublishedAt),
		formatTime(b.UpdatedAt),
		b.ISBN,
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

// DeleteBook removes a book by its primary ISBN.
// Returns ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, isbn string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = ?`, isbn)
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

// CountBooks returns the total number of books.
func (s *Store) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ExistingISBNs returns the subset of the given ISBNs that already have
// a book row. Used by the ingestion writer to skip duplicates before
// committing a chunk.
func (s *Store) ExistingISBNs(ctx context.Context, isbns []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(isbns) == 0 {
		return existing, nil
	}

	// SQLite caps bound parameters; query in chunks.
	const chunkSize = 500
	for start := 0; start < len(isbns); start += chunkSize {
		end := min(start+chunkSize, len(isbns))
		chunk := isbns[start:end]

		placeholders := strings.Repeat("?,", len(chunk))
		placeholders = placeholders[:len(placeholders)-1]
		args := make([]any, len(chunk))
		for i, isbn := range chunk {
			args[i] = isbn
		}

		rows, err := s.db.QueryContext(ctx,
			`SELECT isbn FROM books WHERE isbn IN (`+placeholders+`)`, args...)
		if err != nil {
			return nil, fmt.Errorf("query existing isbns: %w", err)
		}

		for rows.Next() {
			var isbn string
			if err := rows.Scan(&isbn); err != nil {
				rows.Close()
				return nil, err
			}
			existing[isbn] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return existing, nil
}

// CommitChunk writes a batch of ingested books and the job's checkpoint
// snapshot in a single transaction. Books whose ISBN already exists are
// left untouched (INSERT OR IGNORE); the returned count is the number of
// rows actually inserted.
//
// Committing books and checkpoint together means a crash can never
// persist one without the other.
func (s *Store) CommitChunk(ctx context.Context, books []*domain.Book, jobName string, checkpoint map[string]string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var written int64
	now := formatTime(time.Now().UTC())

	for _, b := range books {
		result, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO books (
				isbn, isbn_raw, title, author, translator, publisher, price,
				sale_price, status, url, image_url, description, published_at,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ISBN,
			nullString(b.ISBNRaw),
			b.Title,
			nullString(b.Author),
			nullString(b.Translator),
			nullString(b.Publisher),
			b.Price,
			b.SalePrice,
			nullString(b.Status),
			nullString(b.URL),
			nullString(b.ImageURL),
			nullString(b.Description),
			nullTimeString(b.PublishedAt),
			formatTime(b.CreatedAt),
			formatTime(b.UpdatedAt),
		)
		if err != nil {
			return 0, fmt.Errorf("insert book %s: %w", b.ISBN, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		written += n
	}

	// Replace the checkpoint snapshot for this job.
	if _, err := tx.ExecContext(ctx, `DELETE FROM checkpoints WHERE job_name = ?`, jobName); err != nil {
		return 0, fmt.Errorf("clear checkpoint: %w", err)
	}
	for key, value := range checkpoint {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checkpoints (job_name, key, value, updated_at)
			VALUES (?, ?, ?, ?)`,
			jobName, key, value, now)
		if err != nil {
			return 0, fmt.Errorf("insert checkpoint %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit chunk: %w", err)
	}
	return written, nil
}
