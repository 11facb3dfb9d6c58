package store

import (
	"context"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
)

// CreateSearchLog records a user search keyword.
func (s *Store) CreateSearchLog(ctx context.Context, keyword string, searchedAt time.Time) (*domain.SearchLog, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO search_logs (keyword, searched_at)
		VALUES (?, ?)`,
		keyword, formatTime(searchedAt))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &domain.SearchLog{ID: id, Keyword: keyword, SearchedAt: searchedAt.UTC()}, nil
}

// ListSearchLogsAfter returns up to limit search logs with ID greater
// than afterID whose searched_at falls within [from, to). Results are
// ordered by ID ascending so callers can walk the logs as a stable
// stream and resume from the last ID they saw.
func (s *Store) ListSearchLogsAfter(ctx context.Context, afterID int64, from, to time.Time, limit int) ([]*domain.SearchLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, keyword, searched_at
		FROM search_logs
		WHERE id > ? AND searched_at >= ? AND searched_at < ?
		ORDER BY id ASC
		LIMIT ?`,
		afterID, formatTime(from), formatTime(to), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.SearchLog
	for rows.Next() {
		var log domain.SearchLog
		var searchedAt string
		if err := rows.Scan(&log.ID, &log.Keyword, &searchedAt); err != nil {
			return nil, err
		}
		log.SearchedAt, err = parseTime(searchedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
