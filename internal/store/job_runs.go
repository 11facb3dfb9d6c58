package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookhive/bookhive-server/internal/domain"
)

const jobRunColumns = `id, name, target_date, status, read_count, write_count,
	skip_count, log_count, error, started_at, finished_at`

func scanJobRun(scanner interface{ Scan(dest ...any) error }) (*domain.JobRun, error) {
	var run domain.JobRun

	var (
		status     string
		errMsg     sql.NullString
		startedAt  string
		finishedAt sql.NullString
	)

	err := scanner.Scan(
		&run.ID,
		&run.Name,
		&run.TargetDate,
		&status,
		&run.ReadCount,
		&run.WriteCount,
		&run.SkipCount,
		&run.LogCount,
		&errMsg,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Status = domain.JobStatus(status)

	run.StartedAt, err = parseTime(startedAt)
	if err != nil {
		return nil, err
	}
	run.FinishedAt, err = parseNullableTime(finishedAt)
	if err != nil {
		return nil, err
	}

	if errMsg.Valid {
		run.Error = errMsg.String
	}

	return &run, nil
}

// CreateJobRun inserts a new job run record.
// Returns ErrAlreadyExists if the run ID already exists.
func (s *Store) CreateJobRun(ctx context.Context, run *domain.JobRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO job_runs (
			id, name, target_date, status, read_count, write_count,
			skip_count, log_count, error, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Name,
		run.TargetDate,
		string(run.Status),
		run.ReadCount,
		run.WriteCount,
		run.SkipCount,
		run.LogCount,
		nullString(run.Error),
		formatTime(run.StartedAt),
		nullTimeString(run.FinishedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateJobRun performs a full row update on an existing job run.
// Returns ErrNotFound if the run does not exist.
func (s *Store) UpdateJobRun(ctx context.Context, run *domain.JobRun) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE job_runs SET
			status = ?,
			read_count = ?,
			write_count = ?,
			skip_count = ?,
			log_count = ?,
			error = ?,
			finished_at = ?
		WHERE id = ?`,
		string(run.Status),
		run.ReadCount,
		run.WriteCount,
		run.SkipCount,
		run.LogCount,
		nullString(run.Error),
		nullTimeString(run.FinishedAt),
		run.ID,
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

// GetJobRun retrieves a job run by ID.
// Returns ErrNotFound if the run does not exist.
func (s *Store) GetJobRun(ctx context.Context, id string) (*domain.JobRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobRunColumns+` FROM job_runs WHERE id = ?`, id)

	run, err := scanJobRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// HasCompletedRun reports whether a completed run exists for the given
// job name and target date. Used for idempotency: a completed (name,
// target date) pair is never re-run unless forced.
func (s *Store) HasCompletedRun(ctx context.Context, name, targetDate string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM job_runs
		WHERE name = ? AND target_date = ? AND status = ?`,
		name, targetDate, string(domain.JobStatusCompleted)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListJobRuns returns the most recent job runs, newest first.
func (s *Store) ListJobRuns(ctx context.Context, limit int) ([]*domain.JobRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobRunColumns+` FROM job_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.JobRun
	for rows.Next() {
		run, err := scanJobRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
