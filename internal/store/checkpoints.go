package store

import (
	"context"
	"fmt"
	"time"
)

// LoadCheckpoint returns the saved checkpoint snapshot for a job as a
// key/value map. An empty map means no checkpoint exists and the job
// starts from the beginning.
func (s *Store) LoadCheckpoint(ctx context.Context, jobName string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM checkpoints WHERE job_name = ?`, jobName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkpoint := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		checkpoint[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return checkpoint, nil
}

// SaveCheckpoint replaces the checkpoint snapshot for a job in a single
// transaction.
func (s *Store) SaveCheckpoint(ctx context.Context, jobName string, checkpoint map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM checkpoints WHERE job_name = ?`, jobName); err != nil {
		return fmt.Errorf("clear checkpoint: %w", err)
	}

	now := formatTime(time.Now().UTC())
	for key, value := range checkpoint {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checkpoints (job_name, key, value, updated_at)
			VALUES (?, ?, ?, ?)`,
			jobName, key, value, now)
		if err != nil {
			return fmt.Errorf("insert checkpoint %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// ClearCheckpoint removes the checkpoint snapshot for a job. Called when
// a run completes so the next run starts fresh.
func (s *Store) ClearCheckpoint(ctx context.Context, jobName string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE job_name = ?`, jobName)
	return err
}
