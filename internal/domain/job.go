package domain

import "time"

// JobStatus is the terminal (or in-flight) state of an ingestion run.
type JobStatus string

const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusSkipped   JobStatus = "skipped"
)

// JobRun is one execution of an ingestion job for a target date.
// Exactly one completed run may exist per (name, target date) pair;
// later attempts for the same pair are recorded as skipped unless forced.
type JobRun struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	TargetDate string     `json:"target_date"` // yyyy-MM-dd
	Status     JobStatus  `json:"status"`
	ReadCount  int64      `json:"read_count"`
	WriteCount int64      `json:"write_count"`
	SkipCount  int64      `json:"skip_count"`
	LogCount   int64      `json:"log_count"` // Search logs replayed, keyword job only
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// TargetDateLayout is the canonical layout for JobRun.TargetDate.
const TargetDateLayout = "2006-01-02"
