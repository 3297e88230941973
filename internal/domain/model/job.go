// Package model defines the core data types shared across the comicd service.
package model

import (
	"fmt"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a fetch job. The string values
// are the wire contract consumed by the polling front-end.
type JobStatus string

const (
	// JobStatusStarted indicates the job was accepted and is waiting for a worker.
	JobStatusStarted JobStatus = "started"
	// JobStatusDownloading indicates the fetch is in progress.
	JobStatusDownloading JobStatus = "downloading"
	// JobStatusCompleted indicates the fetch finished and results are on disk.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the fetch terminated with an error.
	JobStatusFailed JobStatus = "failed"
)

// Valid returns true if the JobStatus is one of the known states.
func (s JobStatus) Valid() bool {
	return s == JobStatusStarted || s == JobStatusDownloading ||
		s == JobStatusCompleted || s == JobStatusFailed
}

// Terminal returns true for absorbing states that no transition may leave.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo reports whether moving from s to next preserves the
// started -> downloading -> {completed|failed} ordering.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusStarted:
		return next == JobStatusDownloading || next.Terminal()
	case JobStatusDownloading:
		return next.Terminal()
	default:
		return false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so statuses parse from env and query values.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid JobStatus: %q", string(text))
	}
	*s = v
	return nil
}

// Job represents one tracked background fetch operation.
//
// A Job is created synchronously by the submission handler and then owned by
// exactly one background worker; readers only ever observe fully formed
// records through the registry.
type Job struct {
	ID         string    `json:"task_id"`
	ComicID    string    `json:"comic_id"`
	Status     JobStatus `json:"status"`
	Message    string    `json:"message"`
	ResultPath string    `json:"path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Clone returns a copy of the job so registry internals never leak to callers.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	return &c
}
