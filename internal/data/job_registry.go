// Package data provides the in-memory stores backing the comicd service.
package data

import (
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/comicdl/comicd/internal/errors"
	"github.com/comicdl/comicd/internal/domain/model"
)

// JobRegistry is the process-lifetime, concurrency-safe store of fetch jobs.
//
// Every method takes the single mutex for its whole critical section, so
// readers never observe a record mid-transition. Records are inserted fully
// formed and handed out as clones; they are never deleted (unbounded growth
// over the process lifetime is an accepted simplification).
type JobRegistry struct {
	mu    sync.RWMutex
	jobs  map[string]*model.Job
	order []string // insertion order; ListAll walks it backwards

	now func() time.Time
}

// JobRegistryOptions configures a JobRegistry.
type JobRegistryOptions struct {
	// Now overrides the clock used for CreatedAt/UpdatedAt stamps (tests).
	Now func() time.Time
}

// NewJobRegistry creates an empty registry.
func NewJobRegistry(opts JobRegistryOptions) *JobRegistry {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &JobRegistry{
		jobs: make(map[string]*model.Job),
		now:  now,
	}
}

// Create mints a fresh job in the started state and returns a copy of it.
// IDs are v4 UUIDs and are never reused. Safe for arbitrary concurrent callers.
func (r *JobRegistry) Create(comicID string) *model.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	for r.jobs[id] != nil {
		id = uuid.NewString()
	}

	ts := r.now()
	job := &model.Job{
		ID:        id,
		ComicID:   comicID,
		Status:    model.JobStatusStarted,
		Message:   "download accepted",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	r.jobs[id] = job
	r.order = append(r.order, id)
	return job.Clone()
}

// Transition atomically moves a job to status, replacing its message and,
// when resultPath is non-empty, recording the result location. Unknown ids
// and transitions that would leave a terminal state or regress the lifecycle
// return an error without touching the record; callers report best-effort
// status and must tolerate that.
func (r *JobRegistry) Transition(id string, status model.JobStatus, message, resultPath string) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, apperrors.NotFoundf("unknown job %q", id)
	}
	if !job.Status.CanTransitionTo(status) {
		return nil, apperrors.Validationf("job %s cannot move from %s to %s", id, job.Status, status)
	}

	job.Status = status
	job.Message = message
	if resultPath != "" {
		job.ResultPath = resultPath
	}
	job.UpdatedAt = r.now()
	return job.Clone(), nil
}

// Get returns a copy of the job, or a NotFound error for ids never issued by Create.
func (r *JobRegistry) Get(id string) (*model.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, apperrors.NotFoundf("unknown job %q", id)
	}
	return job.Clone(), nil
}

// ListAll returns copies of every job ordered by creation time descending.
// Most-recent-first ordering is part of the contract: clients render latest
// activity at the top.
func (r *JobRegistry) ListAll() []*model.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Job, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.jobs[r.order[i]].Clone())
	}
	return out
}

// Len returns the number of tracked jobs.
func (r *JobRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
