// Package service implements the business logic of comicd: fetch-job
// submission and sandboxed access to downloaded files.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/comicdl/comicd/internal/domain/model"
	apperrors "github.com/comicdl/comicd/internal/errors"
	"github.com/comicdl/comicd/internal/observability/metrics"
)

// JobStore is the registry surface the job service depends on.
type JobStore interface {
	Create(comicID string) *model.Job
	Get(id string) (*model.Job, error)
	ListAll() []*model.Job
}

// Dispatcher schedules the background fetch for an accepted job.
// fetchrunner.Runner is the production implementation.
type Dispatcher interface {
	Dispatch(job *model.Job)
}

// JobService converts submission requests into tracked background jobs.
//
// Submit returns as soon as the job record exists and the work is scheduled;
// "accepted" is the whole response contract, completion is observed by
// polling. Duplicate submissions for the same comic id are deliberately not
// coalesced: each one gets its own job and its own fetch.
type JobService struct {
	store      JobStore
	dispatcher Dispatcher
	metrics    *metrics.JobMetrics
	logger     *slog.Logger
}

// JobServiceOptions configures a JobService.
type JobServiceOptions struct {
	Store      JobStore
	Dispatcher Dispatcher
	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.JobMetrics
	Logger  *slog.Logger
}

// NewJobService wires a job service.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Store == nil {
		return nil, apperrors.Internal("job store is required")
	}
	if opts.Dispatcher == nil {
		return nil, apperrors.Internal("dispatcher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		store:      opts.Store,
		dispatcher: opts.Dispatcher,
		metrics:    opts.Metrics,
		logger:     logger,
	}, nil
}

// Submit validates the comic id, registers a job, and schedules the fetch.
// The returned job is in the started state; the caller must not wait for
// completion.
func (s *JobService) Submit(ctx context.Context, comicID string) (*model.Job, error) {
	comicID = strings.TrimSpace(comicID)
	if comicID == "" {
		if s.metrics != nil {
			s.metrics.SubmissionRejected()
		}
		return nil, apperrors.Validation("comic_id is required")
	}

	job := s.store.Create(comicID)
	if s.metrics != nil {
		s.metrics.JobSubmitted()
	}
	s.dispatcher.Dispatch(job)

	s.logger.InfoContext(ctx, "download accepted",
		"job_id", job.ID, "comic_id", comicID)
	return job, nil
}

// Get returns the job for id, or a NotFound error for ids never issued.
func (s *JobService) Get(_ context.Context, id string) (*model.Job, error) {
	return s.store.Get(id)
}

// ListAll returns every tracked job, newest first.
func (s *JobService) ListAll(_ context.Context) []*model.Job {
	return s.store.ListAll()
}
