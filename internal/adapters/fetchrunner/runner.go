// Package fetchrunner executes accepted fetch jobs in the background and
// reports their progress to the job registry.
package fetchrunner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/comicdl/comicd/internal/data"
	"github.com/comicdl/comicd/internal/domain/model"
	"github.com/comicdl/comicd/internal/fetch"
	"github.com/comicdl/comicd/internal/observability/metrics"
)

const defaultConcurrency = 4

// Runner owns the background half of every submission: each dispatched job
// gets its own goroutine, gated by a weighted semaphore so concurrent
// fetches stay bounded while submission itself never blocks. Jobs waiting
// on the semaphore remain visible in the started state.
type Runner struct {
	registry *data.JobRegistry
	fetcher  fetch.Fetcher
	root     string
	sem      *semaphore.Weighted
	metrics  *metrics.JobMetrics
	logger   *slog.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Registry     *data.JobRegistry
	Fetcher      fetch.Fetcher
	DownloadRoot string

	// Concurrency bounds simultaneous fetches; defaults to 4.
	Concurrency int
	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.JobMetrics
	Logger  *slog.Logger
}

// NewRunner wires a background runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if opts.DownloadRoot == "" {
		return nil, errors.New("download root is required")
	}

	workers := opts.Concurrency
	if workers <= 0 {
		workers = defaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		registry: opts.Registry,
		fetcher:  opts.Fetcher,
		root:     opts.DownloadRoot,
		sem:      semaphore.NewWeighted(int64(workers)),
		metrics:  opts.Metrics,
		logger:   logger,
		baseCtx:  ctx,
		cancel:   cancel,
	}, nil
}

// Dispatch schedules the fetch for an already-registered job and returns
// immediately. The spawned work is fire-and-forget: its outcome reaches the
// submitter only through the job record.
func (r *Runner) Dispatch(job *model.Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.execute(job)
	}()
}

func (r *Runner) execute(job *model.Job) {
	if err := r.sem.Acquire(r.baseCtx, 1); err != nil {
		r.transition(job.ID, model.JobStatusFailed,
			fmt.Sprintf("download of comic %s aborted: server shutting down", job.ComicID), "")
		return
	}
	defer r.sem.Release(1)

	if r.metrics != nil {
		r.metrics.FetchStarted()
	}
	start := time.Now()

	r.transition(job.ID, model.JobStatusDownloading,
		fmt.Sprintf("downloading comic %s", job.ComicID), "")

	err := r.runFetch(job)
	if err != nil {
		if r.metrics != nil {
			r.metrics.FetchFailed(time.Since(start))
		}
		// The collaborator's message is the only diagnostic the poller gets;
		// record it verbatim.
		r.transition(job.ID, model.JobStatusFailed, err.Error(), "")
		r.logger.ErrorContext(r.baseCtx, "fetch failed",
			"job_id", job.ID, "comic_id", job.ComicID, "error", err)
		return
	}

	if r.metrics != nil {
		r.metrics.FetchCompleted(time.Since(start))
	}
	resultPath := filepath.Join(r.root, job.ComicID)
	r.transition(job.ID, model.JobStatusCompleted,
		fmt.Sprintf("comic %s downloaded", job.ComicID), resultPath)
	r.logger.InfoContext(r.baseCtx, "fetch completed",
		"job_id", job.ID, "comic_id", job.ComicID, "path", resultPath,
		"duration", time.Since(start))
}

// runFetch isolates collaborator panics so a misbehaving fetcher fails the
// job instead of the process.
func (r *Runner) runFetch(job *model.Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("fetcher panic: %v", rec)
		}
	}()
	return r.fetcher.Fetch(r.baseCtx, job.ComicID, r.root)
}

// transition updates the job record, tolerating unknown ids: status
// reporting is best effort and must never take down the worker.
func (r *Runner) transition(id string, status model.JobStatus, message, resultPath string) {
	if _, err := r.registry.Transition(id, status, message, resultPath); err != nil {
		r.logger.ErrorContext(r.baseCtx, "job transition failed",
			"job_id", id, "status", status, "error", err)
	}
}

// Shutdown waits for in-flight fetches to finish, cancelling them if ctx
// expires first.
func (r *Runner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
