package fetchrunner

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicdl/comicd/internal/data"
	"github.com/comicdl/comicd/internal/domain/model"
	"github.com/comicdl/comicd/internal/fetch"
)

func waitForStatus(t *testing.T, reg *data.JobRegistry, id string, want model.JobStatus) *model.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := reg.Get(id)
		require.NoError(t, err)
		if job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", id, want)
	return nil
}

func TestDispatchCompletesJob(t *testing.T) {
	reg := data.NewJobRegistry(data.JobRegistryOptions{})
	root := t.TempDir()

	runner, err := NewRunner(RunnerOptions{
		Registry:     reg,
		Fetcher:      fetch.NewSimulatedFetcher(0),
		DownloadRoot: root,
	})
	require.NoError(t, err)

	job := reg.Create("12345")
	runner.Dispatch(job)

	done := waitForStatus(t, reg, job.ID, model.JobStatusCompleted)
	assert.Equal(t, filepath.Join(root, "12345"), done.ResultPath)
	assert.Contains(t, done.Message, "12345")
	require.NoError(t, runner.Shutdown(context.Background()))
}

func TestDispatchRecordsFailureVerbatim(t *testing.T) {
	reg := data.NewJobRegistry(data.JobRegistryOptions{})

	runner, err := NewRunner(RunnerOptions{
		Registry: reg,
		Fetcher: fetch.Func(func(context.Context, string, string) error {
			return errors.New("album 404: check the comic id")
		}),
		DownloadRoot: t.TempDir(),
	})
	require.NoError(t, err)

	job := reg.Create("404404")
	runner.Dispatch(job)

	failed := waitForStatus(t, reg, job.ID, model.JobStatusFailed)
	assert.Equal(t, "album 404: check the comic id", failed.Message)
	assert.Empty(t, failed.ResultPath)
	require.NoError(t, runner.Shutdown(context.Background()))
}

func TestDispatchSurvivesFetcherPanic(t *testing.T) {
	reg := data.NewJobRegistry(data.JobRegistryOptions{})

	runner, err := NewRunner(RunnerOptions{
		Registry: reg,
		Fetcher: fetch.Func(func(context.Context, string, string) error {
			panic("collaborator blew up")
		}),
		DownloadRoot: t.TempDir(),
	})
	require.NoError(t, err)

	job := reg.Create("boom")
	runner.Dispatch(job)

	failed := waitForStatus(t, reg, job.ID, model.JobStatusFailed)
	assert.Contains(t, failed.Message, "collaborator blew up")
	require.NoError(t, runner.Shutdown(context.Background()))
}

func TestConcurrencyIsBounded(t *testing.T) {
	reg := data.NewJobRegistry(data.JobRegistryOptions{})

	var mu sync.Mutex
	active, peak := 0, 0
	release := make(chan struct{})

	runner, err := NewRunner(RunnerOptions{
		Registry: reg,
		Fetcher: fetch.Func(func(ctx context.Context, _, _ string) error {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()
			<-release
			mu.Lock()
			active--
			mu.Unlock()
			return nil
		}),
		DownloadRoot: t.TempDir(),
		Concurrency:  2,
	})
	require.NoError(t, err)

	for range 6 {
		runner.Dispatch(reg.Create("x"))
	}

	// Give dispatched goroutines time to contend for the semaphore.
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	assert.LessOrEqual(t, peak, 2)
	mu.Unlock()

	close(release)
	require.NoError(t, runner.Shutdown(context.Background()))

	mu.Lock()
	assert.LessOrEqual(t, peak, 2)
	mu.Unlock()

	for _, job := range reg.ListAll() {
		assert.Equal(t, model.JobStatusCompleted, job.Status)
	}
}

func TestDispatchDoesNotBlockCaller(t *testing.T) {
	reg := data.NewJobRegistry(data.JobRegistryOptions{})
	blocked := make(chan struct{})

	runner, err := NewRunner(RunnerOptions{
		Registry: reg,
		Fetcher: fetch.Func(func(ctx context.Context, _, _ string) error {
			select {
			case <-blocked:
			case <-ctx.Done():
			}
			return nil
		}),
		DownloadRoot: t.TempDir(),
		Concurrency:  1,
	})
	require.NoError(t, err)

	start := time.Now()
	for range 10 {
		runner.Dispatch(reg.Create("slow"))
	}
	assert.Less(t, time.Since(start), time.Second, "dispatch must return immediately")

	job, err := reg.Get(reg.ListAll()[0].ID)
	require.NoError(t, err)
	assert.Contains(t,
		[]model.JobStatus{model.JobStatusStarted, model.JobStatusDownloading}, job.Status)

	close(blocked)
	require.NoError(t, runner.Shutdown(context.Background()))
}

func TestShutdownTimeoutCancelsFetches(t *testing.T) {
	reg := data.NewJobRegistry(data.JobRegistryOptions{})

	runner, err := NewRunner(RunnerOptions{
		Registry: reg,
		Fetcher: fetch.Func(func(ctx context.Context, _, _ string) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		DownloadRoot: t.TempDir(),
	})
	require.NoError(t, err)

	runner.Dispatch(reg.Create("hang"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = runner.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
