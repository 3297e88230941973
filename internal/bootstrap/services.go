package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/comicdl/comicd/config"
	"github.com/comicdl/comicd/internal/adapters/fetchrunner"
	"github.com/comicdl/comicd/internal/data"
	"github.com/comicdl/comicd/internal/fetch"
	"github.com/comicdl/comicd/internal/observability/metrics"
	"github.com/comicdl/comicd/internal/service"
)

// Services is the container of wired application services.
type Services struct {
	Registry *data.JobRegistry
	Runner   *fetchrunner.Runner
	Jobs     *service.JobService
	Files    *service.FileService
	Metrics  *metrics.JobMetrics
}

// ServiceDeps carries the dependencies needed to build the service container.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// NewServices wires the registry, fetcher, runner, and services.
func NewServices(deps *ServiceDeps) (*Services, error) {
	if deps == nil || deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	files, err := service.NewFileService(cfg.Storage.DownloadRoot)
	if err != nil {
		return nil, fmt.Errorf("init download root: %w", err)
	}

	registry := data.NewJobRegistry(data.JobRegistryOptions{})
	jobMetrics := metrics.NewJobMetrics()

	fetcher, err := buildFetcher(&cfg.Fetcher, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	runner, err := fetchrunner.NewRunner(fetchrunner.RunnerOptions{
		Registry:     registry,
		Fetcher:      fetcher,
		DownloadRoot: files.Root(),
		Concurrency:  cfg.Runner.Concurrency,
		Metrics:      jobMetrics,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init fetch runner: %w", err)
	}

	jobs, err := service.NewJobService(service.JobServiceOptions{
		Store:      registry,
		Dispatcher: runner,
		Metrics:    jobMetrics,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init job service: %w", err)
	}

	return &Services{
		Registry: registry,
		Runner:   runner,
		Jobs:     jobs,
		Files:    files,
		Metrics:  jobMetrics,
	}, nil
}

// buildFetcher selects the fetch collaborator: an external downloader
// command when configured, the simulated fallback otherwise.
func buildFetcher(cfg *config.FetcherConfig, logger *slog.Logger) (fetch.Fetcher, error) {
	if cfg.Simulated() {
		logger.Info("no fetch command configured, using simulated fetcher",
			"delay", cfg.SimulateDelay)
		return fetch.NewSimulatedFetcher(cfg.SimulateDelay), nil
	}
	return fetch.NewCommandFetcher(fetch.CommandFetcherOptions{
		Command: cfg.Command,
		Args:    cfg.Args,
		Timeout: cfg.Timeout,
	})
}

// RunOptions carries the dependencies for RunWithShutdown.
type RunOptions struct {
	Config   *config.AppConfig
	Services *Services
	Logger   *slog.Logger
}

// RunWithShutdown starts the HTTP server and blocks until SIGINT/SIGTERM,
// then drains the server and the background runner within the configured
// grace period.
func RunWithShutdown(opts *RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   opts.Config,
		Services: opts.Services,
		Logger:   logger,
	})

	<-ctx.Done()
	logger.Info("shutdown signal received")

	graceCtx, cancel := context.WithTimeout(context.Background(), opts.Config.Runner.ShutdownGrace)
	defer cancel()

	if err := ShutdownHTTPServer(graceCtx, server, logger); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	if err := opts.Services.Runner.Shutdown(graceCtx); err != nil {
		logger.Error("fetch runner drain timed out, in-flight fetches cancelled", "error", err)
		return nil
	}

	logger.Info("shutdown complete")
	return nil
}
