// Package metrics exposes Prometheus instrumentation for the fetch-job lifecycle.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// JobMetrics tracks the fetch-job lifecycle: rate, errors, duration, and the
// number of fetches currently in flight.
type JobMetrics struct {
	registry *prometheus.Registry

	submitted prometheus.Counter
	rejected  prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	inFlight  prometheus.Gauge
	duration  prometheus.Histogram
}

// NewJobMetrics creates a metrics set backed by its own registry so tests
// never collide on the global default.
func NewJobMetrics() *JobMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &JobMetrics{
		registry: registry,
		submitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "comicd_jobs_submitted_total",
			Help: "Total number of fetch jobs accepted for processing",
		}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "comicd_jobs_rejected_total",
			Help: "Total number of submissions rejected before a job was created",
		}),
		completed: factory.NewCounter(prometheus.CounterOpts{
			Name: "comicd_jobs_completed_total",
			Help: "Total number of fetch jobs that finished successfully",
		}),
		failed: factory.NewCounter(prometheus.CounterOpts{
			Name: "comicd_jobs_failed_total",
			Help: "Total number of fetch jobs that terminated with an error",
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "comicd_jobs_in_flight",
			Help: "Number of fetches currently executing",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "comicd_fetch_duration_seconds",
			Help:    "Wall-clock duration of completed and failed fetches",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
	}
}

// JobSubmitted records an accepted submission.
func (m *JobMetrics) JobSubmitted() { m.submitted.Inc() }

// SubmissionRejected records a submission refused before job creation.
func (m *JobMetrics) SubmissionRejected() { m.rejected.Inc() }

// FetchStarted marks a fetch as in flight.
func (m *JobMetrics) FetchStarted() { m.inFlight.Inc() }

// FetchCompleted records a successful fetch and its duration.
func (m *JobMetrics) FetchCompleted(d time.Duration) {
	m.inFlight.Dec()
	m.completed.Inc()
	m.duration.Observe(d.Seconds())
}

// FetchFailed records a failed fetch and its duration.
func (m *JobMetrics) FetchFailed(d time.Duration) {
	m.inFlight.Dec()
	m.failed.Inc()
	m.duration.Observe(d.Seconds())
}

// Handler returns the Prometheus exposition endpoint for this metrics set.
func (m *JobMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
