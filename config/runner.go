package config

import "time"

// RunnerConfig tunes the background fetch runner.
type RunnerConfig struct {
	// Concurrency bounds simultaneous background fetches. Submissions above
	// the bound queue in the started state.
	Concurrency int `env:"FETCH_CONCURRENCY" envDefault:"4" yaml:"concurrency"`

	// ShutdownGrace is how long shutdown waits for in-flight fetches before
	// cancelling them.
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"30s" yaml:"shutdown_grace"`
}

// Sanitize applies guardrails to runner configuration values.
func (r *RunnerConfig) Sanitize() {
	if r.Concurrency < 1 {
		r.Concurrency = 1
	}
	const maxConcurrency = 64
	if r.Concurrency > maxConcurrency {
		r.Concurrency = maxConcurrency
	}
	if r.ShutdownGrace <= 0 {
		r.ShutdownGrace = 30 * time.Second
	}
}
