package config

import "time"

// FetcherConfig selects and tunes the fetch collaborator.
type FetcherConfig struct {
	// Command is the external downloader executable. When empty, comicd
	// falls back to the simulated fetcher, matching the behavior of running
	// without the real downloader installed.
	Command string `env:"FETCH_COMMAND" yaml:"command"`

	// Args are fixed arguments passed before the comic id and destination root.
	Args []string `env:"FETCH_ARGS" envSeparator:" " yaml:"args"`

	// Timeout bounds one fetch invocation.
	Timeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"5m" yaml:"timeout"`

	// SimulateDelay is how long the simulated fetcher pretends to work.
	SimulateDelay time.Duration `env:"FETCH_SIMULATE_DELAY" envDefault:"2s" yaml:"simulate_delay"`
}

// Simulated returns true when no external fetch command is configured.
func (f *FetcherConfig) Simulated() bool {
	return f.Command == ""
}

// Sanitize applies guardrails to fetcher configuration values.
func (f *FetcherConfig) Sanitize() {
	if f.Timeout < 0 {
		f.Timeout = 0
	}
	if f.SimulateDelay < 0 {
		f.SimulateDelay = 0
	}
}
