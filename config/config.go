// Package config holds the comicd application configuration, composed from
// per-domain structs in separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library, optionally overlaid with a YAML file
// (see bootstrap.LoadConfig) and finally with command-line flags.
// Precedence, lowest to highest: env defaults, environment variables,
// YAML config file, flags.
package config

import (
	"os"
	"strings"
)

// AppConfig is the root application configuration.
type AppConfig struct {
	// IsDev controls development-mode behavior (on-disk asset loading).
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false" yaml:"dev"`

	// HTTP server configuration
	HTTP HTTPConfig `yaml:"http"`

	// Download storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Fetch collaborator configuration
	Fetcher FetcherConfig `yaml:"fetcher"`

	// Background runner configuration
	Runner RunnerConfig `yaml:"runner"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// Call after loading from environment, file, and flags.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Storage.Sanitize()
	c.Fetcher.Sanitize()
	c.Runner.Sanitize()
	c.detectDevMode()
}

// detectDevMode also honors NODE_ENV as a fallback, common in front-end tooling.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
