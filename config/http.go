package config

import (
	"fmt"
	"net"
	"strconv"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Host is the interface to bind the HTTP server to.
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0" yaml:"host"`

	// Port is the TCP port to listen on.
	Port int `env:"HTTP_PORT" envDefault:"8000" yaml:"port"`

	// CompressionEnabled enables gzip compression for API responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false" yaml:"compression_enabled"`

	// CompressionLevel is the gzip compression level (1-9).
	// Default is 6 (standard gzip default).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6" yaml:"compression_level"`
}

// Addr returns the host:port bind address.
func (h *HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port <= 0 || h.Port > 65535 {
		h.Port = 8000
	}
	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}
}

// Validate rejects addresses that cannot be listened on.
func (h *HTTPConfig) Validate() error {
	if _, err := net.ResolveTCPAddr("tcp", h.Addr()); err != nil {
		return fmt.Errorf("invalid bind address %q: %w", h.Addr(), err)
	}
	return nil
}
