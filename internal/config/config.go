// Package config holds the worker's process-wide configuration: engine
// priority order, default extraction options, and protocol tuning. All of it
// is resolved once at startup and read-only afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// WorkerConfig contains the full worker configuration
type WorkerConfig struct {
	// Engines is the extraction engine priority order. The first entry is
	// the primary engine; the rest are fallbacks, tried in order.
	Engines []string

	// Default extraction options, applied when a request leaves the
	// corresponding field unset.
	CharThreshold   int
	NbTopCandidates int
	MaxElemsToParse int

	// SuppressWarnings silences per-document parse diagnostics on stderr
	SuppressWarnings bool

	// Timeout is the per-request wall-clock budget; 0 disables it
	Timeout time.Duration

	// Parallelism is the number of requests processed concurrently.
	// Output ordering is preserved regardless of the value.
	Parallelism int

	Verbose bool
}

// Default extraction option values
const (
	DefaultCharThreshold   = 500
	DefaultNbTopCandidates = 5
	DefaultTimeout         = 30 * time.Second
)

// DefaultEngines is the default engine priority order
var DefaultEngines = []string{"readability", "dom-heuristic", "plaintext"}

// DefaultWorkerConfig returns the default worker configuration with
// environment variable overrides applied
func DefaultWorkerConfig() WorkerConfig {
	cfg := WorkerConfig{
		Engines:          append([]string(nil), DefaultEngines...),
		CharThreshold:    DefaultCharThreshold,
		NbTopCandidates:  DefaultNbTopCandidates,
		MaxElemsToParse:  0,
		SuppressWarnings: true,
		Timeout:          DefaultTimeout,
		Parallelism:      1,
	}

	if env := os.Getenv("EXTRACT_ENGINES"); env != "" {
		cfg.Engines = splitEngines(env)
	}
	if env := os.Getenv("EXTRACT_TIMEOUT_MS"); env != "" {
		if ms, err := strconv.Atoi(env); err == nil && ms >= 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if env := os.Getenv("EXTRACT_PARALLELISM"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			cfg.Parallelism = n
		}
	}
	if env := os.Getenv("EXTRACT_SUPPRESS_WARNINGS"); env != "" {
		if b, err := strconv.ParseBool(env); err == nil {
			cfg.SuppressWarnings = b
		}
	}

	return cfg
}

// Validate checks the configuration for values no component can honor
func (c WorkerConfig) Validate() error {
	if len(c.Engines) == 0 {
		return fmt.Errorf("at least one extraction engine must be configured")
	}
	if c.CharThreshold < 0 {
		return fmt.Errorf("charThreshold must be >= 0, got %d", c.CharThreshold)
	}
	if c.NbTopCandidates < 1 {
		return fmt.Errorf("nbTopCandidates must be >= 1, got %d", c.NbTopCandidates)
	}
	if c.MaxElemsToParse < 0 {
		return fmt.Errorf("maxElemsToParse must be >= 0, got %d", c.MaxElemsToParse)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be >= 1, got %d", c.Parallelism)
	}
	return nil
}

func splitEngines(s string) []string {
	parts := strings.Split(s, ",")
	engines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			engines = append(engines, p)
		}
	}
	return engines
}
