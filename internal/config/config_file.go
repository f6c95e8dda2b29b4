package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the optional YAML configuration file schema. Every
// field is optional; set fields override the built-in and environment
// defaults, and explicit command-line flags override the file in turn.
type FileConfig struct {
	Engines []string `yaml:"engines"`

	Defaults struct {
		CharThreshold   *int `yaml:"charThreshold"`
		NbTopCandidates *int `yaml:"nbTopCandidates"`
		MaxElemsToParse *int `yaml:"maxElemsToParse"`
	} `yaml:"defaults"`

	SuppressWarnings *bool `yaml:"suppressWarnings"`
	TimeoutMs        *int  `yaml:"timeoutMs"`
	Parallelism      *int  `yaml:"parallelism"`
	Verbose          *bool `yaml:"verbose"`
}

// LoadFile reads and parses a YAML configuration file
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// ApplyFile overlays the set fields of a file config onto the worker config
func (c *WorkerConfig) ApplyFile(fc *FileConfig) {
	if fc == nil {
		return
	}
	if len(fc.Engines) > 0 {
		c.Engines = append([]string(nil), fc.Engines...)
	}
	if fc.Defaults.CharThreshold != nil {
		c.CharThreshold = *fc.Defaults.CharThreshold
	}
	if fc.Defaults.NbTopCandidates != nil {
		c.NbTopCandidates = *fc.Defaults.NbTopCandidates
	}
	if fc.Defaults.MaxElemsToParse != nil {
		c.MaxElemsToParse = *fc.Defaults.MaxElemsToParse
	}
	if fc.SuppressWarnings != nil {
		c.SuppressWarnings = *fc.SuppressWarnings
	}
	if fc.TimeoutMs != nil {
		c.Timeout = time.Duration(*fc.TimeoutMs) * time.Millisecond
	}
	if fc.Parallelism != nil {
		c.Parallelism = *fc.Parallelism
	}
	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}
}
