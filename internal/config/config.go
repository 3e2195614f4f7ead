// Package config loads and validates roost.yml, the mission configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoostConfig represents the top-level roost.yml configuration.
type RoostConfig struct {
	Version     string             `yaml:"version"`
	Mission     string             `yaml:"mission"`
	Probe       *ProbeConfig       `yaml:"probe,omitempty"`
	Sources     SourcesConfig      `yaml:"sources"`
	Acquisition *AcquisitionConfig `yaml:"acquisition,omitempty"`
	Report      *ReportConfig      `yaml:"report,omitempty"`
	Redis       *RedisConfig       `yaml:"redis,omitempty"`
}

// ProbeConfig tunes the discovery probe run.
type ProbeConfig struct {
	Concurrency    *int `yaml:"concurrency,omitempty"`     // Max concurrent probes (default 5)
	TimeoutMs      *int `yaml:"timeout_ms,omitempty"`      // Per-probe deadline (default 4000)
	ScoreThreshold *int `yaml:"score_threshold,omitempty"` // Usable sources must score above this (default 30)
}

// SourcesConfig declares where candidate endpoints come from.
type SourcesConfig struct {
	Static     []StaticSource `yaml:"static,omitempty"`     // Fixed endpoint list
	Registries []string       `yaml:"registries,omitempty"` // Remote JSON index URLs
}

// StaticSource is one fixed endpoint entry.
type StaticSource struct {
	Address         string `yaml:"address"`
	Label           string `yaml:"label"`
	Network         string `yaml:"network"`
	DeclaredQuality int    `yaml:"declared_quality"`
}

// AcquisitionConfig tunes the acquisition phase.
type AcquisitionConfig struct {
	SamplesPerSource *int `yaml:"samples_per_source,omitempty"` // Default 3
}

// ReportConfig tunes the reporting phase.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir,omitempty"` // Default ./roost-report
}

// RedisConfig selects the Redis-backed blackboard. When URL is empty the
// mission runs on the in-memory board.
type RedisConfig struct {
	URL string `yaml:"url,omitempty"`
}

// Load reads and validates a roost.yml file. Defaults are applied during
// validation, so the returned config is ready to use.
func Load(path string) (*RoostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg RoostConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate performs strict validation on the configuration and fills in
// defaults for omitted optional settings.
func (c *RoostConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	// Required: mission name (used for Redis namespacing)
	if c.Mission == "" {
		return fmt.Errorf("mission name is required")
	}

	// Required: at least one source of candidates
	if len(c.Sources.Static) == 0 && len(c.Sources.Registries) == 0 {
		return fmt.Errorf("no sources defined: need at least one static source or registry")
	}

	for i, src := range c.Sources.Static {
		if src.Address == "" {
			return fmt.Errorf("static source at index %d: address is required", i)
		}
		if src.DeclaredQuality < 0 || src.DeclaredQuality > 100 {
			return fmt.Errorf("static source '%s': declared_quality must be 0-100, got %d", src.Address, src.DeclaredQuality)
		}
	}

	for i, url := range c.Sources.Registries {
		if url == "" {
			return fmt.Errorf("registry at index %d: URL cannot be empty", i)
		}
	}

	// Apply probe defaults
	if c.Probe == nil {
		c.Probe = &ProbeConfig{}
	}
	if c.Probe.Concurrency == nil {
		v := 5
		c.Probe.Concurrency = &v
	}
	if c.Probe.TimeoutMs == nil {
		v := 4000
		c.Probe.TimeoutMs = &v
	}
	if c.Probe.ScoreThreshold == nil {
		v := 30
		c.Probe.ScoreThreshold = &v
	}

	if *c.Probe.Concurrency < 1 {
		return fmt.Errorf("probe.concurrency must be >= 1, got %d", *c.Probe.Concurrency)
	}
	if *c.Probe.TimeoutMs < 1 {
		return fmt.Errorf("probe.timeout_ms must be >= 1, got %d", *c.Probe.TimeoutMs)
	}
	if *c.Probe.ScoreThreshold < 0 || *c.Probe.ScoreThreshold > 100 {
		return fmt.Errorf("probe.score_threshold must be 0-100, got %d", *c.Probe.ScoreThreshold)
	}

	// Apply acquisition defaults
	if c.Acquisition == nil {
		c.Acquisition = &AcquisitionConfig{}
	}
	if c.Acquisition.SamplesPerSource == nil {
		v := 3
		c.Acquisition.SamplesPerSource = &v
	}
	if *c.Acquisition.SamplesPerSource < 1 {
		return fmt.Errorf("acquisition.samples_per_source must be >= 1, got %d", *c.Acquisition.SamplesPerSource)
	}

	// Apply report defaults
	if c.Report == nil {
		c.Report = &ReportConfig{}
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "./roost-report"
	}

	return nil
}
