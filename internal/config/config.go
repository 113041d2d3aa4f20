// Package config loads tooling configuration from YAML on top of embedded
// defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/zeusync/fxnet/internal/observability/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Runner RunnerConfig `yaml:"runner"`
	Tables TablesConfig `yaml:"tables"`
	Report ReportConfig `yaml:"report"`
}

type LogConfig struct {
	Level log.Level `yaml:"level"`
}

// RunnerConfig controls scenario suite execution.
type RunnerConfig struct {
	Workers        int `yaml:"workers"`         // 0 means one per CPU
	IterationLimit int `yaml:"iteration_limit"` // GJK cap per case
}

type TablesConfig struct {
	Path        string `yaml:"path"`
	Fingerprint string `yaml:"fingerprint"`
}

// ReportConfig controls the table accuracy report.
type ReportConfig struct {
	Samples int `yaml:"samples"` // evaluation points per function
	Workers int `yaml:"workers"`
}

// Load reads the embedded defaults and overlays the file at path, if any.
// Only keys present in the file are overwritten.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	switch {
	case c.Runner.Workers < 0:
		return fmt.Errorf("%w: runner.workers must not be negative", ErrInvalidConfig)
	case c.Runner.IterationLimit < 1:
		return fmt.Errorf("%w: runner.iteration_limit must be positive", ErrInvalidConfig)
	case c.Report.Samples < 2:
		return fmt.Errorf("%w: report.samples must be at least 2", ErrInvalidConfig)
	case c.Report.Workers < 0:
		return fmt.Errorf("%w: report.workers must not be negative", ErrInvalidConfig)
	}

	if c.Tables.Fingerprint != "" {
		if _, err := c.ExpectedFingerprint(); err != nil {
			return err
		}
	}
	return nil
}

// ExpectedFingerprint parses tables.fingerprint. It returns 0 when unset.
func (c *Config) ExpectedFingerprint() (uint64, error) {
	if c.Tables.Fingerprint == "" {
		return 0, nil
	}
	if len(c.Tables.Fingerprint) != 16 {
		return 0, fmt.Errorf("%w: tables.fingerprint must be 16 hex digits", ErrInvalidConfig)
	}
	fp, err := strconv.ParseUint(c.Tables.Fingerprint, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: tables.fingerprint: %w", ErrInvalidConfig, err)
	}
	return fp, nil
}

// RunnerWorkers resolves runner.workers.
func (c *Config) RunnerWorkers() int { return resolveWorkers(c.Runner.Workers) }

// ReportWorkers resolves report.workers.
func (c *Config) ReportWorkers() int { return resolveWorkers(c.Report.Workers) }

func resolveWorkers(n int) int {
	if n == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
