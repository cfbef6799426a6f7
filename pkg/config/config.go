// Package config loads analyzer settings from YAML with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/logging"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/validation"
)

// Environment variables that override file settings.
const (
	EnvLogLevel             = "LOG_LEVEL"
	EnvRepairMaxIterations  = "GRAPH_ANALYZER_REPAIR_MAX_ITERATIONS"
	EnvMetricsTextfile      = "GRAPH_ANALYZER_METRICS_TEXTFILE"
	EnvRunTimeout           = "GRAPH_ANALYZER_RUN_TIMEOUT"
	maxConfiguredIterations = 100000
	maxRunTimeout           = 24 * time.Hour
)

// Config is the complete analyzer configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Engine   EngineConfig   `yaml:"engine"`
	PageRank PageRankConfig `yaml:"pagerank"`
	HITS     HITSConfig     `yaml:"hits"`
	Repair   RepairConfig   `yaml:"repair"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// EngineConfig bounds each algorithm run. A zero RunTimeout disables the
// deadline.
type EngineConfig struct {
	RunTimeout time.Duration `yaml:"run_timeout"`
}

type PageRankConfig struct {
	DampingFactor float64 `yaml:"damping_factor"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

type HITSConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

type RepairConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// MetricsConfig controls Prometheus collection. When Textfile is set the
// registry is written there in text exposition format after each command.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		PageRank: PageRankConfig{
			DampingFactor: algorithms.DefaultDampingFactor,
			MaxIterations: algorithms.DefaultMaxIterations,
			Tolerance:     algorithms.DefaultTolerance,
		},
		HITS: HITSConfig{
			MaxIterations: algorithms.DefaultMaxIterations,
			Tolerance:     algorithms.DefaultTolerance,
		},
		Repair:  RepairConfig{MaxIterations: algorithms.DefaultRepairIterations},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path (defaults only when path is empty), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Environment
// variables are not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from the environment via lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvRepairMaxIterations); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRepairMaxIterations, v, err)
		}
		c.Repair.MaxIterations = n
	}
	if v, ok := lookup(EnvMetricsTextfile); ok && v != "" {
		c.Metrics.Textfile = v
	}
	if v, ok := lookup(EnvRunTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRunTimeout, v, err)
		}
		c.Engine.RunTimeout = d
	}
	return nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	return validation.ValidateAll(&c.Logging, &c.Engine, &c.PageRank, &c.HITS, &c.Repair, &c.Metrics)
}

func (c *LoggingConfig) Validate() error {
	return validation.NewConfigValidator("logging").
		Custom("level", func() error {
			if _, ok := logging.LookupLevel(c.Level); !ok {
				return fmt.Errorf("unknown level %q", c.Level)
			}
			return nil
		}).
		Validate()
}

func (c *EngineConfig) Validate() error {
	return validation.NewConfigValidator("engine").
		RangeDuration("run_timeout", c.RunTimeout, 0, maxRunTimeout).
		Validate()
}

func (c *PageRankConfig) Validate() error {
	return validation.NewConfigValidator("pagerank").
		RangeFloat("damping_factor", c.DampingFactor, 0, 1).
		RangeInt("max_iterations", c.MaxIterations, 1, maxConfiguredIterations).
		PositiveFloat("tolerance", c.Tolerance).
		Validate()
}

func (c *HITSConfig) Validate() error {
	return validation.NewConfigValidator("hits").
		RangeInt("max_iterations", c.MaxIterations, 1, maxConfiguredIterations).
		PositiveFloat("tolerance", c.Tolerance).
		Validate()
}

func (c *RepairConfig) Validate() error {
	return validation.NewConfigValidator("repair").
		RangeInt("max_iterations", c.MaxIterations, 1, maxConfiguredIterations).
		Validate()
}

func (c *MetricsConfig) Validate() error {
	return validation.NewConfigValidator("metrics").
		When(c.Textfile != "", func(v *validation.ConfigValidator) {
			v.Custom("enabled", func() error {
				if !c.Enabled {
					return errors.New("textfile is set but metrics are disabled")
				}
				return nil
			})
		}).
		Validate()
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

// PageRankOptions converts the section into algorithm options.
func (c *Config) PageRankOptions() algorithms.PageRankOptions {
	return algorithms.PageRankOptions{
		DampingFactor: c.PageRank.DampingFactor,
		MaxIterations: c.PageRank.MaxIterations,
		Tolerance:     c.PageRank.Tolerance,
	}
}

// HITSOptions converts the section into algorithm options.
func (c *Config) HITSOptions() algorithms.HITSOptions {
	return algorithms.HITSOptions{
		MaxIterations: c.HITS.MaxIterations,
		Tolerance:     c.HITS.Tolerance,
	}
}

// RepairOptions converts the section into algorithm options.
func (c *Config) RepairOptions() algorithms.RepairOptions {
	return algorithms.RepairOptions{MaxIterations: c.Repair.MaxIterations}
}
