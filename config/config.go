// Package config holds the tonal feature extraction settings. Values come
// from defaults, then an optional YAML file, then TONAL_* environment
// variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-tonal/algorithms/hcdf"
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

type contextKey string

const configKey contextKey = "config"

// EnvPrefix is the prefix of environment overrides, e.g. TONAL_WORKERS
const EnvPrefix = "tonal"

// ErrUnknownDataset is returned for dataset names missing from the config
var ErrUnknownDataset = errors.New("unknown dataset")

// Config holds all application configuration
type Config struct {
	HCDF HCDFConfig `yaml:"hcdf"`

	// Resolutions in seconds for resampled pipelines, 0 is the whole piece
	Resolutions []float64 `yaml:"resolutions"`
	GroupSuffix string    `yaml:"group_suffix" split_words:"true"`
	Workers     int       `yaml:"workers"`

	LogLevel  string `yaml:"log_level" split_words:"true"`
	LogFormat string `yaml:"log_format" split_words:"true"`

	Datasets map[string]DatasetConfig `yaml:"datasets" ignored:"true"`
}

// HCDFConfig configures the Harmonic Change Detection Function
type HCDFConfig struct {
	Sigma    float64 `yaml:"sigma"`
	Distance string  `yaml:"distance"`
}

// DatasetConfig describes the classification target of a dataset
type DatasetConfig struct {
	TargetColumn string   `yaml:"target_col"`
	Classes      []string `yaml:"classes"`
	FilterColumn string   `yaml:"filter_col,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	params := hcdf.DefaultParams()
	return &Config{
		HCDF: HCDFConfig{
			Sigma:    params.Sigma,
			Distance: params.Distance.String(),
		},
		Resolutions: []float64{0.1, 0.5, 10, 0},
		GroupSuffix: dataset.DefaultSuffix,
		Workers:     4,
		LogLevel:    "info",
		LogFormat:   "console",
		Datasets:    defaultDatasets(),
	}
}

// Load reads configuration from path (skipped when empty), applies
// environment overrides and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if c.HCDF.Sigma <= 0 {
		return fmt.Errorf("hcdf.sigma must be positive, got %v", c.HCDF.Sigma)
	}
	if _, err := tis.ParseDistanceMetric(c.HCDF.Distance); err != nil {
		return fmt.Errorf("hcdf.distance: %w", err)
	}
	if len(c.Resolutions) == 0 {
		return errors.New("at least one resolution is required")
	}
	for _, r := range c.Resolutions {
		if r < 0 {
			return fmt.Errorf("negative resolution %v", r)
		}
	}
	if c.GroupSuffix == "" {
		return errors.New("group_suffix must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	for name, d := range c.Datasets {
		if d.TargetColumn == "" || len(d.Classes) == 0 {
			return fmt.Errorf("dataset %s: target_col and classes are required", name)
		}
	}
	return nil
}

// HCDFParams converts the HCDF section into analyzer parameters
func (c *Config) HCDFParams() hcdf.Params {
	metric, err := tis.ParseDistanceMetric(c.HCDF.Distance)
	if err != nil {
		metric = hcdf.DefaultParams().Distance
	}
	return hcdf.Params{
		Sigma:    c.HCDF.Sigma,
		Distance: metric,
	}
}

// Dataset returns the named dataset configuration
func (c *Config) Dataset(name string) (DatasetConfig, error) {
	d, ok := c.Datasets[name]
	if !ok {
		return DatasetConfig{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return d, nil
}

// DatasetNames returns the configured dataset names, sorted
func (c *Config) DatasetNames() []string {
	names := make([]string, 0, len(c.Datasets))
	for name := range c.Datasets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WithConfig stores cfg in ctx
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext returns the config stored by WithConfig, or the defaults
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
