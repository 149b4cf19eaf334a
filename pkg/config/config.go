// Package config loads and validates termrank configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Indexer, Search, Logging, Metrics, Tracing).
package config

import (
	"fmt"
	"os"
	"strconv"

	apperrors "github.com/Adithya-Monish-Kumar-K/termrank/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Indexer IndexerConfig `yaml:"indexer"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// IndexerConfig controls which directory is indexed and how unreadable
// documents are treated.
type IndexerConfig struct {
	Dir string `yaml:"dir"`
	// StrictReads aborts the whole run on the first unreadable document
	// instead of skipping it with a warning.
	StrictReads bool `yaml:"strictReads"`
}

// SearchConfig controls ranking precomputation and output size.
type SearchConfig struct {
	// Limit caps the number of printed results. Zero prints every document.
	Limit      int  `yaml:"limit"`
	Precompute bool `yaml:"precompute"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export. An empty Textfile
// disables the export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// TracingConfig toggles span logging for the indexing pipeline.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Indexer.Dir == "" {
		return apperrors.New(apperrors.ErrInvalidConfig, "indexer.dir must not be empty")
	}
	if c.Search.Limit < 0 {
		return apperrors.Newf(apperrors.ErrInvalidConfig, "search.limit must not be negative, got %d", c.Search.Limit)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return apperrors.Newf(apperrors.ErrInvalidConfig, "logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Indexer: IndexerConfig{
			Dir: "./sample_content/",
		},
		Search: SearchConfig{
			Precompute: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides reads TR_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TR_INDEXER_DIR"); v != "" {
		cfg.Indexer.Dir = v
	}
	if v := os.Getenv("TR_INDEXER_STRICT_READS"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			cfg.Indexer.StrictReads = strict
		}
	}
	if v := os.Getenv("TR_SEARCH_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Search.Limit = limit
		}
	}
	if v := os.Getenv("TR_SEARCH_PRECOMPUTE"); v != "" {
		if pre, err := strconv.ParseBool(v); err == nil {
			cfg.Search.Precompute = pre
		}
	}
	if v := os.Getenv("TR_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TR_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("TR_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
	if v := os.Getenv("TR_TRACING_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tracing.Enabled = enabled
		}
	}
}
