// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Indexer, Search, Throttle, Logging, Metrics).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Indexer  IndexerConfig  `yaml:"indexer"`
	Search   SearchConfig   `yaml:"search"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// IndexerConfig controls the index's stop words and the degree of
// parallelism used by the parallel execution paths.
type IndexerConfig struct {
	// StopWords is an explicit stop-word set.
	StopWords []string `yaml:"stopWords"`
	// StopWordsText is split on whitespace and merged into StopWords.
	StopWordsText string `yaml:"stopWordsText"`
	// ShardCount is the number of shards of the relevance scratch map used
	// by parallel search.
	ShardCount int `yaml:"shardCount"`
	// Workers bounds the fan-out of parallel operations; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// SearchConfig controls query execution defaults.
type SearchConfig struct {
	// Mode is "sequential" or "parallel".
	Mode     string `yaml:"mode"`
	PageSize int    `yaml:"pageSize"`
}

// ThrottleConfig controls the request window of the no-result tracker.
type ThrottleConfig struct {
	Window int `yaml:"window"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
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

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Search.Mode {
	case "sequential", "parallel":
	default:
		return fmt.Errorf("search.mode must be sequential or parallel, got %q", c.Search.Mode)
	}
	if c.Indexer.ShardCount < 0 {
		return fmt.Errorf("indexer.shardCount must not be negative, got %d", c.Indexer.ShardCount)
	}
	if c.Indexer.Workers < 0 {
		return fmt.Errorf("indexer.workers must not be negative, got %d", c.Indexer.Workers)
	}
	if c.Throttle.Window <= 0 {
		return fmt.Errorf("throttle.window must be positive, got %d", c.Throttle.Window)
	}
	return nil
}

// defaultConfig returns a Config with defaults suitable for local use.
func defaultConfig() *Config {
	return &Config{
		Indexer: IndexerConfig{
			StopWordsText: "and in on with the a",
			ShardCount:    100,
		},
		Search: SearchConfig{
			Mode:     "sequential",
			PageSize: 2,
		},
		Throttle: ThrottleConfig{
			Window: 1440,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads SP_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SP_INDEXER_STOP_WORDS"); v != "" {
		cfg.Indexer.StopWordsText = v
		cfg.Indexer.StopWords = nil
	}
	if v := os.Getenv("SP_INDEXER_SHARD_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Indexer.ShardCount = n
		}
	}
	if v := os.Getenv("SP_INDEXER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Indexer.Workers = n
		}
	}
	if v := os.Getenv("SP_SEARCH_MODE"); v != "" {
		cfg.Search.Mode = strings.ToLower(v)
	}
	if v := os.Getenv("SP_SEARCH_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.PageSize = n
		}
	}
	if v := os.Getenv("SP_THROTTLE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Throttle.Window = n
		}
	}
	if v := os.Getenv("SP_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SP_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SP_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("SP_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
