// Package config loads run settings from a YAML file, a .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/report"
	"github.com/jmylchreest/nearestcolour/internal/strategy"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "NEARESTCOLOUR_"

type Config struct {
	Strategy  string `yaml:"strategy"`
	Workers   int    `yaml:"workers"`
	ChunkSize int    `yaml:"chunk_size"`
	Levels    int    `yaml:"levels"`
	Catalog   string `yaml:"catalog"`
	CacheDir  string `yaml:"cache_dir"`

	Output struct {
		Format  string `yaml:"format"`
		Top     int    `yaml:"top"`
		Preview bool   `yaml:"preview"`
	} `yaml:"output"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	opts := strategy.DefaultOptions()
	cfg := &Config{
		Strategy:  string(strategy.Default),
		Workers:   opts.Workers,
		ChunkSize: opts.ChunkSize,
		Levels:    colour.FullLevels,
		Catalog:   catalog.DefaultSource,
	}
	cfg.Output.Format = string(report.FormatTable)
	cfg.Output.Preview = true
	return cfg
}

// Load builds a configuration from defaults, the YAML file at configPath
// (skipped when empty), a .env file next to it and the environment, in that
// order of increasing precedence. Variables already present in the process
// environment are not replaced by .env values.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	envPath := ".env"
	if configPath != "" {
		envPath = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"STRATEGY":  &c.Strategy,
		"CATALOG":   &c.Catalog,
		"FORMAT":    &c.Output.Format,
		"CACHE_DIR": &c.CacheDir,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORKERS":    &c.Workers,
		"CHUNK_SIZE": &c.ChunkSize,
		"LEVELS":     &c.Levels,
		"TOP":        &c.Output.Top,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
		}
		*dst = n
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if _, err := strategy.ParseName(c.Strategy); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be at least 1, got %d", c.ChunkSize)
	}
	if c.Levels < 2 || c.Levels > colour.FullLevels {
		return fmt.Errorf("levels must be between 2 and %d, got %d", colour.FullLevels, c.Levels)
	}
	if c.Catalog == "" {
		return fmt.Errorf("catalog source is required")
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Output.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", c.Output.Top)
	}
	return nil
}

// StrategyOptions returns the worker settings for strategy.New.
func (c *Config) StrategyOptions() strategy.Options {
	return strategy.Options{Workers: c.Workers, ChunkSize: c.ChunkSize}
}
