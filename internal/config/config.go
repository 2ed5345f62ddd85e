// Package config loads engine settings from YAML files and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/ndview/internal/parallel"
	"github.com/born-ml/ndview/internal/tensor"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvDevice     = "NDVIEW_DEVICE"
	EnvLogLevel   = "NDVIEW_LOG_LEVEL"
	EnvNumWorkers = "NDVIEW_NUM_WORKERS"
)

// Config contains all engine settings.
type Config struct {
	// Device selects the default backend, e.g. "native" or "webgpu:0".
	Device string `yaml:"device"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Parallel controls chunking in the native backend.
	Parallel ParallelConfig `yaml:"parallel"`
}

// ParallelConfig mirrors parallel.Config with YAML tags.
type ParallelConfig struct {
	Enabled      bool `yaml:"enabled"`
	NumWorkers   int  `yaml:"num_workers"`
	MinChunkSize int  `yaml:"min_chunk_size"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	p := parallel.DefaultConfig()
	return Config{
		Device:   "native",
		LogLevel: "info",
		Parallel: ParallelConfig{
			Enabled:      p.Enabled,
			NumWorkers:   p.NumWorkers,
			MinChunkSize: p.MinChunkSize,
		},
	}
}

// Load reads path on top of Default and applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDevice); ok && v != "" {
		c.Device = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvNumWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvNumWorkers, v, tensor.ErrValue)
		}
		c.Parallel.NumWorkers = n
		c.Parallel.Enabled = n > 1
	}
	return nil
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	if _, err := tensor.ParseDevice(c.Device); err != nil {
		return fmt.Errorf("config: device: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Parallel.NumWorkers < 0 {
		return fmt.Errorf("config: parallel.num_workers must be >= 0, got %d: %w", c.Parallel.NumWorkers, tensor.ErrValue)
	}
	if c.Parallel.MinChunkSize < 0 {
		return fmt.Errorf("config: parallel.min_chunk_size must be >= 0, got %d: %w", c.Parallel.MinChunkSize, tensor.ErrValue)
	}
	return nil
}

// DeviceSpec parses Device.
func (c Config) DeviceSpec() (tensor.Device, error) {
	return tensor.ParseDevice(c.Device)
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", c.LogLevel, tensor.ErrValue)
	}
	return lvl, nil
}

// ParallelConfig converts the parallel section for the native backend.
func (c Config) ParallelConfig() parallel.Config {
	return parallel.Config{
		Enabled:      c.Parallel.Enabled,
		NumWorkers:   c.Parallel.NumWorkers,
		MinChunkSize: c.Parallel.MinChunkSize,
	}
}
