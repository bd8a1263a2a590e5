// Package config loads the streampca run configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/streampca/eigen"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full run configuration. Zero-valued fields are filled from
// Default() by Load.
type Config struct {
	Input        string   `yaml:"input"`
	Labels       bool     `yaml:"labels"`
	InitialBatch int      `yaml:"initial_batch"`
	Components   int      `yaml:"components"`
	Gamma        *float64 `yaml:"gamma,omitempty"` // nil: 1/n
	Threshold    float64  `yaml:"threshold"`
	MaxIter      int      `yaml:"max_iter"`
	Seed         *int64   `yaml:"seed,omitempty"` // nil: time-seeded
	Centered     bool     `yaml:"centered"`
	ReportEvery  int      `yaml:"report_every"`
	MetricsFile  string   `yaml:"metrics_file"`
	Plot         Plot     `yaml:"plot"`
	Log          Log      `yaml:"log"`
}

// Plot configures the optional embedding image.
type Plot struct {
	Path     string  `yaml:"path"`
	Title    string  `yaml:"title"`
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		InitialBatch: 100,
		Components:   2,
		Threshold:    eigen.DefaultThreshold,
		MaxIter:      eigen.DefaultMaxIter,
		ReportEvery:  500,
		Plot:         Plot{WidthIn: 6, HeightIn: 6},
		Log:          Log{Level: "info"},
	}
}

// Load reads path and overlays it on Default(). An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges; it does not touch the filesystem.
func (c Config) Validate() error {
	switch {
	case c.InitialBatch < 2:
		return fmt.Errorf("initial_batch=%d must be >= 2: %w", c.InitialBatch, ErrInvalid)
	case c.Components < 1:
		return fmt.Errorf("components=%d must be >= 1: %w", c.Components, ErrInvalid)
	case c.Gamma != nil && (math.IsNaN(*c.Gamma) || *c.Gamma <= 0 || *c.Gamma > 1):
		return fmt.Errorf("gamma=%g must be in (0, 1]: %w", *c.Gamma, ErrInvalid)
	case math.IsNaN(c.Threshold) || c.Threshold <= 0 || c.Threshold >= 1:
		return fmt.Errorf("threshold=%g must be in (0, 1): %w", c.Threshold, ErrInvalid)
	case c.MaxIter < 1:
		return fmt.Errorf("max_iter=%d must be >= 1: %w", c.MaxIter, ErrInvalid)
	case c.ReportEvery < 0:
		return fmt.Errorf("report_every=%d must be >= 0: %w", c.ReportEvery, ErrInvalid)
	case c.Plot.Path != "" && c.Components < 2:
		return fmt.Errorf("plot needs components >= 2, have %d: %w", c.Components, ErrInvalid)
	case c.Plot.WidthIn <= 0 || c.Plot.HeightIn <= 0:
		return fmt.Errorf("plot size %gx%g must be positive: %w", c.Plot.WidthIn, c.Plot.HeightIn, ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level=%q: %w", c.Log.Level, ErrInvalid)
	}

	return nil
}

// LogLevel returns the parsed log level; Validate guarantees it parses.
func (c Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}

	return lvl
}
