// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration of the neutrality CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/neutrality/neutrality"
	"github.com/katalvlaran/neutrality/series"
)

// DefaultLogLevel is the slog level used when the file names none.
const DefaultLogLevel = "info"

// Validation errors returned by Load and Validate.
var (
	// ErrInvalidLogLevel indicates a log_level slog cannot parse.
	ErrInvalidLogLevel = errors.New("config: invalid log level")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("config: workers must be >= 0")

	// ErrInvalidExcerptSize indicates an excerpt_size below one row.
	ErrInvalidExcerptSize = errors.New("config: excerpt_size must be >= 1")

	// ErrInvalidTolerance indicates a NaN or infinite rank_tolerance. A
	// negative value is valid and selects the automatic tolerance.
	ErrInvalidTolerance = errors.New("config: rank_tolerance must be finite")
)

// Config is the CLI configuration. Command-line flags override file values.
type Config struct {
	Prefix        string  `yaml:"prefix"`
	Sheet         string  `yaml:"sheet"`
	Verbose       bool    `yaml:"verbose"`
	LogLevel      string  `yaml:"log_level"`
	RankTolerance float64 `yaml:"rank_tolerance"`
	ExcerptSize   int     `yaml:"excerpt_size"`
	Workers       int     `yaml:"workers"`
}

// DefaultConfig returns the configuration used when no file is given: the
// estimator defaults plus the "species" column prefix at info level.
func DefaultConfig() *Config {
	return &Config{
		Prefix:        series.DefaultPrefix,
		LogLevel:      DefaultLogLevel,
		RankTolerance: neutrality.DefaultRankTolerance,
		ExcerptSize:   neutrality.DefaultExcerptSize,
		Workers:       neutrality.DefaultWorkers,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first invalid field, checked in the order log level,
// workers, excerpt size, rank tolerance.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.ExcerptSize < 1 {
		return ErrInvalidExcerptSize
	}
	if math.IsNaN(c.RankTolerance) || math.IsInf(c.RankTolerance, 0) {
		return ErrInvalidTolerance
	}

	return nil
}

// SlogLevel maps LogLevel onto slog; Verbose forces debug.
func (c *Config) SlogLevel() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return lvl, nil
}

// Options translates the configuration into estimator options.
func (c *Config) Options(logger *slog.Logger) []neutrality.Option {
	opts := []neutrality.Option{
		neutrality.WithRankTolerance(c.RankTolerance),
		neutrality.WithExcerptSize(c.ExcerptSize),
		neutrality.WithWorkers(c.Workers),
		neutrality.WithLogger(logger),
	}
	if c.Verbose {
		opts = append(opts, neutrality.WithVerbose())
	}

	return opts
}
