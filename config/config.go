// Package config loads Matcher settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/placematch"
	"github.com/hupe1980/placematch/lcd"
	"gopkg.in/yaml.v3"
)

// File represents a complete placematch configuration file.
type File struct {
	// Coarse configures the single-layer search.
	Coarse lcd.MatchConfig `yaml:"coarse" json:"coarse"`

	// Fine configures the leaf search.
	Fine lcd.MatchConfig `yaml:"fine" json:"fine"`

	// ScanBudget bounds the candidates scored per search.
	ScanBudget ScanBudgetConfig `yaml:"scan_budget" json:"scan_budget"`

	// LeafParallelism is the number of goroutines scoring leaves.
	LeafParallelism int `yaml:"leaf_parallelism" json:"leaf_parallelism"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScanBudgetConfig holds the per-stage scan budgets. 0 is unlimited.
type ScanBudgetConfig struct {
	Coarse int `yaml:"coarse" json:"coarse"`
	Fine   int `yaml:"fine" json:"fine"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
}

// Default returns the default configuration.
func Default() *File {
	return &File{
		Coarse:          lcd.DefaultMatchConfig(),
		Fine:            lcd.DefaultMatchConfig(),
		LeafParallelism: 1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads the configuration with the following precedence:
// 1. Environment variables (PLACEMATCH_*)
// 2. Configuration file at path (skipped if path is empty)
// 3. Default values
func Load(path string) (*File, error) {
	f := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		defer file.Close()

		if err := decode(file, f); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := loadFromEnv(f); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return f, nil
}

// Parse decodes a YAML document on top of the defaults and validates it.
// Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	f := Default()
	if err := decode(r, f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return f, nil
}

func decode(r io.Reader, f *File) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// loadFromEnv overrides configuration from environment variables.
func loadFromEnv(f *File) error {
	if v := os.Getenv("PLACEMATCH_COARSE_MIN_SCORE"); v != "" {
		score, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("PLACEMATCH_COARSE_MIN_SCORE: %w", err)
		}
		f.Coarse.MinScore = float32(score)
	}
	if v := os.Getenv("PLACEMATCH_FINE_MIN_SCORE"); v != "" {
		score, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("PLACEMATCH_FINE_MIN_SCORE: %w", err)
		}
		f.Fine.MinScore = float32(score)
	}
	if v := os.Getenv("PLACEMATCH_LEAF_PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PLACEMATCH_LEAF_PARALLELISM: %w", err)
		}
		f.LeafParallelism = n
	}
	if v := os.Getenv("PLACEMATCH_LOG_LEVEL"); v != "" {
		f.Logging.Level = v
	}
	if v := os.Getenv("PLACEMATCH_LOG_FORMAT"); v != "" {
		f.Logging.Format = v
	}
	return nil
}

// Validate validates the configuration.
func (f *File) Validate() error {
	if err := f.Coarse.Validate(); err != nil {
		return fmt.Errorf("coarse: %w", err)
	}
	if err := f.Fine.Validate(); err != nil {
		return fmt.Errorf("fine: %w", err)
	}
	if f.ScanBudget.Coarse < 0 || f.ScanBudget.Fine < 0 {
		return fmt.Errorf("scan budget must not be negative")
	}
	if f.LeafParallelism < 0 {
		return fmt.Errorf("leaf parallelism must not be negative: %d", f.LeafParallelism)
	}
	if _, err := parseLevel(f.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(f.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", f.Logging.Format)
	}
	switch strings.ToLower(f.Logging.Output) {
	case "", "stderr", "stdout", "none":
	default:
		return fmt.Errorf("invalid log output: %s", f.Logging.Output)
	}
	return nil
}

// Options converts the configuration into Matcher options.
func (f *File) Options() []placematch.Option {
	return []placematch.Option{
		placematch.WithCoarseConfig(f.Coarse),
		placematch.WithFineConfig(f.Fine),
		placematch.WithScanBudget(lcd.ScanBudget(f.ScanBudget.Coarse), lcd.ScanBudget(f.ScanBudget.Fine)),
		placematch.WithLeafParallelism(f.LeafParallelism),
		placematch.WithLogger(f.Logger()),
	}
}

// Logger builds the logger described by the logging section.
func (f *File) Logger() *placematch.Logger {
	var w io.Writer
	switch strings.ToLower(f.Logging.Output) {
	case "none":
		return placematch.NoopLogger()
	case "stdout":
		w = os.Stdout
	default:
		w = os.Stderr
	}

	level, err := parseLevel(f.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(f.Logging.Format, "json") {
		return placematch.NewLogger(slog.NewJSONHandler(w, handlerOpts))
	}
	return placematch.NewLogger(slog.NewTextHandler(w, handlerOpts))
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
	return level, nil
}
