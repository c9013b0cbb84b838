// Package config loads goregime CLI settings from YAML, a .env file and
// GOREGIME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goregime/regime"
	"github.com/sartorproj/goregime/stats"
	"github.com/sartorproj/goregime/sweep"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GOREGIME_"

// Config is the complete CLI configuration.
type Config struct {
	Input    InputConfig  `yaml:"input"`
	Prep     PrepConfig   `yaml:"prep"`
	Detect   DetectConfig `yaml:"detect"`
	Sweep    SweepConfig  `yaml:"sweep"`
	Output   OutputConfig `yaml:"output"`
	LogLevel string       `yaml:"log_level"`
}

// InputConfig selects the series to analyze.
type InputConfig struct {
	Path       string `yaml:"path"`
	Format     string `yaml:"format"` // csv, xlsx, xlsm, or empty to infer from the extension
	Column     string `yaml:"column"`
	DateColumn string `yaml:"date_column"`
	Sheet      string `yaml:"sheet"`
}

// PrepConfig holds optional preprocessing applied before detection.
type PrepConfig struct {
	Period    int    `yaml:"period"` // seasonal standardization period, 0 disables
	Log       bool   `yaml:"log"`
	Annual    bool   `yaml:"annual"`
	Normalize bool   `yaml:"normalize"` // z-score after the other steps
	Save      string `yaml:"save"`      // CSV path for the prepared series
}

// DetectConfig holds single-run detector settings.
type DetectConfig struct {
	MinLength   int     `yaml:"l"`
	Probability float64 `yaml:"p"`
	Variance    string  `yaml:"variance"`
	Mode        string  `yaml:"mode"`
}

// SweepConfig holds the range of lengths for a sensitivity sweep.
type SweepConfig struct {
	MinLength int `yaml:"min_l"`
	MaxLength int `yaml:"max_l"`
	Workers   int `yaml:"workers"`
}

// OutputConfig selects how results are written.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or csv
	Path   string `yaml:"path"`   // empty writes to stdout
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Input:    InputConfig{Column: "y"},
		Detect:   DetectConfig{MinLength: 10, Probability: 0.05, Variance: "population", Mode: "standard"},
		Sweep:    SweepConfig{MinLength: 5, MaxLength: 35},
		Output:   OutputConfig{Format: "text"},
		LogLevel: "info",
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path or
// a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are ignored; variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from GOREGIME_* environment variables.
func (c *Config) ApplyEnv() error {
	str := map[string]*string{
		"INPUT":         &c.Input.Path,
		"FORMAT":        &c.Input.Format,
		"COLUMN":        &c.Input.Column,
		"DATE_COLUMN":   &c.Input.DateColumn,
		"SHEET":         &c.Input.Sheet,
		"SAVE_PREPARED": &c.Prep.Save,
		"VARIANCE":      &c.Detect.Variance,
		"MODE":          &c.Detect.Mode,
		"OUTPUT":        &c.Output.Path,
		"OUTPUT_FORMAT": &c.Output.Format,
		"LOG_LEVEL":     &c.LogLevel,
	}
	for k, dst := range str {
		if v, ok := os.LookupEnv(EnvPrefix + k); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PERIOD":  &c.Prep.Period,
		"L":       &c.Detect.MinLength,
		"MIN_L":   &c.Sweep.MinLength,
		"MAX_L":   &c.Sweep.MaxLength,
		"WORKERS": &c.Sweep.Workers,
	}
	for k, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + k)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, k, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"LOG":       &c.Prep.Log,
		"ANNUAL":    &c.Prep.Annual,
		"NORMALIZE": &c.Prep.Normalize,
	}
	for k, dst := range bools {
		v, ok := os.LookupEnv(EnvPrefix + k)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, k, err)
		}
		*dst = b
	}

	if v, ok := os.LookupEnv(EnvPrefix + "P"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sP: %w", EnvPrefix, err)
		}
		c.Detect.Probability = p
	}
	return nil
}

// Validate rejects values no detector run could accept.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Input.Format) {
	case "", "csv", "xlsx", "xlsm":
	default:
		errs = append(errs, fmt.Errorf("input.format %q: want csv, xlsx or xlsm", c.Input.Format))
	}
	if c.Prep.Period < 0 {
		errs = append(errs, fmt.Errorf("prep.period %d: must not be negative", c.Prep.Period))
	}
	if c.Detect.MinLength < 2 {
		errs = append(errs, fmt.Errorf("detect.l %d: must be at least 2", c.Detect.MinLength))
	}
	if !(c.Detect.Probability > 0 && c.Detect.Probability < 1) {
		errs = append(errs, fmt.Errorf("detect.p %v: must be in (0, 1)", c.Detect.Probability))
	}
	if _, err := stats.ParseEstimator(c.Detect.Variance); err != nil {
		errs = append(errs, fmt.Errorf("detect.variance: %w", err))
	}
	if _, err := regime.ParseMode(c.Detect.Mode); err != nil {
		errs = append(errs, fmt.Errorf("detect.mode: %w", err))
	}
	if c.Sweep.MinLength < 2 || c.Sweep.MaxLength < c.Sweep.MinLength {
		errs = append(errs, fmt.Errorf("sweep: need 2 <= min_l <= max_l, got %d..%d", c.Sweep.MinLength, c.Sweep.MaxLength))
	}
	if c.Sweep.Workers < 0 {
		errs = append(errs, fmt.Errorf("sweep.workers %d: must not be negative", c.Sweep.Workers))
	}
	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		errs = append(errs, fmt.Errorf("output.format %q: want text, json or csv", c.Output.Format))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}

// RegimeConfig converts the detect section for the regime package.
// Call Validate first.
func (c *Config) RegimeConfig() *regime.Config {
	est, _ := stats.ParseEstimator(c.Detect.Variance)
	mode, _ := regime.ParseMode(c.Detect.Mode)
	return &regime.Config{
		MinLength:   c.Detect.MinLength,
		Probability: c.Detect.Probability,
		Variance:    est,
		Mode:        mode,
	}
}

// SweepConfig converts the sweep section, sharing p, variance and mode with
// the detect section. Call Validate first.
func (c *Config) SweepConfig() *sweep.Config {
	rc := c.RegimeConfig()
	return &sweep.Config{
		MinLength:   c.Sweep.MinLength,
		MaxLength:   c.Sweep.MaxLength,
		Probability: rc.Probability,
		Variance:    rc.Variance,
		Mode:        rc.Mode,
		Workers:     c.Sweep.Workers,
	}
}
