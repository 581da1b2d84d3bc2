// Package config holds the tunables of the simulator and loads them from
// flags, string maps and HCL files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"conway/internal/core"
)

// Config holds the simulator parameters.
type Config struct {
	GridSize        int
	TickIntervalMS  int
	SeedProbability float64
	// Seed 0 means seed from the wall clock.
	Seed int64

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		GridSize:        25,
		TickIntervalMS:  150,
		SeedProbability: 0.3,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// TickInterval returns the tick cadence as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// Keys lists the names FromMap understands.
var Keys = []string{"grid_size", "tick_interval_ms", "seed_probability", "seed", "log_level", "log_format"}

// IsKey reports whether k is one of Keys.
func IsKey(k string) bool { return slices.Contains(Keys, k) }

// FromMap layers flag-style key/value pairs over base. Values that fail to
// parse or are out of range keep the base value.
func FromMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["grid_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.GridSize = parsed
		}
	}
	if v, ok := cfg["tick_interval_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TickIntervalMS = parsed
		}
	}
	if v, ok := cfg["seed_probability"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.SeedProbability = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["log_level"]; ok && validLevel(strings.ToLower(v)) {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := cfg["log_format"]; ok && validFormat(strings.ToLower(v)) {
		c.LogFormat = strings.ToLower(v)
	}
	return c
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.GridSize <= 0 {
		errs = append(errs, fmt.Errorf("grid_size %d: %w", c.GridSize, core.ErrInvalidDimension))
	}
	if c.TickIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMS))
	}
	if c.SeedProbability < 0 || c.SeedProbability > 1 {
		errs = append(errs, fmt.Errorf("seed_probability must be in [0,1], got %g", c.SeedProbability))
	}
	if !validLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %q", c.LogLevel))
	}
	if !validFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format must be 'text' or 'json', got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.GridSize, "size", c.GridSize, "grid side length")
	fs.IntVar(&c.TickIntervalMS, "tick", c.TickIntervalMS, "milliseconds between generations")
	fs.Float64Var(&c.SeedProbability, "p", c.SeedProbability, "probability a cell is alive after randomize")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomize (0 uses the clock)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
}

func validLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func validFormat(s string) bool {
	return s == "text" || s == "json"
}
