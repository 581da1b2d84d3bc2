// Package cli turns command-line arguments into simulator options and wires
// the controller they describe.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"conway/internal/config"
	"conway/internal/core"
	"conway/internal/logging"
	"conway/internal/sim"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed command line.
type Options struct {
	Config     config.Config
	ConfigPath string
	LogFile    string
	Scale      int
	Overrides  kvList
}

// kvList collects repeated -set key=value flags.
type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	key, _, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	if !config.IsKey(key) {
		return fmt.Errorf("unknown override key %q (want one of %s)", key, strings.Join(config.Keys, ", "))
	}
	*l = append(*l, value)
	return nil
}

func (l kvList) toMap() map[string]string {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		m[k] = v
	}
	return m
}

// Parse processes command-line arguments. Settings are layered as defaults,
// then the HCL file named by -config, then -set overrides, then explicit
// flags. It returns the options, whether the program should exit cleanly, or
// an ExitError.
func Parse(name string, args []string, output io.Writer) (*Options, bool, error) {
	opts := &Options{Config: config.DefaultConfig(), Scale: 20}
	fs := newFlagSet(name, output, opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}

	base := config.DefaultConfig()
	if opts.ConfigPath != "" {
		fileCfg, err := config.LoadFile(opts.ConfigPath, base)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		base = fileCfg
	}
	base = config.FromMap(base, opts.Overrides.toMap())

	// Re-apply the flags so they win over the file and the overrides.
	layered := &Options{Config: base, Scale: opts.Scale}
	fs = newFlagSet(name, io.Discard, layered)
	if err := fs.Parse(args); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	opts = layered

	if err := opts.Config.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if opts.Scale <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "scale must be positive"}
	}
	slog.Debug("CLI parser finished successfully.", "config", opts.Config)
	return opts, false, nil
}

func newFlagSet(name string, output io.Writer, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, `
%s - Conway's Game of Life on a bounded grid.

Usage:
  %s [options]

Options:
`, name, name)
		fs.PrintDefaults()
	}
	opts.Config.Bind(fs)
	fs.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "path to an HCL config file")
	fs.StringVar(&opts.LogFile, "log-file", opts.LogFile, "write logs to this file (default: discard)")
	fs.IntVar(&opts.Scale, "scale", opts.Scale, "pixels per cell (GUI only)")
	fs.Var(&opts.Overrides, "set", "config override in key=value form (repeatable)")
	return fs
}

// Logger opens the configured log destination. The returned closer must be
// called on shutdown.
func (o *Options) Logger() (*slog.Logger, func() error, error) {
	if o.LogFile == "" {
		return logging.Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.New(o.Config.LogLevel, o.Config.LogFormat, f), f.Close, nil
}

// NewController builds a controller from the parsed configuration.
func (o *Options) NewController(sched core.Scheduler, logger *slog.Logger) (*sim.Controller, error) {
	seed := o.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Controller configured.",
		"grid_size", o.Config.GridSize,
		"tick_interval_ms", o.Config.TickIntervalMS,
		"seed_probability", o.Config.SeedProbability,
		"seed", seed)
	p := o.Config.SeedProbability
	return sim.NewController(sim.Options{
		Size:            o.Config.GridSize,
		TickInterval:    o.Config.TickInterval(),
		SeedProbability: &p,
		Scheduler:       sched,
		RNG:             core.NewRNG(seed),
		Logger:          logger,
	})
}
