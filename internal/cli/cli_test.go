package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"conway/internal/config"
	"conway/internal/core"
	"conway/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, exit, err := Parse("life", nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, config.DefaultConfig(), opts.Config)
	assert.Equal(t, 20, opts.Scale)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	opts, exit, err := Parse("life", []string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, opts)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-tick")
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-bogus"}},
		{name: "stray argument", args: []string{"extra"}},
		{name: "invalid size", args: []string{"-size", "0"}},
		{name: "invalid probability", args: []string{"-p", "2"}},
		{name: "invalid scale", args: []string{"-scale", "0"}},
		{name: "missing config", args: []string{"-config", "/does/not/exist.hcl"}},
		{name: "override without value", args: []string{"-set", "grid_size"}},
		{name: "unknown override key", args: []string{"-set", "speed=3"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse("life", tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParseLayersFileUnderFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.hcl")
	src := "grid_size = 40\ntick_interval_ms = 300\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	opts, _, err := Parse("life", []string{"-config", path, "-tick", "50"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 40, opts.Config.GridSize, "file overrides defaults")
	assert.Equal(t, 50, opts.Config.TickIntervalMS, "flags override the file")
	assert.Equal(t, path, opts.ConfigPath)
}

func TestParseLayersOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.hcl")
	src := "grid_size = 40\ntick_interval_ms = 300\nseed = 8\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	opts, _, err := Parse("life", []string{
		"-config", path,
		"-set", "grid_size=30",
		"-set", "tick_interval_ms=90",
		"-set", "log_format=json",
		"-tick", "50",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 30, opts.Config.GridSize, "overrides win over the file")
	assert.Equal(t, 50, opts.Config.TickIntervalMS, "flags win over overrides")
	assert.Equal(t, int64(8), opts.Config.Seed, "file values survive when not overridden")
	assert.Equal(t, "json", opts.Config.LogFormat)
}

func TestParseOverridesWithoutFile(t *testing.T) {
	opts, _, err := Parse("life", []string{"-set", "seed_probability=0.6", "-set", "seed=12"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, opts.Config.SeedProbability, 1e-9)
	assert.Equal(t, int64(12), opts.Config.Seed)
	assert.Equal(t, config.DefaultConfig().GridSize, opts.Config.GridSize)
}

func TestNewControllerHonorsZeroProbability(t *testing.T) {
	opts, _, err := Parse("life", []string{"-size", "9", "-p", "0", "-seed", "4"}, &bytes.Buffer{})
	require.NoError(t, err)

	ctrl, err := opts.NewController(core.NewLoopScheduler(), logging.Discard())
	require.NoError(t, err)
	require.True(t, ctrl.Randomize())
	assert.True(t, ctrl.CurrentGrid().IsEmpty())
}

func TestNewController(t *testing.T) {
	opts, _, err := Parse("life", []string{"-size", "7", "-seed", "3"}, &bytes.Buffer{})
	require.NoError(t, err)

	ctrl, err := opts.NewController(core.NewLoopScheduler(), logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 7, ctrl.Size())

	other, err := opts.NewController(core.NewLoopScheduler(), logging.Discard())
	require.NoError(t, err)
	require.True(t, ctrl.Randomize())
	require.True(t, other.Randomize())
	assert.True(t, ctrl.CurrentGrid().Equal(other.CurrentGrid()), "fixed seed must be reproducible")
}

func TestLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.log")
	opts := &Options{Config: config.DefaultConfig(), LogFile: path}
	logger, closeLog, err := opts.Logger()
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}
