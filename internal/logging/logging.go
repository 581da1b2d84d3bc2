// Package logging builds the slog loggers used by the front ends.
package logging

import (
	"io"
	"log/slog"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a config log_level value to a slog level. Unknown names
// map to info.
func ParseLevel(name string) slog.Level {
	if l, ok := levels[name]; ok {
		return l
	}
	return slog.LevelInfo
}

// New returns the logger the simulator front ends write to. The terminal UI
// owns stdout, so outW is normally the -log-file destination. format is the
// config log_format value; anything but "json" yields text output.
func New(level, format string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

// Discard returns a logger that drops everything. Controllers built without
// a logger use it.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
