package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/bizlist"
	"github.com/google/uuid"
)

// Level parses the configured log level. WARNING is accepted as WARN.
func (c *Config) Level() (slog.Level, error) {
	name := strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if name == "WARNING" {
		name = "WARN"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, bizlist.Errorf(bizlist.ECONFIG, "invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// newLogger returns a text logger that tags every line with a fresh run ID.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", uuid.NewString())
}
