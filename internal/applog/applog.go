// Package applog is the ambient session logger: one zerolog sink writing
// to $XDG_STATE_HOME/gitpilot/log (falling back to ~/.local/state/gitpilot,
// then to the platform temp dir),
// used for per-action debug entries and repository error detail that never
// reaches the terminal UI itself (SPEC_FULL.md §2/§4.5).
package applog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with the handful of call sites the
// controller needs, keeping zerolog itself out of every other package's
// import graph.
type Logger struct {
	zl   zerolog.Logger
	path string
}

// Open creates (or appends to) the session log file and returns a Logger
// at the given level. level follows zerolog's names: "debug", "info",
// "warn", "error".
func Open(level string) (*Logger, error) {
	dir := stateDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return &Logger{zl: zl, path: path}, nil
}

// NewDiscard returns a Logger that drops every entry, for tests and dry
// runs that don't want a file on disk.
func NewDiscard() *Logger {
	return &Logger{zl: zerolog.New(io.Discard)}
}

func stateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitpilot")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "gitpilot")
	}
	return filepath.Join(os.TempDir(), "gitpilot")
}

// Path returns the log file path (empty for a NewDiscard logger).
func (l *Logger) Path() string { return l.path }

// Action logs one dispatched action: the resolved key's action kind, the
// focused panel, and the outcome ("ok", "validation-error", or an error
// string).
func (l *Logger) Action(kind, panel, outcome string) {
	l.zl.Debug().Str("action", kind).Str("panel", panel).Str("outcome", outcome).Msg("dispatch")
}

// RepoError logs full repository error detail (including the wrapped
// cause) that the footer/dialog intentionally never shows (SPEC_FULL.md
// error-handling note).
func (l *Logger) RepoError(op string, err error) {
	l.zl.Error().Str("op", op).Err(err).Msg("repository error")
}

// Fatal logs a startup/fatal condition before the process exits.
func (l *Logger) Fatal(msg string, err error) {
	l.zl.Error().Err(err).Msg(msg)
}

// Info logs a session lifecycle event (start, resize, shutdown).
func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}
