// Package termio provides the platform-independent Terminal Backend
// contract of spec.md §4.1: raw mode, alternate screen, size queries and
// bounded-wait byte I/O.
package termio

import (
	"errors"
	"time"
)

// Errors mirror the TerminalError taxonomy of spec.md §7.
var (
	ErrUnavailable        = errors.New("termio: stdin/stdout is not a tty")
	ErrSizeTooSmall       = errors.New("termio: terminal smaller than 80x24")
	ErrPlatformUnsupported = errors.New("termio: platform unsupported")
)

// MinWidth and MinHeight are the minimum terminal surface from spec.md §6.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Size is a terminal's current dimensions in columns/rows.
type Size struct {
	Cols, Rows int
}

// Backend is the platform-independent contract every OS-specific
// implementation satisfies (spec.md §4.1).
type Backend interface {
	// EnterRawMode disables canonical input, echo, signal generation and
	// input/output translation. On POSIX the minimum read count stays at the
	// 1 byte that term.MakeRaw sets; Read's timeout provides the bounded wait.
	EnterRawMode() error
	// ExitRawMode restores the terminal state saved by EnterRawMode.
	ExitRawMode() error
	// EnterAltScreen switches to the alternate screen buffer.
	EnterAltScreen() error
	// ExitAltScreen restores the primary screen buffer.
	ExitAltScreen() error
	// Size queries the current terminal size in columns and rows.
	Size() (Size, error)
	// Read returns any bytes available within the bounded wait; it returns
	// (nil, nil) on timeout with no data, never blocking past timeout.
	Read(timeout time.Duration) ([]byte, error)
	// Write writes b to the terminal's output stream.
	Write(b []byte) (int, error)
	// Flush flushes any buffered output.
	Flush() error
	// Restore is the scoped-acquisition release: it undoes raw mode and
	// alt-screen regardless of which were entered, safe to call multiple
	// times and from a recover() path (spec.md §5).
	Restore()
}
