//go:build windows

package termio

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

const (
	altScreenEnter = "\x1b[?1049h"
	altScreenExit  = "\x1b[?1049l"
)

// windowsBackend implements Backend on top of the Win32 console API: it sets
// ENABLE_VIRTUAL_TERMINAL_PROCESSING on the output handle so the same ANSI
// escapes the renderer emits on POSIX work unmodified, and reads
// GetConsoleScreenBufferInfo for size (spec.md §4.1).
type windowsBackend struct {
	in, out *os.File

	outHandle windows.Handle
	origOut   uint32
	origIn    *term.State

	inRaw bool
	inAlt bool

	reads chan readResult
}

// NewWindows creates a Backend bound to stdin/stdout.
func NewWindows() (Backend, error) {
	in, out := os.Stdin, os.Stdout
	if !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return nil, ErrUnavailable
	}
	return &windowsBackend{
		in:        in,
		out:       out,
		outHandle: windows.Handle(out.Fd()),
		reads:     make(chan readResult, 16),
	}, nil
}

func (b *windowsBackend) EnterRawMode() error {
	if b.inRaw {
		return errors.New("termio: already in raw mode")
	}

	var mode uint32
	if err := windows.GetConsoleMode(b.outHandle, &mode); err != nil {
		return errors.Wrap(err, "termio: get console mode")
	}
	b.origOut = mode

	newMode := mode | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	if err := windows.SetConsoleMode(b.outHandle, newMode); err != nil {
		return errors.Wrap(err, "termio: enable virtual terminal processing")
	}

	state, err := term.MakeRaw(int(b.in.Fd()))
	if err != nil {
		_ = windows.SetConsoleMode(b.outHandle, b.origOut)
		return errors.Wrap(err, "termio: enter raw mode")
	}
	b.origIn = state
	b.inRaw = true
	b.startReader()
	return nil
}

func (b *windowsBackend) ExitRawMode() error {
	if !b.inRaw {
		return nil
	}
	err := term.Restore(int(b.in.Fd()), b.origIn)
	_ = windows.SetConsoleMode(b.outHandle, b.origOut)
	b.inRaw = false
	if err != nil {
		return errors.Wrap(err, "termio: exit raw mode")
	}
	return nil
}

func (b *windowsBackend) EnterAltScreen() error {
	if b.inAlt {
		return nil
	}
	if _, err := b.out.WriteString(altScreenEnter); err != nil {
		return errors.Wrap(err, "termio: enter alt screen")
	}
	b.inAlt = true
	return nil
}

func (b *windowsBackend) ExitAltScreen() error {
	if !b.inAlt {
		return nil
	}
	_, err := b.out.WriteString(altScreenExit)
	b.inAlt = false
	if err != nil {
		return errors.Wrap(err, "termio: exit alt screen")
	}
	return nil
}

func (b *windowsBackend) Size() (Size, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(b.outHandle, &info); err != nil {
		return Size{}, errors.Wrap(err, "termio: get console screen buffer info")
	}
	cols := int(info.Window.Right-info.Window.Left) + 1
	rows := int(info.Window.Bottom-info.Window.Top) + 1
	if cols < MinWidth || rows < MinHeight {
		return Size{Cols: cols, Rows: rows}, ErrSizeTooSmall
	}
	return Size{Cols: cols, Rows: rows}, nil
}

func (b *windowsBackend) startReader() {
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := b.in.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				b.reads <- readResult{data: chunk}
			}
			if err != nil {
				b.reads <- readResult{err: err}
				return
			}
		}
	}()
}

func (b *windowsBackend) Read(timeout time.Duration) ([]byte, error) {
	select {
	case r := <-b.reads:
		return r.data, r.err
	case <-time.After(timeout):
		return nil, nil
	}
}

func (b *windowsBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *windowsBackend) Flush() error { return nil }

func (b *windowsBackend) Restore() {
	_ = b.ExitAltScreen()
	_ = b.ExitRawMode()
}
