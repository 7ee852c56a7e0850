//go:build !windows

package termio

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	altScreenEnter = "\x1b[?1049h"
	altScreenExit  = "\x1b[?1049l"
)

// unixBackend implements Backend using golang.org/x/term for raw mode and
// size queries — this is the "manipulate the terminal attribute structure
// for the input file descriptor" path spec.md §4.1 calls for; x/term does
// that manipulation for us rather than us re-deriving syscall.Termios bits.
type unixBackend struct {
	in, out *os.File

	rawState  *term.State
	inRaw     bool
	inAlt     bool

	reads chan readResult
}

type readResult struct {
	data []byte
	err  error
}

// NewUnix creates a Backend bound to stdin/stdout. Fails with
// ErrUnavailable if either is not a TTY.
func NewUnix() (Backend, error) {
	in, out := os.Stdin, os.Stdout
	if !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return nil, ErrUnavailable
	}
	return &unixBackend{in: in, out: out, reads: make(chan readResult, 16)}, nil
}

func (b *unixBackend) EnterRawMode() error {
	if b.inRaw {
		return errors.New("termio: already in raw mode")
	}
	state, err := term.MakeRaw(int(b.in.Fd()))
	if err != nil {
		return errors.Wrap(err, "termio: enter raw mode")
	}
	b.rawState = state
	b.inRaw = true
	b.startReader()
	return nil
}

func (b *unixBackend) ExitRawMode() error {
	if !b.inRaw {
		return nil
	}
	err := term.Restore(int(b.in.Fd()), b.rawState)
	b.inRaw = false
	if err != nil {
		return errors.Wrap(err, "termio: exit raw mode")
	}
	return nil
}

func (b *unixBackend) EnterAltScreen() error {
	if b.inAlt {
		return nil
	}
	if _, err := b.out.WriteString(altScreenEnter); err != nil {
		return errors.Wrap(err, "termio: enter alt screen")
	}
	b.inAlt = true
	return nil
}

func (b *unixBackend) ExitAltScreen() error {
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

func (b *unixBackend) Size() (Size, error) {
	cols, rows, err := term.GetSize(int(b.out.Fd()))
	if err != nil {
		return Size{}, errors.Wrap(err, "termio: get size")
	}
	if cols < MinWidth || rows < MinHeight {
		return Size{Cols: cols, Rows: rows}, ErrSizeTooSmall
	}
	return Size{Cols: cols, Rows: rows}, nil
}

// startReader launches the single background goroutine that turns blocking
// stdin reads into a channel, so Read(timeout) can honor a bounded wait
// without the OS giving us a portable read-with-timeout primitive. The
// event loop remains the only place state is mutated (spec.md §5); this
// goroutine only ever produces bytes, never touches the ViewModel.
func (b *unixBackend) startReader() {
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

func (b *unixBackend) Read(timeout time.Duration) ([]byte, error) {
	select {
	case r := <-b.reads:
		return r.data, r.err
	case <-time.After(timeout):
		return nil, nil
	}
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *unixBackend) Flush() error { return nil }

func (b *unixBackend) Restore() {
	_ = b.ExitAltScreen()
	_ = b.ExitRawMode()
}
