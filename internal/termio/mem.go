package termio

import (
	"bytes"
	"time"
)

// MemBackend is an in-memory Backend used by controller and end-to-end
// tests (spec.md §8's literal scenarios) where no real TTY is available.
type MemBackend struct {
	size    Size
	out     bytes.Buffer
	feed    chan []byte
	rawOn   bool
	altOn   bool
	Restored bool
}

// NewMemBackend creates a backend reporting the given size, with an empty
// input feed.
func NewMemBackend(cols, rows int) *MemBackend {
	return &MemBackend{size: Size{Cols: cols, Rows: rows}, feed: make(chan []byte, 64)}
}

// Feed enqueues bytes to be returned by a future Read call, simulating
// keystrokes arriving from the OS input channel.
func (m *MemBackend) Feed(b []byte) { m.feed <- b }

// Output returns everything written so far, for assertions against the
// rendering invariants in spec.md §8.
func (m *MemBackend) Output() string { return m.out.String() }

// SetSize changes the reported terminal size, simulating a resize.
func (m *MemBackend) SetSize(cols, rows int) { m.size = Size{Cols: cols, Rows: rows} }

func (m *MemBackend) EnterRawMode() error     { m.rawOn = true; return nil }
func (m *MemBackend) ExitRawMode() error      { m.rawOn = false; return nil }
func (m *MemBackend) EnterAltScreen() error   { m.altOn = true; return nil }
func (m *MemBackend) ExitAltScreen() error    { m.altOn = false; return nil }
func (m *MemBackend) Flush() error            { return nil }
func (m *MemBackend) Write(b []byte) (int, error) { return m.out.Write(b) }

func (m *MemBackend) Size() (Size, error) {
	if m.size.Cols < MinWidth || m.size.Rows < MinHeight {
		return m.size, ErrSizeTooSmall
	}
	return m.size, nil
}

func (m *MemBackend) Read(timeout time.Duration) ([]byte, error) {
	select {
	case b := <-m.feed:
		return b, nil
	case <-time.After(timeout):
		return nil, nil
	}
}

func (m *MemBackend) Restore() { m.Restored = true; m.rawOn = false; m.altOn = false }

var _ Backend = (*MemBackend)(nil)
