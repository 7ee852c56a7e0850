package render

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/gitpilot/gitpilot/internal/cellbuf"
)

// Renderer owns a DoubleBuffer and flushes the cell-level diff between
// consecutive frames to an io.Writer (normally the Terminal Backend's
// stdout). It tracks the logical cursor position and active style so
// repeated identical values never re-emit escapes (spec.md §4.2).
type Renderer struct {
	out          *bufio.Writer
	buf          *cellbuf.DoubleBuffer
	cursorX      int
	cursorY      int
	cursorKnown  bool
	activeStyle  cellbuf.Style
	cursorHidden bool
}

// New creates a Renderer writing to w, with a double buffer sized width x
// height.
func New(w io.Writer, width, height int) *Renderer {
	return &Renderer{
		out:         bufio.NewWriter(w),
		buf:         cellbuf.NewDoubleBuffer(width, height),
		activeStyle: cellbuf.NewStyle(),
	}
}

// Buffer exposes the renderer's double buffer so view composition can write
// into the front buffer.
func (r *Renderer) Buffer() *cellbuf.DoubleBuffer { return r.buf }

// Resize reallocates the double buffer, forcing a full redraw on the next
// Flush (spec.md §4.2 resize handling).
func (r *Renderer) Resize(width, height int) {
	r.buf.Resize(width, height)
	r.cursorKnown = false
}

// Flush computes the diff between the front buffer (just composed) and the
// back buffer (last frame written), emits the escapes for every changed
// cell, then swaps front/back. Per spec.md §8's null-diff property, an
// unchanged frame writes zero bytes.
func (r *Renderer) Flush() error {
	ops := Diff(r.buf.Back(), r.buf.Front())

	if len(ops) > 0 {
		if !r.cursorHidden {
			if _, err := r.out.WriteString(cursorHide); err != nil {
				return errors.Wrap(err, "render: hide cursor")
			}
			r.cursorHidden = true
		}
		for _, op := range ops {
			if err := r.writeOp(op); err != nil {
				return errors.Wrap(err, "render: write cell")
			}
		}
	}

	r.buf.Swap()
	if err := r.out.Flush(); err != nil {
		return errors.Wrap(err, "render: flush")
	}
	return nil
}

func (r *Renderer) writeOp(op Op) error {
	if !r.cursorKnown || r.cursorX != op.X || r.cursorY != op.Y {
		if _, err := r.out.WriteString(moveCursor(op.X, op.Y)); err != nil {
			return err
		}
	}

	if delta := styleDelta(r.activeStyle, op.Cell.Style); delta != "" {
		if _, err := r.out.WriteString(delta); err != nil {
			return err
		}
		r.activeStyle = op.Cell.Style
	}

	grapheme := op.Cell.Grapheme
	if grapheme == "" {
		grapheme = " "
	}
	if _, err := r.out.WriteString(grapheme); err != nil {
		return err
	}

	r.cursorX = op.X + 1
	r.cursorY = op.Y
	r.cursorKnown = true
	return nil
}

// ShowCursor restores cursor visibility, normally called once at program
// shutdown (spec.md §4.2: "cursor is hidden during the render pass and
// restored... at the end").
func (r *Renderer) ShowCursor() error {
	if !r.cursorHidden {
		return nil
	}
	if _, err := r.out.WriteString(cursorShow); err != nil {
		return errors.Wrap(err, "render: show cursor")
	}
	r.cursorHidden = false
	return r.out.Flush()
}
