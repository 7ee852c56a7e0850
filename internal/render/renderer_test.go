package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpilot/gitpilot/internal/cellbuf"
)

func TestFlushIsNullDiffOnUnchangedFrame(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, 5, 1)
	r.Buffer().Front().SetString(0, 0, "hi", cellbuf.NewStyle(), cellbuf.NewRect(0, 0, 5, 1))
	require.NoError(t, r.Flush())

	out.Reset()
	r.Buffer().Front().SetString(0, 0, "hi", cellbuf.NewStyle(), cellbuf.NewRect(0, 0, 5, 1))
	require.NoError(t, r.Flush())

	assert.Empty(t, out.String())
}

func TestFlushWritesOnlyChangedCells(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, 5, 1)
	r.Buffer().Front().SetString(0, 0, "ab", cellbuf.NewStyle(), cellbuf.NewRect(0, 0, 5, 1))
	require.NoError(t, r.Flush())

	out.Reset()
	r.Buffer().Front().SetString(0, 0, "ac", cellbuf.NewStyle(), cellbuf.NewRect(0, 0, 5, 1))
	require.NoError(t, r.Flush())

	// Only the second cell ('b' -> 'c') changed; expect exactly one cursor
	// move + one glyph, no redraw of the unchanged first cell.
	assert.Contains(t, out.String(), "c")
	assert.NotContains(t, out.String(), "aa")
}

func TestResizeForcesFullRedraw(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, 3, 1)
	r.Buffer().Front().SetString(0, 0, "ab", cellbuf.NewStyle(), cellbuf.NewRect(0, 0, 3, 1))
	require.NoError(t, r.Flush())

	r.Resize(3, 1)
	out.Reset()
	r.Buffer().Front().SetString(0, 0, "ab", cellbuf.NewStyle(), cellbuf.NewRect(0, 0, 3, 1))
	require.NoError(t, r.Flush())

	assert.NotEmpty(t, out.String())
}

func TestStyleDeltaWeakerTransitionEmitsFullReset(t *testing.T) {
	bold := cellbuf.NewStyle().WithAttr(cellbuf.AttrBold)
	plain := cellbuf.NewStyle()
	delta := styleDelta(bold, plain)
	assert.Contains(t, delta, "0")
}

func TestStyleDeltaAdditiveDoesNotReset(t *testing.T) {
	plain := cellbuf.NewStyle()
	bold := plain.WithAttr(cellbuf.AttrBold)
	delta := styleDelta(plain, bold)
	assert.NotContains(t, delta, ";0")
	assert.Contains(t, delta, "1")
}
