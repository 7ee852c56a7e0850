package cellbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferGetSetRoundTrip(t *testing.T) {
	b := NewBuffer(10, 5)
	c := Cell{Grapheme: "x", Style: NewStyle().WithAttr(AttrBold)}
	b.Set(3, 2, c)
	assert.True(t, b.Get(3, 2).Equal(c))
}

func TestBufferOutOfRangeIsNoop(t *testing.T) {
	b := NewBuffer(4, 4)
	b.Set(-1, 0, Cell{Grapheme: "x"})
	b.Set(10, 10, Cell{Grapheme: "x"})
	assert.True(t, b.Get(-1, 0).Equal(EmptyCell()))
	assert.True(t, b.Get(10, 10).Equal(EmptyCell()))
}

func TestBufferResizeReallocates(t *testing.T) {
	b := NewBuffer(4, 4)
	b.Set(1, 1, Cell{Grapheme: "x"})
	b.Resize(8, 2)
	require.Equal(t, 8, b.Width())
	require.Equal(t, 2, b.Height())
	assert.True(t, b.Get(1, 1).Equal(EmptyCell()))
}

func TestBufferSetStringTruncatesAtRightEdge(t *testing.T) {
	b := NewBuffer(10, 1)
	rect := NewRect(0, 0, 5, 1)
	n := b.SetString(0, 0, "hello world", NewStyle(), rect)
	assert.Equal(t, 5, n)
	assert.Equal(t, "o", b.Get(4, 0).Grapheme)
	assert.True(t, b.Get(5, 0).Equal(EmptyCell()))
}

func TestBufferSetStringIsGraphemeAware(t *testing.T) {
	b := NewBuffer(10, 1)
	rect := NewRect(0, 0, 10, 1)
	n := b.SetString(0, 0, "café", NewStyle(), rect)
	assert.Equal(t, 4, n)
}

func TestDoubleBufferSwap(t *testing.T) {
	d := NewDoubleBuffer(3, 3)
	d.Front().Set(0, 0, Cell{Grapheme: "a"})
	d.Swap()
	assert.Equal(t, "a", d.Back().Get(0, 0).Grapheme)
}

func TestDoubleBufferResizeForcesSentinel(t *testing.T) {
	d := NewDoubleBuffer(3, 3)
	d.Back().Set(0, 0, Cell{Grapheme: "a"})
	d.Resize(4, 4)
	assert.False(t, d.Back().Get(0, 0).Equal(Cell{Grapheme: "a"}))
}
