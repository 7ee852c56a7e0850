package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUpArrow(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x1B, 0x5B, 0x41})
	events := d.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyUp}, events[0])
	assert.True(t, d.Empty())
}

func TestDecodeCtrlUpArrow(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x1B, 0x5B, 0x31, 0x3B, 0x35, 0x41})
	events := d.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyUp, Mods: ModCtrl}, events[0])
}

func TestDecodeCharThenUpInOrder(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x61, 0x1B, 0x5B, 0x41})
	events := d.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, KeyEvent{Code: KeyChar, Rune: 'a'}, events[0])
	assert.Equal(t, KeyEvent{Code: KeyUp}, events[1])
}

func TestDecodeTruncatedSequenceAcrossReads(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x1B, 0x5B})
	assert.Empty(t, d.Drain())
	d.Feed([]byte{0x41})
	events := d.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyUp}, events[0])
	assert.True(t, d.Empty())
}

func TestBareEscapeResolvesOnTimeout(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x1B})
	assert.Empty(t, d.Drain())
	assert.True(t, d.HasPendingEscape())
	ev, ok := d.Timeout()
	require.True(t, ok)
	assert.Equal(t, KeyEvent{Code: KeyEscape}, ev)
	assert.True(t, d.Empty())
}

func TestDecodeEnterTabBackspace(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x0D, 0x09, 0x7F})
	events := d.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, KeyEnter, events[0].Code)
	assert.Equal(t, KeyTab, events[1].Code)
	assert.Equal(t, KeyBackspace, events[2].Code)
}

func TestDecodeCtrlChar(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x03}) // Ctrl+C
	events := d.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyChar, Rune: 'c', Mods: ModCtrl}, events[0])
}

func TestDecodeHomeEndViaCSI(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x1B, '[', 'H'})
	d.Feed([]byte{0x1B, '[', 'F'})
	events := d.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, KeyEvent{Code: KeyHome}, events[0])
	assert.Equal(t, KeyEvent{Code: KeyEnd}, events[1])
}

func TestDecodeTildeTable(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x1B, '[', '3', '~'}) // Delete
	events := d.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyDelete}, events[0])
}

func TestDecodeInvalidSequenceDroppedSilently(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte{0x1B, '[', 'Z'}) // not in our mapping
	events := d.Drain()
	assert.Empty(t, events)
	assert.True(t, d.Empty())
}

func TestDecodeUTF8Rune(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte("é"))
	events := d.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, rune('é'), events[0].Rune)
}
