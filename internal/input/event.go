// Package input turns a raw byte stream from the Terminal Backend into
// typed key/resize events (spec.md §4.3).
package input

// Code identifies a key independent of any printable rune it may carry.
type Code int

const (
	KeyChar Code = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Mod is a bitset of key modifiers.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether the bitset contains mod.
func (m Mod) Has(mod Mod) bool { return m&mod != 0 }

// KeyEvent is a decoded key press: a code plus, for KeyChar, the printable
// rune, plus a modifier bitset (spec.md §3).
type KeyEvent struct {
	Code Code
	Rune rune
	Mods Mod
}

// Event is the union spec.md §3 describes: a KeyEvent or a ResizeEvent. The
// decoder's internal "need more bytes" signal never escapes this package —
// Decoder.Drain simply returns no event for a pending prefix.
type Event interface{ isEvent() }

// KeyEvent satisfies Event.
func (KeyEvent) isEvent() {}

// ResizeEvent carries the new terminal dimensions. Neither the byte decoder
// nor the controller constructs one: resizes reach Controller.HandleResize
// directly.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}
