package cellbuf

// Attr is a bitset of styling attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Has reports whether the bitset contains attr.
func (a Attr) Has(attr Attr) bool { return a&attr != 0 }

// Style bundles the three style fields a Cell carries: foreground, background
// and attribute bitset (spec.md §3/§4.2). It is immutable and comparable.
type Style struct {
	FG    Color
	BG    Color
	Attrs Attr
}

// NewStyle returns the default style: reset colors, no attributes.
func NewStyle() Style {
	return Style{FG: Reset(), BG: Reset(), Attrs: 0}
}

// WithFG returns a copy with the foreground color replaced.
func (s Style) WithFG(c Color) Style { s.FG = c; return s }

// WithBG returns a copy with the background color replaced.
func (s Style) WithBG(c Color) Style { s.BG = c; return s }

// WithAttr returns a copy with attr added to the bitset.
func (s Style) WithAttr(attr Attr) Style { s.Attrs |= attr; return s }

// Equal reports whether two styles are identical in every field.
func (s Style) Equal(other Style) bool {
	return s.FG.Equal(other.FG) && s.BG.Equal(other.BG) && s.Attrs == other.Attrs
}

// isWeakerThan reports whether next drops at least one attribute that s has,
// forcing a full SGR reset rather than additive escapes (spec.md §4.2).
func (s Style) isWeakerThan(next Style) bool {
	return s.Attrs&^next.Attrs != 0
}
