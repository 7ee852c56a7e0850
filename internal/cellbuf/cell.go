package cellbuf

// Cell is the atomic render unit: a single visible grapheme cluster plus a
// Style. Two cells compare equal iff every field is equal; equality drives
// the redraw diff (spec.md §3).
type Cell struct {
	Grapheme string
	Style    Style
}

// EmptyCell is the default cell: a single space with the default style.
func EmptyCell() Cell {
	return Cell{Grapheme: " ", Style: NewStyle()}
}

// Equal reports whether two cells are identical.
func (c Cell) Equal(other Cell) bool {
	return c.Grapheme == other.Grapheme && c.Style.Equal(other.Style)
}

// sentinelCell can never equal a real cell produced by view composition; it
// is used to force a full redraw after a resize (spec.md §4.2).
var sentinelCell = Cell{Grapheme: "\x00", Style: Style{Attrs: 0xFF}}
