package viewmodel

// Text is the content state for free-flowing help/overlay content
// (spec.md §4.4).
type Text struct {
	Lines  []string
	Offset int
}

// NewText creates a Text state from lines.
func NewText(lines []string) Text { return Text{Lines: lines} }
