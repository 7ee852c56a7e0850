package viewmodel

// DiffLineKind classifies one rendered diff line (spec.md §3).
type DiffLineKind int

const (
	DiffContext DiffLineKind = iota
	DiffAddition
	DiffDeletion
	DiffHunkHeader
)

// DiffLine is one line of a hunk's rendered content.
type DiffLine struct {
	Kind               DiffLineKind
	Content            string
	OldLineNo, NewLineNo int
}

// Hunk is a contiguous group of changed lines introduced by a header line.
type Hunk struct {
	Header string
	Lines  []DiffLine
}

// Diff is the Main panel's content state when showing a file diff: a path,
// its hunks, a scroll offset and an optionally selected hunk (spec.md §4.4).
type Diff struct {
	Path         string
	Hunks        []Hunk
	Offset       int
	SelectedHunk int // -1 when no hunk is selected
}

// NewDiff creates a Diff state with no hunk selected.
func NewDiff(path string, hunks []Hunk) Diff {
	return Diff{Path: path, Hunks: hunks, SelectedHunk: -1}
}

// NextHunk selects the next hunk, clamped at the last one.
func (d *Diff) NextHunk() {
	if len(d.Hunks) == 0 {
		return
	}
	if d.SelectedHunk < 0 {
		d.SelectedHunk = 0
		return
	}
	if d.SelectedHunk < len(d.Hunks)-1 {
		d.SelectedHunk++
	}
}

// PrevHunk selects the previous hunk, clamped at the first one.
func (d *Diff) PrevHunk() {
	if len(d.Hunks) == 0 {
		return
	}
	if d.SelectedHunk <= 0 {
		d.SelectedHunk = 0
		return
	}
	d.SelectedHunk--
}
