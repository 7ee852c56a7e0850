package viewmodel

import "github.com/gitpilot/gitpilot/internal/action"

// DialogTag discriminates the single-slot dialog stack (spec.md §4.4, §9).
type DialogTag int

const (
	DialogConfirm DialogTag = iota
	DialogInput
	DialogSearch
	DialogProgress
	DialogError
)

// SearchMode selects which field a Search dialog's query matches against,
// chosen by a leading sigil on the query (spec.md §4.4).
type SearchMode int

const (
	SearchMessage SearchMode = iota
	SearchAuthor
	SearchHash
)

// Confirm holds a message and the action to run if the user answers Yes.
type Confirm struct {
	Message string
	OnYes   action.Action
	// Choices lists extra labeled alternatives beyond plain Yes/No, used by
	// the dirty-checkout dialog (Stash/Discard/Cancel, spec.md §7).
	Choices []ConfirmChoice
}

// ConfirmChoice is one labeled alternative in a multi-choice Confirm dialog.
type ConfirmChoice struct {
	Key    rune
	Label  string
	Action action.Action
}

// Input holds a free-text prompt: a prompt string, current value, cursor
// position (in runes) and the action to submit on Enter.
type Input struct {
	Prompt       string
	Value        string
	Cursor       int
	SubmitAction action.Kind
}

// Search holds a query, cursor, mode (derived from a leading @ or # sigil)
// and the result indices into the target list (spec.md §4.4).
type Search struct {
	Query   string
	Cursor  int
	Mode    SearchMode
	Results []int
}

// DeriveMode inspects the query's leading sigil and returns the resulting
// mode plus the sigil-stripped term to match against.
func DeriveMode(query string) (SearchMode, string) {
	if len(query) == 0 {
		return SearchMessage, query
	}
	switch query[0] {
	case '@':
		return SearchAuthor, query[1:]
	case '#':
		return SearchHash, query[1:]
	default:
		return SearchMessage, query
	}
}

// Progress shows a current/total counter pair updated by the controller
// during a long-running network operation (spec.md §4.5).
type Progress struct {
	Label   string
	Current int
	Total   int
}

// Percent returns the completion percentage, 0 when Total is 0.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	pct := p.Current * 100 / p.Total
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Error is a modal dialog for multi-line repository/validation errors
// (spec.md §7).
type Error struct {
	Message string
}

// Dialog is the single-slot, tag-discriminated modal stack entry. Exactly
// one of the typed fields is meaningful, selected by Tag. Pushing a new
// dialog while one is active is disallowed — the controller must close
// first (spec.md §9).
type Dialog struct {
	Tag      DialogTag
	Confirm  Confirm
	Input    Input
	Search   Search
	Progress Progress
	Error    Error
}
