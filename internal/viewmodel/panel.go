package viewmodel

import (
	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/cellbuf"
)

// Panel is a panel's identity, computed rect and focus flag (spec.md §3).
// Its typed content state lives on ViewModel by name (StatusList,
// BranchesList, CommitsList, Main*) rather than on Panel itself, because Go
// has no covariant "one of several generic instantiations" field — the
// fixed four-panel shape of spec.md §4.4 makes that indirection free.
type Panel struct {
	Kind    action.PanelKind
	Rect    cellbuf.Rect
	Focused bool
}

// MainContentKind discriminates which content state the Main panel
// currently shows (spec.md §4.4's Diff | List | Text union, here resolved
// by the Main panel's single dynamic slot).
type MainContentKind int

const (
	MainEmpty MainContentKind = iota
	MainDiffKind
	MainTextKind
	MainListKind
)
