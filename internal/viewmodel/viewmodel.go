package viewmodel

import (
	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/domain"
	"github.com/gitpilot/gitpilot/internal/layout"
)

// Mode is the app's current input mode (spec.md §3).
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeCommand
	ModeDialog
)

// Header is the header snapshot: repo name, current reference,
// ahead/behind counters and clean flag (spec.md §3).
type Header struct {
	RepoName    string
	Branch      string
	Detached    bool
	ShortHash   string
	Ahead, Behind int
	Clean       bool
}

// Footer is the footer snapshot: a context-sensitive key hint list.
type Footer struct {
	Hints []string
}

// ViewModel is the union described in spec.md §3: an ordered panel list
// (always Status, Branches, Commits, Main, in focus-cycle order), the
// focused index, an optional Dialog, a Header snapshot, a Footer snapshot
// and an app Mode.
type ViewModel struct {
	Panels       []Panel
	FocusedIndex int
	Dialog       *Dialog
	Header       Header
	Footer       Footer
	Mode         Mode

	StatusList   List[domain.FileChange]
	BranchesList List[domain.BranchInfo]
	CommitsList  List[domain.CommitInfo]

	MainKind MainContentKind
	MainDiff Diff
	MainText Text
	MainList List[string]

	HelpVisible bool

	Size struct{ Width, Height int }
}

// New constructs a ViewModel with the four always-visible panels in focus
// order and Status focused, per spec.md §3's invariant.
func New() *ViewModel {
	vm := &ViewModel{
		Panels: []Panel{
			{Kind: action.PanelStatus, Focused: true},
			{Kind: action.PanelBranches},
			{Kind: action.PanelCommits},
			{Kind: action.PanelMain},
		},
		FocusedIndex: 0,
		MainKind:     MainEmpty,
	}
	return vm
}

// ApplyLayout recomputes every panel's Rect from a fresh layout.Layout
// (spec.md §3: "Panels are created once; their Rects are recomputed on
// every resize").
func (vm *ViewModel) ApplyLayout(l layout.Layout) {
	for i := range vm.Panels {
		switch vm.Panels[i].Kind {
		case action.PanelStatus:
			vm.Panels[i].Rect = l.Status
		case action.PanelBranches:
			vm.Panels[i].Rect = l.Branches
		case action.PanelCommits:
			vm.Panels[i].Rect = l.Commits
		case action.PanelMain:
			vm.Panels[i].Rect = l.Main
		}
	}
}

// FocusedPanel returns the currently focused panel.
func (vm *ViewModel) FocusedPanel() Panel {
	return vm.Panels[vm.FocusedIndex]
}

// FocusNext advances focus to the next panel in cycle order, wrapping.
// Applying it len(Panels) times is the identity (spec.md §8).
func (vm *ViewModel) FocusNext() {
	vm.setFocus((vm.FocusedIndex + 1) % len(vm.Panels))
}

// FocusPrev retreats focus to the previous panel in cycle order, wrapping.
func (vm *ViewModel) FocusPrev() {
	vm.setFocus((vm.FocusedIndex - 1 + len(vm.Panels)) % len(vm.Panels))
}

// FocusPanel focuses the panel at index i, if in range.
func (vm *ViewModel) FocusPanel(i int) {
	if i < 0 || i >= len(vm.Panels) {
		return
	}
	vm.setFocus(i)
}

func (vm *ViewModel) setFocus(i int) {
	for j := range vm.Panels {
		vm.Panels[j].Focused = j == i
	}
	vm.FocusedIndex = i
}

// PushDialog installs a dialog, switching Mode to ModeDialog. Per spec.md
// §9, pushing while one is already active is a programming error in the
// controller — callers must CloseDialog first.
func (vm *ViewModel) PushDialog(d Dialog) {
	vm.Dialog = &d
	vm.Mode = ModeDialog
}

// CloseDialog removes the active dialog and returns to normal mode.
func (vm *ViewModel) CloseDialog() {
	vm.Dialog = nil
	vm.Mode = ModeNormal
}

// FooterHints derives the footer hint list from the focused panel's kind
// (spec.md §4.4: "a pure function").
func FooterHints(panel action.PanelKind, mode Mode) []string {
	if mode == ModeDialog {
		return []string{"enter: confirm", "esc: cancel"}
	}
	switch panel {
	case action.PanelStatus:
		return []string{"enter/space: stage", "a: stage all", "A: unstage all", "d: discard", "c: commit"}
	case action.PanelBranches:
		return []string{"enter: checkout", "n: new", "d: delete", "D: force delete", "m: merge", "R: rebase", "t: remotes"}
	case action.PanelCommits:
		return []string{"enter: details", "/: search", "c: cherry-pick", "r: revert", "y: copy hash"}
	case action.PanelMain:
		return []string{"enter/space: stage hunk", "[/]: hunk", "{/}: file"}
	default:
		return nil
	}
}
