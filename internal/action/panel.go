package action

// PanelKind identifies one of the dashboard's panels (spec.md §3). It lives
// in this package (rather than viewmodel) because the keybinding table is
// keyed by (PanelKind, KeyEvent) and action must not import viewmodel.
type PanelKind int

const (
	PanelStatus PanelKind = iota
	PanelBranches
	PanelCommits
	PanelMain
	PanelStash
	PanelTags
)

// FocusCycle is the fixed focus order from spec.md §4.4:
// Status -> Branches -> Commits -> Main -> Status.
var FocusCycle = []PanelKind{PanelStatus, PanelBranches, PanelCommits, PanelMain}
