// Package action defines the closed enumeration of user intents produced by
// the input decoder / keybinding resolver, and the default keybinding table
// (spec.md §3, §6).
package action

// Kind is a closed enumeration of user intents.
type Kind int

const (
	// Navigation.
	MoveUp Kind = iota
	MoveDown
	NextPanel
	PrevPanel
	PageUp
	PageDown
	GoToTop
	GoToBottom
	FocusPanel0
	FocusPanel1
	FocusPanel2
	FocusPanel3

	// Global.
	Quit
	ToggleHelp
	Cancel
	Search
	Command

	// Status panel (domain).
	StageFile
	StageAll
	UnstageAll
	Discard
	Commit

	// Branches panel (domain).
	Checkout
	CreateBranch
	DeleteBranch
	ForceDeleteBranch
	Merge
	Rebase
	ToggleRemote

	// Commits panel (domain).
	CommitDetails
	SearchNext
	SearchPrev
	CherryPick
	Revert
	CopyHash

	// Diff panel (domain).
	StageHunk
	PrevHunk
	NextHunk
	PrevFile
	NextFile

	// Network (domain).
	Push
	Pull
	Fetch

	// Stash (domain).
	StashSave
	StashPop
	StashDrop
	StashList

	// Tags (domain).
	CreateTag
	DeleteTag
	PushTag

	// Dialog-internal.
	Submit
	DialogCancel
	EditCursor
)

// Action is a dispatched user intent. Param carries the handful of
// parameterized actions (FocusPanel's index folds into the Kind constants
// above, so Param is only needed for free-form payloads like EditCursor's
// rune or a dialog choice).
type Action struct {
	Kind  Kind
	Param string
}

// New builds a parameterless action.
func New(k Kind) Action { return Action{Kind: k} }

// WithParam builds an action carrying a string payload.
func WithParam(k Kind, param string) Action { return Action{Kind: k, Param: param} }
