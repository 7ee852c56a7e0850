package action

import "github.com/gitpilot/gitpilot/internal/input"

// binding is a hashable key for the lookup table: a key code, its rune (for
// KeyChar) and its modifier bitset.
type binding struct {
	code input.Code
	r    rune
	mods input.Mod
}

func keyOf(ev input.KeyEvent) binding {
	return binding{code: ev.Code, r: ev.Rune, mods: ev.Mods}
}

func ch(r rune) binding      { return binding{code: input.KeyChar, r: r} }
func ctrl(r rune) binding    { return binding{code: input.KeyChar, r: r, mods: input.ModCtrl} }
func key(c input.Code) binding { return binding{code: c} }

// Table is a pure lookup from (focused panel, key) to Action, built once at
// startup by DefaultTable; keybinding overrides from the configuration file
// are not applied to it. It never mutates after construction.
type Table struct {
	global map[binding]Action
	panel  map[PanelKind]map[binding]Action
}

// DefaultTable returns the default keybinding surface from spec.md §6.
func DefaultTable() *Table {
	t := &Table{
		global: map[binding]Action{
			ch('q'):             New(Quit),
			ctrl('c'):           New(Quit),
			ch('?'):             New(ToggleHelp),
			key(input.KeyEscape): New(Cancel),
			ch('/'):             New(Search),
			ch(':'):             New(Command),
			ch('j'):             New(MoveDown),
			key(input.KeyDown):  New(MoveDown),
			ch('k'):             New(MoveUp),
			key(input.KeyUp):    New(MoveUp),
			ch('h'):             New(PrevPanel),
			key(input.KeyLeft):  New(PrevPanel),
			ch('l'):             New(NextPanel),
			key(input.KeyRight): New(NextPanel),
			ch('g'):             New(GoToTop),
			ch('G'):        New(GoToBottom),
			ctrl('u'):           New(PageUp),
			ctrl('d'):           New(PageDown),
			ch('1'):             New(FocusPanel0),
			ch('2'):             New(FocusPanel1),
			ch('3'):             New(FocusPanel2),
			ch('4'):             New(FocusPanel3),
			key(input.KeyTab):   New(NextPanel),
			{code: input.KeyTab, mods: input.ModShift}: New(PrevPanel),
		},
		panel: map[PanelKind]map[binding]Action{
			PanelStatus: {
				key(input.KeyEnter): New(StageFile),
				ch(' '):             New(StageFile),
				ch('a'):             New(StageAll),
				ch('A'):        New(UnstageAll),
				ch('d'):             New(Discard),
				ch('c'):             New(Commit),
			},
			PanelBranches: {
				key(input.KeyEnter): New(Checkout),
				ch('n'):             New(CreateBranch),
				ch('d'):             New(DeleteBranch),
				ch('D'):        New(ForceDeleteBranch),
				ch('m'):             New(Merge),
				ch('R'):        New(Rebase),
				ch('t'):             New(ToggleRemote),
			},
			PanelCommits: {
				key(input.KeyEnter): New(CommitDetails),
				ch('/'):             New(Search),
				ch('n'):             New(SearchNext),
				ch('N'):        New(SearchPrev),
				ch('c'):             New(CherryPick),
				ch('r'):             New(Revert),
				ch('y'):             New(CopyHash),
			},
			PanelMain: {
				key(input.KeyEnter): New(StageHunk),
				ch(' '):             New(StageHunk),
				ch('['):             New(PrevHunk),
				ch(']'):             New(NextHunk),
				ch('{'):             New(PrevFile),
				ch('}'):             New(NextFile),
			},
		},
	}
	return t
}

// Resolve looks up the Action for a key given the focused panel. Panel
// bindings take precedence over global bindings; an unmatched key returns
// (Action{}, false) so the controller can drop it (spec.md §4.5).
func (t *Table) Resolve(panel PanelKind, ev input.KeyEvent) (Action, bool) {
	b := keyOf(ev)
	if panelTable, ok := t.panel[panel]; ok {
		if a, ok := panelTable[b]; ok {
			return a, true
		}
	}
	if a, ok := t.global[b]; ok {
		return a, true
	}
	return Action{}, false
}
