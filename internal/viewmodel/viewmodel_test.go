package viewmodel

import (
	"testing"

	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFocusesStatusPanel(t *testing.T) {
	vm := New()
	require.Len(t, vm.Panels, 4)
	assert.Equal(t, action.PanelStatus, vm.FocusedPanel().Kind)
	assert.True(t, vm.Panels[0].Focused)
}

func TestFocusNextCyclesAndWraps(t *testing.T) {
	vm := New()
	for i := 0; i < len(vm.Panels); i++ {
		vm.FocusNext()
	}
	assert.Equal(t, action.PanelStatus, vm.FocusedPanel().Kind, "full cycle returns to start")
}

func TestFocusNextThenPrevIsIdentity(t *testing.T) {
	vm := New()
	vm.FocusNext()
	vm.FocusNext()
	vm.FocusPrev()
	vm.FocusPrev()
	assert.Equal(t, 0, vm.FocusedIndex)
}

func TestFocusExactlyOnePanelFocused(t *testing.T) {
	vm := New()
	vm.FocusNext()
	focused := 0
	for _, p := range vm.Panels {
		if p.Focused {
			focused++
		}
	}
	assert.Equal(t, 1, focused)
}

func TestFocusPanelOutOfRangeIsNoop(t *testing.T) {
	vm := New()
	vm.FocusPanel(99)
	assert.Equal(t, 0, vm.FocusedIndex)
}

func TestApplyLayoutAssignsEachPanelRect(t *testing.T) {
	vm := New()
	l := layout.Compute(120, 40)
	vm.ApplyLayout(l)
	for _, p := range vm.Panels {
		switch p.Kind {
		case action.PanelStatus:
			assert.Equal(t, l.Status, p.Rect)
		case action.PanelBranches:
			assert.Equal(t, l.Branches, p.Rect)
		case action.PanelCommits:
			assert.Equal(t, l.Commits, p.Rect)
		case action.PanelMain:
			assert.Equal(t, l.Main, p.Rect)
		}
	}
}

func TestPushThenCloseDialogRestoresNormalMode(t *testing.T) {
	vm := New()
	vm.PushDialog(Dialog{Tag: DialogConfirm, Confirm: Confirm{Message: "sure?"}})
	assert.Equal(t, ModeDialog, vm.Mode)
	require.NotNil(t, vm.Dialog)
	vm.CloseDialog()
	assert.Equal(t, ModeNormal, vm.Mode)
	assert.Nil(t, vm.Dialog)
}

func TestFooterHintsDialogModeOverridesPanel(t *testing.T) {
	hints := FooterHints(action.PanelStatus, ModeDialog)
	assert.Contains(t, hints, "esc: cancel")
}

func TestFooterHintsPerPanel(t *testing.T) {
	assert.NotEmpty(t, FooterHints(action.PanelStatus, ModeNormal))
	assert.NotEmpty(t, FooterHints(action.PanelBranches, ModeNormal))
	assert.NotEmpty(t, FooterHints(action.PanelCommits, ModeNormal))
	assert.NotEmpty(t, FooterHints(action.PanelMain, ModeNormal))
}
