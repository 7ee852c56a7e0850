package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/applog"
	"github.com/gitpilot/gitpilot/internal/config"
	"github.com/gitpilot/gitpilot/internal/domain"
	"github.com/gitpilot/gitpilot/internal/input"
	"github.com/gitpilot/gitpilot/internal/repo"
	"github.com/gitpilot/gitpilot/internal/termio"
	"github.com/gitpilot/gitpilot/internal/viewmodel"
)

func newTestController(term termio.Backend, fake *repo.Fake, w, h int) *Controller {
	cfg := config.DefaultConfig()
	return New(term, fake, action.DefaultTable(), cfg, applog.NewDiscard(), nil, "gitpilot", w, h)
}

// Scenario 1 (spec.md §8): a clean repo at startup renders the exact header
// format, and 'q' quits cleanly.
func TestScenarioCleanRepoStartupAndQuit(t *testing.T) {
	term := termio.NewMemBackend(80, 24)
	fake := &repo.Fake{
		CurrentResult: repo.CurrentBranch{Name: "main"},
		StatusResult:  domain.Status{},
	}
	c := newTestController(term, fake, 80, 24)

	c.refreshAll(context.Background())

	assert.Equal(t, "main", c.vm.Header.Branch)
	assert.True(t, c.vm.Header.Clean)
	assert.Equal(t, "g - [gitpilot] | branch: main | ↑0 ↓0 | ✓ clean", headerLine(c.vm.Header))

	c.handleKey(context.Background(), input.KeyEvent{Code: input.KeyChar, Rune: 'q'})
	assert.True(t, c.quit)
}

// Scenario 2 (spec.md §8): pressing Enter on a selected Status row stages it.
func TestScenarioStageFileViaEnter(t *testing.T) {
	term := termio.NewMemBackend(80, 24)
	fake := &repo.Fake{
		StatusResult: domain.Status{
			Unstaged: []domain.FileChange{{Path: "a.go", Kind: domain.Modified}},
		},
	}
	c := newTestController(term, fake, 80, 24)
	ctx := context.Background()
	c.refreshAll(ctx)

	require.Equal(t, action.PanelStatus, c.vm.FocusedPanel().Kind)
	path, ok := c.vm.StatusList.Selected()
	require.True(t, ok)
	require.Equal(t, "a.go", path.Path)

	c.handleKey(ctx, input.KeyEvent{Code: input.KeyEnter})

	assert.Contains(t, fake.Calls, "StageFile:a.go")
}

// Scenario 3 (spec.md §8): search filters commits by message, @author or
// #hash depending on the query's leading sigil.
func TestScenarioSearchFiltersCommits(t *testing.T) {
	term := termio.NewMemBackend(80, 24)
	fake := &repo.Fake{
		CommitsResult: []domain.CommitInfo{
			{ID: "abc123", ShortID: "abc123", Subject: "fix login bug", Author: "alice"},
			{ID: "def456", ShortID: "def456", Subject: "add docs", Author: "bob"},
			{ID: "abcdef", ShortID: "abcdef", Subject: "refactor parser", Author: "alice"},
		},
	}
	c := newTestController(term, fake, 80, 24)
	ctx := context.Background()
	c.refreshAll(ctx)
	c.vm.FocusPanel(2) // Commits

	byMessage := c.filterCommits("fix", viewmodel.SearchMessage)
	assert.Equal(t, []int{0}, byMessage)

	byAuthor := c.filterCommits("alice", viewmodel.SearchAuthor)
	assert.Equal(t, []int{0, 2}, byAuthor)

	byHash := c.filterCommits("abc", viewmodel.SearchHash)
	assert.Equal(t, []int{0, 2}, byHash)

	c.dispatch(ctx, action.New(action.Search))
	require.NotNil(t, c.vm.Dialog)
	assert.Equal(t, viewmodel.DialogSearch, c.vm.Dialog.Tag)

	for _, r := range "@alice" {
		c.handleDialogKey(ctx, input.KeyEvent{Code: input.KeyChar, Rune: r})
	}
	c.handleDialogKey(ctx, input.KeyEvent{Code: input.KeyEnter})

	assert.Nil(t, c.vm.Dialog)
	assert.Equal(t, 0, c.vm.CommitsList.Sel)
}

// Scenario 4 (spec.md §8): checking out a branch with a dirty worktree opens
// a Stash/Discard/Cancel Confirm dialog; Cancel leaves the branch untouched.
func TestScenarioDirtyCheckoutConfirmDialog(t *testing.T) {
	ctx := context.Background()

	newDirty := func() (*Controller, *repo.Fake) {
		term := termio.NewMemBackend(80, 24)
		fake := &repo.Fake{
			CleanResult:    false,
			BranchesResult: []domain.BranchInfo{{Name: "feature"}},
		}
		c := newTestController(term, fake, 80, 24)
		c.refreshAll(ctx)
		c.vm.FocusPanel(1) // Branches
		c.dispatch(ctx, action.New(action.Checkout))
		require.NotNil(t, c.vm.Dialog)
		require.Equal(t, viewmodel.DialogConfirm, c.vm.Dialog.Tag)
		require.Len(t, c.vm.Dialog.Confirm.Choices, 3)
		return c, fake
	}

	t.Run("stash", func(t *testing.T) {
		c, fake := newDirty()
		c.handleDialogKey(ctx, input.KeyEvent{Code: input.KeyChar, Rune: 's'})
		assert.Nil(t, c.vm.Dialog)
		assert.Contains(t, fake.Calls, "StashSave")
		assert.Contains(t, fake.Calls, "SwitchBranch:feature")
	})

	t.Run("discard", func(t *testing.T) {
		c, fake := newDirty()
		c.handleDialogKey(ctx, input.KeyEvent{Code: input.KeyChar, Rune: 'd'})
		assert.Nil(t, c.vm.Dialog)
		assert.NotContains(t, fake.Calls, "StashSave")
		assert.Contains(t, fake.Calls, "SwitchBranch:feature")
	})

	t.Run("cancel", func(t *testing.T) {
		c, fake := newDirty()
		c.handleDialogKey(ctx, input.KeyEvent{Code: input.KeyChar, Rune: 'c'})
		assert.Nil(t, c.vm.Dialog)
		for _, call := range fake.Calls {
			assert.NotContains(t, call, "SwitchBranch")
			assert.NotContains(t, call, "StashSave")
		}
	})
}

// Scenario 5 (spec.md §8): below the minimum terminal surface, only Quit is
// processed; every other key is dropped.
func TestScenarioTerminalTooSmallRestrictsInputToQuit(t *testing.T) {
	term := termio.NewMemBackend(40, 10)
	fake := &repo.Fake{}
	c := newTestController(term, fake, 40, 10)
	c.HandleResize()
	require.True(t, c.tooSmall)

	c.handleKey(context.Background(), input.KeyEvent{Code: input.KeyChar, Rune: 'x'})
	assert.False(t, c.quit)

	c.renderFrame()

	c.handleKey(context.Background(), input.KeyEvent{Code: input.KeyChar, Rune: 'q'})
	assert.True(t, c.quit)
}

// Scenario 6 (spec.md §8): a Progress dialog's percentage tracks a pull's
// reported received/total counters.
func TestScenarioProgressDialogDuringPull(t *testing.T) {
	term := termio.NewMemBackend(80, 24)
	fake := &repo.Fake{
		PullProgress: []domain.ProgressUpdate{
			{Received: 25, Total: 100, Stage: "Receiving objects"},
			{Received: 100, Total: 100, Stage: "Receiving objects"},
		},
	}
	c := newTestController(term, fake, 80, 24)
	ctx := context.Background()

	c.progressSnapshots = []viewmodel.Progress{}
	c.dispatch(ctx, action.New(action.Pull))

	require.Len(t, c.progressSnapshots, 2)
	assert.Equal(t, 25, c.progressSnapshots[0].Percent())
	assert.Equal(t, 100, c.progressSnapshots[1].Percent())
	assert.Nil(t, c.vm.Dialog, "dialog closes once the network op completes")
	assert.Contains(t, fake.Calls, "Pull")
}
