package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/domain"
	"github.com/gitpilot/gitpilot/internal/input"
	"github.com/gitpilot/gitpilot/internal/repo"
	"github.com/gitpilot/gitpilot/internal/viewmodel"
)

// dispatch implements spec.md §4.5's dispatch policy: navigation/focus/
// dialog/mode actions mutate the ViewModel directly; everything else is
// delegated to the repository collaborator, subject to the
// confirm-before-destructive-op gate.
func (c *Controller) dispatch(ctx context.Context, a action.Action) {
	if c.dispatchNavigation(a) {
		return
	}
	switch a.Kind {
	case action.Quit:
		c.quit = true
		return
	case action.ToggleHelp:
		c.vm.HelpVisible = !c.vm.HelpVisible
		return
	case action.Cancel:
		c.vm.Mode = viewmodel.ModeNormal
		return
	case action.Search:
		c.vm.PushDialog(viewmodel.Dialog{Tag: viewmodel.DialogSearch})
		return
	}

	if destructiveKinds[a.Kind] && c.cfg.ConfirmDestructive && c.pending == nil {
		c.pending = &pendingConfirm{kind: a.Kind, param: a.Param}
		c.vm.PushDialog(viewmodel.Dialog{
			Tag: viewmodel.DialogConfirm,
			Confirm: viewmodel.Confirm{
				Message: "Are you sure? (y/n)",
				OnYes:   a,
			},
		})
		return
	}
	c.pending = nil

	c.runRepoAction(ctx, a)
}

// dispatchNavigation handles the pure ViewModel mutations shared by every
// panel, returning true if it consumed the action.
func (c *Controller) dispatchNavigation(a action.Action) bool {
	rows := c.listRows(c.vm.FocusedPanel())
	switch a.Kind {
	case action.NextPanel:
		c.vm.FocusNext()
	case action.PrevPanel:
		c.vm.FocusPrev()
	case action.FocusPanel0:
		c.vm.FocusPanel(0)
	case action.FocusPanel1:
		c.vm.FocusPanel(1)
	case action.FocusPanel2:
		c.vm.FocusPanel(2)
	case action.FocusPanel3:
		c.vm.FocusPanel(3)
	case action.MoveDown:
		c.moveList(func(l listLike) { l.MoveDown(rows) })
	case action.MoveUp:
		c.moveList(func(l listLike) { l.MoveUp(rows) })
	case action.PageDown:
		c.moveList(func(l listLike) { l.PageDown(rows) })
	case action.PageUp:
		c.moveList(func(l listLike) { l.PageUp(rows) })
	case action.GoToTop:
		c.moveList(func(l listLike) { l.GoToTop() })
	case action.GoToBottom:
		c.moveList(func(l listLike) { l.GoToBottom(rows) })
	default:
		return false
	}
	return true
}

// listLike lets dispatchNavigation share one switch across the three
// differently-typed List[T] fields without reflection.
type listLike interface {
	MoveDown(int)
	MoveUp(int)
	PageDown(int)
	PageUp(int)
	GoToTop()
	GoToBottom(int)
}

func (c *Controller) moveList(f func(listLike)) {
	switch c.vm.FocusedPanel().Kind {
	case action.PanelStatus:
		f(&c.vm.StatusList)
	case action.PanelBranches:
		f(&c.vm.BranchesList)
	case action.PanelCommits:
		f(&c.vm.CommitsList)
	}
}

// runRepoAction performs the (validate, invoke, targeted-refresh) sequence
// for an action already past the confirm gate.
func (c *Controller) runRepoAction(ctx context.Context, a action.Action) {
	switch a.Kind {
	case action.StageFile:
		c.withSelectedFile(func(path string) {
			c.logged("stage_file", c.repo.StageFile(ctx, path))
			c.refreshStatus(ctx)
		})
	case action.StageAll:
		c.logged("stage_all", c.repo.StageAll(ctx))
		c.refreshStatus(ctx)
	case action.UnstageAll:
		c.logged("unstage_all", c.repo.UnstageAll(ctx))
		c.refreshStatus(ctx)
	case action.Discard:
		c.withSelectedFile(func(path string) {
			c.logged("discard", c.repo.Discard(ctx, path))
			c.refreshStatus(ctx)
		})
	case action.Commit:
		c.vm.PushDialog(viewmodel.Dialog{Tag: viewmodel.DialogInput, Input: viewmodel.Input{Prompt: "Commit message", SubmitAction: action.Commit}})

	case action.Checkout:
		c.withSelectedBranch(func(b domain.BranchInfo) {
			c.switchOrStash(ctx, b.Name)
		})
	case action.CreateBranch:
		c.vm.PushDialog(viewmodel.Dialog{Tag: viewmodel.DialogInput, Input: viewmodel.Input{Prompt: "New branch name", SubmitAction: action.CreateBranch}})
	case action.DeleteBranch, action.ForceDeleteBranch:
		c.withSelectedBranch(func(b domain.BranchInfo) {
			c.logged("delete_branch", c.repo.DeleteBranch(ctx, b.Name, a.Kind == action.ForceDeleteBranch))
			c.refreshBranches(ctx)
		})
	case action.Merge:
		c.withSelectedBranch(func(b domain.BranchInfo) {
			_, err := c.repo.Merge(ctx, b.Name)
			c.logged("merge", err)
			c.refreshAll(ctx)
		})
	case action.Rebase:
		c.withSelectedBranch(func(b domain.BranchInfo) {
			_, err := c.repo.Rebase(ctx, b.Name)
			c.logged("rebase", err)
			c.refreshAll(ctx)
		})

	case action.CommitDetails:
		c.withSelectedCommit(func(cm domain.CommitInfo) {
			c.vm.MainKind = viewmodel.MainTextKind
			c.vm.MainText = viewmodel.NewText([]string{cm.ID, cm.Author, cm.Subject})
		})
	case action.CopyHash:
		c.withSelectedCommit(func(cm domain.CommitInfo) {
			if c.clip != nil {
				_ = c.clip.Write(cm.ID)
			}
		})
	case action.SearchNext, action.SearchPrev:
		// No effect: search results are not kept once the Search dialog
		// closes, so there is nothing to step through.

	case action.StashDrop:
		c.logged("stash_drop", c.repo.StashDrop(ctx, 0))
		c.refreshAll(ctx)
	case action.StashPop:
		c.logged("stash_pop", c.repo.StashPop(ctx, 0))
		c.refreshAll(ctx)
	case action.StashSave:
		c.logged("stash_save", c.repo.StashSave(ctx, ""))
		c.refreshAll(ctx)

	case action.Push:
		c.runNetwork(ctx, "push", c.repo.Push)
	case action.Pull:
		c.runNetwork(ctx, "pull", c.repo.Pull)
	case action.Fetch:
		c.runNetwork(ctx, "fetch", c.repo.Fetch)
	}
}

type networkOp func(ctx context.Context, remote, branch string, cb repo.Callbacks) error

// runNetwork drives a Push/Pull/Fetch through a Progress dialog, wiring its
// callback to mutate only that dialog's counters (spec.md §9: "a narrow
// capability to mutate a specific dialog").
func (c *Controller) runNetwork(ctx context.Context, label string, op networkOp) {
	c.vm.PushDialog(viewmodel.Dialog{Tag: viewmodel.DialogProgress, Progress: viewmodel.Progress{Label: label}})
	cb := repo.Callbacks{
		Progress: func(p domain.ProgressUpdate) {
			if c.vm.Dialog != nil && c.vm.Dialog.Tag == viewmodel.DialogProgress {
				c.vm.Dialog.Progress.Current = p.Received
				c.vm.Dialog.Progress.Total = p.Total
				if c.progressSnapshots != nil {
					c.progressSnapshots = append(c.progressSnapshots, c.vm.Dialog.Progress)
				}
			}
		},
	}
	err := op(ctx, "origin", c.vm.Header.Branch, cb)
	c.vm.CloseDialog()
	if err != nil {
		c.logged(label, err)
	} else {
		c.vm.Footer.Hints = []string{label + " completed"}
	}
	c.refreshAll(ctx)
}

func (c *Controller) switchOrStash(ctx context.Context, branch string) {
	clean, err := c.repo.IsClean(ctx)
	if err == nil && !clean {
		c.vm.PushDialog(viewmodel.Dialog{
			Tag: viewmodel.DialogConfirm,
			Confirm: viewmodel.Confirm{
				Message: "Working tree is dirty",
				Choices: []viewmodel.ConfirmChoice{
					{Key: 's', Label: "Stash", Action: action.WithParam(action.Checkout, branch)},
					{Key: 'd', Label: "Discard", Action: action.WithParam(action.Checkout, branch)},
					{Key: 'c', Label: "Cancel"},
				},
			},
		})
		return
	}
	c.logged("switch_branch", c.repo.SwitchBranch(ctx, branch))
	c.refreshAll(ctx)
}

func (c *Controller) withSelectedFile(f func(path string)) {
	fc, ok := c.vm.StatusList.Selected()
	if !ok {
		return
	}
	f(fc.Path)
}

func (c *Controller) withSelectedBranch(f func(domain.BranchInfo)) {
	b, ok := c.vm.BranchesList.Selected()
	if !ok {
		return
	}
	f(b)
}

func (c *Controller) withSelectedCommit(f func(domain.CommitInfo)) {
	cm, ok := c.vm.CommitsList.Selected()
	if !ok {
		return
	}
	f(cm)
}

func (c *Controller) refreshStatus(ctx context.Context) {
	if st, err := c.repo.Status(ctx); err == nil {
		c.setStatus(st)
	}
}

func (c *Controller) refreshBranches(ctx context.Context) {
	if branches, err := c.repo.Branches(ctx, repo.BranchesAll); err == nil {
		c.vm.BranchesList.SetItems(branches, c.listRows(c.vm.Panels[1]))
	}
}

func (c *Controller) logged(op string, err error) {
	if err != nil {
		c.log.RepoError(op, err)
		msg := err.Error()
		var re *repo.RepositoryError
		if errors.As(err, &re) {
			msg = re.Op + " failed"
		}
		c.vm.PushDialog(viewmodel.Dialog{Tag: viewmodel.DialogError, Error: viewmodel.Error{Message: msg}})
		return
	}
	c.log.Action(op, panelName(c.vm.FocusedPanel().Kind), "ok")
}

func panelName(k action.PanelKind) string {
	switch k {
	case action.PanelStatus:
		return "status"
	case action.PanelBranches:
		return "branches"
	case action.PanelCommits:
		return "commits"
	case action.PanelMain:
		return "main"
	default:
		return "unknown"
	}
}

// handleDialogKey routes a key through the active dialog's own tiny
// handler (spec.md §4.5: "if a Dialog is active, route through the
// dialog's handler").
func (c *Controller) handleDialogKey(ctx context.Context, ev input.KeyEvent) {
	d := c.vm.Dialog
	switch d.Tag {
	case viewmodel.DialogError, viewmodel.DialogProgress:
		if ev.Code == input.KeyEscape || ev.Code == input.KeyEnter {
			c.vm.CloseDialog()
		}
	case viewmodel.DialogConfirm:
		c.handleConfirmKey(ctx, ev, d.Confirm)
	case viewmodel.DialogInput:
		c.handleInputKey(ctx, ev, &d.Input)
	case viewmodel.DialogSearch:
		c.handleSearchKey(ev, &d.Search)
	}
}

func (c *Controller) handleConfirmKey(ctx context.Context, ev input.KeyEvent, confirm viewmodel.Confirm) {
	if ev.Code == input.KeyEscape {
		c.pending = nil
		c.vm.CloseDialog()
		return
	}
	if ev.Code != input.KeyChar {
		return
	}
	for _, choice := range confirm.Choices {
		if ev.Rune != choice.Key {
			continue
		}
		c.vm.CloseDialog()
		if choice.Label == "Cancel" {
			return
		}
		// Scenario 4 (spec.md §8): Stash stashes first, Discard proceeds
		// straight to the switch; both then land on the target branch.
		if choice.Label == "Stash" {
			c.logged("stash_save", c.repo.StashSave(ctx, ""))
		}
		c.logged("switch_branch", c.repo.SwitchBranch(ctx, choice.Action.Param))
		c.refreshAll(ctx)
		return
	}
	if ev.Rune == 'y' {
		c.vm.CloseDialog()
		pending := c.pending
		c.pending = nil
		if pending != nil {
			c.runRepoAction(ctx, action.Action{Kind: pending.kind, Param: pending.param})
		}
		return
	}
	if ev.Rune == 'n' {
		c.pending = nil
		c.vm.CloseDialog()
	}
}

func (c *Controller) handleInputKey(ctx context.Context, ev input.KeyEvent, in *viewmodel.Input) {
	switch ev.Code {
	case input.KeyEscape:
		c.vm.CloseDialog()
	case input.KeyEnter:
		value := in.Value
		submit := in.SubmitAction
		c.vm.CloseDialog()
		switch submit {
		case action.Commit:
			id, err := c.repo.Commit(ctx, value)
			c.logged("commit", err)
			_ = id
			c.refreshStatus(ctx)
			c.refreshAll(ctx)
		case action.CreateBranch:
			c.logged("create_branch", c.repo.CreateBranch(ctx, value, ""))
			c.refreshBranches(ctx)
		}
	case input.KeyBackspace:
		if in.Cursor > 0 {
			r := []rune(in.Value)
			in.Value = string(r[:in.Cursor-1]) + string(r[in.Cursor:])
			in.Cursor--
		}
	case input.KeyChar:
		r := []rune(in.Value)
		in.Value = string(r[:in.Cursor]) + string(ev.Rune) + string(r[in.Cursor:])
		in.Cursor++
	}
}

func (c *Controller) handleSearchKey(ev input.KeyEvent, s *viewmodel.Search) {
	switch ev.Code {
	case input.KeyEscape:
		c.vm.CloseDialog()
	case input.KeyEnter:
		mode, term := viewmodel.DeriveMode(s.Query)
		s.Mode = mode
		s.Results = c.filterCommits(term, mode)
		c.vm.CloseDialog()
		if len(s.Results) > 0 {
			c.vm.CommitsList.Sel = s.Results[0]
		}
	case input.KeyBackspace:
		if s.Cursor > 0 {
			r := []rune(s.Query)
			s.Query = string(r[:s.Cursor-1]) + string(r[s.Cursor:])
			s.Cursor--
		}
	case input.KeyChar:
		r := []rune(s.Query)
		s.Query = string(r[:s.Cursor]) + string(ev.Rune) + string(r[s.Cursor:])
		s.Cursor++
	}
}

// filterCommits implements scenario 3's case-insensitive message/author/
// hash-prefix filter directly over the already-cached commit slice.
func (c *Controller) filterCommits(term string, mode viewmodel.SearchMode) []int {
	var out []int
	for i, cm := range c.vm.CommitsList.Items {
		var field string
		match := strings.Contains
		switch mode {
		case viewmodel.SearchAuthor:
			field = cm.Author
		case viewmodel.SearchHash:
			field = cm.ID
			match = strings.HasPrefix
		default:
			field = cm.Subject
		}
		if match(strings.ToLower(field), strings.ToLower(term)) {
			out = append(out, i)
		}
	}
	return out
}
