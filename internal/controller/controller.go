// Package controller implements the single-threaded cooperative event loop
// of spec.md §4.5: compute layout, render, wait for input with a bounded
// timeout, resolve and dispatch one action, poll refreshes, repeat until
// quit.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/gitpilot/gitpilot/internal/action"
	"github.com/gitpilot/gitpilot/internal/applog"
	"github.com/gitpilot/gitpilot/internal/clip"
	"github.com/gitpilot/gitpilot/internal/config"
	"github.com/gitpilot/gitpilot/internal/domain"
	"github.com/gitpilot/gitpilot/internal/input"
	"github.com/gitpilot/gitpilot/internal/layout"
	"github.com/gitpilot/gitpilot/internal/render"
	"github.com/gitpilot/gitpilot/internal/repo"
	"github.com/gitpilot/gitpilot/internal/termio"
	"github.com/gitpilot/gitpilot/internal/viewmodel"
)

// pollTimeout is the event loop's cooperative wait bound (spec.md §4.5:
// "a short cooperative timeout (≈100 ms)").
const pollTimeout = 100 * time.Millisecond

// destructiveKinds lists actions that, under ConfirmDestructive, require an
// answered Confirm dialog before they run (spec.md §4.5 dispatch policy).
var destructiveKinds = map[action.Kind]bool{
	action.Discard:            true,
	action.DeleteBranch:       true,
	action.ForceDeleteBranch:  true,
	action.StashDrop:          true,
	action.UnstageAll:         true,
}

// pendingConfirm remembers the action a Confirm dialog is waiting to
// approve, plus the string payload (a path, branch name, etc.) it needs.
type pendingConfirm struct {
	kind  action.Kind
	param string
}

// Controller owns every long-lived component and runs the loop.
type Controller struct {
	term  termio.Backend
	rend  *render.Renderer
	dec   *input.Decoder
	table *action.Table
	vm    *viewmodel.ViewModel
	repo  repo.Collaborator
	cfg   config.Config
	log   *applog.Logger
	clip  clip.Writer

	repoName string
	width    int
	height   int
	tooSmall bool
	quit     bool
	exitCode int

	pending *pendingConfirm

	// resizeCh signals that the terminal was resized (SIGWINCH on unix);
	// nil unless WatchResize wires it in. Polled once per loop iteration
	// rather than selected on alongside Read, since Read already bounds
	// each iteration to pollTimeout.
	resizeCh <-chan struct{}

	// progressSnapshots records every Progress dialog update runNetwork
	// applies; nil in production use, populated by tests that need to
	// observe intermediate percentages a synchronous fake op passes through.
	progressSnapshots []viewmodel.Progress
}

// WatchResize wires a resize-notification channel (from termio.WatchResize)
// into the event loop, so a live SIGWINCH recomputes layout and re-evaluates
// the too-small gate (spec.md §4.2/§8 scenario 5) instead of only doing so
// under test.
func (c *Controller) WatchResize(ch <-chan struct{}) {
	c.resizeCh = ch
}

// New wires the five components of spec.md §3 together. width and height
// are the terminal's current dimensions as already probed by the caller.
func New(term termio.Backend, coll repo.Collaborator, table *action.Table, cfg config.Config, log *applog.Logger, clipWriter clip.Writer, repoName string, width, height int) *Controller {
	return &Controller{
		term:     term,
		rend:     render.New(term, width, height),
		dec:      input.NewDecoder(),
		table:    table,
		vm:       viewmodel.New(),
		repo:     coll,
		cfg:      cfg,
		log:      log,
		clip:     clipWriter,
		repoName: repoName,
		width:    width,
		height:   height,
	}
}

// Run executes the event loop until Quit is dispatched or ctx is
// cancelled, restoring the terminal on every exit path (spec.md §5's
// guaranteed-release requirement).
func (c *Controller) Run(ctx context.Context) (exitCode int, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.term.Restore()
			c.log.Fatal("panic in event loop", toError(r))
			exitCode = 1
		}
	}()
	defer func() {
		_ = c.rend.ShowCursor()
		c.term.Restore()
	}()

	c.refreshAll(ctx)

	for !c.quit {
		select {
		case <-ctx.Done():
			return c.exitCode, ctx.Err()
		case <-c.resizeCh:
			c.HandleResize()
		default:
		}

		if err := c.renderFrame(); err != nil {
			c.log.Fatal("terminal I/O failure", err)
			return 2, err
		}

		if err := c.pump(ctx); err != nil {
			return 1, err
		}
	}
	return c.exitCode, nil
}

func toError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return errors.New("panic")
}

// pump waits for one input chunk (or the cooperative timeout), decodes it,
// and dispatches at most the events it yields.
func (c *Controller) pump(ctx context.Context) error {
	b, err := c.term.Read(pollTimeout)
	if err != nil {
		return err
	}
	if b == nil {
		if ev, ok := c.dec.Timeout(); ok {
			c.handleKey(ctx, ev)
		}
		return nil
	}
	c.dec.Feed(b)
	for _, ev := range c.dec.Drain() {
		c.handleKey(ctx, ev)
	}
	return nil
}

// HandleResize re-probes terminal size and reacts per spec.md §4.5/§8
// scenario 5: below the minimum surface, only Quit is processed.
func (c *Controller) HandleResize() {
	size, err := c.term.Size()
	c.width, c.height = size.Cols, size.Rows
	c.tooSmall = errors.Is(err, termio.ErrSizeTooSmall)
	if !c.tooSmall {
		c.rend.Resize(c.width, c.height)
	}
}

func (c *Controller) handleKey(ctx context.Context, ev input.KeyEvent) {
	if c.tooSmall {
		if ev.Code == input.KeyChar && ev.Rune == 'q' {
			c.quit = true
		}
		return
	}

	panel := c.vm.FocusedPanel().Kind
	if c.vm.Dialog != nil {
		c.handleDialogKey(ctx, ev)
		return
	}

	a, ok := c.table.Resolve(panel, ev)
	if !ok {
		return
	}
	c.dispatch(ctx, a)
}

// renderFrame composes and flushes one frame. A non-nil return is a mid-loop
// terminal I/O failure, which Run treats as fatal (spec.md §7: exit code 2).
func (c *Controller) renderFrame() error {
	if c.tooSmall {
		composeTooSmall(c.rend.Buffer().Front(), c.width, c.height)
	} else {
		c.vm.ApplyLayout(layout.Compute(c.width, c.height))
		compose(c.rend.Buffer().Front(), c.vm, c.width, c.height)
	}
	return c.rend.Flush()
}

// refreshAll reloads every cached slice. Run calls it at startup, and the
// dispatcher calls it after commits, checkouts, branch deletion, merges,
// stash and tag operations, remote operations and the explicit refresh
// action; HandleResize does not call it.
func (c *Controller) refreshAll(ctx context.Context) {
	cb, err := c.repo.CurrentBranch(ctx)
	if err == nil {
		c.vm.Header.Branch = cb.Name
		c.vm.Header.Detached = cb.Detached
		c.vm.Header.ShortHash = cb.ShortHash
	}
	c.vm.Header.RepoName = c.repoName

	if st, err := c.repo.Status(ctx); err == nil {
		c.setStatus(st)
	}
	if branches, err := c.repo.Branches(ctx, repo.BranchesAll); err == nil {
		c.vm.BranchesList.SetItems(branches, c.listRows(c.vm.Panels[1]))
		c.setHeaderDivergence(branches)
	}
	if commits, err := c.repo.Commits(ctx, 200); err == nil {
		c.vm.CommitsList.SetItems(commits, c.listRows(c.vm.Panels[2]))
	}
}

// setHeaderDivergence copies the current HEAD branch's ahead/behind counters
// into the header snapshot. CurrentBranch doesn't carry them — only the
// per-branch BranchInfo from Branches() does — so refreshAll picks the
// branch flagged IsHead out of the slice it just fetched.
func (c *Controller) setHeaderDivergence(branches []domain.BranchInfo) {
	for _, b := range branches {
		if b.IsHead {
			c.vm.Header.Ahead = b.Ahead
			c.vm.Header.Behind = b.Behind
			return
		}
	}
}

func (c *Controller) setStatus(st domain.Status) {
	c.vm.Header.Clean = st.IsClean()
	items := make([]domain.FileChange, 0, len(st.Staged)+len(st.Unstaged)+len(st.Untracked))
	items = append(items, st.Staged...)
	items = append(items, st.Unstaged...)
	items = append(items, st.Untracked...)
	c.vm.StatusList.SetItems(items, c.listRows(c.vm.Panels[0]))
}

func (c *Controller) listRows(p viewmodel.Panel) int {
	if p.Rect.Height <= 2 {
		return 1
	}
	return p.Rect.Height - 2
}
