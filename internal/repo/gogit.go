package repo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/gitpilot/gitpilot/internal/domain"
)

// GoGit is the go-git-backed Collaborator implementation (spec.md §6). It is
// the only package in this module that imports go-git directly; everyone
// else talks to the Collaborator interface.
type GoGit struct {
	repo *git.Repository
	path string
}

var _ Collaborator = (*GoGit)(nil)

// Open opens the repository containing path, walking up through parent
// directories to find the enclosing .git (spec.md §6 open_current).
func Open(path string) (*GoGit, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, classify("open_current", err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, classify("open_current", err)
	}
	return &GoGit{repo: r, path: wt.Filesystem.Root()}, nil
}

func (g *GoGit) worktree() (*git.Worktree, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, classify("worktree", err)
	}
	return wt, nil
}

// classify maps a go-git error into a RepositoryError carrying an
// ErrorKind, so the controller can branch on category rather than string
// content.
func classify(op string, err error) *RepositoryError {
	if err == nil {
		return nil
	}
	kind := ErrUnknown
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists), errors.Is(err, git.ErrBranchNotFound),
		errors.Is(err, git.ErrTagNotFound), errors.Is(err, plumbing.ErrReferenceNotFound):
		kind = ErrNotFound
	case errors.Is(err, git.ErrWorktreeNotClean), errors.Is(err, git.ErrUnstagedChanges):
		kind = ErrDirtyWorktree
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		kind = ErrAuth
	case errors.Is(err, transport.ErrRepositoryNotFound), errors.Is(err, transport.ErrEmptyRemoteRepository):
		kind = ErrNetwork
	}
	return &RepositoryError{Op: op, Kind: kind, Err: errors.Wrap(err, op)}
}

func statusKind(s git.StatusCode) domain.ChangeKind {
	switch s {
	case git.Added:
		return domain.Added
	case git.Deleted:
		return domain.Deleted
	case git.Renamed:
		return domain.Renamed
	case git.Untracked:
		return domain.Untracked
	case git.UpdatedButUnmerged:
		return domain.Conflicted
	default:
		return domain.Modified
	}
}

// Status implements Collaborator.
func (g *GoGit) Status(ctx context.Context) (domain.Status, error) {
	wt, err := g.worktree()
	if err != nil {
		return domain.Status{}, err
	}
	st, err := wt.Status()
	if err != nil {
		return domain.Status{}, classify("status", err)
	}
	var out domain.Status
	for path, fs := range st {
		if fs.Staging != git.Unmodified && fs.Staging != git.Untracked {
			out.Staged = append(out.Staged, domain.FileChange{Path: path, Kind: statusKind(fs.Staging)})
		}
		switch fs.Worktree {
		case git.Untracked:
			out.Untracked = append(out.Untracked, domain.FileChange{Path: path, Kind: domain.Untracked})
		case git.Unmodified:
		default:
			out.Unstaged = append(out.Unstaged, domain.FileChange{Path: path, Kind: statusKind(fs.Worktree)})
		}
	}
	sortChanges(out.Staged)
	sortChanges(out.Unstaged)
	sortChanges(out.Untracked)
	return out, nil
}

func sortChanges(c []domain.FileChange) {
	sort.Slice(c, func(i, j int) bool { return c[i].Path < c[j].Path })
}

// IsClean implements Collaborator.
func (g *GoGit) IsClean(ctx context.Context) (bool, error) {
	s, err := g.Status(ctx)
	if err != nil {
		return false, err
	}
	return s.IsClean(), nil
}

// Branches implements Collaborator.
func (g *GoGit) Branches(ctx context.Context, filter BranchFilter) ([]domain.BranchInfo, error) {
	var out []domain.BranchInfo
	head, _ := g.repo.Head()

	if filter != BranchesRemote {
		iter, err := g.repo.Branches()
		if err != nil {
			return nil, classify("branches", err)
		}
		err = iter.ForEach(func(ref *plumbing.Reference) error {
			name := ref.Name().Short()
			info := domain.BranchInfo{Name: name, IsHead: head != nil && ref.Name() == head.Name()}
			if cfg, err := g.repo.Reference(plumbing.NewRemoteTrackingReferenceName("origin", name), true); err == nil {
				info.Upstream = "origin/" + name
				ahead, behind, _ := g.aheadBehind(ref.Hash(), cfg.Hash())
				info.Ahead, info.Behind = ahead, behind
			}
			out = append(out, info)
			return nil
		})
		if err != nil {
			return nil, classify("branches", err)
		}
	}
	if filter != BranchesLocal {
		refs, err := g.repo.References()
		if err != nil {
			return nil, classify("branches", err)
		}
		err = refs.ForEach(func(ref *plumbing.Reference) error {
			if ref.Name().IsRemote() {
				out = append(out, domain.BranchInfo{Name: ref.Name().Short(), IsRemote: true})
			}
			return nil
		})
		if err != nil {
			return nil, classify("branches", err)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (g *GoGit) aheadBehind(local, upstream plumbing.Hash) (ahead, behind int, err error) {
	if local == upstream {
		return 0, 0, nil
	}
	localCommits, err := g.commitSet(local)
	if err != nil {
		return 0, 0, err
	}
	upstreamCommits, err := g.commitSet(upstream)
	if err != nil {
		return 0, 0, err
	}
	for h := range localCommits {
		if _, ok := upstreamCommits[h]; !ok {
			ahead++
		}
	}
	for h := range upstreamCommits {
		if _, ok := localCommits[h]; !ok {
			behind++
		}
	}
	return ahead, behind, nil
}

func (g *GoGit) commitSet(from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	set := map[plumbing.Hash]struct{}{}
	commit, err := g.repo.CommitObject(from)
	if err != nil {
		return nil, err
	}
	iter := object.NewCommitIterBSF(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		set[c.Hash] = struct{}{}
		if len(set) > 500 {
			return storerStop
		}
		return nil
	})
	if err != nil && err != storerStop {
		return nil, err
	}
	return set, nil
}

var storerStop = fmt.Errorf("stop")

// CurrentBranch implements Collaborator.
func (g *GoGit) CurrentBranch(ctx context.Context) (CurrentBranch, error) {
	head, err := g.repo.Head()
	if err != nil {
		return CurrentBranch{}, classify("current_branch", err)
	}
	if head.Name().IsBranch() {
		return CurrentBranch{Name: head.Name().Short()}, nil
	}
	return CurrentBranch{Detached: true, ShortHash: head.Hash().String()[:7]}, nil
}

// Commits implements Collaborator.
func (g *GoGit) Commits(ctx context.Context, max int) ([]domain.CommitInfo, error) {
	head, err := g.repo.Head()
	if err != nil {
		return nil, classify("commits", err)
	}
	iter, err := g.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, classify("commits", err)
	}
	var out []domain.CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		if max > 0 && len(out) >= max {
			return storerStop
		}
		out = append(out, toCommitInfo(c))
		return nil
	})
	if err != nil && err != storerStop {
		return nil, classify("commits", err)
	}
	return out, nil
}

func toCommitInfo(c *object.Commit) domain.CommitInfo {
	h := c.Hash.String()
	subject := c.Message
	if i := strings.IndexByte(subject, '\n'); i >= 0 {
		subject = subject[:i]
	}
	return domain.CommitInfo{
		ID:      h,
		ShortID: h[:7],
		Subject: subject,
		Author:  c.Author.Name,
		When:    c.Author.When,
	}
}

// SearchCommits implements Collaborator.
func (g *GoGit) SearchCommits(ctx context.Context, query string, mode SearchMode, max int) ([]domain.CommitInfo, error) {
	all, err := g.Commits(ctx, 0)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []domain.CommitInfo
	for _, c := range all {
		var field string
		switch mode {
		case SearchAuthor:
			field = c.Author
		case SearchHash:
			field = c.ID
		default:
			field = c.Subject
		}
		if strings.Contains(strings.ToLower(field), q) {
			out = append(out, c)
			if max > 0 && len(out) >= max {
				break
			}
		}
	}
	return out, nil
}

// DiffStaged implements Collaborator.
func (g *GoGit) DiffStaged(ctx context.Context) (domain.Diff, error) {
	return g.diffAgainstHead(ctx, true)
}

// DiffUnstaged implements Collaborator.
func (g *GoGit) DiffUnstaged(ctx context.Context) (domain.Diff, error) {
	return g.diffAgainstHead(ctx, false)
}

// diffAgainstHead produces a minimal, allocation-light diff: one FileDiff per
// changed path with its status and no hunks. DiffFile computes line hunks
// for a single file with diffmatchpatch; the staged/unstaged summary views
// only need per-file granularity, so this avoids computing hunks the UI
// never renders.
func (g *GoGit) diffAgainstHead(ctx context.Context, staged bool) (domain.Diff, error) {
	st, err := g.Status(ctx)
	if err != nil {
		return domain.Diff{}, err
	}
	changes := st.Unstaged
	if staged {
		changes = st.Staged
	}
	var diff domain.Diff
	for _, c := range changes {
		diff.Files = append(diff.Files, domain.FileDiff{Path: c.Path})
	}
	return diff, nil
}

// blobAtHead returns the HEAD-committed content of path, or "" if the path
// didn't exist at HEAD (a newly added file).
func (g *GoGit) blobAtHead(path string) (string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", err
	}
	commit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return "", err
	}
	tree, err := commit.Tree()
	if err != nil {
		return "", err
	}
	f, err := tree.File(path)
	if err != nil {
		if err == object.ErrFileNotFound {
			return "", nil
		}
		return "", err
	}
	return f.Contents()
}

// DiffFile implements Collaborator. It diffs the HEAD-committed blob
// against either the index (staged) or the worktree file (unstaged) using
// a line-level diff, since go-git's own patch machinery only diffs
// commit-to-commit (DESIGN.md).
func (g *GoGit) DiffFile(ctx context.Context, path string, staged bool) (domain.Diff, error) {
	oldContent, err := g.blobAtHead(path)
	if err != nil {
		return domain.Diff{}, classify("diff_file", err)
	}

	var newContent string
	if staged {
		idx, err := g.repo.Storer.Index()
		if err != nil {
			return domain.Diff{}, classify("diff_file", err)
		}
		entry, err := idx.Entry(path)
		if err != nil {
			return domain.Diff{}, classify("diff_file", err)
		}
		blob, err := g.repo.BlobObject(entry.Hash)
		if err != nil {
			return domain.Diff{}, classify("diff_file", err)
		}
		r, err := blob.Reader()
		if err != nil {
			return domain.Diff{}, classify("diff_file", err)
		}
		defer r.Close()
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			return domain.Diff{}, classify("diff_file", err)
		}
		newContent = buf.String()
	} else {
		b, err := os.ReadFile(filepath.Join(g.path, path))
		if err != nil && !os.IsNotExist(err) {
			return domain.Diff{}, classify("diff_file", err)
		}
		newContent = string(b)
	}

	hunk := lineDiffHunk(oldContent, newContent)
	return domain.Diff{Files: []domain.FileDiff{{Path: path, Hunks: []domain.Hunk{hunk}}}}, nil
}

// lineDiffHunk builds a single hunk covering the whole file from a
// dmp.DiffMain line-mode diff.
func lineDiffHunk(oldContent, newContent string) domain.Hunk {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var h domain.Hunk
	h.Header = "@@ -1 +1 @@"
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		var kind domain.DiffLineKind
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = domain.Addition
		case diffmatchpatch.DiffDelete:
			kind = domain.Deletion
		default:
			kind = domain.Context
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			dl := domain.DiffLine{Kind: kind, Content: strings.TrimSuffix(line, "\n")}
			switch kind {
			case domain.Addition:
				dl.NewLineNo = newLine
				newLine++
			case domain.Deletion:
				dl.OldLineNo = oldLine
				oldLine++
			default:
				dl.OldLineNo, dl.NewLineNo = oldLine, newLine
				oldLine++
				newLine++
			}
			h.Lines = append(h.Lines, dl)
		}
	}
	return h
}

// StageFile implements Collaborator.
func (g *GoGit) StageFile(ctx context.Context, path string) error {
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	if _, err := wt.Add(path); err != nil {
		return classify("stage_file", err)
	}
	return nil
}

// StageAll implements Collaborator.
func (g *GoGit) StageAll(ctx context.Context) error {
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return classify("stage_all", err)
	}
	return nil
}

// StageHunk implements Collaborator. go-git's plumbing has no hunk-level
// staging primitive (only whole-file Add), so a hunk stage falls back to
// staging the whole file it belongs to; DESIGN.md records this gap.
func (g *GoGit) StageHunk(ctx context.Context, path string, hunk domain.Hunk) error {
	return g.StageFile(ctx, path)
}

// UnstageFile implements Collaborator.
func (g *GoGit) UnstageFile(ctx context.Context, path string) error {
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	head, err := g.repo.Head()
	if err != nil {
		return classify("unstage_file", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.MixedReset, Files: []string{path}}); err != nil {
		return classify("unstage_file", err)
	}
	return nil
}

// UnstageAll implements Collaborator.
func (g *GoGit) UnstageAll(ctx context.Context) error {
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	head, err := g.repo.Head()
	if err != nil {
		return classify("unstage_all", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.MixedReset}); err != nil {
		return classify("unstage_all", err)
	}
	return nil
}

// Discard implements Collaborator: it restores path to its HEAD-committed
// content, or removes it entirely if it didn't exist at HEAD (a new or
// untracked file). go-git's Worktree.Checkout only supports whole-tree
// checkouts, not a single path (DESIGN.md), so this writes the blob
// directly rather than going through it.
func (g *GoGit) Discard(ctx context.Context, path string) error {
	full := filepath.Join(g.path, path)
	head, err := g.repo.Head()
	if err != nil {
		return classify("discard", err)
	}
	commit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return classify("discard", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return classify("discard", err)
	}
	f, err := tree.File(path)
	if err == object.ErrFileNotFound {
		if rmErr := os.Remove(full); rmErr != nil && !os.IsNotExist(rmErr) {
			return classify("discard", rmErr)
		}
		return nil
	}
	if err != nil {
		return classify("discard", err)
	}
	content, err := f.Contents()
	if err != nil {
		return classify("discard", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return classify("discard", err)
	}
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	if _, err := wt.Add(path); err == nil {
		if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.MixedReset}); err != nil {
			return classify("discard", err)
		}
	}
	return nil
}

// Commit implements Collaborator.
func (g *GoGit) Commit(ctx context.Context, message string) (string, error) {
	wt, err := g.worktree()
	if err != nil {
		return "", err
	}
	h, err := wt.Commit(message, &git.CommitOptions{})
	if err != nil {
		return "", classify("commit", err)
	}
	return h.String(), nil
}

// CreateBranch implements Collaborator.
func (g *GoGit) CreateBranch(ctx context.Context, name, base string) error {
	var from plumbing.Hash
	if base == "" {
		head, err := g.repo.Head()
		if err != nil {
			return classify("create_branch", err)
		}
		from = head.Hash()
	} else {
		ref, err := g.repo.Reference(plumbing.NewBranchReferenceName(base), true)
		if err != nil {
			return classify("create_branch", err)
		}
		from = ref.Hash()
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), from)
	if err := g.repo.Storer.SetReference(ref); err != nil {
		return classify("create_branch", err)
	}
	return nil
}

// DeleteBranch implements Collaborator. The force flag is ignored: go-git's
// reference removal is unconditional, so the branch is removed whether or
// not it is merged, and force and non-force deletes behave the same.
func (g *GoGit) DeleteBranch(ctx context.Context, name string, force bool) error {
	if err := g.repo.Storer.RemoveReference(plumbing.NewBranchReferenceName(name)); err != nil {
		return classify("delete_branch", err)
	}
	return nil
}

// SwitchBranch implements Collaborator.
func (g *GoGit) SwitchBranch(ctx context.Context, name string) error {
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}); err != nil {
		return classify("switch_branch", err)
	}
	return nil
}

// Merge implements Collaborator. go-git has no merge-commit primitive, so a
// non-fast-forward merge reports Conflict for the controller to surface;
// true three-way merges are out of go-git's public API (DESIGN.md).
func (g *GoGit) Merge(ctx context.Context, branch string) (domain.MergeOutcome, error) {
	head, err := g.repo.Head()
	if err != nil {
		return domain.UpToDate, classify("merge", err)
	}
	target, err := g.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return domain.UpToDate, classify("merge", err)
	}
	if head.Hash() == target.Hash() {
		return domain.UpToDate, nil
	}
	ancestors, err := g.commitSet(head.Hash())
	if err != nil {
		return domain.UpToDate, classify("merge", err)
	}
	if _, isAncestor := ancestors[target.Hash()]; isAncestor {
		return domain.UpToDate, nil
	}
	targetAncestors, err := g.commitSet(target.Hash())
	if err != nil {
		return domain.UpToDate, classify("merge", err)
	}
	if _, canFastForward := targetAncestors[head.Hash()]; canFastForward {
		wt, err := g.worktree()
		if err != nil {
			return domain.UpToDate, err
		}
		newRef := plumbing.NewHashReference(head.Name(), target.Hash())
		if err := g.repo.Storer.SetReference(newRef); err != nil {
			return domain.UpToDate, classify("merge", err)
		}
		if err := wt.Checkout(&git.CheckoutOptions{Force: true}); err != nil {
			return domain.UpToDate, classify("merge", err)
		}
		return domain.FastForward, nil
	}
	return domain.Conflict, nil
}

// Rebase implements Collaborator. Like Merge, go-git exposes no rebase
// primitive; only the fast-forward special case (the common "rebase onto
// an ancestor-free upstream" path) succeeds, everything else is reported
// as a conflict needing manual resolution (DESIGN.md).
func (g *GoGit) Rebase(ctx context.Context, upstream string) (domain.RebaseOutcome, error) {
	outcome, err := g.Merge(ctx, upstream)
	if err != nil {
		return domain.RebaseOutcome{}, err
	}
	if outcome == domain.Conflict {
		return domain.RebaseOutcome{Success: false}, nil
	}
	return domain.RebaseOutcome{Success: true}, nil
}

// stashRefPrefix namespaces the commits this collaborator uses to emulate
// a stash, since go-git's plumbing has no native stash support.
const stashRefPrefix = "refs/gitpilot/stash/"

// StashList implements Collaborator.
func (g *GoGit) StashList(ctx context.Context) ([]domain.StashEntry, error) {
	refs, err := g.repo.References()
	if err != nil {
		return nil, classify("stash_list", err)
	}
	var out []domain.StashEntry
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, stashRefPrefix) {
			return nil
		}
		idx := len(out)
		commit, err := g.repo.CommitObject(ref.Hash())
		msg := ""
		if err == nil {
			msg = strings.SplitN(commit.Message, "\n", 2)[0]
		}
		out = append(out, domain.StashEntry{Index: idx, Message: msg})
		return nil
	})
	if err != nil {
		return nil, classify("stash_list", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// StashSave implements Collaborator: it commits the current index and
// worktree onto a dedicated refs/gitpilot/stash/<n> ref, then hard-resets
// the worktree back to HEAD.
func (g *GoGit) StashSave(ctx context.Context, message string) error {
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	head, err := g.repo.Head()
	if err != nil {
		return classify("stash_save", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return classify("stash_save", err)
	}
	if message == "" {
		message = "gitpilot stash on " + head.Name().Short()
	}
	h, err := wt.Commit(message, &git.CommitOptions{AllowEmptyCommits: true})
	if err != nil {
		return classify("stash_save", err)
	}
	existing, _ := g.StashList(ctx)
	ref := plumbing.NewHashReference(plumbing.ReferenceName(stashRefPrefix+fmt.Sprint(len(existing))), h)
	if err := g.repo.Storer.SetReference(ref); err != nil {
		return classify("stash_save", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.HardReset}); err != nil {
		return classify("stash_save", err)
	}
	return nil
}

// StashPop implements Collaborator: cherry-picks the stash commit's tree
// onto the worktree and removes the stash ref.
func (g *GoGit) StashPop(ctx context.Context, index int) error {
	ref, err := g.repo.Reference(plumbing.ReferenceName(fmt.Sprintf("%s%d", stashRefPrefix, index)), true)
	if err != nil {
		return classify("stash_pop", err)
	}
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	head, err := g.repo.Head()
	if err != nil {
		return classify("stash_pop", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: ref.Hash(), Mode: git.MixedReset}); err != nil {
		return classify("stash_pop", err)
	}
	newRef := plumbing.NewHashReference(head.Name(), head.Hash())
	if err := g.repo.Storer.SetReference(newRef); err != nil {
		return classify("stash_pop", err)
	}
	if err := g.repo.Storer.RemoveReference(ref.Name()); err != nil {
		return classify("stash_pop", err)
	}
	return nil
}

// StashDrop implements Collaborator.
func (g *GoGit) StashDrop(ctx context.Context, index int) error {
	name := plumbing.ReferenceName(fmt.Sprintf("%s%d", stashRefPrefix, index))
	if err := g.repo.Storer.RemoveReference(name); err != nil {
		return classify("stash_drop", err)
	}
	return nil
}

func authMethod(remote string, cb Callbacks) (transport.AuthMethod, error) {
	if cb.Credentials == nil {
		return nil, nil
	}
	user, pass, err := cb.Credentials(remote)
	if err != nil {
		return nil, err
	}
	if user == "" && pass == "" {
		return nil, nil
	}
	return &http.BasicAuth{Username: user, Password: pass}, nil
}

type progressWriter struct {
	fn ProgressFunc
}

func (p progressWriter) Write(b []byte) (int, error) {
	if p.fn != nil {
		p.fn(domain.ProgressUpdate{Stage: strings.TrimSpace(string(b))})
	}
	return len(b), nil
}

// Push implements Collaborator.
func (g *GoGit) Push(ctx context.Context, remote, branch string, cb Callbacks) error {
	auth, err := authMethod(remote, cb)
	if err != nil {
		return classify("push", err)
	}
	opts := &git.PushOptions{RemoteName: remote, Auth: auth, Progress: progressWriter{cb.Progress}}
	if branch != "" {
		ref := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
		opts.RefSpecs = []config.RefSpec{ref}
	}
	if err := g.repo.PushContext(ctx, opts); err != nil && err != git.NoErrAlreadyUpToDate {
		return classify("push", err)
	}
	return nil
}

// Pull implements Collaborator.
func (g *GoGit) Pull(ctx context.Context, remote, branch string, cb Callbacks) error {
	wt, err := g.worktree()
	if err != nil {
		return err
	}
	auth, aerr := authMethod(remote, cb)
	if aerr != nil {
		return classify("pull", aerr)
	}
	opts := &git.PullOptions{RemoteName: remote, Auth: auth, Progress: progressWriter{cb.Progress}}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	if err := wt.PullContext(ctx, opts); err != nil && err != git.NoErrAlreadyUpToDate {
		return classify("pull", err)
	}
	return nil
}

// Fetch implements Collaborator.
func (g *GoGit) Fetch(ctx context.Context, remote, branch string, cb Callbacks) error {
	auth, err := authMethod(remote, cb)
	if err != nil {
		return classify("fetch", err)
	}
	opts := &git.FetchOptions{RemoteName: remote, Auth: auth, Progress: progressWriter{cb.Progress}}
	if branch != "" {
		ref := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch))
		opts.RefSpecs = []config.RefSpec{ref}
	}
	if err := g.repo.FetchContext(ctx, opts); err != nil && err != git.NoErrAlreadyUpToDate {
		return classify("fetch", err)
	}
	return nil
}

// Tags implements Collaborator.
func (g *GoGit) Tags(ctx context.Context) ([]domain.TagInfo, error) {
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, classify("tags", err)
	}
	var out []domain.TagInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		out = append(out, domain.TagInfo{Name: ref.Name().Short(), Target: ref.Hash().String()})
		return nil
	})
	if err != nil {
		return nil, classify("tags", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateTag implements Collaborator.
func (g *GoGit) CreateTag(ctx context.Context, name, target string) error {
	var hash plumbing.Hash
	if target == "" {
		head, err := g.repo.Head()
		if err != nil {
			return classify("create_tag", err)
		}
		hash = head.Hash()
	} else {
		hash = plumbing.NewHash(target)
	}
	if _, err := g.repo.CreateTag(name, hash, nil); err != nil {
		return classify("create_tag", err)
	}
	return nil
}

// DeleteTag implements Collaborator.
func (g *GoGit) DeleteTag(ctx context.Context, name string) error {
	if err := g.repo.DeleteTag(name); err != nil {
		return classify("delete_tag", err)
	}
	return nil
}

// PushTag implements Collaborator.
func (g *GoGit) PushTag(ctx context.Context, remote, name string) error {
	ref := config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", name, name))
	err := g.repo.PushContext(ctx, &git.PushOptions{RemoteName: remote, RefSpecs: []config.RefSpec{ref}})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return classify("push_tag", err)
	}
	return nil
}
