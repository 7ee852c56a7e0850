// Package repo wraps an external VCS library behind the Collaborator port
// the controller consumes (spec.md §6). The contract is intentionally
// narrow: every operation returns either a typed result or a tagged error,
// never a raw library error, so the controller never needs to know which
// library backs it.
package repo

import (
	"context"
	"time"

	"github.com/gitpilot/gitpilot/internal/domain"
)

// BranchFilter selects which branches Branches returns.
type BranchFilter int

const (
	BranchesAll BranchFilter = iota
	BranchesLocal
	BranchesRemote
)

// SearchMode selects which commit field SearchCommits matches against.
type SearchMode int

const (
	SearchMessage SearchMode = iota
	SearchAuthor
	SearchHash
)

// ProgressFunc is invoked by Push/Pull/Fetch as the transfer progresses.
type ProgressFunc func(domain.ProgressUpdate)

// CredentialsFunc supplies auth for a remote operation, asked lazily so a
// collaborator never holds credentials it doesn't need.
type CredentialsFunc func(remote string) (user, pass string, err error)

// Callbacks bundles the optional hooks a network operation accepts.
type Callbacks struct {
	Credentials CredentialsFunc
	Progress    ProgressFunc
}

// CurrentBranch is the result of CurrentBranch: either a named branch or a
// detached HEAD at ShortHash.
type CurrentBranch struct {
	Name       string
	Detached   bool
	ShortHash  string
}

// Collaborator is the repository port the controller depends on (spec.md
// §6). Every repository-mutating action in the controller goes through one
// of these methods; none of them touch the terminal or the view model.
type Collaborator interface {
	Status(ctx context.Context) (domain.Status, error)
	Branches(ctx context.Context, filter BranchFilter) ([]domain.BranchInfo, error)
	CurrentBranch(ctx context.Context) (CurrentBranch, error)
	Commits(ctx context.Context, max int) ([]domain.CommitInfo, error)
	SearchCommits(ctx context.Context, query string, mode SearchMode, max int) ([]domain.CommitInfo, error)

	DiffStaged(ctx context.Context) (domain.Diff, error)
	DiffUnstaged(ctx context.Context) (domain.Diff, error)
	DiffFile(ctx context.Context, path string, staged bool) (domain.Diff, error)

	StageFile(ctx context.Context, path string) error
	StageAll(ctx context.Context) error
	StageHunk(ctx context.Context, path string, hunk domain.Hunk) error
	UnstageFile(ctx context.Context, path string) error
	UnstageAll(ctx context.Context) error
	Discard(ctx context.Context, path string) error

	Commit(ctx context.Context, message string) (string, error)

	CreateBranch(ctx context.Context, name, base string) error
	DeleteBranch(ctx context.Context, name string, force bool) error
	SwitchBranch(ctx context.Context, name string) error
	Merge(ctx context.Context, branch string) (domain.MergeOutcome, error)
	Rebase(ctx context.Context, upstream string) (domain.RebaseOutcome, error)

	StashList(ctx context.Context) ([]domain.StashEntry, error)
	StashSave(ctx context.Context, message string) error
	StashPop(ctx context.Context, index int) error
	StashDrop(ctx context.Context, index int) error

	Push(ctx context.Context, remote, branch string, cb Callbacks) error
	Pull(ctx context.Context, remote, branch string, cb Callbacks) error
	Fetch(ctx context.Context, remote, branch string, cb Callbacks) error

	Tags(ctx context.Context) ([]domain.TagInfo, error)
	CreateTag(ctx context.Context, name, target string) error
	DeleteTag(ctx context.Context, name string) error
	PushTag(ctx context.Context, remote, name string) error

	IsClean(ctx context.Context) (bool, error)
}

// ErrorKind classifies a RepositoryError so the controller can decide
// whether it's worth surfacing a Confirm retry versus a flat Error dialog.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrNotFound
	ErrDirtyWorktree
	ErrConflict
	ErrAuth
	ErrNetwork
)

// RepositoryError is the one error type every Collaborator method returns
// (spec.md §6: "a tagged error"). Op names the failed operation for logging;
// Kind lets the controller branch without string-matching.
type RepositoryError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *RepositoryError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// DefaultTimeout is a bound for a single repository operation. Nothing in
// this module applies it: every operation runs under the context its caller
// passes in.
const DefaultTimeout = 30 * time.Second
