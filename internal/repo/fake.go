package repo

import (
	"context"

	"github.com/gitpilot/gitpilot/internal/domain"
)

// Fake is an in-memory Collaborator double for controller tests, grounded
// on the same "exercise the real interface without touching real state"
// pattern as termio.MemBackend. It records every call in Calls so tests can
// assert dispatch without needing a real git repository on disk.
type Fake struct {
	Calls []string

	StatusResult domain.Status
	StatusErr    error

	BranchesResult []domain.BranchInfo
	CurrentResult  CurrentBranch
	CommitsResult  []domain.CommitInfo

	StageErr   error
	CommitID   string
	CommitErr  error
	MergeOutcome domain.MergeOutcome
	MergeErr     error

	PushErr, PullErr, FetchErr error
	PullProgress               []domain.ProgressUpdate

	StashEntries []domain.StashEntry
	CleanResult  bool
}

var _ Collaborator = (*Fake)(nil)

func (f *Fake) record(name string) { f.Calls = append(f.Calls, name) }

func (f *Fake) Status(ctx context.Context) (domain.Status, error) {
	f.record("Status")
	return f.StatusResult, f.StatusErr
}

func (f *Fake) Branches(ctx context.Context, filter BranchFilter) ([]domain.BranchInfo, error) {
	f.record("Branches")
	return f.BranchesResult, nil
}

func (f *Fake) CurrentBranch(ctx context.Context) (CurrentBranch, error) {
	f.record("CurrentBranch")
	return f.CurrentResult, nil
}

func (f *Fake) Commits(ctx context.Context, max int) ([]domain.CommitInfo, error) {
	f.record("Commits")
	return f.CommitsResult, nil
}

func (f *Fake) SearchCommits(ctx context.Context, query string, mode SearchMode, max int) ([]domain.CommitInfo, error) {
	f.record("SearchCommits")
	return nil, nil
}

func (f *Fake) DiffStaged(ctx context.Context) (domain.Diff, error) {
	f.record("DiffStaged")
	return domain.Diff{}, nil
}

func (f *Fake) DiffUnstaged(ctx context.Context) (domain.Diff, error) {
	f.record("DiffUnstaged")
	return domain.Diff{}, nil
}

func (f *Fake) DiffFile(ctx context.Context, path string, staged bool) (domain.Diff, error) {
	f.record("DiffFile")
	return domain.Diff{}, nil
}

func (f *Fake) StageFile(ctx context.Context, path string) error {
	f.record("StageFile:" + path)
	return f.StageErr
}

func (f *Fake) StageAll(ctx context.Context) error {
	f.record("StageAll")
	return f.StageErr
}

func (f *Fake) StageHunk(ctx context.Context, path string, hunk domain.Hunk) error {
	f.record("StageHunk:" + path)
	return f.StageErr
}

func (f *Fake) UnstageFile(ctx context.Context, path string) error {
	f.record("UnstageFile:" + path)
	return nil
}

func (f *Fake) UnstageAll(ctx context.Context) error {
	f.record("UnstageAll")
	return nil
}

func (f *Fake) Discard(ctx context.Context, path string) error {
	f.record("Discard:" + path)
	return nil
}

func (f *Fake) Commit(ctx context.Context, message string) (string, error) {
	f.record("Commit")
	return f.CommitID, f.CommitErr
}

func (f *Fake) CreateBranch(ctx context.Context, name, base string) error {
	f.record("CreateBranch:" + name)
	return nil
}

func (f *Fake) DeleteBranch(ctx context.Context, name string, force bool) error {
	f.record("DeleteBranch:" + name)
	return nil
}

func (f *Fake) SwitchBranch(ctx context.Context, name string) error {
	f.record("SwitchBranch:" + name)
	return nil
}

func (f *Fake) Merge(ctx context.Context, branch string) (domain.MergeOutcome, error) {
	f.record("Merge:" + branch)
	return f.MergeOutcome, f.MergeErr
}

func (f *Fake) Rebase(ctx context.Context, upstream string) (domain.RebaseOutcome, error) {
	f.record("Rebase:" + upstream)
	return domain.RebaseOutcome{Success: true}, nil
}

func (f *Fake) StashList(ctx context.Context) ([]domain.StashEntry, error) {
	f.record("StashList")
	return f.StashEntries, nil
}

func (f *Fake) StashSave(ctx context.Context, message string) error {
	f.record("StashSave")
	return nil
}

func (f *Fake) StashPop(ctx context.Context, index int) error {
	f.record("StashPop")
	return nil
}

func (f *Fake) StashDrop(ctx context.Context, index int) error {
	f.record("StashDrop")
	return nil
}

func (f *Fake) Push(ctx context.Context, remote, branch string, cb Callbacks) error {
	f.record("Push")
	return f.PushErr
}

func (f *Fake) Pull(ctx context.Context, remote, branch string, cb Callbacks) error {
	f.record("Pull")
	if cb.Progress != nil {
		for _, p := range f.PullProgress {
			cb.Progress(p)
		}
	}
	return f.PullErr
}

func (f *Fake) Fetch(ctx context.Context, remote, branch string, cb Callbacks) error {
	f.record("Fetch")
	return f.FetchErr
}

func (f *Fake) Tags(ctx context.Context) ([]domain.TagInfo, error) {
	f.record("Tags")
	return nil, nil
}

func (f *Fake) CreateTag(ctx context.Context, name, target string) error {
	f.record("CreateTag:" + name)
	return nil
}

func (f *Fake) DeleteTag(ctx context.Context, name string) error {
	f.record("DeleteTag:" + name)
	return nil
}

func (f *Fake) PushTag(ctx context.Context, remote, name string) error {
	f.record("PushTag:" + name)
	return nil
}

func (f *Fake) IsClean(ctx context.Context) (bool, error) {
	f.record("IsClean")
	return f.CleanResult, nil
}
