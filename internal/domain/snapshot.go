// Package domain holds the repository snapshot types shared between the
// repository collaborator (internal/repo) and the view model
// (internal/viewmodel), per SPEC_FULL.md §3.
package domain

import "time"

// ChangeKind classifies one working-tree or index change.
type ChangeKind int

const (
	Modified ChangeKind = iota
	Added
	Deleted
	Renamed
	Untracked
	Conflicted
)

// FileChange is one entry in a status snapshot.
type FileChange struct {
	Path string
	Kind ChangeKind
}

// Status is the result of the collaborator's status() operation
// (spec.md §6).
type Status struct {
	Staged, Unstaged, Untracked []FileChange
}

// IsClean reports whether the working tree and index have no changes.
func (s Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// BranchInfo describes one local or remote-tracking branch.
type BranchInfo struct {
	Name     string
	IsHead   bool
	IsRemote bool
	Upstream string
	Ahead    int
	Behind   int
}

// CommitInfo is a single log entry as shown in the Commits panel.
type CommitInfo struct {
	ID, ShortID    string
	Subject        string
	Author         string
	When           time.Time
}

// TagInfo is one annotated or lightweight tag.
type TagInfo struct {
	Name, Target string
}

// StashEntry is one stash stack entry.
type StashEntry struct {
	Index   int
	Message string
}

// DiffLineKind classifies one rendered diff line.
type DiffLineKind int

const (
	Context DiffLineKind = iota
	Addition
	Deletion
	HunkHeader
)

// DiffLine is one line of hunk content.
type DiffLine struct {
	Kind                 DiffLineKind
	Content              string
	OldLineNo, NewLineNo int
}

// Hunk is a contiguous group of changed lines introduced by a header.
type Hunk struct {
	Header string
	Lines  []DiffLine
}

// FileDiff is the hunks for a single file.
type FileDiff struct {
	Path  string
	Hunks []Hunk
}

// Diff is the result of any diff_* collaborator operation.
type Diff struct {
	Files []FileDiff
}

// MergeOutcome is the result of a merge operation.
type MergeOutcome int

const (
	UpToDate MergeOutcome = iota
	FastForward
	Merged
	Conflict
)

// RebaseOutcome is the result of a rebase operation.
type RebaseOutcome struct {
	Success        bool
	ConflictedFiles []string
}

// ProgressUpdate is delivered by push/pull/fetch callbacks (spec.md §5, §6).
type ProgressUpdate struct {
	Received, Total int
	Stage           string
}
