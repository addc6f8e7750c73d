package domain

// FileState classifies a working-tree path relative to the index and HEAD
type FileState string

const (
	StateUntracked  FileState = "untracked"
	StateModified   FileState = "modified"
	StateDeleted    FileState = "deleted"
	StateRenamed    FileState = "renamed"
	StateStaged     FileState = "staged"
	StateConflicted FileState = "conflicted"
)

// FileEntry is a single path plus its classification. A path appears in at
// most one of the four GitStatus buckets at any observable instant; clean
// paths are absent entirely.
type FileEntry struct {
	OldPath string // previous path for renames, empty otherwise
	Path    string
	Status  FileState
}

// GitStatus is the full file-status partition of a working tree, computed
// against the index and HEAD. Conflicted paths are excluded from the staged
// and unstaged buckets because conflict resolution takes precedence.
type GitStatus struct {
	Ahead     int
	Behind    int
	Branch    string
	Clean     bool
	Conflicts []string
	Staged    []FileEntry
	Unstaged  []FileEntry
	Untracked []string
	Upstream  string
}

// HasChanges reports whether any bucket is non-empty
func (s *GitStatus) HasChanges() bool {
	return len(s.Staged) > 0 || len(s.Unstaged) > 0 || len(s.Untracked) > 0 || len(s.Conflicts) > 0
}

// HasStagedChanges reports whether the index differs from HEAD
func (s *GitStatus) HasStagedChanges() bool {
	return len(s.Staged) > 0
}

// HasConflicts reports whether unresolved merge conflicts exist
func (s *GitStatus) HasConflicts() bool {
	return len(s.Conflicts) > 0
}

// StagedPaths returns the staged bucket as plain paths
func (s *GitStatus) StagedPaths() []string {
	return entryPaths(s.Staged)
}

// UnstagedPaths returns the unstaged bucket as plain paths
func (s *GitStatus) UnstagedPaths() []string {
	return entryPaths(s.Unstaged)
}

func entryPaths(entries []FileEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths
}
