package ports

import (
	"context"

	"gitdeck/internal/domain"
)

// RepoInitializer discovers and creates repositories
type RepoInitializer interface {
	IsRepository(path string) bool
	InitRepository(ctx context.Context, path string) error
	GitCommonDir(ctx context.Context, path string) (string, error)
}

// StatusReader computes the file-status partition of a working tree
type StatusReader interface {
	Scan(ctx context.Context, path string) (*domain.GitStatus, error)
}

// Stager mutates the index and working tree below commit granularity
type Stager interface {
	StageFiles(ctx context.Context, path string, files []string) error
	StageAll(ctx context.Context, path string) error
	UnstageFiles(ctx context.Context, path string, files []string) error
	DiscardChanges(ctx context.Context, path string, files []string) error
}

// Committer creates commits
type Committer interface {
	Commit(ctx context.Context, path, message string) error
}

// BranchManager handles branch lifecycle and merging
type BranchManager interface {
	ListBranches(ctx context.Context, path string, includeRemote bool) ([]domain.Branch, error)
	CreateBranch(ctx context.Context, path, name string) error
	SwitchBranch(ctx context.Context, path, name string, force bool) error
	DeleteBranch(ctx context.Context, path, name string) error
	Merge(ctx context.Context, path, branch string) (*domain.MergeResult, error)
	MergeStatus(ctx context.Context, path string) (*domain.MergeState, error)
}

// RemoteSyncer handles remotes and network transfer
type RemoteSyncer interface {
	ListRemotes(ctx context.Context, path string) ([]domain.Remote, error)
	AddRemote(ctx context.Context, path, name, url string) error
	Push(ctx context.Context, path string) error
	Pull(ctx context.Context, path string) error
	Fetch(ctx context.Context, path string) error
}

// StashManager handles the stash stack
type StashManager interface {
	ListStashes(ctx context.Context, path string) ([]domain.Stash, error)
	StashPush(ctx context.Context, path, message string) error
	StashApply(ctx context.Context, path string, index int) error
	StashDrop(ctx context.Context, path string, index int) error
}

// HistoryReader reads committed history
type HistoryReader interface {
	Log(ctx context.Context, path string, maxCount int) ([]domain.Commit, error)
}

// GitBackend is the composite interface the engine drives
type GitBackend interface {
	BranchManager
	Committer
	HistoryReader
	RemoteSyncer
	RepoInitializer
	Stager
	StashManager
	StatusReader
}
