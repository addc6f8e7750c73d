package git

import (
	"context"

	"gitdeck/internal/domain"
	"gitdeck/internal/ports"
)

// CLIBackend drives repositories through the git executable. It holds no
// state: every method resolves against the path it is given, so one backend
// serves any number of sessions.
type CLIBackend struct{}

var _ ports.GitBackend = (*CLIBackend)(nil)

func NewCLIBackend() *CLIBackend {
	return &CLIBackend{}
}

func (b *CLIBackend) IsRepository(path string) bool {
	return isRepository(path)
}

func (b *CLIBackend) InitRepository(ctx context.Context, path string) error {
	return initRepository(ctx, path)
}

func (b *CLIBackend) GitCommonDir(ctx context.Context, path string) (string, error) {
	return gitCommonDir(ctx, path)
}

func (b *CLIBackend) Scan(ctx context.Context, path string) (*domain.GitStatus, error) {
	return scanStatus(ctx, path)
}

func (b *CLIBackend) StageFiles(ctx context.Context, path string, files []string) error {
	return stageFiles(ctx, path, files)
}

func (b *CLIBackend) StageAll(ctx context.Context, path string) error {
	return stageAll(ctx, path)
}

func (b *CLIBackend) UnstageFiles(ctx context.Context, path string, files []string) error {
	return unstageFiles(ctx, path, files)
}

func (b *CLIBackend) DiscardChanges(ctx context.Context, path string, files []string) error {
	return discardChanges(ctx, path, files)
}

func (b *CLIBackend) Commit(ctx context.Context, path, message string) error {
	return commit(ctx, path, message)
}

func (b *CLIBackend) ListBranches(ctx context.Context, path string, includeRemote bool) ([]domain.Branch, error) {
	return listBranches(ctx, path, includeRemote)
}

func (b *CLIBackend) CreateBranch(ctx context.Context, path, name string) error {
	return createBranch(ctx, path, name)
}

func (b *CLIBackend) SwitchBranch(ctx context.Context, path, name string, force bool) error {
	return switchBranch(ctx, path, name, force)
}

func (b *CLIBackend) DeleteBranch(ctx context.Context, path, name string) error {
	return deleteBranch(ctx, path, name)
}

func (b *CLIBackend) Merge(ctx context.Context, path, branch string) (*domain.MergeResult, error) {
	return merge(ctx, path, branch)
}

func (b *CLIBackend) MergeStatus(ctx context.Context, path string) (*domain.MergeState, error) {
	return mergeStatus(ctx, path)
}

func (b *CLIBackend) ListRemotes(ctx context.Context, path string) ([]domain.Remote, error) {
	return listRemotes(ctx, path)
}

func (b *CLIBackend) AddRemote(ctx context.Context, path, name, url string) error {
	return addRemote(ctx, path, name, url)
}

func (b *CLIBackend) Push(ctx context.Context, path string) error {
	return push(ctx, path)
}

func (b *CLIBackend) Pull(ctx context.Context, path string) error {
	return pull(ctx, path)
}

func (b *CLIBackend) Fetch(ctx context.Context, path string) error {
	return fetch(ctx, path)
}

func (b *CLIBackend) ListStashes(ctx context.Context, path string) ([]domain.Stash, error) {
	return listStashes(ctx, path)
}

func (b *CLIBackend) StashPush(ctx context.Context, path, message string) error {
	return stashPush(ctx, path, message)
}

func (b *CLIBackend) StashApply(ctx context.Context, path string, index int) error {
	return stashApply(ctx, path, index)
}

func (b *CLIBackend) StashDrop(ctx context.Context, path string, index int) error {
	return stashDrop(ctx, path, index)
}

func (b *CLIBackend) Log(ctx context.Context, path string, maxCount int) ([]domain.Commit, error) {
	return log(ctx, path, maxCount)
}
