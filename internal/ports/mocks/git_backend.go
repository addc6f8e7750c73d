// Package mocks provides hand-written testify mocks for the port interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"gitdeck/internal/domain"
	"gitdeck/internal/ports"
)

// MockGitBackend is a testify mock of ports.GitBackend
type MockGitBackend struct {
	mock.Mock
}

var _ ports.GitBackend = (*MockGitBackend)(nil)

// NewMockGitBackend returns a mock that asserts its expectations when the
// test finishes.
func NewMockGitBackend(t *testing.T) *MockGitBackend {
	m := &MockGitBackend{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGitBackend) IsRepository(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockGitBackend) InitRepository(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitBackend) GitCommonDir(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockGitBackend) Scan(ctx context.Context, path string) (*domain.GitStatus, error) {
	args := m.Called(ctx, path)
	if status := args.Get(0); status != nil {
		return status.(*domain.GitStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitBackend) StageFiles(ctx context.Context, path string, files []string) error {
	args := m.Called(ctx, path, files)
	return args.Error(0)
}

func (m *MockGitBackend) StageAll(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitBackend) UnstageFiles(ctx context.Context, path string, files []string) error {
	args := m.Called(ctx, path, files)
	return args.Error(0)
}

func (m *MockGitBackend) DiscardChanges(ctx context.Context, path string, files []string) error {
	args := m.Called(ctx, path, files)
	return args.Error(0)
}

func (m *MockGitBackend) Commit(ctx context.Context, path, message string) error {
	args := m.Called(ctx, path, message)
	return args.Error(0)
}

func (m *MockGitBackend) ListBranches(ctx context.Context, path string, includeRemote bool) ([]domain.Branch, error) {
	args := m.Called(ctx, path, includeRemote)
	if branches := args.Get(0); branches != nil {
		return branches.([]domain.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitBackend) CreateBranch(ctx context.Context, path, name string) error {
	args := m.Called(ctx, path, name)
	return args.Error(0)
}

func (m *MockGitBackend) SwitchBranch(ctx context.Context, path, name string, force bool) error {
	args := m.Called(ctx, path, name, force)
	return args.Error(0)
}

func (m *MockGitBackend) DeleteBranch(ctx context.Context, path, name string) error {
	args := m.Called(ctx, path, name)
	return args.Error(0)
}

func (m *MockGitBackend) Merge(ctx context.Context, path, branch string) (*domain.MergeResult, error) {
	args := m.Called(ctx, path, branch)
	if result := args.Get(0); result != nil {
		return result.(*domain.MergeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitBackend) MergeStatus(ctx context.Context, path string) (*domain.MergeState, error) {
	args := m.Called(ctx, path)
	if state := args.Get(0); state != nil {
		return state.(*domain.MergeState), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitBackend) ListRemotes(ctx context.Context, path string) ([]domain.Remote, error) {
	args := m.Called(ctx, path)
	if remotes := args.Get(0); remotes != nil {
		return remotes.([]domain.Remote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitBackend) AddRemote(ctx context.Context, path, name, url string) error {
	args := m.Called(ctx, path, name, url)
	return args.Error(0)
}

func (m *MockGitBackend) Push(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitBackend) Pull(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitBackend) Fetch(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitBackend) ListStashes(ctx context.Context, path string) ([]domain.Stash, error) {
	args := m.Called(ctx, path)
	if stashes := args.Get(0); stashes != nil {
		return stashes.([]domain.Stash), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitBackend) StashPush(ctx context.Context, path, message string) error {
	args := m.Called(ctx, path, message)
	return args.Error(0)
}

func (m *MockGitBackend) StashApply(ctx context.Context, path string, index int) error {
	args := m.Called(ctx, path, index)
	return args.Error(0)
}

func (m *MockGitBackend) StashDrop(ctx context.Context, path string, index int) error {
	args := m.Called(ctx, path, index)
	return args.Error(0)
}

func (m *MockGitBackend) Log(ctx context.Context, path string, maxCount int) ([]domain.Commit, error) {
	args := m.Called(ctx, path, maxCount)
	if commits := args.Get(0); commits != nil {
		return commits.([]domain.Commit), args.Error(1)
	}
	return nil, args.Error(1)
}
