package services

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	gitadapter "gitdeck/internal/adapters/git"
	"gitdeck/internal/domain"
	"gitdeck/internal/ports/mocks"
)

// setupTestRepo creates a git repo with an initial commit for testing
func setupTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	gitIn(t, dir, "init", "-b", "main")
	gitIn(t, dir, "config", "user.email", "test@test.com")
	gitIn(t, dir, "config", "user.name", "Test")

	writeFile(t, dir, "README.md", "# Test")
	gitIn(t, dir, "add", "README.md")
	gitIn(t, dir, "commit", "-m", "Initial commit")

	return dir
}

func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
	return string(out)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func openSession(t *testing.T, dir string) *Session {
	t.Helper()
	session, err := NewSession(context.Background(), gitadapter.NewCLIBackend(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestSession_StageUntrackedIsIdempotent(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	writeFile(t, dir, "new.txt", "content")
	require.NoError(t, session.Refresh(context.Background()))
	require.Contains(t, session.Status().Untracked, "new.txt")

	require.NoError(t, session.StageFiles(context.Background(), []string{"new.txt"}))

	status := session.Status()
	assert.Contains(t, status.StagedPaths(), "new.txt")
	assert.NotContains(t, status.Untracked, "new.txt")

	// Staging again changes nothing
	require.NoError(t, session.StageFiles(context.Background(), []string{"new.txt"}))
	again := session.Status()
	assert.Equal(t, status.StagedPaths(), again.StagedPaths())
	assert.Equal(t, status.Untracked, again.Untracked)
}

func TestSession_CommitEmptyIndexRejected(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	before := session.Status()

	err := session.Commit(context.Background(), "nothing")

	assert.ErrorIs(t, err, domain.ErrNoStagedChanges)
	assert.Equal(t, before, session.Status())
	assert.Len(t, session.History(0), 1)
}

func TestSession_ExactlyOneCurrentBranchAfterSwitch(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)

	require.NoError(t, session.CreateBranch(context.Background(), "feature"))
	require.NoError(t, session.SwitchBranch(context.Background(), "feature", false))

	var current []string
	for _, b := range session.Branches(false) {
		if b.IsCurrent {
			current = append(current, b.Name)
		}
	}
	assert.Equal(t, []string{"feature"}, current)
}

func TestSession_StashThenPopRestoresExactState(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	writeFile(t, dir, "staged.txt", "s")
	require.NoError(t, session.StageFiles(context.Background(), []string{"staged.txt"}))
	writeFile(t, dir, "README.md", "# changed")
	require.NoError(t, session.Refresh(context.Background()))

	before := session.Status()
	require.False(t, before.Clean)

	require.NoError(t, session.Stash(context.Background(), "wip"))
	assert.True(t, session.Status().Clean)
	require.Len(t, session.Stashes(), 1)
	assert.Equal(t, 0, session.Stashes()[0].Index)

	require.NoError(t, session.PopStash(context.Background(), 0))

	after := session.Status()
	assert.Equal(t, before.StagedPaths(), after.StagedPaths())
	assert.Equal(t, before.UnstagedPaths(), after.UnstagedPaths())
	assert.Empty(t, session.Stashes())
}

func TestSession_ConflictedPopKeepsEntry(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	writeFile(t, dir, "README.md", "# stashed version")
	require.NoError(t, session.Stash(context.Background(), "wip"))
	writeFile(t, dir, "README.md", "# committed version")
	require.NoError(t, session.StageAll(context.Background()))
	require.NoError(t, session.Commit(context.Background(), "diverge"))

	err := session.PopStash(context.Background(), 0)

	var conflictErr *domain.MergeConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Len(t, session.Stashes(), 1, "failed pop must keep the stash entry")
}

func TestSession_MergeConflictGatesCommit(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)

	require.NoError(t, session.CreateBranch(context.Background(), "feature"))
	require.NoError(t, session.SwitchBranch(context.Background(), "feature", false))
	writeFile(t, dir, "x.txt", "feature version")
	require.NoError(t, session.StageAll(context.Background()))
	require.NoError(t, session.Commit(context.Background(), "feature change"))

	require.NoError(t, session.SwitchBranch(context.Background(), "main", false))
	writeFile(t, dir, "x.txt", "main version")
	require.NoError(t, session.StageAll(context.Background()))
	require.NoError(t, session.Commit(context.Background(), "main change"))

	result, err := session.Merge(context.Background(), "feature")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"x.txt"}, result.Conflicts)

	state := session.MergeState()
	require.NotNil(t, state)
	assert.True(t, state.InProgress)
	assert.NotEmpty(t, session.Status().Conflicts)

	// Commit is gated until the conflicts are staged
	err = session.Commit(context.Background(), "too early")
	assert.ErrorIs(t, err, domain.ErrMergeInProgress)

	// Resolve, stage, commit: the merge concludes and the gate lifts
	writeFile(t, dir, "x.txt", "resolved")
	require.NoError(t, session.StageFiles(context.Background(), []string{"x.txt"}))
	require.NoError(t, session.Commit(context.Background(), "merge feature"))

	assert.Nil(t, session.MergeState())
	assert.True(t, session.Status().Clean)
}

func TestSession_CommitThenPushOrdering(t *testing.T) {
	dir := setupTestRepo(t)
	remote := t.TempDir()
	gitIn(t, remote, "init", "--bare", "-b", "main")
	session := openSession(t, dir)
	require.NoError(t, session.AddRemote(context.Background(), "origin", remote))

	writeFile(t, dir, "work.txt", "v1")
	require.NoError(t, session.StageAll(context.Background()))
	require.NoError(t, session.Commit(context.Background(), "local work"))
	require.NoError(t, session.Push(context.Background()))

	// The push observed the commit that was submitted before it
	localHead := gitIn(t, dir, "rev-parse", "HEAD")
	remoteHead := gitIn(t, remote, "rev-parse", "main")
	assert.Equal(t, localHead, remoteHead)

	// Upstream tracking is configured after the first push
	require.NoError(t, session.Refresh(context.Background()))
	assert.Equal(t, "origin/main", session.Status().Upstream)
}

func TestSession_DirtySwitchRejectedWithoutForce(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	require.NoError(t, session.CreateBranch(context.Background(), "feature"))
	writeFile(t, dir, "README.md", "# dirty")
	require.NoError(t, session.Refresh(context.Background()))

	err := session.SwitchBranch(context.Background(), "feature", false)

	assert.ErrorIs(t, err, domain.ErrDirtyWorkingTree)

	require.NoError(t, session.SwitchBranch(context.Background(), "feature", true))
	assert.Equal(t, "feature", session.Status().Branch)
	assert.True(t, session.Status().Clean)
}

func TestSession_EventsFollowMutations(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	id, events := session.Subscribe()
	defer session.Unsubscribe(id)

	writeFile(t, dir, "a.txt", "a")
	require.NoError(t, session.StageAll(context.Background()))
	require.NoError(t, session.Commit(context.Background(), "add a"))

	assert.Equal(t, domain.EventFilesStaged, receiveEvent(t, events).Event)
	committed := receiveEvent(t, events)
	assert.Equal(t, domain.EventCommitted, committed.Event)

	// By the time the event arrives the snapshot is at least that new
	assert.Empty(t, session.Status().StagedPaths())
	assert.Equal(t, "add a", session.History(1)[0].Message)
}

func TestSession_MergedEventCarriesResult(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	require.NoError(t, session.CreateBranch(context.Background(), "feature"))
	require.NoError(t, session.SwitchBranch(context.Background(), "feature", false))
	writeFile(t, dir, "f.txt", "f")
	require.NoError(t, session.StageAll(context.Background()))
	require.NoError(t, session.Commit(context.Background(), "feature work"))
	require.NoError(t, session.SwitchBranch(context.Background(), "main", false))

	id, events := session.Subscribe()
	defer session.Unsubscribe(id)

	result, err := session.Merge(context.Background(), "feature")
	require.NoError(t, err)
	require.True(t, result.Success)

	merged := receiveEvent(t, events)
	assert.Equal(t, domain.EventMerged, merged.Event)
	require.NotNil(t, merged.Merge)
	assert.True(t, merged.Merge.Success)
}

func TestSession_NonRepositoryDirectory(t *testing.T) {
	dir := t.TempDir()
	session := openSession(t, dir)

	assert.False(t, session.IsRepository())

	err := session.StageAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)

	require.NoError(t, session.InitRepository(context.Background()))
	assert.True(t, session.IsRepository())
}

func TestSession_ClosedSessionRejectsOperations(t *testing.T) {
	dir := setupTestRepo(t)
	session, err := NewSession(context.Background(), gitadapter.NewCLIBackend(), dir)
	require.NoError(t, err)
	require.NoError(t, session.Close())

	err = session.StageAll(context.Background())

	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestSession_HistoryMaxCount(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	writeFile(t, dir, "a.txt", "a")
	require.NoError(t, session.StageAll(context.Background()))
	require.NoError(t, session.Commit(context.Background(), "second"))

	assert.Len(t, session.History(1), 1)
	assert.Len(t, session.History(0), 2)
	assert.Equal(t, "second", session.History(1)[0].Message)
}

func TestSession_FailedMutationLeavesSnapshotUntouched(t *testing.T) {
	backend := mocks.NewMockGitBackend(t)
	backend.On("IsRepository", mock.Anything).Return(true)
	backend.On("Scan", mock.Anything, mock.Anything).Return(&domain.GitStatus{Branch: "main", Clean: true}, nil)
	backend.On("ListBranches", mock.Anything, mock.Anything, true).Return([]domain.Branch{{Name: "main", IsCurrent: true}}, nil)
	backend.On("Log", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("ListStashes", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("ListRemotes", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("MergeStatus", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("CreateBranch", mock.Anything, mock.Anything, "bad name").
		Return(domain.ErrInvalidRef)

	session, err := NewSession(context.Background(), backend, t.TempDir())
	require.NoError(t, err)
	defer session.Close()

	id, events := session.Subscribe()
	defer session.Unsubscribe(id)
	before := session.Status()

	err = session.CreateBranch(context.Background(), "bad name")

	require.ErrorIs(t, err, domain.ErrInvalidRef)
	assert.Equal(t, before, session.Status())

	select {
	case n := <-events:
		t.Fatalf("no event expected after failed mutation, got %s", n.Event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSession_TransferErrorsPassThrough(t *testing.T) {
	backend := mocks.NewMockGitBackend(t)
	backend.On("IsRepository", mock.Anything).Return(true)
	backend.On("Scan", mock.Anything, mock.Anything).Return(&domain.GitStatus{Branch: "main", Clean: true}, nil)
	backend.On("ListBranches", mock.Anything, mock.Anything, true).Return(nil, nil)
	backend.On("Log", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("ListStashes", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("ListRemotes", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("MergeStatus", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("Push", mock.Anything, mock.Anything).Return(domain.ErrNonFastForward)

	session, err := NewSession(context.Background(), backend, t.TempDir())
	require.NoError(t, err)
	defer session.Close()

	err = session.Push(context.Background())

	assert.True(t, errors.Is(err, domain.ErrNonFastForward))
}

func TestSession_NetworkTimeoutBoundsTransfers(t *testing.T) {
	backend := mocks.NewMockGitBackend(t)
	backend.On("IsRepository", mock.Anything).Return(true)
	backend.On("Scan", mock.Anything, mock.Anything).Return(&domain.GitStatus{Branch: "main", Clean: true}, nil)
	backend.On("ListBranches", mock.Anything, mock.Anything, true).Return(nil, nil)
	backend.On("Log", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("ListStashes", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("ListRemotes", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("MergeStatus", mock.Anything, mock.Anything).Return(nil, nil)

	// A stalled transfer only returns when its context expires
	var hadDeadline bool
	backend.On("Pull", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		_, hadDeadline = ctx.Deadline()
		<-ctx.Done()
	}).Return(context.DeadlineExceeded)

	session, err := NewSession(context.Background(), backend, t.TempDir(),
		WithNetworkTimeout(50*time.Millisecond))
	require.NoError(t, err)
	defer session.Close()

	err = session.Pull(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, hadDeadline, "transfer should run under a deadline")
}
