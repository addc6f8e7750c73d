package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRepositoryNotFound indicates the working directory is not an
	// initialized repository.
	ErrRepositoryNotFound = errors.New("not a git repository")

	// ErrDirtyWorkingTree indicates staged or unstaged changes block a
	// checkout that would overwrite them.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrInvalidRef indicates a branch name is malformed, already taken,
	// missing, or otherwise not usable for the requested operation.
	ErrInvalidRef = errors.New("invalid ref")

	// ErrNoStagedChanges indicates a commit was requested with an empty index.
	ErrNoStagedChanges = errors.New("no staged changes")

	// ErrNoChangesToStash indicates a stash was requested on a clean tree.
	ErrNoChangesToStash = errors.New("no changes to stash")

	// ErrMergeInProgress indicates a commit was requested while a merge has
	// unresolved conflicts.
	ErrMergeInProgress = errors.New("merge in progress")

	// ErrAuthenticationFailed indicates the remote rejected the credentials.
	// Never retried.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNonFastForward indicates the remote rejected a push that would not
	// fast-forward. Never retried.
	ErrNonFastForward = errors.New("non-fast-forward rejected")

	// ErrNetworkFailure indicates a transient network error; the engine
	// retries once before surfacing it.
	ErrNetworkFailure = errors.New("network failure")

	// ErrOperationQueueFull indicates the session's bounded operation queue
	// overflowed and the request was rejected rather than queued.
	ErrOperationQueueFull = errors.New("operation queue full")

	// ErrSessionClosed indicates the session was closed while or before the
	// operation ran.
	ErrSessionClosed = errors.New("session closed")

	// ErrWorkspaceNotFound indicates the workspace registry has no entry
	// for the requested path.
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

// MergeConflictError reports the paths a merge or stash application could
// not reconcile automatically. It is recoverable: the caller stages the
// resolved files and commits.
type MergeConflictError struct {
	Conflicts []string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflicts in %d file(s): %s",
		len(e.Conflicts), strings.Join(e.Conflicts, ", "))
}
