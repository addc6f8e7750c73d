package services

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"gitdeck/internal/domain"
	"gitdeck/internal/logging"
	"gitdeck/internal/ports"
)

const defaultNetworkTimeout = 60 * time.Second

// Session owns one working directory: it serializes every mutation against
// it, keeps a consistent snapshot for readers, and publishes change events
// after each completed mutation. Reads never block behind mutations; they
// see the snapshot of the last fully-applied one.
type Session struct {
	backend        ports.GitBackend
	historyLimit   int
	mu             sync.RWMutex
	networkTimeout time.Duration
	notifier       *Notifier
	path           string
	queueSize      int
	registry       ports.WorkspaceRepository
	serializer     *Serializer
	snapshot       *Snapshot
	watcher        *Watcher
}

// SessionOption configures a Session at construction time
type SessionOption func(*Session)

// WithRegistry records the workspace in the registry on open and whenever
// the current branch changes. Registry failures are logged, never fatal.
func WithRegistry(registry ports.WorkspaceRepository) SessionOption {
	return func(s *Session) { s.registry = registry }
}

// WithHistoryLimit caps how many commits each snapshot carries
func WithHistoryLimit(limit int) SessionOption {
	return func(s *Session) { s.historyLimit = limit }
}

// WithQueueSize bounds the pending-operation queue
func WithQueueSize(size int) SessionOption {
	return func(s *Session) { s.queueSize = size }
}

// WithNetworkTimeout bounds each push, pull, and fetch. A transfer that
// exceeds it is cancelled and reported as a network failure. Non-positive
// values keep the default.
func WithNetworkTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) {
		if timeout > 0 {
			s.networkTimeout = timeout
		}
	}
}

// NewSession opens path and computes its first snapshot. Opening a directory
// that is not a repository succeeds with IsRepository false; every mutation
// except InitRepository then fails with ErrRepositoryNotFound.
func NewSession(ctx context.Context, backend ports.GitBackend, path string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		backend:        backend,
		historyLimit:   defaultHistoryLimit,
		networkTimeout: defaultNetworkTimeout,
		notifier:       NewNotifier(),
		path:           path,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.serializer = NewSerializer(s.queueSize)

	snapshot, err := buildSnapshot(ctx, backend, path, s.historyLimit)
	if err != nil {
		s.serializer.Close()
		s.notifier.Close()
		return nil, err
	}
	s.snapshot = snapshot
	s.recordWorkspace(ctx, snapshot)

	return s, nil
}

// Path returns the working directory this session owns
func (s *Session) Path() string {
	return s.path
}

// IsRepository reports whether the working directory was an initialized
// repository at the last snapshot.
func (s *Session) IsRepository() bool {
	return s.current().IsRepository
}

// Status returns the file-status partition from the current snapshot
func (s *Session) Status() *domain.GitStatus {
	return s.current().Status
}

// Branches returns the branch list, filtered to local branches unless
// includeRemote is set.
func (s *Session) Branches(includeRemote bool) []domain.Branch {
	branches := s.current().Branches
	if includeRemote {
		return branches
	}
	return localBranches(branches)
}

// Remotes returns the configured remotes
func (s *Session) Remotes() []domain.Remote {
	return s.current().Remotes
}

// Stashes returns the stash stack, index 0 first
func (s *Session) Stashes() []domain.Stash {
	return s.current().Stashes
}

// History returns up to maxCount commits, newest first. Zero or negative
// maxCount returns everything the snapshot carries.
func (s *Session) History(maxCount int) []domain.Commit {
	commits := s.current().Commits
	if maxCount > 0 && maxCount < len(commits) {
		return commits[:maxCount]
	}
	return commits
}

// MergeState returns the outstanding merge, nil when none is in progress
func (s *Session) MergeState() *domain.MergeState {
	return s.current().MergeState
}

// Subscribe registers for change events
func (s *Session) Subscribe() (string, <-chan domain.Notification) {
	return s.notifier.Subscribe()
}

// Unsubscribe removes an event subscriber
func (s *Session) Unsubscribe(id string) {
	s.notifier.Unsubscribe(id)
}

// InitRepository initializes the working directory as a repository. The only
// mutation allowed while IsRepository is false.
func (s *Session) InitRepository(ctx context.Context) error {
	return s.serializer.Do(ctx, "init", func(ctx context.Context) error {
		if s.current().IsRepository {
			return nil
		}
		if err := s.backend.InitRepository(ctx, s.path); err != nil {
			return err
		}
		if err := s.reload(ctx); err != nil {
			return err
		}
		s.publish(domain.EventWorkingDirectoryChanged)
		return nil
	})
}

// StageFiles moves paths into the staged bucket. Staging an already-staged
// path is a no-op, so the operation is idempotent.
func (s *Session) StageFiles(ctx context.Context, files []string) error {
	return s.mutate(ctx, "stage", func(ctx context.Context) error {
		return s.backend.StageFiles(ctx, s.path, files)
	}, domain.EventFilesStaged)
}

// StageAll stages every change in the working tree, untracked files included
func (s *Session) StageAll(ctx context.Context) error {
	return s.mutate(ctx, "stage-all", func(ctx context.Context) error {
		return s.backend.StageAll(ctx, s.path)
	}, domain.EventFilesStaged)
}

// UnstageFiles moves paths back out of the index without touching their
// working-tree content.
func (s *Session) UnstageFiles(ctx context.Context, files []string) error {
	return s.mutate(ctx, "unstage", func(ctx context.Context) error {
		return s.backend.UnstageFiles(ctx, s.path, files)
	}, domain.EventFilesUnstaged)
}

// DiscardChanges restores paths from the index, throwing their working-tree
// edits away.
func (s *Session) DiscardChanges(ctx context.Context, files []string) error {
	return s.mutate(ctx, "discard", func(ctx context.Context) error {
		return s.backend.DiscardChanges(ctx, s.path, files)
	}, domain.EventWorkingDirectoryChanged)
}

// Commit records the staged changes. Rejected with ErrMergeInProgress while
// conflicted paths remain unresolved and with ErrNoStagedChanges on an empty
// index; committing with a clean conflict set concludes an outstanding
// merge.
func (s *Session) Commit(ctx context.Context, message string) error {
	return s.mutate(ctx, "commit", func(ctx context.Context) error {
		status, err := s.backend.Scan(ctx, s.path)
		if err != nil {
			return err
		}
		if status.HasConflicts() {
			return domain.ErrMergeInProgress
		}

		merging, err := s.backend.MergeStatus(ctx, s.path)
		if err != nil {
			return err
		}
		if merging == nil && !status.HasStagedChanges() {
			return domain.ErrNoStagedChanges
		}

		return s.backend.Commit(ctx, s.path, message)
	}, domain.EventCommitted)
}

// CreateBranch creates a branch at HEAD without switching to it
func (s *Session) CreateBranch(ctx context.Context, name string) error {
	return s.mutate(ctx, "create-branch", func(ctx context.Context) error {
		return s.backend.CreateBranch(ctx, s.path, name)
	}, domain.EventBranchCreated)
}

// SwitchBranch checks out name. Without force a dirty working tree is
// rejected with ErrDirtyWorkingTree; force discards the changes.
func (s *Session) SwitchBranch(ctx context.Context, name string, force bool) error {
	return s.mutate(ctx, "switch-branch", func(ctx context.Context) error {
		return s.backend.SwitchBranch(ctx, s.path, name, force)
	}, domain.EventBranchSwitched)
}

// DeleteBranch removes a local branch other than the current one
func (s *Session) DeleteBranch(ctx context.Context, name string) error {
	return s.mutate(ctx, "delete-branch", func(ctx context.Context) error {
		return s.backend.DeleteBranch(ctx, s.path, name)
	}, domain.EventBranchDeleted)
}

// Merge merges branch into HEAD. A conflicted merge is a benign failure: no
// error, Success false, and the session carries MergeState until the
// conflicts are staged and committed. The merged event fires either way.
func (s *Session) Merge(ctx context.Context, branch string) (*domain.MergeResult, error) {
	var result *domain.MergeResult
	err := s.serializer.Do(ctx, "merge", func(ctx context.Context) error {
		if err := s.requireRepository(); err != nil {
			return err
		}

		merged, err := s.backend.Merge(ctx, s.path, branch)
		if err != nil {
			return err
		}
		result = merged

		if err := s.reload(ctx); err != nil {
			return err
		}
		s.notifier.Publish(domain.Notification{Event: domain.EventMerged, Merge: merged})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Push sends the current branch to origin, setting the upstream on first
// push. Bounded by the session's network timeout.
func (s *Session) Push(ctx context.Context) error {
	return s.mutate(ctx, "push", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.networkTimeout)
		defer cancel()
		return s.backend.Push(ctx, s.path)
	}, domain.EventPushed)
}

// Pull fast-forwards the current branch from its upstream. Bounded by the
// session's network timeout.
func (s *Session) Pull(ctx context.Context) error {
	return s.mutate(ctx, "pull", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.networkTimeout)
		defer cancel()
		return s.backend.Pull(ctx, s.path)
	}, domain.EventPulled)
}

// Fetch updates every remote-tracking ref. Bounded by the session's network
// timeout.
func (s *Session) Fetch(ctx context.Context) error {
	return s.mutate(ctx, "fetch", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.networkTimeout)
		defer cancel()
		return s.backend.Fetch(ctx, s.path)
	}, domain.EventFetched)
}

// AddRemote configures a new remote
func (s *Session) AddRemote(ctx context.Context, name, url string) error {
	return s.mutate(ctx, "add-remote", func(ctx context.Context) error {
		return s.backend.AddRemote(ctx, s.path, name, url)
	}, domain.EventWorkingDirectoryChanged)
}

// Stash shelves the staged and unstaged changes as a new entry at index 0
func (s *Session) Stash(ctx context.Context, message string) error {
	return s.mutate(ctx, "stash", func(ctx context.Context) error {
		return s.backend.StashPush(ctx, s.path, message)
	}, domain.EventStashed)
}

// ApplyStash reapplies entry index, keeping it on the stack. A conflicted
// application returns a MergeConflictError; the stashApplied event still
// fires because the working tree changed.
func (s *Session) ApplyStash(ctx context.Context, index int) error {
	return s.serializer.Do(ctx, "apply-stash", func(ctx context.Context) error {
		if err := s.requireRepository(); err != nil {
			return err
		}
		return s.applyStash(ctx, index)
	})
}

// PopStash reapplies entry index and drops it, but only after a clean,
// conflict-free application. A conflicted pop keeps the entry so the retry
// after resolution is safe.
func (s *Session) PopStash(ctx context.Context, index int) error {
	return s.serializer.Do(ctx, "pop-stash", func(ctx context.Context) error {
		if err := s.requireRepository(); err != nil {
			return err
		}
		if err := s.applyStash(ctx, index); err != nil {
			return err
		}
		if err := s.backend.StashDrop(ctx, s.path, index); err != nil {
			return err
		}
		return s.reload(ctx)
	})
}

func (s *Session) applyStash(ctx context.Context, index int) error {
	err := s.backend.StashApply(ctx, s.path, index)

	var conflictErr *domain.MergeConflictError
	if err != nil && !errors.As(err, &conflictErr) {
		return err
	}

	if rerr := s.reload(ctx); rerr != nil {
		return rerr
	}
	s.publish(domain.EventStashApplied)
	return err
}

// DropStash removes entry index unconditionally
func (s *Session) DropStash(ctx context.Context, index int) error {
	return s.mutate(ctx, "drop-stash", func(ctx context.Context) error {
		return s.backend.StashDrop(ctx, s.path, index)
	}, domain.EventStashed)
}

// Refresh recomputes the snapshot through the mutation lane, publishing
// workingDirectoryChanged when the file status actually moved. The watcher
// calls this on filesystem activity; callers may too.
func (s *Session) Refresh(ctx context.Context) error {
	return s.serializer.Do(ctx, "refresh", func(ctx context.Context) error {
		before := s.current().Status
		if err := s.reload(ctx); err != nil {
			return err
		}
		if !reflect.DeepEqual(before, s.current().Status) {
			s.publish(domain.EventWorkingDirectoryChanged)
		}
		return nil
	})
}

// Watch starts filesystem watching for this session; changes on disk
// trigger a debounced Refresh.
func (s *Session) Watch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return nil
	}
	watcher, err := NewWatcher(ctx, s)
	if err != nil {
		return err
	}
	s.watcher = watcher
	return nil
}

// Close stops the watcher, rejects queued operations, and closes every
// subscriber channel. The last-opened registry entry is updated on the way
// out.
func (s *Session) Close() error {
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if watcher != nil {
		watcher.Close()
	}
	s.serializer.Close()
	s.notifier.Close()

	if s.registry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.recordWorkspace(ctx, s.current())
	}
	return nil
}

// mutate runs fn through the serializer, reloads the snapshot, and
// publishes events, in that order. Readers and subscribers therefore never
// observe an event before the state behind it.
func (s *Session) mutate(ctx context.Context, name string, fn func(context.Context) error, events ...domain.Event) error {
	return s.serializer.Do(ctx, name, func(ctx context.Context) error {
		if err := s.requireRepository(); err != nil {
			return err
		}
		if err := fn(ctx); err != nil {
			return err
		}
		if err := s.reload(ctx); err != nil {
			return err
		}
		for _, event := range events {
			s.publish(event)
		}
		return nil
	})
}

func (s *Session) requireRepository() error {
	if !s.current().IsRepository {
		return domain.ErrRepositoryNotFound
	}
	return nil
}

// reload recomputes and atomically installs a fresh snapshot. Runs only on
// the serializer worker.
func (s *Session) reload(ctx context.Context) error {
	snapshot, err := buildSnapshot(ctx, s.backend, s.path, s.historyLimit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	previous := s.snapshot
	s.snapshot = snapshot
	s.mu.Unlock()

	if branchChanged(previous, snapshot) {
		s.recordWorkspace(ctx, snapshot)
	}
	return nil
}

func (s *Session) current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Session) publish(event domain.Event) {
	s.notifier.Publish(domain.Notification{Event: event})
}

func branchChanged(previous, next *Snapshot) bool {
	if previous == nil || previous.Status == nil || next.Status == nil {
		return true
	}
	return previous.Status.Branch != next.Status.Branch
}

// recordWorkspace updates the registry entry for this path, best effort
func (s *Session) recordWorkspace(ctx context.Context, snapshot *Snapshot) {
	if s.registry == nil {
		return
	}

	branch := ""
	if snapshot.Status != nil {
		branch = snapshot.Status.Branch
	}
	err := s.registry.Save(ctx, ports.Workspace{
		IsRepository: snapshot.IsRepository,
		LastBranch:   branch,
		LastOpenedAt: time.Now().UTC(),
		Path:         s.path,
	})
	if err != nil {
		logging.Logger.Warn("failed to record workspace", "path", s.path, "error", err)
	}
}
