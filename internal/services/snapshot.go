package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gitdeck/internal/domain"
	"gitdeck/internal/ports"
)

const defaultHistoryLimit = 100

// Snapshot is one fully consistent view of a workspace: readers get either
// the snapshot before a mutation or the one after it, never a mix.
type Snapshot struct {
	Branches     []domain.Branch
	Commits      []domain.Commit
	IsRepository bool
	MergeState   *domain.MergeState
	Remotes      []domain.Remote
	Stashes      []domain.Stash
	Status       *domain.GitStatus
}

// buildSnapshot recomputes the whole view in one pass, fanning the
// independent queries out concurrently. For a directory that is not a
// repository it returns an empty snapshot instead of failing, so a session
// can be opened before the first init.
func buildSnapshot(ctx context.Context, backend ports.GitBackend, path string, historyLimit int) (*Snapshot, error) {
	if !backend.IsRepository(path) {
		return &Snapshot{Status: &domain.GitStatus{Clean: true}}, nil
	}

	snapshot := &Snapshot{IsRepository: true}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		status, err := backend.Scan(ctx, path)
		if err != nil {
			return err
		}
		snapshot.Status = status
		return nil
	})
	g.Go(func() error {
		branches, err := backend.ListBranches(ctx, path, true)
		if err != nil {
			return err
		}
		snapshot.Branches = branches
		return nil
	})
	g.Go(func() error {
		commits, err := backend.Log(ctx, path, historyLimit)
		if err != nil {
			return err
		}
		snapshot.Commits = commits
		return nil
	})
	g.Go(func() error {
		stashes, err := backend.ListStashes(ctx, path)
		if err != nil {
			return err
		}
		snapshot.Stashes = stashes
		return nil
	})
	g.Go(func() error {
		remotes, err := backend.ListRemotes(ctx, path)
		if err != nil {
			return err
		}
		snapshot.Remotes = remotes
		return nil
	})
	g.Go(func() error {
		state, err := backend.MergeStatus(ctx, path)
		if err != nil {
			return err
		}
		snapshot.MergeState = state
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// localBranches filters the remote-tracking entries out of a snapshot's
// branch list.
func localBranches(branches []domain.Branch) []domain.Branch {
	var local []domain.Branch
	for _, b := range branches {
		if !b.IsRemote {
			local = append(local, b)
		}
	}
	return local
}
