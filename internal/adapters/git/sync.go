package git

import (
	"context"
	"time"

	"gitdeck/internal/logging"
)

const transferRetryDelay = 500 * time.Millisecond

// transfer runs a network-bound git command, classifying the failure and
// retrying once on transient network errors. Authentication and
// non-fast-forward rejections surface immediately.
func transfer(ctx context.Context, path string, args ...string) error {
	_, err := runGit(ctx, path, args...)
	if err == nil {
		return nil
	}

	err = classifyTransfer(err)
	if !isTransient(err) {
		return err
	}

	logging.Logger.Debug("transient transfer failure, retrying", "op", args[0], "err", err)
	select {
	case <-time.After(transferRetryDelay):
	case <-ctx.Done():
		return err
	}

	_, retryErr := runGit(ctx, path, args...)
	if retryErr == nil {
		return nil
	}
	return classifyTransfer(retryErr)
}

// push pushes the current branch, setting the upstream on first push so
// subsequent pushes and ahead/behind tracking work without arguments.
func push(ctx context.Context, path string) error {
	branch, err := currentBranch(ctx, path)
	if err != nil {
		return err
	}
	return transfer(ctx, path, "push", "--set-upstream", "origin", branch)
}

func pull(ctx context.Context, path string) error {
	return transfer(ctx, path, "pull", "--ff-only")
}

func fetch(ctx context.Context, path string) error {
	return transfer(ctx, path, "fetch", "--all", "--prune")
}
