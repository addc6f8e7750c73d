package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitdeck/internal/domain"
)

const stashFormat = "%gd%x1f%at%x1f%gs"

// listStashes returns the stash stack, index 0 first
func listStashes(ctx context.Context, path string) ([]domain.Stash, error) {
	out, err := runGit(ctx, path, "stash", "list", "--format="+stashFormat)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var stashes []domain.Stash
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\x1f")
		if len(fields) < 3 {
			continue
		}
		stash := domain.Stash{Message: trimStashSubject(fields[2])}
		if _, err := fmt.Sscanf(fields[0], "stash@{%d}", &stash.Index); err != nil {
			continue
		}
		if epoch, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			stash.Date = time.Unix(epoch, 0)
		}
		stashes = append(stashes, stash)
	}
	return stashes, nil
}

// trimStashSubject strips the "On <branch>: " or "WIP on <branch>: " prefix
// git prepends, leaving the caller-supplied message.
func trimStashSubject(subject string) string {
	if idx := strings.Index(subject, ": "); idx >= 0 {
		prefix := subject[:idx]
		if strings.HasPrefix(prefix, "On ") || strings.HasPrefix(prefix, "WIP on ") {
			return subject[idx+2:]
		}
	}
	return subject
}

// stashPush saves staged and unstaged changes under message. An effectively
// clean tree is rejected before shelling out, so the engine's error is the
// same whether or not git would have printed "No local changes to save".
func stashPush(ctx context.Context, path, message string) error {
	status, err := scanStatus(ctx, path)
	if err != nil {
		return err
	}
	if len(status.Staged) == 0 && len(status.Unstaged) == 0 {
		return domain.ErrNoChangesToStash
	}

	args := []string{"stash", "push"}
	if message != "" {
		args = append(args, "-m", message)
	}
	_, err = runGit(ctx, path, args...)
	return err
}

// stashApply restores stash entry index, reinstating the staged/unstaged
// split the entry was saved with. Conflicts come back as a
// MergeConflictError; the entry itself is never dropped here.
func stashApply(ctx context.Context, path string, index int) error {
	if err := checkStashIndex(ctx, path, index); err != nil {
		return err
	}

	ref := fmt.Sprintf("stash@{%d}", index)
	_, err := runGit(ctx, path, "stash", "apply", "--index", ref)
	if err == nil {
		return nil
	}

	conflicts, cerr := conflictedPaths(ctx, path)
	if cerr == nil && len(conflicts) > 0 {
		return &domain.MergeConflictError{Conflicts: conflicts}
	}
	return err
}

// stashDrop removes stash entry index; higher indices shift down
func stashDrop(ctx context.Context, path string, index int) error {
	if err := checkStashIndex(ctx, path, index); err != nil {
		return err
	}
	_, err := runGit(ctx, path, "stash", "drop", fmt.Sprintf("stash@{%d}", index))
	return err
}

func checkStashIndex(ctx context.Context, path string, index int) error {
	if index < 0 {
		return fmt.Errorf("%w: stash index %d", domain.ErrInvalidRef, index)
	}
	stashes, err := listStashes(ctx, path)
	if err != nil {
		return err
	}
	if index >= len(stashes) {
		return fmt.Errorf("%w: stash index %d out of range (%d entries)",
			domain.ErrInvalidRef, index, len(stashes))
	}
	return nil
}
