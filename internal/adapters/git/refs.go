package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gitdeck/internal/domain"
)

const branchFormat = "%(HEAD)%09%(refname)%09%(refname:short)%09%(upstream:short)%09%(upstream:track)"

// listBranches enumerates local branches, plus remote-tracking branches when
// includeRemote is set. Ahead/behind counts come from the upstream tracking
// info git already maintains.
func listBranches(ctx context.Context, path string, includeRemote bool) ([]domain.Branch, error) {
	refs := []string{"refs/heads"}
	if includeRemote {
		refs = append(refs, "refs/remotes")
	}
	args := append([]string{"for-each-ref", "--format=" + branchFormat}, refs...)
	out, err := runGit(ctx, path, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var branches []domain.Branch
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			continue
		}
		fullRef, name := fields[1], fields[2]
		if strings.HasSuffix(fullRef, "/HEAD") {
			continue
		}
		b := domain.Branch{
			IsCurrent: fields[0] == "*",
			IsRemote:  strings.HasPrefix(fullRef, "refs/remotes/"),
			Name:      name,
			Upstream:  fields[3],
		}
		b.Ahead, b.Behind = parseTrack(fields[4])
		branches = append(branches, b)
	}
	return branches, nil
}

// parseTrack extracts counts from "[ahead N, behind M]" style tracking info
func parseTrack(track string) (ahead, behind int) {
	track = strings.Trim(track, "[]")
	for _, part := range strings.Split(track, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			continue
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		switch fields[0] {
		case "ahead":
			ahead = n
		case "behind":
			behind = n
		}
	}
	return ahead, behind
}

// createBranch validates the name, rejects duplicates, and creates the
// branch at HEAD without switching to it.
func createBranch(ctx context.Context, path, name string) error {
	if _, err := runGit(ctx, path, "check-ref-format", "--branch", name); err != nil {
		return fmt.Errorf("%w: malformed branch name %q", domain.ErrInvalidRef, name)
	}
	if _, err := runGit(ctx, path, "show-ref", "--verify", "--quiet", "refs/heads/"+name); err == nil {
		return fmt.Errorf("%w: branch %q already exists", domain.ErrInvalidRef, name)
	}
	_, err := runGit(ctx, path, "branch", name)
	return err
}

// switchBranch checks out name. Without force it refuses when the working
// tree or index carry changes; with force it discards them.
func switchBranch(ctx context.Context, path, name string, force bool) error {
	if _, err := runGit(ctx, path, "show-ref", "--verify", "--quiet", "refs/heads/"+name); err != nil {
		return fmt.Errorf("%w: no branch %q", domain.ErrInvalidRef, name)
	}

	if force {
		_, err := runGit(ctx, path, "checkout", "--force", name)
		return err
	}

	status, err := scanStatus(ctx, path)
	if err != nil {
		return err
	}
	if len(status.Staged) > 0 || len(status.Unstaged) > 0 || len(status.Conflicts) > 0 {
		return domain.ErrDirtyWorkingTree
	}

	_, err = runGit(ctx, path, "checkout", name)
	return err
}

// deleteBranch removes a local branch. The current branch cannot be deleted;
// beyond that the deletion is forced, unmerged work included.
func deleteBranch(ctx context.Context, path, name string) error {
	current, err := currentBranch(ctx, path)
	if err != nil {
		return err
	}
	if name == current {
		return fmt.Errorf("%w: cannot delete the current branch %q", domain.ErrInvalidRef, name)
	}
	if _, err := runGit(ctx, path, "show-ref", "--verify", "--quiet", "refs/heads/"+name); err != nil {
		return fmt.Errorf("%w: no branch %q", domain.ErrInvalidRef, name)
	}
	_, err = runGit(ctx, path, "branch", "-D", name)
	return err
}

func currentBranch(ctx context.Context, path string) (string, error) {
	return runGit(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
}

// merge merges branch into HEAD. A conflicted merge is not an error: the
// result reports the conflicted paths and the repository stays mid-merge
// until the caller resolves and commits.
func merge(ctx context.Context, path, branch string) (*domain.MergeResult, error) {
	if _, err := runGit(ctx, path, "rev-parse", "--verify", branch); err != nil {
		return nil, fmt.Errorf("%w: no ref %q", domain.ErrInvalidRef, branch)
	}

	_, err := runGit(ctx, path, "merge", "--no-edit", branch)
	if err == nil {
		return &domain.MergeResult{Success: true}, nil
	}

	conflicts, cerr := conflictedPaths(ctx, path)
	if cerr == nil && len(conflicts) > 0 {
		return &domain.MergeResult{Conflicts: conflicts}, nil
	}
	return nil, err
}

func conflictedPaths(ctx context.Context, path string) ([]string, error) {
	out, err := runGit(ctx, path, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// mergeStatus reports the in-progress merge, nil when none is outstanding
func mergeStatus(ctx context.Context, path string) (*domain.MergeState, error) {
	theirs, err := runGit(ctx, path, "rev-parse", "--verify", "--quiet", "MERGE_HEAD")
	if err != nil {
		return nil, nil
	}

	state := &domain.MergeState{InProgress: true, Theirs: theirs}
	if ours, err := runGit(ctx, path, "rev-parse", "--verify", "HEAD"); err == nil {
		state.Ours = ours
	}
	if base, err := runGit(ctx, path, "merge-base", "HEAD", theirs); err == nil {
		state.Base = base
	}
	return state, nil
}
