package git

import (
	"context"
	"strings"
)

func stageFiles(ctx context.Context, path string, files []string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := runGit(ctx, path, args...)
	return err
}

func stageAll(ctx context.Context, path string) error {
	_, err := runGit(ctx, path, "add", "-A")
	return err
}

// unstageFiles resets the index entries for files back to HEAD. In a
// repository with no commits yet there is no HEAD to reset against, so it
// falls back to removing the paths from the index entirely.
func unstageFiles(ctx context.Context, path string, files []string) error {
	if len(files) == 0 {
		return nil
	}
	if hasHead(ctx, path) {
		args := append([]string{"reset", "HEAD", "--"}, files...)
		_, err := runGit(ctx, path, args...)
		return err
	}
	args := append([]string{"rm", "--cached", "-r", "--"}, files...)
	_, err := runGit(ctx, path, args...)
	return err
}

// discardChanges restores the working-tree content of files from the index.
// Untracked paths have no index entry to restore from and are skipped, so a
// mixed selection never fails on them.
func discardChanges(ctx context.Context, path string, files []string) error {
	if len(files) == 0 {
		return nil
	}
	tracked, err := trackedPaths(ctx, path, files)
	if err != nil {
		return err
	}
	if len(tracked) == 0 {
		return nil
	}
	args := append([]string{"checkout", "--"}, tracked...)
	_, err = runGit(ctx, path, args...)
	return err
}

// trackedPaths filters files down to those with an index entry
func trackedPaths(ctx context.Context, path string, files []string) ([]string, error) {
	args := append([]string{"ls-files", "--"}, files...)
	out, err := runGit(ctx, path, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func commit(ctx context.Context, path, message string) error {
	_, err := runGit(ctx, path, "commit", "-m", message)
	return err
}

func hasHead(ctx context.Context, path string) bool {
	_, err := runGit(ctx, path, "rev-parse", "--verify", "HEAD")
	return err == nil
}
