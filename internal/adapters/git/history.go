package git

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gitdeck/internal/domain"
)

const logFormat = "%H%x1f%h%x1f%an%x1f%aI%x1f%D%x1f%s"

// log returns up to maxCount commits reachable from HEAD, newest first. An
// empty repository has no history and returns an empty slice rather than an
// error.
func log(ctx context.Context, path string, maxCount int) ([]domain.Commit, error) {
	if !hasHead(ctx, path) {
		return nil, nil
	}

	args := []string{"log", "--pretty=format:" + logFormat}
	if maxCount > 0 {
		args = append(args, "--max-count="+strconv.Itoa(maxCount))
	}
	out, err := runGit(ctx, path, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var commits []domain.Commit
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\x1f")
		if len(fields) < 6 {
			continue
		}
		commit := domain.Commit{
			Hash:      fields[0],
			ShortHash: fields[1],
			Author:    fields[2],
			Refs:      parseDecorations(fields[4]),
			Message:   fields[5],
		}
		if date, err := time.Parse(time.RFC3339, fields[3]); err == nil {
			commit.Date = date
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// parseDecorations splits the %D ref names, normalizing "HEAD -> main" into
// its two components.
func parseDecorations(decorations string) []string {
	if decorations == "" {
		return nil
	}
	var refs []string
	for _, ref := range strings.Split(decorations, ", ") {
		for _, part := range strings.Split(ref, " -> ") {
			if part != "" {
				refs = append(refs, part)
			}
		}
	}
	return refs
}
