package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gitdeck/internal/domain"
)

// scanStatus runs `git status --porcelain=v2 --branch` and partitions every
// reported path into exactly one of the four status buckets. Conflicted
// paths win over everything; staged wins over unstaged for paths changed in
// both the index and the working tree.
func scanStatus(ctx context.Context, path string) (*domain.GitStatus, error) {
	out, err := runGit(ctx, path, "status", "--porcelain=v2", "--branch")
	if err != nil {
		if strings.Contains(strings.ToLower(stderrOf(err)), "not a git repository") {
			return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
		}
		return nil, err
	}
	return parseStatus(out), nil
}

func parseStatus(out string) *domain.GitStatus {
	status := &domain.GitStatus{}

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# branch.head "):
			head := strings.TrimPrefix(line, "# branch.head ")
			if head != "(detached)" {
				status.Branch = head
			}
		case strings.HasPrefix(line, "# branch.upstream "):
			status.Upstream = strings.TrimPrefix(line, "# branch.upstream ")
		case strings.HasPrefix(line, "# branch.ab "):
			parseAheadBehind(strings.TrimPrefix(line, "# branch.ab "), status)
		case strings.HasPrefix(line, "1 "):
			parseOrdinaryEntry(line, status)
		case strings.HasPrefix(line, "2 "):
			parseRenameEntry(line, status)
		case strings.HasPrefix(line, "u "):
			parseUnmergedEntry(line, status)
		case strings.HasPrefix(line, "? "):
			status.Untracked = append(status.Untracked, line[2:])
		}
	}

	status.Clean = !status.HasChanges()
	return status
}

// parseAheadBehind handles the "+N -M" counts from branch.ab
func parseAheadBehind(ab string, status *domain.GitStatus) {
	for _, field := range strings.Fields(ab) {
		if len(field) < 2 {
			continue
		}
		n, err := strconv.Atoi(field[1:])
		if err != nil {
			continue
		}
		switch field[0] {
		case '+':
			status.Ahead = n
		case '-':
			status.Behind = n
		}
	}
}

// parseOrdinaryEntry handles "1 XY sub mH mI mW hH hI path" lines. X is the
// index state, Y the working-tree state.
func parseOrdinaryEntry(line string, status *domain.GitStatus) {
	fields := strings.SplitN(line, " ", 9)
	if len(fields) < 9 {
		return
	}
	xy := fields[1]
	path := fields[8]
	bucketEntry(xy[0], xy[1], path, "", status)
}

// parseRenameEntry handles "2 XY sub mH mI mW hH hI Xscore path<TAB>origPath"
func parseRenameEntry(line string, status *domain.GitStatus) {
	fields := strings.SplitN(line, " ", 10)
	if len(fields) < 10 {
		return
	}
	xy := fields[1]
	paths := strings.SplitN(fields[9], "\t", 2)
	path := paths[0]
	oldPath := ""
	if len(paths) == 2 {
		oldPath = paths[1]
	}
	bucketEntry(xy[0], xy[1], path, oldPath, status)
}

// parseUnmergedEntry handles "u XY sub m1 m2 m3 mW h1 h2 h3 path"
func parseUnmergedEntry(line string, status *domain.GitStatus) {
	fields := strings.SplitN(line, " ", 11)
	if len(fields) < 11 {
		return
	}
	status.Conflicts = append(status.Conflicts, fields[10])
}

// bucketEntry assigns one ordinary or rename entry to the staged or unstaged
// bucket. A path modified in both the index and the working tree lands in
// staged only, keeping the buckets disjoint.
func bucketEntry(x, y byte, path, oldPath string, status *domain.GitStatus) {
	if x != '.' {
		status.Staged = append(status.Staged, domain.FileEntry{
			OldPath: oldPath,
			Path:    path,
			Status:  indexState(x),
		})
		return
	}
	if y != '.' {
		status.Unstaged = append(status.Unstaged, domain.FileEntry{
			OldPath: oldPath,
			Path:    path,
			Status:  worktreeState(y),
		})
	}
}

func indexState(x byte) domain.FileState {
	switch x {
	case 'R':
		return domain.StateRenamed
	case 'D':
		return domain.StateDeleted
	default:
		return domain.StateStaged
	}
}

func worktreeState(y byte) domain.FileState {
	switch y {
	case 'D':
		return domain.StateDeleted
	case 'R':
		return domain.StateRenamed
	default:
		return domain.StateModified
	}
}
