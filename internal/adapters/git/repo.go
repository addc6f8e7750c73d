package git

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"gitdeck/internal/domain"
)

func isRepository(path string) bool {
	out, err := runGit(context.Background(), path, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

func initRepository(ctx context.Context, path string) error {
	_, err := runGit(ctx, path, "init")
	return err
}

// gitCommonDir resolves the shared .git directory, absolutized against the
// working tree so watchers can follow it from anywhere.
func gitCommonDir(ctx context.Context, path string) (string, error) {
	out, err := runGit(ctx, path, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(out) {
		return out, nil
	}
	return filepath.Join(path, out), nil
}

// listRemotes parses `git remote -v`, merging the fetch and push lines of
// each remote into one entry. A remote with both directions configured to
// the same URL reports as RemoteBoth.
func listRemotes(ctx context.Context, path string) ([]domain.Remote, error) {
	out, err := runGit(ctx, path, "remote", "-v")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	byName := map[string]*domain.Remote{}
	var order []string

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name, url, direction := fields[0], fields[1], strings.Trim(fields[2], "()")

		remote, ok := byName[name]
		if !ok {
			remote = &domain.Remote{Name: name, URL: url, Type: domain.RemoteType(direction)}
			byName[name] = remote
			order = append(order, name)
			continue
		}
		if string(remote.Type) != direction && remote.URL == url {
			remote.Type = domain.RemoteBoth
		}
	}

	sort.Strings(order)
	remotes := make([]domain.Remote, 0, len(order))
	for _, name := range order {
		remotes = append(remotes, *byName[name])
	}
	return remotes, nil
}

func addRemote(ctx context.Context, path, name, url string) error {
	_, err := runGit(ctx, path, "remote", "add", name, url)
	return err
}
