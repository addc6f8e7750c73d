package domain

import "time"

// Branch is a local or remote-tracking branch. Exactly one branch has
// IsCurrent set once the repository is initialized; switching branches
// moves the flag atomically with HEAD.
type Branch struct {
	Ahead     int
	Behind    int
	IsCurrent bool
	IsRemote  bool
	Name      string
	Upstream  string // remote-tracking ref, empty when none is configured
}

// Commit is an immutable history entry. History queries return commits in
// reverse-chronological order.
type Commit struct {
	Author    string
	Date      time.Time
	Hash      string
	Message   string
	Refs      []string // decorations pointing at this commit (branches, tags, HEAD)
	ShortHash string
}

// RemoteType distinguishes the directions a remote is configured for
type RemoteType string

const (
	RemoteFetch RemoteType = "fetch"
	RemotePush  RemoteType = "push"
	RemoteBoth  RemoteType = "both"
)

// Remote is a named remote repository
type Remote struct {
	Name string
	Type RemoteType
	URL  string
}

// Stash is one saved working-tree snapshot. Index is positional: 0 is the
// most recent entry, pushing shifts existing indices up, dropping shifts
// higher indices down.
type Stash struct {
	Date    time.Time
	Index   int
	Message string
}

// MergeState is non-nil only while a merge with unresolved conflicts is
// outstanding. Commit is rejected until every conflicted path is staged;
// committing then concludes the merge and clears this state.
type MergeState struct {
	Base       string // merge base commit
	InProgress bool
	Ours       string // HEAD side
	Theirs     string // branch being merged in
}

// MergeResult is the outcome of a merge attempt. A conflicted merge is a
// benign failure: Success is false, Conflicts lists the paths, and the
// session enters MergeState rather than returning an error.
type MergeResult struct {
	Conflicts []string
	Success   bool
}
