package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitdeck/internal/domain"
)

func TestListBranches_MarksCurrent(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "branch", "feature")

	branches, err := listBranches(context.Background(), dir, false)

	require.NoError(t, err)
	require.Len(t, branches, 2)

	var current []string
	for _, b := range branches {
		if b.IsCurrent {
			current = append(current, b.Name)
		}
	}
	assert.Equal(t, []string{"main"}, current)
}

func TestParseTrack(t *testing.T) {
	tests := []struct {
		track  string
		ahead  int
		behind int
	}{
		{"", 0, 0},
		{"[ahead 3]", 3, 0},
		{"[behind 2]", 0, 2},
		{"[ahead 1, behind 4]", 1, 4},
		{"[gone]", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.track, func(t *testing.T) {
			ahead, behind := parseTrack(tt.track)
			assert.Equal(t, tt.ahead, ahead)
			assert.Equal(t, tt.behind, behind)
		})
	}
}

func TestCreateBranch_InvalidName(t *testing.T) {
	dir := setupTestRepo(t)

	err := createBranch(context.Background(), dir, "bad name")

	assert.ErrorIs(t, err, domain.ErrInvalidRef)
}

func TestCreateBranch_Duplicate(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "branch", "feature")

	err := createBranch(context.Background(), dir, "feature")

	assert.ErrorIs(t, err, domain.ErrInvalidRef)
}

func TestCreateBranch_DoesNotSwitch(t *testing.T) {
	dir := setupTestRepo(t)

	err := createBranch(context.Background(), dir, "feature")

	require.NoError(t, err)
	current, err := currentBranch(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "main", current)
}

func TestSwitchBranch_DirtyTreeRejected(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "branch", "feature")
	writeFile(t, dir, "README.md", "# dirty")

	err := switchBranch(context.Background(), dir, "feature", false)

	assert.ErrorIs(t, err, domain.ErrDirtyWorkingTree)
	current, cerr := currentBranch(context.Background(), dir)
	require.NoError(t, cerr)
	assert.Equal(t, "main", current)
}

func TestSwitchBranch_ForceDiscardsChanges(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "branch", "feature")
	writeFile(t, dir, "README.md", "# dirty")

	err := switchBranch(context.Background(), dir, "feature", true)

	require.NoError(t, err)
	current, cerr := currentBranch(context.Background(), dir)
	require.NoError(t, cerr)
	assert.Equal(t, "feature", current)

	status, serr := scanStatus(context.Background(), dir)
	require.NoError(t, serr)
	assert.True(t, status.Clean)
}

func TestSwitchBranch_UntrackedFilesAllowed(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "branch", "feature")
	writeFile(t, dir, "scratch.txt", "notes")

	err := switchBranch(context.Background(), dir, "feature", false)

	require.NoError(t, err)
}

func TestSwitchBranch_UnknownBranch(t *testing.T) {
	dir := setupTestRepo(t)

	err := switchBranch(context.Background(), dir, "nope", false)

	assert.ErrorIs(t, err, domain.ErrInvalidRef)
}

func TestDeleteBranch_CurrentRejected(t *testing.T) {
	dir := setupTestRepo(t)

	err := deleteBranch(context.Background(), dir, "main")

	assert.ErrorIs(t, err, domain.ErrInvalidRef)
}

func TestDeleteBranch_RemovesUnmerged(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "checkout", "-b", "feature")
	writeFile(t, dir, "feature.txt", "x")
	gitIn(t, dir, "add", "feature.txt")
	gitIn(t, dir, "commit", "-m", "feature work")
	gitIn(t, dir, "checkout", "main")

	err := deleteBranch(context.Background(), dir, "feature")

	require.NoError(t, err)
	branches, lerr := listBranches(context.Background(), dir, false)
	require.NoError(t, lerr)
	require.Len(t, branches, 1)
	assert.Equal(t, "main", branches[0].Name)
}

func TestMerge_FastForward(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "checkout", "-b", "feature")
	writeFile(t, dir, "feature.txt", "x")
	gitIn(t, dir, "add", "feature.txt")
	gitIn(t, dir, "commit", "-m", "feature work")
	gitIn(t, dir, "checkout", "main")

	result, err := merge(context.Background(), dir, "feature")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Conflicts)
}

func TestMerge_ConflictReportsPathsAndEntersMergeState(t *testing.T) {
	dir := setupTestRepo(t)
	gitIn(t, dir, "checkout", "-b", "feature")
	writeFile(t, dir, "README.md", "# feature version")
	gitIn(t, dir, "add", "README.md")
	gitIn(t, dir, "commit", "-m", "feature change")
	gitIn(t, dir, "checkout", "main")
	writeFile(t, dir, "README.md", "# main version")
	gitIn(t, dir, "add", "README.md")
	gitIn(t, dir, "commit", "-m", "main change")

	result, err := merge(context.Background(), dir, "feature")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"README.md"}, result.Conflicts)

	state, serr := mergeStatus(context.Background(), dir)
	require.NoError(t, serr)
	require.NotNil(t, state)
	assert.True(t, state.InProgress)
	assert.NotEmpty(t, state.Ours)
	assert.NotEmpty(t, state.Theirs)
}

func TestMerge_UnknownRef(t *testing.T) {
	dir := setupTestRepo(t)

	_, err := merge(context.Background(), dir, "ghost")

	assert.ErrorIs(t, err, domain.ErrInvalidRef)
}

func TestMergeStatus_NoMerge(t *testing.T) {
	dir := setupTestRepo(t)

	state, err := mergeStatus(context.Background(), dir)

	require.NoError(t, err)
	assert.Nil(t, state)
}
