package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitdeck/internal/domain"
	"gitdeck/internal/ports"
)

func setupTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndGet(t *testing.T) {
	repo := setupTestRepository(t)
	ws := ports.Workspace{
		IsRepository: true,
		LastBranch:   "main",
		LastOpenedAt: time.Now().UTC().Truncate(time.Second),
		Path:         "/home/user/project",
	}

	require.NoError(t, repo.Save(context.Background(), ws))

	got, err := repo.Get(context.Background(), ws.Path)
	require.NoError(t, err)
	assert.Equal(t, ws.Path, got.Path)
	assert.Equal(t, "main", got.LastBranch)
	assert.True(t, got.IsRepository)
}

func TestGet_NotFound(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.Get(context.Background(), "/nowhere")

	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestSave_UpsertsByPath(t *testing.T) {
	repo := setupTestRepository(t)
	ws := ports.Workspace{Path: "/home/user/project", LastBranch: "main", LastOpenedAt: time.Now().UTC()}
	require.NoError(t, repo.Save(context.Background(), ws))

	ws.LastBranch = "feature"
	require.NoError(t, repo.Save(context.Background(), ws))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "feature", all[0].LastBranch)
}

func TestList_MostRecentFirst(t *testing.T) {
	repo := setupTestRepository(t)
	now := time.Now().UTC()
	require.NoError(t, repo.Save(context.Background(), ports.Workspace{
		Path: "/old", LastOpenedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Save(context.Background(), ports.Workspace{
		Path: "/new", LastOpenedAt: now,
	}))

	all, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "/new", all[0].Path)
	assert.Equal(t, "/old", all[1].Path)
}

func TestDelete(t *testing.T) {
	repo := setupTestRepository(t)
	require.NoError(t, repo.Save(context.Background(), ports.Workspace{
		Path: "/home/user/project", LastOpenedAt: time.Now().UTC(),
	}))

	require.NoError(t, repo.Delete(context.Background(), "/home/user/project"))

	_, err := repo.Get(context.Background(), "/home/user/project")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestDelete_UnknownPathIsNoOp(t *testing.T) {
	repo := setupTestRepository(t)

	assert.NoError(t, repo.Delete(context.Background(), "/nowhere"))
}
