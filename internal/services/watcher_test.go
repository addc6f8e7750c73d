package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitdeck/internal/domain"
)

func TestWatcher_FileChangeTriggersRefresh(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	require.NoError(t, session.Watch(context.Background()))

	id, events := session.Subscribe()
	defer session.Unsubscribe(id)

	writeFile(t, dir, "edited.txt", "external edit")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case n := <-events:
			if n.Event == domain.EventWorkingDirectoryChanged {
				assert.Contains(t, session.Status().Untracked, "edited.txt")
				return
			}
		case <-deadline:
			t.Fatal("no workingDirectoryChanged event after file edit")
		}
	}
}

func TestWatcher_ExternalRefChangeTriggersRefresh(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)
	require.NoError(t, session.Watch(context.Background()))

	id, events := session.Subscribe()
	defer session.Unsubscribe(id)

	// Branch switch performed outside the session
	gitIn(t, dir, "checkout", "-b", "external")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-events:
			if session.Status().Branch == "external" {
				return
			}
		case <-deadline:
			t.Fatal("session never observed the external branch switch")
		}
	}
}

func TestWatcher_WatchTwiceIsNoOp(t *testing.T) {
	dir := setupTestRepo(t)
	session := openSession(t, dir)

	require.NoError(t, session.Watch(context.Background()))
	require.NoError(t, session.Watch(context.Background()))
}
