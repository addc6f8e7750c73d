package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitdeck/internal/domain"
)

// fakeGit shadows the real git binary with a script that always fails with
// stderrLine. The returned func reports how many times it was invoked.
func fakeGit(t *testing.T, stderrLine string) func() int {
	t.Helper()
	dir := t.TempDir()
	countFile := filepath.Join(dir, "count")
	script := fmt.Sprintf("#!/bin/sh\necho x >> %q\necho %q >&2\nexit 1\n", countFile, stderrLine)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "git"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	return func() int {
		data, err := os.ReadFile(countFile)
		if err != nil {
			return 0
		}
		return strings.Count(string(data), "x")
	}
}

func TestTransfer_RetriesOnceOnNetworkFailure(t *testing.T) {
	invocations := fakeGit(t, "fatal: unable to access 'https://example.invalid/': Could not resolve host: example.invalid")

	err := transfer(context.Background(), t.TempDir(), "fetch", "--all")

	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Equal(t, 2, invocations())
}

func TestTransfer_NoRetryOnAuthenticationFailure(t *testing.T) {
	invocations := fakeGit(t, "fatal: Authentication failed for 'https://example.invalid/'")

	err := transfer(context.Background(), t.TempDir(), "push", "origin", "main")

	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	assert.Equal(t, 1, invocations())
}

func TestTransfer_NoRetryOnNonFastForward(t *testing.T) {
	invocations := fakeGit(t, "error: failed to push some refs to 'origin'")

	err := transfer(context.Background(), t.TempDir(), "push", "origin", "main")

	assert.ErrorIs(t, err, domain.ErrNonFastForward)
	assert.Equal(t, 1, invocations())
}
