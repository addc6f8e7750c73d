package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"gitdeck/internal/domain"
	"gitdeck/internal/logging"
)

// GitError captures a failed git invocation: the subcommand, its arguments,
// the underlying error, and whatever git wrote to stderr.
type GitError struct {
	Args      []string
	Err       error
	Operation string
	Stderr    string
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// runGit executes a git subcommand in dir and returns trimmed stdout.
// Failures come back as *GitError with stderr captured.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Logger.Debug("running git", "args", args, "dir", dir)

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		gerr := &GitError{
			Operation: args[0],
			Args:      args[1:],
			Err:       err,
			Stderr:    strings.TrimSpace(stderr.String()),
		}
		logging.Logger.Debug("git failed", "op", args[0], "stderr", gerr.Stderr)
		return "", gerr
	}

	return strings.TrimRight(stdout.String(), "\n"), nil
}

// stderrOf returns the captured stderr of a git error, empty otherwise
func stderrOf(err error) string {
	var gerr *GitError
	if errors.As(err, &gerr) {
		return gerr.Stderr
	}
	return ""
}

// classifyTransfer maps a push/pull/fetch failure onto the engine's error
// taxonomy. Authentication and non-fast-forward rejections must never be
// retried; everything network-shaped is transient and gets one retry.
func classifyTransfer(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: timeout: %w", domain.ErrNetworkFailure, err)
	}

	stderr := strings.ToLower(stderrOf(err))

	authMarkers := []string{
		"authentication failed",
		"could not read username",
		"could not read password",
		"permission denied",
		"invalid credentials",
		"terminal prompts disabled",
	}
	for _, m := range authMarkers {
		if strings.Contains(stderr, m) {
			return fmt.Errorf("%w: %w", domain.ErrAuthenticationFailed, err)
		}
	}

	nonFFMarkers := []string{
		"non-fast-forward",
		"fetch first",
		"failed to push some refs",
		"[rejected]",
	}
	for _, m := range nonFFMarkers {
		if strings.Contains(stderr, m) {
			return fmt.Errorf("%w: %w", domain.ErrNonFastForward, err)
		}
	}

	networkMarkers := []string{
		"could not resolve host",
		"unable to access",
		"connection refused",
		"connection reset",
		"connection timed out",
		"operation timed out",
		"network is unreachable",
		"early eof",
		"remote end hung up",
		"could not connect",
	}
	for _, m := range networkMarkers {
		if strings.Contains(stderr, m) {
			return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
		}
	}

	return err
}

// isTransient reports whether a classified transfer error is worth one retry
func isTransient(err error) bool {
	return errors.Is(err, domain.ErrNetworkFailure)
}
