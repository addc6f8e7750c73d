package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"gitdeck/internal/ports"
)

// Manager hands out sessions, one per working directory. A path is owned
// exclusively by its session while open: a second Open of the same path
// returns the existing session rather than a competing one. Sessions for
// different paths are fully independent.
type Manager struct {
	backend  ports.GitBackend
	mu       sync.Mutex
	opts     []SessionOption
	sessions map[string]*Session
}

func NewManager(backend ports.GitBackend, opts ...SessionOption) *Manager {
	return &Manager{
		backend:  backend,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Open returns the session for path, creating it on first use. The path is
// normalized to its absolute form so two spellings of one directory share a
// session.
func (m *Manager) Open(ctx context.Context, path string) (*Session, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[abs]; ok {
		return session, nil
	}

	session, err := NewSession(ctx, m.backend, abs, m.opts...)
	if err != nil {
		return nil, err
	}
	m.sessions[abs] = session
	return session, nil
}

// Close shuts the session for path down and releases its exclusive
// ownership. Closing an unopened path is a no-op.
func (m *Manager) Close(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	m.mu.Lock()
	session, ok := m.sessions[abs]
	delete(m.sessions, abs)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return session.Close()
}

// CloseAll shuts every open session down
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for path, session := range m.sessions {
		sessions = append(sessions, session)
		delete(m.sessions, path)
	}
	m.mu.Unlock()

	var firstErr error
	for _, session := range sessions {
		if err := session.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
