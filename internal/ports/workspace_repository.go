package ports

import (
	"context"
	"time"
)

// Workspace is a registry entry for a working directory the engine has seen
type Workspace struct {
	IsRepository bool
	LastBranch   string
	LastOpenedAt time.Time
	Path         string
}

// WorkspaceReader reads registry entries
type WorkspaceReader interface {
	Get(ctx context.Context, path string) (*Workspace, error)
	List(ctx context.Context) ([]Workspace, error)
}

// WorkspaceWriter records and removes registry entries
type WorkspaceWriter interface {
	Save(ctx context.Context, ws Workspace) error
	Delete(ctx context.Context, path string) error
}

// WorkspaceRepository is the composite registry interface. The registry is
// a convenience collaborator: losing it never affects engine correctness.
type WorkspaceRepository interface {
	WorkspaceReader
	WorkspaceWriter
	Close() error
}
