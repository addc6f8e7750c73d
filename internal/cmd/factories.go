package cmd

import (
	adaptergit "gitdeck/internal/adapters/git"
	adapterstorage "gitdeck/internal/adapters/storage"
	"gitdeck/internal/config"
	"gitdeck/internal/ports"
	"gitdeck/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	Backend  ports.GitBackend
	Manager  *services.Manager
	Registry ports.WorkspaceRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	registry, err := adapterstorage.NewSQLiteRepository(settings.ResolvedRegistryPath())
	if err != nil {
		return nil, err
	}

	backend := adaptergit.NewCLIBackend()
	manager := services.NewManager(backend,
		services.WithRegistry(registry),
		services.WithHistoryLimit(settings.ResolvedHistoryLimit(100)),
		services.WithQueueSize(settings.ResolvedQueueSize(0)),
		services.WithNetworkTimeout(settings.ResolvedNetworkTimeout(0)),
	)

	return &Container{
		Backend:  backend,
		Manager:  manager,
		Registry: registry,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	err := c.Manager.CloseAll()
	if cerr := c.Registry.Close(); err == nil {
		err = cerr
	}
	return err
}
