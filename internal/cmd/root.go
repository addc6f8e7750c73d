package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"gitdeck/internal/config"
	"gitdeck/internal/logging"
	"gitdeck/internal/services"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	Dir         string           `help:"Working directory to operate on" short:"C" default:"."`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Status     StatusCmd     `cmd:"" help:"Show the working tree status (default)" default:"1"`
	Log        LogCmd        `cmd:"log" help:"Show commit history"`
	Branches   BranchesCmd   `cmd:"branches" help:"List branches"`
	Branch     BranchCmd     `cmd:"branch" help:"Manage branches (create, switch, delete)"`
	Stage      StageCmd      `cmd:"stage" help:"Stage files for the next commit"`
	Unstage    UnstageCmd    `cmd:"unstage" help:"Remove files from the index"`
	Discard    DiscardCmd    `cmd:"discard" help:"Discard working-tree changes to files"`
	Commit     CommitCmd     `cmd:"commit" help:"Commit the staged changes"`
	Merge      MergeCmd      `cmd:"merge" help:"Merge a branch into the current one"`
	Push       PushCmd       `cmd:"push" help:"Push the current branch to origin"`
	Pull       PullCmd       `cmd:"pull" help:"Pull the current branch from its upstream"`
	Fetch      FetchCmd      `cmd:"fetch" help:"Fetch all remotes"`
	Stash      StashCmd      `cmd:"stash" help:"Manage the stash stack (push, list, apply, pop, drop)"`
	Remotes    RemotesCmd    `cmd:"remotes" help:"Manage remotes (list, add)"`
	Workspaces WorkspacesCmd `cmd:"workspaces" help:"List known workspaces"`
	Init       InitCmd       `cmd:"init" help:"Initialize a repository in the working directory"`
	Watch      WatchCmd      `cmd:"watch" help:"Watch the workspace and print change events"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	c.settings = settings

	// Precedence: CLI flags > env vars > settings.json > defaults
	if c.MaxLogFiles == 1000 {
		if _, hasEnv := os.LookupEnv("GITDECK_MAX_LOG_FILES"); !hasEnv {
			if settings.MaxLogFiles != nil {
				c.MaxLogFiles = *settings.MaxLogFiles
			}
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("GITDECK_DEBUG"); !hasEnv {
			c.Debug = settings.DebugEnabled(false)
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Propagate debug settings so child git processes share the log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("GITDECK_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("GITDECK_DEBUG_FILE", logFilePath)
		}
	}

	container, err := NewContainer(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// openSession opens the session for the selected working directory
func (c *CLI) openSession(ctx context.Context) (*services.Session, error) {
	return c.Container.Manager.Open(ctx, c.Dir)
}
