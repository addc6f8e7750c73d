package cmd

import (
	"context"
	"fmt"

	"gitdeck/internal/theme"
)

// WorkspacesCmd lists the workspaces the registry has seen
type WorkspacesCmd struct{}

// Run executes the workspaces command
func (w *WorkspacesCmd) Run(cli *CLI) error {
	workspaces, err := cli.Container.Registry.List(context.Background())
	if err != nil {
		return err
	}

	for _, ws := range workspaces {
		marker := " "
		if !ws.IsRepository {
			marker = "-"
		}
		line := fmt.Sprintf("%s %s", marker, ws.Path)
		if ws.LastBranch != "" {
			line += " " + theme.BranchStyle.Render("["+ws.LastBranch+"]")
		}
		line += " " + theme.MutedStyle.Render(ws.LastOpenedAt.Format("2006-01-02 15:04"))
		fmt.Println(line)
	}
	return nil
}

// InitCmd initializes a repository in the working directory
type InitCmd struct{}

// Run executes the init command
func (i *InitCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	if session.IsRepository() {
		fmt.Println("Already a git repository")
		return nil
	}
	if err := session.InitRepository(context.Background()); err != nil {
		return err
	}
	fmt.Printf("Initialized repository in %s\n", session.Path())
	return nil
}
