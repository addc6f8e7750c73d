package cmd

import (
	"context"
	"fmt"

	"gitdeck/internal/theme"
)

// MergeCmd merges a branch into the current one
type MergeCmd struct {
	Branch string `arg:"" help:"Branch to merge into the current branch"`
}

// Run executes the merge command
func (m *MergeCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	result, err := session.Merge(context.Background(), m.Branch)
	if err != nil {
		return err
	}

	if result.Success {
		fmt.Printf("Merged %s\n", m.Branch)
		return nil
	}

	fmt.Println(theme.ConflictedStyle.Render("Merge produced conflicts:"))
	for _, path := range result.Conflicts {
		fmt.Printf("  %s\n", theme.ConflictedStyle.Render(path))
	}
	fmt.Println(theme.MutedStyle.Render("Resolve the files, stage them, then commit to conclude the merge."))
	return nil
}

// PushCmd pushes the current branch to origin
type PushCmd struct{}

// Run executes the push command
func (p *PushCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.Push(context.Background()); err != nil {
		return err
	}
	fmt.Println("Pushed")
	return nil
}

// PullCmd pulls the current branch from its upstream
type PullCmd struct{}

// Run executes the pull command
func (p *PullCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.Pull(context.Background()); err != nil {
		return err
	}
	fmt.Println("Pulled")
	return nil
}

// FetchCmd fetches all remotes
type FetchCmd struct{}

// Run executes the fetch command
func (f *FetchCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.Fetch(context.Background()); err != nil {
		return err
	}
	fmt.Println("Fetched")
	return nil
}
