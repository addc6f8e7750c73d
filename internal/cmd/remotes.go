package cmd

import (
	"context"
	"fmt"

	"gitdeck/internal/theme"
)

// RemotesCmd groups the remote operations
type RemotesCmd struct {
	List RemotesListCmd `cmd:"list" help:"List configured remotes" default:"1"`
	Add  RemotesAddCmd  `cmd:"add" help:"Add a remote"`
}

// RemotesListCmd lists configured remotes
type RemotesListCmd struct{}

// Run executes the remotes list command
func (r *RemotesListCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	for _, remote := range session.Remotes() {
		fmt.Printf("%s %s %s\n",
			theme.RemoteBranchStyle.Render(remote.Name),
			remote.URL,
			theme.MutedStyle.Render("("+string(remote.Type)+")"),
		)
	}
	return nil
}

// RemotesAddCmd adds a remote
type RemotesAddCmd struct {
	Name string `arg:"" help:"Remote name"`
	URL  string `arg:"" help:"Remote URL"`
}

// Run executes the remotes add command
func (r *RemotesAddCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.AddRemote(context.Background(), r.Name, r.URL); err != nil {
		return err
	}
	fmt.Printf("Added remote %s\n", r.Name)
	return nil
}
