package cmd

import (
	"context"
	"fmt"

	"gitdeck/internal/theme"
)

// StashCmd groups the stash operations
type StashCmd struct {
	Push  StashPushCmd  `cmd:"push" help:"Shelve the current changes" default:"1"`
	List  StashListCmd  `cmd:"list" help:"List stash entries"`
	Apply StashApplyCmd `cmd:"apply" help:"Reapply an entry, keeping it on the stack"`
	Pop   StashPopCmd   `cmd:"pop" help:"Reapply an entry and drop it on success"`
	Drop  StashDropCmd  `cmd:"drop" help:"Remove an entry"`
}

// StashPushCmd shelves the current changes
type StashPushCmd struct {
	Message string `help:"Stash message" short:"m"`
}

// Run executes the stash push command
func (s *StashPushCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.Stash(context.Background(), s.Message); err != nil {
		return err
	}
	fmt.Println("Stashed working tree changes")
	return nil
}

// StashListCmd lists stash entries
type StashListCmd struct{}

// Run executes the stash list command
func (s *StashListCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	for _, stash := range session.Stashes() {
		fmt.Printf("%s %s %s\n",
			theme.HashStyle.Render(fmt.Sprintf("stash@{%d}", stash.Index)),
			stash.Message,
			theme.MutedStyle.Render(stash.Date.Format("2006-01-02 15:04")),
		)
	}
	return nil
}

// StashApplyCmd reapplies an entry, keeping it on the stack
type StashApplyCmd struct {
	Index int `arg:"" optional:"" help:"Stash index to apply" default:"0"`
}

// Run executes the stash apply command
func (s *StashApplyCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	return session.ApplyStash(context.Background(), s.Index)
}

// StashPopCmd reapplies an entry and drops it on clean application
type StashPopCmd struct {
	Index int `arg:"" optional:"" help:"Stash index to pop" default:"0"`
}

// Run executes the stash pop command
func (s *StashPopCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	return session.PopStash(context.Background(), s.Index)
}

// StashDropCmd removes an entry
type StashDropCmd struct {
	Index int `arg:"" optional:"" help:"Stash index to drop" default:"0"`
}

// Run executes the stash drop command
func (s *StashDropCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	return session.DropStash(context.Background(), s.Index)
}
