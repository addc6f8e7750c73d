package cmd

import (
	"context"
	"errors"
	"fmt"
)

// StageCmd stages files for the next commit
type StageCmd struct {
	All   bool     `help:"Stage every change, untracked files included" short:"a"`
	Paths []string `arg:"" optional:"" help:"Paths to stage"`
}

// Run executes the stage command
func (s *StageCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	if s.All {
		return session.StageAll(context.Background())
	}
	if len(s.Paths) == 0 {
		return errors.New("nothing to stage: pass paths or --all")
	}
	return session.StageFiles(context.Background(), s.Paths)
}

// UnstageCmd removes files from the index
type UnstageCmd struct {
	Paths []string `arg:"" help:"Paths to unstage"`
}

// Run executes the unstage command
func (u *UnstageCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	return session.UnstageFiles(context.Background(), u.Paths)
}

// DiscardCmd throws working-tree changes away
type DiscardCmd struct {
	Paths []string `arg:"" help:"Paths whose changes to discard"`
}

// Run executes the discard command
func (d *DiscardCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.DiscardChanges(context.Background(), d.Paths); err != nil {
		return err
	}
	fmt.Printf("Discarded changes to %d path(s)\n", len(d.Paths))
	return nil
}

// CommitCmd commits the staged changes
type CommitCmd struct {
	Message string `help:"Commit message" short:"m" required:""`
}

// Run executes the commit command
func (c *CommitCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.Commit(context.Background(), c.Message); err != nil {
		return err
	}
	fmt.Println("Committed", session.History(1)[0].ShortHash)
	return nil
}
