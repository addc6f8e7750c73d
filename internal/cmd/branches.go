package cmd

import (
	"context"
	"fmt"
)

// BranchesCmd lists branches
type BranchesCmd struct {
	Remotes bool `help:"Include remote-tracking branches" short:"r"`
}

// Run executes the branches command
func (b *BranchesCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	for _, branch := range session.Branches(b.Remotes) {
		fmt.Println(renderBranch(branch))
	}
	return nil
}

// BranchCmd groups the branch mutations
type BranchCmd struct {
	Create BranchCreateCmd `cmd:"create" help:"Create a branch at HEAD without switching"`
	Switch BranchSwitchCmd `cmd:"switch" help:"Switch to a branch"`
	Delete BranchDeleteCmd `cmd:"delete" help:"Delete a local branch"`
}

// BranchCreateCmd creates a branch
type BranchCreateCmd struct {
	Name string `arg:"" help:"Name of the branch to create"`
}

// Run executes the branch create command
func (b *BranchCreateCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.CreateBranch(context.Background(), b.Name); err != nil {
		return err
	}
	fmt.Printf("Created branch %s\n", b.Name)
	return nil
}

// BranchSwitchCmd switches branches
type BranchSwitchCmd struct {
	Force bool   `help:"Discard uncommitted changes blocking the switch" short:"f"`
	Name  string `arg:"" help:"Name of the branch to switch to"`
}

// Run executes the branch switch command
func (b *BranchSwitchCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.SwitchBranch(context.Background(), b.Name, b.Force); err != nil {
		return err
	}
	fmt.Printf("Switched to branch %s\n", b.Name)
	return nil
}

// BranchDeleteCmd deletes a branch
type BranchDeleteCmd struct {
	Name string `arg:"" help:"Name of the branch to delete"`
}

// Run executes the branch delete command
func (b *BranchDeleteCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}
	if err := session.DeleteBranch(context.Background(), b.Name); err != nil {
		return err
	}
	fmt.Printf("Deleted branch %s\n", b.Name)
	return nil
}
