package cmd

import (
	"context"
	"encoding/json"
	"fmt"
)

// LogCmd shows commit history
type LogCmd struct {
	Format   string `help:"Output format: text or json" enum:"text,json" default:"text"`
	MaxCount int    `help:"Maximum number of commits to show" short:"n" default:"20"`
}

// Run executes the log command
func (l *LogCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	commits := session.History(l.MaxCount)
	if l.Format == "json" {
		data, err := json.MarshalIndent(commits, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, commit := range commits {
		fmt.Println(renderCommit(commit))
	}
	return nil
}
