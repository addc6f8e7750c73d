package cmd

import (
	"context"
	"encoding/json"
	"fmt"
)

// StatusCmd shows the working tree status
type StatusCmd struct {
	Format string `help:"Output format: text or json" enum:"text,json" default:"text"`
}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	session, err := cli.openSession(context.Background())
	if err != nil {
		return err
	}

	if !session.IsRepository() {
		return fmt.Errorf("%s is not a git repository (run 'gitdeck init' first)", session.Path())
	}

	status := session.Status()
	if s.Format == "json" {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(renderStatus(status))
	return nil
}
