package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitdeck/internal/domain"
	"gitdeck/internal/theme"
)

// WatchCmd follows the workspace and prints change events as they happen
type WatchCmd struct{}

// Run executes the watch command, blocking until interrupted
func (w *WatchCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.openSession(ctx)
	if err != nil {
		return err
	}
	if !session.IsRepository() {
		return fmt.Errorf("%s is not a git repository (run 'gitdeck init' first)", session.Path())
	}

	if err := session.Watch(ctx); err != nil {
		return err
	}

	id, events := session.Subscribe()
	defer session.Unsubscribe(id)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", session.Path())
	for {
		select {
		case notification, ok := <-events:
			if !ok {
				return nil
			}
			w.print(notification)
		case <-stop:
			return nil
		}
	}
}

func (w *WatchCmd) print(notification domain.Notification) {
	stamp := theme.MutedStyle.Render(time.Now().Format("15:04:05"))
	line := fmt.Sprintf("%s %s", stamp, theme.NormalStyle.Render(string(notification.Event)))
	if notification.Merge != nil {
		if notification.Merge.Success {
			line += theme.StagedStyle.Render(" (clean)")
		} else {
			line += theme.ConflictedStyle.Render(fmt.Sprintf(" (%d conflicts)", len(notification.Merge.Conflicts)))
		}
	}
	fmt.Println(line)
}
