package cmd

import (
	"fmt"
	"strings"

	"gitdeck/internal/domain"
	"gitdeck/internal/theme"
)

func renderStatus(status *domain.GitStatus) string {
	var b strings.Builder

	branch := status.Branch
	if branch == "" {
		branch = "(detached)"
	}
	b.WriteString(theme.LabelStyle.Render("On branch "))
	b.WriteString(theme.CurrentBranchStyle.Render(branch))
	if status.Upstream != "" {
		b.WriteString(theme.MutedStyle.Render(" tracking " + status.Upstream))
		b.WriteString(renderAheadBehind(status.Ahead, status.Behind))
	}
	b.WriteString("\n")

	if status.Clean {
		b.WriteString(theme.MutedStyle.Render("nothing to commit, working tree clean"))
		b.WriteString("\n")
		return b.String()
	}

	if len(status.Conflicts) > 0 {
		b.WriteString(theme.ConflictedStyle.Render("Unmerged paths:"))
		b.WriteString("\n")
		for _, path := range status.Conflicts {
			fmt.Fprintf(&b, "  %s\n", theme.ConflictedStyle.Render("!! "+path))
		}
	}
	if len(status.Staged) > 0 {
		b.WriteString(theme.LabelStyle.Render("Changes to be committed:"))
		b.WriteString("\n")
		for _, entry := range status.Staged {
			fmt.Fprintf(&b, "  %s\n", theme.StagedStyle.Render(renderEntry(entry)))
		}
	}
	if len(status.Unstaged) > 0 {
		b.WriteString(theme.LabelStyle.Render("Changes not staged for commit:"))
		b.WriteString("\n")
		for _, entry := range status.Unstaged {
			fmt.Fprintf(&b, "  %s\n", theme.UnstagedStyle.Render(renderEntry(entry)))
		}
	}
	if len(status.Untracked) > 0 {
		b.WriteString(theme.LabelStyle.Render("Untracked files:"))
		b.WriteString("\n")
		for _, path := range status.Untracked {
			fmt.Fprintf(&b, "  %s\n", theme.UntrackedStyle.Render("?? "+path))
		}
	}

	return b.String()
}

func renderEntry(entry domain.FileEntry) string {
	if entry.Status == domain.StateRenamed && entry.OldPath != "" {
		return fmt.Sprintf("%-10s %s -> %s", entry.Status, entry.OldPath, entry.Path)
	}
	return fmt.Sprintf("%-10s %s", entry.Status, entry.Path)
}

func renderAheadBehind(ahead, behind int) string {
	var parts []string
	if ahead > 0 {
		parts = append(parts, theme.AheadStyle.Render(fmt.Sprintf("↑%d", ahead)))
	}
	if behind > 0 {
		parts = append(parts, theme.BehindStyle.Render(fmt.Sprintf("↓%d", behind)))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func renderBranch(branch domain.Branch) string {
	marker := "  "
	style := theme.BranchStyle
	switch {
	case branch.IsCurrent:
		marker = "* "
		style = theme.CurrentBranchStyle
	case branch.IsRemote:
		style = theme.RemoteBranchStyle
	}

	line := marker + style.Render(branch.Name)
	if branch.Upstream != "" {
		line += theme.MutedStyle.Render(" -> " + branch.Upstream)
		line += renderAheadBehind(branch.Ahead, branch.Behind)
	}
	return line
}

func renderCommit(commit domain.Commit) string {
	line := theme.HashStyle.Render(commit.ShortHash)
	if len(commit.Refs) > 0 {
		line += " " + theme.BranchStyle.Render("("+strings.Join(commit.Refs, ", ")+")")
	}
	line += " " + commit.Message
	line += theme.MutedStyle.Render(fmt.Sprintf(" (%s, %s)", commit.Author, commit.Date.Format("2006-01-02 15:04")))
	return line
}
