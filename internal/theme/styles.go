package theme

import "github.com/charmbracelet/lipgloss"

// File status styles
var (
	ConflictedStyle = lipgloss.NewStyle().
			Foreground(ColorConflicted).
			Bold(true)

	StagedStyle = lipgloss.NewStyle().
			Foreground(ColorStaged)

	UnstagedStyle = lipgloss.NewStyle().
			Foreground(ColorUnstaged)

	UntrackedStyle = lipgloss.NewStyle().
			Foreground(ColorUntracked)
)

// Ref styles
var (
	AheadStyle = lipgloss.NewStyle().
			Foreground(ColorAhead)

	BehindStyle = lipgloss.NewStyle().
			Foreground(ColorBehind)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorBranch)

	CurrentBranchStyle = lipgloss.NewStyle().
				Foreground(ColorCurrent).
				Bold(true)

	RemoteBranchStyle = lipgloss.NewStyle().
				Foreground(ColorRemote)
)

// General output styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HashStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)
