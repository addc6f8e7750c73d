package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// File status colors
const (
	ColorConflicted Color = "196" // Bright red
	ColorStaged     Color = "2"   // Green
	ColorUnstaged   Color = "3"   // Yellow
	ColorUntracked  Color = "8"   // Gray
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
)

// Ref colors
const (
	ColorAhead   Color = "2"   // Green
	ColorBehind  Color = "1"   // Red
	ColorBranch  Color = "141" // Purple
	ColorCurrent Color = "46"  // Bright green
	ColorRemote  Color = "33"  // Blue
)
