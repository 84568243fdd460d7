package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/timer"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#00F5FF", Light: "#0987A0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces StatusBarStyle while an error is shown.
var ErrorBarStyle = StatusBarStyle.
	Background(ColorRed)

// PanelStyle wraps a dashboard panel.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// PanelTitleStyle is the heading inside a panel.
var PanelTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorCyan).
	MarginBottom(1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders finished or secondary content.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// StatValueStyle renders a big number in the quick-stats panel.
var StatValueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// ErrorStyle is used by the CLI for error output.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// StatusStyle returns a color-coded style for a task status.
func StatusStyle(status model.TaskStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.StatusPending:
		return base.Foreground(ColorBlue)
	case model.StatusActive:
		return base.Foreground(ColorYellow)
	case model.StatusCompleted:
		return base.Foreground(ColorGreen)
	case model.StatusDelayed:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorGray)
	}
}

// SubjectStyle returns the badge style for a subject.
func SubjectStyle(subject model.Subject) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch subject {
	case model.SubjectMaths:
		return base.Foreground(ColorCyan)
	case model.SubjectPhysics:
		return base.Foreground(ColorMagenta)
	case model.SubjectChemistry:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PhaseColor is the timer color for a phase.
func PhaseColor(p timer.Phase) lipgloss.AdaptiveColor {
	switch p {
	case timer.PhaseOvertime:
		return ColorRed
	case timer.PhaseWarning:
		return ColorYellow
	default:
		return ColorCyan
	}
}

// PhaseStyle renders the running clock.
func PhaseStyle(p timer.Phase) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(PhaseColor(p))
}

// AvatarStyle renders a user's initials on their avatar color.
func AvatarStyle(hex string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000"))
	if hex == "" {
		return s.Background(ColorGray)
	}
	return s.Background(lipgloss.Color(hex))
}

// heatColors shade the activity heatmap from idle to busiest.
var heatColors = []lipgloss.AdaptiveColor{
	{Dark: "#343A40", Light: "#EDF2F7"},
	{Dark: "#0B4F55", Light: "#B2F5EA"},
	{Dark: "#08808A", Light: "#4FD1C5"},
	{Dark: "#00BFC8", Light: "#319795"},
	ColorCyan,
}

// HeatLevels is the number of distinct heatmap shades.
var HeatLevels = len(heatColors)

// HeatCellStyle renders one heatmap cell. Levels outside the range are
// clamped.
func HeatCellStyle(level int) lipgloss.Style {
	level = max(0, min(level, len(heatColors)-1))
	return lipgloss.NewStyle().Background(heatColors[level])
}

// Apply selects the palette variant for name. The default theme keeps
// the terminal's detected background.
func Apply(name string) {
	switch name {
	case model.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case model.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}
