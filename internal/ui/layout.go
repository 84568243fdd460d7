package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/theme"
)

// Layout manages the terminal frame dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// Columns splits width into a main and a side column. Narrow terminals
// get a single column and side is 0.
func Columns(width int) (main, side int) {
	if width < 80 {
		return width, 0
	}
	side = width * 2 / 5
	return width - side, side
}

// RenderHeader renders the top header bar with a title on the left and
// the session label on the right.
func (l Layout) RenderHeader(title string, session string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	sessionRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(session)

	gap := max(0, l.Width-lipgloss.Width(titleRendered)-lipgloss.Width(sessionRendered))

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		sessionRendered,
	)
}

// RenderStatusBar renders the bottom bar. A non-empty errText replaces
// the hints and switches to the error style.
func (l Layout) RenderStatusBar(hints, errText string) string {
	style := theme.StatusBarStyle
	text := hints
	if errText != "" {
		style = theme.ErrorBarStyle
		text = errText
	}
	rendered := style.Render(text)

	gap := max(0, l.Width-lipgloss.Width(rendered))
	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	content = lipgloss.NewStyle().
		Height(max(0, l.ContentHeight())).
		MaxHeight(max(0, l.ContentHeight())).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// Panel renders a titled, bordered box of the given outer width.
func Panel(title, body string, width int) string {
	// Width covers padding but not the border.
	return theme.PanelStyle.
		Width(max(0, width-2)).
		Render(lipgloss.JoinVertical(lipgloss.Left, theme.PanelTitleStyle.Render(title), body))
}
