package profile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
	"github.com/nhle/studytrack/internal/tracker"
	"github.com/nhle/studytrack/internal/ui"
)

// HeatmapDays is how many days the activity heatmap covers.
const HeatmapDays = 14

// Model shows the session user's totals and today's history.
type Model struct {
	user   model.User
	rank   int
	today  []model.Task
	days   []tracker.DayCount
	width  int
	height int
}

// New creates the profile view.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetUser replaces the rendered user, leaderboard rank and today's tasks.
func (m *Model) SetUser(u model.User, rank int, today []model.Task) {
	m.user = u
	m.rank = rank
	m.today = today
}

// SetHeatmap replaces the per-day finished counts, oldest first.
func (m *Model) SetHeatmap(days []tracker.DayCount) {
	m.days = days
}

// View renders the profile.
func (m Model) View() string {
	u := m.user
	width := min(m.width, 72)

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		theme.AvatarStyle(u.AvatarColor).Padding(1, 2).Render(u.Initials()),
		lipgloss.NewStyle().PaddingLeft(2).Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.StatValueStyle.Render(u.DisplayName),
			theme.DimmedStyle.Render("@"+u.Username),
		)),
	)

	rank := "-"
	if m.rank > 0 {
		rank = fmt.Sprintf("#%d", m.rank)
	}
	stats := strings.Join([]string{
		statLine("Hours studied", fmt.Sprintf("%dh", u.StudyHours())),
		statLine("Tasks completed", fmt.Sprint(u.TasksCompleted)),
		statLine("Success rate", fmt.Sprintf("%d%%", u.SuccessRate)),
		statLine("Streak", fmt.Sprintf("%d days", u.Streak)),
		statLine("Rank", rank),
	}, "\n")

	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		ui.Panel("Stats", stats, width),
		ui.Panel(fmt.Sprintf("Activity · last %d days", HeatmapDays), m.heatmap(), width),
		ui.Panel("Today's History", m.history(), width),
	))
}

func statLine(label, value string) string {
	return lipgloss.NewStyle().Width(18).Foreground(theme.ColorGray).Render(label) +
		theme.StatValueStyle.Render(value)
}

// heatLevel maps a day's finished count onto a heatmap shade.
func heatLevel(finished int) int {
	return min(finished, theme.HeatLevels-1)
}

// heatmap renders one cell per day with the first and last date below.
func (m Model) heatmap() string {
	if len(m.days) == 0 {
		return theme.DimmedStyle.Render("No activity yet.")
	}
	cells := make([]string, len(m.days))
	for i, d := range m.days {
		cells[i] = theme.HeatCellStyle(heatLevel(d.Finished)).Render("  ")
	}
	row := strings.Join(cells, " ")

	first, last := m.days[0].Date, m.days[len(m.days)-1].Date
	gap := max(1, lipgloss.Width(row)-len(first)-len(last))
	labels := theme.DimmedStyle.Render(first + strings.Repeat(" ", gap) + last)
	return row + "\n" + labels
}

// history lists today's tasks that left the pending state.
func (m Model) history() string {
	var lines []string
	for _, t := range m.today {
		if t.Status == model.StatusPending {
			continue
		}
		detail := ""
		switch {
		case t.Status.Finished():
			detail = fmt.Sprintf("%d/%d min", t.ActualMinutes, t.EstimatedMinutes)
		case t.Status == model.StatusActive:
			detail = "running"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			theme.StatusStyle(t.Status).Width(10).Render(string(t.Status)),
			t.Name,
			theme.DimmedStyle.Render(detail),
		))
	}
	if len(lines) == 0 {
		return theme.DimmedStyle.Render("Nothing finished yet today.")
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
