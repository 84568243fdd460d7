package leaderboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
)

// Model renders users ranked by tasks completed.
type Model struct {
	users     []model.User
	currentID string
	width     int
	height    int
}

// New creates the leaderboard view.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetUsers replaces the ranking. users must already be in leaderboard
// order; currentID is highlighted.
func (m *Model) SetUsers(users []model.User, currentID string) {
	m.users = users
	m.currentID = currentID
}

// Rows returns the table cells, one row per user.
func (m Model) Rows() [][]string {
	rows := make([][]string, len(m.users))
	for i, u := range m.users {
		rows[i] = []string{
			medal(i + 1),
			u.Initials(),
			u.DisplayName,
			fmt.Sprint(u.TasksCompleted),
			fmt.Sprintf("%dh", u.StudyHours()),
			fmt.Sprintf("%d%%", u.SuccessRate),
			fmt.Sprintf("%dd", u.Streak),
		}
	}
	return rows
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// View renders the leaderboard table.
func (m Model) View() string {
	if len(m.users) == 0 {
		return theme.DimmedStyle.Render("No users yet.")
	}

	base := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("", "", "Name", "Tasks", "Hours", "Success", "Streak").
		Rows(m.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(theme.ColorCyan)
			}
			if row < 0 || row >= len(m.users) {
				return base
			}
			u := m.users[row]
			if col == 1 {
				return theme.AvatarStyle(u.AvatarColor)
			}
			if u.ID == m.currentID {
				return base.Bold(true).Foreground(theme.ColorYellow)
			}
			return base
		})

	title := theme.PanelTitleStyle.Render("Leaderboard · by tasks completed")
	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, title, t.Render()))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
