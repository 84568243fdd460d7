package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
)

// SubmitMsg is dispatched when a username has been entered.
type SubmitMsg struct {
	Username string
}

// Model is the login screen.
type Model struct {
	form     *huh.Form
	username *string
	users    []model.User
	errText  string
	width    int
	height   int
}

// New creates the login screen.
func New(width, height int) Model {
	return Model{username: new(string), width: width, height: height}
}

// Start resets the form. users feed the username suggestions.
func (m *Model) Start(users []model.User) tea.Cmd {
	m.users = users
	*m.username = ""

	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("e.g. topper_01").
				Suggestions(names).
				Value(m.username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
		),
	).WithWidth(min(60, max(30, m.width-4))).WithShowHelp(false)
	return m.form.Init()
}

// SetError shows a failed login attempt and restarts the form.
func (m *Model) SetError(text string) tea.Cmd {
	m.errText = text
	return m.Start(m.users)
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		name := strings.TrimSpace(*m.username)
		m.errText = ""
		m.form = nil
		return m, func() tea.Msg { return SubmitMsg{Username: name} }
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the login screen centred in the content area.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorCyan).
		Render("StudyTrack")
	subtitle := theme.HelpStyle.Render("Plan it. Time it. Beat your friends.")

	parts := []string{title, subtitle, ""}
	if m.form != nil {
		parts = append(parts, m.form.View())
	}
	if m.errText != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errText))
	}
	if len(m.users) > 0 {
		var names []string
		for _, u := range m.users {
			names = append(names, u.Username)
		}
		parts = append(parts, "", theme.DimmedStyle.Render("Known users: "+strings.Join(names, ", ")))
	}

	box := theme.PanelStyle.Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
