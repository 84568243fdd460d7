package tasklist

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/keys"
	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
)

// StartTaskMsg asks the app to start the selected task.
type StartTaskMsg struct {
	TaskID string
}

// FinishTaskMsg asks the app to complete the selected task.
type FinishTaskMsg struct {
	TaskID string
}

// SkipTaskMsg asks the app to skip the selected task.
type SkipTaskMsg struct {
	TaskID string
}

// Model is the list of the session user's tasks for one day.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new task list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	// The app owns quit and help.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetTasks replaces the rows. Active tasks come first, then pending,
// then finished ones, each group in creation order.
func (m *Model) SetTasks(tasks []model.Task) tea.Cmd {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return statusRank(sorted[i].Status) < statusRank(sorted[j].Status)
	})

	items := make([]list.Item, len(sorted))
	for i, task := range sorted {
		items[i] = TaskItem{Task: task}
	}
	return m.list.SetItems(items)
}

func statusRank(s model.TaskStatus) int {
	switch s {
	case model.StatusActive:
		return 0
	case model.StatusPending:
		return 1
	default:
		return 2
	}
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		task, selected := m.SelectedTask()
		switch {
		case key.Matches(msg, m.keys.Start):
			if selected {
				return m, func() tea.Msg { return StartTaskMsg{TaskID: task.ID} }
			}
			return m, nil

		case key.Matches(msg, m.keys.Done):
			if selected {
				return m, func() tea.Msg { return FinishTaskMsg{TaskID: task.ID} }
			}
			return m, nil

		case key.Matches(msg, m.keys.Skip):
			if selected {
				return m, func() tea.Msg { return SkipTaskMsg{TaskID: task.ID} }
			}
			return m, nil
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are planned.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No tasks planned for today.\n\nPress n to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
