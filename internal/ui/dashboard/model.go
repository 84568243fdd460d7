package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/keys"
	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
	"github.com/nhle/studytrack/internal/timer"
	"github.com/nhle/studytrack/internal/tracker"
	"github.com/nhle/studytrack/internal/ui"
	"github.com/nhle/studytrack/internal/ui/tasklist"
)

// State is everything the dashboard renders, read from the tracker.
type State struct {
	User    model.User
	Tasks   []model.Task
	Active  *model.Task
	Friends []model.User
	Rank    int
	Daily   tracker.Progress
}

// Model is the home screen: today's tasks, the running timer, friends'
// activity and quick stats.
type Model struct {
	tasks  tasklist.Model
	bar    progress.Model
	state  State
	now    time.Time
	width  int
	height int
}

// New creates the dashboard.
func New(k *keys.KeyMap, width, height int) Model {
	bar := progress.New(progress.WithSolidFill(theme.ColorCyan.Dark), progress.WithoutPercentage())
	m := Model{
		tasks: tasklist.New(k, width, height),
		bar:   bar,
	}
	m.SetSize(width, height)
	return m
}

// SetState replaces the rendered data.
func (m *Model) SetState(s State) tea.Cmd {
	m.state = s
	return m.tasks.SetTasks(s.Tasks)
}

// SetNow moves the display clock.
func (m *Model) SetNow(now time.Time) {
	m.now = now
}

// ActiveTaskID returns the id of the displayed running task, if any.
func (m Model) ActiveTaskID() string {
	if m.state.Active == nil {
		return ""
	}
	return m.state.Active.ID
}

// Update forwards input to the task list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m Model) View() string {
	mainW, sideW := ui.Columns(m.width)

	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.PanelTitleStyle.Render(m.todayTitle()),
		m.tasks.View(),
	)
	left = lipgloss.NewStyle().Width(mainW).Padding(0, 1).Render(left)

	sw := sideW
	if sw == 0 {
		sw = mainW
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.nowPlaying(sw),
		m.friends(sw),
		m.stats(sw),
	)

	if sideW == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, right, left)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) todayTitle() string {
	d := m.state.Daily
	return fmt.Sprintf("Today · %d/%d done · %d%%", d.Finished, d.Total, d.Percent)
}

func (m Model) nowPlaying(width int) string {
	task := m.state.Active
	if task == nil {
		return ui.Panel("Now Playing", theme.DimmedStyle.Render("Nothing running. Select a task and press s."), width)
	}

	elapsed := timer.Elapsed(task.StartedAt, m.now)
	phase := timer.PhaseFor(elapsed, task.EstimatedMinutes)

	bar := m.bar
	bar.Width = max(10, width-6)
	bar.FullColor = theme.PhaseColor(phase).Dark

	body := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s %s", theme.SubjectStyle(task.Subject).Render(string(task.Subject)), task.Name),
		"",
		theme.PhaseStyle(phase).Render(timer.FormatClock(elapsed))+
			theme.DimmedStyle.Render(fmt.Sprintf("  / %d min", task.EstimatedMinutes)),
		bar.ViewAs(timer.Progress(elapsed, task.EstimatedMinutes)),
		theme.HelpStyle.Render("d finish · "+phaseHint(phase)),
	)
	return ui.Panel("Now Playing", body, width)
}

func phaseHint(p timer.Phase) string {
	switch p {
	case timer.PhaseOvertime:
		return "over estimate, will count as delayed"
	case timer.PhaseWarning:
		return "nearly at estimate"
	default:
		return "on track"
	}
}

func (m Model) friends(width int) string {
	if len(m.state.Friends) == 0 {
		return ui.Panel("Friends", theme.DimmedStyle.Render("No one else here yet."), width)
	}

	lines := make([]string, 0, len(m.state.Friends))
	for _, f := range m.state.Friends {
		dot := theme.DimmedStyle.Render("○")
		if f.IsOnline {
			dot = lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("●")
		}

		doing := theme.DimmedStyle.Render("idle")
		if a := f.CurrentActivity; a != nil {
			started := a.StartedAt
			doing = fmt.Sprintf("%s %s %s",
				theme.SubjectStyle(a.Subject).Render(string(a.Subject)),
				a.TaskName,
				theme.DimmedStyle.Render(timer.FormatClock(timer.Elapsed(&started, m.now))),
			)
		}

		lines = append(lines, fmt.Sprintf("%s %s %s  %s",
			dot, theme.AvatarStyle(f.AvatarColor).Render(f.Initials()), f.DisplayName, doing))
	}
	return ui.Panel("Friends", strings.Join(lines, "\n"), width)
}

func (m Model) stats(width int) string {
	u := m.state.User
	cell := func(label string, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			theme.StatValueStyle.Render(value),
			theme.DimmedStyle.Render(label),
		)
	}
	cellStyle := lipgloss.NewStyle().Width(max(8, (width-4)/4))

	rank := "-"
	if m.state.Rank > 0 {
		rank = fmt.Sprintf("#%d", m.state.Rank)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		cellStyle.Render(cell("rank", rank)),
		cellStyle.Render(cell("today", fmt.Sprintf("%d%%", m.state.Daily.Percent))),
		cellStyle.Render(cell("tasks", fmt.Sprint(u.TasksCompleted))),
		cellStyle.Render(cell("streak", fmt.Sprintf("%dd", u.Streak))),
	)
	return ui.Panel("Quick Stats", row, width)
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	mainW, _ := ui.Columns(width)
	// title line plus its margin
	m.tasks.SetSize(max(0, mainW-2), max(0, height-2))
}
