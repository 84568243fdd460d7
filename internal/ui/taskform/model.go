package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
	"github.com/nhle/studytrack/internal/tracker"
)

// EstimateOptions are the selectable planned durations in minutes.
var EstimateOptions = []int{15, 30, 45, 60, 90, 120}

// TaskSubmittedMsg is dispatched when the form is completed.
type TaskSubmittedMsg struct {
	Task tracker.NewTask
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	subject  model.Subject
	estimate int
	date     string
}

// Model is the Bubble Tea model for the add-task form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{subject: model.SubjectMaths, estimate: 60},
		width:  width,
		height: height,
	}
}

// Start resets the form for a new task planned on date.
func (m *Model) Start(date string) tea.Cmd {
	m.fb.name = ""
	m.fb.subject = model.SubjectMaths
	m.fb.estimate = 60
	m.fb.date = date
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
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
		m.form = nil
		return m, m.handleSubmit()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Study Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	subjects := make([]huh.Option[model.Subject], len(model.Subjects))
	for i, s := range model.Subjects {
		subjects[i] = huh.NewOption(string(s), s)
	}
	estimates := make([]huh.Option[int], len(EstimateOptions))
	for i, mins := range EstimateOptions {
		estimates[i] = huh.NewOption(EstimateLabel(mins), mins)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("What are you studying?").
				Value(&m.fb.name).
				Validate(validateRequired("Task")),
			huh.NewSelect[model.Subject]().
				Title("Subject").
				Options(subjects...).
				Value(&m.fb.subject),
			huh.NewSelect[int]().
				Title("Estimate").
				Options(estimates...).
				Value(&m.fb.estimate),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	task := tracker.NewTask{
		Name:             strings.TrimSpace(m.fb.name),
		Subject:          m.fb.subject,
		EstimatedMinutes: m.fb.estimate,
		Date:             strings.TrimSpace(m.fb.date),
	}
	return func() tea.Msg { return TaskSubmittedMsg{Task: task} }
}

// EstimateLabel formats a duration option such as "45 min" or "1h 30m".
func EstimateLabel(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	if mins%60 == 0 {
		return fmt.Sprintf("%dh", mins/60)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(model.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
