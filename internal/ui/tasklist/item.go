package tasklist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Name }

// Title returns the task name for the list.
func (i TaskItem) Title() string { return i.Task.Name }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	return fmt.Sprintf("%s | %s | %s", i.Task.Subject, i.Task.Status, minutesLabel(i.Task))
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	task := ti.Task
	isSelected := index == m.Index()

	glyph := theme.StatusStyle(task.Status).Render(statusGlyph(task.Status))
	subject := theme.SubjectStyle(task.Subject).Render(subjectCode(task.Subject))
	mins := theme.DimmedStyle.Render(minutesLabel(task))

	line := fmt.Sprintf("%s %s %s  %s", glyph, subject, task.Name, mins)

	if task.Status.Terminal() {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

func statusGlyph(s model.TaskStatus) string {
	switch s {
	case model.StatusActive:
		return "▶"
	case model.StatusCompleted:
		return "✓"
	case model.StatusDelayed:
		return "!"
	case model.StatusSkipped:
		return "–"
	default:
		return "○"
	}
}

// subjectCode is the three-letter badge text for a subject.
func subjectCode(s model.Subject) string {
	switch s {
	case model.SubjectMaths:
		return "MAT"
	case model.SubjectPhysics:
		return "PHY"
	case model.SubjectChemistry:
		return "CHE"
	default:
		return "OTH"
	}
}

// minutesLabel shows the estimate, plus the actual time once finished.
func minutesLabel(t model.Task) string {
	if t.Status.Finished() {
		return fmt.Sprintf("%d/%d min", t.ActualMinutes, t.EstimatedMinutes)
	}
	return fmt.Sprintf("%d min", t.EstimatedMinutes)
}
