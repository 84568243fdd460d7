package model

import (
	"fmt"
	"strings"
	"time"
)

// Subject classifies a study task for display grouping.
type Subject string

const (
	SubjectMaths     Subject = "Maths"
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectOther     Subject = "Other"
)

// Subjects lists every valid subject in display order.
var Subjects = []Subject{SubjectMaths, SubjectPhysics, SubjectChemistry, SubjectOther}

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	for _, known := range Subjects {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSubject matches a subject name case-insensitively.
func ParseSubject(name string) (Subject, error) {
	for _, s := range Subjects {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q", name)
}

// TaskStatus is a state in the task lifecycle.
type TaskStatus string

// Task lifecycle states. COMPLETED, DELAYED and SKIPPED are terminal.
const (
	StatusPending   TaskStatus = "pending"
	StatusActive    TaskStatus = "active"
	StatusCompleted TaskStatus = "completed"
	StatusDelayed   TaskStatus = "delayed"
	StatusSkipped   TaskStatus = "skipped"
)

// Terminal reports whether no transition leaves this status.
func (s TaskStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusDelayed, StatusSkipped:
		return true
	default:
		return false
	}
}

// Finished reports whether the status counts towards the success rate.
func (s TaskStatus) Finished() bool {
	return s == StatusCompleted || s == StatusDelayed
}

// DateLayout is the calendar-date format used for Task.Date.
const DateLayout = "2006-01-02"

// Task is a single study item scheduled for one calendar date.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// UserID is the owning user. It never changes after creation.
	UserID string `json:"userId"`

	Name    string  `json:"name"`
	Subject Subject `json:"subject"`

	// EstimatedMinutes is the planned duration, set at creation.
	EstimatedMinutes int `json:"estimatedMinutes"`

	// ActualMinutes stays 0 until the task is completed.
	ActualMinutes int `json:"actualMinutes"`

	Status TaskStatus `json:"status"`

	// Date is the YYYY-MM-DD day the task is planned for.
	Date string `json:"date"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	t.StartedAt = cloneTime(t.StartedAt)
	t.CompletedAt = cloneTime(t.CompletedAt)
	return t
}

// Equal reports whether t and o hold the same values. Times compare by
// instant, so a value reloaded from storage equals the original.
func (t Task) Equal(o Task) bool {
	return t.ID == o.ID &&
		t.UserID == o.UserID &&
		t.Name == o.Name &&
		t.Subject == o.Subject &&
		t.EstimatedMinutes == o.EstimatedMinutes &&
		t.ActualMinutes == o.ActualMinutes &&
		t.Status == o.Status &&
		t.Date == o.Date &&
		equalTimePtr(t.StartedAt, o.StartedAt) &&
		equalTimePtr(t.CompletedAt, o.CompletedAt)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Today returns the local calendar date of now in DateLayout.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
