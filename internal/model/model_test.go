package model

import (
	"testing"
	"time"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		in      string
		want    Subject
		wantErr bool
	}{
		{"Maths", SubjectMaths, false},
		{" physics ", SubjectPhysics, false},
		{"CHEMISTRY", SubjectChemistry, false},
		{"biology", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSubject(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSubject(%q) err=%v, wantErr %t", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSubject(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusClasses(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		terminal bool
		finished bool
	}{
		{StatusPending, false, false},
		{StatusActive, false, false},
		{StatusCompleted, true, true},
		{StatusDelayed, true, true},
		{StatusSkipped, true, false},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal()=%t, want %t", tt.status, got, tt.terminal)
		}
		if got := tt.status.Finished(); got != tt.finished {
			t.Errorf("%s.Finished()=%t, want %t", tt.status, got, tt.finished)
		}
	}
}

func TestCloneDetaches(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	task := Task{ID: "t", StartedAt: &at}
	c := task.Clone()
	*c.StartedAt = at.Add(time.Hour)
	if !task.StartedAt.Equal(at) {
		t.Fatal("Task.Clone shares StartedAt")
	}

	u := User{ID: "u", CurrentActivity: &Activity{TaskID: "t"}}
	uc := u.Clone()
	uc.CurrentActivity.TaskID = "other"
	if u.CurrentActivity.TaskID != "t" {
		t.Fatal("User.Clone shares CurrentActivity")
	}
}

func TestUserDisplayHelpers(t *testing.T) {
	u := User{DisplayName: "priya", TotalStudyMinutes: 2100}
	if got := u.Initials(); got != "PR" {
		t.Errorf("Initials=%q, want PR", got)
	}
	if got := u.StudyHours(); got != 35 {
		t.Errorf("StudyHours=%d, want 35", got)
	}
	if got := (User{TotalStudyMinutes: 90}).StudyHours(); got != 2 {
		t.Errorf("StudyHours(90)=%d, want 2", got)
	}
}

func TestTaskEqual(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sameInstant := at.In(time.FixedZone("IST", 5*3600+1800))
	later := at.Add(time.Minute)

	base := Task{ID: "t", UserID: "u", Name: "Limits", Status: StatusDelayed, ActualMinutes: 70, StartedAt: &at, CompletedAt: &later}
	tests := []struct {
		name  string
		other func(Task) Task
		want  bool
	}{
		{"identical", func(o Task) Task { return o }, true},
		{"same instant other zone", func(o Task) Task { o.StartedAt = &sameInstant; return o }, true},
		{"different start", func(o Task) Task { o.StartedAt = &later; return o }, false},
		{"missing completion", func(o Task) Task { o.CompletedAt = nil; return o }, false},
		{"different minutes", func(o Task) Task { o.ActualMinutes = 69; return o }, false},
		{"different status", func(o Task) Task { o.Status = StatusCompleted; return o }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other(base.Clone())); got != tt.want {
				t.Fatalf("Equal=%t, want %t", got, tt.want)
			}
		})
	}
}

func TestUserEqual(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	u := User{ID: "u", Username: "x", TasksCompleted: 3, CurrentActivity: &Activity{TaskID: "t", StartedAt: at}}

	if !u.Equal(u.Clone()) {
		t.Fatal("clone not equal")
	}
	idle := u.Clone()
	idle.CurrentActivity = nil
	if u.Equal(idle) || idle.Equal(u) {
		t.Fatal("activity presence ignored")
	}
	moved := u.Clone()
	moved.CurrentActivity.StartedAt = at.Add(time.Second)
	if u.Equal(moved) {
		t.Fatal("activity start ignored")
	}
	more := u.Clone()
	more.TasksCompleted++
	if u.Equal(more) {
		t.Fatal("TasksCompleted ignored")
	}
}
