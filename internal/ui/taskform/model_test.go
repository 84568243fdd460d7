package taskform

import "testing"

func TestEstimateLabel(t *testing.T) {
	tests := map[int]string{
		15:  "15 min",
		45:  "45 min",
		60:  "1h",
		90:  "1h 30m",
		120: "2h",
	}
	for mins, want := range tests {
		if got := EstimateLabel(mins); got != want {
			t.Errorf("EstimateLabel(%d)=%q, want %q", mins, got, want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := validateDate("2026-03-02"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "2026-3-2", "tomorrow"} {
		if err := validateDate(bad); err == nil {
			t.Errorf("validateDate(%q) accepted", bad)
		}
	}
}

func TestSubmitCarriesFields(t *testing.T) {
	m := New(80, 24)
	m.Start("2026-03-02")
	m.fb.name = "  Thermodynamics "
	m.fb.estimate = 90

	msg, ok := m.handleSubmit()().(TaskSubmittedMsg)
	if !ok {
		t.Fatal("handleSubmit did not return TaskSubmittedMsg")
	}
	if msg.Task.Name != "Thermodynamics" || msg.Task.EstimatedMinutes != 90 || msg.Task.Date != "2026-03-02" {
		t.Fatalf("Task=%+v", msg.Task)
	}
}
