package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/store"
	"github.com/nhle/studytrack/internal/testutil"
	"github.com/nhle/studytrack/internal/tracker"
	"github.com/nhle/studytrack/internal/ui/command"
	"github.com/nhle/studytrack/internal/ui/login"
	"github.com/nhle/studytrack/internal/ui/tasklist"
)

func newTestApp(t *testing.T) (Model, *tracker.Tracker, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	tr := tracker.Open(context.Background(), store.NewMemoryStore(), tracker.WithClock(clock.Now))
	m := New(tr, Options{Config: model.AppConfig{Display: model.DisplayConfig{TickMillis: 1000}}, Now: clock.Now})
	return m, tr, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	m, _, _ := newTestApp(t)
	if m.currentView != ViewLogin {
		t.Fatalf("view=%v, want login", m.currentView)
	}
	if m.loggedIn {
		t.Fatal("loggedIn without a session")
	}
}

func TestLoginFlow(t *testing.T) {
	m, _, _ := newTestApp(t)

	m, cmd := update(t, m, login.SubmitMsg{Username: "nobody"})
	res := cmd().(loginResultMsg)
	if res.err == nil {
		t.Fatal("unknown user logged in")
	}
	m, _ = update(t, m, res)
	if m.currentView != ViewLogin {
		t.Fatalf("view=%v after failed login, want login", m.currentView)
	}

	m, cmd = update(t, m, login.SubmitMsg{Username: "topper_01"})
	m, _ = update(t, m, cmd())
	if m.currentView != ViewDashboard {
		t.Fatalf("view=%v, want dashboard", m.currentView)
	}
	if !m.loggedIn || m.user.ID != "u1" {
		t.Fatalf("user=%+v loggedIn=%t", m.user, m.loggedIn)
	}
}

func TestTickFollowsActiveTask(t *testing.T) {
	ctx := context.Background()
	m, tr, clock := newTestApp(t)
	if _, err := tr.Login(ctx, "topper_01"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	m, _ = update(t, m, refreshMsg{})
	if m.tickingFor != "" {
		t.Fatalf("ticking for %q with no active task", m.tickingFor)
	}

	if _, err := tr.StartTask(ctx, "t2"); err != nil {
		t.Fatalf("StartTask: %v", err)
	}
	m, cmd := update(t, m, refreshMsg{})
	if m.tickingFor != "t2" || cmd == nil {
		t.Fatalf("tickingFor=%q cmd=%v, want t2 tick", m.tickingFor, cmd)
	}

	clock.Advance(2 * time.Second)
	if _, cmd = update(t, m, tickMsg{taskID: "t2"}); cmd == nil {
		t.Fatal("tick for active task was not rescheduled")
	}
	if _, cmd = update(t, m, tickMsg{taskID: "stale"}); cmd != nil {
		t.Fatal("tick for a stale task was rescheduled")
	}

	clock.Advance(25 * time.Minute)
	m, cmd = update(t, m, tasklist.FinishTaskMsg{TaskID: "t2"})
	res := cmd().(opResultMsg)
	if res.err != nil {
		t.Fatalf("finish: %v", res.err)
	}
	task, _ := tr.Task("t2")
	if task.ActualMinutes != 26 || task.Status != model.StatusCompleted {
		t.Fatalf("finished task = %+v, want 26 min completed", task)
	}

	m, _ = update(t, m, refreshMsg{})
	if m.tickingFor != "" {
		t.Fatalf("still ticking for %q after completion", m.tickingFor)
	}
}

func TestOperationErrorShownInStatusBar(t *testing.T) {
	ctx := context.Background()
	m, tr, _ := newTestApp(t)
	if _, err := tr.Login(ctx, "topper_01"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	m, _ = update(t, m, refreshMsg{})

	m, cmd := update(t, m, tasklist.StartTaskMsg{TaskID: "t1"})
	m, _ = update(t, m, cmd())
	if m.errText == "" {
		t.Fatal("starting a completed task produced no error text")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if m.errText != "" {
		t.Fatalf("errText=%q not cleared by key press", m.errText)
	}
	if m.currentView != ViewLeaderboard {
		t.Fatalf("view=%v, want leaderboard", m.currentView)
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	ctx := context.Background()
	m, tr, _ := newTestApp(t)
	if _, err := tr.Login(ctx, "topper_01"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	m, _ = update(t, m, refreshMsg{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	m, _ = update(t, m, cmd())
	m, _ = update(t, m, refreshMsg{})
	if m.currentView != ViewLogin {
		t.Fatalf("view=%v, want login", m.currentView)
	}
}

func TestExecuteCommand(t *testing.T) {
	ctx := context.Background()
	m, tr, _ := newTestApp(t)
	if _, err := tr.Login(ctx, "topper_01"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	m, _ = update(t, m, refreshMsg{})

	m.executeCommand("profile")
	if m.currentView != ViewProfile {
		t.Fatalf("view=%v, want profile", m.currentView)
	}
	m.executeCommand("warp")
	if m.errText == "" {
		t.Fatal("unknown command accepted silently")
	}
}

func TestPaletteSuggestionsAreAccepted(t *testing.T) {
	for _, name := range command.Names {
		t.Run(name, func(t *testing.T) {
			m, tr, _ := newTestApp(t)
			if _, err := tr.Login(context.Background(), "topper_01"); err != nil {
				t.Fatalf("Login: %v", err)
			}
			m, _ = update(t, m, refreshMsg{})

			m.executeCommand(name)
			if m.errText != "" {
				t.Fatalf("suggested command %q rejected: %s", name, m.errText)
			}
		})
	}
}

func TestPaletteCommandUpdatesReturnedModel(t *testing.T) {
	m, tr, _ := newTestApp(t)
	if _, err := tr.Login(context.Background(), "topper_01"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	m, _ = update(t, m, refreshMsg{})
	if !m.loggedIn {
		t.Fatal("refresh did not reach the returned model")
	}

	m, _ = update(t, m, command.CommandMsg("profile"))
	if m.currentView != ViewProfile {
		t.Fatalf("view=%v, want profile", m.currentView)
	}

	m, cmd := update(t, m, command.CommandMsg("settings"))
	if m.currentView != ViewConfig || cmd == nil {
		t.Fatalf("view=%v cmd=%v, want settings form", m.currentView, cmd)
	}
}
