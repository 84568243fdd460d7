package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/studytrack/internal/keys"
	"github.com/nhle/studytrack/internal/model"
	appsync "github.com/nhle/studytrack/internal/sync"
	"github.com/nhle/studytrack/internal/timer"
	"github.com/nhle/studytrack/internal/tracker"
	"github.com/nhle/studytrack/internal/ui"
	"github.com/nhle/studytrack/internal/ui/command"
	configview "github.com/nhle/studytrack/internal/ui/config"
	"github.com/nhle/studytrack/internal/ui/dashboard"
	helpview "github.com/nhle/studytrack/internal/ui/help"
	"github.com/nhle/studytrack/internal/ui/leaderboard"
	"github.com/nhle/studytrack/internal/ui/login"
	"github.com/nhle/studytrack/internal/ui/profile"
	"github.com/nhle/studytrack/internal/ui/taskform"
	"github.com/nhle/studytrack/internal/ui/tasklist"
)

// Tracker is the part of *tracker.Tracker the UI drives.
type Tracker interface {
	appsync.Subscriber

	Login(ctx context.Context, username string) (model.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (model.User, bool)
	Users() []model.User
	Task(id string) (model.Task, bool)
	TasksForDate(userID, date string) []model.Task
	ActiveTask(userID string) (model.Task, bool)
	Leaderboard() []model.User
	Rank(userID string) int
	DailyProgress(userID, date string) tracker.Progress
	FinishedByDay(userID string, end time.Time, days int) []tracker.DayCount

	AddTask(ctx context.Context, in tracker.NewTask) (model.Task, error)
	StartTask(ctx context.Context, taskID string) (model.Task, error)
	CompleteTask(ctx context.Context, taskID string, minutesTaken int) (model.Task, error)
	SkipTask(ctx context.Context, taskID string) (model.Task, error)
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewLeaderboard
	ViewProfile
	ViewHelp
	ViewCommand
	ViewTaskCreate
	ViewConfig
)

// Options configures New.
type Options struct {
	Config     model.AppConfig
	ConfigPath string
	Log        *zap.Logger

	// Now replaces time.Now for the timer display.
	Now func() time.Time
}

// refreshMsg asks the model to reload everything from the tracker.
type refreshMsg struct{}

// tickMsg advances the running timer. It is only honoured while taskID
// is still the displayed active task.
type tickMsg struct {
	taskID string
}

// opResultMsg reports the outcome of a tracker mutation.
type opResultMsg struct {
	action string
	err    error
}

// loginResultMsg reports the outcome of a login attempt.
type loginResultMsg struct {
	user model.User
	err  error
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the tracker.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	tracker      Tracker
	bridge       *appsync.Bridge
	keys         *keys.KeyMap
	log          *zap.Logger
	now          func() time.Time
	interval     time.Duration

	loginView       login.Model
	dashboardView   dashboard.Model
	leaderboardView leaderboard.Model
	profileView     profile.Model
	helpView        helpview.Model
	commandView     command.Model
	taskFormView    taskform.Model
	configView      configview.Model

	user       model.User
	loggedIn   bool
	tickingFor string
	errText    string
	notice     string
	initCmd    tea.Cmd
	ready      bool
}

// New creates a new root application model over t.
func New(t Tracker, opts Options) Model {
	k := keys.DefaultKeyMap()
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	interval := time.Duration(opts.Config.Display.TickMillis) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}

	m := Model{
		currentView:     ViewDashboard,
		tracker:         t,
		bridge:          appsync.New(t),
		keys:            k,
		log:             log,
		now:             now,
		interval:        interval,
		loginView:       login.New(80, 24),
		dashboardView:   dashboard.New(k, 80, 24),
		leaderboardView: leaderboard.New(80, 24),
		profileView:     profile.New(80, 24),
		helpView:        helpview.New(k, 80, 24),
		commandView:     command.New(80, 24),
		taskFormView:    taskform.New(80, 24),
		configView:      configview.New(opts.ConfigPath, opts.Config, 80, 24),
	}
	m.initCmd = m.reload()
	return m
}

// Init subscribes to tracker changes and starts the first view.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.Start(), m.initCmd)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.dashboardView.SetSize(w, h)
		m.leaderboardView.SetSize(w, h)
		m.profileView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.taskFormView.SetSize(w, h)
		m.configView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case refreshMsg:
		cmd := m.reload()
		return m, cmd

	case appsync.ChangedMsg:
		m.log.Debug("tracker changed", zap.String("event", string(msg.Event.Kind)))
		cmd := m.reload()
		return m, tea.Batch(cmd, m.bridge.WaitForNext())

	case tickMsg:
		if msg.taskID == "" || msg.taskID != m.tickingFor {
			return m, nil
		}
		m.dashboardView.SetNow(m.now())
		return m, m.tick(msg.taskID)

	case login.SubmitMsg:
		return m, m.doLogin(msg.Username)

	case loginResultMsg:
		if msg.err != nil && msg.user.ID == "" {
			cmd := m.loginView.SetError(msg.err.Error())
			return m, cmd
		}
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		m.currentView = ViewDashboard
		cmd := m.reload()
		return m, cmd

	case opResultMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("%s: %v", msg.action, msg.err)
			m.log.Warn("operation failed", zap.String("action", msg.action), zap.Error(msg.err))
		} else {
			m.errText = ""
		}
		return m, nil

	case tasklist.StartTaskMsg:
		return m, m.run("start", func(ctx context.Context) error {
			_, err := m.tracker.StartTask(ctx, msg.TaskID)
			return err
		})

	case tasklist.FinishTaskMsg:
		minutes := 0
		if task, ok := m.tracker.Task(msg.TaskID); ok {
			minutes = timer.MinutesTaken(timer.Elapsed(task.StartedAt, m.now()))
		}
		return m, m.run("finish", func(ctx context.Context) error {
			_, err := m.tracker.CompleteTask(ctx, msg.TaskID, minutes)
			return err
		})

	case tasklist.SkipTaskMsg:
		return m, m.run("skip", func(ctx context.Context) error {
			_, err := m.tracker.SkipTask(ctx, msg.TaskID)
			return err
		})

	case taskform.TaskSubmittedMsg:
		m.currentView = ViewDashboard
		return m, m.run("add task", func(ctx context.Context) error {
			_, err := m.tracker.AddTask(ctx, msg.Task)
			return err
		})

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case configview.ConfigDoneMsg:
		m.currentView = m.previousView
		switch {
		case msg.Err != nil:
			m.errText = fmt.Sprintf("saving settings: %v", msg.Err)
		case msg.Saved:
			m.notice = "settings saved"
		}
		return m, nil

	case tea.KeyMsg:
		m.errText = ""
		m.notice = ""
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// textInputView reports whether the active view consumes plain keys.
func (m Model) textInputView() bool {
	switch m.currentView {
	case ViewLogin, ViewCommand, ViewTaskCreate, ViewConfig:
		return true
	default:
		return false
	}
}

// handleGlobalKey processes keys that work regardless of current view.
// handled is false when the key should go to the active view.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if msg.String() == "ctrl+c" {
		return m.quit(), true
	}
	if m.textInputView() {
		// Forms and the palette have no cancel key of their own.
		if m.currentView != ViewLogin && key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			if m.textInputView() {
				m.currentView = ViewDashboard
			}
			return nil, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(), true

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}
		m.switchTo(ViewHelp)
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.switchTo(ViewCommand)
		return m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Back):
		if m.currentView != ViewDashboard {
			m.currentView = ViewDashboard
		}
		return nil, true

	case key.Matches(msg, m.keys.Dashboard):
		m.currentView = ViewDashboard
		return nil, true

	case key.Matches(msg, m.keys.Leaderboard):
		m.currentView = ViewLeaderboard
		return nil, true

	case key.Matches(msg, m.keys.Profile):
		m.currentView = ViewProfile
		return nil, true

	case key.Matches(msg, m.keys.Add):
		return m.openTaskForm(), true

	case key.Matches(msg, m.keys.Settings):
		m.switchTo(ViewConfig)
		return m.configView.Init(), true

	case key.Matches(msg, m.keys.Logout):
		return m.doLogout(), true
	}

	return nil, false
}

func (m *Model) switchTo(v ViewState) {
	if m.currentView != v {
		m.previousView = m.currentView
	}
	m.currentView = v
}

func (m *Model) openTaskForm() tea.Cmd {
	m.switchTo(ViewTaskCreate)
	return m.taskFormView.Start(model.Today(m.now()))
}

func (m *Model) quit() tea.Cmd {
	m.bridge.Stop()
	return tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTaskCreate:
		m.taskFormView, cmd = m.taskFormView.Update(msg)
	case ViewConfig:
		m.configView, cmd = m.configView.Update(msg)
	}

	return m, cmd
}

// reload copies the tracker state into every view and keeps the timer
// tick bound to the current active task.
func (m *Model) reload() tea.Cmd {
	now := m.now()
	user, ok := m.tracker.CurrentUser()
	if !ok {
		m.loggedIn = false
		m.user = model.User{}
		m.tickingFor = ""
		if m.currentView == ViewLogin {
			return nil
		}
		m.currentView = ViewLogin
		return m.loginView.Start(m.tracker.Users())
	}

	m.loggedIn = true
	m.user = user
	if m.currentView == ViewLogin {
		m.currentView = ViewDashboard
	}

	today := model.Today(now)
	tasks := m.tracker.TasksForDate(user.ID, today)
	rank := m.tracker.Rank(user.ID)

	var friends []model.User
	for _, u := range m.tracker.Users() {
		if u.ID != user.ID {
			friends = append(friends, u)
		}
	}

	state := dashboard.State{
		User:    user,
		Tasks:   tasks,
		Friends: friends,
		Rank:    rank,
		Daily:   m.tracker.DailyProgress(user.ID, today),
	}
	if active, ok := m.tracker.ActiveTask(user.ID); ok {
		state.Active = &active
	}

	cmd := m.dashboardView.SetState(state)
	m.dashboardView.SetNow(now)
	m.leaderboardView.SetUsers(m.tracker.Leaderboard(), user.ID)
	m.profileView.SetUser(user, rank, tasks)
	m.profileView.SetHeatmap(m.tracker.FinishedByDay(user.ID, now, profile.HeatmapDays))

	activeID := m.dashboardView.ActiveTaskID()
	switch {
	case activeID == "":
		m.tickingFor = ""
	case activeID != m.tickingFor:
		m.tickingFor = activeID
		cmd = tea.Batch(cmd, m.tick(activeID))
	}
	return cmd
}

func (m Model) tick(taskID string) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{taskID: taskID}
	})
}

// run performs a tracker mutation off the UI goroutine.
func (m Model) run(action string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{action: action, err: fn(context.Background())}
	}
}

func (m Model) doLogin(username string) tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		u, err := t.Login(context.Background(), username)
		return loginResultMsg{user: u, err: err}
	}
}

func (m Model) doLogout() tea.Cmd {
	return m.run("log out", func(ctx context.Context) error {
		return m.tracker.Logout(ctx)
	})
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "dashboard", "home":
		m.currentView = ViewDashboard
	case "leaderboard", "board":
		m.currentView = ViewLeaderboard
	case "profile", "me":
		m.currentView = ViewProfile
	case "add", "new":
		return m.openTaskForm()
	case "settings", "config":
		m.switchTo(ViewConfig)
		return m.configView.Init()
	case "help":
		m.switchTo(ViewHelp)
	case "logout":
		return m.doLogout()
	case "quit", "q":
		return m.quit()
	default:
		m.errText = fmt.Sprintf("unknown command %q", cmd)
	}
	return nil
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("StudyTrack · "+m.viewTitle(), m.sessionLabel())
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.errText)

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewLeaderboard:
		return m.leaderboardView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTaskCreate:
		return m.taskFormView.View()
	case ViewConfig:
		return m.configView.View()
	default:
		return ""
	}
}

func (m Model) viewTitle() string {
	switch m.currentView {
	case ViewLogin:
		return "Log in"
	case ViewLeaderboard:
		return "Leaderboard"
	case ViewProfile:
		return "Profile"
	case ViewHelp:
		return "Help"
	case ViewCommand:
		return "Command"
	case ViewTaskCreate:
		return "New Task"
	case ViewConfig:
		return "Settings"
	default:
		return "Dashboard"
	}
}

func (m Model) sessionLabel() string {
	if !m.loggedIn {
		return "not logged in"
	}
	return fmt.Sprintf("%s (@%s)", m.user.DisplayName, m.user.Username)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return m.notice
	}
	switch m.currentView {
	case ViewLogin:
		return "enter log in | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewTaskCreate, ViewConfig:
		return "enter submit | esc cancel"
	case ViewLeaderboard, ViewProfile:
		return "1 dashboard | 2 leaderboard | 3 profile | esc back | q quit"
	default:
		return "s start | d finish | x skip | n new | 2 board | 3 profile | ? help | q quit"
	}
}
