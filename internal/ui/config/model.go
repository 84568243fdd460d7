package config

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
)

// ConfigDoneMsg signals the settings view should close and return to the
// main app. Saved is set when the file was written.
type ConfigDoneMsg struct {
	Saved bool
	Err   error
}

// configBindings keeps huh value pointers stable across model copies.
type configBindings struct {
	backend       string
	loginFallback bool
	logLevel      string
	theme         string
	tick          string
}

// Model edits the persisted application settings.
type Model struct {
	path   string
	cfg    model.AppConfig
	form   *huh.Form
	fb     *configBindings
	width  int
	height int
}

// New creates the settings view writing to path.
func New(path string, cfg model.AppConfig, width, height int) Model {
	return Model{path: path, cfg: cfg, fb: &configBindings{}, width: width, height: height}
}

// Init builds the form from the current settings.
func (m *Model) Init() tea.Cmd {
	m.fb.backend = m.cfg.Storage.Backend
	m.fb.loginFallback = m.cfg.Session.LoginFallback
	m.fb.logLevel = m.cfg.Log.Level
	m.fb.theme = m.cfg.Display.Theme
	m.fb.tick = strconv.Itoa(m.cfg.Display.TickMillis)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Description("Takes effect on next start").
				Options(
					huh.NewOption("SQLite", model.BackendSQLite),
					huh.NewOption("bbolt", model.BackendBolt),
				).
				Value(&m.fb.backend),
			huh.NewConfirm().
				Title("Log in as first user when the username is unknown?").
				Value(&m.fb.loginFallback),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("debug", "debug"),
					huh.NewOption("info", "info"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&m.fb.logLevel),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Follow terminal", model.ThemeDefault),
					huh.NewOption("Dark", model.ThemeDark),
					huh.NewOption("Light", model.ThemeLight),
				).
				Value(&m.fb.theme),
			huh.NewInput().
				Title("Timer refresh (ms)").
				Value(&m.fb.tick).
				Validate(validateTick),
		),
	).WithWidth(min(80, max(40, m.width-4)))
	return m.form.Init()
}

// Update handles messages for the settings view.
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
		return m.save()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return ConfigDoneMsg{} }
	}
	return m, cmd
}

func (m Model) save() (Model, tea.Cmd) {
	// Changing backend also changes the default file name.
	if m.fb.backend != m.cfg.Storage.Backend {
		m.cfg.Storage.Path = ""
	}
	m.cfg.Storage.Backend = m.fb.backend
	m.cfg.Session.LoginFallback = m.fb.loginFallback
	m.cfg.Log.Level = m.fb.logLevel
	m.cfg.Display.Theme = m.fb.theme
	m.cfg.Display.TickMillis, _ = strconv.Atoi(m.fb.tick)

	path, cfg := m.path, m.cfg
	return m, func() tea.Msg {
		if err := model.SaveConfig(path, &cfg); err != nil {
			return ConfigDoneMsg{Err: err}
		}
		return ConfigDoneMsg{Saved: true}
	}
}

// Config returns the settings as last edited.
func (m Model) Config() model.AppConfig {
	return m.cfg
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	title := theme.PanelTitleStyle.Render("Settings")
	path := theme.DimmedStyle.Render(m.path)
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, path, "", m.form.View()),
	)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func validateTick(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 100 {
		return fmt.Errorf("enter a whole number of at least 100")
	}
	return nil
}
