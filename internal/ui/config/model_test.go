package config

import (
	"path/filepath"
	"testing"

	"github.com/nhle/studytrack/internal/model"
)

func TestSaveWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := model.AppConfig{
		Storage: model.StorageConfig{Backend: model.BackendSQLite, Path: "/data/studytrack.db"},
		Display: model.DisplayConfig{Theme: "default", TickMillis: 1000},
		Log:     model.LogConfig{Level: "info", Encoding: "console", File: "/data/studytrack.log"},
	}
	m := New(path, cfg, 80, 24)
	m.Init()
	m.fb.backend = model.BackendBolt
	m.fb.loginFallback = true
	m.fb.theme = model.ThemeLight
	m.fb.tick = "500"

	m, cmd := m.save()
	done, ok := cmd().(ConfigDoneMsg)
	if !ok || !done.Saved || done.Err != nil {
		t.Fatalf("save result=%+v", done)
	}
	if m.Config().Storage.Path != "" {
		t.Fatalf("Path=%q, want reset after backend change", m.Config().Storage.Path)
	}

	loaded, err := model.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Storage.Backend != model.BackendBolt || !loaded.Session.LoginFallback ||
		loaded.Display.TickMillis != 500 || loaded.Display.Theme != model.ThemeLight {
		t.Fatalf("loaded=%+v", loaded)
	}
}

func TestValidateTick(t *testing.T) {
	for _, bad := range []string{"", "abc", "99"} {
		if validateTick(bad) == nil {
			t.Errorf("validateTick(%q) accepted", bad)
		}
	}
	if err := validateTick("250"); err != nil {
		t.Errorf("validateTick(250): %v", err)
	}
}
