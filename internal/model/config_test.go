package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend=%q, want sqlite", cfg.Storage.Backend)
	}
	if filepath.Base(cfg.Storage.Path) != "studytrack.db" {
		t.Errorf("Path=%q, want default studytrack.db", cfg.Storage.Path)
	}
	if cfg.Session.LoginFallback {
		t.Error("LoginFallback defaults to true")
	}
	if cfg.Display.TickMillis != 1000 {
		t.Errorf("TickMillis=%d, want 1000", cfg.Display.TickMillis)
	}
}

func TestSaveLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &AppConfig{
		Storage: StorageConfig{Backend: BackendBolt, Path: "/tmp/st.bolt"},
		Session: SessionConfig{LoginFallback: true},
		Display: DisplayConfig{Theme: "default", TickMillis: 500},
		Log:     LogConfig{Level: "debug", Encoding: "json", File: "/tmp/st.log"},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *want {
		t.Fatalf("got %+v, want %+v", *got, *want)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: sqlite\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("STUDYTRACK_STORAGE_BACKEND", "bolt")
	t.Setenv("STUDYTRACK_SESSION_LOGIN_FALLBACK", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend != BackendBolt {
		t.Errorf("Backend=%q, want bolt", cfg.Storage.Backend)
	}
	if filepath.Base(cfg.Storage.Path) != "studytrack.bolt" {
		t.Errorf("Path=%q, want default studytrack.bolt", cfg.Storage.Path)
	}
	if !cfg.Session.LoginFallback {
		t.Error("LoginFallback override ignored")
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted unknown backend")
	}
}

func TestLoadConfigTheme(t *testing.T) {
	tests := []struct {
		body    string
		want    string
		wantErr bool
	}{
		{"", ThemeDefault, false},
		{"display:\n  theme: Light\n", ThemeLight, false},
		{"display:\n  theme: dark\n", ThemeDark, false},
		{"display:\n  theme: solarized\n", "", true},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		cfg, err := LoadConfig(path)
		if (err != nil) != tt.wantErr {
			t.Errorf("LoadConfig(%q) err=%v, wantErr %t", tt.body, err, tt.wantErr)
			continue
		}
		if err == nil && cfg.Display.Theme != tt.want {
			t.Errorf("LoadConfig(%q) Theme=%q, want %q", tt.body, cfg.Display.Theme, tt.want)
		}
	}
}
