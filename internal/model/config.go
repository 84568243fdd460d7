package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names accepted by StorageConfig.Backend.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Display themes accepted by DisplayConfig.Theme. ThemeDefault follows
// the terminal background.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
	ThemeLight   = "light"
)

// StorageConfig selects where tracker snapshots are persisted.
type StorageConfig struct {
	// Backend is "sqlite" (default) or "bolt".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the database file. Empty means the default data directory.
	Path string `mapstructure:"path" yaml:"path"`
}

// SessionConfig holds login behaviour.
type SessionConfig struct {
	// LoginFallback logs in as the first known user when the username
	// does not match anyone.
	LoginFallback bool `mapstructure:"login_fallback" yaml:"login_fallback"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "default", "dark" or "light".
	Theme string `mapstructure:"theme" yaml:"theme"`

	// TickMillis is the refresh interval of the running-task timer.
	TickMillis int `mapstructure:"tick_ms" yaml:"tick_ms"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"`

	// File receives log output. Empty means the default data directory.
	File string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// envPrefix scopes environment overrides, e.g. STUDYTRACK_STORAGE_BACKEND.
const envPrefix = "STUDYTRACK"

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/studytrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "studytrack", "config.yaml")
}

// DefaultDataDir returns ~/.local/share/studytrack.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "studytrack")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{Backend: BackendSQLite},
		Display: DisplayConfig{
			Theme:      ThemeDefault,
			TickMillis: 1000,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// then applies STUDYTRACK_* environment overrides.
// If the file does not exist, defaults (plus overrides) are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	def := defaultAppConfig()
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", "")
	v.SetDefault("session.login_fallback", false)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.tick_ms", def.Display.TickMillis)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.encoding", def.Log.Encoding)
	v.SetDefault("log.file", "")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// normalize fills derived defaults and rejects unknown values.
func (c *AppConfig) normalize() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = BackendSQLite
	case BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Storage.Path == "" {
		name := "studytrack.db"
		if c.Storage.Backend == BackendBolt {
			name = "studytrack.bolt"
		}
		c.Storage.Path = filepath.Join(DefaultDataDir(), name)
	}
	c.Display.Theme = strings.ToLower(strings.TrimSpace(c.Display.Theme))
	switch c.Display.Theme {
	case "":
		c.Display.Theme = ThemeDefault
	case ThemeDefault, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown display theme %q", c.Display.Theme)
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(DefaultDataDir(), "studytrack.log")
	}
	if c.Display.TickMillis <= 0 {
		c.Display.TickMillis = 1000
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("session", cfg.Session)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
