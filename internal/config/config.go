package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tablero/internal/config/colors"
)

// Environment variables that override the config file
const (
	EnvDBDriver  = "TABLERO_DB_DRIVER"
	EnvDBDSN     = "TABLERO_DB_DSN"
	EnvAddr      = "TABLERO_ADDR"
	EnvThemeFile = "TABLERO_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Server        ServerConfig        `yaml:"server"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Gantt         GanttConfig         `yaml:"gantt"`
	Log           LogConfig           `yaml:"log"`
	KeyMappings   KeyMappings         `yaml:"key_mappings"`
	ColorScheme   colors.ColorScheme  `yaml:"theme"`
}

// DatabaseConfig selects the store. An empty DSN means the default
// SQLite file.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// ServerConfig configures `tablero serve`
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// NotificationsConfig configures the notification watcher
type NotificationsConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	RecipientID  int           `yaml:"recipient_id"`
}

// GanttConfig configures the timeline
type GanttConfig struct {
	WeekStart string `yaml:"week_start"`
}

// LogConfig configures the log destination. File "-" means stderr.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns a config with every field set to its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// WeekStartDay parses Gantt.WeekStart, falling back to Sunday
func (g GanttConfig) WeekStartDay() time.Weekday {
	switch strings.ToLower(strings.TrimSpace(g.WeekStart)) {
	case "monday", "mon":
		return time.Monday
	case "saturday", "sat":
		return time.Saturday
	}
	return time.Sunday
}

// loadThemeFile loads and merges theme from TABLERO_THEME_FILE
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv overrides file values with environment variables
func applyEnv(config *Config) {
	if v := os.Getenv(EnvDBDriver); v != "" {
		config.Database.Driver = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		config.Database.DSN = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		config.Server.Addr = v
	}
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		config := &Config{}
		loadThemeFile(config)
		applyEnv(config)
		config.applyDefaults()
		return config, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
	}

	loadThemeFile(&config)
	applyEnv(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Notifications.PollInterval <= 0 {
		c.Notifications.PollInterval = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
