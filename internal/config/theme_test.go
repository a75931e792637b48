package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestThemeFileLoading(t *testing.T) {
	themeContent := []byte(`theme:
  accent: "#FF0000"
  done: "#00FF00"
`)
	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(themePath, themeContent, 0o644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvThemeFile, themePath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.Done != "#00FF00" {
		t.Errorf("Expected done to be #00FF00, got %s", cfg.ColorScheme.Done)
	}

	// Verify other colors still have defaults
	if cfg.ColorScheme.High == "" {
		t.Error("Expected high to have default value")
	}
}

func TestThemeFileMissingIsIgnored(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvThemeFile, filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.ColorScheme.Accent != DefaultColorScheme().Accent {
		t.Errorf("Expected default accent, got %s", cfg.ColorScheme.Accent)
	}
}

func TestMonochromePreset(t *testing.T) {
	mono := MonochromeColorScheme()
	if mono.Preset != "monochrome" {
		t.Errorf("Preset = %s, want monochrome", mono.Preset)
	}
	if mono.Accent == DefaultColorScheme().Accent {
		t.Error("Monochrome accent should differ from default")
	}
}
