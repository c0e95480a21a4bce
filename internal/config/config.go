// Package config loads and provides application configuration.
//
// On first run, a default YAML config is written to ~/.linuxterm.yaml.
// Subsequent runs read and merge that file with built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds the user-configurable settings a terminal session is
// constructed from: the shell to launch, the scrollback budget handed to
// the Emulator Facade (C5), and palette overrides the demo host's theme
// consults.
type Settings struct {
	// Shell is the command spawned by the PTY Endpoint (C6) when the
	// caller doesn't supply one explicitly. Empty means $SHELL, falling
	// back to /bin/sh.
	Shell string `yaml:"shell"`

	// DefaultDir is the working directory for new sessions. Empty means
	// the process's own working directory at launch time.
	DefaultDir string `yaml:"default_dir"`

	// HistoryLines is the scrollback size passed to emulator.New before
	// its own internal doubling (spec.md §9's two-queue design).
	HistoryLines int `yaml:"history_lines"`

	// HistoryRatio is the fraction of the screen height that one
	// PrevPage/NextPage scrolls (screen.NewHistory's ratio); must be in
	// (0, 1].
	HistoryRatio float64 `yaml:"history_ratio"`

	// Palette maps a recognized color name (as produced by C5's
	// color_map) to a hex override consulted by the demo host's theme.
	// Nil means "use the built-in palette".
	Palette map[string]string `yaml:"palette"`

	// Theme selects the demo host's lipgloss theme resource.
	Theme string `yaml:"theme"`

	// RestoreSession controls whether the demo host relaunches the
	// views saved in the session sidecar (session.go) on startup.
	// Nil defaults to true.
	RestoreSession *bool `yaml:"restore_session"`
}

// ShouldRestoreSession reports the effective restore-session setting,
// treating an absent value (the field was never set by the user) as
// enabled.
func (s Settings) ShouldRestoreSession() bool {
	return s.RestoreSession == nil || *s.RestoreSession
}

func boolPtr(b bool) *bool { return &b }

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Shell:          "",
		DefaultDir:     "",
		HistoryLines:   1000,
		HistoryRatio:   0.5,
		Theme:          "dark",
		RestoreSession: boolPtr(true),
	}
}

// settingsPath returns the path to ~/.linuxterm.yaml.
func settingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".linuxterm.yaml")
}

// Load reads the settings file, falling back to defaults for missing
// fields and clamping anything out of range.
func Load() Settings {
	cfg := DefaultSettings()

	p := settingsPath()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		// No config file yet - write defaults for future editing.
		_ = writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	if cfg.HistoryLines < 0 {
		cfg.HistoryLines = 0
	}
	if cfg.HistoryLines > 100_000 {
		cfg.HistoryLines = 100_000
	}
	if cfg.HistoryRatio <= 0 || cfg.HistoryRatio > 1 {
		cfg.HistoryRatio = 0.5
	}

	validThemes := map[string]bool{"dark": true, "light": true, "dracula": true, "nord": true, "solarized": true}
	if !validThemes[cfg.Theme] {
		cfg.Theme = "dark"
	}

	return cfg
}

// writeDefaults persists cfg to path, prefixed with an editable-file
// banner comment.
func writeDefaults(path string, cfg Settings) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}
	header := []byte("# linuxterm configuration\n# Edit this file to customise defaults.\n\n")
	if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
		return fmt.Errorf("config: write defaults: %w", err)
	}
	return nil
}
