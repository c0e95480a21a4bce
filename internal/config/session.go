// Package config – session state persistence.
//
// Saves and restores the user's open terminal views between runs so the
// demo host (cmd/linuxterm) can relaunch them with the same command, cwd,
// and size, per SPEC_FULL's adaptation of the teacher's
// session_persist.go tab/pane layout to one view per saved entry.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SessionState is the top-level structure serialised to disk.
type SessionState struct {
	ActiveView int         `json:"active_view"`
	Views      []SavedPane `json:"views"`
}

// SavedPane captures enough information to re-launch a single terminal
// view: the view id it was registered under (internal/session.Registry),
// the command line, and the grid size it was last sized to.
type SavedPane struct {
	ViewID string   `json:"view_id"`
	Name   string   `json:"name"`
	Argv   []string `json:"argv"`
	Dir    string   `json:"dir"`
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
}

// sessionPath returns the path to ~/.linuxterm-session.json.
func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".linuxterm-session.json")
}

// SaveSession writes the session state to disk.
func SaveSession(state SessionState) error {
	p := sessionPath()
	if p == "" {
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

// LoadSession reads a previously saved session state from disk.
// Returns nil if no session file exists, it cannot be parsed, or it has
// no views worth restoring.
func LoadSession() *SessionState {
	p := sessionPath()
	if p == "" {
		return nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil
	}
	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil
	}
	if len(state.Views) == 0 {
		return nil
	}
	return &state
}

// ClearSession removes the session file from disk.
func ClearSession() {
	p := sessionPath()
	if p != "" {
		os.Remove(p)
	}
}
