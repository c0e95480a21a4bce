// Command linuxterm is a demo host for the embeddable TERM=linux
// terminal emulator: it opens one PTY running a shell (or an arbitrary
// command given on the command line), drives it through the Emulator
// Facade (C5) and Session Loop (C8), and renders it with Bubbletea +
// lipgloss.
//
// Grounded on the teacher's main.go (config.Load, then hand the config
// to the top-level Bubbletea model) with the Wails/webview host swapped
// for a real tea.NewProgram — the teacher's own internal/app.Model is
// never actually wired to a Program anywhere in that repo, since the
// teacher's real UI is its Svelte/xterm.js frontend.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vtembed/linuxterm/internal/config"
	"github.com/vtembed/linuxterm/internal/ptyio"
	"github.com/vtembed/linuxterm/internal/session"
	"github.com/vtembed/linuxterm/internal/term/emulator"
	"github.com/vtembed/linuxterm/internal/viewadapter"
)

const (
	initialRows = 24
	initialCols = 80
)

func main() {
	cfg := config.Load()

	explicitArgv := len(os.Args) > 1
	argv := resolveArgv(cfg)

	dir := cfg.DefaultDir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}

	rows, cols := initialRows, initialCols
	if !explicitArgv && cfg.ShouldRestoreSession() {
		if saved := config.LoadSession(); saved != nil && len(saved.Views) > 0 {
			view := saved.Views[0]
			argv, dir, rows, cols = view.Argv, view.Dir, view.Rows, view.Cols
		}
	}

	ep, err := ptyio.Open(argv, dir, nil, rows, cols)
	for _, fallback := range []string{os.Getenv("HOME"), "/"} {
		if err == nil {
			break
		}
		if fallback == "" {
			continue
		}
		dir = fallback
		ep, err = ptyio.Open(argv, dir, nil, rows, cols)
	}
	if err != nil {
		log.Fatalf("linuxterm: launch %q: %v", strings.Join(argv, " "), err)
	}

	emu := emulator.New(rows, cols, cfg.HistoryLines, cfg.HistoryRatio)
	emu.SetSink(ptyWriter{ep})

	host := newTermHost(rows, cols)
	adapter := viewadapter.New(host)

	sess := session.New(emu, ep, adapter)
	registry := session.NewRegistry()
	viewID := registry.Register("", sess)

	model := newModel(host, ep, emu, sess, strings.Join(argv, " "), cfg.Palette, themeFor(cfg.Theme))
	program := tea.NewProgram(model, tea.WithAltScreen())
	host.attach(program)

	ctx, cancel := context.WithCancel(context.Background())
	go sess.Run(ctx)

	_, runErr := program.Run()

	cancel()
	<-sess.Done()
	registry.Deregister(viewID)

	if explicitArgv {
		persistLastExecArgs(argv)
	}
	persistSession(viewID, argv, dir, host)

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "linuxterm:", runErr)
		os.Exit(1)
	}
}

// resolveArgv picks the command to launch: an explicit command line wins
// outright; otherwise it's the configured shell, extended with whatever
// extra arguments were cached for that shell last time (SUPPLEMENTED
// FEATURES #3, grounded on original_source/exec.py's user_arguments_history
// cache).
func resolveArgv(cfg config.Settings) []string {
	if len(os.Args) > 1 {
		return os.Args[1:]
	}

	shell := cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	argv := []string{shell}

	store := config.LoadLastExecArgs()
	if extra := store.For(shell); extra != "" {
		argv = append(argv, strings.Fields(extra)...)
	}
	return argv
}

// persistLastExecArgs remembers an explicitly-typed command line's
// trailing arguments against its base command, so a future bare
// invocation of the same shell offers them back.
func persistLastExecArgs(argv []string) {
	if len(argv) < 2 {
		return
	}
	store := config.LoadLastExecArgs()
	store.Remember(argv[0], strings.Join(argv[1:], " "))
	_ = config.SaveLastExecArgs(store)
}

// persistSession saves the current view's command line, directory, and
// last-known grid size so a future bare invocation can relaunch it,
// per config.Settings.RestoreSession. A view that never received a
// resize is saved at its initial grid rather than skipped.
func persistSession(viewID string, argv []string, dir string, host *termHost) {
	rows, cols, _ := host.Size()
	if rows == 0 || cols == 0 {
		rows, cols = initialRows, initialCols
	}
	_ = config.SaveSession(config.SessionState{
		Views: []config.SavedPane{{
			ViewID: viewID,
			Name:   strings.Join(argv, " "),
			Argv:   argv,
			Dir:    dir,
			Rows:   rows,
			Cols:   cols,
		}},
	})
}

// ptyWriter adapts ptyio.Endpoint.SendBytes to io.Writer so the Emulator
// Facade (C5) can use it as the device-report sink spec.md §4.3 wants
// (DSR/DA replies written straight back to the PTY).
type ptyWriter struct{ ep *ptyio.Endpoint }

func (w ptyWriter) Write(p []byte) (int, error) {
	w.ep.SendBytes(p)
	return len(p), nil
}
