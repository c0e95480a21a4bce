// Package session implements the Session Loop (spec C8): the state
// machine and ~30Hz tick that ties the PTY Endpoint (C6), Emulator
// Facade (C5), and a host view together for one terminal session.
//
// Grounded on the teacher's internal/terminal/session.go readLoop/
// waitLoop goroutine pair and internal/app/model.go's tickMsg-driven
// refresh, generalized into a single dedicated-goroutine tick loop per
// spec.md §4.8 (the teacher instead split PTY reads onto one goroutine
// and used bubbletea's own 500ms tick for view refresh; spec.md asks for
// one ~30Hz loop doing both).
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vtembed/linuxterm/internal/term/emulator"
)

// State is one point in spec.md §4.8's INIT -> RUN -> STOPPING -> DONE
// lifecycle.
type State int

const (
	StateInit State = iota
	StateRunning
	StateStopping
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateRunning:
		return "RUN"
	case StateStopping:
		return "STOPPING"
	case StateDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// TickHz is the target tick rate from spec.md §4.8.
const TickHz = 30

// Emulator is the subset of the Emulator Facade (C5) the loop drives.
type Emulator interface {
	Feed(p []byte)
	Resize(rows, cols int)
	DirtyLines() map[int]emulator.LineUpdate
	ClearDirty()
	Cursor() (int, int)
	CursorHidden() bool
	ColorMap(rows []int) map[int]map[int]emulator.ColorRun
}

// PTY is the subset of the PTY Endpoint (C6) the loop drives.
// *ptyio.Endpoint satisfies this structurally.
type PTY interface {
	ReceiveOutput(max int, timeout time.Duration) ([]byte, bool)
	UpdateScreenSize(rows, cols int) error
	IsRunning() bool
	Stop()
	ExitStatus() (code int, signal string)
}

// ViewFlusher is the host side of one tick: applying dirty lines, colors,
// and cursor (C9's job), and reporting whether the view has been closed
// or resized. *viewadapter.Adapter implements this once wired to a host.
type ViewFlusher interface {
	Flush(dirty map[int]emulator.LineUpdate, colorMap map[int]map[int]emulator.ColorRun, cursorRow, cursorCol int, cursorHidden bool)
	Size() (rows, cols int, changed bool)
	Closed() bool
}

// Session runs one terminal session's tick loop.
type Session struct {
	emu  Emulator
	pty  PTY
	view ViewFlusher

	mu    sync.Mutex
	state State

	doneCh chan struct{}
}

// New constructs a Session in state INIT. The caller transitions it to
// RUN by calling Run.
func New(emu Emulator, pty PTY, view ViewFlusher) *Session {
	return &Session{
		emu:    emu,
		pty:    pty,
		view:   view,
		state:  StateInit,
		doneCh: make(chan struct{}),
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Done returns a channel closed once the session reaches DONE.
func (s *Session) Done() <-chan struct{} { return s.doneCh }

// Run drives the tick loop on the calling goroutine until the view
// closes, the child exits, or ctx is cancelled. Callers invoke this on a
// dedicated goroutine, per spec.md §4.8 ("runs on a dedicated worker").
func (s *Session) Run(ctx context.Context) {
	s.setState(StateRunning)
	const frame = time.Second / TickHz

	for {
		start := time.Now()

		select {
		case <-ctx.Done():
			s.shutdown()
			return
		default:
		}

		s.tick()

		if s.view.Closed() || !s.pty.IsRunning() {
			s.shutdown()
			return
		}

		if remain := frame - time.Since(start); remain > 0 {
			time.Sleep(remain)
		}
	}
}

// tick implements spec.md §4.8's per-tick sequence: poll output, flush
// the view, detect a resize.
func (s *Session) tick() {
	if out, ok := s.pty.ReceiveOutput(4*1024, 0); ok && len(out) > 0 {
		s.emu.Feed(out)
	}

	dirty := s.emu.DirtyLines()
	rows := make([]int, 0, len(dirty))
	for r, u := range dirty {
		if !u.Deleted {
			rows = append(rows, r)
		}
	}
	colorMap := s.emu.ColorMap(rows)
	cy, cx := s.emu.Cursor()
	s.view.Flush(dirty, colorMap, cy, cx, s.emu.CursorHidden())
	s.emu.ClearDirty()

	if newRows, newCols, changed := s.view.Size(); changed {
		s.emu.Resize(newRows, newCols)
		_ = s.pty.UpdateScreenSize(newRows, newCols)
	}
}

// shutdown implements STOPPING -> DONE: an exit banner when the child
// actually died (not when the view was simply closed), flushed one last
// time so the banner is visible, then stop the PTY.
func (s *Session) shutdown() {
	s.setState(StateStopping)

	if !s.pty.IsRunning() {
		code, signal := s.pty.ExitStatus()
		var banner string
		if signal != "" {
			banner = fmt.Sprintf("\r\n[process terminated by signal %s]\r\n", signal)
		} else {
			banner = fmt.Sprintf("\r\n[process exited with code %d]\r\n", code)
		}
		s.emu.Feed([]byte(banner))
		dirty := s.emu.DirtyLines()
		cy, cx := s.emu.Cursor()
		s.view.Flush(dirty, nil, cy, cx, s.emu.CursorHidden())
		s.emu.ClearDirty()
	}

	s.pty.Stop()
	s.setState(StateDone)
	close(s.doneCh)
}
