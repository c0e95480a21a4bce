// Package viewadapter implements the View Adapter (spec C9): the piece
// that takes one tick's (dirty_lines, color_map, cursor) from the
// Emulator Facade (C5) and applies it to a host editor view as one
// transaction.
//
// Grounded directly on original_source/sublime_terminal_buffer.py's
// TerminalViewUpdate: set_read_only(false), walk dirty lines sorted,
// clear old color regions before replacing content, re-add regions from
// color_map, set_read_only(true), then move the cursor last so it
// doesn't blink at the top of the view while a prompt is being drawn at
// the bottom.
package viewadapter

import (
	"fmt"
	"sort"

	"github.com/vtembed/linuxterm/internal/term/emulator"
)

// Host is whatever the embedding editor exposes for mutating its own
// buffer/view. original_source's TerminalViewUpdate drove the Sublime
// Text 3 API directly (view.replace, view.add_regions, ...); this is
// the same set of operations generalized to an interface so C9 doesn't
// depend on any one host.
type Host interface {
	ReplaceLine(row int, content string)
	ClearLine(row int)
	AddStyleRegion(key string, row, col, length int, scope string)
	RemoveStyleRegionsOnLine(row int)
	SetCursor(row, col int)
	HideCursor()
	SetReadOnly(readOnly bool)

	// Closed reports whether the host view has gone away (window closed,
	// tab closed, ...), spec.md §4.9's termination signal back to the
	// session loop (C8).
	Closed() bool

	// Size reports the host's current view extent in rows/cols, and
	// whether it has changed since the last call.
	Size() (rows, cols int, changed bool)
}

// Adapter implements session.ViewFlusher (C8's host-side interface) on
// top of a Host. lineLens mirrors
// sublime_terminal_buffer.py's _get_line_start_and_end_points: rather
// than asking the host to recompute offsets/diff content, the adapter
// remembers what it last wrote per row.
type Adapter struct {
	host     Host
	lineLens map[int]int

	lastCursorRow, lastCursorCol int
	cursorKnown                  bool
	lastCursorHidden             bool
}

// New wraps host in an Adapter.
func New(host Host) *Adapter {
	return &Adapter{
		host:     host,
		lineLens: make(map[int]int),
	}
}

// LineLength reports the length last written to row, mirroring
// sublime_terminal_buffer.py's _get_line_start_and_end_points: rows it
// has never written, or has cleared, report (0, false).
func (a *Adapter) LineLength(row int) (int, bool) {
	n, ok := a.lineLens[row]
	return n, ok
}

// regionKey formats the "{row},{col}" style region key spec.md §4.9
// specifies verbatim, matching
// sublime_terminal_buffer.py's `"%i,%s" % (line_no, idx)`.
func regionKey(row, col int) string {
	return fmt.Sprintf("%d,%d", row, col)
}

// colorScope names a style region by the (bg, fg) pair it covers,
// matching the dotted-scope-name convention
// sublime_terminal_buffer.py uses ("terminalview.%s_%s" %% (bg, fg)),
// generalized to whatever naming the host's theme (lipgloss in the demo
// host) resolves by string key.
func colorScope(bg, fg string) string {
	return fmt.Sprintf("terminalview.%s_%s", bg, fg)
}

// Flush implements session.ViewFlusher: apply dirty line content, then
// color regions, then the cursor, in one read-only-toggled pass.
func (a *Adapter) Flush(dirty map[int]emulator.LineUpdate, colorMap map[int]map[int]emulator.ColorRun, cursorRow, cursorCol int, cursorHidden bool) {
	if len(dirty) > 0 {
		a.host.SetReadOnly(false)

		rows := make([]int, 0, len(dirty))
		for row := range dirty {
			rows = append(rows, row)
		}
		sort.Ints(rows)

		for _, row := range rows {
			update := dirty[row]

			a.host.RemoveStyleRegionsOnLine(row)

			if update.Deleted {
				a.host.ClearLine(row)
				delete(a.lineLens, row)
				continue
			}

			a.host.ReplaceLine(row, update.Text)
			a.lineLens[row] = len(update.Text)

			if runs, ok := colorMap[row]; ok {
				a.applyRuns(row, runs)
			}
		}

		a.host.SetReadOnly(true)
	}

	// Cursor last, per the original's comment: avoids a selection
	// blinking at the top of the view while a new prompt is being drawn
	// at the bottom.
	a.updateCursor(cursorRow, cursorCol, cursorHidden)
}

func (a *Adapter) applyRuns(row int, runs map[int]emulator.ColorRun) {
	cols := make([]int, 0, len(runs))
	for col := range runs {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	for _, col := range cols {
		run := runs[col]
		if run.FieldLength <= 0 {
			continue
		}
		key := regionKey(row, col)
		scope := colorScope(run.BG, run.FG)
		a.host.AddStyleRegion(key, row, col, run.FieldLength, scope)
	}
}

func (a *Adapter) updateCursor(row, col int, hidden bool) {
	if hidden {
		if !a.cursorKnown || !a.lastCursorHidden {
			a.host.HideCursor()
		}
		a.lastCursorHidden = true
		return
	}

	if !a.cursorKnown || a.lastCursorHidden || row != a.lastCursorRow || col != a.lastCursorCol {
		a.host.SetCursor(row, col)
	}
	a.lastCursorRow, a.lastCursorCol = row, col
	a.lastCursorHidden = false
	a.cursorKnown = true
}

// Size delegates to the Host, satisfying session.ViewFlusher.
func (a *Adapter) Size() (rows, cols int, changed bool) { return a.host.Size() }

// Closed delegates to the Host, satisfying session.ViewFlusher.
func (a *Adapter) Closed() bool { return a.host.Closed() }
