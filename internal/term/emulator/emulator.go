// Package emulator implements the Emulator Facade (spec C5): the single
// entry point a PTY session loop feeds bytes into and reads dirty lines,
// cursor, and color runs back out of.
//
// Grounded on the teacher's Session.Screen wiring in
// internal/terminal/session.go (one Screen per session, fed from the PTY
// read loop, queried by the render loop), generalized to own the full
// C1->C2->C4 pipeline instead of the teacher's single monolithic Screen.
package emulator

import (
	"io"

	"github.com/vtembed/linuxterm/internal/term/decode"
	"github.com/vtembed/linuxterm/internal/term/screen"
	"github.com/vtembed/linuxterm/internal/term/vtparse"
)

// ColorRun is one run of same-colored cells, spec.md §4.5's color_map.
type ColorRun struct {
	BG, FG      string
	FieldLength int
}

// Facade is the C5 Emulator Facade. It owns a byte decoder, a VT stream
// parser, and a scrollback-capable screen; Feed is the only way bytes
// reach the screen.
type Facade struct {
	decoder *decode.Decoder
	parser  *vtparse.Parser
	history *screen.History

	modified bool

	// lastLines tracks the screen height as of the previous Resize call,
	// so a shrink can still report the now-gone rows as deleted even
	// though Screen.Resize's own dirty set only spans the new height.
	lastLines int

	pendingDeletes []int
}

// New allocates a Facade. historyLines is the user-configured scrollback
// size; it is doubled internally before reaching screen.NewHistory, per
// spec.md §9 / SPEC_FULL's recorded decision (two queues split the
// budget).
func New(lines, cols, historyLines int, ratio float64) *Facade {
	h := screen.NewHistory(lines, cols, historyLines*2, ratio)
	return &Facade{
		decoder:   decode.DefaultChain(),
		parser:    vtparse.New(h),
		history:   h,
		lastLines: lines,
	}
}

// SetSink wires the device-report write target (report_device_attributes
// / report_device_status), spec.md §4.3 — normally the PTY's write side
// (C6), supplied by C8.
func (f *Facade) SetSink(w io.Writer) { f.history.SetSink(w) }

// Feed implements spec.md §4.5's feed: scroll-to-bottom, then push bytes
// through the decoder and parser.
func (f *Facade) Feed(p []byte) {
	f.history.ScrollToBottom()
	text := f.decoder.Feed(p)
	f.parser.StepString(text)
	f.modified = true
}

// Resize implements spec.md §4.5's resize: scroll-to-bottom, mark all
// rows dirty, delegate, and remember any rows that fell off the bottom
// of a shrink so DirtyLines can report them as deleted.
func (f *Facade) Resize(lines, cols int) {
	f.history.ScrollToBottom()
	if lines < f.lastLines {
		for r := lines; r < f.lastLines; r++ {
			f.pendingDeletes = append(f.pendingDeletes, r)
		}
	}
	f.history.Resize(lines, cols)
	f.lastLines = lines
	f.modified = true
}

// PrevPage / NextPage delegate to the history screen; ensure_screen_width
// is already applied internally by screen.History.
func (f *Facade) PrevPage() { f.history.PrevPage() }
func (f *Facade) NextPage() { f.history.NextPage() }

// LineUpdate is one entry of DirtyLines: either rendered text for a live
// row, or Deleted for a row beyond the current (just-shrunk) height.
type LineUpdate struct {
	Deleted bool
	Text    string
}

// DirtyLines implements spec.md §4.5's dirty_lines: the dirty set plus
// any pending shrink-deletions, each rendered row exactly Cols() wide.
func (f *Facade) DirtyLines() map[int]LineUpdate {
	out := make(map[int]LineUpdate, len(f.pendingDeletes)+8)
	for _, r := range f.pendingDeletes {
		out[r] = LineUpdate{Deleted: true}
	}
	for _, r := range f.history.DirtyRows() {
		out[r] = LineUpdate{Text: f.history.RenderRow(r)}
	}
	return out
}

// ClearDirty implements spec.md §4.5's clear_dirty: clears dirty and
// modified, and drops any already-reported pending deletions.
func (f *Facade) ClearDirty() {
	f.history.ClearDirty()
	f.pendingDeletes = nil
	f.modified = false
}

// Modified reports whether Feed/Resize has run since the last ClearDirty.
func (f *Facade) Modified() bool { return f.modified }

// Cursor returns the 0-indexed (y, x) cursor position.
func (f *Facade) Cursor() (int, int) { return f.history.Cursor() }

// CursorHidden reports whether the cursor should be drawn: DECTCEM off,
// or scrolled away from the live screen (screen.History's override).
func (f *Facade) CursorHidden() bool { return f.history.CursorHidden() }

// Title returns the last OSC 0/2 window-title payload captured
// (SPEC_FULL's supplemented window-title feature).
func (f *Facade) Title() string { return f.history.Title() }

// ApplicationModeEnabled reports DECCKM, consulted by the key encoder (C7).
func (f *Facade) ApplicationModeEnabled() bool { return f.history.ApplicationCursorMode() }

// BracketedPasteModeEnabled reports private mode 2004.
func (f *Facade) BracketedPasteModeEnabled() bool { return f.history.BracketedPasteModeEnabled() }

const (
	baselineBG = "black"
	baselineFG = "white"
)

// ColorMap implements spec.md §4.5's color_map: for each requested row,
// scan cells left to right, coalescing consecutive cells that share
// (bg, fg) after applying the reverse swap and the default->baseline
// mapping, and emit only runs that differ from the baseline (black,
// white).
func (f *Facade) ColorMap(rows []int) map[int]map[int]ColorRun {
	cols := f.history.Cols()
	result := make(map[int]map[int]ColorRun, len(rows))

	for _, row := range rows {
		runs := make(map[int]ColorRun)
		startCol := -1
		runLen := 0
		var runBG, runFG string

		flush := func() {
			if startCol < 0 {
				return
			}
			if runBG != baselineBG || runFG != baselineFG {
				runs[startCol] = ColorRun{BG: runBG, FG: runFG, FieldLength: runLen}
			}
			startCol = -1
			runLen = 0
		}

		for c := 0; c < cols; c++ {
			cell := f.history.CellAt(row, c)
			// Resolve each slot's "default" sentinel to its own baseline
			// first, then swap — so reverse video on an otherwise
			// untouched cell inverts to (white, black) instead of
			// swapping two identical "default" sentinels into a no-op.
			bg, fg := screen.CoalesceBG(cell.BG), screen.CoalesceFG(cell.FG)
			if cell.Reverse {
				bg, fg = fg, bg
			}

			if startCol >= 0 && bg == runBG && fg == runFG {
				runLen++
				continue
			}
			flush()
			startCol, runBG, runFG, runLen = c, bg, fg, 1
		}
		flush()

		if len(runs) > 0 {
			result[row] = runs
		}
	}
	return result
}
