package screen

import (
	"io"
	"strings"

	"github.com/unilibs/uniwidth"
)

// Screen is the VT screen model, spec.md §4.3. It implements
// vtparse.Handler; the parser drives it synchronously, one event at a
// time, per spec.md §4.2's ordering guarantee.
//
// Grounded on the teacher's internal/terminal/screen.go (field names
// curRow/curCol/style survive as y/x/attrs; dispatchCSI's switch survives
// as CSIDispatch's), generalized to the sparse Line model and the
// string-keyed color model spec.md §3 specifies.
type Screen struct {
	lines, cols int
	grid        map[int]Line

	x, y        int
	attrs       Cell
	wrapPending bool // DECAWM deferred-wrap flag: last draw hit the right margin

	g0, g1        byte
	activeCharset int // 0 or 1, selects g0/g1

	tabstops map[int]bool

	marginTop, marginBottom int // 0-indexed, inclusive

	modes modeSet

	savepoints []savepoint

	dirty map[int]bool

	title string

	sink io.Writer // write_process_input callback target, spec.md §4.3

	// History hooks. Screen calls these directly instead of leaning on
	// virtual dispatch through the History embedding, since Go method
	// calls made *within* Screen's own methods (e.g. CSIDispatch calling
	// s.EraseInDisplay) always resolve to Screen's own method, never an
	// embedder's override, even when the concrete value is a *History.
	onLineLeavingTop    func(Line)
	onLineLeavingBottom func(Line)
	onEraseScrollback   func()
}

// New allocates a Screen of the given size, already reset, with an empty
// dirty set.
func New(lines, cols int) *Screen {
	s := &Screen{}
	s.lines, s.cols = lines, cols
	s.Reset()
	s.ClearDirty()
	return s
}

// SetSink wires the process-input callback used by report_device_attributes
// / report_device_status, spec.md §4.3. C8 supplies the PTY write path.
func (s *Screen) SetSink(w io.Writer) { s.sink = w }

// Title returns the last OSC 0/2 payload captured, the supplemented
// window-title feature (SPEC_FULL "Window-title capture via OSC 0/2").
func (s *Screen) Title() string { return s.title }

// Lines and Cols report current screen dimensions.
func (s *Screen) Lines() int { return s.lines }
func (s *Screen) Cols() int  { return s.cols }

// Cursor returns the 0-indexed (y, x) cursor position.
func (s *Screen) Cursor() (int, int) { return s.y, s.x }

// CursorHidden reports whether DECTCEM is off.
func (s *Screen) CursorHidden() bool { return !s.modes.has(ModeDECTCEM, true) }

// ApplicationCursorMode reports DECCKM, consulted by the key encoder (C7).
func (s *Screen) ApplicationCursorMode() bool { return s.modes.has(ModeDECCKM, true) }

// BracketedPasteModeEnabled reports private mode 2004.
func (s *Screen) BracketedPasteModeEnabled() bool { return s.modes.has(ModeBracketedPaste, true) }

// DirtyRows returns the currently dirty row indices, in no particular
// order. Callers clear them with ClearDirty.
func (s *Screen) DirtyRows() []int {
	rows := make([]int, 0, len(s.dirty))
	for r := range s.dirty {
		rows = append(rows, r)
	}
	return rows
}

// ClearDirty empties the dirty set.
func (s *Screen) ClearDirty() { s.dirty = make(map[int]bool) }

func (s *Screen) markDirty(row int) {
	if row < 0 || row >= s.lines {
		return
	}
	s.dirty[row] = true
}

func (s *Screen) markAllDirty() {
	for r := 0; r < s.lines; r++ {
		s.dirty[r] = true
	}
}

// RenderRow renders row as a plain string exactly Cols() runes wide.
func (s *Screen) RenderRow(row int) string {
	line, ok := s.grid[row]
	if !ok {
		return strings.Repeat(" ", s.cols)
	}
	return line.render(s.cols)
}

// CellAt returns the cell at (row, col), or a default blank if unset or
// out of bounds.
func (s *Screen) CellAt(row, col int) Cell {
	if row < 0 || row >= s.lines || col < 0 || col >= s.cols {
		return blankCell(defaultAttrs)
	}
	line, ok := s.grid[row]
	if !ok {
		return blankCell(defaultAttrs)
	}
	return line.cellAt(col)
}

// Reset implements vtparse.Handler: RIS, spec.md §4.3.
func (s *Screen) Reset() {
	s.grid = make(map[int]Line, s.lines)
	s.x, s.y = 0, 0
	s.attrs = defaultAttrs
	s.wrapPending = false
	s.g0, s.g1 = 'B', 'B'
	s.activeCharset = 0
	s.marginTop, s.marginBottom = 0, s.lines-1
	s.modes = newModeSet()
	s.savepoints = nil
	s.dirty = make(map[int]bool)
	s.title = ""
	s.resetTabStops()
	s.markAllDirty()
}

func (s *Screen) resetTabStops() {
	s.tabstops = make(map[int]bool)
	for c := 8; c < s.cols; c += 8 {
		s.tabstops[c] = true
	}
}

// Resize implements spec.md §4.3's resize: dirty everything; shrink rows
// from the top via delete_lines; trim columns at the right; reset
// margins; clear DECOM; keep cursor in-bounds.
func (s *Screen) Resize(lines, cols int) {
	if lines < 1 {
		lines = 1
	}
	if cols < 1 {
		cols = 1
	}
	if lines == s.lines && cols == s.cols {
		return
	}

	if lines < s.lines {
		diff := s.lines - lines
		// Shift remaining content up by diff rows, as delete_lines(diff)
		// from the top would, preserving what fits.
		newGrid := make(map[int]Line, lines)
		for r, line := range s.grid {
			nr := r - diff
			if nr >= 0 && nr < lines {
				newGrid[nr] = line
			}
		}
		s.grid = newGrid
		s.y -= diff
	} else if lines > s.lines {
		// Existing rows keep their indices; nothing to move.
	}

	if cols < s.cols {
		for _, line := range s.grid {
			for c := range line {
				if c >= cols {
					delete(line, c)
				}
			}
		}
	}

	s.lines, s.cols = lines, cols
	s.marginTop, s.marginBottom = 0, s.lines-1
	s.modes.reset(ModeDECOM, true)
	s.resetTabStops()
	s.clampCursor()
	s.dirty = make(map[int]bool)
	s.markAllDirty()
}

func (s *Screen) clampCursor() {
	if s.y < 0 {
		s.y = 0
	}
	if s.y >= s.lines {
		s.y = s.lines - 1
	}
	if s.x < 0 {
		s.x = 0
	}
	if s.x > s.cols {
		s.x = s.cols
	}
}

// SetMargins implements DECSTBM, spec.md §4.3: 1-based input, clamped,
// region width < 2 ignored, homes cursor if the region changed.
func (s *Screen) SetMargins(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom < 1 || bottom > s.lines {
		bottom = s.lines
	}
	t, b := top-1, bottom-1
	if b-t < 1 {
		return
	}
	changed := t != s.marginTop || b != s.marginBottom
	s.marginTop, s.marginBottom = t, b
	if changed {
		s.homeCursor()
	}
}

func (s *Screen) homeCursor() {
	if s.modes.has(ModeDECOM, true) {
		s.y, s.x = s.marginTop, 0
	} else {
		s.y, s.x = 0, 0
	}
	s.wrapPending = false
}

// --- vtparse.Handler: C0 controls ---

func (s *Screen) Bell() {}

func (s *Screen) Backspace() {
	if s.x > 0 {
		s.x--
	}
	s.wrapPending = false
}

func (s *Screen) Tab() {
	next := -1
	for c := s.x + 1; c < s.cols; c++ {
		if s.tabstops[c] {
			next = c
			break
		}
	}
	if next == -1 {
		next = s.cols - 1
	}
	s.x = next
}

func (s *Screen) Linefeed() {
	s.Index()
	if s.modes.has(ModeLNM, false) {
		s.x = 0
	}
}

func (s *Screen) CarriageReturn() {
	s.x = 0
	s.wrapPending = false
}

func (s *Screen) ShiftOut() { s.activeCharset = 1 }
func (s *Screen) ShiftIn()  { s.activeCharset = 0 }

// --- vtparse.Handler: ESC-prefixed simple sequences ---

// Index implements IND, spec.md §4.3: cursor down; at bottom margin,
// shift buffer up inside margins.
func (s *Screen) Index() {
	if s.y == s.marginBottom {
		if s.onLineLeavingTop != nil {
			s.onLineLeavingTop(s.grid[s.marginTop])
		}
		s.scrollUp(1)
	} else if s.y < s.lines-1 {
		s.y++
	}
	s.wrapPending = false
}

func (s *Screen) NextLine() {
	s.Index()
	s.x = 0
}

// ReverseIndex implements RI, spec.md §4.3: cursor up; at top margin,
// shift buffer down inside margins.
func (s *Screen) ReverseIndex() {
	if s.y == s.marginTop {
		if s.onLineLeavingBottom != nil {
			s.onLineLeavingBottom(s.grid[s.marginBottom])
		}
		s.scrollDown(1)
	} else if s.y > 0 {
		s.y--
	}
	s.wrapPending = false
}

func (s *Screen) SetTabStop() { s.tabstops[s.x] = true }

func (s *Screen) SaveCursor()    { s.pushSavepoint() }
func (s *Screen) RestoreCursor() { s.popSavepoint() }

// AlignmentDisplay implements DECALN: fills the screen with 'E'.
func (s *Screen) AlignmentDisplay() {
	for r := 0; r < s.lines; r++ {
		line := make(Line, s.cols)
		for c := 0; c < s.cols; c++ {
			line[c] = Cell{Data: "E", FG: DefaultColor, BG: DefaultColor}
		}
		s.grid[r] = line
	}
	s.markAllDirty()
}

// DesignateCharset implements ESC ( / ESC ) <c>: define G0/G1.
func (s *Screen) DesignateCharset(slot int, charset byte) {
	if slot == 0 {
		s.g0 = charset
	} else {
		s.g1 = charset
	}
}

// OSCDispatch captures OSC 0/2 window-title payloads; everything else is
// a noop at this layer, matching spec.md §4.3's "set_title ... noop; may
// be surfaced by a hook."
func (s *Screen) OSCDispatch(payload string) {
	if strings.HasPrefix(payload, "0;") || strings.HasPrefix(payload, "2;") {
		s.title = payload[2:]
	}
}

func (s *Screen) Debug(string) {}

// --- vtparse.Handler: printable text ---

// Draw implements spec.md §4.3's draw(): charset translation, DECAWM
// wrap-or-overwrite, IRM insert, and width-aware placement via uniwidth.
func (s *Screen) Draw(r rune) {
	charsetCode := s.g0
	if s.activeCharset == 1 {
		charsetCode = s.g1
	}
	r = translate(charsetCode, r)

	width := uniwidth.RuneWidth(r)
	if width == 0 {
		s.composeOntoPrevious(r)
		return
	}

	if s.wrapPending {
		s.wrapLine()
	}

	if s.modes.has(ModeIRM, false) {
		s.insertCharactersAt(s.y, s.x, width)
	}

	line := s.lineFor(s.y)
	line[s.x] = Cell{
		Data: string(r), FG: s.attrs.FG, BG: s.attrs.BG,
		Bold: s.attrs.Bold, Italic: s.attrs.Italic, Underscore: s.attrs.Underscore,
		Strikethrough: s.attrs.Strikethrough, Reverse: s.attrs.Reverse,
	}
	if width == 2 && s.x+1 < s.cols {
		line[s.x+1] = Cell{Data: " ", FG: s.attrs.FG, BG: s.attrs.BG}
	}
	s.markDirty(s.y)

	s.x += width
	if s.x >= s.cols {
		if s.modes.has(ModeDECAWM, true) {
			s.x = s.cols
			s.wrapPending = true
		} else {
			s.x = s.cols - 1
		}
	}
}

// composeOntoPrevious appends a zero-width combining rune to whatever
// cell precedes the cursor, per spec.md §3's "zero-width combining chunk
// appended to the previous cell" and §4.3's NFC-compose note.
func (s *Screen) composeOntoPrevious(r rune) {
	col := s.x - 1
	row := s.y
	if col < 0 {
		if row == 0 {
			return
		}
		row--
		col = s.cols - 1
	}
	line := s.lineFor(row)
	cell := line.cellAt(col)
	cell.Data += string(r)
	line[col] = cell
	s.markDirty(row)
}

func (s *Screen) wrapLine() {
	s.x = 0
	s.Index()
	s.wrapPending = false
}

func (s *Screen) lineFor(row int) Line {
	line, ok := s.grid[row]
	if !ok {
		line = make(Line, s.cols)
		s.grid[row] = line
	}
	return line
}
