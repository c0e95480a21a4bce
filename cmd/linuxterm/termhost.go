package main

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// region is one style span the View Adapter (C9) asked the host to
// track, keyed the same "{row},{col}" way viewadapter.Adapter formats
// its region keys.
type region struct {
	row, col, length int
	scope            string
}

// refreshMsg wakes the Bubbletea event loop after the session loop (C8)
// mutates termHost from its own goroutine, matching SPEC_FULL's note
// that the demo host "uses bubbletea's Program.Send" as the host's own
// serialized command channel for C9's view mutations.
type refreshMsg struct{}

// termHost implements viewadapter.Host: a mutex-protected snapshot of
// one terminal view's displayed lines, style regions, and cursor, plus
// the view extent the session loop (C8) polls every tick. ReplaceLine,
// ClearLine, SetCursor and HideCursor also wake the Bubbletea Program so
// View() picks up the change on its next render; the style-region and
// read-only calls do not.
type termHost struct {
	mu sync.Mutex

	lines   map[int]string
	regions map[string]region

	cursorRow, cursorCol int
	cursorHidden         bool

	readOnly bool
	closed   bool

	rows, cols  int
	sizeChanged bool

	program *tea.Program
}

func newTermHost(rows, cols int) *termHost {
	return &termHost{
		lines:   make(map[int]string),
		regions: make(map[string]region),
		rows:    rows,
		cols:    cols,
	}
}

// attach wires the Bubbletea Program once it's been constructed; termHost
// has to exist before tea.NewProgram does, since the Host is handed to
// the View Adapter (C9) before the Program exists.
func (h *termHost) attach(p *tea.Program) {
	h.mu.Lock()
	h.program = p
	h.mu.Unlock()
}

func (h *termHost) wake() {
	if h.program != nil {
		h.program.Send(refreshMsg{})
	}
}

func (h *termHost) ReplaceLine(row int, content string) {
	h.mu.Lock()
	h.lines[row] = content
	h.mu.Unlock()
	h.wake()
}

func (h *termHost) ClearLine(row int) {
	h.mu.Lock()
	delete(h.lines, row)
	h.mu.Unlock()
	h.wake()
}

func (h *termHost) AddStyleRegion(key string, row, col, length int, scope string) {
	h.mu.Lock()
	h.regions[key] = region{row: row, col: col, length: length, scope: scope}
	h.mu.Unlock()
}

func (h *termHost) RemoveStyleRegionsOnLine(row int) {
	h.mu.Lock()
	for key, r := range h.regions {
		if r.row == row {
			delete(h.regions, key)
		}
	}
	h.mu.Unlock()
}

func (h *termHost) SetCursor(row, col int) {
	h.mu.Lock()
	h.cursorRow, h.cursorCol, h.cursorHidden = row, col, false
	h.mu.Unlock()
	h.wake()
}

func (h *termHost) HideCursor() {
	h.mu.Lock()
	h.cursorHidden = true
	h.mu.Unlock()
	h.wake()
}

func (h *termHost) SetReadOnly(ro bool) {
	h.mu.Lock()
	h.readOnly = ro
	h.mu.Unlock()
}

func (h *termHost) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *termHost) quit() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// Size implements viewadapter.Host / session.ViewFlusher's resize half:
// reports the last size the Bubbletea model pushed via setSize, and
// whether the session loop (C8) hasn't consumed it yet.
func (h *termHost) Size() (rows, cols int, changed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	changed = h.sizeChanged
	h.sizeChanged = false
	return h.rows, h.cols, changed
}

// setSize is called from the Bubbletea Update loop on tea.WindowSizeMsg.
func (h *termHost) setSize(rows, cols int) {
	h.mu.Lock()
	if rows != h.rows || cols != h.cols {
		h.rows, h.cols, h.sizeChanged = rows, cols, true
	}
	h.mu.Unlock()
}

// snapshot is an immutable copy for View() to render without holding the
// lock across lipgloss formatting.
type snapshot struct {
	lines                map[int]string
	regionsByRow         map[int][]region
	cursorRow, cursorCol int
	cursorHidden         bool
	rows, cols           int
}

func (h *termHost) snapshot() snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	lines := make(map[int]string, len(h.lines))
	for k, v := range h.lines {
		lines[k] = v
	}

	byRow := make(map[int][]region)
	for _, r := range h.regions {
		byRow[r.row] = append(byRow[r.row], r)
	}
	for row := range byRow {
		sort.Slice(byRow[row], func(i, j int) bool { return byRow[row][i].col < byRow[row][j].col })
	}

	return snapshot{
		lines:        lines,
		regionsByRow: byRow,
		cursorRow:    h.cursorRow,
		cursorCol:    h.cursorCol,
		cursorHidden: h.cursorHidden,
		rows:         h.rows,
		cols:         h.cols,
	}
}
