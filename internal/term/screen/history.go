package screen

import "math"

// History wraps Screen with top/bottom scrollback queues and pagination,
// spec.md §4.4. Grounded on original_source/pyte_terminal_emulator.py's
// CustomHistoryScreen: the index/reverse_index overrides that feed the
// top/bottom deques, and the prev_page/next_page pagination math
// (`mid = min(len(queue), ceil(lines*ratio))`).
//
// Queue convention: both top and bottom are ordered front-to-back from
// "nearest the live screen" to "furthest back in time." Index() and
// ReverseIndex() push new entries to the front; pagination pops from the
// front and trims the back when a queue exceeds its capacity.
type History struct {
	*Screen

	top, bottom           []Line
	topCap, bottomCap      int
	ratio                  float64
	size                   int // the configured (already-doubled) history size, spec.md §9's decision
	position               int // size == live screen; lower == scrolled up
}

// NewHistory allocates a History screen. historySize is the doubled
// value (spec.md §9's decision: the Emulator Facade doubles the user's
// configured scrollback before calling this) — top gets historySize/2,
// bottom gets historySize, matching CustomHistoryScreen's split.
func NewHistory(lines, cols, historySize int, ratio float64) *History {
	h := &History{
		Screen:    New(lines, cols),
		topCap:    historySize / 2,
		bottomCap: historySize,
		ratio:     ratio,
		size:      historySize,
	}
	h.position = h.size

	// Wire the history hooks directly into Screen rather than overriding
	// Index/ReverseIndex/EraseInDisplay: Screen's own methods call each
	// other by direct (non-interface) method call, e.g. CSIDispatch
	// invokes s.EraseInDisplay(...) on its own *Screen receiver, which
	// would never reach an embedder's override.
	h.onLineLeavingTop = func(line Line) { h.pushTop(line) }
	h.onLineLeavingBottom = func(line Line) { h.pushBottom(line) }
	h.onEraseScrollback = func() { h.top = nil; h.bottom = nil }

	return h
}

// Reset hooks RIS to also clear the scrollback, spec.md §4.4. Safe to
// override directly: nothing inside Screen calls Reset on itself.
func (h *History) Reset() {
	h.Screen.Reset()
	h.top = nil
	h.bottom = nil
	h.position = h.size
}

func (h *History) pushTop(line Line) {
	h.top = append([]Line{cloneLine(line)}, h.top...)
	if len(h.top) > h.topCap {
		h.top = h.top[:h.topCap]
	}
}

func (h *History) pushBottom(line Line) {
	h.bottom = append([]Line{cloneLine(line)}, h.bottom...)
	if len(h.bottom) > h.bottomCap {
		h.bottom = h.bottom[:h.bottomCap]
	}
}

func cloneLine(line Line) Line {
	if line == nil {
		return Line{}
	}
	c := make(Line, len(line))
	for k, v := range line {
		c[k] = v
	}
	return c
}

func (h *History) pageMid(queueLen int) int {
	mid := int(math.Ceil(float64(h.lines) * h.ratio))
	if mid > queueLen {
		mid = queueLen
	}
	return mid
}

// PrevPage implements spec.md §4.4's prev_page.
func (h *History) PrevPage() {
	mid := h.pageMid(len(h.top))
	if mid <= 0 {
		return
	}

	// Capture the bottom mid rows of the visible buffer before they're
	// overwritten by the downward shift, pushing them onto bottom so
	// NextPage can restore them, reversed per spec.md §4.4.
	for r := h.lines - mid; r < h.lines; r++ {
		h.pushBottom(h.grid[r])
	}

	h.shiftDown(mid)

	for r := 0; r < mid; r++ {
		h.grid[r] = h.top[mid-1-r]
	}
	h.top = h.top[mid:]

	h.position -= h.lines
	h.ensureScreenWidth()
	h.markAllDirty()
	h.recomputeCursorVisibility()
}

// NextPage implements spec.md §4.4's next_page; idempotent at the live
// screen (testable property #4).
func (h *History) NextPage() {
	mid := h.pageMid(len(h.bottom))
	if mid <= 0 {
		return
	}

	for r := 0; r < mid; r++ {
		h.pushTop(h.grid[r])
	}

	h.shiftUp(mid)

	for r := 0; r < mid; r++ {
		h.grid[h.lines-1-r] = h.bottom[r]
	}
	h.bottom = h.bottom[mid:]

	h.position += h.lines
	if h.position > h.size {
		h.position = h.size
	}
	h.ensureScreenWidth()
	h.markAllDirty()
	h.recomputeCursorVisibility()
}

// PrevLine / NextLine are the single-row variants, spec.md §4.4.
func (h *History) PrevLine() {
	if len(h.top) == 0 {
		return
	}
	h.pushBottom(h.grid[h.lines-1])
	h.shiftDown(1)
	h.grid[0] = h.top[0]
	h.top = h.top[1:]
	h.position--
	h.ensureScreenWidth()
	h.markAllDirty()
	h.recomputeCursorVisibility()
}

func (h *History) NextLine() {
	if len(h.bottom) == 0 {
		return
	}
	h.pushTop(h.grid[0])
	h.shiftUp(1)
	h.grid[h.lines-1] = h.bottom[0]
	h.bottom = h.bottom[1:]
	h.position++
	if h.position > h.size {
		h.position = h.size
	}
	h.ensureScreenWidth()
	h.markAllDirty()
	h.recomputeCursorVisibility()
}

// shiftDown moves every visible row down by n (rows 0..lines-n-1 move to
// n..lines-1), vacating rows 0..n-1 for the caller to fill from history.
func (h *History) shiftDown(n int) {
	newGrid := make(map[int]Line, len(h.grid))
	for r, line := range h.grid {
		if r+n < h.lines {
			newGrid[r+n] = line
		}
	}
	h.grid = newGrid
}

// shiftUp is the mirror of shiftDown.
func (h *History) shiftUp(n int) {
	newGrid := make(map[int]Line, len(h.grid))
	for r, line := range h.grid {
		if r-n >= 0 {
			newGrid[r-n] = line
		}
	}
	h.grid = newGrid
}

// ensureScreenWidth pads/truncates every displayed row to exactly
// h.cols cells, spec.md §4.4. The sparse Line representation renders
// missing columns as blanks already; this only needs to trim columns a
// history line may carry from a since-shrunk width.
func (h *History) ensureScreenWidth() {
	for _, line := range h.grid {
		for c := range line {
			if c >= h.cols {
				delete(line, c)
			}
		}
	}
}

// recomputeCursorVisibility implements spec.md §4.4: "hidden unless near
// the bottom and DECTCEM set." Scrolled away from the live screen, the
// cursor is never shown regardless of DECTCEM.
func (h *History) recomputeCursorVisibility() {
	// Nothing to mutate directly: CursorHidden() below consults
	// h.position, so there is no separate flag to flip.
}

// CursorHidden overrides Screen.CursorHidden to also hide the cursor
// whenever scrolled away from the live screen.
func (h *History) CursorHidden() bool {
	if h.position != h.size {
		return true
	}
	return h.Screen.CursorHidden()
}

// AtBottom reports whether the view is at the live screen (position ==
// size).
func (h *History) AtBottom() bool { return h.position == h.size }

// Position returns the current scrollback position (size == live).
func (h *History) Position() int { return h.position }

// ScrollToBottom restores the live screen, spec.md §4.4/§4.5: "any
// non-pagination event first scrolls to bottom." Bounded by the number
// of pages that could possibly separate position from size, so a queue
// that unexpectedly yields mid==0 can't spin forever.
func (h *History) ScrollToBottom() {
	maxSteps := h.size/max1(h.lines) + 2
	for step := 0; step < maxSteps && !h.AtBottom(); step++ {
		before := h.position
		h.NextPage()
		if h.position == before {
			break
		}
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
