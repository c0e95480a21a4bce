package viewadapter

import (
	"reflect"
	"sort"
	"testing"

	"github.com/vtembed/linuxterm/internal/term/emulator"
)

type regionCall struct {
	key, scope   string
	row, col, ln int
}

type fakeHost struct {
	lines         map[int]string
	removedOnLine []int
	regions       []regionCall
	cursorRow     int
	cursorCol     int
	cursorSet     bool
	hidden        bool
	readOnlyLog   []bool
	rows, cols    int
	sizeChanged   bool
	closed        bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{lines: make(map[int]string), rows: 24, cols: 80}
}

func (h *fakeHost) ReplaceLine(row int, content string) { h.lines[row] = content }
func (h *fakeHost) ClearLine(row int)                    { delete(h.lines, row) }
func (h *fakeHost) AddStyleRegion(key string, row, col, length int, scope string) {
	h.regions = append(h.regions, regionCall{key: key, scope: scope, row: row, col: col, ln: length})
}
func (h *fakeHost) RemoveStyleRegionsOnLine(row int) { h.removedOnLine = append(h.removedOnLine, row) }
func (h *fakeHost) SetCursor(row, col int) {
	h.cursorRow, h.cursorCol, h.cursorSet, h.hidden = row, col, true, false
}
func (h *fakeHost) HideCursor()          { h.hidden = true }
func (h *fakeHost) SetReadOnly(ro bool)  { h.readOnlyLog = append(h.readOnlyLog, ro) }
func (h *fakeHost) Closed() bool         { return h.closed }
func (h *fakeHost) Size() (int, int, bool) {
	changed := h.sizeChanged
	h.sizeChanged = false
	return h.rows, h.cols, changed
}

func TestAdapter_FlushReplacesContentAndBracketsReadOnly(t *testing.T) {
	host := newFakeHost()
	a := New(host)

	dirty := map[int]emulator.LineUpdate{
		0: {Text: "hello"},
		2: {Text: "world"},
	}
	a.Flush(dirty, nil, 0, 5, false)

	if host.lines[0] != "hello" || host.lines[2] != "world" {
		t.Fatalf("lines = %v", host.lines)
	}
	if len(host.readOnlyLog) != 2 || host.readOnlyLog[0] != false || host.readOnlyLog[1] != true {
		t.Fatalf("readOnlyLog = %v, want [false true]", host.readOnlyLog)
	}
	sort.Ints(host.removedOnLine)
	if !reflect.DeepEqual(host.removedOnLine, []int{0, 2}) {
		t.Fatalf("removedOnLine = %v, want [0 2]", host.removedOnLine)
	}
}

func TestAdapter_FlushClearsDeletedLines(t *testing.T) {
	host := newFakeHost()
	a := New(host)
	a.Flush(map[int]emulator.LineUpdate{1: {Text: "x"}}, nil, 0, 0, false)
	if _, ok := a.LineLength(1); !ok {
		t.Fatal("expected line 1 length cached after write")
	}

	a.Flush(map[int]emulator.LineUpdate{1: {Deleted: true}}, nil, 0, 0, false)
	if _, ok := host.lines[1]; ok {
		t.Fatal("expected line 1 cleared from host")
	}
	if _, ok := a.LineLength(1); ok {
		t.Fatal("expected line 1 length evicted from cache after delete")
	}
}

func TestAdapter_FlushAppliesStyleRegionsSortedByColumn(t *testing.T) {
	host := newFakeHost()
	a := New(host)

	colorMap := map[int]map[int]emulator.ColorRun{
		3: {
			5: {BG: "red", FG: "white", FieldLength: 2},
			0: {BG: "blue", FG: "black", FieldLength: 3},
		},
	}
	a.Flush(map[int]emulator.LineUpdate{3: {Text: "xxxxxxx"}}, colorMap, 0, 0, false)

	if len(host.regions) != 2 {
		t.Fatalf("regions = %v, want 2 entries", host.regions)
	}
	if host.regions[0].col != 0 || host.regions[1].col != 5 {
		t.Fatalf("regions not sorted by column: %v", host.regions)
	}
	if host.regions[0].key != "3,0" || host.regions[1].key != "3,5" {
		t.Fatalf("region keys = %q, %q", host.regions[0].key, host.regions[1].key)
	}
	if host.regions[0].scope != "terminalview.blue_black" {
		t.Fatalf("scope = %q", host.regions[0].scope)
	}
}

func TestAdapter_FlushSkipsZeroLengthRuns(t *testing.T) {
	host := newFakeHost()
	a := New(host)
	colorMap := map[int]map[int]emulator.ColorRun{
		0: {0: {BG: "red", FG: "white", FieldLength: 0}},
	}
	a.Flush(map[int]emulator.LineUpdate{0: {Text: "x"}}, colorMap, 0, 0, false)
	if len(host.regions) != 0 {
		t.Fatalf("regions = %v, want none for a zero-length run", host.regions)
	}
}

func TestAdapter_CursorMovesOnChangeOnly(t *testing.T) {
	host := newFakeHost()
	a := New(host)

	a.Flush(nil, nil, 2, 4, false)
	if host.cursorRow != 2 || host.cursorCol != 4 {
		t.Fatalf("cursor = (%d,%d), want (2,4)", host.cursorRow, host.cursorCol)
	}

	host.cursorRow, host.cursorCol = -1, -1 // so a spurious re-set would be visible
	a.Flush(nil, nil, 2, 4, false)
	if host.cursorRow != -1 || host.cursorCol != -1 {
		t.Fatal("expected SetCursor not called again for an unchanged position")
	}
}

func TestAdapter_CursorHiddenAndRestored(t *testing.T) {
	host := newFakeHost()
	a := New(host)

	a.Flush(nil, nil, 0, 0, true)
	if !host.hidden {
		t.Fatal("expected HideCursor to have been called")
	}

	a.Flush(nil, nil, 1, 1, false)
	if host.cursorRow != 1 || host.cursorCol != 1 || host.hidden {
		t.Fatalf("expected cursor restored at (1,1), got row=%d col=%d hidden=%v", host.cursorRow, host.cursorCol, host.hidden)
	}
}

func TestAdapter_FlushWithNoDirtyLinesSkipsReadOnlyToggle(t *testing.T) {
	host := newFakeHost()
	a := New(host)
	a.Flush(nil, nil, 0, 0, false)
	if len(host.readOnlyLog) != 0 {
		t.Fatalf("readOnlyLog = %v, want none when nothing is dirty", host.readOnlyLog)
	}
}

func TestAdapter_SizeAndClosedDelegateToHost(t *testing.T) {
	host := newFakeHost()
	host.rows, host.cols, host.sizeChanged = 40, 120, true
	a := New(host)

	rows, cols, changed := a.Size()
	if rows != 40 || cols != 120 || !changed {
		t.Fatalf("Size() = (%d,%d,%v)", rows, cols, changed)
	}
	// second call: sizeChanged was consumed by the fake host itself
	if _, _, changed := a.Size(); changed {
		t.Fatal("expected changed=false on the second call")
	}

	host.closed = true
	if !a.Closed() {
		t.Fatal("expected Closed() to delegate to the host")
	}
}
