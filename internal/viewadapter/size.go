package viewadapter

import "math"

// Margins are reserved host-view grid cells that don't belong to the
// terminal grid (gutters, scrollbars, a status line).
type Margins struct {
	// RightMargin and BottomMargin are whole grid cells reserved at the
	// trailing edge of each axis.
	RightMargin, BottomMargin int
}

// ComputeSize implements spec.md §4.9's view-size math: given the host's
// pixel extent and per-cell metrics, derive the terminal's row/column
// count. Both floor to a whole cell and are clamped to at least 1, so a
// tiny or just-opened host view never reports a degenerate 0x0 grid.
func ComputeSize(widthPx, heightPx float64, emWidthPx, lineHeightPx float64, m Margins) (cols, rows int) {
	cols = int(math.Floor(widthPx/emWidthPx)) - m.RightMargin
	if cols < 1 {
		cols = 1
	}
	rows = int(math.Floor(heightPx/lineHeightPx)) - m.BottomMargin
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}
