package screen

// CSIDispatch implements vtparse.Handler: routes a parsed CSI sequence's
// final byte to the matching screen operation. Grounded on the teacher's
// dispatchCSI switch, extended to the full set spec.md §4.2 names: ICH,
// CUU/CUD/CUF/CUB, CNL, CPL, CHA/HPA, CUP/HVP, ED, EL, IL, DL, DCH, ECH,
// HPR, DA, VPA, VPR, TBC, SM, RM, SGR, DSR, DECSTBM.
func (s *Screen) CSIDispatch(final byte, params []int, private bool) {
	switch final {
	case '@': // ICH
		s.InsertCharacters(param(params, 0, 1))
	case 'A': // CUU
		s.CursorUp(param(params, 0, 1))
	case 'B': // CUD
		s.CursorDown(param(params, 0, 1))
	case 'C': // CUF
		s.CursorForward(param(params, 0, 1))
	case 'D': // CUB
		s.CursorBack(param(params, 0, 1))
	case 'E': // CNL
		s.CursorNextLine(param(params, 0, 1))
	case 'F': // CPL
		s.CursorPrevLine(param(params, 0, 1))
	case 'G': // CHA
		s.CursorToColumn(param(params, 0, 1))
	case '`': // HPA
		s.CursorToColumn(param(params, 0, 1))
	case 'a': // HPR: forward, relative, no wrap
		s.CursorForward(param(params, 0, 1))
	case 'H', 'f': // CUP / HVP
		s.CursorPosition(param(params, 0, 1), param(params, 1, 1))
	case 'J': // ED
		s.EraseInDisplay(param(params, 0, 0))
	case 'K': // EL
		s.EraseInLine(param(params, 0, 0))
	case 'L': // IL
		s.InsertLines(param(params, 0, 1))
	case 'M': // DL
		s.DeleteLines(param(params, 0, 1))
	case 'P': // DCH
		s.DeleteCharacters(param(params, 0, 1))
	case 'X': // ECH
		s.EraseCharacters(param(params, 0, 1))
	case 'd': // VPA
		s.CursorToLine(param(params, 0, 1))
	case 'e': // VPR: cursor down, relative
		s.CursorDown(param(params, 0, 1))
	case 'g': // TBC
		s.ClearTabStop(param(params, 0, 0))
	case 'c': // DA
		s.ReportDeviceAttributes(param(params, 0, 0))
	case 'n': // DSR
		s.ReportDeviceStatus(param(params, 0, 0))
	case 'h': // SM
		s.SetMode(params, private)
	case 'l': // RM
		s.ResetMode(params, private)
	case 'm': // SGR
		s.SelectGraphicRendition(params)
	case 'r': // DECSTBM
		top := param(params, 0, 1)
		bottom := param(params, 1, s.lines)
		s.SetMargins(top, bottom)
	case 's': // ANSI.SYS save cursor (no private-mode ambiguity here, no params)
		if len(params) == 0 {
			s.SaveCursor()
		}
	case 'u':
		if len(params) == 0 {
			s.RestoreCursor()
		}
	}
}

// param returns params[idx] if present and non-zero, else def. Mirrors
// the teacher's paramDefault: an explicit 0 in the stream still defaults,
// matching spec.md §4.2's "0 default" parameter semantics.
func param(params []int, idx, def int) int {
	if idx < len(params) && params[idx] != 0 {
		return params[idx]
	}
	return def
}
