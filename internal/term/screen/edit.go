package screen

// Line/char editing family and scrolling, spec.md §4.3. Grounded on the
// teacher's scrollUp/scrollDown/insertLines/deleteLines/insertChars/
// deleteChars/eraseDisplay/eraseLine, adapted to the sparse map[int]Line
// grid (shifting row *indices* rather than slice elements) and to
// margin-aware scrolling everywhere the teacher scrolled the whole
// screen.

// scrollUp shifts n rows out the top of the margin region, discarding
// them, and blanks n new rows at the bottom of the region.
func (s *Screen) scrollUp(n int) {
	top, bottom := s.marginTop, s.marginBottom
	if n <= 0 || top >= bottom {
		return
	}
	newGrid := make(map[int]Line, len(s.grid))
	for r, line := range s.grid {
		if r < top || r > bottom {
			newGrid[r] = line
			continue
		}
		nr := r - n
		if nr >= top {
			newGrid[nr] = line
		}
		// rows shifted above top are discarded (caller's History hook
		// pushes them onto the scrollback before calling this).
	}
	s.grid = newGrid
	for r := bottom - n + 1; r <= bottom; r++ {
		delete(s.grid, r)
	}
	s.markRangeDirty(top, bottom)
}

// scrollDown is the mirror of scrollUp: n new blank rows appear at the
// top of the margin region, the bottom n rows are discarded.
func (s *Screen) scrollDown(n int) {
	top, bottom := s.marginTop, s.marginBottom
	if n <= 0 || top >= bottom {
		return
	}
	newGrid := make(map[int]Line, len(s.grid))
	for r, line := range s.grid {
		if r < top || r > bottom {
			newGrid[r] = line
			continue
		}
		nr := r + n
		if nr <= bottom {
			newGrid[nr] = line
		}
	}
	s.grid = newGrid
	for r := top; r < top+n && r <= bottom; r++ {
		delete(s.grid, r)
	}
	s.markRangeDirty(top, bottom)
}

func (s *Screen) markRangeDirty(top, bottom int) {
	for r := top; r <= bottom; r++ {
		s.markDirty(r)
	}
}

// InsertLines implements IL: n blank lines at the cursor row, content
// below shifts down toward the bottom margin (overflow discarded).
func (s *Screen) InsertLines(n int) {
	if n < 1 {
		n = 1
	}
	if s.y < s.marginTop || s.y > s.marginBottom {
		return
	}
	savedTop := s.marginTop
	s.marginTop = s.y
	s.scrollDown(n)
	s.marginTop = savedTop
}

// DeleteLines implements DL: n lines removed at the cursor row, content
// below shifts up; blank lines appear at the bottom margin.
func (s *Screen) DeleteLines(n int) {
	if n < 1 {
		n = 1
	}
	if s.y < s.marginTop || s.y > s.marginBottom {
		return
	}
	savedTop := s.marginTop
	s.marginTop = s.y
	s.scrollUp(n)
	s.marginTop = savedTop
}

// insertCharactersAt implements the IRM shift used by Draw, and is
// reused by InsertCharacters (ICH).
func (s *Screen) insertCharactersAt(row, col, n int) {
	line := s.lineFor(row)
	for c := s.cols - 1; c >= col+n; c-- {
		if v, ok := line[c-n]; ok {
			line[c] = v
		} else {
			delete(line, c)
		}
	}
	for c := col; c < col+n && c < s.cols; c++ {
		line[c] = blankCell(s.attrs)
	}
}

// InsertCharacters implements ICH.
func (s *Screen) InsertCharacters(n int) {
	if n < 1 {
		n = 1
	}
	s.insertCharactersAt(s.y, s.x, n)
	s.markDirty(s.y)
}

// DeleteCharacters implements DCH: n chars removed at the cursor,
// remainder of the line shifts left.
func (s *Screen) DeleteCharacters(n int) {
	if n < 1 {
		n = 1
	}
	line := s.lineFor(s.y)
	for c := s.x; c < s.cols; c++ {
		src := c + n
		if src < s.cols {
			if v, ok := line[src]; ok {
				line[c] = v
			} else {
				delete(line, c)
			}
		} else {
			delete(line, c)
		}
	}
	s.markDirty(s.y)
}

// EraseCharacters implements ECH: n cells at the cursor become blank,
// without shifting anything.
func (s *Screen) EraseCharacters(n int) {
	if n < 1 {
		n = 1
	}
	line := s.lineFor(s.y)
	for c := s.x; c < s.x+n && c < s.cols; c++ {
		line[c] = blankCell(s.attrs)
	}
	s.markDirty(s.y)
}

// EraseInLine implements EL: 0=cursor to EOL, 1=BOL to cursor, 2=whole
// line.
func (s *Screen) EraseInLine(how int) {
	line := s.lineFor(s.y)
	switch how {
	case 0:
		for c := s.x; c < s.cols; c++ {
			line[c] = blankCell(s.attrs)
		}
	case 1:
		for c := 0; c <= s.x && c < s.cols; c++ {
			line[c] = blankCell(s.attrs)
		}
	case 2:
		for c := 0; c < s.cols; c++ {
			line[c] = blankCell(s.attrs)
		}
	}
	s.markDirty(s.y)
}

// EraseInDisplay implements ED: 0=cursor to end of screen, 1=start to
// cursor, 2 or 3=whole screen. Reproduces spec.md §9's documented
// off-by-one: mode 0/1 dirty the "other rows" range from this loop, then
// a *separate* EraseInLine(how) call marks the cursor row dirty, rather
// than one combined dirty-marking step.
func (s *Screen) EraseInDisplay(how int) {
	switch how {
	case 0:
		for r := s.y + 1; r < s.lines; r++ {
			s.grid[r] = make(Line, s.cols)
			s.markDirty(r)
		}
		s.EraseInLine(0)
	case 1:
		for r := 0; r < s.y; r++ {
			s.grid[r] = make(Line, s.cols)
			s.markDirty(r)
		}
		s.EraseInLine(1)
	case 2, 3:
		s.grid = make(map[int]Line, s.lines)
		s.markAllDirty()
		if how == 3 && s.onEraseScrollback != nil {
			s.onEraseScrollback()
		}
	}
}
