package screen

// SelectGraphicRendition implements SGR, spec.md §4.3: accumulates into
// the cursor's drawing attrs. Empty or (0,) resets. Grounded on the
// teacher's handleSGR/parseSGRColor switch, generalized to the
// string-keyed color model.
func (s *Screen) SelectGraphicRendition(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			s.attrs = defaultAttrs
		case p == 1:
			s.attrs.Bold = true
		case p == 3:
			s.attrs.Italic = true
		case p == 4:
			s.attrs.Underscore = true
		case p == 7:
			s.attrs.Reverse = true
		case p == 9:
			s.attrs.Strikethrough = true
		case p == 22:
			s.attrs.Bold = false
		case p == 23:
			s.attrs.Italic = false
		case p == 24:
			s.attrs.Underscore = false
		case p == 27:
			s.attrs.Reverse = false
		case p == 29:
			s.attrs.Strikethrough = false
		case p >= 30 && p <= 37:
			s.attrs.FG = standardColorName(p - 30)
		case p == 38:
			i = s.parseExtendedColor(params, i, true)
		case p == 39:
			s.attrs.FG = DefaultColor
		case p >= 40 && p <= 47:
			s.attrs.BG = standardColorName(p - 40)
		case p == 48:
			i = s.parseExtendedColor(params, i, false)
		case p == 49:
			s.attrs.BG = DefaultColor
		case p >= 90 && p <= 97:
			s.attrs.FG = brightColorName(p - 90)
			s.attrs.Bold = true
		case p >= 100 && p <= 107:
			s.attrs.BG = brightColorName(p - 100)
			s.attrs.Bold = true
		}
		i++
	}
}

// parseExtendedColor handles "38;5;N" (256-palette) and "38;2;R;G;B"
// (24-bit truecolor), returning the index to resume scanning from.
func (s *Screen) parseExtendedColor(params []int, i int, fg bool) int {
	if i+1 >= len(params) {
		return i
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			c := palette256(params[i+2])
			if fg {
				s.attrs.FG = c
			} else {
				s.attrs.BG = c
			}
			return i + 2
		}
	case 2:
		if i+4 < len(params) {
			c := rgbHex(params[i+2], params[i+3], params[i+4])
			if fg {
				s.attrs.FG = c
			} else {
				s.attrs.BG = c
			}
			return i + 4
		}
	}
	return i + 1
}
