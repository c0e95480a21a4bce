package screen

import "fmt"

// ReportDeviceAttributes implements DA, spec.md §4.3: writes "CSI ?6c" to
// the process input sink.
func (s *Screen) ReportDeviceAttributes(mode int) {
	if mode != 0 || s.sink == nil {
		return
	}
	fmt.Fprint(s.sink, "\x1b[?6c")
}

// ReportDeviceStatus implements DSR, spec.md §4.3: mode 5 reports "CSI
// 0n" (device OK); mode 6 reports the cursor position as "CSI y;xR",
// 1-based, origin-relative when DECOM is set.
func (s *Screen) ReportDeviceStatus(mode int) {
	if s.sink == nil {
		return
	}
	switch mode {
	case 5:
		fmt.Fprint(s.sink, "\x1b[0n")
	case 6:
		y, x := s.y, s.x
		if s.modes.has(ModeDECOM, true) {
			y -= s.marginTop
		}
		fmt.Fprintf(s.sink, "\x1b[%d;%dR", y+1, x+1)
	}
}
