package screen

import "fmt"

// standardNames maps SGR 30-37/40-47 offsets (0-7) to the recognized
// palette's named colors, and 90-97/100-107 to their "bright-" variants.
// Grounded on the teacher's screen.go handleSGR switch (30-37/40-47
// "standard", 90-97/100-107 "bright"), generalized to names per spec.md
// §3's "color name from the recognized palette" data model instead of
// the teacher's packed ints.
var standardNames = [8]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

func standardColorName(offset int) string {
	if offset < 0 || offset > 7 {
		return DefaultColor
	}
	return standardNames[offset]
}

func brightColorName(offset int) string {
	if offset < 0 || offset > 7 {
		return DefaultColor
	}
	return "bright-" + standardNames[offset]
}

// xterm256 holds the 256-color xterm palette as 6-hex-digit RGB strings:
// 0-15 the standard/bright 16, 16-231 the 6x6x6 color cube, 232-255 the
// grayscale ramp. Computed once; shared read-only, per §9's note on
// static lookup tables.
var xterm256 = buildXterm256()

func buildXterm256() [256]string {
	var t [256]string
	base16 := [16]string{
		"000000", "800000", "008000", "808000", "000080", "800080", "008080", "c0c0c0",
		"808080", "ff0000", "00ff00", "ffff00", "0000ff", "ff00ff", "00ffff", "ffffff",
	}
	for i := 0; i < 16; i++ {
		t[i] = base16[i]
	}
	levels := [6]int{0, 95, 135, 175, 215, 255}
	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				t[idx] = fmt.Sprintf("%02x%02x%02x", levels[r], levels[g], levels[b])
				idx++
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := 8 + i*10
		t[232+i] = fmt.Sprintf("%02x%02x%02x", v, v, v)
	}
	return t
}

// palette256 maps a 0-255 index (as carried by SGR 38;5;N / 48;5;N) to
// its 6-hex-digit RGB string.
func palette256(n int) string {
	if n < 0 || n > 255 {
		return DefaultColor
	}
	return xterm256[n]
}

// rgbHex formats 24-bit truecolor components (SGR 38;2;r;g;b) as a
// 6-hex-digit string, per spec.md §3.
func rgbHex(r, g, b int) string {
	return fmt.Sprintf("%02x%02x%02x", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// CoalesceBG maps the "default" sentinel to the renderer baseline
// background, per spec.md §4.5's color_map rule. Exported for the
// Emulator Facade (C5), which applies it while scanning cells for
// color_map.
func CoalesceBG(c string) string {
	if c == DefaultColor || c == "" {
		return "black"
	}
	return c
}

// CoalesceFG maps the "default" sentinel to the renderer baseline
// foreground, per spec.md §4.5's color_map rule.
func CoalesceFG(c string) string {
	if c == DefaultColor || c == "" {
		return "white"
	}
	return c
}
