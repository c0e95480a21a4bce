package main

import "github.com/charmbracelet/lipgloss"

// ansiPalette maps the recognized palette names the Emulator Facade's
// color_map (C5) produces to the classic 16-color Linux console RGB
// values (the actual VGA-text-mode palette TERM=linux describes),
// grounded on the teacher's ui/themes.go palette-as-a-map shape but with
// console-accurate values instead of the teacher's UI-chrome colors.
var ansiPalette = map[string]string{
	"black":   "000000",
	"red":     "aa0000",
	"green":   "00aa00",
	"yellow":  "aa5500",
	"blue":    "0000aa",
	"magenta": "aa00aa",
	"cyan":    "00aaaa",
	"white":   "aaaaaa",

	"bright-black":   "555555",
	"bright-red":     "ff5555",
	"bright-green":   "55ff55",
	"bright-yellow":  "ffff55",
	"bright-blue":    "5555ff",
	"bright-magenta": "ff55ff",
	"bright-cyan":    "55ffff",
	"bright-white":   "ffffff",
}

// Theme holds the demo host's own chrome colors (status line), separate
// from the terminal content palette above, mirroring the teacher's
// ui/themes.go Theme struct trimmed to what a one-pane host needs.
type Theme struct {
	Name         string
	StatusBarBG  lipgloss.Color
	StatusBarFG  lipgloss.Color
	StatusAccent lipgloss.Color
}

// Themes is the registry selected by config.Settings.Theme.
var Themes = map[string]Theme{
	"dark": {
		Name:         "dark",
		StatusBarBG:  lipgloss.Color("#313244"),
		StatusBarFG:  lipgloss.Color("#CDD6F4"),
		StatusAccent: lipgloss.Color("#7C3AED"),
	},
	"light": {
		Name:         "light",
		StatusBarBG:  lipgloss.Color("#E2E8F0"),
		StatusBarFG:  lipgloss.Color("#1E293B"),
		StatusAccent: lipgloss.Color("#7C3AED"),
	},
	"dracula": {
		Name:         "dracula",
		StatusBarBG:  lipgloss.Color("#44475A"),
		StatusBarFG:  lipgloss.Color("#F8F8F2"),
		StatusAccent: lipgloss.Color("#FF79C6"),
	},
	"nord": {
		Name:         "nord",
		StatusBarBG:  lipgloss.Color("#3B4252"),
		StatusBarFG:  lipgloss.Color("#ECEFF4"),
		StatusAccent: lipgloss.Color("#88C0D0"),
	},
	"solarized": {
		Name:         "solarized",
		StatusBarBG:  lipgloss.Color("#073642"),
		StatusBarFG:  lipgloss.Color("#EEE8D5"),
		StatusAccent: lipgloss.Color("#268BD2"),
	},
}

func themeFor(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["dark"]
}

func isHex6(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// resolveColor turns a color_map color name (standard/bright name or a
// bare 6-hex-digit truecolor string) into a lipgloss.Color, consulting
// the user's palette overrides (config.Settings.Palette) first.
func resolveColor(name string, overrides map[string]string) lipgloss.Color {
	if hex, ok := overrides[name]; ok {
		return lipgloss.Color(hex)
	}
	if hex, ok := ansiPalette[name]; ok {
		return lipgloss.Color("#" + hex)
	}
	if isHex6(name) {
		return lipgloss.Color("#" + name)
	}
	return lipgloss.Color("#aaaaaa")
}
