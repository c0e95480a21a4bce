package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vtembed/linuxterm/internal/keyenc"
)

// quitKey is the demo host's own escape hatch. Ctrl+C is deliberately
// left alone here and forwarded straight to the child process, the way
// every real terminal emulator treats it; a multiplexer product can
// afford to reserve Ctrl+C for itself, a single-pane terminal emulator
// cannot.
const quitKey = tea.KeyCtrlQ

// ctrlLetterKeys mirrors the teacher's keybytes.go switch: only the
// tea.KeyCtrl* constants that repo actually references, so this demo
// never reaches for a bubbletea constant no example in the pack proves
// exists.
var ctrlLetterKeys = map[tea.KeyType]string{
	tea.KeyCtrlA: "a", tea.KeyCtrlB: "b", tea.KeyCtrlC: "c", tea.KeyCtrlD: "d",
	tea.KeyCtrlE: "e", tea.KeyCtrlF: "f", tea.KeyCtrlG: "g", tea.KeyCtrlH: "h",
	tea.KeyCtrlJ: "j", tea.KeyCtrlK: "k", tea.KeyCtrlL: "l", tea.KeyCtrlN: "n",
	tea.KeyCtrlO: "o", tea.KeyCtrlP: "p", tea.KeyCtrlR: "r",
	tea.KeyCtrlS: "s", tea.KeyCtrlT: "t", tea.KeyCtrlU: "u", tea.KeyCtrlV: "v",
	tea.KeyCtrlW: "w", tea.KeyCtrlX: "x", tea.KeyCtrlY: "y", tea.KeyCtrlZ: "z",
}

var namedKeys = map[tea.KeyType]string{
	tea.KeyEnter:     "enter",
	tea.KeyBackspace: "backspace",
	tea.KeyTab:       "tab",
	tea.KeySpace:     "space",
	tea.KeyEsc:       "escape",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pageup",
	tea.KeyPgDown:    "pagedown",
	tea.KeyDelete:    "delete",
}

// encodeKey converts one Bubbletea key event into the byte sequence the
// PTY Endpoint (C6) should receive, via the Key Encoder (C7). ok is false
// for events the encoder has nothing sensible to do with (mouse-only
// modifiers, unrecognized function keys, ...).
func encodeKey(msg tea.KeyMsg, appCursorMode bool) ([]byte, bool) {
	if letter, isCtrl := ctrlLetterKeys[msg.Type]; isCtrl {
		b, err := keyenc.Encode(letter, keyenc.Modifiers{Ctrl: true, Alt: msg.Alt}, appCursorMode)
		return b, err == nil
	}

	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) == 0 {
			return nil, false
		}
		b, err := keyenc.Encode(string(msg.Runes[0]), keyenc.Modifiers{Alt: msg.Alt}, appCursorMode)
		return b, err == nil
	}

	if name, ok := namedKeys[msg.Type]; ok {
		b, err := keyenc.Encode(name, keyenc.Modifiers{Alt: msg.Alt}, appCursorMode)
		return b, err == nil
	}

	return nil, false
}
