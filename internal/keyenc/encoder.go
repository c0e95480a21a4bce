// Package keyenc implements the Key Encoder (spec C7): a pure mapping
// from a named key plus modifier flags to the raw byte sequence a PTY's
// child process expects to read.
//
// Grounded on the teacher's internal/app/keybytes.go (a bubbletea
// tea.KeyMsg -> []byte switch), generalized from bubbletea's key-type
// enum to spec.md §4.7's named-key + Modifiers contract and its exact
// byte tables (which differ from the teacher's own shortcuts in a few
// places — e.g. home/end use `ESC [ 1~` / `ESC [ 4~` here, not the
// teacher's `ESC [ H` / `ESC [ F`).
package keyenc

import (
	"errors"
	"fmt"
)

const esc = 0x1b

// Modifiers mirrors spec.md §4.7's (ctrl, alt, shift, meta) tuple.
type Modifiers struct {
	Ctrl, Alt, Shift, Meta bool
}

// ErrMetaUnsupported is returned for any key pressed with Meta held,
// spec.md §4.7: "Meta: unsupported (caller is informed)."
var ErrMetaUnsupported = errors.New("keyenc: meta modifier is not supported")

// Encode implements spec.md §4.7's pure mapping. key names follow the
// spec's vocabulary: "enter", "backspace", "tab", "space", "escape",
// "up"/"down"/"left"/"right", "home", "end", "pageup", "pagedown",
// "delete", "insert", "f1".."f12" (only f1-f10,f12 are named by the
// table), "bracketed_paste_mode_start"/"_end", or a single printable
// character.
func Encode(key string, mods Modifiers, appCursorMode bool) ([]byte, error) {
	if mods.Meta {
		return nil, ErrMetaUnsupported
	}

	if mods.Alt {
		if arrow, ok := arrowByte(key); ok {
			return []byte{esc, '[', '1', ';', '3', arrow}, nil
		}
		rest, err := Encode(key, Modifiers{Ctrl: mods.Ctrl, Shift: mods.Shift}, appCursorMode)
		if err != nil {
			return nil, err
		}
		return append([]byte{esc}, rest...), nil
	}

	if mods.Ctrl {
		if arrow, ok := arrowByte(key); ok {
			return []byte{esc, '[', '1', ';', '5', arrow}, nil
		}
		if b, ok := ctrlByte(key); ok {
			return []byte{b}, nil
		}
	}

	return plainEncode(key, appCursorMode)
}

func arrowByte(key string) (byte, bool) {
	switch key {
	case "up":
		return 'A', true
	case "down":
		return 'B', true
	case "right":
		return 'C', true
	case "left":
		return 'D', true
	}
	return 0, false
}

// ctrlByte implements spec.md §4.7's "Ctrl + letter a-z -> 0x01..0x1A"
// plus the named punctuation mappings. Only single-rune keys apply.
func ctrlByte(key string) (byte, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 1, true
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 1, true
	}
	switch c {
	case '@', '`':
		return 0x00, true
	case '[', '{':
		return 0x1b, true
	case '\\', '|':
		return 0x1c, true
	case ']', '}':
		return 0x1d, true
	case '^', '~':
		return 0x1e, true
	case '_':
		return 0x1f, true
	case '?':
		return 0x7f, true
	}
	return 0, false
}

func plainEncode(key string, appCursorMode bool) ([]byte, error) {
	switch key {
	case "enter":
		return []byte{'\r'}, nil
	case "backspace":
		return []byte{0x7f}, nil
	case "tab":
		return []byte{'\t'}, nil
	case "space":
		return []byte{' '}, nil
	case "escape":
		return []byte{esc}, nil
	case "up", "down", "right", "left":
		arrow, _ := arrowByte(key)
		if appCursorMode {
			return []byte{esc, 'O', arrow}, nil
		}
		return []byte{esc, '[', arrow}, nil
	case "home":
		return []byte{esc, '[', '1', '~'}, nil
	case "end":
		return []byte{esc, '[', '4', '~'}, nil
	case "pageup":
		return []byte{esc, '[', '5', '~'}, nil
	case "pagedown":
		return []byte{esc, '[', '6', '~'}, nil
	case "delete":
		return []byte{esc, '[', '3', '~'}, nil
	case "insert":
		return []byte{esc, '[', '2', '~'}, nil
	case "f1":
		return []byte{esc, 'O', 'P'}, nil
	case "f2":
		return []byte{esc, 'O', 'Q'}, nil
	case "f3":
		return []byte{esc, 'O', 'R'}, nil
	case "f4":
		return []byte{esc, 'O', 'S'}, nil
	case "f5":
		return []byte{esc, '[', '1', '5', '~'}, nil
	case "f6":
		return []byte{esc, '[', '1', '7', '~'}, nil
	case "f7":
		return []byte{esc, '[', '1', '8', '~'}, nil
	case "f8":
		return []byte{esc, '[', '1', '9', '~'}, nil
	case "f9":
		return []byte{esc, '[', '2', '0', '~'}, nil
	case "f10":
		return []byte{esc, '[', '2', '1', '~'}, nil
	case "f12":
		return []byte{esc, '[', '2', '4', '~'}, nil
	case "bracketed_paste_mode_start":
		return []byte{esc, '[', '2', '0', '0', '~'}, nil
	case "bracketed_paste_mode_end":
		return []byte{esc, '[', '2', '0', '1', '~'}, nil
	}

	runes := []rune(key)
	if len(runes) == 1 {
		return []byte(key), nil
	}
	return nil, fmt.Errorf("keyenc: unrecognized key %q", key)
}
