package keyenc

import "strings"

// SplitPaste implements the supplemented bracketed-paste-aware paste
// feature (SPEC_FULL), grounded directly on
// original_source/sublime_terminal_buffer.py's TerminalViewPaste: pasted
// text is normalized (CRLF -> LF) and replayed through the same
// per-rune/per-control-key encoding a keypress would produce, so paste
// and typing share one code path. When bracketedPaste is set, the result
// is wrapped in the bracketed-paste start/end markers.
func SplitPaste(text string, bracketedPaste, appCursorMode bool) []byte {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []byte
	if bracketedPaste {
		start, _ := Encode("bracketed_paste_mode_start", Modifiers{}, appCursorMode)
		out = append(out, start...)
	}

	for _, r := range text {
		var key string
		switch r {
		case '\n', '\r':
			key = "enter"
		case '\t':
			key = "tab"
		default:
			key = string(r)
		}
		if b, err := Encode(key, Modifiers{}, appCursorMode); err == nil {
			out = append(out, b...)
		}
	}

	if bracketedPaste {
		end, _ := Encode("bracketed_paste_mode_end", Modifiers{}, appCursorMode)
		out = append(out, end...)
	}
	return out
}
