// Package term holds the VT/ANSI terminal emulator: byte decoding, escape
// sequence parsing, the screen model and its scrollback history, and the
// facade that glues them together for a PTY session.
package term

import "log"

// Logger is a minimal diagnostic sink; none of the term subpackages takes
// or calls one. The zero value of StdLogger satisfies it with plain
// log.Printf, matching the bare log.Println calls the teacher used
// throughout session.go and main.go. NopLogger{} discards everything.
type Logger interface {
	Logf(format string, args ...interface{})
}

// StdLogger adapts the standard library logger to Logger.
type StdLogger struct{}

func (StdLogger) Logf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NopLogger discards everything logged through it.
type NopLogger struct{}

func (NopLogger) Logf(string, ...interface{}) {}
