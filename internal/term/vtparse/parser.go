// Package vtparse implements the VT stream parser (spec C2): a finite
// state machine that turns decoded text into dispatched events against a
// Handler.
//
// Grounded on the teacher's internal/terminal/screen_parser.go
// (processByte/processNormal/processESC/processCSI/processOSC), generalized
// per spec.md §4.2/§9: instead of mutating a *Screen directly, Parser
// dispatches through the Handler interface so the screen model lives in
// its own package and the parser stays a pure, suspendable state machine
// ("a stateful struct with a Step method that owns its own mode/param/
// private/current-digits buffer", §9).
package vtparse

// Handler receives parser events in strict input order. Screen (and its
// History wrapper) implements this interface.
type Handler interface {
	// C0 controls
	Bell()
	Backspace()
	Tab()
	Linefeed()
	CarriageReturn()
	ShiftOut()
	ShiftIn()

	// ESC-prefixed simple sequences
	Reset()
	Index()
	NextLine()
	ReverseIndex()
	SetTabStop()
	SaveCursor()
	RestoreCursor()
	AlignmentDisplay()       // ESC # 8 (DECALN)
	DesignateCharset(slot int, charset byte) // ESC ( / ESC ) <c>

	// CSI-dispatched sequences. final is the terminating byte; params is
	// the parsed, defaulted parameter list; private is true when the
	// sequence carried a leading '?'.
	CSIDispatch(final byte, params []int, private bool)

	// Printable text
	Draw(r rune)

	// OSC payload (ESC ] ... BEL|ST). Supplemented feature: window-title
	// capture via OSC 0/2, per SPEC_FULL's "window-title capture" entry.
	OSCDispatch(payload string)

	// Anything the parser doesn't recognize.
	Debug(seq string)
}

// state is the parser's current lexical mode.
type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate // ESC # or ESC % or ESC ( or ESC )
	stateCSIParam
	stateOSC
)

const maxParams = 16 // CSI sequences with more params than this are still parsed, extras are dropped per spec's defensive parsing

// Parser is a single-character-at-a-time VT stream FSM. It holds no
// reference to any Screen; it only knows how to turn runes into Handler
// calls in strict order.
type Parser struct {
	h Handler

	state state

	// CSI accumulation
	params    []int
	curParam  int
	paramSeen bool
	private   bool
	csiSeq    []byte // raw bytes collected so far; used to recognize a leading '?'

	escIntermediate byte // '#', '%', '(', or ')'

	oscBuf []byte
}

// New creates a Parser dispatching to h.
func New(h Handler) *Parser {
	return &Parser{h: h, params: make([]int, 0, maxParams)}
}

// Step feeds one decoded rune into the parser. Call it once per rune of
// the text produced by decode.Decoder.Feed, in order.
func (p *Parser) Step(r rune) {
	switch p.state {
	case stateGround:
		p.stepGround(r)
	case stateEscape:
		p.stepEscape(r)
	case stateEscapeIntermediate:
		p.stepEscapeIntermediate(r)
	case stateCSIParam:
		p.stepCSIParam(r)
	case stateOSC:
		p.stepOSC(r)
	}
}

// StepString feeds a whole decoded string, in rune order.
func (p *Parser) StepString(s string) {
	for _, r := range s {
		p.Step(r)
	}
}

func (p *Parser) stepGround(r rune) {
	switch r {
	case 0x1b: // ESC
		p.state = stateEscape
	case 0x07: // BEL
		p.h.Bell()
	case 0x08: // BS
		p.h.Backspace()
	case 0x09: // HT
		p.h.Tab()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		p.h.Linefeed()
	case 0x0d: // CR
		p.h.CarriageReturn()
	case 0x0e: // SO
		p.h.ShiftOut()
	case 0x0f: // SI
		p.h.ShiftIn()
	case 0x9b: // single-byte CSI introducer
		p.beginCSI()
	default:
		if r >= 0x20 {
			p.h.Draw(r)
		}
		// other C0 controls are silently ignored at ground state
	}
}

func (p *Parser) stepEscape(r rune) {
	switch r {
	case '[':
		p.beginCSI()
	case ']':
		p.oscBuf = p.oscBuf[:0]
		p.state = stateOSC
	case '#', '%', '(', ')':
		p.escIntermediate = byte(r)
		p.state = stateEscapeIntermediate
	case 'c':
		p.h.Reset()
		p.state = stateGround
	case 'D':
		p.h.Index()
		p.state = stateGround
	case 'E':
		p.h.NextLine()
		p.state = stateGround
	case 'M':
		p.h.ReverseIndex()
		p.state = stateGround
	case 'H':
		p.h.SetTabStop()
		p.state = stateGround
	case '7':
		p.h.SaveCursor()
		p.state = stateGround
	case '8':
		p.h.RestoreCursor()
		p.state = stateGround
	default:
		p.h.Debug("ESC " + string(r))
		p.state = stateGround
	}
}

func (p *Parser) stepEscapeIntermediate(r rune) {
	switch p.escIntermediate {
	case '#':
		if r == '8' {
			p.h.AlignmentDisplay()
		} else {
			p.h.Debug("ESC # " + string(r))
		}
	case '%':
		// charset_utf8 / charset_default: accepted, no screen-visible effect
		// beyond selecting decoder mode, which lives above the parser.
	case '(':
		p.h.DesignateCharset(0, byte(r))
	case ')':
		p.h.DesignateCharset(1, byte(r))
	}
	p.state = stateGround
}

func (p *Parser) beginCSI() {
	p.state = stateCSIParam
	p.params = p.params[:0]
	p.curParam = 0
	p.paramSeen = false
	p.private = false
	p.csiSeq = p.csiSeq[:0]
}

func (p *Parser) stepCSIParam(r rune) {
	switch {
	case r == '?' && len(p.csiSeq) == 0:
		p.private = true
	case r >= '0' && r <= '9':
		p.curParam = p.curParam*10 + int(r-'0')
		if p.curParam > 9999 {
			p.curParam = 9999
		}
		p.paramSeen = true
	case r == ';':
		p.pushParam()
	case r == 0x18 || r == 0x1a: // CAN / SUB abort to draw-the-substitute
		p.h.Draw(0xFFFD)
		p.state = stateGround
		return
	case r == 0x20 || r == '>' || r == '=' || r == '!':
		// SP and secondary-DA / other modifiers: silently ignored
	case r >= 0x08 && r <= 0x0d:
		// Embedded C0 flushed through C0 dispatch mid-sequence.
		p.dispatchEmbeddedC0(byte(r))
		return
	case r >= 0x40 && r <= 0x7e:
		if p.paramSeen || len(p.params) > 0 {
			p.pushParam()
		}
		p.h.CSIDispatch(byte(r), append([]int(nil), p.params...), p.private)
		p.state = stateGround
		return
	}
	p.csiSeq = append(p.csiSeq, byte(r))
}

// stepOSC collects an OSC payload until BEL or ESC (treated as the start
// of a String Terminator, ESC \), matching the teacher's processOSC.
func (p *Parser) stepOSC(r rune) {
	switch r {
	case 0x07:
		p.h.OSCDispatch(string(p.oscBuf))
		p.state = stateGround
	case 0x1b:
		p.h.OSCDispatch(string(p.oscBuf))
		p.state = stateEscape
	default:
		p.oscBuf = append(p.oscBuf, byte(r))
	}
}

func (p *Parser) dispatchEmbeddedC0(b byte) {
	switch b {
	case 0x07:
		p.h.Bell()
	case 0x08:
		p.h.Backspace()
	case 0x09:
		p.h.Tab()
	case 0x0a, 0x0b, 0x0c:
		p.h.Linefeed()
	case 0x0d:
		p.h.CarriageReturn()
	}
}

// pushParam finalizes the parameter currently being accumulated. An empty
// field defaults to 0, per spec.md §4.2.
func (p *Parser) pushParam() {
	if len(p.params) < maxParams {
		p.params = append(p.params, p.curParam)
	}
	p.curParam = 0
	p.paramSeen = false
}
