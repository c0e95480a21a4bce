package screen

// Mode codes, spec.md §3/§9. The source distinguishes public and private
// SM/RM codes by bit-shifting the private ones by 5; we keep the same
// semantics with a sum-type key instead (§9 explicitly allows either),
// since several private codes (2004 bracketed-paste) are far too large
// to use directly as a bit index.
const (
	ModeIRM    = 4  // public: insert/replace
	ModeLNM    = 20 // public: linefeed/newline

	ModeDECCKM         = 1 // private: cursor-key application mode (tracked, not wired to a behavior here)
	ModeDECCOLM        = 3 // private: 80/132 column toggle
	ModeDECSCNM        = 5 // private: screen reverse video
	ModeDECOM          = 6 // private: origin mode
	ModeDECAWM         = 7 // private: auto-wrap
	ModeDECTCEM        = 25   // private: cursor visible
	ModeBracketedPaste = 2004 // private: bracketed paste
)

// modeKey tags a mode code with whether it came from a private (leading
// '?') CSI sequence, so numerically colliding public/private codes never
// alias each other.
type modeKey struct {
	code    int
	private bool
}

// modeSet is the "set of active mode bits" of spec.md §3.
type modeSet map[modeKey]struct{}

func newModeSet() modeSet {
	return modeSet{
		{ModeDECAWM, true}:  {},
		{ModeDECTCEM, true}: {},
	}
}

func (m modeSet) set(code int, private bool) {
	m[modeKey{code, private}] = struct{}{}
}

func (m modeSet) reset(code int, private bool) {
	delete(m, modeKey{code, private})
}

func (m modeSet) has(code int, private bool) bool {
	_, ok := m[modeKey{code, private}]
	return ok
}
