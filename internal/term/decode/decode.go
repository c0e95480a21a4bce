// Package decode implements the incremental byte-to-text decoder chain
// that sits in front of the VT stream parser (spec C1).
//
// Grounded on golang.org/x/text/encoding, the dependency
// danielgatis-go-headless-term pulls in for the same concern (its go.mod
// lists golang.org/x/text as an indirect dependency of go-vte/go-utf8).
// Rather than one fixed encoding, a Decoder tries a configurable list of
// (encoding, error-policy) pairs in order, falling back to the next entry
// whenever the current one reports a decode error on the chunk just fed.
// The last entry is always configured to be infallible.
package decode

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// leg is one entry in the fallback chain: a transformer and its name. A
// leg that fails on a chunk is Reset before the next leg is tried.
type leg struct {
	transform.Transformer
	name string
}

// Decoder is an incremental, never-fails byte decoder. It must not drop or
// duplicate any byte across calls to Feed; a partial multibyte sequence at
// the end of a chunk is buffered and completed by the next call.
type Decoder struct {
	legs    []leg
	pending []byte // undecoded bytes carried over from the previous Feed
}

// DefaultChain returns the decoder chain spec.md §4.1 names: strict UTF-8,
// then strict CP437, then UTF-8 with replacement (infallible).
func DefaultChain() *Decoder {
	d := New([]Encoding{
		{Encoding: unicode.UTF8, Name: "utf-8-strict"},
		{Encoding: charmap.CodePage437, Name: "cp437-strict"},
		{Encoding: unicode.UTF8, Name: "utf-8-replace"},
	})
	// unicode.UTF8's decoder substitutes U+FFFD for invalid input; the
	// strict leg validates instead, so invalid input fails over to CP437.
	d.legs[0].Transformer = encoding.UTF8Validator
	return d
}

// Encoding names one entry of the fallback chain.
type Encoding struct {
	encoding.Encoding
	Name string
}

// New builds a Decoder from an explicit chain. The caller is responsible
// for making the last entry infallible (unicode.UTF8 satisfies that: its
// decoder substitutes U+FFFD for invalid input instead of failing).
func New(chain []Encoding) *Decoder {
	legs := make([]leg, len(chain))
	for i, e := range chain {
		legs[i] = leg{Transformer: e.NewDecoder(), name: e.Name}
	}
	return &Decoder{legs: legs}
}

// Feed decodes p, trying each leg of the chain in order starting from the
// first. A leg that returns a non-transform.ErrShortSrc error is Reset
// and the next leg is tried on the same bytes. The final leg is assumed
// to never fail.
func (d *Decoder) Feed(p []byte) string {
	input := append(d.pending, p...)
	d.pending = nil

	for i := range d.legs {
		out, nSrc, err := d.tryLeg(i, input)
		if err == nil {
			d.pending = append(d.pending[:0], input[nSrc:]...)
			return out
		}
		// This leg choked on the chunk; reset it so a later Feed starts
		// the leg clean again, and try the next leg on the same bytes.
		d.legs[i].Reset()
	}

	// Unreachable if the chain's last leg is infallible, but never drop
	// bytes even if every leg returns an error.
	d.pending = nil
	return string(input)
}

// tryLeg runs one leg over input, consuming as much as it safely can.
// atEOF is always false: this Decoder feeds a live PTY stream that never
// ends, and transform.ErrShortSrc (the buffer-and-wait signal a trailing
// incomplete multibyte sequence needs) is only ever returned when atEOF
// is false. Passing true here would make the transform package treat a
// split lead byte as a hard decode error instead, handing it to the next
// leg in the chain rather than carrying it into d.pending.
// transform.ErrShortSrc means the tail is an incomplete multibyte
// sequence: that's success, with the incomplete tail left in d.pending.
func (d *Decoder) tryLeg(i int, input []byte) (string, int, error) {
	buf := make([]byte, len(input)*4+16)
	nDst, nSrc, err := d.legs[i].Transform(buf, input, false)
	if err == transform.ErrShortSrc {
		return string(buf[:nDst]), nSrc, nil
	}
	if err != nil {
		return "", 0, err
	}
	return string(buf[:nDst]), nSrc, nil
}
