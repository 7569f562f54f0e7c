package dtdscan

import (
	"github.com/lestrrat-go/strcursor"
)

// Source is the character-stream decoder this tokenizer is layered over
// (§6, "consumed interface: Source"). Decoding bytes to characters,
// detecting an encoding, and fetching external entities over the network
// or filesystem are all out of scope for this package; a Source is
// expected to have already done that and simply hand back runes.
type Source interface {
	// Current returns the rune at the read position without consuming it,
	// or (0, false) at end of input.
	Current() (rune, bool)
	// Advance consumes n runes.
	Advance(n int)
	// InsertionPoint returns an opaque, monotonically increasing ordinal
	// for the current read position. Two insertion points obtained from
	// the same Source bracket a span Copy can later recover.
	InsertionPoint() int
	// Copy returns the substring of the underlying source between two
	// insertion points previously obtained from InsertionPoint.
	Copy(start, end int) string
}

// PositionedSource is an optional capability a Source may implement to
// support human-readable diagnostics. A Source that doesn't implement it
// still works; Token.Position().Line and .Column are simply left at zero.
type PositionedSource interface {
	Line() int
	Column() int
}

// cursorSource is the default Source, wrapping strcursor.Cursor the way
// the teacher repository's parser context does (parserctx.go), but
// exposing only the narrow surface this package's Source interface needs.
type cursorSource struct {
	cur  *strcursor.Cursor
	orig []byte
}

// NewByteSliceSource returns a Source that reads UTF-8 bytes already
// decoded and available in memory. This is the common case for a DTD
// subset, which a caller has typically already extracted as a contiguous
// byte range from its containing document.
func NewByteSliceSource(b []byte) Source {
	return &cursorSource{cur: strcursor.New(b), orig: b}
}

func (s *cursorSource) Current() (rune, bool) {
	if !s.cur.HasChars(1) {
		return 0, false
	}
	return s.cur.Peek(1), true
}

func (s *cursorSource) Advance(n int) {
	s.cur.Advance(n)
}

func (s *cursorSource) InsertionPoint() int {
	return s.cur.OffsetBytes()
}

func (s *cursorSource) Copy(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.orig) {
		end = len(s.orig)
	}
	if start >= end {
		return ""
	}
	return string(s.orig[start:end])
}

func (s *cursorSource) Line() int   { return s.cur.LineNumber() }
func (s *cursorSource) Column() int { return s.cur.Column() }
