package dtdscan

// IntermediateStream sits between a raw Source and the declaration
// scanner (§4.1, "component A"). It lets the scanner read characters one
// at a time, back up over characters it has already read, and — the part
// a plain cursor can't do — splice replacement text into the stream mid-
// read when a parameter-entity reference expands, without losing track of
// the original source span a token came from.
//
// Internally it keeps a small buffer B and a head index h into it. h < |B|
// means the next character to read is already buffered (either because it
// was read and then backed over, or because it was spliced in by Push);
// h == |B| means the next character has to come from the wrapped Source.
// Content always reports the span of the *original, unexpanded* source
// consumed since the stream was constructed, because splicing never moves
// the source insertion point recorded in end.
type IntermediateStream struct {
	src   Source
	buf   []rune
	head  int
	start int
	end   int
}

// NewIntermediateStream wraps src, capturing its current insertion point
// as the start of the span a later Content call will report.
func NewIntermediateStream(src Source) *IntermediateStream {
	ip := src.InsertionPoint()
	return &IntermediateStream{src: src, start: ip, end: ip}
}

// Source returns the wrapped Source, for diagnostics (e.g. recovering
// line/column via a PositionedSource) that have no other reason to exist
// on IntermediateStream itself.
func (s *IntermediateStream) Source() Source { return s.src }

// Current returns the rune at head without consuming it, or (0, false) at
// end of input.
func (s *IntermediateStream) Current() (rune, bool) {
	if s.head < len(s.buf) {
		return s.buf[s.head], true
	}
	return s.src.Current()
}

// Next consumes the current rune and returns the new current rune. If
// head was at the buffer's end, the consumed character is first copied
// from the source into the buffer and the source is advanced past it,
// extending the span Content will report; otherwise head simply moves
// over an already-buffered character (one earlier read, or spliced in by
// Push) without touching the source at all.
func (s *IntermediateStream) Next() (rune, bool) {
	if s.head < len(s.buf) {
		s.head++
		return s.Current()
	}
	r, ok := s.src.Current()
	if !ok {
		return 0, false
	}
	s.buf = append(s.buf, r)
	s.src.Advance(1)
	s.end = s.src.InsertionPoint()
	s.head++
	return s.Current()
}

// Previous backs head up by one character and returns the rune that
// becomes current, or (0, false) if head was already zero. next()
// followed by previous() is always an identity: the character previous()
// uncovers is the one Next()'s caller just consumed, still sitting in B.
func (s *IntermediateStream) Previous() (rune, bool) {
	if s.head == 0 {
		return 0, false
	}
	s.head--
	return s.Current()
}

// Advance consumes up to n runes, stopping early at end of input.
func (s *IntermediateStream) Advance(n int) {
	for i := 0; i < n; i++ {
		if _, ok := s.Next(); !ok {
			return
		}
	}
}

// Push replaces the remove characters immediately before head with text,
// then positions head at the start of the inserted text so the next Next
// call reads its first character. remove is clamped to head: the scanner
// only ever un-reads characters it has itself just consumed (a "%name;"
// or "&name;" span), never characters still ahead of head.
func (s *IntermediateStream) Push(remove int, text string) {
	if remove > s.head {
		remove = s.head
	}
	spliceAt := s.head - remove
	repl := []rune(text)
	tail := make([]rune, len(s.buf)-s.head)
	copy(tail, s.buf[s.head:])
	head := make([]rune, spliceAt)
	copy(head, s.buf[:spliceAt])
	merged := make([]rune, 0, len(head)+len(repl)+len(tail))
	merged = append(merged, head...)
	merged = append(merged, repl...)
	merged = append(merged, tail...)
	s.buf = merged
	s.head = spliceAt
}

// ContinuesWith reports whether the upcoming characters starting at head
// spell word, without permanently consuming anything. It works by
// temporarily advancing through word via Next (which transparently pulls
// from the source if needed) and then backing up the same distance with
// Previous, so it shares exactly one read path with every other method on
// IntermediateStream instead of duplicating buffer-vs-source logic.
func (s *IntermediateStream) ContinuesWith(word string) bool {
	want := []rune(word)
	matched := 0
	ok := true
	for _, w := range want {
		c, has := s.Current()
		if !has || c != w {
			ok = false
			break
		}
		s.Next()
		matched++
	}
	for i := 0; i < matched; i++ {
		s.Previous()
	}
	return ok
}

// Content returns the original, unexpanded source text consumed since the
// stream was constructed (or since the caller last repositioned it with a
// fresh IntermediateStream). It is unaffected by any Push splices along
// the way.
func (s *IntermediateStream) Content() string {
	return s.src.Copy(s.start, s.end)
}
