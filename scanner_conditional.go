package dtdscan

import "github.com/heliotrope-xml/dtdscan/internal/icstack"

// scanConditionalOpen scans the opening of a conditional section, "<![
// INCLUDE [" or "<![ IGNORE [" (§4.3.3), only legal in an external
// subset. An INCLUDE section pushes a marker onto the scanner's stack and
// returns immediately so the outer Get loop resumes normal dispatch
// inside it; an IGNORE section is skipped in its entirety right here,
// since nothing inside one is ever tokenized.
func (s *Scanner) scanConditionalOpen() error {
	pos := s.position()
	st := s.stream
	st.Advance(3) // "<!["
	skipSpace(st)

	switch {
	case s.matchWord("INCLUDE"):
		st.Advance(len("INCLUDE"))
		skipSpace(st)
		c, ok := st.Current()
		if !ok || c != '[' {
			return &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "'[' expected after INCLUDE"}
		}
		st.Next()
		s.includes.Push(icstack.Marker{Kind: icstack.Include, Pos: pos.Offset})
		return nil
	case s.matchWord("IGNORE"):
		st.Advance(len("IGNORE"))
		skipSpace(st)
		c, ok := st.Current()
		if !ok || c != '[' {
			return &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "'[' expected after IGNORE"}
		}
		st.Next()
		return s.scanIgnoreSection(pos)
	default:
		return &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "expected INCLUDE or IGNORE after '<!['"}
	}
}

// scanIgnoreSection skips the body of an IGNORE conditional section. A
// nested "<![" (of either kind) increments depth and a nested "]]>"
// decrements it; the section ends when depth returns to zero. This keeps
// a nested INCLUDE or IGNORE section's own closing "]]>" from being
// mistaken for ours, which a simple "scan to the next ]]>" would get
// wrong on any input that nests conditional sections at all.
func (s *Scanner) scanIgnoreSection(pos Position) error {
	st := s.stream
	depth := 1
	for {
		c, ok := st.Current()
		if !ok {
			return &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "unterminated IGNORE conditional section"}
		}
		switch {
		case c == '<' && st.ContinuesWith("<!["):
			st.Advance(3)
			depth++
		case c == ']' && st.ContinuesWith("]]>"):
			st.Advance(3)
			depth--
			if depth == 0 {
				return nil
			}
		default:
			st.Next()
		}
	}
}
