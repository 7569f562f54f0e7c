package dtdscan

import "strings"

// scanComment scans "<!-- ... -->" (§4.3.2). A literal "--" inside the
// comment body is a CommentEndedUnexpected error, per the XML
// Recommendation's prohibition on "--" appearing anywhere in a comment
// except as part of the closing "-->".
func (s *Scanner) scanComment() (Token, error) {
	pos := s.position()
	st := s.stream
	st.Advance(4) // "<!--"

	var b strings.Builder
	for {
		c, ok := st.Current()
		if !ok {
			return nil, &FatalError{Code: CodeEOF, Pos: pos, Msg: "unterminated comment"}
		}
		if !IsXMLChar(c) {
			return nil, &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "invalid character in comment"}
		}
		if c == '-' && st.ContinuesWith("--") {
			st.Advance(2)
			cc, ok := st.Current()
			if !ok || cc != '>' {
				return nil, &FatalError{Code: CodeCommentEndedUnexpected, Pos: pos, Msg: "'--' is not allowed inside a comment"}
			}
			st.Next()
			return Comment{tokenBase{pos}, b.String()}, nil
		}
		b.WriteRune(c)
		st.Next()
	}
}
