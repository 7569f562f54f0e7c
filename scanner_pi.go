package dtdscan

import (
	"strings"
	"unicode"
)

// scanPI scans "<?Target Content?>" (§4.3.1). When Target is "xml",
// case-insensitively, and this is the first token of an external subset,
// it instead dispatches to scanTextDecl: a text declaration is only legal
// there, never as a general processing instruction elsewhere in the
// subset.
func (s *Scanner) scanPI() (Token, error) {
	pos := s.position()
	st := s.stream
	st.Advance(2) // "<?"

	target, err := readXMLName(st)
	if err != nil {
		return nil, &FatalError{Code: CodeXmlInvalidPI, Pos: pos, Msg: "processing instruction target: " + err.Error()}
	}

	if strings.EqualFold(target, "xml") && s.external && !s.seenToken {
		return s.scanTextDecl(pos)
	}

	if st.ContinuesWith("?>") {
		st.Advance(2)
		return PI{tokenBase{pos}, target, ""}, nil
	}

	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeXmlInvalidPI, Pos: pos, Msg: "space required after processing instruction target"}
	}
	skipSpace(st)

	var b strings.Builder
	for {
		c, ok := st.Current()
		if !ok {
			return nil, &FatalError{Code: CodeEOF, Pos: pos, Msg: "unterminated processing instruction"}
		}
		if c == '?' && st.ContinuesWith("?>") {
			st.Advance(2)
			return PI{tokenBase{pos}, target, b.String()}, nil
		}
		if !IsXMLChar(c) {
			return nil, &FatalError{Code: CodeXmlInvalidPI, Pos: pos, Msg: "invalid character in processing instruction"}
		}
		b.WriteRune(c)
		st.Next()
	}
}

// scanTextDecl scans the pseudo-attributes of "<?xml version="1.0"
// encoding="..."?>" (§3, TextDecl). Target and the leading "<?" have
// already been consumed; pos is the position of the opening "<?".
func (s *Scanner) scanTextDecl(pos Position) (Token, error) {
	st := s.stream
	skipSpace(st)

	var version, encoding string
	if st.ContinuesWith("version") {
		v, err := s.scanPseudoAttr("version", isVersionChar)
		if err != nil {
			return nil, err
		}
		version = v
		skipSpace(st)
	}
	if st.ContinuesWith("encoding") {
		e, err := s.scanPseudoAttr("encoding", isEncodingChar)
		if err != nil {
			return nil, err
		}
		encoding = e
		skipSpace(st)
	}

	if !st.ContinuesWith("?>") {
		return nil, &FatalError{Code: CodeXmlInvalidPI, Pos: pos, Msg: "text declaration not closed with '?>'"}
	}
	st.Advance(2)
	return TextDecl{tokenBase{pos}, version, encoding}, nil
}

// scanPseudoAttr reads `name="value"` or `name='value'`, validating each
// value character with ok(char, indexWithinValue).
func (s *Scanner) scanPseudoAttr(name string, ok func(c rune, idx int) bool) (string, error) {
	st := s.stream
	st.Advance(len(name))
	skipSpace(st)

	c, has := st.Current()
	if !has || c != '=' {
		return "", &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: "'=' required after '" + name + "'"}
	}
	st.Next()
	skipSpace(st)

	q, has := st.Current()
	if !has || (q != '"' && q != '\'') {
		return "", &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: name + " value must be quoted"}
	}
	st.Next()

	var b strings.Builder
	idx := 0
	for {
		c, has := st.Current()
		if !has {
			return "", &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated " + name}
		}
		if c == q {
			st.Next()
			return b.String(), nil
		}
		if !ok(c, idx) {
			return "", &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: "invalid character in " + name}
		}
		b.WriteRune(c)
		idx++
		st.Next()
	}
}

func isVersionChar(c rune, _ int) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

func isEncodingChar(c rune, idx int) bool {
	if idx == 0 {
		return unicode.IsLetter(c)
	}
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '.' || c == '_' || c == '-'
}
