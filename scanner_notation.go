package dtdscan

// scanNotationDecl scans "<!NOTATION Name ExternalID>" (§4.3.6). Unlike an
// entity or an external subset's ExternalID, a notation's PUBLIC form may
// omit the trailing system literal entirely.
func (s *Scanner) scanNotationDecl() (Token, error) {
	pos := s.position()
	st := s.stream
	st.Advance(len("<!NOTATION"))
	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "space required after '<!NOTATION'"}
	}
	skipSpace(st)

	name, err := s.scanDeclName()
	if err != nil {
		return nil, &FatalError{Code: CodeDtdNameInvalid, Pos: pos, Msg: "notation name: " + err.Error()}
	}

	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "space required after notation name"}
	}
	skipSpace(st)

	tok := NotationDecl{tokenBase: tokenBase{pos}, Name: name}

	switch {
	case s.matchWord("SYSTEM"):
		st.Advance(len("SYSTEM"))
		if !requireSpace(st) {
			return nil, &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "space required after SYSTEM"}
		}
		skipSpace(st)
		sysID, err := s.scanSystemLiteral()
		if err != nil {
			s.sink(RecoverableError{Code: CodeNotationSystemInvalid, Pos: s.position(), Msg: err.Error()})
		} else {
			tok.SystemID = sysID
		}

	case s.matchWord("PUBLIC"):
		st.Advance(len("PUBLIC"))
		if !requireSpace(st) {
			return nil, &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "space required after PUBLIC"}
		}
		skipSpace(st)
		pubID, err := s.scanPubidLiteral()
		if err != nil {
			s.sink(RecoverableError{Code: CodeNotationPublicInvalid, Pos: s.position(), Msg: err.Error()})
		} else {
			tok.PublicID = pubID
		}
		skipSpace(st)
		if c, ok := st.Current(); ok && (c == '"' || c == '\'') {
			sysID, err := s.scanSystemLiteral()
			if err != nil {
				s.sink(RecoverableError{Code: CodeNotationSystemInvalid, Pos: s.position(), Msg: err.Error()})
			} else {
				tok.SystemID = sysID
			}
		}

	default:
		return nil, &FatalError{Code: CodeDtdInvalid, Pos: pos, Msg: "expected SYSTEM or PUBLIC in notation declaration"}
	}

	skipSpace(st)
	c, ok := st.Current()
	switch {
	case !ok:
		return nil, &FatalError{Code: CodeEOF, Pos: pos, Msg: "unterminated notation declaration"}
	case c == '>':
		st.Next()
	default:
		s.sink(RecoverableError{Code: CodeInputUnexpected, Pos: s.position(), Msg: "unexpected content before '>' in notation declaration"})
		s.skipToGt()
	}

	return tok, nil
}
