package dtdscan

// scanEntityDecl scans "<!ENTITY Name EntityDef>" or "<!ENTITY % Name
// PEDef>" (§4.3.4).
func (s *Scanner) scanEntityDecl() (Token, error) {
	pos := s.position()
	st := s.stream
	st.Advance(len("<!ENTITY"))

	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeDtdEntityInvalid, Pos: pos, Msg: "space required after '<!ENTITY'"}
	}
	skipSpace(st)

	isParameter := false
	if c, ok := st.Current(); ok && c == '%' {
		st.Next()
		if !requireSpace(st) {
			return nil, &FatalError{Code: CodeDtdEntityInvalid, Pos: pos, Msg: "space required after '%' in parameter entity declaration"}
		}
		isParameter = true
		skipSpace(st)
	}

	name, err := s.scanDeclName()
	if err != nil {
		return nil, &FatalError{Code: CodeDtdNameInvalid, Pos: pos, Msg: "entity name: " + err.Error()}
	}

	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeDtdEntityInvalid, Pos: pos, Msg: "space required after entity name"}
	}
	skipSpace(st)

	tok := EntityDecl{tokenBase: tokenBase{pos}, Name: name, IsParameter: isParameter}

	c, ok := st.Current()
	if !ok {
		return nil, &FatalError{Code: CodeEOF, Pos: pos, Msg: "unterminated entity declaration"}
	}

	switch {
	case c == '"' || c == '\'':
		value, err := s.scanLiteralWithExpansion(false)
		if err != nil {
			return nil, err
		}
		tok.Value = value
		tok.HasValue = true

	case s.matchWord("SYSTEM"):
		st.Advance(len("SYSTEM"))
		if !requireSpace(st) {
			return nil, &FatalError{Code: CodeDtdEntityInvalid, Pos: pos, Msg: "space required after SYSTEM"}
		}
		skipSpace(st)
		sysID, err := s.scanSystemLiteral()
		if err != nil {
			return nil, err
		}
		tok.IsExtern = true
		tok.SystemID = sysID
		if err := s.scanOptionalNData(&tok); err != nil {
			return nil, err
		}

	case s.matchWord("PUBLIC"):
		st.Advance(len("PUBLIC"))
		if !requireSpace(st) {
			return nil, &FatalError{Code: CodeDtdEntityInvalid, Pos: pos, Msg: "space required after PUBLIC"}
		}
		skipSpace(st)
		pubID, err := s.scanPubidLiteral()
		if err != nil {
			return nil, err
		}
		if !requireSpace(st) {
			return nil, &FatalError{Code: CodeDtdEntityInvalid, Pos: pos, Msg: "space required between a PUBLIC identifier and the system literal that follows it"}
		}
		skipSpace(st)
		sysID, err := s.scanSystemLiteral()
		if err != nil {
			return nil, err
		}
		tok.IsExtern = true
		tok.PublicID = pubID
		tok.SystemID = sysID
		if err := s.scanOptionalNData(&tok); err != nil {
			return nil, err
		}

	default:
		return nil, &FatalError{Code: CodeDtdEntityInvalid, Pos: pos, Msg: "expected a quoted value, SYSTEM, or PUBLIC"}
	}

	skipSpace(st)
	c, ok = st.Current()
	switch {
	case !ok:
		return nil, &FatalError{Code: CodeEOF, Pos: pos, Msg: "unterminated entity declaration"}
	case c == '>':
		st.Next()
	default:
		s.sink(RecoverableError{Code: CodeInputUnexpected, Pos: s.position(), Msg: "unexpected content before '>' in entity declaration"})
		s.skipToGt()
	}

	tok.Kind = classifyEntity(tok.IsParameter, tok.IsExtern, tok.ExternNotation != "")
	return tok, nil
}

// scanOptionalNData scans an optional "NDATA Name" suffix on an external
// general entity declaration, filling tok.ExternNotation. NDATA on a
// parameter entity is a fatal error: the production simply doesn't exist
// for parameter entities in the XML grammar.
func (s *Scanner) scanOptionalNData(tok *EntityDecl) error {
	st := s.stream
	skipSpace(st)
	if !s.matchWord("NDATA") {
		return nil
	}
	if tok.IsParameter {
		return &FatalError{Code: CodeDtdEntityInvalid, Pos: s.position(), Msg: "NDATA is not allowed on a parameter entity"}
	}
	st.Advance(len("NDATA"))
	if !requireSpace(st) {
		return &FatalError{Code: CodeDtdEntityInvalid, Pos: s.position(), Msg: "space required after NDATA"}
	}
	skipSpace(st)
	name, err := s.scanDeclName()
	if err != nil {
		return &FatalError{Code: CodeDtdNameInvalid, Pos: s.position(), Msg: "NDATA notation name: " + err.Error()}
	}
	tok.ExternNotation = name
	return nil
}
