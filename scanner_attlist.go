package dtdscan

import "github.com/heliotrope-xml/dtdscan/internal/orderedmap"

// scanAttListDecl scans "<!ATTLIST Name AttDef*>" (§4.3.5).
func (s *Scanner) scanAttListDecl() (Token, error) {
	pos := s.position()
	st := s.stream
	st.Advance(len("<!ATTLIST"))
	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeDtdAttListInvalid, Pos: pos, Msg: "space required after '<!ATTLIST'"}
	}
	skipSpace(st)

	elemName, err := s.scanDeclName()
	if err != nil {
		return nil, &FatalError{Code: CodeDtdNameInvalid, Pos: pos, Msg: "attlist element name: " + err.Error()}
	}

	seen := orderedmap.New[string, struct{}]()
	var attrs []AttrDecl

	for {
		skipSpace(st)
		c, ok := st.Current()
		if !ok {
			return nil, &FatalError{Code: CodeEOF, Pos: pos, Msg: "unterminated attribute-list declaration"}
		}
		if c == '>' {
			st.Next()
			break
		}
		if c == '%' {
			st.Next()
			if err := s.expander.ExpandParameter(nil, true); err != nil {
				return nil, err
			}
			continue
		}
		if !IsNameStartChar(c) {
			s.sink(RecoverableError{Code: CodeInputUnexpected, Pos: s.position(), Msg: "unexpected content in attribute-list declaration"})
			s.skipToGt()
			break
		}

		attr, err := s.scanAttrDecl()
		if err != nil {
			return nil, err
		}
		if seen.Has(attr.Name) {
			s.sink(RecoverableError{Code: CodeUndefinedMarkupDeclaration, Pos: s.position(), Msg: "duplicate attribute '" + attr.Name + "' in ATTLIST " + elemName})
			continue
		}
		_ = seen.Set(attr.Name, struct{}{})
		attrs = append(attrs, attr)
	}

	return AttListDecl{tokenBase{pos}, elemName, attrs}, nil
}

func (s *Scanner) scanAttrDecl() (AttrDecl, error) {
	st := s.stream
	name, err := s.scanDeclName()
	if err != nil {
		return AttrDecl{}, &FatalError{Code: CodeDtdNameInvalid, Pos: s.position(), Msg: "attribute name: " + err.Error()}
	}
	if !requireSpace(st) {
		return AttrDecl{}, &FatalError{Code: CodeDtdAttListInvalid, Pos: s.position(), Msg: "space required after attribute name"}
	}
	skipSpace(st)

	typ, err := s.scanAttrType()
	if err != nil {
		return AttrDecl{}, err
	}

	if !requireSpace(st) {
		return AttrDecl{}, &FatalError{Code: CodeDtdAttListInvalid, Pos: s.position(), Msg: "space required after attribute type"}
	}
	skipSpace(st)

	def, err := s.scanAttrDefault()
	if err != nil {
		return AttrDecl{}, err
	}

	return AttrDecl{Name: name, Type: typ, Default: def}, nil
}

func (s *Scanner) scanAttrType() (AttrType, error) {
	st := s.stream
	if c, ok := st.Current(); ok && c == '(' {
		names, err := s.scanEnumeration(false)
		if err != nil {
			return AttrType{}, err
		}
		return AttrType{Kind: AttrEnumerated, Names: names}, nil
	}

	switch {
	case s.matchWord("CDATA"):
		st.Advance(len("CDATA"))
		return AttrType{Kind: AttrString}, nil
	case s.matchWord("IDREFS"):
		st.Advance(len("IDREFS"))
		return AttrType{Kind: AttrTokenized, Tokenized: TokIDRefs}, nil
	case s.matchWord("IDREF"):
		st.Advance(len("IDREF"))
		return AttrType{Kind: AttrTokenized, Tokenized: TokIDRef}, nil
	case s.matchWord("ID"):
		st.Advance(len("ID"))
		return AttrType{Kind: AttrTokenized, Tokenized: TokID}, nil
	case s.matchWord("ENTITIES"):
		st.Advance(len("ENTITIES"))
		return AttrType{Kind: AttrTokenized, Tokenized: TokEntities}, nil
	case s.matchWord("ENTITY"):
		st.Advance(len("ENTITY"))
		return AttrType{Kind: AttrTokenized, Tokenized: TokEntity}, nil
	case s.matchWord("NMTOKENS"):
		st.Advance(len("NMTOKENS"))
		return AttrType{Kind: AttrTokenized, Tokenized: TokNMTokens}, nil
	case s.matchWord("NMTOKEN"):
		st.Advance(len("NMTOKEN"))
		return AttrType{Kind: AttrTokenized, Tokenized: TokNMToken}, nil
	case s.matchWord("NOTATION"):
		st.Advance(len("NOTATION"))
		if !requireSpace(st) {
			return AttrType{}, &FatalError{Code: CodeDtdTypeInvalid, Pos: s.position(), Msg: "space required after NOTATION"}
		}
		skipSpace(st)
		names, err := s.scanEnumeration(true)
		if err != nil {
			return AttrType{}, err
		}
		return AttrType{Kind: AttrEnumerated, IsNotation: true, Names: names}, nil
	default:
		return AttrType{}, &FatalError{Code: CodeDtdTypeInvalid, Pos: s.position(), Msg: "unrecognized attribute type"}
	}
}

// scanEnumeration reads "(Value (| Value)*)". For a NOTATION type, each
// Value is a full XML Name; for a plain enumerated type, each Value is an
// Nmtoken, which (unlike a Name) may begin with a digit or other
// non-name-start character.
func (s *Scanner) scanEnumeration(isNotation bool) ([]string, error) {
	st := s.stream
	c, ok := st.Current()
	if !ok || c != '(' {
		return nil, &FatalError{Code: CodeDtdTypeInvalid, Pos: s.position(), Msg: "'(' required to start an enumeration"}
	}
	st.Next()

	var names []string
	for {
		skipSpace(st)
		var name string
		var err error
		if isNotation {
			name, err = s.scanDeclName()
		} else {
			name, err = readNmtoken(st)
		}
		if err != nil {
			return nil, &FatalError{Code: CodeDtdTypeInvalid, Pos: s.position(), Msg: "enumeration value: " + err.Error()}
		}
		names = append(names, name)

		skipSpace(st)
		c, ok := st.Current()
		if !ok {
			return nil, &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated enumeration"}
		}
		switch c {
		case '|':
			st.Next()
		case ')':
			st.Next()
			return names, nil
		default:
			return nil, &FatalError{Code: CodeDtdTypeInvalid, Pos: s.position(), Msg: "expected '|' or ')' in enumeration"}
		}
	}
}

func (s *Scanner) scanAttrDefault() (AttrDefault, error) {
	switch {
	case s.matchWord("#REQUIRED"):
		s.stream.Advance(len("#REQUIRED"))
		return AttrDefault{Kind: DefaultRequired}, nil
	case s.matchWord("#IMPLIED"):
		s.stream.Advance(len("#IMPLIED"))
		return AttrDefault{Kind: DefaultImplied}, nil
	case s.matchWord("#FIXED"):
		s.stream.Advance(len("#FIXED"))
		if !requireSpace(s.stream) {
			return AttrDefault{}, &FatalError{Code: CodeDtdAttListInvalid, Pos: s.position(), Msg: "space required after #FIXED"}
		}
		skipSpace(s.stream)
		v, err := s.scanLiteralWithExpansion(true)
		if err != nil {
			return AttrDefault{}, err
		}
		return AttrDefault{Kind: DefaultCustom, Value: v, IsFixed: true}, nil
	default:
		v, err := s.scanLiteralWithExpansion(true)
		if err != nil {
			return AttrDefault{}, err
		}
		return AttrDefault{Kind: DefaultCustom, Value: v}, nil
	}
}
