package dtdscan

import "github.com/heliotrope-xml/dtdscan/internal/orderedmap"

// scanElementDecl scans "<!ELEMENT Name ContentSpec>" (§4.3.7).
func (s *Scanner) scanElementDecl() (Token, error) {
	pos := s.position()
	st := s.stream
	st.Advance(len("<!ELEMENT"))
	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeDtdDeclInvalid, Pos: pos, Msg: "space required after '<!ELEMENT'"}
	}
	skipSpace(st)

	name, err := s.scanDeclName()
	if err != nil {
		return nil, &FatalError{Code: CodeDtdNameInvalid, Pos: pos, Msg: "element name: " + err.Error()}
	}

	if !requireSpace(st) {
		return nil, &FatalError{Code: CodeDtdDeclInvalid, Pos: pos, Msg: "space required after element name"}
	}
	skipSpace(st)

	var entry *ContentModel
	switch {
	case s.matchWord("EMPTY"):
		st.Advance(len("EMPTY"))
		entry = &ContentModel{Kind: ContentEmpty}
	case s.matchWord("ANY"):
		st.Advance(len("ANY"))
		entry = &ContentModel{Kind: ContentAny}
	default:
		c, ok := st.Current()
		if !ok || c != '(' {
			return nil, &FatalError{Code: CodeDtdTypeContent, Pos: pos, Msg: "'EMPTY', 'ANY', or '(' expected"}
		}
		entry, err = s.scanContentGroup()
		if err != nil {
			return nil, err
		}
	}

	skipSpace(st)
	c, ok := st.Current()
	if !ok {
		return nil, &FatalError{Code: CodeEOF, Pos: pos, Msg: "unterminated element declaration"}
	}
	if c != '>' {
		return nil, &FatalError{Code: CodeDtdDeclInvalid, Pos: pos, Msg: "'>' required to close element declaration"}
	}
	st.Next()

	return ElementDecl{tokenBase{pos}, name, entry}, nil
}

// scanContentGroup scans a parenthesized content spec, dispatching on
// whether it opens with "#PCDATA" (a Mixed content model, only legal as
// the outermost group) or not (a Children content model).
func (s *Scanner) scanContentGroup() (*ContentModel, error) {
	st := s.stream
	st.Next() // '('
	skipSpace(st)
	if st.ContinuesWith("#PCDATA") {
		return s.scanMixedContent()
	}
	return s.scanChildrenGroup()
}

// scanMixedContent scans "(#PCDATA)" or "(#PCDATA|Name|Name...)*"
// (§3, ContentModel Mixed). A repeated element name is reported through
// the ErrorSink and dropped, per the element-name-uniqueness invariant; a
// non-empty name list without a trailing '*' is a fatal DtdTypeContent
// error, since the production requires one.
func (s *Scanner) scanMixedContent() (*ContentModel, error) {
	st := s.stream
	st.Advance(len("#PCDATA"))
	skipSpace(st)

	names := orderedmap.New[string, struct{}]()

	for {
		c, ok := st.Current()
		if !ok {
			return nil, &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated mixed content model"}
		}
		if c == ')' {
			st.Next()
			quant := QuantOne
			if c2, ok2 := st.Current(); ok2 && c2 == '*' {
				st.Next()
				quant = QuantZeroOrMore
			} else if names.Len() > 0 {
				return nil, &FatalError{Code: CodeDtdTypeContent, Pos: s.position(), Msg: "a mixed content model naming elements requires a trailing '*'"}
			}
			return &ContentModel{Kind: ContentMixed, Names: names.Keys(), Quant: quant}, nil
		}
		if c != '|' {
			return nil, &FatalError{Code: CodeDtdTypeContent, Pos: s.position(), Msg: "expected '|' or ')' in mixed content model"}
		}
		st.Next()
		skipSpace(st)

		name, err := s.scanDeclName()
		if err != nil {
			return nil, &FatalError{Code: CodeDtdNameInvalid, Pos: s.position(), Msg: "mixed content element name: " + err.Error()}
		}
		if names.Has(name) {
			s.sink(RecoverableError{Code: CodeUndefinedMarkupDeclaration, Pos: s.position(), Msg: "duplicate element name '" + name + "' in mixed content model"})
		} else {
			_ = names.Set(name, struct{}{})
		}
		skipSpace(st)
	}
}

// scanChildrenGroup scans the body of a parenthesized group after its '('
// has already been consumed: a sequence of content particles joined by a
// single connector, ',' for Sequence or '|' for Choice. Mixing the two
// connectors at the same nesting level is a fatal DtdTypeContent error; a
// deeper, parenthesized group is free to use the other connector, since
// each group carries its own.
func (s *Scanner) scanChildrenGroup() (*ContentModel, error) {
	st := s.stream
	var children []*ContentModel
	var connector rune

	for {
		skipSpace(st)
		cp, err := s.scanContentParticle()
		if err != nil {
			return nil, err
		}
		children = append(children, cp)

		skipSpace(st)
		c, ok := st.Current()
		if !ok {
			return nil, &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated content model group"}
		}
		switch c {
		case ')':
			st.Next()
			return s.finishGroup(children, connector), nil
		case ',', '|':
			if connector == 0 {
				connector = c
			} else if connector != c {
				return nil, &FatalError{Code: CodeDtdTypeContent, Pos: s.position(), Msg: "cannot mix ',' and '|' at the same content-model nesting level"}
			}
			st.Next()
		default:
			return nil, &FatalError{Code: CodeDtdTypeContent, Pos: s.position(), Msg: "expected ',', '|', or ')' in content model"}
		}
	}
}

func (s *Scanner) finishGroup(children []*ContentModel, connector rune) *ContentModel {
	kind := ContentSequence
	if connector == '|' {
		kind = ContentChoice
	}
	grp := &ContentModel{Kind: kind, Children: children}
	grp.Quant = s.scanQuantifier()
	return grp
}

func (s *Scanner) scanContentParticle() (*ContentModel, error) {
	st := s.stream
	c, ok := st.Current()
	if !ok {
		return nil, &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated content model"}
	}
	if c == '(' {
		st.Next()
		skipSpace(st)
		return s.scanChildrenGroup()
	}
	name, err := s.scanDeclName()
	if err != nil {
		return nil, &FatalError{Code: CodeDtdNameInvalid, Pos: s.position(), Msg: "content model element name: " + err.Error()}
	}
	return &ContentModel{Kind: ContentName, Name: name, Quant: s.scanQuantifier()}, nil
}

func (s *Scanner) scanQuantifier() Quantifier {
	st := s.stream
	c, ok := st.Current()
	if !ok {
		return QuantOne
	}
	switch c {
	case '?':
		st.Next()
		return QuantZeroOrOne
	case '*':
		st.Next()
		return QuantZeroOrMore
	case '+':
		st.Next()
		return QuantOneOrMore
	default:
		return QuantOne
	}
}
