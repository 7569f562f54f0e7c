package dtdscan

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/heliotrope-xml/dtdscan/internal/debug"
	"github.com/heliotrope-xml/dtdscan/internal/icstack"
)

// Scanner is the declaration scanner (§4.3, "component C"): the
// recursive-descent driver that turns an IntermediateStream into a lazy
// sequence of Tokens, consulting a ReferenceExpander whenever it meets a
// '%' or '&' in a context where one is legal.
//
// A Scanner is built with NewScanner and driven by repeatedly calling Get
// until it returns an EOF token. It is not safe for concurrent use.
type Scanner struct {
	stream   *IntermediateStream
	expander *ReferenceExpander

	external bool
	includes icstack.Stack
	sink     ErrorSink

	accPool sync.Pool

	done      bool
	seenToken bool
}

// Option configures a Scanner constructed by NewScanner.
type Option func(*Scanner)

// WithExternalSubset selects whether the subset being scanned is an
// external subset (external=true, the default) or an internal subset
// (external=false). This gates four things per the specification:
// whether a text declaration is recognized at all, whether conditional
// sections are legal, whether a parameter-entity reference inside an
// entity-value or attribute-default literal is expanded or left literal,
// and whether the subset ends at end of input or at a ']'.
func WithExternalSubset(external bool) Option {
	return func(s *Scanner) { s.external = external }
}

// WithInitialDepth seeds the scanner's open-conditional-section counter,
// for a caller resuming a scan whose external subset was split across
// more than one Scanner instance (e.g. one per chunk of a streamed
// document) and already knows how many INCLUDE sections were open when
// the split happened.
func WithInitialDepth(n int) Option {
	return func(s *Scanner) {
		for i := 0; i < n; i++ {
			s.includes.Push(icstack.Marker{Kind: icstack.Include})
		}
	}
}

// WithErrorSink routes RecoverableErrors (§7) to sink instead of
// discarding them.
func WithErrorSink(sink ErrorSink) Option {
	return func(s *Scanner) { s.sink = sink }
}

// NewScanner returns a Scanner reading from source and resolving entity
// references against container.
func NewScanner(container Container, source Source, opts ...Option) *Scanner {
	stream := NewIntermediateStream(source)
	s := &Scanner{
		stream:   stream,
		external: true,
		sink:     func(RecoverableError) {},
	}
	s.expander = NewReferenceExpander(container, stream)
	s.accPool.New = func() interface{} { return new(strings.Builder) }
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Scanner) getAcc() *strings.Builder {
	b := s.accPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func (s *Scanner) putAcc(b *strings.Builder) {
	s.accPool.Put(b)
}

// IncludeDepth reports how many conditional sections are currently open.
func (s *Scanner) IncludeDepth() int { return s.includes.Depth() }

// Content returns the original, unexpanded source text the scanner has
// consumed so far. It is unaffected by any parameter-entity splices along
// the way; see IntermediateStream.Content.
func (s *Scanner) Content() string { return s.stream.Content() }

func (s *Scanner) position() Position {
	pos := Position{Offset: s.stream.Source().InsertionPoint()}
	if ps, ok := s.stream.Source().(PositionedSource); ok {
		pos.Line, pos.Column = ps.Line(), ps.Column()
	}
	return pos
}

// Get returns the next Token in the subset, or an error if the input is
// malformed beyond recovery. Once Get returns an EOF token it keeps
// returning EOF on every subsequent call.
func (s *Scanner) Get() (Token, error) {
	for {
		if s.done {
			return EOF{tokenBase{s.position()}}, nil
		}
		skipSpace(s.stream)

		c, ok := s.stream.Current()
		if !ok {
			if m, open := s.includes.Top(); open {
				return nil, &FatalError{Code: CodeEOF, Pos: Position{Offset: m.Pos}, Msg: "unterminated INCLUDE conditional section"}
			}
			s.done = true
			continue
		}

		if debug.Enabled {
			debug.Printf("Scanner.Get: dispatch on %q (external=%v, includes=%d)", c, s.external, s.includes.Depth())
		}

		switch {
		case c == '%':
			s.stream.Next()
			if err := s.expander.ExpandParameter(nil, true); err != nil {
				return nil, errors.Wrap(err, "dtdscan: expand parameter entity")
			}
			continue
		case !s.external && c == ']':
			s.done = true
			continue
		case s.external && c == ']' && s.includes.Depth() > 0 && s.stream.ContinuesWith("]]>"):
			s.stream.Advance(3)
			s.includes.Pop()
			continue
		case s.external && c == '<' && s.stream.ContinuesWith("<!["):
			if err := s.scanConditionalOpen(); err != nil {
				return nil, err
			}
			continue
		case c == '<':
			tok, err := s.scanMarkup()
			if err != nil {
				return nil, err
			}
			s.seenToken = true
			return tok, nil
		default:
			return nil, &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: fmt.Sprintf("unexpected character %q in DTD subset", c)}
		}
	}
}

func (s *Scanner) scanMarkup() (Token, error) {
	st := s.stream
	switch {
	case st.ContinuesWith("<?"):
		return s.scanPI()
	case st.ContinuesWith("<!--"):
		return s.scanComment()
	case st.ContinuesWith("<!ENTITY"):
		return s.scanEntityDecl()
	case st.ContinuesWith("<!ELEMENT"):
		return s.scanElementDecl()
	case st.ContinuesWith("<!ATTLIST"):
		return s.scanAttListDecl()
	case st.ContinuesWith("<!NOTATION"):
		return s.scanNotationDecl()
	default:
		return nil, &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: "unrecognized markup declaration"}
	}
}

// requireSpace reports whether the current character is XML whitespace,
// without consuming it. Every markup production that needs "at least one
// space here" calls this first so it can raise a precise error instead of
// silently treating a missing separator as zero spaces.
func requireSpace(st *IntermediateStream) bool {
	c, ok := st.Current()
	return ok && IsSpace(c)
}

// matchWord reports whether word appears at the stream's current position
// as a whole token: ContinuesWith(word) is true, and the character right
// after it (if any) is not itself a name character. This disambiguates
// keyword families with shared prefixes (ID vs IDREF vs IDREFS; ENTITY vs
// ENTITIES; NMTOKEN vs NMTOKENS) without needing the caller to check
// longest-match-first by hand. It never consumes anything.
func (s *Scanner) matchWord(word string) bool {
	st := s.stream
	if !st.ContinuesWith(word) {
		return false
	}
	n := len([]rune(word))
	st.Advance(n)
	c, ok := st.Current()
	boundary := !ok || !IsNameChar(c)
	for i := 0; i < n; i++ {
		st.Previous()
	}
	return boundary
}

// skipToGt advances past the rest of a malformed declaration up to and
// including its closing '>', used after reporting a RecoverableError so
// scanning can resume at the next declaration instead of aborting.
func (s *Scanner) skipToGt() {
	st := s.stream
	for {
		c, ok := st.Current()
		if !ok {
			return
		}
		st.Next()
		if c == '>' {
			return
		}
	}
}

// scanDeclName reads a Name, transparently expanding a parameter-entity
// reference that precedes it (e.g. "<!ELEMENT %pe; ANY>", where pe's
// replacement text is the element name). A PE
// reference embedded in the middle of a name's characters is not
// supported; real-world DTDs do not split names across entity boundaries,
// and handling it would require re-entering name scanning after every
// splice for no observed benefit.
func (s *Scanner) scanDeclName() (string, error) {
	st := s.stream
	if c, ok := st.Current(); ok && c == '%' {
		st.Next()
		if err := s.expander.ExpandParameter(nil, true); err != nil {
			return "", err
		}
		skipSpace(st)
	}
	return readXMLName(st)
}

// scanLiteralWithExpansion reads a single- or double-quoted literal,
// applying the entity- and character-reference expansion rules §4.2
// specifies for entity values and attribute default values: a parameter-
// entity reference expands when s.external is true (entity-value and
// attribute-default literals share this rule); a numeric character
// reference always expands to its decoded character; a named general-
// entity reference is copied verbatim, not looked up. When forbidLt is
// true a literal '<' is a hard error (attribute default values only).
func (s *Scanner) scanLiteralWithExpansion(forbidLt bool) (string, error) {
	st := s.stream
	q, ok := st.Current()
	if !ok || (q != '"' && q != '\'') {
		return "", &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: "literal value must be quoted"}
	}
	st.Next()

	acc := s.getAcc()
	defer s.putAcc(acc)

	for {
		c, ok := st.Current()
		if !ok {
			return "", &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated literal value"}
		}
		switch {
		case c == q:
			st.Next()
			return acc.String(), nil
		case forbidLt && c == '<':
			return "", &FatalError{Code: CodeXmlLtInAttributeValue, Pos: s.position()}
		case c == '%':
			st.Next()
			if err := s.expander.ExpandParameter(acc, s.external); err != nil {
				return "", err
			}
		case c == '&':
			st.Next()
			if c2, ok2 := st.Current(); ok2 && c2 == '#' {
				st.Next()
				r, err := s.expander.ExpandCharRef()
				if err != nil {
					return "", err
				}
				acc.WriteRune(r)
				continue
			}
			acc.WriteByte('&')
			name, err := readXMLName(st)
			if err != nil {
				return "", &FatalError{Code: CodeDtdEntityInvalid, Pos: s.position(), Msg: "malformed entity reference in literal"}
			}
			acc.WriteString(name)
			cc, okc := st.Current()
			if !okc || cc != ';' {
				return "", &FatalError{Code: CodeDtdEntityInvalid, Pos: s.position(), Msg: "entity reference '&" + name + "' is missing its terminating ';'"}
			}
			acc.WriteByte(';')
			st.Next()
		case c == 0:
			s.sink(RecoverableError{Code: CodeNull, Pos: s.position(), Msg: "NUL character replaced with U+FFFD"})
			acc.WriteRune('�')
			st.Next()
		default:
			acc.WriteRune(c)
			st.Next()
		}
	}
}

// scanSystemLiteral reads a quoted SystemLiteral: any quoted span not
// containing the quote character, with no entity or character-reference
// expansion.
func (s *Scanner) scanSystemLiteral() (string, error) {
	st := s.stream
	q, ok := st.Current()
	if !ok || (q != '"' && q != '\'') {
		return "", &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: "system identifier must be quoted"}
	}
	st.Next()
	var b strings.Builder
	for {
		c, ok := st.Current()
		if !ok {
			return "", &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated system identifier"}
		}
		if c == q {
			st.Next()
			return b.String(), nil
		}
		b.WriteRune(c)
		st.Next()
	}
}

// scanPubidLiteral reads a quoted PubidLiteral, restricted to PubidChar. A
// character outside that class is reported through the ErrorSink and kept
// anyway, so the caller still has a usable value to build its token from.
func (s *Scanner) scanPubidLiteral() (string, error) {
	st := s.stream
	q, ok := st.Current()
	if !ok || (q != '"' && q != '\'') {
		return "", &FatalError{Code: CodeDtdInvalid, Pos: s.position(), Msg: "public identifier must be quoted"}
	}
	st.Next()
	var b strings.Builder
	for {
		c, ok := st.Current()
		if !ok {
			return "", &FatalError{Code: CodeEOF, Pos: s.position(), Msg: "unterminated public identifier"}
		}
		if c == q {
			st.Next()
			return b.String(), nil
		}
		if !IsPubidChar(c) {
			s.sink(RecoverableError{Code: CodeInvalidCharacter, Pos: s.position(), Msg: fmt.Sprintf("character %q is not a valid PubidChar", c)})
		}
		b.WriteRune(c)
		st.Next()
	}
}
