package dtdscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string, opts ...Option) []Token {
	t.Helper()
	c := NewMapContainer()
	sc := NewScanner(c, NewByteSliceSource([]byte(input)), opts...)
	var toks []Token
	for {
		tok, err := sc.Get()
		require.NoError(t, err)
		toks = append(toks, tok)
		if _, ok := tok.(EOF); ok {
			return toks
		}
		if len(toks) > 1000 {
			t.Fatal("runaway scan")
		}
	}
}

func TestScannerProcessingInstruction(t *testing.T) {
	toks := scanAll(t, `<?target some content?>]`, WithExternalSubset(false))
	require.Len(t, toks, 2)
	pi, ok := toks[0].(PI)
	require.True(t, ok)
	assert.Equal(t, "target", pi.Target)
	assert.Equal(t, "some content", pi.Content)
}

func TestScannerTextDeclAtStartOfExternalSubset(t *testing.T) {
	toks := scanAll(t, `<?xml version="1.0" encoding="UTF-8"?><!-- c -->`, WithExternalSubset(true))
	require.GreaterOrEqual(t, len(toks), 2)
	td, ok := toks[0].(TextDecl)
	require.True(t, ok)
	assert.Equal(t, "1.0", td.Version)
	assert.Equal(t, "UTF-8", td.Encoding)
}

func TestScannerComment(t *testing.T) {
	toks := scanAll(t, `<!-- a comment --> ]`, WithExternalSubset(false))
	c, ok := toks[0].(Comment)
	require.True(t, ok)
	assert.Equal(t, " a comment ", c.Data)
}

func TestScannerCommentRejectsDoubleDash(t *testing.T) {
	c := NewMapContainer()
	sc := NewScanner(c, NewByteSliceSource([]byte(`<!-- a -- b -->`)), WithExternalSubset(false))
	_, err := sc.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, &FatalError{Code: CodeCommentEndedUnexpected})
}

func TestScannerInternalEntityDecl(t *testing.T) {
	toks := scanAll(t, `<!ENTITY foo "bar"> ]`, WithExternalSubset(false))
	e, ok := toks[0].(EntityDecl)
	require.True(t, ok)
	assert.Equal(t, "foo", e.Name)
	assert.True(t, e.HasValue)
	assert.Equal(t, "bar", e.Value)
	assert.False(t, e.IsExtern)
	assert.Equal(t, InternalGeneralEntity, e.Kind)
}

func TestScannerExternalEntityDeclPublicExternal(t *testing.T) {
	// §9 open question: PublicID and SystemID are distinct fields, never
	// aliased onto each other.
	toks := scanAll(t,
		`<!ENTITY foo PUBLIC "-//Example//TEXT foo//EN" "foo.ent"> ]`,
		WithExternalSubset(false))
	e, ok := toks[0].(EntityDecl)
	require.True(t, ok)
	assert.True(t, e.IsExtern)
	assert.Equal(t, "-//Example//TEXT foo//EN", e.PublicID)
	assert.Equal(t, "foo.ent", e.SystemID)
	assert.Equal(t, ExternalGeneralParsedEntity, e.Kind)
}

func TestScannerUnparsedEntityWithNData(t *testing.T) {
	toks := scanAll(t,
		`<!NOTATION png SYSTEM "image/png">
		 <!ENTITY logo SYSTEM "logo.png" NDATA png> ]`,
		WithExternalSubset(false))
	require.Len(t, toks, 3)
	e, ok := toks[1].(EntityDecl)
	require.True(t, ok)
	assert.Equal(t, "png", e.ExternNotation)
	assert.Equal(t, ExternalGeneralUnparsedEntity, e.Kind)
}

func TestScannerParameterEntityExpansionInExternalSubset(t *testing.T) {
	// "%x;" expands inside an entity value only when scanning the
	// external subset.
	c := NewMapContainer()
	c.DeclareParameter("x", "abc")
	sc := NewScanner(c, NewByteSliceSource([]byte(`<!ENTITY y "%x;-tail">`)), WithExternalSubset(true))

	tok, err := sc.Get()
	require.NoError(t, err)
	e, ok := tok.(EntityDecl)
	require.True(t, ok)
	assert.Equal(t, "abc-tail", e.Value)
}

func TestScannerParameterEntityLiteralInInternalSubset(t *testing.T) {
	// Inside the internal subset the same reference is left as literal
	// text rather than expanded.
	c := NewMapContainer()
	c.DeclareParameter("x", "abc")
	sc := NewScanner(c, NewByteSliceSource([]byte(`<!ENTITY % x "abc"><!ENTITY y "%x;-tail">]`)), WithExternalSubset(false))

	tok, err := sc.Get()
	require.NoError(t, err)
	_, ok := tok.(EntityDecl)
	require.True(t, ok)

	tok, err = sc.Get()
	require.NoError(t, err)
	e, ok := tok.(EntityDecl)
	require.True(t, ok)
	assert.Equal(t, "%x;-tail", e.Value)
}

func TestScannerElementDeclEmptyAndAny(t *testing.T) {
	toks := scanAll(t, `<!ELEMENT br EMPTY><!ELEMENT div ANY> ]`, WithExternalSubset(false))
	require.Len(t, toks, 3)
	br := toks[0].(ElementDecl)
	assert.Equal(t, ContentEmpty, br.Entry.Kind)
	div := toks[1].(ElementDecl)
	assert.Equal(t, ContentAny, div.Entry.Kind)
}

func TestScannerElementDeclMixedContent(t *testing.T) {
	toks := scanAll(t, `<!ELEMENT p (#PCDATA|b|i)*> ]`, WithExternalSubset(false))
	p := toks[0].(ElementDecl)
	require.Equal(t, ContentMixed, p.Entry.Kind)
	assert.Equal(t, []string{"b", "i"}, p.Entry.Names)
	assert.Equal(t, QuantZeroOrMore, p.Entry.Quant)
}

func TestScannerElementDeclPurein(t *testing.T) {
	toks := scanAll(t, `<!ELEMENT p (#PCDATA)> ]`, WithExternalSubset(false))
	p := toks[0].(ElementDecl)
	require.Equal(t, ContentMixed, p.Entry.Kind)
	assert.Empty(t, p.Entry.Names)
	assert.Equal(t, QuantOne, p.Entry.Quant)
}

func TestScannerElementDeclChildrenSequenceAndChoice(t *testing.T) {
	toks := scanAll(t, `<!ELEMENT book (title, (author|editor)+, chapter*)> ]`, WithExternalSubset(false))
	book := toks[0].(ElementDecl)
	require.Equal(t, ContentSequence, book.Entry.Kind)
	require.Len(t, book.Entry.Children, 3)
	assert.Equal(t, "title", book.Entry.Children[0].Name)

	authorEditor := book.Entry.Children[1]
	assert.Equal(t, ContentChoice, authorEditor.Kind)
	assert.Equal(t, QuantOneOrMore, authorEditor.Quant)

	chapter := book.Entry.Children[2]
	assert.Equal(t, "chapter", chapter.Name)
	assert.Equal(t, QuantZeroOrMore, chapter.Quant)
}

func TestScannerElementDeclRejectsMixedConnectors(t *testing.T) {
	c := NewMapContainer()
	sc := NewScanner(c, NewByteSliceSource([]byte(`<!ELEMENT a (b, c | d)>`)), WithExternalSubset(false))
	_, err := sc.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, &FatalError{Code: CodeDtdTypeContent})
}

func TestScannerAttListDecl(t *testing.T) {
	toks := scanAll(t, `<!ATTLIST img
		src CDATA #REQUIRED
		alt CDATA #IMPLIED
		align (left|center|right) "center">
	]`, WithExternalSubset(false))
	a := toks[0].(AttListDecl)
	require.Len(t, a.Attributes, 3)
	assert.Equal(t, "src", a.Attributes[0].Name)
	assert.Equal(t, DefaultRequired, a.Attributes[0].Default.Kind)
	assert.Equal(t, DefaultImplied, a.Attributes[1].Default.Kind)
	assert.Equal(t, []string{"left", "center", "right"}, a.Attributes[2].Type.Names)
	assert.Equal(t, "center", a.Attributes[2].Default.Value)
}

func TestScannerAttListDeclDuplicateAttributeReportedAndDropped(t *testing.T) {
	var recovered []RecoverableError
	c := NewMapContainer()
	sc := NewScanner(c, NewByteSliceSource([]byte(`<!ATTLIST a x CDATA #IMPLIED x CDATA #REQUIRED>`)),
		WithExternalSubset(false),
		WithErrorSink(func(e RecoverableError) { recovered = append(recovered, e) }))

	tok, err := sc.Get()
	require.NoError(t, err)
	a := tok.(AttListDecl)
	require.Len(t, a.Attributes, 1)
	require.Len(t, recovered, 1)
	assert.Equal(t, CodeUndefinedMarkupDeclaration, recovered[0].Code)
}

func TestScannerNotationDeclPublicOnly(t *testing.T) {
	toks := scanAll(t, `<!NOTATION gif PUBLIC "-//Example//NOTATION GIF//EN"> ]`, WithExternalSubset(false))
	n := toks[0].(NotationDecl)
	assert.Equal(t, "gif", n.Name)
	assert.Equal(t, "-//Example//NOTATION GIF//EN", n.PublicID)
	assert.Empty(t, n.SystemID)
}

func TestScannerConditionalSectionInclude(t *testing.T) {
	toks := scanAll(t, `<![INCLUDE[<!ENTITY a "1">]]><!ENTITY b "2">`, WithExternalSubset(true))
	require.Len(t, toks, 3)
	assert.Equal(t, "a", toks[0].(EntityDecl).Name)
	assert.Equal(t, "b", toks[1].(EntityDecl).Name)
	assert.IsType(t, EOF{}, toks[2])
}

func TestScannerConditionalSectionIgnoreSkipsBody(t *testing.T) {
	toks := scanAll(t, `<![IGNORE[<!ENTITY a "1">]]><!ENTITY b "2">`, WithExternalSubset(true))
	require.Len(t, toks, 2)
	assert.Equal(t, "b", toks[0].(EntityDecl).Name)
}

func TestScannerConditionalSectionNestedIgnore(t *testing.T) {
	// §9 open question: a nested "<![" increments a depth counter and a
	// nested "]]>" decrements it; the IGNORE section ends only once depth
	// returns to zero, so the inner INCLUDE's own close doesn't
	// prematurely end the outer IGNORE.
	toks := scanAll(t,
		`<![IGNORE[<![INCLUDE[<!ENTITY a "1">]]>]]><!ENTITY b "2">`,
		WithExternalSubset(true))
	require.Len(t, toks, 2)
	assert.Equal(t, "b", toks[0].(EntityDecl).Name)
}

func TestScannerInternalSubsetEndsAtBracket(t *testing.T) {
	c := NewMapContainer()
	sc := NewScanner(c, NewByteSliceSource([]byte(`<!ENTITY a "1">]`)), WithExternalSubset(false))
	tok, err := sc.Get()
	require.NoError(t, err)
	require.IsType(t, EntityDecl{}, tok)

	tok, err = sc.Get()
	require.NoError(t, err)
	assert.IsType(t, EOF{}, tok)

	// EOF is sticky.
	tok, err = sc.Get()
	require.NoError(t, err)
	assert.IsType(t, EOF{}, tok)
}

func TestScannerContentReflectsOriginalSourceAcrossExpansion(t *testing.T) {
	c := NewMapContainer()
	c.DeclareParameter("x", "abc")
	sc := NewScanner(c, NewByteSliceSource([]byte(`<!ENTITY y "%x;-tail">`)), WithExternalSubset(true))

	_, err := sc.Get()
	require.NoError(t, err)
	assert.Equal(t, `<!ENTITY y "%x;-tail">`, sc.Content())
}
