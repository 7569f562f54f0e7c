package dtdscan

import (
	"testing"

	"github.com/lestrrat-go/pdebug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapContainerRoundTripsGeneralAndParameterEntities(t *testing.T) {
	c := NewMapContainer()
	c.DeclareGeneral("copy", "©")
	c.DeclareParameter("pe", "<!-- replacement -->")

	g, ok := c.GetEntity("copy")
	require.True(t, ok)
	assert.Equal(t, "©", g.ReplacementText())

	p, ok := c.GetParameter("pe")
	require.True(t, ok)
	assert.Equal(t, "<!-- replacement -->", p.ReplacementText())

	_, ok = c.GetEntity("missing")
	assert.False(t, ok)
	_, ok = c.GetParameter("missing")
	assert.False(t, ok)
}

func TestScanAllDTDShapeViaMapContainer(t *testing.T) {
	c := NewMapContainer()
	c.DeclareParameter("common.atts", "id ID #IMPLIED")
	sc := NewScanner(c, NewByteSliceSource([]byte(`
		<!ENTITY % common.atts "id ID #IMPLIED">
		<!ELEMENT book (title, author+)>
		<!ATTLIST book %common.atts;>
	]`)), WithExternalSubset(false))

	var toks []Token
	for {
		tok, err := sc.Get()
		require.NoError(t, err)
		toks = append(toks, tok)
		if _, ok := tok.(EOF); ok {
			break
		}
	}

	if pdebug.Enabled {
		pdebug.Dump(toks)
	}

	require.Len(t, toks, 4)
	assert.IsType(t, EntityDecl{}, toks[0])
	assert.IsType(t, ElementDecl{}, toks[1])
	assert.IsType(t, AttListDecl{}, toks[2])
	assert.IsType(t, EOF{}, toks[3])
}
