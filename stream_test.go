package dtdscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntermediateStreamReadsSourceCharByChar(t *testing.T) {
	src := NewByteSliceSource([]byte("abc"))
	s := NewIntermediateStream(src)

	c, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 'a', c)

	c, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, 'b', c)

	c, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, 'c', c)

	_, ok = s.Next()
	assert.False(t, ok)
}

func TestIntermediateStreamNextPreviousIsIdentity(t *testing.T) {
	src := NewByteSliceSource([]byte("abcd"))
	s := NewIntermediateStream(src)

	s.Next() // now at 'b'
	s.Next() // now at 'c'

	before, ok := s.Current()
	require.True(t, ok)

	s.Next()
	after, ok := s.Previous()
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestIntermediateStreamContinuesWithDoesNotConsume(t *testing.T) {
	src := NewByteSliceSource([]byte("<!ENTITY foo"))
	s := NewIntermediateStream(src)

	assert.True(t, s.ContinuesWith("<!ENTITY"))
	assert.False(t, s.ContinuesWith("<!ELEMENT"))

	c, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, '<', c, "ContinuesWith must not move head")
}

func TestIntermediateStreamContinuesWithPullsFromSourceAtBoundary(t *testing.T) {
	src := NewByteSliceSource([]byte("xyz"))
	s := NewIntermediateStream(src)
	assert.True(t, s.ContinuesWith("xyz"))
	assert.True(t, s.ContinuesWith("xy"))
	assert.False(t, s.ContinuesWith("xz"))
}

func TestIntermediateStreamPushSplicesReplacementText(t *testing.T) {
	src := NewByteSliceSource([]byte("%x;TAIL"))
	s := NewIntermediateStream(src)

	s.Advance(3) // consume "%x;"
	s.Push(3, "REPLACED-")

	var got []rune
	for {
		c, ok := s.Current()
		if !ok {
			break
		}
		got = append(got, c)
		s.Next()
	}
	assert.Equal(t, "REPLACED-TAIL", string(got))
}

func TestIntermediateStreamContentReflectsOriginalSourceNotSplices(t *testing.T) {
	src := NewByteSliceSource([]byte("%x;TAIL"))
	s := NewIntermediateStream(src)

	s.Advance(3)
	s.Push(3, "REPLACED-")
	s.Advance(13) // consume the spliced text plus "TAIL"

	assert.Equal(t, "%x;TAIL", s.Content())
}
