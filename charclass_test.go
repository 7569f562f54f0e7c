package dtdscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\r'} {
		assert.True(t, IsSpace(r))
	}
	for _, r := range []rune{'a', '\v', 0} {
		assert.False(t, IsSpace(r))
	}
}

func TestIsXMLCharExcludesSurrogatesAndControls(t *testing.T) {
	assert.True(t, IsXMLChar(0x9))
	assert.True(t, IsXMLChar('a'))
	assert.True(t, IsXMLChar(0x10000))
	assert.False(t, IsXMLChar(0))
	assert.False(t, IsXMLChar(0x1))
	assert.False(t, IsXMLChar(0xFFFE))
	assert.False(t, IsXMLChar(0xD800))
}

func TestIsValidCharRefMatchesIsXMLChar(t *testing.T) {
	assert.Equal(t, IsXMLChar('A'), IsValidCharRef('A'))
	assert.Equal(t, IsXMLChar(0), IsValidCharRef(0))
}

func TestIsNameStartChar(t *testing.T) {
	assert.True(t, IsNameStartChar('a'))
	assert.True(t, IsNameStartChar('_'))
	assert.True(t, IsNameStartChar(':'))
	assert.False(t, IsNameStartChar('1'))
	assert.False(t, IsNameStartChar('-'))
}

func TestIsNameChar(t *testing.T) {
	assert.True(t, IsNameChar('a'))
	assert.True(t, IsNameChar('1'))
	assert.True(t, IsNameChar('-'))
	assert.True(t, IsNameChar('.'))
	assert.False(t, IsNameChar(' '))
}

func TestIsPubidChar(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', ' ', '\r', '\n', '-', '\'', '(', ')', '+', ',', '.', '/', ':', '=', '?', ';', '!', '*', '#', '@', '$', '_', '%'} {
		assert.True(t, IsPubidChar(r), "%q should be a PubidChar", r)
	}
	for _, r := range []rune{'&', '<', '>', '"', '\t'} {
		assert.False(t, IsPubidChar(r), "%q should not be a PubidChar", r)
	}
}

func TestIsHex(t *testing.T) {
	assert.True(t, IsHex('0'))
	assert.True(t, IsHex('f'))
	assert.True(t, IsHex('F'))
	assert.False(t, IsHex('g'))
}
