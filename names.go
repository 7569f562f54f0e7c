package dtdscan

import (
	"errors"
	"strings"
)

// skipSpace consumes XML whitespace at the stream's current position.
func skipSpace(s *IntermediateStream) {
	for {
		c, ok := s.Current()
		if !ok || !IsSpace(c) {
			return
		}
		s.Next()
	}
}

// readXMLName reads an XML Name (NameStartChar NameChar*) from s.
func readXMLName(s *IntermediateStream) (string, error) {
	c, ok := s.Current()
	if !ok || !IsNameStartChar(c) {
		return "", errors.New("name expected")
	}
	var b strings.Builder
	b.WriteRune(c)
	s.Next()
	for {
		c, ok = s.Current()
		if !ok || !IsNameChar(c) {
			break
		}
		b.WriteRune(c)
		s.Next()
	}
	return b.String(), nil
}

// readNmtoken reads an XML Nmtoken (NameChar+) from s. Unlike a Name, an
// Nmtoken may begin with a character that isn't a valid name-start
// character, e.g. a leading digit or '-'.
func readNmtoken(s *IntermediateStream) (string, error) {
	var b strings.Builder
	for {
		c, ok := s.Current()
		if !ok || !IsNameChar(c) {
			break
		}
		b.WriteRune(c)
		s.Next()
	}
	if b.Len() == 0 {
		return "", errors.New("nmtoken expected")
	}
	return b.String(), nil
}
