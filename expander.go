package dtdscan

import (
	"fmt"
	"strings"
	"unicode"
)

// ReferenceExpander resolves parameter- and general-entity references
// against a Container, splicing their replacement text into an
// IntermediateStream (§4.2, "component B"). The declaration scanner is the
// only caller; it decides, per the grammar context it's in, which of the
// three entry points applies and what its use flag should be.
type ReferenceExpander struct {
	container Container
	stream    *IntermediateStream
}

// NewReferenceExpander returns an expander splicing into stream and
// resolving names against container.
func NewReferenceExpander(container Container, stream *IntermediateStream) *ReferenceExpander {
	return &ReferenceExpander{container: container, stream: stream}
}

// ExpandParameter handles a parameter-entity reference "%Name;" whose '%'
// has already been consumed; the stream's current rune is the first
// character of Name. use selects whether expansion is legal in the
// caller's context: outside any literal it is always true; inside an
// entity-value or attribute-default literal it is true only when scanning
// the external subset (§4.2 — a parameter-entity reference used this way
// inside the internal subset is well-formed but must not be expanded,
// since doing so could splice a partial markup declaration into text the
// internal subset is required to parse as a single, self-contained unit).
//
// When use is false, no lookup happens and nothing is spliced into the
// stream; instead the literal "%Name;" text is written to acc, which the
// caller in that case always owns (it is reading a literal into its own
// accumulator and has consumed the '%' without recording it anywhere
// else). acc is unused, and may be nil, when use is true: that path
// either succeeds by splicing into the stream or fails outright.
func (ex *ReferenceExpander) ExpandParameter(acc *strings.Builder, use bool) error {
	name, err := readXMLName(ex.stream)
	if err != nil {
		return &FatalError{Code: CodeDtdPEReferenceInvalid, Msg: "parameter entity reference: " + err.Error()}
	}
	c, ok := ex.stream.Current()
	if !ok || c != ';' {
		return &FatalError{Code: CodeDtdPEReferenceInvalid, Msg: "parameter entity reference '%" + name + "' is missing its terminating ';'"}
	}
	ex.stream.Next()

	if !use {
		if acc != nil {
			acc.WriteByte('%')
			acc.WriteString(name)
			acc.WriteByte(';')
		}
		return nil
	}

	ent, ok := ex.container.GetParameter(name)
	if !ok {
		return &FatalError{Code: CodeDtdPEReferenceInvalid, Msg: "parameter entity '" + name + "' is not declared"}
	}
	ex.stream.Push(len([]rune(name))+2, ent.ReplacementText())
	return nil
}

// ExpandGeneral handles a general-entity reference, "&Name;" or a numeric
// "&#...;", whose '&' has already been consumed. Named references splice
// their replacement text into the stream the same way ExpandParameter
// does, so scanning continues transparently through it; numeric
// references splice in the single decoded character.
//
// Most DTD-subset grammar contexts never reach this for a named
// reference: §4.2's contextual rule keeps "&Name;" literal inside entity-
// value and attribute-default literals, where the scanner instead copies
// the reference's source text verbatim without calling this method (see
// scanLiteralWithExpansion, which calls ExpandCharRef directly for the
// "&#" case and handles named references itself). ExpandGeneral exists as
// a complete, spec-shaped entry point for a caller — such as an outer
// content parser built on top of this package — that reuses this expander
// somewhere general-entity references are always expanded.
func (ex *ReferenceExpander) ExpandGeneral() error {
	if c, ok := ex.stream.Current(); ok && c == '#' {
		ex.stream.Next()
		r, err := ex.ExpandCharRef()
		if err != nil {
			return err
		}
		ex.stream.Push(0, string(r))
		return nil
	}

	name, err := readXMLName(ex.stream)
	if err != nil {
		return &FatalError{Code: CodeCharacterReferenceNotTerminated, Msg: "general entity reference: " + err.Error()}
	}
	c, ok := ex.stream.Current()
	if !ok || c != ';' {
		return &FatalError{Code: CodeCharacterReferenceNotTerminated, Msg: "general entity reference '&" + name + "' is missing its terminating ';'"}
	}
	ex.stream.Next()

	ent, ok := ex.container.GetEntity(name)
	if !ok {
		return &FatalError{Code: CodeCharacterReferenceNotTerminated, Msg: "entity '" + name + "' is not declared"}
	}
	ex.stream.Push(len([]rune(name))+2, ent.ReplacementText())
	return nil
}

// ExpandCharRef resolves a numeric character reference, "&#digits;" or
// "&#xhex;", whose "&#" prefix has already been consumed, and returns the
// decoded rune. Unlike ExpandParameter and ExpandGeneral it never touches
// the stream's splice buffer: the caller decides whether to push the
// result back for re-scanning (ExpandGeneral's own numeric case) or append
// it straight into an accumulator it already owns (entity-value and
// attribute-default literals).
func (ex *ReferenceExpander) ExpandCharRef() (rune, error) {
	s := ex.stream

	hex := false
	if c, ok := s.Current(); ok && (c == 'x' || c == 'X') {
		hex = true
		s.Next()
	}

	var val int64
	digits := 0
	base := int64(10)
	if hex {
		base = 16
	}
	for {
		c, ok := s.Current()
		if !ok {
			break
		}
		d := int64(-1)
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case hex && c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case hex && c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		}
		if d < 0 {
			break
		}
		val = val*base + d
		if val > int64(unicode.MaxRune)+1 {
			val = int64(unicode.MaxRune) + 1
		}
		digits++
		s.Next()
	}
	if digits == 0 {
		return 0, &FatalError{Code: CodeCharacterReferenceNotTerminated, Msg: "character reference has no digits"}
	}

	c, ok := s.Current()
	if !ok || c != ';' {
		return 0, &FatalError{Code: CodeCharacterReferenceNotTerminated, Msg: "character reference is missing its terminating ';'"}
	}
	s.Next()

	if val > int64(unicode.MaxRune) || !IsValidCharRef(rune(val)) {
		return 0, &FatalError{Code: CodeCharacterReferenceInvalidCode, Msg: fmt.Sprintf("character reference U+%X does not denote a legal XML character", val)}
	}
	return rune(val), nil
}
