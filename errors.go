package dtdscan

import "fmt"

// ErrorCode names one specific failure recognized by the declaration
// scanner (§7). Fatal codes abort Scanner.Get's current call; recoverable
// codes are reported through an ErrorSink while scanning continues.
type ErrorCode int

const (
	_ ErrorCode = iota

	// Fatal codes.
	CodeDtdInvalid
	CodeDtdNameInvalid
	CodeDtdDeclInvalid
	CodeDtdTypeInvalid
	CodeDtdTypeContent
	CodeDtdEntityInvalid
	CodeDtdAttListInvalid
	CodeDtdPEReferenceInvalid
	CodeXmlInvalidPI
	CodeXmlLtInAttributeValue
	CodeCommentEndedUnexpected
	CodeCharacterReferenceNotTerminated
	CodeCharacterReferenceInvalidCode
	CodeEOF

	// Recoverable codes.
	CodeNull
	CodeInvalidCharacter
	CodeInputUnexpected
	CodeTagClosedWrong
	CodeUndefinedMarkupDeclaration
	CodeNotationPublicInvalid
	CodeNotationSystemInvalid
	CodeQuantifierMissing
)

var codeNames = map[ErrorCode]string{
	CodeDtdInvalid:                       "DtdInvalid",
	CodeDtdNameInvalid:                   "DtdNameInvalid",
	CodeDtdDeclInvalid:                   "DtdDeclInvalid",
	CodeDtdTypeInvalid:                   "DtdTypeInvalid",
	CodeDtdTypeContent:                   "DtdTypeContent",
	CodeDtdEntityInvalid:                 "DtdEntityInvalid",
	CodeDtdAttListInvalid:                "DtdAttListInvalid",
	CodeDtdPEReferenceInvalid:            "DtdPEReferenceInvalid",
	CodeXmlInvalidPI:                     "XmlInvalidPI",
	CodeXmlLtInAttributeValue:            "XmlLtInAttributeValue",
	CodeCommentEndedUnexpected:           "CommentEndedUnexpected",
	CodeCharacterReferenceNotTerminated:  "CharacterReferenceNotTerminated",
	CodeCharacterReferenceInvalidCode:    "CharacterReferenceInvalidCode",
	CodeEOF:                              "EOF",
	CodeNull:                             "NULL",
	CodeInvalidCharacter:                 "InvalidCharacter",
	CodeInputUnexpected:                  "InputUnexpected",
	CodeTagClosedWrong:                   "TagClosedWrong",
	CodeUndefinedMarkupDeclaration:       "UndefinedMarkupDeclaration",
	CodeNotationPublicInvalid:            "NotationPublicInvalid",
	CodeNotationSystemInvalid:            "NotationSystemInvalid",
	CodeQuantifierMissing:                "QuantifierMissing",
}

func (c ErrorCode) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// FatalError aborts the Scanner.Get call in which it occurs; the stream
// position at the point of failure is unspecified for further scanning.
type FatalError struct {
	Code ErrorCode
	Pos  Position
	Msg  string
}

func (e *FatalError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("dtdscan: %s at %d:%d", e.Code, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("dtdscan: %s at %d:%d: %s", e.Code, e.Pos.Line, e.Pos.Column, e.Msg)
}

// Is reports whether target is a *FatalError with the same Code, so
// callers can write errors.Is(err, &dtdscan.FatalError{Code: ...}) without
// matching on position or message text.
func (e *FatalError) Is(target error) bool {
	t, ok := target.(*FatalError)
	return ok && t.Code == e.Code
}

// RecoverableError describes a malformed construct the scanner repaired
// well enough to keep going (§7): a non-PubidChar kept in a public
// identifier, a NUL byte replaced with U+FFFD, a duplicate attribute
// dropped, and similar. It is
// delivered to an ErrorSink rather than returned from Get.
type RecoverableError struct {
	Code ErrorCode
	Pos  Position
	Msg  string
}

func (e RecoverableError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("dtdscan: %s at %d:%d", e.Code, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("dtdscan: %s at %d:%d: %s", e.Code, e.Pos.Line, e.Pos.Column, e.Msg)
}

// ErrorSink receives each RecoverableError as scanning encounters it. A
// Scanner built by NewScanner without WithErrorSink uses a sink that
// discards everything; pass WithErrorSink to observe them.
type ErrorSink func(RecoverableError)
