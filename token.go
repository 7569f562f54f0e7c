package dtdscan

// Position locates a Token in the original source: the line and column a
// human would point to, plus a raw, ever-increasing offset useful for
// ordering tokens without re-deriving line/column. A Source that cannot
// report line/column (see PositionedSource) leaves Line and Column zero;
// Offset is always populated.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Quantifier is the occurrence suffix ('?', '*', '+', or none) attached to
// a content-model particle.
type Quantifier int

const (
	QuantOne Quantifier = iota
	QuantZeroOrOne
	QuantZeroOrMore
	QuantOneOrMore
)

func (q Quantifier) String() string {
	switch q {
	case QuantZeroOrOne:
		return "?"
	case QuantZeroOrMore:
		return "*"
	case QuantOneOrMore:
		return "+"
	default:
		return ""
	}
}

// ContentKind discriminates the cases of ContentModel.
type ContentKind int

const (
	ContentAny ContentKind = iota
	ContentEmpty
	ContentMixed
	ContentName
	ContentSequence
	ContentChoice
)

// ContentModel is the recursive grammar an ElementDecl's content is
// declared against (§3, "content model"). Any and Empty carry nothing
// else. Mixed carries the element names a "(#PCDATA|a|b)*" group allows,
// in declaration order, with Quant always QuantOne or QuantZeroOrMore.
// Name is a single child-element particle. Sequence and Choice carry the
// particles of a parenthesized group joined respectively by ',' or '|';
// Quant is the occurrence suffix applied to the group as a whole.
type ContentModel struct {
	Kind     ContentKind
	Name     string
	Names    []string
	Children []*ContentModel
	Quant    Quantifier
}

// AttrTypeKind discriminates the cases of AttrType.
type AttrTypeKind int

const (
	AttrString AttrTypeKind = iota
	AttrTokenized
	AttrEnumerated
)

// TokenizedKind enumerates the XML tokenized attribute types (ID, IDREF,
// IDREFS, ENTITY, ENTITIES, NMTOKEN, NMTOKENS).
type TokenizedKind int

const (
	TokID TokenizedKind = iota
	TokIDRef
	TokIDRefs
	TokEntity
	TokEntities
	TokNMToken
	TokNMTokens
)

// AttrType is an attribute's declared type. For AttrTokenized, Tokenized
// selects which of the seven tokenized types. For AttrEnumerated, Names
// holds the enumeration values in declaration order, and IsNotation
// distinguishes a NOTATION enumeration from a plain one.
type AttrType struct {
	Kind       AttrTypeKind
	Tokenized  TokenizedKind
	IsNotation bool
	Names      []string
}

// AttrDefaultKind discriminates the cases of AttrDefault.
type AttrDefaultKind int

const (
	DefaultRequired AttrDefaultKind = iota
	DefaultImplied
	DefaultCustom
)

// AttrDefault is an attribute's default-value declaration: #REQUIRED,
// #IMPLIED, or a literal value (optionally prefixed with #FIXED, recorded
// via IsFixed).
type AttrDefault struct {
	Kind    AttrDefaultKind
	Value   string
	IsFixed bool
}

// AttrDecl is one attribute definition inside an AttListDecl.
type AttrDecl struct {
	Name    string
	Type    AttrType
	Default AttrDefault
}

// EntityKind classifies a declared entity along the two axes that matter
// to a consumer deciding how to resolve it: general vs. parameter, and
// internal vs. external, with external general entities further split on
// whether they carry an NDATA notation (unparsed) or not (parsed). This is
// supplemental to the wire-level fields on EntityDecl (IsParameter,
// IsExtern, ExternNotation); it exists so callers don't all have to
// re-derive the same five-way classification from those three fields.
type EntityKind int

const (
	InternalGeneralEntity EntityKind = iota + 1
	ExternalGeneralParsedEntity
	ExternalGeneralUnparsedEntity
	InternalParameterEntity
	ExternalParameterEntity
)

func classifyEntity(isParameter, isExtern, hasNotation bool) EntityKind {
	switch {
	case isParameter && isExtern:
		return ExternalParameterEntity
	case isParameter:
		return InternalParameterEntity
	case isExtern && hasNotation:
		return ExternalGeneralUnparsedEntity
	case isExtern:
		return ExternalGeneralParsedEntity
	default:
		return InternalGeneralEntity
	}
}

// Token is the sum type Scanner.Get returns: one value per declaration
// kind in §3, plus EOF. Callers discriminate with a type switch.
type Token interface {
	Position() Position
	tokenMarker()
}

type tokenBase struct {
	Pos Position
}

func (t tokenBase) Position() Position { return t.Pos }
func (tokenBase) tokenMarker()         {}

// PI is a processing instruction, "<?Target Content?>".
type PI struct {
	tokenBase
	Target  string
	Content string
}

// TextDecl is the "<?xml version="1.0" encoding="..."?>" declaration
// legal only at the very start of an external subset. Version and
// Encoding are empty strings when the corresponding pseudo-attribute was
// omitted (Version is in practice always present; Encoding is optional).
type TextDecl struct {
	tokenBase
	Version  string
	Encoding string
}

// Comment is a "<!-- ... -->" comment; Data excludes the delimiters.
type Comment struct {
	tokenBase
	Data string
}

// EntityDecl is a "<!ENTITY ...>" or "<!ENTITY % ...>" declaration. HasValue
// distinguishes "Value is the empty string" from "there is no internal
// value because this is an external entity". PublicID, SystemID, and
// ExternNotation are empty unless IsExtern is true (ExternNotation further
// requires a general, not parameter, entity).
type EntityDecl struct {
	tokenBase
	Name           string
	IsParameter    bool
	IsExtern       bool
	PublicID       string
	SystemID       string
	Value          string
	HasValue       bool
	ExternNotation string
	Kind           EntityKind
}

// ElementDecl is a "<!ELEMENT Name ContentSpec>" declaration.
type ElementDecl struct {
	tokenBase
	Name  string
	Entry *ContentModel
}

// AttListDecl is a "<!ATTLIST Name AttDef*>" declaration. Attributes is in
// declaration order; a name repeated later in the same declaration is
// dropped and reported through the scanner's ErrorSink rather than
// appearing twice.
type AttListDecl struct {
	tokenBase
	Name       string
	Attributes []AttrDecl
}

// NotationDecl is a "<!NOTATION Name ExternalID>" declaration. SystemID is
// empty when only a PUBLIC identifier with no accompanying system literal
// was given (legal for notations, unlike entities and external subsets).
type NotationDecl struct {
	tokenBase
	Name     string
	PublicID string
	SystemID string
}

// EOF marks the end of the subset being scanned: the outer ']' of an
// internal subset, or true end of input for an external subset.
type EOF struct {
	tokenBase
}
