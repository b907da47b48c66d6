package schema

// FieldKind is the semantic type of an answer field. It drives the annotation
// the generator emits and the shape its correctness value may take.
type FieldKind string

const (
	KindString     FieldKind = "string"
	KindInteger    FieldKind = "integer"
	KindFloat      FieldKind = "float"
	KindBoolean    FieldKind = "boolean"
	KindDate       FieldKind = "date"
	KindLiteral    FieldKind = "literal"
	KindList       FieldKind = "list"
	KindSet        FieldKind = "set"
	KindUnion      FieldKind = "union"
	KindRegexMatch FieldKind = "regex_match"

	// KindNone is only legal as a union member; it marks an explicit absence
	// alternative in the emitted union annotation.
	KindNone FieldKind = "none"
)

// scalarKinds are the kinds allowed as collection item or union member kinds.
var scalarKinds = map[FieldKind]bool{
	KindString:  true,
	KindInteger: true,
	KindFloat:   true,
	KindBoolean: true,
	KindDate:    true,
}

// IsScalar reports whether k maps to a fixed base annotation.
func (k FieldKind) IsScalar() bool { return scalarKinds[k] }

// Valid reports whether k is a member of the taxonomy.
func (k FieldKind) Valid() bool {
	switch k {
	case KindString, KindInteger, KindFloat, KindBoolean, KindDate,
		KindLiteral, KindList, KindSet, KindUnion, KindRegexMatch:
		return true
	}
	return false
}

// CorrectnessPattern selects how the ground truth is stored: a single scalar,
// or a mapping keyed by field name.
type CorrectnessPattern string

const (
	PatternSingle   CorrectnessPattern = "single"
	PatternMultiple CorrectnessPattern = "multiple"
)

// RegexMatchMode selects how a regex_match field applies its pattern.
type RegexMatchMode string

const (
	MatchFull   RegexMatchMode = "fullmatch"
	MatchSearch RegexMatchMode = "search"
)
