package pygen

import (
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

// Fixed annotations used when a field's payload is incomplete. The defaults
// keep generation total: an under-specified field still maps to legal source.
const (
	placeholderLiteral = "str"
	defaultItemKind    = schema.KindString
)

var defaultUnion = []schema.FieldKind{schema.KindString, schema.KindInteger}

// Annotation derives the type annotation for a field from its semantic kind,
// required flag, and kind-specific payload. Pure; re-run on every mutation so
// the emitted annotation never drifts from the field that produced it.
func Annotation(f schema.FieldDefinition) string {
	base := baseAnnotation(f)
	if !f.Required && !strings.HasPrefix(base, "Optional[") {
		return "Optional[" + base + "]"
	}
	return base
}

func baseAnnotation(f schema.FieldDefinition) string {
	switch f.Kind {
	case schema.KindString, schema.KindRegexMatch:
		return "str"
	case schema.KindInteger:
		return "int"
	case schema.KindFloat:
		return "float"
	case schema.KindBoolean:
		return "bool"
	case schema.KindDate:
		return "date"
	case schema.KindLiteral:
		return literalAnnotation(f.LiteralValues)
	case schema.KindList:
		return "List[" + memberAnnotation(f.ItemKind) + "]"
	case schema.KindSet:
		return "Set[" + memberAnnotation(f.ItemKind) + "]"
	case schema.KindUnion:
		return unionAnnotation(f.UnionKinds)
	}
	return "str"
}

func literalAnnotation(values []string) string {
	var kept []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return placeholderLiteral
	}
	parts := make([]string, len(kept))
	for i, v := range kept {
		parts[i] = quoteString(v)
	}
	return "Literal[" + strings.Join(parts, ", ") + "]"
}

func unionAnnotation(kinds []schema.FieldKind) string {
	members := kinds
	if len(members) < 2 {
		members = defaultUnion
	}
	parts := make([]string, len(members))
	for i, k := range members {
		parts[i] = memberAnnotation(k)
	}
	return "Union[" + strings.Join(parts, ", ") + "]"
}

// memberAnnotation maps a collection item or union member kind. Only scalar
// members are expressible; anything else falls back to str.
func memberAnnotation(k schema.FieldKind) string {
	switch k {
	case schema.KindInteger:
		return "int"
	case schema.KindFloat:
		return "float"
	case schema.KindBoolean:
		return "bool"
	case schema.KindDate:
		return "date"
	case schema.KindNone:
		return "None"
	case "", schema.KindString:
		return "str"
	}
	return "str"
}
