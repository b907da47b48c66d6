package pygen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/answerforge/answerforge/internal/schema"
)

func TestAnnotation(t *testing.T) {
	t.Run("required scalars", func(t *testing.T) {
		require.Equal(t, "str", Annotation(schema.FieldDefinition{Kind: schema.KindString, Required: true}))
		require.Equal(t, "int", Annotation(schema.FieldDefinition{Kind: schema.KindInteger, Required: true}))
		require.Equal(t, "float", Annotation(schema.FieldDefinition{Kind: schema.KindFloat, Required: true}))
		require.Equal(t, "bool", Annotation(schema.FieldDefinition{Kind: schema.KindBoolean, Required: true}))
		require.Equal(t, "date", Annotation(schema.FieldDefinition{Kind: schema.KindDate, Required: true}))
	})

	t.Run("optional wraps once", func(t *testing.T) {
		require.Equal(t, "Optional[int]", Annotation(schema.FieldDefinition{Kind: schema.KindInteger}))
		require.Equal(t, "Optional[List[str]]", Annotation(schema.FieldDefinition{Kind: schema.KindList}))
	})

	t.Run("literal quotes each value", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindLiteral, Required: true, LiteralValues: []string{"a", "b"}}
		require.Equal(t, `Literal["a", "b"]`, Annotation(f))
	})

	t.Run("literal skips blank values", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindLiteral, Required: true, LiteralValues: []string{"a", "  ", "b"}}
		require.Equal(t, `Literal["a", "b"]`, Annotation(f))
	})

	t.Run("literal with no resolvable values degrades to str", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindLiteral, Required: true, LiteralValues: []string{"", "   "}}
		require.Equal(t, "str", Annotation(f))
	})

	t.Run("collections honor the item kind", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindList, Required: true, ItemKind: schema.KindInteger}
		require.Equal(t, "List[int]", Annotation(f))
		f = schema.FieldDefinition{Kind: schema.KindSet, Required: true, ItemKind: schema.KindDate}
		require.Equal(t, "Set[date]", Annotation(f))
	})

	t.Run("collection item kind defaults to str", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindList, Required: true}
		require.Equal(t, "List[str]", Annotation(f))
	})

	t.Run("union joins member kinds", func(t *testing.T) {
		f := schema.FieldDefinition{
			Kind:       schema.KindUnion,
			Required:   true,
			UnionKinds: []schema.FieldKind{schema.KindString, schema.KindFloat, schema.KindNone},
		}
		require.Equal(t, "Union[str, float, None]", Annotation(f))
	})

	t.Run("under-filled union falls back", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindUnion, Required: true, UnionKinds: []schema.FieldKind{schema.KindFloat}}
		require.Equal(t, "Union[str, int]", Annotation(f))
	})

	t.Run("regex fields annotate as plain str", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindRegexMatch, Required: true, RegexPattern: "x+"}
		require.Equal(t, "str", Annotation(f))
	})

	t.Run("literal value containing a quote is escaped", func(t *testing.T) {
		f := schema.FieldDefinition{Kind: schema.KindLiteral, Required: true, LiteralValues: []string{`say "hi"`}}
		require.Equal(t, `Literal["say \"hi\""]`, Annotation(f))
	})
}
