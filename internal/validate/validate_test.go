package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/answerforge/answerforge/internal/schema"
)

func severities(issues []Issue) []Severity {
	out := make([]Severity, len(issues))
	for i, is := range issues {
		out[i] = is.Severity
	}
	return out
}

func TestIdentifier(t *testing.T) {
	t.Run("clean name has no issues", func(t *testing.T) {
		require.Empty(t, Identifier("capital_city"))
	})

	t.Run("empty name", func(t *testing.T) {
		issues := Identifier("")
		require.Len(t, issues, 1)
		require.Equal(t, SeverityError, issues[0].Severity)
	})

	t.Run("digit start", func(t *testing.T) {
		issues := Identifier("1st_place")
		require.True(t, HasErrors(issues))
		require.Contains(t, issues[0].Message, "digit")
	})

	t.Run("illegal characters", func(t *testing.T) {
		issues := Identifier("my-field")
		require.True(t, HasErrors(issues))
	})

	t.Run("keyword is an error", func(t *testing.T) {
		issues := Identifier("class")
		require.True(t, HasErrors(issues))
		require.Contains(t, issues[0].Message, "reserved keyword")
	})

	t.Run("model_ prefix is an error", func(t *testing.T) {
		issues := Identifier("model_name")
		require.True(t, HasErrors(issues))
	})

	t.Run("base model serialization name is an error", func(t *testing.T) {
		issues := Identifier("json")
		require.True(t, HasErrors(issues))
	})

	t.Run("base class attributes are errors", func(t *testing.T) {
		for _, name := range []string{"id", "correct_answer", "set_correct_answer", "verify", "verify_granular"} {
			issues := Identifier(name)
			require.True(t, HasErrors(issues), "expected error for %q", name)
		}
	})

	t.Run("builtin shadow is only a warning", func(t *testing.T) {
		issues := Identifier("str")
		require.False(t, HasErrors(issues))
		require.Contains(t, severities(issues), SeverityWarning)
	})

	t.Run("upper case is only a warning", func(t *testing.T) {
		issues := Identifier("My_Field")
		require.False(t, HasErrors(issues))
		require.Contains(t, severities(issues), SeverityWarning)
	})

	t.Run("double underscore warns", func(t *testing.T) {
		issues := Identifier("a__b")
		require.False(t, HasErrors(issues))
		require.Len(t, issues, 1)
	})

	t.Run("overlong name warns", func(t *testing.T) {
		issues := Identifier(strings.Repeat("x", 51))
		require.False(t, HasErrors(issues))
		require.Contains(t, issues[0].Message, "longer than 50")
	})

	t.Run("single character suggestion", func(t *testing.T) {
		issues := Identifier("x")
		require.Len(t, issues, 1)
		require.Equal(t, SeveritySuggestion, issues[0].Severity)
	})
}

func TestField(t *testing.T) {
	t.Run("literal without resolvable values is an error", func(t *testing.T) {
		f := schema.FieldDefinition{Name: "l", Kind: schema.KindLiteral, Description: "pick one", LiteralValues: []string{"", "  "}}
		issues := Field(f)
		require.True(t, HasErrors(issues))
	})

	t.Run("literal blanks and duplicates warn", func(t *testing.T) {
		f := schema.FieldDefinition{
			Name: "l", Kind: schema.KindLiteral, Description: "pick one",
			LiteralValues: []string{"Yes", "yes", ""},
		}
		issues := Field(f)
		require.False(t, HasErrors(issues))
		require.Len(t, issues, 2)
	})

	t.Run("collection without item kind warns", func(t *testing.T) {
		f := schema.FieldDefinition{Name: "xs", Kind: schema.KindList, Description: "the steps"}
		issues := Field(f)
		require.False(t, HasErrors(issues))
		require.Contains(t, issues[0].Message, "item kind")
	})

	t.Run("union needs two members", func(t *testing.T) {
		f := schema.FieldDefinition{Name: "u", Kind: schema.KindUnion, Description: "either or", UnionKinds: []schema.FieldKind{schema.KindString}}
		issues := Field(f)
		require.Contains(t, issues[0].Message, "at least 2")
	})

	t.Run("required union with None warns", func(t *testing.T) {
		f := schema.FieldDefinition{
			Name: "u", Kind: schema.KindUnion, Required: true, Description: "maybe nothing",
			UnionKinds: []schema.FieldKind{schema.KindString, schema.KindNone},
		}
		issues := Field(f)
		require.Contains(t, issues[0].Message, "None")
	})

	t.Run("regex without pattern warns", func(t *testing.T) {
		f := schema.FieldDefinition{Name: "r", Kind: schema.KindRegexMatch, Description: "matches stuff"}
		issues := Field(f)
		require.Contains(t, issues[0].Message, "no pattern")
	})

	t.Run("description hygiene", func(t *testing.T) {
		f := schema.FieldDefinition{Name: "s", Kind: schema.KindString}
		issues := Field(f)
		require.Len(t, issues, 1)
		require.Equal(t, SeveritySuggestion, issues[0].Severity)

		f.Description = "short"
		issues = Field(f)
		require.Contains(t, issues[0].Message, "very short")

		f.Description = strings.Repeat("d", 501)
		issues = Field(f)
		require.Contains(t, issues[0].Message, "very long")
	})
}

func TestClass(t *testing.T) {
	t.Run("empty class name is an error", func(t *testing.T) {
		c := &schema.ClassDefinition{}
		require.True(t, HasErrors(Class(c)))
	})

	t.Run("class name with illegal characters is an error", func(t *testing.T) {
		c := schema.NewClassDefinition("Bad Name")
		issues := Class(c)
		require.True(t, HasErrors(issues))
		require.Contains(t, issues[0].Message, "must start with a letter")
	})

	t.Run("keyword class name is an error", func(t *testing.T) {
		require.True(t, HasErrors(ClassName("class")))
	})

	t.Run("class name shadowing the base class is an error", func(t *testing.T) {
		require.True(t, HasErrors(ClassName(schema.BaseClassName)))
	})

	t.Run("lowercase class name warns", func(t *testing.T) {
		c := schema.NewClassDefinition("answer")
		issues := Class(c)
		require.False(t, HasErrors(issues))
		require.Contains(t, issues[0].Message, "CapitalizedWords")
	})

	t.Run("duplicate field names are errors", func(t *testing.T) {
		c := schema.NewClassDefinition("Answer")
		c.Fields = []schema.FieldDefinition{
			{Name: "x", Kind: schema.KindString, Description: "the first one"},
			{Name: "x", Kind: schema.KindString, Description: "the second one"},
		}
		issues := Class(c)
		require.True(t, HasErrors(issues))
	})

	t.Run("single pattern with several fields warns", func(t *testing.T) {
		c := schema.NewClassDefinition("Answer")
		c.Pattern = schema.PatternSingle
		c.Fields = []schema.FieldDefinition{
			{Name: "first_field", Kind: schema.KindString, Description: "one of two"},
			{Name: "second_field", Kind: schema.KindString, Description: "two of two"},
		}
		issues := Class(c)
		require.False(t, HasErrors(issues))
		found := false
		for _, is := range issues {
			if strings.Contains(is.Message, "all-or-nothing") {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("fieldless class gets a suggestion", func(t *testing.T) {
		c := schema.NewClassDefinition("Answer")
		issues := Class(c)
		require.Len(t, issues, 1)
		require.Equal(t, SeveritySuggestion, issues[0].Severity)
	})
}
