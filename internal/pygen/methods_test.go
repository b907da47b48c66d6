package pygen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/answerforge/answerforge/internal/schema"
)

func TestSynthesizeMethods(t *testing.T) {
	city := schema.FieldDefinition{
		Name: "city", Kind: schema.KindString, Required: true,
		Correct: schema.StringValue("Paris"),
	}
	pop := schema.FieldDefinition{
		Name: "pop", Kind: schema.KindInteger, Required: true,
		Correct: schema.IntValue(2100000),
	}

	t.Run("no fields yields no methods", func(t *testing.T) {
		require.Nil(t, SynthesizeMethods(nil, schema.PatternMultiple))
		require.Nil(t, SynthesizeMethods(nil, schema.PatternSingle))
	})

	t.Run("single pattern assigns the literal directly", func(t *testing.T) {
		ms := SynthesizeMethods([]schema.FieldDefinition{city}, schema.PatternSingle)
		require.Len(t, ms, 2)
		require.Equal(t, schema.MethodInit, ms[0].Name)
		require.Equal(t, "def set_correct_answer(self):\n    self.correct_answer = \"Paris\"", ms[0].Code)
		require.Equal(t, schema.MethodVerify, ms[1].Name)
		require.Equal(t, "def verify(self) -> bool:\n    return self.city == self.correct_answer", ms[1].Code)
	})

	t.Run("multiple pattern assigns a mapping in field order", func(t *testing.T) {
		ms := SynthesizeMethods([]schema.FieldDefinition{city, pop}, schema.PatternMultiple)
		require.Len(t, ms, 3)
		require.Equal(t,
			"def set_correct_answer(self):\n    self.correct_answer = {\"city\": \"Paris\", \"pop\": 2100000}",
			ms[0].Code)
		require.Equal(t,
			"def verify(self) -> bool:\n    return self.city == self.correct_answer[\"city\"] and self.pop == self.correct_answer[\"pop\"]",
			ms[1].Code)
	})

	t.Run("granular counts one point per field", func(t *testing.T) {
		ms := SynthesizeMethods([]schema.FieldDefinition{city, pop}, schema.PatternMultiple)
		want := "def verify_granular(self) -> float:\n" +
			"    score = 0\n" +
			"    if self.city == self.correct_answer[\"city\"]:\n" +
			"        score += 1\n" +
			"    if self.pop == self.correct_answer[\"pop\"]:\n" +
			"        score += 1\n" +
			"    return score / 2"
		require.Equal(t, schema.MethodGranular, ms[2].Name)
		require.Equal(t, want, ms[2].Code)
	})

	t.Run("one non-list field has no granular method", func(t *testing.T) {
		ms := SynthesizeMethods([]schema.FieldDefinition{city}, schema.PatternMultiple)
		require.Len(t, ms, 2)
	})

	t.Run("sole list field scores per element", func(t *testing.T) {
		steps := schema.FieldDefinition{
			Name: "steps", Kind: schema.KindList, Required: true, ItemKind: schema.KindString,
			Correct: schema.ListValue(schema.StringValue("a"), schema.StringValue("b")),
		}
		ms := SynthesizeMethods([]schema.FieldDefinition{steps}, schema.PatternSingle)
		require.Len(t, ms, 3)
		g := ms[2].Code
		require.Contains(t, g, "if not self.correct_answer:")
		require.Contains(t, g, "return 0.0")
		require.Contains(t, g, "matched / len(self.correct_answer)")
	})

	t.Run("sole list field under multiple pattern indexes the mapping", func(t *testing.T) {
		steps := schema.FieldDefinition{Name: "steps", Kind: schema.KindList, Required: true}
		ms := SynthesizeMethods([]schema.FieldDefinition{steps}, schema.PatternMultiple)
		require.Len(t, ms, 3)
		require.Contains(t, ms[2].Code, "self.correct_answer[\"steps\"]")
	})

	t.Run("single pattern with several fields degenerates", func(t *testing.T) {
		ms := SynthesizeMethods([]schema.FieldDefinition{city, pop}, schema.PatternSingle)
		require.Len(t, ms, 3)
		require.Equal(t,
			"def verify_granular(self) -> float:\n    return 1.0 if self.verify() else 0.0",
			ms[2].Code)
		// the verifier and initializer still use only the first field's literal
		require.Contains(t, ms[0].Code, "self.correct_answer = \"Paris\"")
	})

	t.Run("idempotent for identical input", func(t *testing.T) {
		a := SynthesizeMethods([]schema.FieldDefinition{city, pop}, schema.PatternMultiple)
		b := SynthesizeMethods([]schema.FieldDefinition{city, pop}, schema.PatternMultiple)
		require.Equal(t, a, b)
	})
}
