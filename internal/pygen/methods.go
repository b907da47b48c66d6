package pygen

import (
	"strconv"
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

// SynthesizeMethods derives the three correctness methods from the ordered
// field list and the correctness pattern. Idempotent: an unchanged input
// always yields byte-identical method bodies. A field-less class gets no
// methods at all and serializes to a bare pass body.
func SynthesizeMethods(fields []schema.FieldDefinition, pattern schema.CorrectnessPattern) []schema.Method {
	if len(fields) == 0 {
		return nil
	}
	single := pattern == schema.PatternSingle
	methods := []schema.Method{
		synthesizeInit(fields, single),
		synthesizeVerify(fields, single),
	}
	if g, ok := synthesizeGranular(fields, single); ok {
		methods = append(methods, g)
	}
	return methods
}

// synthesizeInit assigns the ground truth: a direct literal under the single
// pattern, a mapping keyed by field name under the multiple pattern.
func synthesizeInit(fields []schema.FieldDefinition, single bool) schema.Method {
	var b strings.Builder
	b.WriteString("def " + schema.MethodInit + "(self):\n")
	if single {
		b.WriteString("    self." + schema.AttrCorrect + " = " + FormatFieldValue(fields[0]))
	} else {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = quoteString(f.Name) + ": " + FormatFieldValue(f)
		}
		b.WriteString("    self." + schema.AttrCorrect + " = {" + strings.Join(parts, ", ") + "}")
	}
	return schema.Method{Name: schema.MethodInit, Code: b.String()}
}

// synthesizeVerify compares current values against the ground truth. The
// multiple pattern is a left-to-right short-circuiting conjunction.
func synthesizeVerify(fields []schema.FieldDefinition, single bool) schema.Method {
	var expr string
	if single {
		expr = "self." + fields[0].Name + " == self." + schema.AttrCorrect
	} else {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = fieldMatchExpr(f)
		}
		expr = strings.Join(parts, " and ")
	}
	code := "def " + schema.MethodVerify + "(self) -> bool:\n    return " + expr
	return schema.Method{Name: schema.MethodVerify, Code: code}
}

// synthesizeGranular emits the fractional scorer. It exists only when there
// is more than one field, or exactly one field of list kind.
func synthesizeGranular(fields []schema.FieldDefinition, single bool) (schema.Method, bool) {
	switch {
	case len(fields) == 1 && fields[0].Kind == schema.KindList:
		return granularForList(fields[0], single), true
	case len(fields) <= 1:
		return schema.Method{}, false
	case single:
		// degenerate: single pattern with several fields mirrors the verifier
		code := "def " + schema.MethodGranular + "(self) -> float:\n" +
			"    return 1.0 if self." + schema.MethodVerify + "() else 0.0"
		return schema.Method{Name: schema.MethodGranular, Code: code}, true
	}
	var b strings.Builder
	b.WriteString("def " + schema.MethodGranular + "(self) -> float:\n")
	b.WriteString("    score = 0\n")
	for _, f := range fields {
		b.WriteString("    if " + fieldMatchExpr(f) + ":\n")
		b.WriteString("        score += 1\n")
	}
	b.WriteString("    return score / " + strconv.Itoa(len(fields)))
	return schema.Method{Name: schema.MethodGranular, Code: b.String()}, true
}

// granularForList gives per-element partial credit against the stored list.
func granularForList(f schema.FieldDefinition, single bool) schema.Method {
	truth := "self." + schema.AttrCorrect
	if !single {
		truth += "[" + quoteString(f.Name) + "]"
	}
	var b strings.Builder
	b.WriteString("def " + schema.MethodGranular + "(self) -> float:\n")
	b.WriteString("    if not " + truth + ":\n")
	b.WriteString("        return 0.0\n")
	b.WriteString("    matched = sum(1 for i, v in enumerate(" + truth + ") if i < len(self." + f.Name + ") and self." + f.Name + "[i] == v)\n")
	b.WriteString("    return matched / len(" + truth + ")")
	return schema.Method{Name: schema.MethodGranular, Code: b.String()}
}

func fieldMatchExpr(f schema.FieldDefinition) string {
	return "self." + f.Name + " == self." + schema.AttrCorrect + "[" + quoteString(f.Name) + "]"
}
