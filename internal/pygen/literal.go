package pygen

import (
	"strconv"
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

// FormatValue renders a correctness value as literal source text, steered by
// the owning field's declared kind. Total: malformed numeric input coerces to
// 0/0.0, anything unrecognized falls back to the quoted-string rendering, and
// absent values render as None.
func FormatValue(v schema.Value, kind schema.FieldKind) string {
	if v.IsAbsent() {
		return "None"
	}
	switch kind {
	case schema.KindString, schema.KindLiteral, schema.KindDate, schema.KindRegexMatch:
		return quoteString(stringify(v))
	case schema.KindBoolean:
		return formatBool(v)
	case schema.KindInteger:
		return formatInt(v)
	case schema.KindFloat:
		return formatFloat(v)
	case schema.KindList:
		return FormatListValue(v, defaultItemKind)
	case schema.KindSet:
		return formatSetValue(v, defaultItemKind)
	case schema.KindUnion:
		return formatByTag(v)
	}
	return quoteString(stringify(v))
}

// FormatListValue renders a list field's value with its declared item kind.
func FormatListValue(v schema.Value, itemKind schema.FieldKind) string {
	if v.IsAbsent() {
		return "None"
	}
	if itemKind == "" {
		itemKind = defaultItemKind
	}
	items, ok := v.AsList()
	if !ok {
		// non-list input under a list kind: coerce to a one-element sequence
		return "[" + FormatValue(v, itemKind) + "]"
	}
	parts := make([]string, len(items))
	for i := range items {
		parts[i] = FormatValue(items[i], itemKind)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatFieldValue is the entry point used by the method synthesizer: it
// dispatches on the whole field so collection item kinds are honored.
func FormatFieldValue(f schema.FieldDefinition) string {
	v := f.Correct
	switch f.Kind {
	case schema.KindList:
		return FormatListValue(v, f.ItemKind)
	case schema.KindSet:
		if v.IsAbsent() {
			return "None"
		}
		return formatSetValue(v, f.ItemKind)
	}
	return FormatValue(v, f.Kind)
}

func formatSetValue(v schema.Value, itemKind schema.FieldKind) string {
	if itemKind == "" {
		itemKind = defaultItemKind
	}
	items, ok := v.AsList()
	if !ok {
		return "{" + FormatValue(v, itemKind) + "}"
	}
	if len(items) == 0 {
		return "set()"
	}
	parts := make([]string, len(items))
	for i := range items {
		parts[i] = FormatValue(items[i], itemKind)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatBool(v schema.Value) string {
	if b, ok := v.AsBool(); ok {
		return pyBool(b)
	}
	if s, ok := v.AsString(); ok {
		if b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s))); err == nil {
			return pyBool(b)
		}
	}
	if i, ok := v.AsInt(); ok {
		return pyBool(i != 0)
	}
	return quoteString(stringify(v))
}

func formatInt(v schema.Value) string {
	if i, ok := v.AsInt(); ok {
		return strconv.FormatInt(i, 10)
	}
	if f, ok := v.AsFloat(); ok {
		return strconv.FormatInt(int64(f), 10)
	}
	if s, ok := v.AsString(); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
	}
	return "0"
}

func formatFloat(v schema.Value) string {
	if f, ok := v.AsFloat(); ok {
		return pyFloat(f)
	}
	if i, ok := v.AsInt(); ok {
		return pyFloat(float64(i))
	}
	if s, ok := v.AsString(); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return pyFloat(f)
		}
	}
	return "0.0"
}

// formatByTag renders by the value's own runtime tag, for union fields whose
// declared kind does not pin one shape.
func formatByTag(v schema.Value) string {
	switch v.Kind() {
	case schema.ValueAbsent:
		return "None"
	case schema.ValueString:
		s, _ := v.AsString()
		return quoteString(s)
	case schema.ValueInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10)
	case schema.ValueFloat:
		f, _ := v.AsFloat()
		return pyFloat(f)
	case schema.ValueBool:
		b, _ := v.AsBool()
		return pyBool(b)
	case schema.ValueList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i := range items {
			parts[i] = formatByTag(items[i])
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return quoteString(stringify(v))
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// pyFloat always keeps a decimal point or exponent so the literal stays a
// float on the Python side.
func pyFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// quoteString renders a double-quoted literal with internal quotes, backslashes
// and control characters escaped.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func stringify(v schema.Value) string {
	switch v.Kind() {
	case schema.ValueString:
		s, _ := v.AsString()
		return s
	case schema.ValueInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10)
	case schema.ValueFloat:
		f, _ := v.AsFloat()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case schema.ValueBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case schema.ValueList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i := range items {
			parts[i] = stringify(items[i])
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
