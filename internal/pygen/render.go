package pygen

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

// inline Field(...) calls longer than this are wrapped across lines
const maxInlineLine = 88

// Generate serializes a class model into source text: imports, class header,
// optional docstring, one line per field, then the method blocks. Pure and
// deterministic: identical models always produce byte-identical text. An
// error here signals an internal template defect, not bad user input.
func Generate(c *schema.ClassDefinition) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	data := buildClassModel(c)
	var out bytes.Buffer
	if err := fileTmpl.ExecuteTemplate(&out, tmplFile, data); err != nil {
		return "", err
	}
	return out.String(), nil
}

func buildClassModel(c *schema.ClassDefinition) classModel {
	base := c.BaseClass
	if base == "" {
		base = schema.BaseClassName
	}
	m := classModel{
		Imports:   buildImports(c),
		Name:      c.Name,
		Base:      base,
		Docstring: escapeDocstring(c.Docstring),
		Empty:     len(c.Fields) == 0 && len(c.Methods) == 0 && c.Docstring == "",
	}
	for _, f := range c.Fields {
		m.Fields = append(m.Fields, buildFieldModel(f))
	}
	for _, meth := range c.Methods {
		m.Methods = append(m.Methods, buildMethodModel(meth))
	}
	return m
}

func buildFieldModel(f schema.FieldDefinition) fieldModel {
	fm := fieldModel{Name: f.Name, Annotation: Annotation(f)}
	args := fieldArgs(f)
	if len(args) == 0 {
		return fm
	}
	inline := "    " + fm.Name + ": " + fm.Annotation + " = Field(" + strings.Join(args, ", ") + ")"
	fm.Meta = &metaModel{Args: args, Wrapped: len(inline) > maxInlineLine}
	return fm
}

// fieldArgs renders the Field(...) keyword arguments in a fixed order so
// generation stays deterministic. A regex_match field owns the pattern slot;
// its validation-rule pattern is not emitted alongside.
func fieldArgs(f schema.FieldDefinition) []string {
	var args []string
	if f.Description != "" {
		args = append(args, "description="+quoteString(f.Description))
	}
	if f.Kind == schema.KindRegexMatch {
		mode := f.RegexMode
		if mode == "" {
			mode = schema.MatchFull
		}
		args = append(args,
			"pattern="+quoteString(f.RegexPattern),
			"match_mode="+quoteString(string(mode)),
			"expect_match="+pyBool(f.RegexExpected))
		return args
	}
	r := f.Rules
	if r.Empty() {
		return args
	}
	if r.MinLength != nil {
		args = append(args, "min_length="+strconv.Itoa(*r.MinLength))
	}
	if r.MaxLength != nil {
		args = append(args, "max_length="+strconv.Itoa(*r.MaxLength))
	}
	if r.Minimum != nil {
		args = append(args, "ge="+pyNumber(*r.Minimum))
	}
	if r.Maximum != nil {
		args = append(args, "le="+pyNumber(*r.Maximum))
	}
	if r.Pattern != "" {
		args = append(args, "pattern="+quoteString(r.Pattern))
	}
	return args
}

// pyNumber renders a bound without forcing a float form for integral values.
func pyNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// escapeDocstring keeps the docstring on one source line: newlines, quotes,
// and backslashes become escape sequences, which triple-quoted Python strings
// interpret the same way. The parser reverses this exactly.
func escapeDocstring(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// buildMethodModel re-indents the stored zero-indent code to class level.
func buildMethodModel(m schema.Method) methodModel {
	mm := methodModel{Decorator: m.Decorator}
	for _, line := range strings.Split(m.Code, "\n") {
		if line == "" {
			mm.Lines = append(mm.Lines, "")
			continue
		}
		mm.Lines = append(mm.Lines, "    "+line)
	}
	return mm
}

// buildImports derives the import prologue structurally from the field set,
// never by scanning rendered annotations (a Literal value could contain any
// annotation token).
func buildImports(c *schema.ClassDefinition) []string {
	typing := map[string]bool{}
	needDate := false
	needField := false
	for _, f := range c.Fields {
		if !f.Required {
			typing["Optional"] = true
		}
		switch f.Kind {
		case schema.KindDate:
			needDate = true
		case schema.KindLiteral:
			if hasResolvableValue(f.LiteralValues) {
				typing["Literal"] = true
			}
		case schema.KindList:
			typing["List"] = true
			if f.ItemKind == schema.KindDate {
				needDate = true
			}
		case schema.KindSet:
			typing["Set"] = true
			if f.ItemKind == schema.KindDate {
				needDate = true
			}
		case schema.KindUnion:
			typing["Union"] = true
			members := f.UnionKinds
			if len(members) < 2 {
				members = defaultUnion
			}
			for _, k := range members {
				if k == schema.KindDate {
					needDate = true
				}
			}
		}
		if len(fieldArgs(f)) > 0 {
			needField = true
		}
	}
	var lines []string
	if needDate {
		lines = append(lines, "from datetime import date")
	}
	if len(typing) > 0 {
		names := make([]string, 0, len(typing))
		for n := range typing {
			names = append(names, n)
		}
		sort.Strings(names)
		lines = append(lines, "from typing import "+strings.Join(names, ", "))
	}
	if needField {
		lines = append(lines, "from pydantic import Field")
	}
	return lines
}

func hasResolvableValue(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
