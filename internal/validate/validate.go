// Package validate produces advisory issues for field names, field type
// configurations, and whole class models. Everything here is pure and total:
// issues are returned as data and never block generation by themselves.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

// Severity categorizes an issue. Only errors block accepting a field.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Issue is one validation finding about a name or field.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// HasErrors reports whether any issue is error-level.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// pythonKeywords are reserved words of the target language.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// pydanticReserved are base-model attribute and method names a field must not
// shadow (beyond the model_ prefix, which is checked separately).
var pydanticReserved = map[string]bool{
	"dict": true, "json": true, "copy": true, "schema": true,
	"schema_json": true, "construct": true, "validate": true,
	"parse_obj": true, "parse_raw": true, "update_forward_refs": true,
}

// baseClassReserved are the attributes and methods the fixed base class owns.
var baseClassReserved = map[string]bool{
	schema.AttrIdentity:   true,
	schema.AttrCorrect:    true,
	schema.MethodInit:     true,
	schema.MethodVerify:   true,
	schema.MethodGranular: true,
}

// builtinShadows are builtin type and function names worth a warning.
var builtinShadows = map[string]bool{
	"str": true, "int": true, "float": true, "bool": true, "list": true,
	"dict": true, "set": true, "tuple": true, "bytes": true, "object": true,
	"type": true, "input": true, "print": true, "len": true, "sum": true,
	"min": true, "max": true, "map": true, "filter": true,
}

const maxNameLength = 50

// Identifier checks a field name against the target language, the base-model
// framework, and the fixed base class.
func Identifier(name string) []Issue {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Name: name, Message: fmt.Sprintf(format, args...)})
	}
	if name == "" {
		add(SeverityError, "field name is empty")
		return issues
	}
	if name[0] >= '0' && name[0] <= '9' {
		add(SeverityError, "field name must not start with a digit")
		return issues
	}
	if !identifierRe.MatchString(name) {
		add(SeverityError, "field name must start with a letter or underscore, followed by letters, digits, or underscores")
		return issues
	}
	if pythonKeywords[name] {
		add(SeverityError, "%q is a reserved keyword", name)
	}
	if strings.HasPrefix(name, "model_") {
		add(SeverityError, "names starting with %q are reserved by the base model framework", "model_")
	}
	if pydanticReserved[name] {
		add(SeverityError, "%q is a reserved base model attribute", name)
	}
	if baseClassReserved[name] {
		add(SeverityError, "%q is reserved by the %s base class", name, schema.BaseClassName)
	}
	if builtinShadows[name] && !pydanticReserved[name] {
		add(SeverityWarning, "%q shadows a builtin name", name)
	}
	if strings.Contains(name, "__") {
		add(SeverityWarning, "double underscores are conventionally reserved for special members")
	}
	if strings.ToLower(name) != name {
		add(SeverityWarning, "field names should be lower_snake_case")
	}
	if len(name) > maxNameLength {
		add(SeverityWarning, "name is longer than %d characters; consider shortening it", maxNameLength)
	}
	if len(name) == 1 {
		add(SeveritySuggestion, "single-character names are hard to read")
	}
	return issues
}

// Field checks a field's type configuration: payload completeness for its
// kind plus description hygiene.
func Field(f schema.FieldDefinition) []Issue {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Name: f.Name, Message: fmt.Sprintf(format, args...)})
	}
	switch f.Kind {
	case schema.KindLiteral:
		resolvable := 0
		blank := 0
		seen := map[string]bool{}
		dup := false
		for _, v := range f.LiteralValues {
			if strings.TrimSpace(v) == "" {
				blank++
				continue
			}
			resolvable++
			lower := strings.ToLower(v)
			if seen[lower] {
				dup = true
			}
			seen[lower] = true
		}
		if resolvable == 0 {
			add(SeverityError, "literal field needs at least one non-blank value")
		}
		if blank > 0 {
			add(SeverityWarning, "literal field has blank values")
		}
		if dup {
			add(SeverityWarning, "literal field has duplicate values (case-insensitive)")
		}
	case schema.KindList, schema.KindSet:
		if f.ItemKind == "" {
			add(SeverityWarning, "no item kind set; defaulting to string")
		}
	case schema.KindUnion:
		if len(f.UnionKinds) < 2 {
			add(SeverityWarning, "union field should have at least 2 member kinds")
		}
		for _, k := range f.UnionKinds {
			if k == schema.KindNone && f.Required {
				add(SeverityWarning, "union includes None but the field is required")
				break
			}
		}
	case schema.KindRegexMatch:
		if strings.TrimSpace(f.RegexPattern) == "" {
			add(SeverityWarning, "regex field has no pattern")
		}
	}
	switch {
	case f.Description == "":
		add(SeveritySuggestion, "consider adding a description")
	case len(f.Description) < 8:
		add(SeveritySuggestion, "description is very short")
	case len(f.Description) > 500:
		add(SeveritySuggestion, "description is very long")
	}
	return issues
}

// ClassName checks the class identifier itself. The generated header must
// survive a re-parse, so anything that is not a legal identifier is an error.
func ClassName(name string) []Issue {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Name: name, Message: fmt.Sprintf(format, args...)})
	}
	if name == "" {
		add(SeverityError, "class name is empty")
		return issues
	}
	if !identifierRe.MatchString(name) {
		add(SeverityError, "class name must start with a letter or underscore, followed by letters, digits, or underscores")
		return issues
	}
	if pythonKeywords[name] {
		add(SeverityError, "%q is a reserved keyword", name)
	}
	if name == schema.BaseClassName {
		add(SeverityError, "class name shadows the %s base class", schema.BaseClassName)
	}
	if name[0] >= 'a' && name[0] <= 'z' {
		add(SeverityWarning, "class names are conventionally CapitalizedWords")
	}
	return issues
}

// Class checks a whole model: per-field name and type issues, duplicate
// names, and class-level hygiene.
func Class(c *schema.ClassDefinition) []Issue {
	issues := ClassName(c.Name)
	seen := map[string]bool{}
	for _, f := range c.Fields {
		if seen[f.Name] {
			issues = append(issues, Issue{Severity: SeverityError, Name: f.Name, Message: fmt.Sprintf("duplicate field name %q", f.Name)})
		}
		seen[f.Name] = true
		issues = append(issues, Identifier(f.Name)...)
		issues = append(issues, Field(f)...)
	}
	if c.Pattern == schema.PatternSingle && len(c.Fields) > 1 {
		issues = append(issues, Issue{Severity: SeverityWarning, Message: "single correctness pattern with several fields degrades to all-or-nothing verification"})
	}
	if len(c.Fields) == 0 {
		issues = append(issues, Issue{Severity: SeveritySuggestion, Message: "class has no fields yet"})
	}
	return issues
}
