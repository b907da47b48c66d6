package pyparse

import (
	"fmt"
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

// applyAnnotation decodes a type annotation back into the field's kind,
// required flag, and kind-specific payload. It accepts exactly the annotation
// forms the generator emits.
func applyAnnotation(f *schema.FieldDefinition, ann string) error {
	ann = strings.TrimSpace(ann)
	f.Required = true
	if inner, ok := unwrap(ann, "Optional"); ok {
		f.Required = false
		ann = strings.TrimSpace(inner)
	}
	switch {
	case ann == "str":
		f.Kind = schema.KindString
	case ann == "int":
		f.Kind = schema.KindInteger
	case ann == "float":
		f.Kind = schema.KindFloat
	case ann == "bool":
		f.Kind = schema.KindBoolean
	case ann == "date":
		f.Kind = schema.KindDate
	default:
		return applyParametrized(f, ann)
	}
	return nil
}

func applyParametrized(f *schema.FieldDefinition, ann string) error {
	if inner, ok := unwrap(ann, "Literal"); ok {
		parts, err := splitTopLevel(inner)
		if err != nil {
			return err
		}
		f.Kind = schema.KindLiteral
		for _, p := range parts {
			v, err := unquotePy(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("literal annotation: %w", err)
			}
			f.LiteralValues = append(f.LiteralValues, v)
		}
		return nil
	}
	if inner, ok := unwrap(ann, "List"); ok {
		f.Kind = schema.KindList
		return applyItemKind(f, inner)
	}
	if inner, ok := unwrap(ann, "Set"); ok {
		f.Kind = schema.KindSet
		return applyItemKind(f, inner)
	}
	if inner, ok := unwrap(ann, "Union"); ok {
		parts, err := splitTopLevel(inner)
		if err != nil {
			return err
		}
		f.Kind = schema.KindUnion
		for _, p := range parts {
			k, err := memberKind(strings.TrimSpace(p))
			if err != nil {
				return err
			}
			f.UnionKinds = append(f.UnionKinds, k)
		}
		return nil
	}
	return fmt.Errorf("unsupported annotation %q", ann)
}

func applyItemKind(f *schema.FieldDefinition, inner string) error {
	k, err := memberKind(strings.TrimSpace(inner))
	if err != nil {
		return err
	}
	if k == schema.KindNone {
		return fmt.Errorf("None is not a valid item annotation")
	}
	f.ItemKind = k
	return nil
}

func memberKind(s string) (schema.FieldKind, error) {
	switch s {
	case "str":
		return schema.KindString, nil
	case "int":
		return schema.KindInteger, nil
	case "float":
		return schema.KindFloat, nil
	case "bool":
		return schema.KindBoolean, nil
	case "date":
		return schema.KindDate, nil
	case "None":
		return schema.KindNone, nil
	}
	return "", fmt.Errorf("unsupported member annotation %q", s)
}

// unwrap returns the bracketed payload of a parametrized annotation like
// Optional[...] when the outer name matches and the brackets balance.
func unwrap(ann, name string) (string, bool) {
	if !strings.HasPrefix(ann, name+"[") || !strings.HasSuffix(ann, "]") {
		return "", false
	}
	inner := ann[len(name)+1 : len(ann)-1]
	depth := 0
	inStr := byte(0)
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inStr = c
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return "", false
			}
		}
	}
	return inner, depth == 0 && inStr == 0
}

// splitTopLevel splits on commas outside brackets and string literals.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth := 0
	inStr := byte(0)
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr != 0 {
			if c == '\\' {
				i++
			} else if c == inStr {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inStr = c
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced brackets in %q", s)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 || inStr != 0 {
		return nil, fmt.Errorf("unbalanced brackets in %q", s)
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		parts = append(parts, s[start:])
	}
	return parts, nil
}
