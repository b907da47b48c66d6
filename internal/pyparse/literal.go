package pyparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

// dictEntry is one ordered entry of a parsed correctness mapping.
type dictEntry struct {
	Key string
	Val schema.Value
}

// correctness is the decoded right-hand side of the ground-truth assignment:
// either a mapping (multiple pattern) or a single value (single pattern).
type correctness struct {
	Entries []dictEntry
	Single  schema.Value
	IsDict  bool
}

// parseCorrectness decodes the literal text assigned to the correctness
// attribute.
func parseCorrectness(s string) (correctness, error) {
	sc := &litScanner{s: s}
	sc.skipSpace()
	if sc.peek() == '{' {
		entries, values, isDict, err := sc.scanBrace()
		if err != nil {
			return correctness{}, err
		}
		if err := sc.expectEnd(); err != nil {
			return correctness{}, err
		}
		if isDict {
			return correctness{Entries: entries, IsDict: true}, nil
		}
		return correctness{Single: schema.ListValue(values...)}, nil
	}
	v, err := sc.scanValue()
	if err != nil {
		return correctness{}, err
	}
	if err := sc.expectEnd(); err != nil {
		return correctness{}, err
	}
	return correctness{Single: v}, nil
}

// parseValue decodes a single literal (scalar, list, or set).
func parseValue(s string) (schema.Value, error) {
	sc := &litScanner{s: s}
	v, err := sc.scanValue()
	if err != nil {
		return schema.Value{}, err
	}
	if err := sc.expectEnd(); err != nil {
		return schema.Value{}, err
	}
	return v, nil
}

// litScanner is a small recursive-descent reader over one literal expression.
type litScanner struct {
	s string
	i int
}

func (sc *litScanner) peek() byte {
	if sc.i >= len(sc.s) {
		return 0
	}
	return sc.s[sc.i]
}

func (sc *litScanner) skipSpace() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n', '\r':
			sc.i++
		default:
			return
		}
	}
}

func (sc *litScanner) expectEnd() error {
	sc.skipSpace()
	if sc.i != len(sc.s) {
		return fmt.Errorf("unexpected trailing text %q", sc.s[sc.i:])
	}
	return nil
}

func (sc *litScanner) scanValue() (schema.Value, error) {
	sc.skipSpace()
	switch c := sc.peek(); {
	case c == 0:
		return schema.Value{}, fmt.Errorf("unexpected end of literal")
	case c == '"' || c == '\'':
		s, err := sc.scanString()
		if err != nil {
			return schema.Value{}, err
		}
		return schema.StringValue(s), nil
	case c == '[':
		return sc.scanList()
	case c == '{':
		_, values, isDict, err := sc.scanBrace()
		if err != nil {
			return schema.Value{}, err
		}
		if isDict {
			return schema.Value{}, fmt.Errorf("nested mappings are not supported")
		}
		return schema.ListValue(values...), nil
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return sc.scanNumber()
	}
	if sc.scanKeyword("None") {
		return schema.Absent(), nil
	}
	if sc.scanKeyword("True") {
		return schema.BoolValue(true), nil
	}
	if sc.scanKeyword("False") {
		return schema.BoolValue(false), nil
	}
	if sc.scanKeyword("set()") {
		return schema.ListValue(), nil
	}
	return schema.Value{}, fmt.Errorf("unrecognized literal at %q", sc.s[sc.i:])
}

func (sc *litScanner) scanKeyword(kw string) bool {
	if strings.HasPrefix(sc.s[sc.i:], kw) {
		sc.i += len(kw)
		return true
	}
	return false
}

func (sc *litScanner) scanString() (string, error) {
	quote := sc.s[sc.i]
	sc.i++
	var b strings.Builder
	for sc.i < len(sc.s) {
		c := sc.s[sc.i]
		switch c {
		case '\\':
			sc.i++
			if sc.i >= len(sc.s) {
				return "", fmt.Errorf("unterminated escape in string literal")
			}
			switch sc.s[sc.i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"', '\'':
				b.WriteByte(sc.s[sc.i])
			default:
				b.WriteByte('\\')
				b.WriteByte(sc.s[sc.i])
			}
			sc.i++
		case quote:
			sc.i++
			return b.String(), nil
		default:
			b.WriteByte(c)
			sc.i++
		}
	}
	return "", fmt.Errorf("unterminated string literal")
}

func (sc *litScanner) scanNumber() (schema.Value, error) {
	start := sc.i
	if c := sc.peek(); c == '-' || c == '+' {
		sc.i++
	}
	isFloat := false
	for sc.i < len(sc.s) {
		c := sc.s[sc.i]
		if c >= '0' && c <= '9' {
			sc.i++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			sc.i++
			continue
		}
		if (c == '-' || c == '+') && isFloat && (sc.s[sc.i-1] == 'e' || sc.s[sc.i-1] == 'E') {
			sc.i++
			continue
		}
		break
	}
	text := sc.s[start:sc.i]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return schema.Value{}, fmt.Errorf("bad float literal %q", text)
		}
		return schema.FloatValue(f), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return schema.Value{}, fmt.Errorf("bad integer literal %q", text)
	}
	return schema.IntValue(n), nil
}

func (sc *litScanner) scanList() (schema.Value, error) {
	sc.i++ // consume '['
	var items []schema.Value
	sc.skipSpace()
	if sc.peek() == ']' {
		sc.i++
		return schema.ListValue(), nil
	}
	for {
		v, err := sc.scanValue()
		if err != nil {
			return schema.Value{}, err
		}
		items = append(items, v)
		sc.skipSpace()
		switch sc.peek() {
		case ',':
			sc.i++
			sc.skipSpace()
			if sc.peek() == ']' { // trailing comma
				sc.i++
				return schema.ListValue(items...), nil
			}
		case ']':
			sc.i++
			return schema.ListValue(items...), nil
		default:
			return schema.Value{}, fmt.Errorf("expected ',' or ']' in list literal")
		}
	}
}

// scanBrace reads a {...} literal, which is a mapping when the first element
// is followed by ':' and a set otherwise.
func (sc *litScanner) scanBrace() ([]dictEntry, []schema.Value, bool, error) {
	sc.i++ // consume '{'
	sc.skipSpace()
	if sc.peek() == '}' { // {} is an empty mapping
		sc.i++
		return nil, nil, true, nil
	}
	first, err := sc.scanValue()
	if err != nil {
		return nil, nil, false, err
	}
	sc.skipSpace()
	if sc.peek() != ':' {
		// set literal
		values := []schema.Value{first}
		for {
			sc.skipSpace()
			switch sc.peek() {
			case ',':
				sc.i++
				sc.skipSpace()
				if sc.peek() == '}' {
					sc.i++
					return nil, values, false, nil
				}
				v, err := sc.scanValue()
				if err != nil {
					return nil, nil, false, err
				}
				values = append(values, v)
			case '}':
				sc.i++
				return nil, values, false, nil
			default:
				return nil, nil, false, fmt.Errorf("expected ',' or '}' in set literal")
			}
		}
	}
	// mapping: first must be a string key
	key, ok := first.AsString()
	if !ok {
		return nil, nil, false, fmt.Errorf("mapping keys must be strings")
	}
	entries := []dictEntry{}
	for {
		sc.i++ // consume ':'
		val, err := sc.scanValue()
		if err != nil {
			return nil, nil, false, err
		}
		entries = append(entries, dictEntry{Key: key, Val: val})
		sc.skipSpace()
		switch sc.peek() {
		case ',':
			sc.i++
			sc.skipSpace()
			if sc.peek() == '}' { // trailing comma
				sc.i++
				return entries, nil, true, nil
			}
		case '}':
			sc.i++
			return entries, nil, true, nil
		default:
			return nil, nil, false, fmt.Errorf("expected ',' or '}' in mapping literal")
		}
		next, err := sc.scanValue()
		if err != nil {
			return nil, nil, false, err
		}
		key, ok = next.AsString()
		if !ok {
			return nil, nil, false, fmt.Errorf("mapping keys must be strings")
		}
		sc.skipSpace()
		if sc.peek() != ':' {
			return nil, nil, false, fmt.Errorf("expected ':' after mapping key")
		}
	}
}

// unquotePy decodes one quoted Python string literal.
func unquotePy(s string) (string, error) {
	if len(s) < 2 || (s[0] != '"' && s[0] != '\'') {
		return "", fmt.Errorf("expected string literal, got %q", s)
	}
	sc := &litScanner{s: s}
	out, err := sc.scanString()
	if err != nil {
		return "", err
	}
	if err := sc.expectEnd(); err != nil {
		return "", err
	}
	return out, nil
}
