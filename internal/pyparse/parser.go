package pyparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/answerforge/answerforge/internal/schema"
)

var (
	classRe     = regexp.MustCompile(`^class\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)\s*:\s*$`)
	fieldRe     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+)$`)
	defRe       = regexp.MustCompile(`^def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	decoratorRe = regexp.MustCompile(`^@[A-Za-z_][A-Za-z0-9_.]*(\(.*\))?\s*$`)
)

// Parse recovers a class model from source text. It accepts everything the
// generator emits and rejects anything else with a human-readable error,
// never panicking and never returning a partial model. The caller keeps the
// raw text around on failure; nothing here mutates shared state.
func Parse(text string) (c *schema.ClassDefinition, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("internal parse failure: %v", r)
		}
	}()
	p := &parser{lines: strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")}
	return p.parse()
}

type parser struct {
	lines []string
	pos   int
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.pos+1, fmt.Sprintf(format, args...))
}

func (p *parser) parse() (*schema.ClassDefinition, error) {
	header, err := p.scanHeader()
	if err != nil {
		return nil, err
	}
	c := &schema.ClassDefinition{
		Name:      header[1],
		BaseClass: header[2],
		Pattern:   schema.PatternMultiple,
	}
	if c.BaseClass != schema.BaseClassName {
		return nil, p.errf("class %s must extend %s, not %s", c.Name, schema.BaseClassName, c.BaseClass)
	}
	p.pos++
	if err := p.parseBody(c); err != nil {
		return nil, err
	}
	if err := p.expectNothingElse(); err != nil {
		return nil, err
	}
	if err := recoverCorrectness(c); err != nil {
		return nil, err
	}
	return c, nil
}

// scanHeader skips the import/comment prologue and matches the class line.
func (p *parser) scanHeader() ([]string, error) {
	for ; p.pos < len(p.lines); p.pos++ {
		line := strings.TrimRight(p.lines[p.pos], " \t")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
			continue
		}
		if m := classRe.FindStringSubmatch(line); m != nil {
			return m, nil
		}
		return nil, p.errf("expected a class definition extending %s, got %q", schema.BaseClassName, trimmed)
	}
	return nil, fmt.Errorf("no class definition found")
}

// parseBody consumes the indented class body: optional docstring, field
// lines, and method blocks.
func (p *parser) parseBody(c *schema.ClassDefinition) error {
	seenStatement := false
	pendingDecorator := ""
	for p.pos < len(p.lines) {
		raw := p.lines[p.pos]
		line := strings.TrimRight(raw, " \t")
		if strings.TrimSpace(line) == "" {
			p.pos++
			continue
		}
		if !strings.HasPrefix(line, "    ") {
			if pendingDecorator != "" {
				return p.errf("decorator must be followed by a method definition")
			}
			return nil // body over; caller checks the remainder
		}
		stmt := line[4:]
		switch {
		case !seenStatement && strings.HasPrefix(stmt, `"""`) && strings.HasSuffix(stmt, `"""`) && len(stmt) >= 6:
			c.Docstring = unescapeDocstring(stmt[3 : len(stmt)-3])
			p.pos++
		case stmt == "pass":
			p.pos++
		case strings.HasPrefix(stmt, "#"):
			p.pos++
		case decoratorRe.MatchString(stmt):
			if pendingDecorator != "" {
				return p.errf("stacked decorators are not supported")
			}
			pendingDecorator = stmt
			p.pos++
		case strings.HasPrefix(stmt, "def "):
			m, err := p.parseMethod(stmt)
			if err != nil {
				return err
			}
			m.Decorator = pendingDecorator
			pendingDecorator = ""
			c.Methods = append(c.Methods, m)
		default:
			if pendingDecorator != "" {
				return p.errf("decorator must be followed by a method definition")
			}
			f, err := p.parseField(stmt)
			if err != nil {
				return err
			}
			if c.FieldIndex(f.Name) >= 0 {
				return p.errf("duplicate field %q", f.Name)
			}
			c.Fields = append(c.Fields, f)
		}
		seenStatement = seenStatement || (stmt != "pass" && !strings.HasPrefix(stmt, "#"))
	}
	if pendingDecorator != "" {
		return p.errf("decorator must be followed by a method definition")
	}
	return nil
}

// unescapeDocstring reverses the generator's one-line docstring escaping.
func unescapeDocstring(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"':
				b.WriteByte(s[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// expectNothingElse rejects any further top-level content after the class.
func (p *parser) expectNothingElse() error {
	for ; p.pos < len(p.lines); p.pos++ {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return p.errf("expected a single class definition, found %q", trimmed)
	}
	return nil
}

// parseField decodes one "name: annotation [= Field(...)]" line, consuming
// continuation lines when the metadata call is wrapped.
func (p *parser) parseField(stmt string) (schema.FieldDefinition, error) {
	m := fieldRe.FindStringSubmatch(stmt)
	if m == nil {
		return schema.FieldDefinition{}, p.errf("unsupported statement %q", stmt)
	}
	f := schema.FieldDefinition{Name: m[1]}
	rest := strings.TrimSpace(m[2])
	annText, call, hasMeta := splitMetaCall(rest)
	annText = strings.TrimSpace(annText)
	argsText := ""
	if hasMeta {
		joined, consumed, err := p.joinCall(call)
		if err != nil {
			return schema.FieldDefinition{}, err
		}
		argsText = joined
		p.pos += consumed
	}
	if err := applyAnnotation(&f, annText); err != nil {
		return schema.FieldDefinition{}, p.errf("field %s: %v", f.Name, err)
	}
	if argsText != "" {
		if err := applyFieldArgs(&f, argsText); err != nil {
			return schema.FieldDefinition{}, p.errf("field %s: %v", f.Name, err)
		}
	}
	p.pos++
	return f, nil
}

// splitMetaCall finds the "= Field(" separator between the annotation and the
// metadata call. The scan is quote- and bracket-aware: a Literal annotation
// may legally contain the separator bytes inside one of its quoted values.
func splitMetaCall(rest string) (ann, call string, found bool) {
	const marker = "= Field("
	depth := 0
	inStr := byte(0)
	for i := 0; i < len(rest); i++ {
		c := rest[i]
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
		case '=':
			if depth == 0 && strings.HasPrefix(rest[i:], marker) {
				return rest[:i], rest[i+len(marker):], true
			}
		}
	}
	return rest, "", false
}

// joinCall gathers the argument text of a Field(...) call, pulling in
// continuation lines until the parentheses balance. It returns the argument
// text without the closing paren and the number of extra lines consumed.
func (p *parser) joinCall(first string) (string, int, error) {
	var b strings.Builder
	consumed := 0
	line := first
	for {
		rest, done := consumeBalanced(&b, line)
		if done {
			if strings.TrimSpace(rest) != "" {
				return "", 0, p.errf("unexpected text after Field(...): %q", rest)
			}
			return b.String(), consumed, nil
		}
		consumed++
		if p.pos+consumed >= len(p.lines) {
			return "", 0, p.errf("unterminated Field(...) call")
		}
		b.WriteByte('\n')
		line = p.lines[p.pos+consumed]
	}
}

// consumeBalanced appends line text to b until the call's closing paren is
// found at nesting depth zero (quote-aware). It reports the remainder after
// the paren and whether the call closed on this line.
func consumeBalanced(b *strings.Builder, line string) (string, bool) {
	depth := 0
	inStr := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inStr != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				b.WriteByte(line[i])
			} else if c == inStr {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inStr = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if c == ')' && depth == 0 {
				return line[i+1:], true
			}
			depth--
		}
		b.WriteByte(c)
	}
	return "", false
}

// applyFieldArgs decodes Field(...) keyword arguments. A match_mode argument
// reclassifies a string field as regex_match and claims the pattern slot.
func applyFieldArgs(f *schema.FieldDefinition, args string) error {
	parts, err := splitTopLevel(args)
	if err != nil {
		return err
	}
	pattern := ""
	matchMode := ""
	expectSeen := false
	rules := &schema.ValidationRules{}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.Index(part, "=")
		if eq <= 0 {
			return fmt.Errorf("malformed Field argument %q", part)
		}
		key := strings.TrimSpace(part[:eq])
		val := strings.TrimSpace(part[eq+1:])
		switch key {
		case "description":
			s, err := unquotePy(val)
			if err != nil {
				return fmt.Errorf("description: %w", err)
			}
			f.Description = s
		case "min_length", "max_length":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if key == "min_length" {
				rules.MinLength = &n
			} else {
				rules.MaxLength = &n
			}
		case "ge", "le":
			x, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if key == "ge" {
				rules.Minimum = &x
			} else {
				rules.Maximum = &x
			}
		case "pattern":
			s, err := unquotePy(val)
			if err != nil {
				return fmt.Errorf("pattern: %w", err)
			}
			pattern = s
		case "match_mode":
			s, err := unquotePy(val)
			if err != nil {
				return fmt.Errorf("match_mode: %w", err)
			}
			matchMode = s
		case "expect_match":
			switch val {
			case "True":
				f.RegexExpected = true
			case "False":
				f.RegexExpected = false
			default:
				return fmt.Errorf("expect_match must be True or False, got %q", val)
			}
			expectSeen = true
		default:
			return fmt.Errorf("unsupported Field argument %q", key)
		}
	}
	if matchMode != "" || expectSeen {
		if f.Kind != schema.KindString {
			return fmt.Errorf("match_mode is only valid on str fields")
		}
		f.Kind = schema.KindRegexMatch
		f.RegexPattern = pattern
		switch matchMode {
		case "", string(schema.MatchFull):
			f.RegexMode = schema.MatchFull
		case string(schema.MatchSearch):
			f.RegexMode = schema.MatchSearch
		default:
			return fmt.Errorf("unsupported match_mode %q", matchMode)
		}
	} else if pattern != "" {
		rules.Pattern = pattern
	}
	if !rules.Empty() {
		f.Rules = rules
	}
	return nil
}

// parseMethod consumes one def block, storing its code at zero indent.
func (p *parser) parseMethod(stmt string) (schema.Method, error) {
	m := defRe.FindStringSubmatch(stmt)
	if m == nil {
		return schema.Method{}, p.errf("malformed method definition %q", stmt)
	}
	if !strings.HasSuffix(strings.TrimSpace(stmt), ":") {
		return schema.Method{}, p.errf("method %s: missing ':'", m[1])
	}
	lines := []string{stmt}
	p.pos++
	for p.pos < len(p.lines) {
		raw := strings.TrimRight(p.lines[p.pos], " \t")
		if strings.TrimSpace(raw) == "" {
			// blank inside a method is kept only if more body follows
			if p.nextBodyLineIndented() {
				lines = append(lines, "")
				p.pos++
				continue
			}
			break
		}
		if !strings.HasPrefix(raw, "        ") {
			break
		}
		lines = append(lines, raw[4:])
		p.pos++
	}
	if len(lines) == 1 {
		return schema.Method{}, fmt.Errorf("method %s has an empty body", m[1])
	}
	return schema.Method{Name: m[1], Code: strings.Join(lines, "\n")}, nil
}

// nextBodyLineIndented looks past blank lines for more method body.
func (p *parser) nextBodyLineIndented() bool {
	for i := p.pos + 1; i < len(p.lines); i++ {
		line := strings.TrimRight(p.lines[i], " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return strings.HasPrefix(line, "        ")
	}
	return false
}

// recoverCorrectness reads the ground-truth assignment out of the initializer
// method and distributes the decoded values onto the field set.
func recoverCorrectness(c *schema.ClassDefinition) error {
	var initCode string
	for _, m := range c.Methods {
		if m.Name == schema.MethodInit {
			initCode = m.Code
			break
		}
	}
	if initCode == "" {
		return nil
	}
	assign := "self." + schema.AttrCorrect + " = "
	literal := ""
	for _, line := range strings.Split(initCode, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, assign) {
			literal = strings.TrimSpace(trimmed[len(assign):])
			break
		}
	}
	if literal == "" {
		return nil
	}
	cor, err := parseCorrectness(literal)
	if err != nil {
		return fmt.Errorf("%s: %w", schema.MethodInit, err)
	}
	if !cor.IsDict {
		c.Pattern = schema.PatternSingle
		if len(c.Fields) > 0 {
			c.Fields[0].Correct = cor.Single
		}
		return nil
	}
	c.Pattern = schema.PatternMultiple
	for _, e := range cor.Entries {
		i := c.FieldIndex(e.Key)
		if i < 0 {
			return fmt.Errorf("%s: correctness entry for unknown field %q", schema.MethodInit, e.Key)
		}
		c.Fields[i].Correct = e.Val
	}
	return nil
}
