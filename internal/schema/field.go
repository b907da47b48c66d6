package schema

// ValidationRules holds optional per-field constraints surfaced as Field(...)
// keyword arguments in the generated source. Nil pointers mean "not set".
type ValidationRules struct {
	MinLength *int     `yaml:"min_length,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty"`
	Minimum   *float64 `yaml:"minimum,omitempty"`
	Maximum   *float64 `yaml:"maximum,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
}

// Empty reports whether no rule is set.
func (r *ValidationRules) Empty() bool {
	return r == nil ||
		(r.MinLength == nil && r.MaxLength == nil && r.Minimum == nil && r.Maximum == nil && r.Pattern == "")
}

func (r *ValidationRules) clone() *ValidationRules {
	if r == nil {
		return nil
	}
	cp := &ValidationRules{Pattern: r.Pattern}
	if r.MinLength != nil {
		n := *r.MinLength
		cp.MinLength = &n
	}
	if r.MaxLength != nil {
		n := *r.MaxLength
		cp.MaxLength = &n
	}
	if r.Minimum != nil {
		n := *r.Minimum
		cp.Minimum = &n
	}
	if r.Maximum != nil {
		n := *r.Maximum
		cp.Maximum = &n
	}
	return cp
}

func (r *ValidationRules) equal(o *ValidationRules) bool {
	if r.Empty() && o.Empty() {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	return eqIntPtr(r.MinLength, o.MinLength) &&
		eqIntPtr(r.MaxLength, o.MaxLength) &&
		eqFloatPtr(r.Minimum, o.Minimum) &&
		eqFloatPtr(r.Maximum, o.Maximum) &&
		r.Pattern == o.Pattern
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FieldDefinition describes one answer attribute: its name, semantic kind,
// kind-specific payload, and the correctness value it is graded against.
type FieldDefinition struct {
	Name        string    `yaml:"name"`
	Kind        FieldKind `yaml:"kind"`
	Required    bool      `yaml:"required"`
	Description string    `yaml:"description,omitempty"`

	// literal payload
	LiteralValues []string `yaml:"literal_values,omitempty"`
	// list/set payload
	ItemKind FieldKind `yaml:"item_kind,omitempty"`
	// union payload
	UnionKinds []FieldKind `yaml:"union_kinds,omitempty"`
	// regex_match payload
	RegexPattern  string         `yaml:"regex_pattern,omitempty"`
	RegexMode     RegexMatchMode `yaml:"regex_mode,omitempty"`
	RegexExpected bool           `yaml:"regex_expected,omitempty"`

	Correct Value            `yaml:"correct,omitempty"`
	Rules   *ValidationRules `yaml:"rules,omitempty"`
}

// Clone returns a deep copy.
func (f FieldDefinition) Clone() FieldDefinition {
	cp := f
	if f.LiteralValues != nil {
		cp.LiteralValues = append([]string(nil), f.LiteralValues...)
	}
	if f.UnionKinds != nil {
		cp.UnionKinds = append([]FieldKind(nil), f.UnionKinds...)
	}
	cp.Correct = f.Correct.Clone()
	cp.Rules = f.Rules.clone()
	return cp
}

// Equal compares semantic attributes with defaults resolved: an unset item
// kind equals string, an unset regex mode equals fullmatch, an under-filled
// union equals the generator's fallback, and blank literal values are
// ignored. Generation resolves those defaults, so equality must too or the
// round trip would report spurious drift.
func (f FieldDefinition) Equal(o FieldDefinition) bool {
	if f.Name != o.Name || f.Kind != o.Kind || f.Required != o.Required || f.Description != o.Description {
		return false
	}
	if f.Kind == KindLiteral && !eqStrings(resolvableValues(f.LiteralValues), resolvableValues(o.LiteralValues)) {
		return false
	}
	if (f.Kind == KindList || f.Kind == KindSet) && itemKindOrDefault(f.ItemKind) != itemKindOrDefault(o.ItemKind) {
		return false
	}
	if f.Kind == KindUnion && !eqKinds(effectiveUnion(f.UnionKinds), effectiveUnion(o.UnionKinds)) {
		return false
	}
	if f.Kind == KindRegexMatch {
		if f.RegexPattern != o.RegexPattern || f.RegexExpected != o.RegexExpected {
			return false
		}
		if regexModeOrDefault(f.RegexMode) != regexModeOrDefault(o.RegexMode) {
			return false
		}
	}
	return f.Correct.Equal(o.Correct) && f.Rules.equal(o.Rules)
}

func resolvableValues(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmedNonBlank(v) {
			out = append(out, v)
		}
	}
	return out
}

func trimmedNonBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

func itemKindOrDefault(k FieldKind) FieldKind {
	if k == "" {
		return KindString
	}
	return k
}

func regexModeOrDefault(m RegexMatchMode) RegexMatchMode {
	if m == "" {
		return MatchFull
	}
	return m
}

func effectiveUnion(kinds []FieldKind) []FieldKind {
	if len(kinds) < 2 {
		return []FieldKind{KindString, KindInteger}
	}
	return kinds
}

func eqStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func eqKinds(a, b []FieldKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
