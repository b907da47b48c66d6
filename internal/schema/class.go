package schema

// Fixed contract with the verification engine: every generated class extends
// BaseClassName, stores its ground truth in AttrCorrect, and exposes the three
// owned methods below. These names are reserved against field names.
const (
	BaseClassName = "BaseAnswer"

	AttrIdentity = "id"
	AttrCorrect  = "correct_answer"

	MethodInit     = "set_correct_answer"
	MethodVerify   = "verify"
	MethodGranular = "verify_granular"
)

// OwnedMethod reports whether name is one of the three synthesized methods the
// session always rebuilds and never preserves from user edits.
func OwnedMethod(name string) bool {
	return name == MethodInit || name == MethodVerify || name == MethodGranular
}

// Method is one emitted class method. Code holds the full def block at zero
// indent; the generator re-indents it to class-method level.
type Method struct {
	Name      string `yaml:"name"`
	Decorator string `yaml:"decorator,omitempty"`
	Code      string `yaml:"code"`
}

// ClassDefinition is the whole generated class: name, base, ordered fields and
// methods, and the correctness pattern. It is treated as an immutable value;
// edits go through the With* helpers, which return fresh copies.
type ClassDefinition struct {
	Name      string             `yaml:"name"`
	BaseClass string             `yaml:"base_class"`
	Docstring string             `yaml:"docstring,omitempty"`
	Fields    []FieldDefinition  `yaml:"fields"`
	Methods   []Method           `yaml:"methods,omitempty"`
	Pattern   CorrectnessPattern `yaml:"pattern"`
}

// NewClassDefinition returns an empty shell for a brand-new schema.
func NewClassDefinition(name string) *ClassDefinition {
	return &ClassDefinition{Name: name, BaseClass: BaseClassName, Pattern: PatternMultiple}
}

// Clone returns a deep copy.
func (c *ClassDefinition) Clone() *ClassDefinition {
	cp := &ClassDefinition{
		Name:      c.Name,
		BaseClass: c.BaseClass,
		Docstring: c.Docstring,
		Pattern:   c.Pattern,
	}
	if c.Fields != nil {
		cp.Fields = make([]FieldDefinition, len(c.Fields))
		for i := range c.Fields {
			cp.Fields[i] = c.Fields[i].Clone()
		}
	}
	if c.Methods != nil {
		cp.Methods = append([]Method(nil), c.Methods...)
	}
	return cp
}

// FieldIndex returns the position of the named field, or -1.
func (c *ClassDefinition) FieldIndex(name string) int {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// Field looks up a field by name.
func (c *ClassDefinition) Field(name string) (FieldDefinition, bool) {
	if i := c.FieldIndex(name); i >= 0 {
		return c.Fields[i].Clone(), true
	}
	return FieldDefinition{}, false
}

// WithField returns a copy with f appended, or replacing the field of the same
// name in place (order preserved).
func (c *ClassDefinition) WithField(f FieldDefinition) *ClassDefinition {
	cp := c.Clone()
	if i := cp.FieldIndex(f.Name); i >= 0 {
		cp.Fields[i] = f.Clone()
		return cp
	}
	cp.Fields = append(cp.Fields, f.Clone())
	return cp
}

// WithFieldRenamed returns a copy with the named field replaced by f, keeping
// its position. Used when a commit changes the field's name.
func (c *ClassDefinition) WithFieldRenamed(oldName string, f FieldDefinition) *ClassDefinition {
	cp := c.Clone()
	if i := cp.FieldIndex(oldName); i >= 0 {
		cp.Fields[i] = f.Clone()
		return cp
	}
	return cp.WithField(f)
}

// WithoutField returns a copy with the named field removed.
func (c *ClassDefinition) WithoutField(name string) *ClassDefinition {
	cp := c.Clone()
	if i := cp.FieldIndex(name); i >= 0 {
		cp.Fields = append(cp.Fields[:i], cp.Fields[i+1:]...)
	}
	return cp
}

// WithMethods returns a copy whose owned methods are replaced by synthesized
// (in synthesized order, ahead of foreign methods) and whose foreign methods
// are preserved in their original order.
func (c *ClassDefinition) WithMethods(synthesized []Method) *ClassDefinition {
	cp := c.Clone()
	var foreign []Method
	for _, m := range cp.Methods {
		if !OwnedMethod(m.Name) {
			foreign = append(foreign, m)
		}
	}
	cp.Methods = append(append([]Method(nil), synthesized...), foreign...)
	return cp
}

// ForeignMethods returns the methods not owned by the synthesizer.
func (c *ClassDefinition) ForeignMethods() []Method {
	var out []Method
	for _, m := range c.Methods {
		if !OwnedMethod(m.Name) {
			out = append(out, m)
		}
	}
	return out
}

// Equal compares the full model: names, docstring, pattern, ordered fields,
// and ordered methods byte-for-byte.
func (c *ClassDefinition) Equal(o *ClassDefinition) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Name != o.Name || c.BaseClass != o.BaseClass || c.Docstring != o.Docstring || c.Pattern != o.Pattern {
		return false
	}
	if len(c.Fields) != len(o.Fields) || len(c.Methods) != len(o.Methods) {
		return false
	}
	for i := range c.Fields {
		if !c.Fields[i].Equal(o.Fields[i]) {
			return false
		}
	}
	for i := range c.Methods {
		if c.Methods[i] != o.Methods[i] {
			return false
		}
	}
	return true
}
