package schema

import (
	"fmt"
	"strconv"
)

// ValueKind tags the runtime shape of a correctness value.
type ValueKind int

const (
	ValueAbsent ValueKind = iota
	ValueString
	ValueInt
	ValueFloat
	ValueBool
	ValueList
)

// Value is a tagged correctness value. Dynamically-typed values coming from
// the editor (string, number, boolean, string list, or nothing at all) live
// here; they are decoded and encoded only at the generate/parse boundary.
type Value struct {
	kind ValueKind
	str  string
	i    int64
	f    float64
	b    bool
	list []Value
}

func Absent() Value             { return Value{kind: ValueAbsent} }
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }
func IntValue(i int64) Value     { return Value{kind: ValueInt, i: i} }
func FloatValue(f float64) Value { return Value{kind: ValueFloat, f: f} }
func BoolValue(b bool) Value     { return Value{kind: ValueBool, b: b} }

func ListValue(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: ValueList, list: cp}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsAbsent() bool  { return v.kind == ValueAbsent }

// IsZero reports emptiness for yaml's omitempty: only an absent value is
// omitted. Without this, the encoder sees a struct of unexported fields as
// always zero and drops set values.
func (v Value) IsZero() bool { return v.kind == ValueAbsent }

func (v Value) AsString() (string, bool) { return v.str, v.kind == ValueString }
func (v Value) AsInt() (int64, bool)     { return v.i, v.kind == ValueInt }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == ValueFloat }
func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == ValueBool }

func (v Value) AsList() ([]Value, bool) {
	if v.kind != ValueList {
		return nil, false
	}
	cp := make([]Value, len(v.list))
	copy(cp, v.list)
	return cp, true
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	if v.kind != ValueList {
		return v
	}
	cp := make([]Value, len(v.list))
	for i := range v.list {
		cp[i] = v.list[i].Clone()
	}
	return Value{kind: ValueList, list: cp}
}

// Equal compares tag and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueAbsent:
		return true
	case ValueString:
		return v.str == o.str
	case ValueInt:
		return v.i == o.i
	case ValueFloat:
		return v.f == o.f
	case ValueBool:
		return v.b == o.b
	case ValueList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// GoString renders a debug form; source-text rendering lives in pygen.
func (v Value) GoString() string {
	switch v.kind {
	case ValueAbsent:
		return "absent"
	case ValueString:
		return strconv.Quote(v.str)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueList:
		s := "["
		for i := range v.list {
			if i > 0 {
				s += ", "
			}
			s += v.list[i].GoString()
		}
		return s + "]"
	}
	return "?"
}

// MarshalYAML encodes the tagged value as a plain YAML scalar or sequence.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case ValueAbsent:
		return nil, nil
	case ValueString:
		return v.str, nil
	case ValueInt:
		return v.i, nil
	case ValueFloat:
		return v.f, nil
	case ValueBool:
		return v.b, nil
	case ValueList:
		out := make([]any, len(v.list))
		for i := range v.list {
			m, err := v.list[i].MarshalYAML()
			if err != nil {
				return nil, err
			}
			out[i] = m
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// UnmarshalYAML decodes plain scalars and sequences back into tagged values.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	decoded, err := ValueFromAny(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// ValueFromAny lifts a dynamically-typed value into the tagged form.
func ValueFromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Absent(), nil
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case int:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint64:
		return IntValue(int64(t)), nil
	case float64:
		return FloatValue(t), nil
	case []any:
		items := make([]Value, len(t))
		for i := range t {
			item, err := ValueFromAny(t[i])
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return Value{kind: ValueList, list: items}, nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", raw)
}
