package record

import (
	"encoding/json"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBoolean
	KindArray
	// KindObject marks a nested object. Objects can be loaded but are never queryable.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a single field value: one of null, integer, float, string, boolean,
// array of values, or an opaque object.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	s     string
	b     bool
	elems []Value
}

func Null() Value             { return Value{} }
func Int(i int64) Value       { return Value{kind: KindInteger, i: i} }
func Float(f float64) Value   { return Value{kind: KindFloat, f: f} }
func String(s string) Value   { return Value{kind: KindString, s: s} }
func Bool(b bool) Value       { return Value{kind: KindBoolean, b: b} }
func Object(raw string) Value { return Value{kind: KindObject, s: raw} }

func Array(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, elems: cp}
}

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) AsInt() int64     { return v.i }
func (v Value) AsFloat() float64 { return v.f }
func (v Value) AsString() string { return v.s }
func (v Value) AsBool() bool     { return v.b }

// Elems returns a copy of an array's elements, or nil for any other kind.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.elems))
	copy(cp, v.elems)
	return cp
}

// Len is the number of elements of an array value, zero otherwise.
func (v Value) Len() int { return len(v.elems) }

// Equal reports type-aware equality: Int(1) and Float(1) are different values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString, KindObject:
		return v.s == o.s
	case KindBoolean:
		return v.b == o.b
	case KindArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Contains reports whether an array value holds an element equal to e.
func (v Value) Contains(e Value) bool {
	for _, el := range v.elems {
		if el.Equal(e) {
			return true
		}
	}
	return false
}

// Interface converts the value to the shape encoding/json produces when decoding.
func (v Value) Interface() any {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBoolean:
		return v.b
	case KindArray:
		out := make([]any, len(v.elems))
		for i, el := range v.elems {
			out[i] = el.Interface()
		}
		return out
	case KindObject:
		return json.RawMessage(v.s)
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString, KindObject:
		return v.s
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindArray:
		parts := make([]string, len(v.elems))
		for i, el := range v.elems {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindObject {
		return []byte(v.s), nil
	}
	return json.Marshal(v.Interface())
}
