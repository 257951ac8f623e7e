package schema

import (
	"fmt"

	"github.com/ricardonunez-io/datasift/internal/record"
)

type FieldType string

const (
	FieldTypeInteger FieldType = "integer"
	FieldTypeFloat   FieldType = "float"
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	// FieldTypeNull is only reported in errors; a valid schema never holds it.
	FieldTypeNull   FieldType = "null"
	FieldTypeObject FieldType = "object"
)

// TypeOf maps a value kind to the field type it implies.
func TypeOf(k record.Kind) FieldType {
	switch k {
	case record.KindInteger:
		return FieldTypeInteger
	case record.KindFloat:
		return FieldTypeFloat
	case record.KindString:
		return FieldTypeString
	case record.KindBoolean:
		return FieldTypeBoolean
	case record.KindArray:
		return FieldTypeArray
	case record.KindObject:
		return FieldTypeObject
	default:
		return FieldTypeNull
	}
}

type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
	// Elem is the element type of an array field.
	Elem        FieldType `json:"elem,omitempty"`
	Cardinality int       `json:"cardinality"`
	Examples    []string  `json:"examples,omitempty"`
}

// QueryType is the type a filter value must have: the element type for arrays,
// the field type otherwise.
func (f Field) QueryType() FieldType {
	if f.Type == FieldTypeArray {
		return f.Elem
	}
	return f.Type
}

// Accepts reports whether v may be used as a filter value on f. Null is always accepted.
func (f Field) Accepts(v record.Value) bool {
	if v.IsNull() {
		return true
	}
	return TypeOf(v.Kind()) == f.QueryType()
}

func (f Field) String() string {
	if f.Type == FieldTypeArray {
		return fmt.Sprintf("%s (array of %s)", f.Name, f.Elem)
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Type)
}

// Schema lists the fields of a dataset sorted by name.
type Schema struct {
	Fields []Field `json:"fields"`
}

func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s Schema) HasField(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
