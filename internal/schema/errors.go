package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMixedType          = errors.New("mixed value types")
	ErrAllNull            = errors.New("no non-null values")
	ErrUnsupportedObject  = errors.New("object values are not supported")
	ErrUnsupportedElement = errors.New("arrays may only hold scalar values")
)

// SchemaError reports the field that failed inference. Err is one of the
// sentinel errors above.
type SchemaError struct {
	Field string
	// Element is set when the failure concerns the elements of an array field.
	Element bool
	Types   []FieldType
	Err     error
}

func (e *SchemaError) Error() string {
	subject := "field"
	if e.Element {
		subject = "elements of field"
	}
	if len(e.Types) == 0 {
		return fmt.Sprintf("%s %q: %v", subject, e.Field, e.Err)
	}
	types := make([]string, len(e.Types))
	for i, t := range e.Types {
		types[i] = string(t)
	}
	return fmt.Sprintf("%s %q: %v (%s)", subject, e.Field, e.Err, strings.Join(types, ", "))
}

func (e *SchemaError) Unwrap() error { return e.Err }
