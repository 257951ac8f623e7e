package dataset

import (
	"errors"
	"fmt"

	"github.com/ricardonunez-io/datasift/internal/schema"
)

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrSchemaConflict = errors.New("joined records do not fit a single schema")
	ErrNoLinkField    = errors.New("no link field set")
)

// QueryError is returned by Filter, Join and WithLinkField when a field or
// value does not fit the dataset's schema.
type QueryError struct {
	Dataset string
	Field   string
	Want    schema.FieldType
	Got     schema.FieldType
	Err     error
}

func (e *QueryError) Error() string {
	if errors.Is(e.Err, ErrTypeMismatch) {
		return fmt.Sprintf("%s.%s: %v: want %s, got %s", e.Dataset, e.Field, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("%s.%s: %v", e.Dataset, e.Field, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// JoinError is returned by Join when the key fields cannot be compared or the
// joined records cannot be described by one schema. Cause holds the
// underlying *schema.SchemaError for a schema conflict.
type JoinError struct {
	Left      string
	Right     string
	LeftType  schema.FieldType
	RightType schema.FieldType
	Err       error
	Cause     error
}

func (e *JoinError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("join %s = %s: %v: %v", e.Left, e.Right, e.Err, e.Cause)
	}
	return fmt.Sprintf("join %s (%s) = %s (%s): %v", e.Left, e.LeftType, e.Right, e.RightType, e.Err)
}

func (e *JoinError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
