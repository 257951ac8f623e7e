package loader

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed JSON")
	ErrNotArray    = errors.New("expected an array of records")
	ErrNotObject   = errors.New("expected every record to be an object")
	ErrEmpty       = errors.New("no records")
	ErrNumberRange = errors.New("integer out of range")
)

// LoadError reports why a source could not be turned into records. Index is
// the position of the offending record, or -1 when the whole document is at fault.
type LoadError struct {
	Source string
	Index  int
	Err    error
	Cause  error
}

func (e *LoadError) Error() string {
	msg := e.Err.Error()
	if e.Index >= 0 {
		msg = fmt.Sprintf("record %d: %s", e.Index, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

func (e *LoadError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
