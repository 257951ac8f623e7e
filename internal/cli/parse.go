package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ricardonunez-io/datasift/internal/record"
	"github.com/ricardonunez-io/datasift/internal/schema"
)

var ErrInvalidInput = errors.New("invalid input")

// ParseValue turns user input into a filter value for f. Array fields take a
// value of their element type.
func ParseValue(input string, f schema.Field) (record.Value, error) {
	switch t := f.QueryType(); t {
	case schema.FieldTypeString:
		return record.String(input), nil
	case schema.FieldTypeInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
		if err != nil {
			return record.Null(), fmt.Errorf("%w: %q is not a valid integer", ErrInvalidInput, input)
		}
		return record.Int(i), nil
	case schema.FieldTypeFloat:
		x, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			return record.Null(), fmt.Errorf("%w: %q is not a valid number", ErrInvalidInput, input)
		}
		return record.Float(x), nil
	case schema.FieldTypeBoolean:
		b, ok := parseBool(input)
		if !ok {
			return record.Null(), fmt.Errorf("%w: %q is not a valid boolean", ErrInvalidInput, input)
		}
		return record.Bool(b), nil
	default:
		return record.Null(), fmt.Errorf("%w: field %s cannot be searched by value", ErrInvalidInput, f)
	}
}

func parseBool(input string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}

// valuePrompt is the question asked for a value of f.
func valuePrompt(f schema.Field) string {
	switch f.QueryType() {
	case schema.FieldTypeString:
		return "Please enter search text"
	case schema.FieldTypeBoolean:
		return "Please enter true/false"
	case schema.FieldTypeInteger:
		return "Please enter an integer"
	case schema.FieldTypeFloat:
		return "Please enter a number"
	}
	return fmt.Sprintf("Please enter %s", f.QueryType())
}
