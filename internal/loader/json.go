package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/datasift/internal/record"
)

// LoadFile reads a JSON array of objects from path.
func LoadFile(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = path
		}
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("recordCount", len(records)).
		Msg("Loaded records from file")

	return records, nil
}

func Load(r io.Reader) ([]record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of objects. Field order is kept as written;
// numbers without a fraction or exponent become integers, all others floats.
func Parse(data []byte) ([]record.Record, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, &LoadError{Index: -1, Err: ErrMalformed, Cause: err}
	}
	if dataType != jsonparser.Array {
		return nil, &LoadError{Index: -1, Err: ErrNotArray, Cause: fmt.Errorf("got %s", dataType)}
	}

	var (
		records  []record.Record
		parseErr error
	)
	_, err = jsonparser.ArrayEach(value, func(raw []byte, dt jsonparser.ValueType, _ int, cbErr error) {
		if parseErr != nil {
			return
		}
		idx := len(records)
		if cbErr != nil {
			parseErr = &LoadError{Index: idx, Err: ErrMalformed, Cause: cbErr}
			return
		}
		if dt != jsonparser.Object {
			parseErr = &LoadError{Index: idx, Err: ErrNotObject, Cause: fmt.Errorf("got %s", dt)}
			return
		}
		r, err := parseObject(raw)
		if err != nil {
			parseErr = &LoadError{Index: idx, Err: ErrMalformed, Cause: err}
			if errors.Is(err, ErrNumberRange) {
				parseErr = &LoadError{Index: idx, Err: ErrNumberRange, Cause: err}
			}
			return
		}
		records = append(records, r)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if err != nil {
		return nil, &LoadError{Index: -1, Err: ErrMalformed, Cause: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Index: -1, Err: ErrEmpty}
	}

	return records, nil
}

func parseObject(raw []byte) (record.Record, error) {
	b := record.NewBuilder()
	err := jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		name := string(key)
		v, err := parseValue(value, dt)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		b.Set(name, v)
		return nil
	})
	if err != nil {
		return record.Record{}, err
	}
	return b.Record(), nil
}

func parseValue(raw []byte, dt jsonparser.ValueType) (record.Value, error) {
	switch dt {
	case jsonparser.Null:
		return record.Null(), nil
	case jsonparser.Boolean:
		v, err := jsonparser.ParseBoolean(raw)
		return record.Bool(v), err
	case jsonparser.String:
		v, err := jsonparser.ParseString(raw)
		return record.String(v), err
	case jsonparser.Number:
		return parseNumber(raw)
	case jsonparser.Object:
		return record.Object(string(raw)), nil
	case jsonparser.Array:
		var (
			elems   []record.Value
			elemErr error
		)
		_, err := jsonparser.ArrayEach(raw, func(v []byte, t jsonparser.ValueType, _ int, cbErr error) {
			if elemErr != nil {
				return
			}
			if cbErr != nil {
				elemErr = cbErr
				return
			}
			el, err := parseValue(v, t)
			if err != nil {
				elemErr = err
				return
			}
			elems = append(elems, el)
		})
		if elemErr != nil {
			return record.Value{}, elemErr
		}
		if err != nil {
			return record.Value{}, err
		}
		return record.Array(elems...), nil
	default:
		return record.Value{}, fmt.Errorf("unexpected %s value", dt)
	}
}

func parseNumber(raw []byte) (record.Value, error) {
	if bytes.ContainsAny(raw, ".eE") {
		f, err := jsonparser.ParseFloat(raw)
		return record.Float(f), err
	}
	i, err := jsonparser.ParseInt(raw)
	if err != nil {
		return record.Value{}, fmt.Errorf("%s: %w", raw, ErrNumberRange)
	}
	return record.Int(i), nil
}
