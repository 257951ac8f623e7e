package schema

import (
	"sort"

	"github.com/ricardonunez-io/datasift/internal/record"
)

const maxExamples = 5

type observation struct {
	types    map[FieldType]struct{}
	elems    map[FieldType]struct{}
	values   map[string]struct{}
	object   bool
	badElems bool
}

func newObservation() *observation {
	return &observation{
		types:  make(map[FieldType]struct{}),
		elems:  make(map[FieldType]struct{}),
		values: make(map[string]struct{}),
	}
}

// Infer builds the schema of records: the union of their field names, each
// with the single type every non-null value of that field shares.
func Infer(records []record.Record) (Schema, error) {
	return InferWith(records, Schema{})
}

// InferWith is Infer with field types already known from seed. Seeded fields
// are kept even when records hold no non-null value for them, but every value
// observed must still agree with the seeded type.
func InferWith(records []record.Record, seed Schema) (Schema, error) {
	fields := make(map[string]*observation)

	for _, f := range seed.Fields {
		o := newObservation()
		o.types[f.Type] = struct{}{}
		if f.Type == FieldTypeArray && f.Elem != "" {
			o.elems[f.Elem] = struct{}{}
		}
		fields[f.Name] = o
	}

	for _, r := range records {
		r.Each(func(name string, v record.Value) {
			o, ok := fields[name]
			if !ok {
				o = newObservation()
				fields[name] = o
			}
			trackValue(o, v)
		})
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Field, 0, len(names))
	for _, name := range names {
		f, err := resolve(name, fields[name])
		if err != nil {
			return Schema{}, err
		}
		out = append(out, f)
	}

	return Schema{Fields: out}, nil
}

func trackValue(o *observation, v record.Value) {
	switch v.Kind() {
	case record.KindNull:
		return
	case record.KindObject:
		o.object = true
		return
	case record.KindArray:
		o.types[FieldTypeArray] = struct{}{}
		for _, el := range v.Elems() {
			switch el.Kind() {
			case record.KindNull:
				continue
			case record.KindArray, record.KindObject:
				o.badElems = true
			default:
				o.elems[TypeOf(el.Kind())] = struct{}{}
				o.values[el.String()] = struct{}{}
			}
		}
	default:
		o.types[TypeOf(v.Kind())] = struct{}{}
		o.values[v.String()] = struct{}{}
	}
}

func resolve(name string, o *observation) (Field, error) {
	if o.object {
		return Field{}, &SchemaError{Field: name, Err: ErrUnsupportedObject}
	}
	if len(o.types) > 1 {
		return Field{}, &SchemaError{Field: name, Types: sortedTypes(o.types), Err: ErrMixedType}
	}
	if len(o.types) == 0 {
		return Field{}, &SchemaError{Field: name, Err: ErrAllNull}
	}

	f := Field{
		Name:        name,
		Type:        sortedTypes(o.types)[0],
		Cardinality: len(o.values),
		Examples:    sortedKeys(o.values, maxExamples),
	}

	if f.Type == FieldTypeArray {
		switch {
		case o.badElems:
			return Field{}, &SchemaError{Field: name, Element: true, Err: ErrUnsupportedElement}
		case len(o.elems) > 1:
			return Field{}, &SchemaError{Field: name, Element: true, Types: sortedTypes(o.elems), Err: ErrMixedType}
		case len(o.elems) == 0:
			return Field{}, &SchemaError{Field: name, Element: true, Err: ErrAllNull}
		}
		f.Elem = sortedTypes(o.elems)[0]
	}

	return f, nil
}

func sortedTypes(m map[FieldType]struct{}) []FieldType {
	types := make([]FieldType, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func sortedKeys(m map[string]struct{}, max int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > max {
		keys = keys[:max]
	}
	return keys
}
