package dataset

import (
	"github.com/ricardonunez-io/datasift/internal/record"
	"github.com/ricardonunez-io/datasift/internal/schema"
)

// Filter keeps the records whose value for field matches query, in their
// original order. Absent fields count as null, and a null query matches only
// null values. On an array field the query is an element type value and a
// record matches when its array contains it.
func (d *Dataset) Filter(field string, query record.Value) (*Dataset, error) {
	f, ok := d.schema.Lookup(field)
	if !ok {
		return nil, &QueryError{Dataset: d.name, Field: field, Err: ErrUnknownField}
	}
	if !f.Accepts(query) {
		return nil, &QueryError{
			Dataset: d.name,
			Field:   field,
			Want:    f.QueryType(),
			Got:     schema.TypeOf(query.Kind()),
			Err:     ErrTypeMismatch,
		}
	}

	var matched []record.Record
	for _, r := range d.records {
		if matches(f, r.Value(field), query) {
			matched = append(matched, r)
		}
	}

	return d.derive(matched), nil
}

func matches(f schema.Field, v, query record.Value) bool {
	switch {
	case v.IsNull():
		return query.IsNull()
	case query.IsNull():
		return false
	case f.Type == schema.FieldTypeArray:
		return v.Contains(query)
	default:
		return v.Equal(query)
	}
}
