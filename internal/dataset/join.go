package dataset

import (
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/datasift/internal/record"
	"github.com/ricardonunez-io/datasift/internal/schema"
)

const namespaceSep = "."

// Join is a one-to-many left join of d with other on d.selfField = other.otherField.
//
// Every record of d is kept. A record with no counterpart is emitted as is; a
// record with n counterparts is emitted n times, merged with each of them in
// other's order. Null keys never match. Fields of other whose names are taken
// by d are renamed to "<other name>.<field>"; other's key is dropped when both
// keys share a name. The result's schema is inferred again from the merged
// records, seeded with both input schemas.
//
// A degenerate key shared by every record on both sides yields len(d)*len(other)
// records.
func (d *Dataset) Join(other *Dataset, selfField, otherField string) (*Dataset, error) {
	lf, ok := d.schema.Lookup(selfField)
	if !ok {
		return nil, &QueryError{Dataset: d.name, Field: selfField, Err: ErrUnknownField}
	}
	rf, ok := other.schema.Lookup(otherField)
	if !ok {
		return nil, &QueryError{Dataset: other.name, Field: otherField, Err: ErrUnknownField}
	}
	if lf.Type != rf.Type || lf.Elem != rf.Elem {
		return nil, &JoinError{
			Left:      d.name + namespaceSep + selfField,
			Right:     other.name + namespaceSep + otherField,
			LeftType:  lf.Type,
			RightType: rf.Type,
			Err:       ErrTypeMismatch,
		}
	}

	rename, seed := d.mergePlan(other, selfField, otherField)
	index := indexBy(other.records, otherField)

	out := make([]record.Record, 0, len(d.records))
	matched := 0
	for _, r := range d.records {
		key := r.Value(selfField)
		var hits []int
		if !key.IsNull() {
			hits = index[joinKey(key)]
		}
		if len(hits) == 0 {
			out = append(out, r)
			continue
		}
		matched++
		for _, i := range hits {
			out = append(out, merge(r, other.records[i], rename))
		}
	}

	s, err := schema.InferWith(out, seed)
	if err != nil {
		return nil, &JoinError{
			Left:  d.name + namespaceSep + selfField,
			Right: other.name + namespaceSep + otherField,
			Err:   ErrSchemaConflict,
			Cause: err,
		}
	}

	log.Debug().
		Str("dataset", d.name).
		Str("other", other.name).
		Int("matchedRecords", matched).
		Int("outputRecords", len(out)).
		Msg("Datasets joined")

	return newDataset(d.name, out, s, d.link), nil
}

// JoinLinked joins d and other on their link fields.
func (d *Dataset) JoinLinked(other *Dataset) (*Dataset, error) {
	if d.link == "" {
		return nil, &QueryError{Dataset: d.name, Err: ErrNoLinkField}
	}
	if other.link == "" {
		return nil, &QueryError{Dataset: other.name, Err: ErrNoLinkField}
	}
	return d.Join(other, d.link, other.link)
}

// mergePlan decides the output name of every field of other and builds the
// seed schema for the joined records. A field mapped to "" is dropped.
func (d *Dataset) mergePlan(other *Dataset, selfField, otherField string) (map[string]string, schema.Schema) {
	prefix := other.name
	if prefix == "" {
		prefix = "other"
	}

	taken := make(map[string]struct{}, len(d.schema.Fields)+len(other.schema.Fields))
	seed := schema.Schema{Fields: make([]schema.Field, 0, len(d.schema.Fields)+len(other.schema.Fields))}
	for _, f := range d.schema.Fields {
		taken[f.Name] = struct{}{}
		seed.Fields = append(seed.Fields, schema.Field{Name: f.Name, Type: f.Type, Elem: f.Elem})
	}

	rename := make(map[string]string, len(other.schema.Fields))
	for _, f := range other.schema.Fields {
		if f.Name == otherField && otherField == selfField {
			rename[f.Name] = ""
			continue
		}
		name := f.Name
		for {
			if _, ok := taken[name]; !ok {
				break
			}
			name = prefix + namespaceSep + name
		}
		taken[name] = struct{}{}
		rename[f.Name] = name
		seed.Fields = append(seed.Fields, schema.Field{Name: name, Type: f.Type, Elem: f.Elem})
	}

	return rename, seed
}

func merge(r, o record.Record, rename map[string]string) record.Record {
	b := record.From(r)
	o.Each(func(name string, v record.Value) {
		if out := rename[name]; out != "" {
			b.Set(out, v)
		}
	})
	return b.Record()
}

// indexBy maps each non-null key of field to the positions of the records
// holding it, in record order.
func indexBy(records []record.Record, field string) map[string][]int {
	index := make(map[string][]int)
	for i, r := range records {
		v := r.Value(field)
		if v.IsNull() {
			continue
		}
		k := joinKey(v)
		index[k] = append(index[k], i)
	}
	return index
}

// joinKey encodes a value so that values Equal to each other share a key.
func joinKey(v record.Value) string {
	b, err := canonical(v).MarshalJSON()
	if err != nil {
		return v.String()
	}
	return string(b)
}

// canonical folds -0 into 0, the only floats that are equal yet encode apart.
func canonical(v record.Value) record.Value {
	switch v.Kind() {
	case record.KindFloat:
		if v.AsFloat() == 0 {
			return record.Float(0)
		}
	case record.KindArray:
		elems := v.Elems()
		for i, el := range elems {
			elems[i] = canonical(el)
		}
		return record.Array(elems...)
	}
	return v
}
