// Package dataset holds immutable, schema-checked collections of records and
// the filter and join operations over them.
package dataset

import (
	"github.com/ricardonunez-io/datasift/internal/record"
	"github.com/ricardonunez-io/datasift/internal/schema"
)

// Dataset is an ordered, immutable sequence of records together with the
// schema inferred from them. Filter and Join return new datasets.
type Dataset struct {
	name    string
	records []record.Record
	schema  schema.Schema
	link    string
}

// FromRecords infers the schema of records and wraps them in a Dataset.
// Any *schema.SchemaError is returned unchanged and no Dataset is built.
func FromRecords(name string, records []record.Record) (*Dataset, error) {
	s, err := schema.Infer(records)
	if err != nil {
		return nil, err
	}
	return newDataset(name, records, s, ""), nil
}

func newDataset(name string, records []record.Record, s schema.Schema, link string) *Dataset {
	cp := make([]record.Record, len(records))
	copy(cp, records)
	return &Dataset{name: name, records: cp, schema: s, link: link}
}

func (d *Dataset) Name() string { return d.name }
func (d *Dataset) Len() int     { return len(d.records) }

// Records returns the records in order.
func (d *Dataset) Records() []record.Record {
	cp := make([]record.Record, len(d.records))
	copy(cp, d.records)
	return cp
}

func (d *Dataset) Schema() schema.Schema { return d.schema }

// Fields lists the queryable fields sorted by name.
func (d *Dataset) Fields() []schema.Field {
	cp := make([]schema.Field, len(d.schema.Fields))
	copy(cp, d.schema.Fields)
	return cp
}

func (d *Dataset) Field(name string) (schema.Field, bool) {
	return d.schema.Lookup(name)
}

// LinkField is the field used by JoinLinked, empty when none was set.
func (d *Dataset) LinkField() string { return d.link }

// WithLinkField returns a copy of d that joins on field by default.
func (d *Dataset) WithLinkField(field string) (*Dataset, error) {
	if !d.schema.HasField(field) {
		return nil, &QueryError{Dataset: d.name, Field: field, Err: ErrUnknownField}
	}
	return newDataset(d.name, d.records, d.schema, field), nil
}

// derive builds a dataset over a subset of d's records. Subsets always fit
// the parent schema, so it is not inferred again.
func (d *Dataset) derive(records []record.Record) *Dataset {
	return &Dataset{name: d.name, records: records, schema: d.schema, link: d.link}
}
