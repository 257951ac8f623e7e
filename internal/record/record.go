package record

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an ordered mapping from field name to value. A Record is read-only;
// use a Builder to make one.
type Record struct {
	fields *orderedmap.OrderedMap[string, Value]
}

// Get returns the value stored under name. Absent fields read as null.
func (r Record) Get(name string) (Value, bool) {
	if r.fields == nil {
		return Null(), false
	}
	return r.fields.Get(name)
}

// Value is Get without the presence flag.
func (r Record) Value(name string) Value {
	v, _ := r.Get(name)
	return v
}

func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns field names in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	r.Each(func(name string, _ Value) {
		keys = append(keys, name)
	})
	return keys
}

// Each visits the fields in insertion order.
func (r Record) Each(fn func(name string, v Value)) {
	if r.fields == nil {
		return
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}

type Builder struct {
	fields *orderedmap.OrderedMap[string, Value]
}

func NewBuilder() *Builder {
	return &Builder{}
}

// From starts a builder holding a copy of r's fields.
func From(r Record) *Builder {
	b := NewBuilder()
	r.Each(func(name string, v Value) {
		b.Set(name, v)
	})
	return b
}

// Set adds or replaces a field. Replacing keeps the field's original position.
func (b *Builder) Set(name string, v Value) *Builder {
	if b.fields == nil {
		b.fields = orderedmap.New[string, Value]()
	}
	b.fields.Set(name, v)
	return b
}

func (b *Builder) Has(name string) bool {
	if b.fields == nil {
		return false
	}
	_, ok := b.fields.Get(name)
	return ok
}

// Record hands the accumulated fields over to a new Record and resets the builder.
func (b *Builder) Record() Record {
	r := Record{fields: b.fields}
	b.fields = nil
	return r
}
