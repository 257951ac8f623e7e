// Package summary describes the values a dataset holds for its fields.
package summary

import (
	"github.com/ricardonunez-io/datasift/internal/dataset"
	"github.com/ricardonunez-io/datasift/internal/fuzzy"
	"github.com/ricardonunez-io/datasift/internal/record"
	"github.com/ricardonunez-io/datasift/internal/schema"
)

const maxTopKeys = 5

// Insights counts the values of one field. Array fields count each element.
type Insights struct {
	Field                string             `json:"field"`
	Type                 schema.FieldType   `json:"type"`
	TotalCount           int                `json:"totalCount"`
	NullCount            int                `json:"nullCount"`
	ValueCount           int                `json:"valueCount"`
	UniqueKeys           int                `json:"uniqueKeys"`
	TopKeys              []KeyCount         `json:"topKeys"`
	AverageRecordsPerKey float64            `json:"averageRecordsPerKey"`
	Numeric              *NumericStats      `json:"numeric,omitempty"`
	ValueGroups          []fuzzy.ValueGroup `json:"valueGroups,omitempty"`

	counts map[string]int
}

func (in Insights) countOf(key string) int {
	if in.counts != nil {
		return in.counts[key]
	}
	for _, kc := range in.TopKeys {
		if kc.Key == key {
			return kc.Count
		}
	}
	return 0
}

// Summarize computes the insights of field over every record of ds.
func Summarize(ds *dataset.Dataset, field string) (Insights, error) {
	f, ok := ds.Field(field)
	if !ok {
		return Insights{}, &dataset.QueryError{Dataset: ds.Name(), Field: field, Err: dataset.ErrUnknownField}
	}

	in := Insights{
		Field:  f.Name,
		Type:   f.Type,
		counts: make(map[string]int),
	}

	var numbers []float64
	var texts []string

	track := func(v record.Value) {
		in.ValueCount++
		in.counts[v.String()]++
		switch v.Kind() {
		case record.KindInteger:
			numbers = append(numbers, float64(v.AsInt()))
		case record.KindFloat:
			numbers = append(numbers, v.AsFloat())
		case record.KindString:
			texts = append(texts, v.AsString())
		}
	}

	for _, r := range ds.Records() {
		in.TotalCount++
		v := r.Value(field)
		if v.IsNull() {
			in.NullCount++
			continue
		}
		if v.Kind() == record.KindArray {
			for _, el := range v.Elems() {
				if !el.IsNull() {
					track(el)
				}
			}
			continue
		}
		track(v)
	}

	in.UniqueKeys = len(in.counts)
	if in.UniqueKeys > 0 {
		in.AverageRecordsPerKey = float64(in.ValueCount) / float64(in.UniqueKeys)
	}
	in.TopKeys = getTopKeys(in.counts, maxTopKeys)
	in.Numeric = numericStats(numbers)
	if len(texts) > 0 {
		in.ValueGroups = fuzzy.Group(texts)
	}

	return in, nil
}

// SummarizeAll returns the insights of every field of ds, keyed by field name.
func SummarizeAll(ds *dataset.Dataset) map[string]Insights {
	out := make(map[string]Insights, len(ds.Fields()))
	for _, f := range ds.Fields() {
		in, err := Summarize(ds, f.Name)
		if err != nil {
			continue
		}
		out[f.Name] = in
	}
	return out
}
