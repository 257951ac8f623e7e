package summary

import (
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/datasift/internal/dataset"
	"github.com/ricardonunez-io/datasift/internal/record"
)

const maxSampleRecords = 5

// Report describes the outcome of one search: the records that matched, how
// each of their fields compares to the dataset they were filtered from, and
// the fields joined in from related datasets.
type Report struct {
	Dataset     string                        `json:"dataset"`
	Field       string                        `json:"field"`
	Query       string                        `json:"query"`
	Matches     int                           `json:"matches"`
	SourceCount int                           `json:"sourceCount"`
	JoinedRows  int                           `json:"joinedRows"`
	Fields      map[string]Insights           `json:"fields"`
	Comparisons map[string]map[string]float64 `json:"comparisons"`
	Related     map[string]Insights           `json:"related,omitempty"`
	Sample      []record.Record               `json:"sample"`
}

// NewReport summarises matched, the records of source where field = query,
// and joined, matched after joining its related datasets. Counts and
// comparisons describe matched; fields that only joined holds are
// summarised over the joined rows under Related.
func NewReport(source, matched, joined *dataset.Dataset, field string, query record.Value) Report {
	rep := Report{
		Dataset:     source.Name(),
		Field:       field,
		Query:       query.String(),
		Matches:     matched.Len(),
		SourceCount: source.Len(),
		JoinedRows:  joined.Len(),
		Fields:      SummarizeAll(matched),
		Comparisons: make(map[string]map[string]float64),
		Related:     make(map[string]Insights),
	}

	for name, current := range rep.Fields {
		baseline, err := Summarize(source, name)
		if err != nil {
			continue
		}
		rep.Comparisons[name] = Compare(current, baseline)
	}

	for _, f := range joined.Fields() {
		if matched.Schema().HasField(f.Name) {
			continue
		}
		if in, err := Summarize(joined, f.Name); err == nil {
			rep.Related[f.Name] = in
		}
	}

	records := joined.Records()
	if len(records) > maxSampleRecords {
		records = records[:maxSampleRecords]
	}
	rep.Sample = records

	log.Debug().
		Str("dataset", rep.Dataset).
		Str("field", field).
		Int("matches", rep.Matches).
		Int("joinedRows", rep.JoinedRows).
		Int("relatedFields", len(rep.Related)).
		Msg("Report built")

	return rep
}
