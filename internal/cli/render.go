package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ricardonunez-io/datasift/internal/dataset"
	"github.com/ricardonunez-io/datasift/internal/schema"
)

const noResults = "No results returned"

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	return t
}

// Render writes one field/value table per record of ds. Every schema field is
// listed, absent ones as null.
func Render(w io.Writer, ds *dataset.Dataset) error {
	if ds.Len() == 0 {
		_, err := fmt.Fprintln(w, noResults)
		return err
	}

	fields := ds.Schema().FieldNames()
	for i, r := range ds.Records() {
		t := newTable()
		for _, name := range fields {
			t.AppendRow(table.Row{name, r.Value(name).String()})
		}

		sep := "\n\n"
		if i == ds.Len()-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, t.Render()+sep); err != nil {
			return err
		}
	}
	return nil
}

// RenderFields lists the searchable fields of each dataset.
func RenderFields(w io.Writer, datasets []*dataset.Dataset) error {
	for _, ds := range datasets {
		t := newTable()
		t.SetTitle(fmt.Sprintf("%s search fields", ds.Name()))
		t.AppendHeader(table.Row{"Field", "Type", "Unique values", "Examples"})
		for _, f := range ds.Fields() {
			typ := string(f.Type)
			if f.Type == schema.FieldTypeArray {
				typ = fmt.Sprintf("array of %s", f.Elem)
			}
			t.AppendRow(table.Row{f.Name, typ, f.Cardinality, strings.Join(f.Examples, ", ")})
		}
		if _, err := io.WriteString(w, t.Render()+"\n\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteSchema writes the JSON Schema of ds.
func WriteSchema(w io.Writer, ds *dataset.Dataset) error {
	data, err := json.MarshalIndent(schema.JSONSchema(ds.Schema(), ds.Name()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
