// Package cli drives the interactive search session.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/datasift/internal/analyzer"
	"github.com/ricardonunez-io/datasift/internal/config"
	"github.com/ricardonunez-io/datasift/internal/dataset"
	"github.com/ricardonunez-io/datasift/internal/record"
	"github.com/ricardonunez-io/datasift/internal/slack"
	"github.com/ricardonunez-io/datasift/internal/summary"
)

const menu = `Welcome to Datasift!
	Options:
		- 1 to search
		- 2 to view a list of searchable fields
		- 3 to export a dataset's JSON Schema
		- q to quit`

type App struct {
	datasets  []*dataset.Dataset
	byName    map[string]*dataset.Dataset
	relations func(name string) []config.RelationConfig
	prompt    *Prompter
	out       io.Writer

	analyze func(ctx context.Context, report summary.Report) (*analyzer.Analysis, error)
	share   func(report summary.Report, analysis *analyzer.Analysis) error
}

func New(datasets []*dataset.Dataset, cfg *config.Config, prompt *Prompter, out io.Writer) *App {
	app := &App{
		datasets:  datasets,
		byName:    make(map[string]*dataset.Dataset, len(datasets)),
		relations: cfg.RelationsFrom,
		prompt:    prompt,
		out:       out,
	}
	for _, ds := range datasets {
		app.byName[ds.Name()] = ds
	}

	if cfg.AnalyzerReady() {
		analyzerCfg := cfg.AnalyzerConfig()
		app.analyze = func(ctx context.Context, report summary.Report) (*analyzer.Analysis, error) {
			return analyzer.Analyze(ctx, report, analyzerCfg)
		}
	}
	if cfg.SlackReady() {
		slackCfg := slack.Config{BotToken: cfg.Slack.BotToken, ChannelID: cfg.Slack.ChannelID}
		app.share = func(report summary.Report, analysis *analyzer.Analysis) error {
			return slack.SendReport(report, analysis, slackCfg)
		}
	}
	return app
}

// Run shows the menu until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		choice, err := a.prompt.Choose(menu, []string{"1", "2", "3", "q"})
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = a.Search(ctx)
		case "2":
			err = RenderFields(a.out, a.datasets)
		case "3":
			err = a.ExportSchema()
		case "q":
			return nil
		}
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) names() []string {
	names := make([]string, len(a.datasets))
	for i, ds := range a.datasets {
		names[i] = ds.Name()
	}
	return names
}

// Search asks for a dataset, a field and a value, then shows the matching
// records joined with their related datasets.
func (a *App) Search(ctx context.Context) error {
	name, err := a.prompt.Choose("Please select data set", a.names())
	if err != nil {
		return err
	}
	ds := a.byName[name]

	fieldName, err := a.prompt.Choose("Please select search field", ds.Schema().FieldNames())
	if err != nil {
		return err
	}
	field, _ := ds.Field(fieldName)

	mode, err := a.prompt.Choose(fmt.Sprintf("Searching %s on the %s field\n"+
		"\tOptions:\n"+
		"\t\t- 1 to enter a search term\n"+
		"\t\t- 2 to search for null values", ds.Name(), fieldName), []string{"1", "2"})
	if err != nil {
		return err
	}

	query := record.Null()
	if mode == "1" {
		query, err = a.prompt.AskValue(valuePrompt(field), field)
		if err != nil {
			return err
		}
	}

	subset, err := ds.Filter(fieldName, query)
	if err != nil {
		return err
	}

	result := a.joinRelated(subset)
	if err := Render(a.out, result); err != nil {
		return err
	}

	report := summary.NewReport(ds, subset, result, fieldName, query)
	fmt.Fprintf(a.out, "\nMatched %d of %d %s records\n", report.Matches, report.SourceCount, ds.Name())

	log.Info().
		Str("dataset", ds.Name()).
		Str("field", fieldName).
		Str("query", report.Query).
		Int("matches", report.Matches).
		Msg("Search completed")

	if report.Matches == 0 {
		return nil
	}
	return a.followUp(ctx, report)
}

// joinRelated joins subset with every dataset it is related to. A relation
// that cannot be joined is logged and skipped.
func (a *App) joinRelated(subset *dataset.Dataset) *dataset.Dataset {
	result := subset
	for _, rel := range a.relations(subset.Name()) {
		other, ok := a.byName[rel.To]
		if !ok {
			continue
		}

		var joined *dataset.Dataset
		var err error
		if rel.FromField == "" || rel.ToField == "" {
			joined, err = result.JoinLinked(other)
		} else {
			joined, err = result.Join(other, rel.FromField, rel.ToField)
		}
		if err != nil {
			log.Warn().Err(err).Str("from", rel.From).Str("to", rel.To).Msg("Skipping relation")
			continue
		}
		result = joined
	}
	return result
}

func (a *App) followUp(ctx context.Context, report summary.Report) error {
	var analysis *analyzer.Analysis
	if a.analyze != nil {
		ok, err := a.prompt.Confirm("Analyse these results?")
		if err != nil {
			return err
		}
		if ok {
			analysis, err = a.analyze(ctx, report)
			if err != nil {
				log.Err(err).Msg("Analysis failed")
				fmt.Fprintf(a.out, "Error: analysis failed: %v\n", err)
			} else {
				printAnalysis(a.out, analysis)
			}
		}
	}

	if a.share != nil {
		ok, err := a.prompt.Confirm("Share these results to Slack?")
		if err != nil {
			return err
		}
		if ok {
			if err := a.share(report, analysis); err != nil {
				fmt.Fprintf(a.out, "Error: could not share results: %v\n", err)
			}
		}
	}
	return nil
}

func printAnalysis(w io.Writer, analysis *analyzer.Analysis) {
	fmt.Fprintf(w, "\n%s\n", analysis.Summary)
	for _, p := range analysis.KeyPoints {
		fmt.Fprintf(w, "  • %s\n", p)
	}
}

// ExportSchema writes the JSON Schema of a chosen dataset to a file, or to the
// output when no path is given.
func (a *App) ExportSchema() error {
	name, err := a.prompt.Choose("Please select data set", a.names())
	if err != nil {
		return err
	}
	path, err := a.prompt.Ask("Output file (leave blank to print)")
	if err != nil {
		return err
	}

	ds := a.byName[name]
	if strings.TrimSpace(path) == "" {
		return WriteSchema(a.out, ds)
	}

	if err := writeSchemaFile(path, ds); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Schema for %s written to %s\n", ds.Name(), path)
	return nil
}

func writeSchemaFile(path string, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteSchema(f, ds); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
