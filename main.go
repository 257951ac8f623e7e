package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/datasift/internal/cli"
	"github.com/ricardonunez-io/datasift/internal/config"
	"github.com/ricardonunez-io/datasift/internal/dataset"
	"github.com/ricardonunez-io/datasift/internal/loader"
	"github.com/ricardonunez-io/datasift/internal/record"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	path := *configPath
	if !flagSet("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())

	log.Info().
		Str("config", path).
		Int("datasets", len(cfg.Datasets)).
		Int("relations", len(cfg.Relations)).
		Bool("analyzer", cfg.AnalyzerReady()).
		Bool("slack", cfg.SlackReady()).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM)
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	datasets, err := loadDatasets(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load datasets")
	}

	rl, err := cli.NewReadline(cfg.HistoryFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open terminal")
	}
	defer rl.Close()

	app := cli.New(datasets, cfg, cli.NewPrompter(rl, rl.Stdout()), rl.Stdout())
	if err := app.Run(ctx); err != nil {
		log.Err(err).Msg("Session ended with an error")
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func loadDatasets(ctx context.Context, cfg *config.Config) ([]*dataset.Dataset, error) {
	var ddClient *datadog.APIClient

	datasets := make([]*dataset.Dataset, 0, len(cfg.Datasets))
	for _, dc := range cfg.Datasets {
		var records []record.Record
		var err error

		switch dc.Source {
		case config.SourceDatadog:
			if !loader.DatadogConfigured() {
				return nil, fmt.Errorf("dataset %s: DD_API_KEY and DD_APPLICATION_KEY are required", dc.Name)
			}
			if ddClient == nil {
				ddClient = loader.NewDatadogClient()
			}
			records, err = loader.LoadDatadog(ctx, ddClient, loader.DatadogSource{
				Query:    dc.Query,
				Interval: dc.Interval,
				Severity: dc.Severity,
			})
		default:
			records, err = loader.LoadFile(dc.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", dc.Name, err)
		}

		ds, err := dataset.FromRecords(dc.Name, records)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", dc.Name, err)
		}
		if dc.LinkField != "" {
			if ds, err = ds.WithLinkField(dc.LinkField); err != nil {
				return nil, fmt.Errorf("dataset %s: %w", dc.Name, err)
			}
		}

		log.Info().
			Str("dataset", ds.Name()).
			Int("records", ds.Len()).
			Int("fields", len(ds.Fields())).
			Msg("Dataset ready")
		datasets = append(datasets, ds)
	}
	return datasets, nil
}
