// Package config loads the datasets, relations and integrations datasift
// runs with.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ricardonunez-io/datasift/internal/analyzer"
	"github.com/ricardonunez-io/datasift/internal/loader"
)

const DefaultPath = "datasift.yaml"

const (
	SourceFile    = "file"
	SourceDatadog = "datadog"
)

var ErrInvalid = errors.New("invalid config")

type DatasetConfig struct {
	Name      string `mapstructure:"name"`
	Source    string `mapstructure:"source"`
	Path      string `mapstructure:"path"`
	Query     string `mapstructure:"query"`
	Interval  string `mapstructure:"interval"`
	Severity  string `mapstructure:"severity"`
	LinkField string `mapstructure:"link_field"`
}

// RelationConfig joins the results of a search on From with the records of
// To where FromField equals ToField. Empty fields fall back to the datasets'
// link fields.
type RelationConfig struct {
	From      string `mapstructure:"from"`
	To        string `mapstructure:"to"`
	FromField string `mapstructure:"from_field"`
	ToField   string `mapstructure:"to_field"`
}

type Config struct {
	Datasets  []DatasetConfig  `mapstructure:"datasets"`
	Relations []RelationConfig `mapstructure:"relations"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Analyzer struct {
		Enabled bool   `mapstructure:"enabled"`
		Model   string `mapstructure:"model"`
		APIKey  string `mapstructure:"api_key"`
	} `mapstructure:"analyzer"`

	Slack struct {
		Enabled   bool   `mapstructure:"enabled"`
		BotToken  string `mapstructure:"bot_token"`
		ChannelID string `mapstructure:"channel_id"`
	} `mapstructure:"slack"`

	HistoryFile string `mapstructure:"history_file"`
}

// DefaultDatasets are used when the config file names none.
func DefaultDatasets() []DatasetConfig {
	return []DatasetConfig{
		{Name: "Tickets", Source: SourceFile, Path: "data/tickets.json", LinkField: "assignee_id"},
		{Name: "Users", Source: SourceFile, Path: "data/users.json", LinkField: "_id"},
	}
}

func DefaultRelations() []RelationConfig {
	return []RelationConfig{
		{From: "Tickets", To: "Users", FromField: "assignee_id", ToField: "_id"},
		{From: "Users", To: "Tickets", FromField: "_id", ToField: "assignee_id"},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// loads the defaults alone. Secrets come from the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("analyzer.enabled", true)
	v.SetDefault("analyzer.model", analyzer.DefaultModel)
	v.SetDefault("slack.enabled", false)
	v.SetDefault("history_file", ".datasift_history")

	_ = v.BindEnv("analyzer.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("slack.bot_token", "SLACK_BOT_TOKEN")
	_ = v.BindEnv("slack.channel_id", "SLACK_CHANNEL_ID")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Datasets) == 0 {
		cfg.Datasets = DefaultDatasets()
		if len(cfg.Relations) == 0 {
			cfg.Relations = DefaultRelations()
		}
	}
	for i := range cfg.Datasets {
		if cfg.Datasets[i].Source == "" {
			cfg.Datasets[i].Source = SourceFile
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}

	seen := make(map[string]bool, len(c.Datasets))
	for _, d := range c.Datasets {
		if d.Name == "" {
			return fmt.Errorf("%w: dataset without a name", ErrInvalid)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: dataset %q defined twice", ErrInvalid, d.Name)
		}
		seen[d.Name] = true

		switch d.Source {
		case SourceFile:
			if d.Path == "" {
				return fmt.Errorf("%w: dataset %q has no path", ErrInvalid, d.Name)
			}
		case SourceDatadog:
			if d.Interval != "" && !loader.ValidTimeIntervals.Includes(d.Interval) {
				return fmt.Errorf("%w: dataset %q has unknown interval %q", ErrInvalid, d.Name, d.Interval)
			}
			if d.Severity != "" && !loader.ValidLogSeverities.Includes(d.Severity) {
				return fmt.Errorf("%w: dataset %q has unknown severity %q", ErrInvalid, d.Name, d.Severity)
			}
		default:
			return fmt.Errorf("%w: dataset %q has unknown source %q", ErrInvalid, d.Name, d.Source)
		}
	}

	for _, r := range c.Relations {
		if !seen[r.From] || !seen[r.To] {
			return fmt.Errorf("%w: relation %s -> %s names an unknown dataset", ErrInvalid, r.From, r.To)
		}
		if r.From == r.To {
			return fmt.Errorf("%w: relation %s -> %s relates a dataset to itself", ErrInvalid, r.From, r.To)
		}
	}
	return nil
}

// RelationsFrom returns the relations whose searches start on dataset name,
// in config order.
func (c *Config) RelationsFrom(name string) []RelationConfig {
	var out []RelationConfig
	for _, r := range c.Relations {
		if r.From == name {
			out = append(out, r)
		}
	}
	return out
}

func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) AnalyzerConfig() analyzer.Config {
	cfg := analyzer.DefaultConfig(c.Analyzer.APIKey)
	if c.Analyzer.Model != "" {
		cfg.Model = c.Analyzer.Model
	}
	return cfg
}

// AnalyzerReady reports whether searches can be analysed.
func (c *Config) AnalyzerReady() bool {
	return c.Analyzer.Enabled && c.Analyzer.APIKey != ""
}

// SlackReady reports whether reports can be shared.
func (c *Config) SlackReady() bool {
	return c.Slack.Enabled && c.Slack.BotToken != "" && c.Slack.ChannelID != ""
}
