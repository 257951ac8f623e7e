package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ricardonunez-io/datasift/internal/analyzer"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datasift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, DefaultDatasets(), cfg.Datasets)
	require.Equal(t, []RelationConfig{
		{From: "Tickets", To: "Users", FromField: "assignee_id", ToField: "_id"},
		{From: "Users", To: "Tickets", FromField: "_id", ToField: "assignee_id"},
	}, cfg.Relations)
	require.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
	require.Equal(t, analyzer.DefaultModel, cfg.AnalyzerConfig().Model)
	require.False(t, cfg.AnalyzerReady())
	require.False(t, cfg.SlackReady())
	require.Equal(t, ".datasift_history", cfg.HistoryFile)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
analyzer:
  model: claude-sonnet-4-5
datasets:
  - name: Orders
    path: orders.json
    link_field: customer_id
  - name: Customers
    path: customers.json
  - name: Errors
    source: datadog
    query: "status:error"
    interval: one_hour
    severity: severe
relations:
  - from: Orders
    to: Customers
    from_field: customer_id
    to_field: id
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Datasets, 3)
	require.Equal(t, SourceFile, cfg.Datasets[0].Source)
	require.Equal(t, "customer_id", cfg.Datasets[0].LinkField)
	require.Equal(t, SourceDatadog, cfg.Datasets[2].Source)
	require.Equal(t, "status:error", cfg.Datasets[2].Query)
	require.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	require.Equal(t, "claude-sonnet-4-5", cfg.AnalyzerConfig().Model)

	require.Len(t, cfg.RelationsFrom("Orders"), 1)
	require.Empty(t, cfg.RelationsFrom("Customers"))
}

func TestLoad_SecretsFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")

	cfg, err := Load(writeConfig(t, "slack:\n  enabled: true\n"))
	require.NoError(t, err)

	require.Equal(t, "sk-test", cfg.AnalyzerConfig().APIKey)
	require.True(t, cfg.AnalyzerReady())
	require.True(t, cfg.SlackReady())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown source":   "datasets:\n  - name: A\n    source: s3\n",
		"missing path":     "datasets:\n  - name: A\n",
		"duplicate name":   "datasets:\n  - name: A\n    path: a.json\n  - name: A\n    path: b.json\n",
		"bad interval":     "datasets:\n  - name: A\n    source: datadog\n    interval: FORTNIGHT\n",
		"bad severity":     "datasets:\n  - name: A\n    source: datadog\n    severity: LOUD\n",
		"unknown relation": "datasets:\n  - name: A\n    path: a.json\nrelations:\n  - from: A\n    to: B\n",
		"self relation":    "datasets:\n  - name: A\n    path: a.json\nrelations:\n  - from: A\n    to: A\n",
		"bad log level":    "log:\n  level: loud\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}
