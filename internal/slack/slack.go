package slack

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"

	"github.com/ricardonunez-io/datasift/internal/analyzer"
	"github.com/ricardonunez-io/datasift/internal/summary"
)

var ErrNotConfigured = errors.New("SLACK_BOT_TOKEN and SLACK_CHANNEL_ID must be set")

type Config struct {
	BotToken  string
	ChannelID string
}

func (c Config) Configured() bool {
	return c.BotToken != "" && c.ChannelID != ""
}

// SendReport posts a search report, and its analysis when there is one, to
// the configured channel.
func SendReport(report summary.Report, analysis *analyzer.Analysis, config Config) error {
	if !config.Configured() {
		return ErrNotConfigured
	}

	api := slack.New(config.BotToken)

	_, msgTimestamp, err := api.PostMessage(
		config.ChannelID,
		slack.MsgOptionText(fallbackText(report), false),
		slack.MsgOptionBlocks(buildBlocks(report, analysis)...),
	)
	if err != nil {
		log.Err(err).Str("channel", config.ChannelID).Msg("Failed to post Slack message")
		return err
	}

	log.Info().
		Str("channel", config.ChannelID).
		Str("timestamp", msgTimestamp).
		Msg("Report posted to Slack")
	return nil
}

func fallbackText(report summary.Report) string {
	return fmt.Sprintf("%s: %d of %d records where %s = %s",
		report.Dataset, report.Matches, report.SourceCount, report.Field, report.Query)
}

func buildBlocks(report summary.Report, analysis *analyzer.Analysis) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			"plain_text",
			fmt.Sprintf("%s Search: %s", matchEmoji(report.Matches, report.SourceCount), report.Dataset),
			false, false,
		)),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*Query:* `%s = %s`\n*Matches:* %d of %d",
					report.Field, report.Query, report.Matches, report.SourceCount),
				false, false),
			nil, nil,
		),
	}

	if top := topValues(report); top != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Top Values:*\n%s", top), false, false),
			nil, nil,
		))
	}

	if analysis == nil {
		return blocks
	}

	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("*Summary:*\n%s", analysis.Summary),
			false, false),
		nil, nil,
	))

	if len(analysis.KeyPoints) > 0 {
		points := make([]string, len(analysis.KeyPoints))
		for i, p := range analysis.KeyPoints {
			points[i] = fmt.Sprintf("• %s", p)
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*Key Points:*\n%s", strings.Join(points, "\n")),
				false, false),
			nil, nil,
		))
	}

	ts, err := time.Parse(time.RFC3339, analysis.Timestamp)
	if err == nil {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("Analyzed at: %s", ts.Format(time.RFC1123)),
				false, false),
		))
	}

	return blocks
}

// topValues lists the most frequent value of each field of the matches and of
// the fields joined in, skipping the searched field.
func topValues(report summary.Report) string {
	fields := make(map[string]summary.Insights, len(report.Fields)+len(report.Related))
	for name, in := range report.Related {
		fields[name] = in
	}
	for name, in := range report.Fields {
		fields[name] = in
	}
	delete(fields, report.Field)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		in := fields[name]
		if len(in.TopKeys) == 0 {
			continue
		}
		top := in.TopKeys[0]
		lines = append(lines, fmt.Sprintf("• %s: %s (%d)", name, top.Key, top.Count))
	}
	return strings.Join(lines, "\n")
}

func matchEmoji(matches, total int) string {
	switch {
	case matches == 0:
		return "⚪"
	case total > 0 && matches*2 > total:
		return "🟠"
	default:
		return "🟢"
	}
}
