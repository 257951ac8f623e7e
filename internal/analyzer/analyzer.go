package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/datasift/internal/summary"
)

var ErrNoAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

type Analysis struct {
	Summary   string   `json:"summary" jsonschema:"description=Two or three sentences describing what the matching records have in common"`
	KeyPoints []string `json:"keyPoints" jsonschema:"description=List of notable observations about the matching records"`
	Timestamp string   `json:"timestamp" jsonschema:"description=ISO 8601 timestamp of the analysis"`
}

// Analyze asks the model to describe the outcome of a search.
func Analyze(ctx context.Context, report summary.Report, cfg Config) (*Analysis, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	input, err := userPrompt(report)
	if err != nil {
		return nil, err
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
	)

	outputSchema := generateSchema(&Analysis{})

	log.Debug().Str("model", cfg.Model).Int("matches", report.Matches).Msg("Requesting analysis")

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cfg.Model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
		OutputConfig: anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{
				Schema: outputSchema,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in anthropic response")
	}

	return parseAnalysis(responseText, time.Now())
}

func parseAnalysis(text string, now time.Time) (*Analysis, error) {
	var result Analysis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse structured output: %w", err)
	}

	if result.Timestamp == "" {
		result.Timestamp = now.UTC().Format(time.RFC3339)
	}

	return &result, nil
}

func generateSchema(v any) map[string]any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := r.Reflect(v)
	b, _ := json.Marshal(s)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}
