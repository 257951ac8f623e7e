package analyzer

const DefaultModel = "claude-opus-4-6"

type Config struct {
	APIKey string
	Model  string
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey: apiKey,
		Model:  DefaultModel,
	}
}
