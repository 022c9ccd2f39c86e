package llm

import (
	"fmt"
	"strings"

	"raven/internal/config"
)

// NewFromConfig creates the LLM client for the configured provider.
func NewFromConfig(cfg *config.Config) (Client, error) {
	switch strings.ToLower(string(cfg.LLMProvider)) {
	case string(config.ProviderOllama):
		return NewOllama(cfg.OllamaBaseURL, cfg.LLMTimeout), nil
	case string(config.ProviderOpenAI):
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
