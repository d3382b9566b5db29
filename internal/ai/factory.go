package ai

import (
	"fmt"

	"github.com/hqvu/remindcal/internal/model"
)

// NewProvider creates a Provider for the configured backend.
func NewProvider(cfg model.AIConfig, apiKey string) (Provider, error) {
	switch cfg.Provider {
	case model.ProviderClaude, "":
		return NewClaudeProvider(apiKey, cfg.Model, cfg.MaxTokens)

	case model.ProviderDeepSeek:
		return NewDeepSeekProvider(apiKey, cfg.Model, cfg.MaxTokens)

	default:
		return nil, fmt.Errorf("unknown AI provider: %s (supported: %s, %s)",
			cfg.Provider, model.ProviderClaude, model.ProviderDeepSeek)
	}
}
