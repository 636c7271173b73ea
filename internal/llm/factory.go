package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edututor/edututor/internal/store"
)

// NewProvider builds the configured provider. Every attempt is recorded in
// events, and retries wrap the recording so each attempt shows up in the
// usage log. A nil events disables recording.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "watsonx":
		base, err = NewWatsonxProvider(cfg.Watsonx)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMock()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if events != nil {
		p = WithUsageLog(p, events, slog.Default())
	}
	return WithRetry(p, cfg.Retry), nil
}

// ResolveConfig returns cfg when its provider has credentials. Otherwise it
// falls back to DiscoverConfig, keeping cfg's retry and timeout settings.
// The boolean is false when no provider could be configured.
func ResolveConfig(cfg Config) (Config, bool) {
	if cfg.Provider != "" && cfg.Validate() == nil {
		return cfg, true
	}
	found, ok := DiscoverConfig()
	if !ok {
		return cfg, false
	}
	if cfg.Retry.MaxAttempts > 0 {
		found.Retry = cfg.Retry
	}
	if cfg.Timeout > 0 {
		found.Timeout = cfg.Timeout
	}
	return found, true
}
