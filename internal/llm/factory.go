package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codearena/arena/internal/store"
)

// NewProvider creates a Provider from configuration.
// The result is wrapped as caller → breaker → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		// An empty mock fails every call, which drives callers onto their
		// fallback content. Useful offline.
		return WithLogging(NewMockProvider(), eventRepo, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, eventRepo, logger)
	p = WithRetry(p, cfg.Retry)
	if cfg.Breaker.Enabled {
		p = WithBreaker(p, cfg.Breaker, logger)
	}
	return p, nil
}
