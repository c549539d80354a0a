package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and logging middleware.
func NewProvider(ctx context.Context, cfg Config, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = newAnthropicClient(cfg.Anthropic)
	case "openai":
		base, err = newOpenAIClient(cfg.OpenAI)
	case "gemini":
		base, err = newGeminiClient(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}
