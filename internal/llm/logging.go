package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that records latency and token usage for
// every LLM request on the structured logger.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging wraps a Provider with usage logging. A nil logger falls back
// to slog.Default().
func WithLogging(p Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	attrs := []any{
		slog.String("model", l.inner.ModelID()),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
		slog.Bool("structured", req.Schema != nil),
	}
	if resp != nil {
		attrs = append(attrs,
			slog.Int("input_tokens", resp.Usage.InputTokens),
			slog.Int("output_tokens", resp.Usage.OutputTokens),
		)
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.logger.WarnContext(ctx, "llm request failed", attrs...)
	} else {
		l.logger.InfoContext(ctx, "llm request", attrs...)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
