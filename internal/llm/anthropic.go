package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// anthropicClient adapts the Anthropic SDK. Story and fact turns run as
// plain text completions; quiz generation sends the request schema
// through the JSON output format.
type anthropicClient struct {
	sdk   anthropic.Client
	model string
}

func newAnthropicClient(cfg AnthropicConfig) (*anthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key missing")
	}
	return &anthropicClient{
		sdk:   anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model: modelAlias(cfg.Model, anthropicAliases),
	}, nil
}

func (c *anthropicClient) ModelID() string { return c.model }

func (c *anthropicClient) Generate(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxTokens),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}

	msg, err := c.sdk.Messages.New(ctx, params)
	if err != nil {
		return nil, anthropicFailure(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, malformed(nil, fmt.Errorf("anthropic: no text blocks in reply"))
	}

	usage := Usage{
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
		TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
	}
	hitCap := msg.StopReason == anthropic.StopReasonMaxTokens

	return finish(json.RawMessage(text.String()), req.Schema, hitCap, usage, string(msg.Model))
}

func anthropicFailure(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return throttled(err, 0)
	}
	return unreachable(err)
}
