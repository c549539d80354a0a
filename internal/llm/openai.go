package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiAliases = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// openaiClient adapts the OpenAI SDK. BaseURL support covers OpenRouter
// and other OpenAI-compatible endpoints with the same wire shape.
type openaiClient struct {
	sdk   *openai.Client
	model string
}

func newOpenAIClient(cfg OpenAIConfig) (*openaiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key missing")
	}
	sdkCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkCfg.BaseURL = cfg.BaseURL
	}
	return &openaiClient{
		sdk:   openai.NewClientWithConfig(sdkCfg),
		model: modelAlias(cfg.Model, openaiAliases),
	}, nil
}

func (c *openaiClient) ModelID() string { return c.model }

func (c *openaiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	turns := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		turns = append(turns, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		turns = append(turns, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:               c.model,
		Messages:            turns,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("openai: marshal schema: %w", err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}

	reply, err := c.sdk.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, openaiFailure(err)
	}
	if len(reply.Choices) == 0 {
		return nil, malformed(nil, fmt.Errorf("openai: reply carries no choices"))
	}

	choice := reply.Choices[0]
	usage := Usage{
		InputTokens:  reply.Usage.PromptTokens,
		OutputTokens: reply.Usage.CompletionTokens,
		TotalTokens:  reply.Usage.TotalTokens,
	}
	hitCap := choice.FinishReason == openai.FinishReasonLength

	return finish(json.RawMessage(choice.Message.Content), req.Schema, hitCap, usage, reply.Model)
}

func openaiFailure(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return throttled(err, 0)
	}
	return unreachable(err)
}
