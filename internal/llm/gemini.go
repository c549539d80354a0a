package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// geminiClient adapts the Google Gemini SDK. Gemini has no raw-JSON-Schema
// response format, so structured requests translate the schema definition
// into the SDK's typed form.
type geminiClient struct {
	sdk   *genai.Client
	model string
}

func newGeminiClient(ctx context.Context, cfg GeminiConfig) (*geminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key missing")
	}
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: client: %w", err)
	}
	return &geminiClient{
		sdk:   sdk,
		model: modelAlias(cfg.Model, geminiAliases),
	}, nil
}

func (c *geminiClient) ModelID() string { return c.model }

func (c *geminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	turns := make([]*genai.Content, len(req.Messages))
	for i, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		turns[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}

	reply, err := c.sdk.Models.GenerateContent(ctx, c.model, turns, cfg)
	if err != nil {
		return nil, geminiFailure(err)
	}
	text := reply.Text()
	if text == "" {
		return nil, malformed(nil, fmt.Errorf("gemini: empty reply"))
	}

	var usage Usage
	if m := reply.UsageMetadata; m != nil {
		usage = Usage{
			InputTokens:  int(m.PromptTokenCount),
			OutputTokens: int(m.CandidatesTokenCount),
			TotalTokens:  int(m.TotalTokenCount),
		}
	}
	hitCap := len(reply.Candidates) > 0 && reply.Candidates[0].FinishReason == "MAX_TOKENS"

	return finish(json.RawMessage(text), req.Schema, hitCap, usage, c.model)
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// geminiSchema converts the plain JSON Schema map into the SDK's typed
// schema. Only the vocabulary this codebase's schemas use is carried:
// type, description, properties, items, required, enum.
func geminiSchema(def map[string]any) *genai.Schema {
	out := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		out.Type = geminiTypes[t]
	}
	if d, ok := def["description"].(string); ok {
		out.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if sub, ok := raw.(map[string]any); ok {
				out.Properties[name] = geminiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		out.Items = geminiSchema(items)
	}
	for _, r := range asStrings(def["required"]) {
		out.Required = append(out.Required, r)
	}
	for _, e := range asStrings(def["enum"]) {
		out.Enum = append(out.Enum, e)
	}

	return out
}

func asStrings(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func geminiFailure(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return throttled(err, 0)
	}
	return unreachable(err)
}
