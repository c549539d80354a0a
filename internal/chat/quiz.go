package chat

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/wordspark/wordspark/internal/llm"
)

// questionSchema is the structured-output contract for quiz generation.
var questionSchema = &llm.Schema{
	Name:        "vocab-question",
	Description: "A multiple-choice vocabulary question for a young reader",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the child, asking what the word means",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 answer options, one correct",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Zero-based index of the correct option",
			},
		},
		"required":             []any{"question", "options", "correct_index"},
		"additionalProperties": false,
	},
}

type questionOutput struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// generateQuestion produces a quiz question for word, preferring the
// generator and falling back to a synthesized definition question when
// the structured call fails or returns something unusable.
func (c *Controller) generateQuestion(ctx context.Context, word, sentence, definition string) *VocabQuestion {
	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionPrompt(word, sentence, definition)},
		},
		Schema:      questionSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err == nil {
		var out questionOutput
		if jsonErr := json.Unmarshal(resp.Content, &out); jsonErr == nil && usableQuestion(out) {
			return &VocabQuestion{
				Question:     out.Question,
				Options:      out.Options,
				CorrectIndex: out.CorrectIndex,
			}
		}
	}

	return c.synthesizeQuestion(word, definition)
}

// usableQuestion double-checks the generator's output beyond schema
// validation: the mock provider skips validation, and a correct option
// must actually exist.
func usableQuestion(out questionOutput) bool {
	return out.Question != "" &&
		len(out.Options) == 4 &&
		out.CorrectIndex >= 0 && out.CorrectIndex < 4
}

// synthesizeQuestion builds a generic definition question with plausible
// distractors drawn from the bank. Returns nil when the word has no known
// definition to anchor the correct answer — the caller skips the quiz in
// that case.
func (c *Controller) synthesizeQuestion(word, definition string) *VocabQuestion {
	if definition == "" {
		if e, ok := c.bank.Lookup(word); ok {
			definition = e.Definition
		} else {
			return nil
		}
	}

	distractors := c.distractorDefinitions(word, 3)
	if len(distractors) < 3 {
		return nil
	}

	options := make([]string, 0, 4)
	correct := len(word) % 4
	for i := range 4 {
		if i == correct {
			options = append(options, definition)
		} else {
			options = append(options, distractors[0])
			distractors = distractors[1:]
		}
	}

	return &VocabQuestion{
		Question:     "What does the word \"" + word + "\" mean?",
		Options:      options,
		CorrectIndex: correct,
	}
}

// distractorDefinitions pulls n definitions of other words from the bank.
func (c *Controller) distractorDefinitions(word string, n int) []string {
	var out []string
	seen := make(map[string]bool)
	exclude := []string{word}
	for range n * 4 {
		e := c.bank.Select("", exclude, nil)
		if e == nil {
			break
		}
		exclude = append(exclude, e.Word)
		if strings.EqualFold(e.Word, word) || seen[e.Definition] {
			continue
		}
		seen[e.Definition] = true
		out = append(out, e.Definition)
		if len(out) == n {
			break
		}
	}
	return out
}
