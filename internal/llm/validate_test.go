package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func quizSchema() *Schema {
	return &Schema{
		Name:        "quiz-question-test",
		Description: "A multiple-choice vocabulary question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correct_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
			},
			"required": []any{"question", "options", "correct_index"},
		},
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{
			"well-formed question",
			`{"question":"What does curious mean?","options":["a","b","c","d"],"correct_index":1}`,
			true,
		},
		{
			"missing options",
			`{"question":"What does curious mean?","correct_index":1}`,
			false,
		},
		{
			"two options instead of four",
			`{"question":"q","options":["a","b"],"correct_index":0}`,
			false,
		},
		{
			"index out of range",
			`{"question":"q","options":["a","b","c","d"],"correct_index":7}`,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := quizSchema().validate(json.RawMessage(tt.raw))
			if tt.ok && err != nil {
				t.Fatalf("validate() error = %v", err)
			}
			if !tt.ok {
				if kind, ok := KindOf(err); !ok || kind != FailMalformed {
					t.Fatalf("KindOf = %v, %v; want FailMalformed", kind, ok)
				}
			}
		})
	}
}

func TestSchemaValidate_ProseIsMalformed(t *testing.T) {
	err := quizSchema().validate(json.RawMessage(`Once upon a time there was a fox.`))
	if kind, ok := KindOf(err); !ok || kind != FailMalformed {
		t.Fatalf("KindOf = %v, %v; want FailMalformed for non-JSON output", kind, ok)
	}
	var ge *GenerationError
	if !errors.As(err, &ge) || len(ge.Output) == 0 {
		t.Error("malformed error should carry the offending output")
	}
}

func TestSchemaValidate_CompilesOnce(t *testing.T) {
	s := quizSchema()
	raw := json.RawMessage(`{"question":"q","options":["a","b","c","d"],"correct_index":0}`)
	if err := s.validate(raw); err != nil {
		t.Fatalf("first validate: %v", err)
	}

	compiledSchemas.Lock()
	_, cached := compiledSchemas.m[s.Name]
	compiledSchemas.Unlock()
	if !cached {
		t.Fatal("expected compiled schema in cache")
	}

	if err := s.validate(raw); err != nil {
		t.Fatalf("cached validate: %v", err)
	}
}
