package llm

import "encoding/json"

// finish applies the output contract shared by every provider adapter.
// A structured request must yield complete, schema-valid JSON: hitting
// the token cap or failing validation is an error for the caller to
// handle. A prose request is returned as-is even when clipped; the stop
// reason records it.
func finish(out json.RawMessage, schema *Schema, hitCap bool, usage Usage, model string) (*Response, error) {
	if schema != nil {
		if hitCap {
			return nil, truncated(out)
		}
		if err := schema.validate(out); err != nil {
			return nil, err
		}
	}
	stop := "end"
	if hitCap {
		stop = "max_tokens"
	}
	return &Response{Content: out, Usage: usage, Model: model, StopReason: stop}, nil
}

// modelAlias expands a friendly model name. Unknown names pass through,
// so exact provider model IDs keep working.
func modelAlias(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
