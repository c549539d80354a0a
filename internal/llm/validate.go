package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compilation keyed by Schema.Name. Schemas are
// package-level literals in this codebase, so a name never maps to two
// definitions.
var compiledSchemas = struct {
	sync.Mutex
	m map[string]*jsonschema.Schema
}{m: make(map[string]*jsonschema.Schema)}

// validate checks raw against the schema. Failures come back as
// malformed GenerationErrors carrying the offending output.
func (s *Schema) validate(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return malformed(raw, fmt.Errorf("output is not JSON: %w", err))
	}

	compiled, err := s.compiled()
	if err != nil {
		return fmt.Errorf("schema %q: %w", s.Name, err)
	}

	if err := compiled.Validate(doc); err != nil {
		return malformed(raw, err)
	}
	return nil
}

func (s *Schema) compiled() (*jsonschema.Schema, error) {
	compiledSchemas.Lock()
	defer compiledSchemas.Unlock()

	if compiled, ok := compiledSchemas.m[s.Name]; ok {
		return compiled, nil
	}

	// The compiler wants a decoded JSON document, not a Go map with
	// arbitrary value types; round-trip through encoding/json.
	buf, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var doc any
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := s.Name + ".schema.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchemas.m[s.Name] = compiled
	return compiled, nil
}
