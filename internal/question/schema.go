package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchemaName identifies the object-form record schema in the cache.
const recordSchemaName = "quiz-record"

// recordSchema describes a record in named object form. Structural
// invariants the schema cannot express (at least one correct option,
// bijective answer map) are checked by Validate.
var recordSchema = map[string]any{
	"oneOf": []any{
		map[string]any{
			"type":     "object",
			"required": []any{"type", "prompt", "options"},
			"properties": map[string]any{
				"type":   map[string]any{"const": string(KindMultipleChoice)},
				"prompt": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":     "object",
						"required": []any{"text"},
						"properties": map[string]any{
							"text":    map[string]any{"type": "string"},
							"correct": map[string]any{"type": "boolean"},
						},
						"additionalProperties": false,
					},
				},
				"explanation": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
		map[string]any{
			"type":     "object",
			"required": []any{"type", "prompt", "categories", "options", "answer"},
			"properties": map[string]any{
				"type":       map[string]any{"const": string(KindMatching)},
				"prompt":     map[string]any{"type": "string", "minLength": 1},
				"categories": map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
				"options":    map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
				"answer": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
				},
				"explanation": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateObject checks a decoded object-form record against recordSchema.
func validateObject(parsed any) error {
	compiled, err := getCompiledSchema(recordSchemaName, recordSchema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", recordSchemaName, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return malformed("schema validation failed: %v", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded JSON value, so round-trip the
	// Go literal to normalise nested slice and map types.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
