package challenge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://challenge.json"

// SchemaDefinition is the JSON Schema every served challenge satisfies.
var SchemaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":           map[string]any{"type": "string", "minLength": 1},
		"title":        map[string]any{"type": "string", "minLength": 1},
		"description":  map[string]any{"type": "string"},
		"difficulty":   map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
		"timeLimit":    map[string]any{"type": "integer", "minimum": 1},
		"inputFormat":  map[string]any{"type": "string"},
		"outputFormat": map[string]any{"type": "string"},
		"constraints": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"examples": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"input":       map[string]any{"type": "string"},
					"output":      map[string]any{"type": "string"},
					"explanation": map[string]any{"type": "string"},
				},
				"required": []any{"input", "output"},
			},
		},
		"testCases": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"input":  map[string]any{"type": "string"},
					"output": map[string]any{"type": "string"},
				},
				"required":             []any{"input", "output"},
				"additionalProperties": false,
			},
		},
		"boilerplateCode": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"python": map[string]any{"type": "string"},
				"cpp":    map[string]any{"type": "string"},
				"java":   map[string]any{"type": "string"},
			},
			"required": []any{"python", "cpp", "java"},
		},
	},
	"required": []any{
		"id", "title", "description", "difficulty", "timeLimit", "inputFormat",
		"outputFormat", "constraints", "examples", "testCases", "boilerplateCode",
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps with typed
		// slices, so round-trip the definition.
		raw, err := json.Marshal(SchemaDefinition)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks c against SchemaDefinition.
func Validate(c Challenge) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode challenge: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("challenge %q: %w", c.ID, err)
	}
	return nil
}
