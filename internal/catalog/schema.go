package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema describes the question bank file: a top-level "questions"
// array of question objects. Cross-field rules (answer key membership, id
// uniqueness) are enforced in Go after structural validation.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":    "integer",
						"minimum": 1,
					},
					"category": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"multiple_choice", "true_false"},
					},
					"question": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"maxItems": 4,
					},
					"correct_answer": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"explanation": map[string]any{
						"type": "string",
					},
				},
				"required": []any{"id", "category", "type", "question", "correct_answer"},
			},
		},
	},
	"required": []any{"questions"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateCatalog checks raw catalog JSON against the schema.
func validateCatalog(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledCatalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledCatalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, so round-trip
		// the definition through encoding/json first.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://questions.json", defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://questions.json")
	})
	return compiledSchema, compileErr
}
