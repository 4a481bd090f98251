package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// stringList is the schema fragment for an array of strings.
var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// SchemaDefinition is the JSON Schema a deck file must satisfy. Property
// names are matched exactly here; the decoder itself is case-insensitive, so
// the schema constrains types rather than requiring specific keys.
var SchemaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"deckId":        map[string]any{"type": "string"},
		"title":         map[string]any{"type": "string"},
		"formatVersion": map[string]any{"type": "string"},
		"tasks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":                map[string]any{"type": "string"},
					"group":             map[string]any{"type": "string"},
					"type":              map[string]any{"type": "string"},
					"promptRu":          map[string]any{"type": "string"},
					"promptNative":      map[string]any{"type": "string"},
					"promptEsTemplate":  map[string]any{"type": "string"},
					"promptTemplate":    map[string]any{"type": "string"},
					"options":           stringList,
					"acceptableAnswers": stringList,
					"note":              map[string]any{"type": []any{"string", "null"}},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// deckSchema compiles SchemaDefinition on first use.
func deckSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// Round-trip through JSON so the compiler sees plain decoded values.
		b, err := json.Marshal(SchemaDefinition)
		if err != nil {
			compileErr = fmt.Errorf("marshal deck schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://deck.json"
		if err := c.AddResource(url, doc); err != nil {
			compileErr = fmt.Errorf("add deck schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ValidateJSON checks raw deck JSON against the deck schema.
func ValidateJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := deckSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
