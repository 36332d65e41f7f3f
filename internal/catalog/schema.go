package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://rolwijzer-catalog.json"

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func requiredString() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func stringList() map[string]any {
	return map[string]any{"type": "array", "items": stringProp()}
}

// catalogSchema describes the YAML document accepted by Parse.
var catalogSchema = map[string]any{
	"type":     "object",
	"required": []any{"roles"},
	"properties": map[string]any{
		"roles": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/role"},
		},
	},
	"$defs": map[string]any{
		"role": map[string]any{
			"type":     "object",
			"required": []any{"id", "name", "situations"},
			"properties": map[string]any{
				"id":               requiredString(),
				"name":             requiredString(),
				"icon":             stringProp(),
				"color":            map[string]any{"type": "string", "pattern": "^(#[0-9A-Fa-f]{6})?$"},
				"description":      stringProp(),
				"full_description": stringProp(),
				"situations": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/situation"},
				},
				"flowchart_steps": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/step"},
				},
				"concepts": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/concept"},
				},
			},
			"additionalProperties": false,
		},
		"situation": map[string]any{
			"type":     "object",
			"required": []any{"id", "title", "questions"},
			"properties": map[string]any{
				"id":          requiredString(),
				"title":       requiredString(),
				"description": stringProp(),
				"scenario":    stringProp(),
				"questions": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/question"},
				},
				"tips": stringList(),
			},
			"additionalProperties": false,
		},
		"question": map[string]any{
			"type":     "object",
			"required": []any{"id", "text", "type"},
			"properties": map[string]any{
				"id":   requiredString(),
				"text": requiredString(),
				"type": map[string]any{
					"type": "string",
					"enum": []any{string(QuestionMultipleChoice), string(QuestionReflection), string(QuestionSTARR)},
				},
				"options":        stringList(),
				"correct_answer": map[string]any{"type": "integer", "minimum": NoCorrectAnswer},
				"explanation":    stringProp(),
			},
			"additionalProperties": false,
		},
		"step": map[string]any{
			"type":     "object",
			"required": []any{"id", "title"},
			"properties": map[string]any{
				"id":           requiredString(),
				"title":        requiredString(),
				"description":  stringProp(),
				"requirements": stringList(),
			},
			"additionalProperties": false,
		},
		"concept": map[string]any{
			"type":     "object",
			"required": []any{"id", "term", "definition", "category"},
			"properties": map[string]any{
				"id":         requiredString(),
				"term":       requiredString(),
				"definition": requiredString(),
				"example":    stringProp(),
				"category":   requiredString(),
			},
			"additionalProperties": false,
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := normalizeJSON(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("normalize schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded YAML document against the catalogue schema.
func validateDocument(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	normalized, err := normalizeJSON(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	if err := sch.Validate(normalized); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

// normalizeJSON round-trips v through encoding/json so the validator sees
// plain JSON types.
func normalizeJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
