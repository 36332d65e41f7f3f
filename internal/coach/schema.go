package coach

import "github.com/abhisek/rolwijzer/internal/llm"

// ReviewSchema defines the JSON schema for reflection feedback.
var ReviewSchema = &llm.Schema{
	Name:        "reflection-review",
	Description: "Feedback on a student teacher's written reflection",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "1-2 sentence summary of the reflection, in Dutch",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 concrete strengths of the reflection (max 12 words each)",
			},
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 concrete suggestions to deepen the reflection (max 15 words each)",
			},
			"missing_starr": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
					"enum": []any{"situation", "task", "action", "result", "reflection"},
				},
				"description": "STARR parts that are absent or too thin",
			},
		},
		"required":             []any{"summary", "strengths", "suggestions", "missing_starr"},
		"additionalProperties": false,
	},
}
