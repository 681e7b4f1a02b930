package gateway

import "github.com/abhisek/academy/internal/llm"

// QuizSchema defines the JSON schema for lesson quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "lesson-quiz",
	Description: "A multiple-choice quiz on one deep learning lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type": "integer",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":     "array",
							"minItems": OptionsPerQuestion,
							"maxItems": OptionsPerQuestion,
							"items":    map[string]any{"type": "string"},
						},
						"correctOptionIndex": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     OptionsPerQuestion - 1,
							"description": "Zero-based index of the correct option",
						},
					},
					"required":             []any{"id", "question", "options", "correctOptionIndex"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
