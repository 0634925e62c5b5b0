package quizgen

import "github.com/abhisek/quizdeck/internal/llm"

// QuizSchema is the response shape requested from the model. Providers
// with strict structured output need every property listed as required.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "All multiple-choice questions extracted from a document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "The question number as printed in the document",
						},
						"chapter": map[string]any{
							"type":        "string",
							"description": "Chapter or section heading the question belongs to, empty if none",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, copied exactly",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Answer options in the order they appear in the document",
						},
						"correct_indices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "integer"},
							"description": "0-based indices into options of every correct answer",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A brief explanation of the correct answer",
						},
					},
					"required":             []any{"id", "chapter", "question", "options", "correct_indices", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
