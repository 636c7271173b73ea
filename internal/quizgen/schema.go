package quizgen

import "github.com/edututor/edututor/internal/llm"

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A multiple-choice quiz with four lettered options per question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject":         stringProp("The quiz subject"),
			"difficulty":      stringProp("Easy, Medium or Hard"),
			"total_questions": map[string]any{"type": "integer", "description": "Number of questions in the quiz"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "integer", "description": "1-based question number"},
						"question": stringProp("The question text"),
						"options": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"A": stringProp("Option A"),
								"B": stringProp("Option B"),
								"C": stringProp("Option C"),
								"D": stringProp("Option D"),
							},
							"required":             []any{"A", "B", "C", "D"},
							"additionalProperties": false,
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "Key of the correct option",
						},
						"explanation": stringProp("Why the correct option is right"),
						"topic":       stringProp("The specific concept tested"),
					},
					"required":             []any{"id", "question", "options", "correct_answer", "explanation", "topic"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"subject", "difficulty", "total_questions", "questions"},
		"additionalProperties": false,
	},
}
