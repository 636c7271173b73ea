package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// quizJSON builds an LLM-style quiz payload with n well-formed questions.
func quizJSON(subject string, difficulty Difficulty, n int) json.RawMessage {
	var qs []string
	for i := 1; i <= n; i++ {
		qs = append(qs, fmt.Sprintf(`{
			"id": %d,
			"question": "Question %d about %s?",
			"options": {"A": "Alpha", "B": "Bravo", "C": "Charlie", "D": "Delta"},
			"correct_answer": "C",
			"explanation": "Charlie is right.",
			"topic": "Topic %d"
		}`, i, i, subject, i))
	}
	return json.RawMessage(fmt.Sprintf(`{
		"subject": %q,
		"difficulty": %q,
		"total_questions": %d,
		"questions": [%s]
	}`, subject, difficulty, n, strings.Join(qs, ",")))
}

func validQuiz(n int) *Quiz {
	q := &Quiz{Subject: "Physics", Difficulty: DifficultyMedium, TotalQuestions: n}
	for i := 1; i <= n; i++ {
		q.Questions = append(q.Questions, Question{
			ID:            i,
			Text:          fmt.Sprintf("Question %d?", i),
			Options:       map[Letter]string{LetterA: "a", LetterB: "b", LetterC: "c", LetterD: "d"},
			CorrectAnswer: LetterA,
			Explanation:   "because",
			Topic:         "Mechanics",
		})
	}
	return q
}
