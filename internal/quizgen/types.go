package quizgen

import (
	"fmt"
	"strings"
)

// Letter is an option key, one of A-D.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters lists the option keys in display order.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD}

// ParseLetter accepts "a".."d" in either case.
func ParseLetter(s string) (Letter, bool) {
	l := Letter(strings.ToUpper(strings.TrimSpace(s)))
	for _, k := range Letters {
		if l == k {
			return l, true
		}
	}
	return "", false
}

// Difficulty is the requested quiz difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the difficulties from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Label is the learner-facing name for the difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Beginner"
	case DifficultyMedium:
		return "Intermediate"
	case DifficultyHard:
		return "Advanced"
	}
	return string(d)
}

// Description is a short blurb shown next to the label.
func (d Difficulty) Description() string {
	switch d {
	case DifficultyEasy:
		return "Perfect for getting started"
	case DifficultyMedium:
		return "Challenge your knowledge"
	case DifficultyHard:
		return "Test your expertise"
	}
	return ""
}

// ParseDifficulty accepts either the level ("easy") or the label
// ("Beginner"), case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) || strings.EqualFold(s, d.Label()) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

// Source records where a quiz's questions came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Question is one multiple-choice question.
type Question struct {
	ID            int               `json:"id"`
	Text          string            `json:"question"`
	Options       map[Letter]string `json:"options"`
	CorrectAnswer Letter            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
	Topic         string            `json:"topic"`
}

// Quiz is a generated set of questions for one subject and difficulty.
type Quiz struct {
	Subject        string     `json:"subject"`
	Difficulty     Difficulty `json:"difficulty"`
	TotalQuestions int        `json:"total_questions"`
	Questions      []Question `json:"questions"`
	Source         Source     `json:"source"`

	// FallbackReason holds the primary generator's error when fallback
	// content was served instead.
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// Question returns the question with the given ID.
func (q *Quiz) Question(id int) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// Request describes the quiz to generate.
type Request struct {
	Subject    string
	Difficulty Difficulty
	Count      int
}
