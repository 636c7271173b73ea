// Package scoring evaluates a learner's answers against a quiz.
package scoring

import (
	"math"

	"github.com/edututor/edututor/internal/quizgen"
)

// Level is a coarse performance band.
type Level string

const (
	LevelExcellent        Level = "Excellent"
	LevelGood             Level = "Good"
	LevelSatisfactory     Level = "Satisfactory"
	LevelNeedsImprovement Level = "Needs Improvement"
	LevelPoor             Level = "Poor"
)

// Detail is the outcome for one question.
type Detail struct {
	QuestionID    int            `json:"question_id"`
	Question      string         `json:"question"`
	UserAnswer    quizgen.Letter `json:"user_answer"`
	CorrectAnswer quizgen.Letter `json:"correct_answer"`
	Correct       bool           `json:"is_correct"`
	Explanation   string         `json:"explanation"`
	Topic         string         `json:"topic"`
}

// Result is an evaluated attempt.
type Result struct {
	TotalQuestions  int      `json:"total_questions"`
	CorrectAnswers  int      `json:"correct_answers"`
	ScorePercentage float64  `json:"score_percentage"`
	Level           Level    `json:"performance_level"`
	Feedback        string   `json:"feedback"`
	Details         []Detail `json:"detailed_results"`
}

// Evaluate scores answers, keyed by question ID, against quiz. Unanswered
// questions count as wrong. An empty quiz scores 0.
func Evaluate(quiz *quizgen.Quiz, answers map[int]quizgen.Letter) Result {
	var r Result
	if quiz == nil {
		r.Level, r.Feedback = Classify(0)
		return r
	}

	r.TotalQuestions = len(quiz.Questions)
	r.Details = make([]Detail, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		given := answers[q.ID]
		ok := given != "" && given == q.CorrectAnswer
		if ok {
			r.CorrectAnswers++
		}
		r.Details = append(r.Details, Detail{
			QuestionID:    q.ID,
			Question:      q.Text,
			UserAnswer:    given,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       ok,
			Explanation:   q.Explanation,
			Topic:         q.Topic,
		})
	}

	r.ScorePercentage = Percentage(r.CorrectAnswers, r.TotalQuestions)
	r.Level, r.Feedback = Classify(r.ScorePercentage)
	return r
}

// Percentage is correct/total*100, or 0 when total is 0.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// Classify maps a score percentage to its level and feedback sentence.
func Classify(score float64) (Level, string) {
	switch {
	case score >= 90:
		return LevelExcellent, "Outstanding performance! You have a strong understanding of the subject."
	case score >= 80:
		return LevelGood, "Good job! You understand most concepts well with room for minor improvements."
	case score >= 70:
		return LevelSatisfactory, "Decent performance. Focus on reviewing the topics you missed."
	case score >= 60:
		return LevelNeedsImprovement, "You're getting there! Review the material and practice more."
	default:
		return LevelPoor, "Consider reviewing the fundamentals and taking practice quizzes."
	}
}

// Mean returns the arithmetic mean of scores, or 0 for none.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
