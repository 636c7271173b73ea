package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edututor/edututor/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLMGenerator creates a new LLMGenerator with the given provider and config.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Subject        string           `json:"subject"`
	Difficulty     string           `json:"difficulty"`
	TotalQuestions int              `json:"total_questions"`
	Questions      []questionOutput `json:"questions"`
}

type questionOutput struct {
	ID            int               `json:"id"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
	Topic         string            `json:"topic"`
}

// Generate produces a quiz for the request.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Quiz, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		Purpose: llm.PurposeQuiz,
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	content, ok := llm.ExtractJSONObject(string(resp.Content))
	if !ok {
		return nil, fmt.Errorf("failed to parse LLM response: no JSON object found")
	}

	var raw quizOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	quiz := raw.toQuiz()

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(quiz, req); verr != nil {
			return nil, verr
		}
	}

	// Question IDs key the learner's answers, so they must be unique.
	quiz.Subject = req.Subject
	quiz.Difficulty = req.Difficulty
	renumber(quiz)
	quiz.Source = SourceAI
	return quiz, nil
}

func (o quizOutput) toQuiz() *Quiz {
	q := &Quiz{
		Subject:        o.Subject,
		Difficulty:     Difficulty(o.Difficulty),
		TotalQuestions: o.TotalQuestions,
		Questions:      make([]Question, 0, len(o.Questions)),
	}
	for _, qo := range o.Questions {
		opts := make(map[Letter]string, len(qo.Options))
		for k, v := range qo.Options {
			opts[Letter(k)] = v
		}
		q.Questions = append(q.Questions, Question{
			ID:            qo.ID,
			Text:          qo.Question,
			Options:       opts,
			CorrectAnswer: Letter(qo.CorrectAnswer),
			Explanation:   qo.Explanation,
			Topic:         qo.Topic,
		})
	}
	return q
}

// renumber assigns IDs 1..n and syncs TotalQuestions.
func renumber(q *Quiz) {
	for i := range q.Questions {
		q.Questions[i].ID = i + 1
	}
	q.TotalQuestions = len(q.Questions)
}
