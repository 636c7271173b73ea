package quizgen

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

type bankQuestion struct {
	Question      string            `yaml:"question"`
	Options       map[string]string `yaml:"options"`
	CorrectAnswer string            `yaml:"correct_answer"`
	Explanation   string            `yaml:"explanation"`
	Topic         string            `yaml:"topic"`
}

// Bank is the built-in question bank.
type Bank struct {
	Subjects  map[string]map[Difficulty][]bankQuestion `yaml:"subjects"`
	Templates map[string][]string                      `yaml:"templates"`
}

var (
	defaultBank     *Bank
	defaultBankErr  error
	defaultBankOnce sync.Once
)

// ParseBank decodes a question bank from YAML.
func ParseBank(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return &b, nil
}

// DefaultBank returns the embedded question bank.
func DefaultBank() (*Bank, error) {
	defaultBankOnce.Do(func() {
		defaultBank, defaultBankErr = ParseBank(bankYAML)
	})
	return defaultBank, defaultBankErr
}

// FallbackGenerator serves canned questions. It never calls out and always
// returns exactly the requested number of questions.
type FallbackGenerator struct {
	bank *Bank
}

// NewFallbackGenerator creates a FallbackGenerator over bank. A nil bank
// uses the embedded one; if that fails to parse, only generic questions
// are served.
func NewFallbackGenerator(bank *Bank) *FallbackGenerator {
	if bank == nil {
		bank, _ = DefaultBank()
	}
	if bank == nil {
		bank = &Bank{}
	}
	return &FallbackGenerator{bank: bank}
}

// Generate builds a quiz from the bank, then the subject's templates, then
// generic sample questions, until req.Count questions are collected.
func (g *FallbackGenerator) Generate(_ context.Context, req Request) (*Quiz, error) {
	questions := make([]Question, 0, req.Count)
	seen := make(map[string]bool)

	add := func(q Question) {
		if len(questions) >= req.Count || seen[q.Text] {
			return
		}
		seen[q.Text] = true
		questions = append(questions, q)
	}

	for _, bq := range g.bank.Subjects[req.Subject][req.Difficulty] {
		add(bq.toQuestion())
	}
	for _, stem := range g.bank.Templates[req.Subject] {
		add(templateQuestion(stem, req, fmt.Sprintf("%s Advanced Topics", req.Subject)))
	}
	for i := len(questions) + 1; len(questions) < req.Count; i++ {
		stem := fmt.Sprintf("Sample %s question %d about %s.", strings.ToLower(string(req.Difficulty)), i, req.Subject)
		add(templateQuestion(stem, req, fmt.Sprintf("%s Fundamentals", req.Subject)))
	}

	quiz := &Quiz{
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Questions:  questions,
		Source:     SourceFallback,
	}
	renumber(quiz)
	return quiz, nil
}

func (bq bankQuestion) toQuestion() Question {
	opts := make(map[Letter]string, len(bq.Options))
	for k, v := range bq.Options {
		opts[Letter(k)] = v
	}
	return Question{
		Text:          bq.Question,
		Options:       opts,
		CorrectAnswer: Letter(bq.CorrectAnswer),
		Explanation:   bq.Explanation,
		Topic:         bq.Topic,
	}
}

func templateQuestion(stem string, req Request, topic string) Question {
	return Question{
		Text: stem,
		Options: map[Letter]string{
			LetterA: fmt.Sprintf("Option A for %s", req.Subject),
			LetterB: fmt.Sprintf("Correct answer for %s", req.Subject),
			LetterC: fmt.Sprintf("Option C for %s", req.Subject),
			LetterD: fmt.Sprintf("Option D for %s", req.Subject),
		},
		CorrectAnswer: LetterB,
		Explanation:   fmt.Sprintf("This is a %s level question about %s concepts.", strings.ToLower(string(req.Difficulty)), req.Subject),
		Topic:         topic,
	}
}
