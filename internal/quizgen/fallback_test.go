package quizgen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBankParses(t *testing.T) {
	bank, err := DefaultBank()
	require.NoError(t, err)

	for subject, levels := range bank.Subjects {
		assert.True(t, IsSubject(subject), "bank subject %q is not in the catalog", subject)
		for level, questions := range levels {
			_, err := ParseDifficulty(string(level))
			assert.NoError(t, err, "%s: bad difficulty", subject)

			quiz := &Quiz{Subject: subject, Difficulty: level, TotalQuestions: len(questions)}
			for _, bq := range questions {
				quiz.Questions = append(quiz.Questions, bq.toQuestion())
			}
			req := Request{Subject: subject, Difficulty: level, Count: len(questions)}
			for _, v := range DefaultConfig().Validators {
				assert.Nil(t, v.Validate(quiz, req), "%s/%s failed %s", subject, level, v.Name())
			}
		}
	}
	for subject := range bank.Templates {
		assert.True(t, IsSubject(subject), "template subject %q is not in the catalog", subject)
	}
}

func TestFallback_AlwaysReturnsCount(t *testing.T) {
	gen := NewFallbackGenerator(nil)

	tests := []struct {
		subject    string
		difficulty Difficulty
	}{
		{"Mathematics", DifficultyEasy},
		{"Programming Fundamentals", DifficultyMedium},
		{"Machine Learning", DifficultyHard},
		{"Philosophy", DifficultyEasy},
	}

	for _, tt := range tests {
		for _, count := range []int{1, 3, 5, 10} {
			quiz, err := gen.Generate(context.Background(), Request{Subject: tt.subject, Difficulty: tt.difficulty, Count: count})
			require.NoError(t, err)
			require.Len(t, quiz.Questions, count, "%s/%s count %d", tt.subject, tt.difficulty, count)
			assert.Equal(t, count, quiz.TotalQuestions)
			assert.Equal(t, SourceFallback, quiz.Source)

			req := Request{Subject: tt.subject, Difficulty: tt.difficulty, Count: count}
			for _, v := range DefaultConfig().Validators {
				assert.Nil(t, v.Validate(quiz, req))
			}
			for i, q := range quiz.Questions {
				assert.Equal(t, i+1, q.ID)
			}
		}
	}
}

func TestFallback_BankThenTemplatesThenGeneric(t *testing.T) {
	gen := NewFallbackGenerator(nil)

	quiz, err := gen.Generate(context.Background(), Request{Subject: "Web Development", Difficulty: DifficultyEasy, Count: 7})
	require.NoError(t, err)

	assert.Equal(t, "What does HTML stand for?", quiz.Questions[0].Text)
	assert.Equal(t, "What is the difference between GET and POST methods?", quiz.Questions[2].Text)
	assert.Equal(t, "Web Development Advanced Topics", quiz.Questions[2].Topic)
	assert.Equal(t, "Sample easy question 6 about Web Development.", quiz.Questions[5].Text)
	assert.Equal(t, "Web Development Fundamentals", quiz.Questions[5].Topic)
	assert.Equal(t, "Correct answer for Web Development", quiz.Questions[6].Options[LetterB])
	assert.Equal(t, LetterB, quiz.Questions[6].CorrectAnswer)
	assert.Equal(t, "This is a easy level question about Web Development concepts.", quiz.Questions[6].Explanation)
}

func TestFallback_SkipsDuplicateTemplates(t *testing.T) {
	gen := NewFallbackGenerator(nil)

	quiz, err := gen.Generate(context.Background(), Request{Subject: "Programming Fundamentals", Difficulty: DifficultyEasy, Count: 10})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, q := range quiz.Questions {
		assert.False(t, seen[q.Text], "duplicate question %q", q.Text)
		seen[q.Text] = true
	}
}

func TestFallback_UnknownSubjectIsGeneric(t *testing.T) {
	gen := NewFallbackGenerator(nil)

	quiz, err := gen.Generate(context.Background(), Request{Subject: "Art History", Difficulty: DifficultyMedium, Count: 3})
	require.NoError(t, err)
	for i, q := range quiz.Questions {
		assert.True(t, strings.HasPrefix(q.Text, "Sample medium question"), q.Text)
		assert.Contains(t, q.Text, "about Art History.")
		assert.Equal(t, i+1, q.ID)
	}
}

func TestParseBank_Invalid(t *testing.T) {
	_, err := ParseBank([]byte("subjects: [not, a, map"))
	require.Error(t, err)
}
