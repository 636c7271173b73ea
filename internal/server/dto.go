package server

import (
	"time"

	"github.com/edututor/edututor/internal/analytics"
	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/scoring"
	"github.com/edututor/edututor/internal/store"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type generateRequest struct {
	Subject      string `json:"subject"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	MemberSince time.Time `json:"member_since"`
}

func newUserResponse(u *store.User) userResponse {
	return userResponse{Username: u.Username, Email: u.Email, MemberSince: u.CreatedAt}
}

type categoryResponse struct {
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

type difficultyResponse struct {
	Level       string `json:"level"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type subjectsResponse struct {
	Categories   []categoryResponse   `json:"categories"`
	Difficulties []difficultyResponse `json:"difficulties"`
	AIConfigured bool                 `json:"ai_configured"`
}

// questionView is a question as shown while the quiz is open, without the
// answer key.
type questionView struct {
	ID       int                       `json:"id"`
	Question string                    `json:"question"`
	Options  map[quizgen.Letter]string `json:"options"`
	Topic    string                    `json:"topic"`
}

type quizView struct {
	Subject          string                 `json:"subject"`
	Difficulty       string                 `json:"difficulty"`
	TotalQuestions   int                    `json:"total_questions"`
	EstimatedMinutes int                    `json:"estimated_minutes"`
	Source           quizgen.Source         `json:"source"`
	Questions        []questionView         `json:"questions"`
	Answers          map[int]quizgen.Letter `json:"answers"`
	Result           *scoring.Result        `json:"result,omitempty"`
}

func newQuizView(q *quizgen.Quiz, answers map[int]quizgen.Letter, result *scoring.Result) quizView {
	v := quizView{
		Subject:          q.Subject,
		Difficulty:       string(q.Difficulty),
		TotalQuestions:   len(q.Questions),
		EstimatedMinutes: quizgen.EstimatedMinutes(len(q.Questions)),
		Source:           q.Source,
		Questions:        make([]questionView, len(q.Questions)),
		Answers:          answers,
		Result:           result,
	}
	if v.Answers == nil {
		v.Answers = map[int]quizgen.Letter{}
	}
	for i, qq := range q.Questions {
		v.Questions[i] = questionView{ID: qq.ID, Question: qq.Text, Options: qq.Options, Topic: qq.Topic}
	}
	return v
}

type attemptView struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	Difficulty     string    `json:"difficulty"`
	Timestamp      time.Time `json:"timestamp"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	Level          string    `json:"performance_level"`
}

type dashboardResponse struct {
	User            userResponse       `json:"user"`
	Stats           analytics.Overview `json:"stats"`
	Recent          []attemptView      `json:"recent_quizzes"`
	Recommendations []string           `json:"recommendations"`
}

const recentLimit = 5

// recentAttempts returns up to recentLimit attempts, newest first.
func recentAttempts(history []store.Attempt) []attemptView {
	out := make([]attemptView, 0, recentLimit)
	for i := len(history) - 1; i >= 0 && len(out) < recentLimit; i-- {
		a := history[i]
		out = append(out, attemptView{
			ID:             a.ID,
			Subject:        a.Subject,
			Difficulty:     a.Difficulty,
			Timestamp:      a.Timestamp,
			Score:          a.Score,
			CorrectAnswers: a.CorrectAnswers,
			TotalQuestions: a.TotalQuestions,
			Level:          a.Level,
		})
	}
	return out
}
