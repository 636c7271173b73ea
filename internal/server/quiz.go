package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/session"
)

type subjectsHandler struct {
	quizzes *quizgen.Service
}

func (h *subjectsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	resp := subjectsResponse{AIConfigured: h.quizzes != nil && h.quizzes.Configured()}
	for _, c := range quizgen.Catalog {
		resp.Categories = append(resp.Categories, categoryResponse{Name: c.Name, Subjects: c.Subjects})
	}
	for _, d := range quizgen.Difficulties {
		resp.Difficulties = append(resp.Difficulties, difficultyResponse{
			Level:       string(d),
			Label:       d.Label(),
			Description: d.Description(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseGenerateRequest checks a generation request against the catalog.
func parseGenerateRequest(in generateRequest) (quizgen.Request, error) {
	subject := strings.TrimSpace(in.Subject)
	if !quizgen.IsSubject(subject) {
		return quizgen.Request{}, errors.New("unknown subject: " + in.Subject)
	}
	d, err := quizgen.ParseDifficulty(in.Difficulty)
	if err != nil {
		return quizgen.Request{}, err
	}
	return quizgen.Request{Subject: subject, Difficulty: d, Count: in.NumQuestions}, nil
}

type generateHandler struct {
	quizzes *quizgen.Service
}

func (h *generateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in generateRequest
	if err := decodeJSON(w, r, &in); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := parseGenerateRequest(in)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := h.quizzes.Generate(r.Context(), req)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to generate quiz")
		return
	}

	m := sessionFrom(r.Context())
	m.StartQuiz(q)
	writeJSON(w, http.StatusCreated, newQuizView(q, nil, nil))
}

type currentQuizHandler struct{}

func (h *currentQuizHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m := sessionFrom(r.Context())
	q := m.Quiz()
	if q == nil {
		errorResponse(w, http.StatusNotFound, session.ErrNoQuiz.Error())
		return
	}
	writeJSON(w, http.StatusOK, newQuizView(q, m.Answers(), m.Result()))
}

type answerHandler struct{}

func (h *answerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid question id")
		return
	}
	var in answerRequest
	if err := decodeJSON(w, r, &in); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	letter, ok := quizgen.ParseLetter(in.Answer)
	if !ok {
		errorResponse(w, http.StatusBadRequest, session.ErrInvalidAnswer.Error())
		return
	}

	m := sessionFrom(r.Context())
	if err := m.Answer(id, letter); err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"question_id": id,
		"answer":      letter,
		"unanswered":  len(m.Unanswered()),
	})
}

type submitHandler struct{}

func (h *submitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := sessionFrom(r.Context()).SubmitQuiz(r.Context())
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type resetQuizHandler struct{}

func (h *resetQuizHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).ResetQuiz()
	w.WriteHeader(http.StatusNoContent)
}

func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNoQuiz), errors.Is(err, session.ErrQuizSubmitted):
		errorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrUnknownQuestion):
		errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrIncompleteQuiz), errors.Is(err, session.ErrInvalidAnswer):
		errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		errorResponse(w, http.StatusInternalServerError, "failed to update quiz")
	}
}
