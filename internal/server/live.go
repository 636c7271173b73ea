package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/edututor/edututor/internal/config"
	"github.com/edututor/edututor/internal/quizgen"
)

// Live message types.
const (
	msgGenerate = "generate"
	msgStatus   = "status"
	msgQuiz     = "quiz"
	msgError    = "error"
)

// wsMessage is the envelope for every live message in both directions.
type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type statusPayload struct {
	Message string `json:"message"`
}

// upgrader keeps gorilla's same-origin check.
var upgrader = websocket.Upgrader{}

// liveQuizHandler generates quizzes over a websocket, reporting progress
// while the AI call runs. Each generated quiz becomes the session's quiz.
type liveQuizHandler struct {
	quizzes  *quizgen.Service
	defaults config.QuizConfig
	logger   *slog.Logger
}

func (h *liveQuizHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	m := sessionFrom(r.Context())
	for {
		var in wsMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		if in.Type != msgGenerate {
			if !h.send(conn, msgError, errorBody{Error: "unknown message type: " + in.Type}) {
				return
			}
			continue
		}

		var body generateRequest
		if len(in.Payload) > 0 {
			if err := json.Unmarshal(in.Payload, &body); err != nil {
				if !h.send(conn, msgError, errorBody{Error: "invalid payload"}) {
					return
				}
				continue
			}
		}
		if body.Subject == "" {
			body.Subject = h.defaults.DefaultSubject
		}
		if body.Difficulty == "" {
			body.Difficulty = h.defaults.DefaultDifficulty
		}
		req, err := parseGenerateRequest(body)
		if err != nil {
			if !h.send(conn, msgError, errorBody{Error: err.Error()}) {
				return
			}
			continue
		}

		if !h.send(conn, msgStatus, statusPayload{Message: "Generating your personalized quiz..."}) {
			return
		}
		q, err := h.quizzes.Generate(r.Context(), req)
		if err != nil {
			h.send(conn, msgError, errorBody{Error: "failed to generate quiz"})
			return
		}
		m.StartQuiz(q)
		if !h.send(conn, msgQuiz, newQuizView(q, nil, nil)) {
			return
		}
	}
}

// send writes one message and reports whether the connection is still usable.
func (h *liveQuizHandler) send(conn *websocket.Conn, typ string, payload any) bool {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshal live message", "type", typ, "error", err)
		return false
	}
	if err := conn.WriteJSON(wsMessage{Type: typ, Payload: raw}); err != nil {
		h.logger.Warn("websocket write failed", "error", err)
		return false
	}
	return true
}
