package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edututor/edututor/internal/config"
	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Options{
		Config:     config.Default().Server,
		Quizzes:    quizgen.NewService(nil, quizgen.DefaultConfig()),
		NewSession: func() *session.Manager { return session.NewManager(store.New()) },
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

// client is a browser-like HTTP client with its own cookie jar.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, ts *httptest.Server) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, data
}

func (c *client) json(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()
	status, data := c.do(method, path, body)
	require.Equal(c.t, wantStatus, status, "%s %s: %s", method, path, data)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(data, out))
	}
}

func errorOf(t *testing.T, data []byte) string {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(data, &e))
	return e.Error
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]any
	newClient(t, ts).json(http.MethodGet, "/healthz", nil, http.StatusOK, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["ai_configured"])
}

func TestSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/subjects")
	require.NoError(t, err)
	resp.Body.Close()

	var found *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "edututor_session" {
			found = c
		}
	}
	require.NotNil(t, found, "session cookie not set")
	assert.True(t, found.HttpOnly)
	assert.NotEmpty(t, found.Value)
	assert.Equal(t, 7200, found.MaxAge)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)
	for _, path := range []string{"/api/me", "/api/quiz", "/api/dashboard", "/api/analytics"} {
		status, data := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "please log in first", errorOf(t, data))
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)

	c.json(http.MethodPost, "/api/register", registerRequest{"alice", "alice@example.com", "secret1"}, http.StatusCreated, nil)

	status, data := c.do(http.MethodPost, "/api/register", registerRequest{"alice", "a@example.com", "secret1"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "username already exists", errorOf(t, data))

	status, data = c.do(http.MethodPost, "/api/register", registerRequest{"bob", "bob-at-example", "secret1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "please enter a valid email address", errorOf(t, data))

	status, _ = c.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status, "register must not log in")

	status, data = c.do(http.MethodPost, "/api/login", loginRequest{"alice", "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "incorrect password", errorOf(t, data))

	var me userResponse
	c.json(http.MethodPost, "/api/login", loginRequest{"alice", "secret1"}, http.StatusOK, &me)
	assert.Equal(t, "alice", me.Username)

	c.json(http.MethodGet, "/api/me", nil, http.StatusOK, &me)
	assert.Equal(t, "alice@example.com", me.Email)

	c.json(http.MethodPost, "/api/logout", nil, http.StatusOK, nil)
	status, _ = c.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestBadBody(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)
	status, data := c.do(http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "request body is empty", errorOf(t, data))
}

func TestSessionsAreIsolated(t *testing.T) {
	ts := newTestServer(t)
	a, b := newClient(t, ts), newClient(t, ts)

	a.json(http.MethodPost, "/api/login/demo", nil, http.StatusOK, nil)
	a.json(http.MethodGet, "/api/me", nil, http.StatusOK, nil)

	status, _ := b.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSubjects(t *testing.T) {
	ts := newTestServer(t)
	var resp subjectsResponse
	newClient(t, ts).json(http.MethodGet, "/api/subjects", nil, http.StatusOK, &resp)
	require.Len(t, resp.Categories, 4)
	assert.Len(t, resp.Categories[0].Subjects, 12)
	require.Len(t, resp.Difficulties, 3)
	assert.Equal(t, "Beginner", resp.Difficulties[0].Label)
	assert.False(t, resp.AIConfigured)
}

func TestQuizFlow(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)
	c.json(http.MethodPost, "/api/login/demo", nil, http.StatusOK, nil)

	status, data := c.do(http.MethodGet, "/api/quiz", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "no quiz in progress", errorOf(t, data))

	status, data = c.do(http.MethodPost, "/api/quiz", generateRequest{"Physics", "Easy", 3})
	require.Equal(t, http.StatusCreated, status, string(data))
	assert.NotContains(t, string(data), "correct_answer")

	var quiz quizView
	require.NoError(t, json.Unmarshal(data, &quiz))
	assert.Equal(t, "Physics", quiz.Subject)
	assert.Equal(t, quizgen.SourceFallback, quiz.Source)
	assert.Equal(t, 6, quiz.EstimatedMinutes)
	require.Len(t, quiz.Questions, 3)

	c.json(http.MethodPut, "/api/quiz/answers/1", answerRequest{"a"}, http.StatusOK, nil)

	status, data = c.do(http.MethodPost, "/api/quiz/submit", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "please answer all questions: 2 questions remaining", errorOf(t, data))

	status, _ = c.do(http.MethodPut, "/api/quiz/answers/2", answerRequest{"E"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = c.do(http.MethodPut, "/api/quiz/answers/99", answerRequest{"A"})
	assert.Equal(t, http.StatusNotFound, status)

	c.json(http.MethodPut, "/api/quiz/answers/2", answerRequest{"B"}, http.StatusOK, nil)
	var answered map[string]any
	c.json(http.MethodPut, "/api/quiz/answers/3", answerRequest{"C"}, http.StatusOK, &answered)
	assert.Equal(t, float64(0), answered["unanswered"])

	var result struct {
		Total   int     `json:"total_questions"`
		Score   float64 `json:"score_percentage"`
		Level   string  `json:"performance_level"`
		Details []any   `json:"detailed_results"`
	}
	c.json(http.MethodPost, "/api/quiz/submit", nil, http.StatusOK, &result)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Details, 3)
	assert.NotEmpty(t, result.Level)

	status, _ = c.do(http.MethodPost, "/api/quiz/submit", nil)
	assert.Equal(t, http.StatusConflict, status)

	c.json(http.MethodGet, "/api/quiz", nil, http.StatusOK, &quiz)
	require.NotNil(t, quiz.Result)
	assert.Len(t, quiz.Answers, 3)

	var dash dashboardResponse
	c.json(http.MethodGet, "/api/dashboard", nil, http.StatusOK, &dash)
	assert.Equal(t, "demo", dash.User.Username)
	assert.Equal(t, 1, dash.Stats.Total)
	require.Len(t, dash.Recent, 1)
	assert.Equal(t, "Physics", dash.Recent[0].Subject)
	assert.NotEmpty(t, dash.Recommendations)

	var report struct {
		Overview struct {
			Total int `json:"total_quizzes"`
		} `json:"overview"`
		Streak int `json:"learning_streak"`
	}
	c.json(http.MethodGet, "/api/analytics", nil, http.StatusOK, &report)
	assert.Equal(t, 1, report.Overview.Total)
	assert.Equal(t, 1, report.Streak)

	status, _ = c.do(http.MethodDelete, "/api/quiz", nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = c.do(http.MethodGet, "/api/quiz", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGenerate_Validation(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)
	c.json(http.MethodPost, "/api/login/demo", nil, http.StatusOK, nil)

	status, data := c.do(http.MethodPost, "/api/quiz", generateRequest{"Astrology", "Easy", 5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errorOf(t, data), "unknown subject")

	status, _ = c.do(http.MethodPost, "/api/quiz", generateRequest{"Physics", "Impossible", 5})
	assert.Equal(t, http.StatusBadRequest, status)

	var quiz quizView
	c.json(http.MethodPost, "/api/quiz", generateRequest{"Physics", "Advanced", 50}, http.StatusCreated, &quiz)
	assert.Equal(t, "Hard", quiz.Difficulty)
	assert.Len(t, quiz.Questions, 10)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)

	status, data := c.do(http.MethodGet, "/api/login", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "method not allowed", errorOf(t, data))

	status, data = c.do(http.MethodDelete, "/healthz", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "method not allowed", errorOf(t, data))
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)

	for _, path := range []string{"/api/nope", "/nope", "/api/quiz/answers/abc"} {
		status, data := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "not found", errorOf(t, data), path)
	}
}

func sessionCookie(cookies []*http.Cookie) *http.Cookie {
	for _, c := range cookies {
		if c.Name == "edututor_session" {
			return c
		}
	}
	return nil
}

func TestLogout_DropsSession(t *testing.T) {
	srv := New(Options{
		Config:     config.Default().Server,
		Quizzes:    quizgen.NewService(nil, quizgen.DefaultConfig()),
		NewSession: func() *session.Manager { return session.NewManager(store.New()) },
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	c := newClient(t, ts)
	c.json(http.MethodPost, "/api/login/demo", nil, http.StatusOK, nil)
	old := sessionCookie(c.http.Jar.Cookies(mustParse(t, ts.URL)))
	require.NotNil(t, old)
	require.Equal(t, 1, srv.sessions.Len())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/logout", nil)
	require.NoError(t, err)
	req.AddCookie(old)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cleared := sessionCookie(resp.Cookies())
	require.NotNil(t, cleared, "logout must clear the session cookie")
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
	assert.Equal(t, 0, srv.sessions.Len())
	_, ok := srv.sessions.Get(old.Value)
	assert.False(t, ok)

	// A replayed cookie gets a fresh anonymous session.
	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/me", nil)
	require.NoError(t, err)
	req.AddCookie(old)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	fresh := sessionCookie(resp.Cookies())
	require.NotNil(t, fresh)
	assert.NotEqual(t, old.Value, fresh.Value)
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/quiz/ws"
}

func TestLiveQuiz(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)
	c.json(http.MethodPost, "/api/login/demo", nil, http.StatusOK, nil)

	header := http.Header{}
	for _, ck := range c.http.Jar.Cookies(mustParse(t, ts.URL)) {
		header.Add("Cookie", ck.String())
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.NoError(t, err)
	defer conn.Close()

	payload, _ := json.Marshal(generateRequest{"Chemistry", "Medium", 4})
	require.NoError(t, conn.WriteJSON(wsMessage{Type: msgGenerate, Payload: payload}))

	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, msgStatus, msg.Type)

	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, msgQuiz, msg.Type)
	var quiz quizView
	require.NoError(t, json.Unmarshal(msg.Payload, &quiz))
	assert.Equal(t, "Chemistry", quiz.Subject)
	assert.Len(t, quiz.Questions, 4)

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "shout"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, msgError, msg.Type)

	// The generated quiz is now the session's quiz.
	c.json(http.MethodGet, "/api/quiz", nil, http.StatusOK, &quiz)
	assert.Equal(t, "Chemistry", quiz.Subject)
}

func TestLiveQuiz_DefaultsWithoutPayload(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)
	c.json(http.MethodPost, "/api/login/demo", nil, http.StatusOK, nil)

	header := http.Header{}
	for _, ck := range c.http.Jar.Cookies(mustParse(t, ts.URL)) {
		header.Add("Cookie", ck.String())
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"generate"}`)))

	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, msgStatus, msg.Type)

	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, msgQuiz, msg.Type, string(msg.Payload))
	var quiz quizView
	require.NoError(t, json.Unmarshal(msg.Payload, &quiz))
	assert.Equal(t, "Programming Fundamentals", quiz.Subject)
	assert.Equal(t, "Medium", quiz.Difficulty)
	assert.Len(t, quiz.Questions, 5)
}

func TestLiveQuiz_RejectsCrossOrigin(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, ts)
	c.json(http.MethodPost, "/api/login/demo", nil, http.StatusOK, nil)

	header := http.Header{}
	for _, ck := range c.http.Jar.Cookies(mustParse(t, ts.URL)) {
		header.Add("Cookie", ck.String())
	}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", ts.URL)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.NoError(t, err)
	conn.Close()
}

func TestLiveQuiz_RequiresLogin(t *testing.T) {
	ts := newTestServer(t)
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
