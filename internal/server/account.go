package server

import (
	"errors"
	"net/http"

	"github.com/edututor/edututor/internal/session"
)

type registerHandler struct{}

func (h *registerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err := sessionFrom(r.Context()).Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, messageResponse{Message: "Account created successfully! Please login."})
	case errors.Is(err, session.ErrUsernameTaken):
		errorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrUsernameTooShort),
		errors.Is(err, session.ErrPasswordTooShort),
		errors.Is(err, session.ErrInvalidEmail):
		errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		errorResponse(w, http.StatusInternalServerError, "failed to register")
	}
}

type loginHandler struct{}

func (h *loginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	m := sessionFrom(r.Context())
	if err := m.Login(r.Context(), req.Username, req.Password); err != nil {
		writeLoginError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(m.CurrentUser()))
}

type demoLoginHandler struct{}

func (h *demoLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m := sessionFrom(r.Context())
	if err := m.LoginDemo(r.Context()); err != nil {
		writeLoginError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(m.CurrentUser()))
}

func writeLoginError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrUnknownUser) || errors.Is(err, session.ErrWrongPassword) {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	errorResponse(w, http.StatusInternalServerError, "failed to log in")
}

// logoutHandler ends the session and forgets its cookie.
type logoutHandler struct {
	sessions *session.Registry
	cookie   string
}

func (h *logoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Logout()
	if c, err := r.Cookie(h.cookie); err == nil {
		h.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: h.cookie, Value: "", Path: "/", HttpOnly: true, MaxAge: -1})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

type meHandler struct{}

func (h *meHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserResponse(sessionFrom(r.Context()).CurrentUser()))
}
