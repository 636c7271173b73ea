package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/edututor/edututor/internal/session"
)

type ctxKey struct{}

// sessionFrom returns the Manager attached by withSession.
func sessionFrom(ctx context.Context) *session.Manager {
	m, _ := ctx.Value(ctxKey{}).(*session.Manager)
	return m
}

// withSession attaches the caller's session, creating one and setting the
// cookie when the request has none or an expired one.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var m *session.Manager
		if c, err := r.Cookie(s.cfg.CookieName); err == nil {
			m, _ = s.sessions.Get(c.Value)
		}
		if m == nil {
			var id string
			id, m = s.sessions.Create()
			cookie := &http.Cookie{
				Name:     s.cfg.CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if s.cfg.SessionTTL > 0 {
				cookie.MaxAge = int(s.cfg.SessionTTL / time.Second)
			}
			http.SetCookie(w, cookie)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, m)))
	})
}

// requireAuth rejects requests whose session is not logged in.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := sessionFrom(r.Context())
		if m == nil || !m.Authenticated() {
			errorResponse(w, http.StatusUnauthorized, "please log in first")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack lets the websocket upgrade take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// recoverer turns a handler panic into a 500 response.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.logger.Error("recovered from panic", "path", r.URL.Path, "panic", fmt.Sprint(v))
				errorResponse(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
