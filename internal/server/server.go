// Package server exposes EduTutor sessions over an HTTP JSON API. Each
// browser cookie owns one session.Manager.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/edututor/edututor/internal/config"
	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/session"
)

// Options holds the dependencies of a Server.
type Options struct {
	Config  config.ServerConfig
	Quizzes *quizgen.Service

	// Quiz supplies the subject and difficulty for live generate messages
	// that carry no payload. Default: config.Default().Quiz.
	Quiz config.QuizConfig

	// NewSession builds the Manager behind a new cookie session.
	NewSession func() *session.Manager

	Logger *slog.Logger

	// SweepInterval is how often idle sessions are expired. Default: 1m.
	SweepInterval time.Duration
}

// Server is the HTTP API.
type Server struct {
	cfg      config.ServerConfig
	quizzes  *quizgen.Service
	defaults config.QuizConfig
	sessions *session.Registry
	logger   *slog.Logger
	sweep    time.Duration
	router   *mux.Router
}

// New builds a Server and registers its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sweep := opts.SweepInterval
	if sweep <= 0 {
		sweep = time.Minute
	}
	cfg := opts.Config
	if cfg.CookieName == "" {
		cfg.CookieName = config.Default().Server.CookieName
	}
	defaults := opts.Quiz
	if defaults.DefaultSubject == "" {
		defaults = config.Default().Quiz
	}

	s := &Server{
		cfg:      cfg,
		quizzes:  opts.Quizzes,
		defaults: defaults,
		sessions: session.NewRegistry(cfg.SessionTTL, opts.NewSession),
		logger:   logger,
		sweep:    sweep,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.recoverer, s.logRequests)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.withSession)
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	api.Handle("/register", &registerHandler{}).Methods(http.MethodPost)
	api.Handle("/login", &loginHandler{}).Methods(http.MethodPost)
	api.Handle("/login/demo", &demoLoginHandler{}).Methods(http.MethodPost)
	api.Handle("/logout", &logoutHandler{sessions: s.sessions, cookie: s.cfg.CookieName}).Methods(http.MethodPost)
	api.Handle("/me", requireAuth(&meHandler{})).Methods(http.MethodGet)
	api.Handle("/subjects", &subjectsHandler{quizzes: s.quizzes}).Methods(http.MethodGet)

	api.Handle("/quiz", requireAuth(&generateHandler{quizzes: s.quizzes})).Methods(http.MethodPost)
	api.Handle("/quiz", requireAuth(&currentQuizHandler{})).Methods(http.MethodGet)
	api.Handle("/quiz", requireAuth(&resetQuizHandler{})).Methods(http.MethodDelete)
	api.Handle("/quiz/answers/{id:[0-9]+}", requireAuth(&answerHandler{})).Methods(http.MethodPut)
	api.Handle("/quiz/submit", requireAuth(&submitHandler{})).Methods(http.MethodPost)
	api.Handle("/quiz/ws", requireAuth(&liveQuizHandler{quizzes: s.quizzes, defaults: s.defaults, logger: s.logger})).Methods(http.MethodGet)

	api.Handle("/dashboard", requireAuth(&dashboardHandler{})).Methods(http.MethodGet)
	api.Handle("/analytics", requireAuth(&analyticsHandler{})).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stop := context.WithCancel(ctx)
	defer stop()
	go s.sessions.RunSweeper(sweepCtx, s.sweep, func(n int) {
		s.logger.Info("expired idle sessions", "count", n)
	})

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"ai_configured": s.quizzes != nil && s.quizzes.Configured(),
		"sessions":      s.sessions.Len(),
	})
}
