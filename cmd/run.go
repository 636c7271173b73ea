package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edututor/edututor/internal/app"
	"github.com/edututor/edututor/internal/config"
	"github.com/edututor/edututor/internal/llm"
	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/store"
)

// env is the wiring shared by every command that generates quizzes.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	closer  io.Closer
	store   *store.Store
	quizzes *quizgen.Service
	llm     llm.Config
	aiReady bool
}

func (e *env) Close() error {
	return e.closer.Close()
}

// setup loads configuration, installs the logger, opens the store and builds
// the quiz service. A missing or broken LLM provider is reported on stderr
// and leaves the service on the fallback bank.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := cfg.Log.OpenLogger()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	e := &env{
		cfg:    cfg,
		logger: logger,
		closer: closer,
		store:  store.New(),
	}

	var primary quizgen.Generator
	llmCfg, ok := llm.ResolveConfig(cfg.LLM)
	e.llm = llmCfg
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured: set IBM_API_KEY and IBM_PROJECT_ID (or another provider's key).")
		fmt.Fprintln(cmd.ErrOrStderr(), "Running in demo mode with the built-in question bank.")
	} else if provider, err := llm.NewProvider(ctxOf(cmd), llmCfg, e.store.EventRepo()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Running in demo mode with the built-in question bank.")
	} else {
		primary = quizgen.NewLLMGenerator(provider, cfg.QuizgenConfig())
		e.aiReady = true
		logger.Info("llm provider ready", "provider", llmCfg.Provider, "model", llmCfg.ModelName())
	}

	e.quizzes = quizgen.NewService(primary, cfg.QuizgenConfig(), quizgen.WithLogger(logger))
	return e, nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	d, _ := quizgen.ParseDifficulty(e.cfg.Quiz.DefaultDifficulty)
	opts := app.Options{
		Session:           session.NewManager(e.store),
		Quizzes:           e.quizzes,
		Events:            e.store.EventRepo(),
		DefaultSubject:    e.cfg.Quiz.DefaultSubject,
		DefaultDifficulty: d,
	}
	return app.Run(opts)
}
