package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edututor/edututor/internal/server"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cfg := e.cfg.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		// Without a log file the server has the terminal to itself.
		logger := e.logger
		if e.cfg.Log.File == "" {
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		}

		srv := server.New(server.Options{
			Config:  cfg,
			Quizzes: e.quizzes,
			Quiz:    e.cfg.Quiz,
			NewSession: func() *session.Manager {
				return session.NewManager(store.New())
			},
			Logger: logger,
		})

		ctx, stop := signal.NotifyContext(ctxOf(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "EduTutor API listening on %s (AI: %v)\n", cfg.Addr, e.aiReady)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr and EDUTUTOR_ADDR)")
}
