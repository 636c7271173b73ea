package cmd

import (
	"github.com/spf13/cobra"

	"github.com/edututor/edututor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "edututor",
	Short: "AI-powered quiz tutor",
	Long:  "EduTutor: generate multiple-choice quizzes on 35 subjects, get instant feedback, and track your learning analytics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides EDUTUTOR_CONFIG env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file before .env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig applies --env-file, then loads and validates the configuration
// named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if p, _ := cmd.Flags().GetString("env-file"); p != "" {
		if err := config.LoadEnvFile(p); err != nil {
			return nil, err
		}
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
