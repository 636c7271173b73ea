// Package config loads EduTutor's application configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/edututor/edututor/internal/llm"
	"github.com/edututor/edututor/internal/quizgen"
)

// Config is the full application configuration.
type Config struct {
	LLM    llm.Config   `yaml:"llm"`
	Quiz   QuizConfig   `yaml:"quiz"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// QuizConfig holds quiz defaults and bounds.
type QuizConfig struct {
	DefaultSubject    string `yaml:"default_subject"`
	DefaultDifficulty string `yaml:"default_difficulty"`
	DefaultCount      int    `yaml:"default_count"`
	MinCount          int    `yaml:"min_count"`
	MaxCount          int    `yaml:"max_count"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	CookieName string        `yaml:"cookie_name"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// LogConfig configures the structured logger. An empty File discards logs.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

const maxQuestions = 20

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: llm.DefaultConfig(),
		Quiz: QuizConfig{
			DefaultSubject:    "Programming Fundamentals",
			DefaultDifficulty: string(quizgen.DifficultyMedium),
			DefaultCount:      5,
			MinCount:          3,
			MaxCount:          10,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			CookieName: "edututor_session",
			SessionTTL: 2 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or $EDUTUTOR_CONFIG), then .env and the process environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("EDUTUTOR_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads variables from an explicit dotenv file. Variables that
// are already set win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LLM.ApplyEnv()

	if v := os.Getenv("EDUTUTOR_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("EDUTUTOR_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EDUTUTOR_SESSION_TTL: %w", err)
		}
		c.Server.SessionTTL = d
	}
	if v := os.Getenv("EDUTUTOR_DEFAULT_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EDUTUTOR_DEFAULT_COUNT: %w", err)
		}
		c.Quiz.DefaultCount = n
	}
	if v := os.Getenv("EDUTUTOR_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("EDUTUTOR_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks the quiz bounds, default difficulty and log level.
func (c *Config) Validate() error {
	q := c.Quiz
	counts := []struct {
		name string
		n    int
	}{{"default_count", q.DefaultCount}, {"min_count", q.MinCount}, {"max_count", q.MaxCount}}
	for _, c := range counts {
		if c.n < 1 || c.n > maxQuestions {
			return fmt.Errorf("quiz.%s must be between 1 and %d, got %d", c.name, maxQuestions, c.n)
		}
	}
	if q.MinCount > q.DefaultCount || q.MinCount > q.MaxCount {
		return fmt.Errorf("quiz.min_count (%d) must not exceed default_count (%d) or max_count (%d)",
			q.MinCount, q.DefaultCount, q.MaxCount)
	}
	if q.DefaultCount > q.MaxCount {
		return fmt.Errorf("quiz.default_count (%d) must not exceed max_count (%d)", q.DefaultCount, q.MaxCount)
	}
	if _, err := quizgen.ParseDifficulty(q.DefaultDifficulty); err != nil {
		return fmt.Errorf("quiz.default_difficulty: %w", err)
	}
	if strings.TrimSpace(q.DefaultSubject) == "" {
		return errors.New("quiz.default_subject must not be empty")
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	return nil
}

// QuizgenConfig returns generation settings with this configuration's
// bounds and the LLM timeout applied.
func (c *Config) QuizgenConfig() quizgen.Config {
	qc := quizgen.DefaultConfig()
	qc.MinCount = c.Quiz.MinCount
	qc.MaxCount = c.Quiz.MaxCount
	qc.DefaultCount = c.Quiz.DefaultCount
	if c.LLM.Timeout > 0 {
		qc.Timeout = c.LLM.Timeout
	}
	return qc
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// OpenLogger builds the application logger. Logs go to the configured file
// in JSON, or nowhere when File is empty. The returned closer releases the
// file.
func (l LogConfig) OpenLogger() (*slog.Logger, io.Closer, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, nil, err
	}
	if l.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl})), f, nil
}
