package quizgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Service generates quizzes, falling back to built-in content whenever the
// primary generator is missing or fails.
type Service struct {
	primary  Generator
	fallback *FallbackGenerator
	config   Config
	logger   *slog.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFallback replaces the built-in fallback generator.
func WithFallback(f *FallbackGenerator) ServiceOption {
	return func(s *Service) {
		if f != nil {
			s.fallback = f
		}
	}
}

// NewService creates a Service. primary may be nil, in which case every
// quiz comes from the fallback bank.
func NewService(primary Generator, cfg Config, opts ...ServiceOption) *Service {
	s := &Service{
		primary:  primary,
		fallback: NewFallbackGenerator(nil),
		config:   cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether an AI provider backs this service.
func (s *Service) Configured() bool {
	return s.primary != nil
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.config
}

// Generate returns a quiz for req. It only fails for a malformed request
// or a cancelled ctx; provider failures are absorbed by the fallback bank.
func (s *Service) Generate(ctx context.Context, req Request) (*Quiz, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		return nil, errors.New("subject is required")
	}
	d, err := ParseDifficulty(string(req.Difficulty))
	if err != nil {
		return nil, err
	}
	req.Difficulty = d
	req.Count = s.config.ClampCount(req.Count)

	var reason error
	if s.primary == nil {
		reason = errors.New("no AI provider configured")
	} else {
		quiz, err := s.generatePrimary(ctx, req)
		if err == nil {
			return quiz, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		reason = err
		s.logger.Warn("quiz generation failed, serving fallback questions",
			"subject", req.Subject, "difficulty", req.Difficulty, "count", req.Count, "error", err)
	}

	quiz, err := s.fallback.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fallback generation: %w", err)
	}
	quiz.FallbackReason = reason.Error()
	return quiz, nil
}

func (s *Service) generatePrimary(ctx context.Context, req Request) (*Quiz, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	return s.primary.Generate(ctx, req)
}
