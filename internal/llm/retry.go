package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retryProvider re-sends requests that failed transiently. A reply that
// breaks the schema is re-sent at most once.
type retryProvider struct {
	Provider
	cfg   RetryConfig
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p with the attempts and backoff in cfg. MaxAttempts of 1
// or less returns p unchanged.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts <= 1 {
		return p
	}
	return &retryProvider{Provider: p, cfg: cfg, sleep: sleepCtx}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	badOutputSeen := false

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.Provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !Retryable(err) {
			return nil, err
		}
		if kind, _ := KindOf(err); kind == KindBadOutput {
			if badOutputSeen {
				return nil, err
			}
			badOutputSeen = true
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}
		if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

// wait is the exponential backoff for attempt with ±20% jitter, or the
// server's Retry-After when a rate limit supplied one.
func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindRateLimited && e.RetryAfter > 0 {
		return e.RetryAfter
	}

	d := float64(r.cfg.InitialWait)
	for range attempt {
		d *= r.cfg.Multiplier
	}
	d = min(d, float64(r.cfg.MaxWait))
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
