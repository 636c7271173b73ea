package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRetry records the waits instead of sleeping.
func newTestRetry(p Provider, attempts int) (*retryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := &retryProvider{
		Provider: p,
		cfg: RetryConfig{
			MaxAttempts: attempts,
			InitialWait: 100 * time.Millisecond,
			MaxWait:     time.Second,
			Multiplier:  2,
		},
		sleep: func(_ context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		},
	}
	return r, &waits
}

var okStep = MockStep{Content: json.RawMessage(`{"ok":true}`)}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		steps     []MockStep
		wantCalls int
		wantErr   bool
	}{
		{"first attempt", []MockStep{okStep}, 1, false},
		{"transient then ok", []MockStep{MockFail(KindUnavailable, "down"), okStep}, 2, false},
		{"rate limited then ok", []MockStep{MockFail(KindRateLimited, "slow down"), okStep}, 2, false},
		{"unclassified then ok", []MockStep{{Err: errors.New("connection reset")}, okStep}, 2, false},
		{"all fail", []MockStep{MockFail(KindUnavailable, "down"), MockFail(KindUnavailable, "down"), MockFail(KindUnavailable, "down")}, 3, true},
		{"auth not retried", []MockStep{MockFail(KindAuth, "bad key"), okStep}, 1, true},
		{"truncated not retried", []MockStep{MockFail(KindTruncated, "cut"), okStep}, 1, true},
		{"bad output retried once", []MockStep{MockFail(KindBadOutput, "prose"), MockFail(KindBadOutput, "prose"), okStep}, 2, true},
		{"bad output then ok", []MockStep{MockFail(KindBadOutput, "prose"), okStep}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMock(tt.steps...)
			r, _ := newTestRetry(mock, 3)

			resp, err := r.Generate(context.Background(), Request{})
			assert.Len(t, mock.Calls(), tt.wantCalls)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
		})
	}
}

func TestRetryBackoff(t *testing.T) {
	mock := NewMock(MockFail(KindUnavailable, "a"), MockFail(KindUnavailable, "b"), okStep)
	r, waits := newTestRetry(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, *waits, 2)
	assert.InDelta(t, float64(100*time.Millisecond), float64((*waits)[0]), float64(20*time.Millisecond))
	assert.InDelta(t, float64(200*time.Millisecond), float64((*waits)[1]), float64(40*time.Millisecond))
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	mock := NewMock(MockStep{Err: &Error{Kind: KindRateLimited, RetryAfter: 7 * time.Second}}, okStep)
	r, waits := newTestRetry(mock, 2)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{7 * time.Second}, *waits)
}

func TestRetryStopsOnCancel(t *testing.T) {
	mock := NewMock(MockFail(KindUnavailable, "down"), okStep)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, mock.Calls(), 1)
}

func TestWithRetrySingleAttempt(t *testing.T) {
	mock := NewMock()
	assert.Same(t, Provider(mock), WithRetry(mock, RetryConfig{MaxAttempts: 1}))
}
