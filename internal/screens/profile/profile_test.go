package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/store"
)

func newTestScreen(t *testing.T) (*ProfileScreen, *store.Store) {
	t.Helper()
	joined := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	st := store.New()
	sess := session.NewManager(st, session.WithClock(func() time.Time { return joined }))
	require.NoError(t, sess.LoginDemo(context.Background()))
	return New(&screens.Deps{Session: sess, Events: st.EventRepo()}), st
}

func TestAccountDetails(t *testing.T) {
	s, _ := newTestScreen(t)
	view := s.View(120, 50)

	assert.Contains(t, view, session.DemoUsername)
	assert.Contains(t, view, session.DemoEmail)
	assert.Contains(t, view, "October 19, 2026")
	assert.Contains(t, view, "Total quizzes")
	assert.Contains(t, view, "No AI requests yet.")
}

func TestUsageTotals(t *testing.T) {
	s, st := newTestScreen(t)
	ctx := context.Background()
	events := st.EventRepo()

	require.NoError(t, events.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "watsonx", Model: "ibm/granite-3-8b-instruct", Purpose: "quiz",
		InputTokens: 100, OutputTokens: 50, Success: true, CostUSD: 0.001, CostKnown: true,
	}))
	require.NoError(t, events.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "watsonx", Model: "ibm/granite-3-8b-instruct", Purpose: "quiz",
		InputTokens: 100, OutputTokens: 50, Success: true, CostUSD: 0.001, CostKnown: true,
	}))

	view := s.View(140, 50)
	assert.Contains(t, view, "ibm/granite-3-8b-instruct")
	assert.Contains(t, view, "Total: 2 requests, estimated cost $0.0020")
	assert.Contains(t, view, "By purpose: quiz 2 (avg 0ms)")
}

func TestLastRequestShowsFailure(t *testing.T) {
	s, st := newTestScreen(t)
	require.NoError(t, st.EventRepo().AppendLLMRequest(context.Background(), store.LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz", ErrorMessage: "gemini rate limited",
	}))

	view := s.View(140, 50)
	assert.Contains(t, view, "Last request: gemini quiz at")
	assert.Contains(t, view, "failed")
	assert.Contains(t, view, "gemini rate limited")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "n/a", formatCost(1, false))
	assert.Equal(t, "$0.0125", formatCost(0.0125, true))
}

func TestLoggedOut(t *testing.T) {
	s := New(&screens.Deps{Session: session.NewManager(store.New())})
	assert.Contains(t, s.View(100, 30), "Not logged in.")
}
