package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edututor/edututor/internal/store"
)

// pricedMock reports a model that has a pricing entry.
type pricedMock struct {
	*Mock
	model string
}

func (p pricedMock) Name() string { return "openai" }

func (p pricedMock) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.Mock.Generate(ctx, req)
	if resp != nil {
		resp.Model = p.model
	}
	return resp, err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUsageLogRecordsCost(t *testing.T) {
	s := store.New()
	inner := pricedMock{
		Mock: NewMock(MockStep{
			Content: json.RawMessage(`{"ok":true}`),
			Usage:   newUsage(1_000_000, 500_000),
		}),
		model: "gpt-4o-mini",
	}
	p := WithUsageLog(inner, s.EventRepo(), quietLogger())

	_, err := p.Generate(context.Background(), Request{
		Purpose:  PurposeQuiz,
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "openai", e.Provider)
	assert.Equal(t, "gpt-4o-mini", e.Model)
	assert.Equal(t, "quiz", e.Purpose)
	assert.True(t, e.Success)
	assert.True(t, e.CostKnown)
	assert.InDelta(t, 0.45, e.CostUSD, 1e-9)
	assert.Equal(t, "[system]\nsys\n\n[user]\nhi\n\n", e.RequestBody)
	assert.Equal(t, `{"ok":true}`, e.ResponseBody)
}

func TestUsageLogRecordsFailure(t *testing.T) {
	s := store.New()
	p := WithUsageLog(NewMock(MockFail(KindAuth, "bad key")), s.EventRepo(), quietLogger())

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	events, _ := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.Len(t, events, 1)
	e := events[0]
	assert.False(t, e.Success)
	assert.Equal(t, "unknown", e.Purpose)
	assert.Equal(t, "mock", e.Provider)
	assert.Equal(t, "mock credentials rejected: bad key", e.ErrorMessage)
	assert.False(t, e.CostKnown)
}
