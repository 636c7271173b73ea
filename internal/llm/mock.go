package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockStep is one scripted reply of a Mock.
type MockStep struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON scripts a reply holding v encoded as JSON.
func MockJSON(v any) MockStep {
	b, err := json.Marshal(v)
	if err != nil {
		return MockStep{Err: err}
	}
	return MockStep{Content: b}
}

// MockFail scripts a provider failure of the given kind.
func MockFail(kind Kind, msg string) MockStep {
	return MockStep{Err: &Error{Kind: kind, Provider: "mock", Err: errors.New(msg)}}
}

// Mock is a scripted Provider for tests and the "mock" provider setting.
// Each call consumes the next step. An exhausted script fails with
// KindUnavailable.
type Mock struct {
	mu    sync.Mutex
	steps []MockStep
	calls []Request
}

// NewMock returns a Mock that replies with steps in order.
func NewMock(steps ...MockStep) *Mock {
	return &Mock{steps: steps}
}

func (m *Mock) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.steps) == 0 {
		return nil, &Error{Kind: KindUnavailable, Provider: "mock", Err: errors.New("script exhausted")}
	}
	step := m.steps[0]
	m.steps = m.steps[1:]
	if step.Err != nil {
		return nil, step.Err
	}
	return &Response{Content: step.Content, Usage: step.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *Mock) Name() string    { return "mock" }
func (m *Mock) ModelID() string { return "mock" }

// Push appends steps to the script.
func (m *Mock) Push(steps ...MockStep) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, steps...)
}

// Calls returns the requests received so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
