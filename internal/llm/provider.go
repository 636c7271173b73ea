package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a hosted model.
type Provider interface {
	// Generate returns the model's reply. When req.Schema is set the reply
	// Content is a JSON object that has passed validation against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider key, e.g. "watsonx".
	Name() string

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Purpose labels a request in the usage log.
type Purpose string

const (
	PurposeQuiz Purpose = "quiz"
	PurposePing Purpose = "ping"
)

// Request describes what to send to the model.
type Request struct {
	Purpose Purpose

	System   string
	Messages []Message

	// Schema, when set, asks for a JSON object conforming to it. Providers
	// use their native structured output where they have one.
	Schema *Schema

	MaxTokens int

	// Temperature is in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema.
type Schema struct {
	// Name is used as the schema or tool name on the wire, e.g. "quiz".
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason says why generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response holds the model's output.
type Response struct {
	// Content is the validated object when a Schema was sent, otherwise
	// the reply text encoded as a JSON string.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Text returns the reply as plain text.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Usage is the token count for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// textContent wraps free text as the Content of an unstructured reply.
func textContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}
