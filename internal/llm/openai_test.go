package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIReply(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func openAIFailure(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "nope", "type": "server_error"},
		})
	}
}

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func TestOpenAIStructuredReply(t *testing.T) {
	var body map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&body)
		openAIReply("```json\n{\"name\":\"Ada\",\"age\":36}\n```", "stop")(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an expert educator and quiz creator.",
		Messages:  []Message{{Role: RoleUser, Content: "Create a 1-question quiz about Physics."}},
		Schema:    learnerSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":36}`, string(resp.Content))
	assert.Equal(t, newUsage(40, 25), resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format := body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIBadOutput(t *testing.T) {
	p := newTestOpenAI(t, openAIReply("Sorry, I can't help with that.", "stop"))

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, Schema: learnerSchema()})
	kind, ok := KindOf(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, KindBadOutput, kind)
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusForbidden, KindAuth},
		{http.StatusBadGateway, KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestOpenAI(t, openAIFailure(tt.status))

			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.want, e.Kind)
			assert.Equal(t, "openai", e.Provider)
		})
	}
}

func TestOpenRouterSendsAppHeaders(t *testing.T) {
	var title, referer, auth string
	srv := httptest.NewServer(func() http.HandlerFunc {
		reply := openAIReply("pong", "stop")
		return func(w http.ResponseWriter, r *http.Request) {
			title, referer, auth = r.Header.Get("X-Title"), r.Header.Get("HTTP-Referer"), r.Header.Get("Authorization")
			reply(w, r)
		}
	}())
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "ping"}}})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text())
	assert.Equal(t, openRouterTitle, title)
	assert.Equal(t, openRouterReferer, referer)
	assert.Equal(t, "Bearer sk-or-test", auth)
}

func TestProviderKeysRequired(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)
	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "x"})
	assert.Error(t, err)
	_, err = NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
}
