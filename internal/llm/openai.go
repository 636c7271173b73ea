package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouter lists requests under this app name.
	openRouterTitle   = "EduTutor"
	openRouterReferer = "https://github.com/edututor/edututor"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider talks to the Chat Completions API. OpenRouter and other
// compatible services reuse it with a different base URL.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for OpenAI or, with BaseURL set, a
// compatible API.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		name:   "openai",
		client: openai.NewClientWithConfig(c),
		model:  resolveModel(cfg.Model, openaiModels),
	}, nil
}

// NewOpenRouterProvider creates a provider for OpenRouter. Model IDs are
// passed through as given, e.g. "google/gemini-2.0-flash-exp".
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = orDefault(cfg.BaseURL, defaultOpenRouterBaseURL)
	c.HTTPClient = &http.Client{Transport: headerTransport{
		"HTTP-Referer": openRouterReferer,
		"X-Title":      openRouterTitle,
	}}
	return &OpenAIProvider{
		name:   "openrouter",
		client: openai.NewClientWithConfig(c),
		model:  cfg.Model,
	}, nil
}

func (p *OpenAIProvider) Name() string    { return p.name }
func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, p.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, badOutput(p.name, nil, errors.New("no choices in reply"))
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	content, err := structuredContent(p.name, req.Schema, choice.Message.Content, stop)
	if err != nil {
		return nil, err
	}
	model := resp.Model
	if model == "" {
		model = p.model
	}
	return &Response{
		Content:    content,
		Usage:      newUsage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
		Model:      model,
		StopReason: stop,
	}, nil
}

func (p *OpenAIProvider) classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(p.name, apiErr.HTTPStatusCode, 0, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(p.name, reqErr.HTTPStatusCode, 0, err)
	}
	return &Error{Kind: KindUnavailable, Provider: p.name, Err: err}
}

// headerTransport adds fixed headers to every request.
type headerTransport map[string]string

func (h headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	for k, v := range h {
		r.Header.Set(k, v)
	}
	return http.DefaultTransport.RoundTrip(r)
}
