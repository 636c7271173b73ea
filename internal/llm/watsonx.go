package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultWatsonxURL     = "https://eu-gb.ml.cloud.ibm.com"
	defaultIAMURL         = "https://iam.cloud.ibm.com/identity/token"
	watsonxAPIVersion     = "2023-05-29"
	watsonxDefaultMaxToks = 2000
	watsonxTopP           = 0.9

	// tokenRefreshSkew renews the IAM token this long before it expires.
	tokenRefreshSkew = time.Minute
)

// watsonxModels maps friendly names to watsonx.ai foundation model IDs.
var watsonxModels = map[string]string{
	"granite-8b": "ibm/granite-3-8b-instruct",
	"granite-2b": "ibm/granite-3-2b-instruct",
}

// WatsonxProvider implements Provider against the IBM watsonx.ai
// text generation REST API.
type WatsonxProvider struct {
	httpClient *http.Client
	apiKey     string
	projectID  string
	baseURL    string
	iamURL     string
	model      string
	now        func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// WatsonxOption customizes a WatsonxProvider.
type WatsonxOption func(*WatsonxProvider)

// WithHTTPClient sets the HTTP client used for IAM and generation calls.
func WithHTTPClient(c *http.Client) WatsonxOption {
	return func(p *WatsonxProvider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// NewWatsonxProvider creates a new watsonx.ai provider.
func NewWatsonxProvider(cfg WatsonxConfig, opts ...WatsonxOption) (*WatsonxProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("watsonx API key is required")
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("watsonx project ID is required")
	}

	p := &WatsonxProvider{
		httpClient: &http.Client{Timeout: 45 * time.Second},
		apiKey:     cfg.APIKey,
		projectID:  cfg.ProjectID,
		baseURL:    strings.TrimRight(orDefault(cfg.URL, defaultWatsonxURL), "/"),
		iamURL:     orDefault(cfg.IAMURL, defaultIAMURL),
		model:      resolveModel(orDefault(cfg.Model, "granite-8b"), watsonxModels),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type watsonxParameters struct {
	DecodingMethod string  `json:"decoding_method"`
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
}

type watsonxRequest struct {
	Input      string            `json:"input"`
	Parameters watsonxParameters `json:"parameters"`
	ModelID    string            `json:"model_id"`
	ProjectID  string            `json:"project_id"`
}

type watsonxResult struct {
	GeneratedText       string `json:"generated_text"`
	GeneratedTokenCount int    `json:"generated_token_count"`
	InputTokenCount     int    `json:"input_token_count"`
	StopReason          string `json:"stop_reason"`
}

type watsonxResponse struct {
	ModelID string          `json:"model_id"`
	Results []watsonxResult `json:"results"`
}

type iamTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (p *WatsonxProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = watsonxDefaultMaxToks
	}

	body, err := json.Marshal(watsonxRequest{
		Input: buildWatsonxInput(req),
		Parameters: watsonxParameters{
			DecodingMethod: "greedy",
			MaxNewTokens:   maxTokens,
			Temperature:    req.Temperature,
			TopP:           watsonxTopP,
		},
		ModelID:   p.model,
		ProjectID: p.projectID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal watsonx request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/ml/v1/text/generation?version=%s", p.baseURL, watsonxAPIVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build watsonx request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, p.unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(p.Name(), resp.StatusCode, retryAfter(resp.Header),
			fmt.Errorf("status %d: %s", resp.StatusCode, readSnippet(resp.Body)))
	}

	var out watsonxResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, badOutput(p.Name(), nil, fmt.Errorf("decode reply: %w", err))
	}
	if len(out.Results) == 0 {
		return nil, badOutput(p.Name(), nil, fmt.Errorf("no results in reply"))
	}

	result := out.Results[0]
	stop := StopEnd
	if result.StopReason == "max_tokens" || result.StopReason == "token_limit" {
		stop = StopMaxTokens
	}
	content, err := structuredContent(p.Name(), req.Schema, result.GeneratedText, stop)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:    content,
		Usage:      newUsage(result.InputTokenCount, result.GeneratedTokenCount),
		Model:      orDefault(out.ModelID, p.model),
		StopReason: stop,
	}, nil
}

func (p *WatsonxProvider) Name() string { return "watsonx" }

func (p *WatsonxProvider) unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &Error{Kind: KindUnavailable, Provider: p.Name(), Err: err}
}

func (p *WatsonxProvider) ModelID() string {
	return p.model
}

// accessToken returns a cached IAM bearer token, exchanging the API key
// for a new one when the cached token is missing or about to expire.
func (p *WatsonxProvider) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "urn:iam:grant-type:apikey")
	form.Set("apikey", p.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.iamURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build IAM request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", p.unavailable(fmt.Errorf("IAM token request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("IAM token request: status %d: %s", resp.StatusCode, readSnippet(resp.Body))
		if resp.StatusCode == http.StatusBadRequest {
			// IAM answers an unknown API key with 400.
			return "", &Error{Kind: KindAuth, Provider: p.Name(), Status: resp.StatusCode, Err: err}
		}
		return "", statusError(p.Name(), resp.StatusCode, retryAfter(resp.Header), err)
	}

	var tok iamTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", p.unavailable(fmt.Errorf("decode IAM token: %w", err))
	}
	if tok.AccessToken == "" {
		return "", p.unavailable(errors.New("IAM token response has no access_token"))
	}

	ttl := time.Duration(tok.ExpiresIn) * time.Second
	if ttl <= tokenRefreshSkew {
		ttl = tokenRefreshSkew * 2
	}
	p.token = tok.AccessToken
	p.tokenExpiry = p.now().Add(ttl - tokenRefreshSkew)
	return p.token, nil
}

// buildWatsonxInput flattens the system prompt and messages into the single
// input string the text generation endpoint expects.
func buildWatsonxInput(req Request) string {
	parts := make([]string, 0, len(req.Messages)+1)
	if req.System != "" {
		parts = append(parts, req.System)
	}
	for _, m := range req.Messages {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, "\n\n")
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
