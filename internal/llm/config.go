package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "watsonx", "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Watsonx    WatsonxConfig    `yaml:"watsonx"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout is the maximum duration for a single quiz generation call
	// (including retries). Default: 45s.
	Timeout time.Duration `yaml:"timeout"`
}

// WatsonxConfig holds IBM watsonx.ai configuration.
type WatsonxConfig struct {
	APIKey    string `yaml:"api_key"`
	ProjectID string `yaml:"project_id"`
	URL       string `yaml:"url"`   // Default: "https://eu-gb.ml.cloud.ibm.com"
	Model     string `yaml:"model"` // Default: "granite-8b"
	IAMURL    string `yaml:"iam_url"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gemini-flash"
	BaseURL string `yaml:"base_url"` // Optional. Overrides the API endpoint.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "watsonx",
		Watsonx: WatsonxConfig{
			URL:    defaultWatsonxURL,
			Model:  "granite-8b",
			IAMURL: defaultIAMURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// ApplyEnv overlays environment variables onto cfg. Unset variables leave
// the existing values untouched.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("EDUTUTOR_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}

	if k := os.Getenv("IBM_API_KEY"); k != "" {
		c.Watsonx.APIKey = k
	}
	if p := os.Getenv("IBM_PROJECT_ID"); p != "" {
		c.Watsonx.ProjectID = p
	}
	if u := os.Getenv("IBM_WATSONX_URL"); u != "" {
		c.Watsonx.URL = u
	}
	if m := os.Getenv("EDUTUTOR_WATSONX_MODEL"); m != "" {
		c.Watsonx.Model = m
	}

	if k := os.Getenv("EDUTUTOR_ANTHROPIC_API_KEY"); k != "" {
		c.Anthropic.APIKey = k
	}
	if m := os.Getenv("EDUTUTOR_ANTHROPIC_MODEL"); m != "" {
		c.Anthropic.Model = m
	}

	if k := os.Getenv("EDUTUTOR_OPENAI_API_KEY"); k != "" {
		c.OpenAI.APIKey = k
	}
	if m := os.Getenv("EDUTUTOR_OPENAI_MODEL"); m != "" {
		c.OpenAI.Model = m
	}
	if u := os.Getenv("EDUTUTOR_OPENAI_BASE_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}

	if k := os.Getenv("EDUTUTOR_GEMINI_API_KEY"); k != "" {
		c.Gemini.APIKey = k
	}
	if m := os.Getenv("EDUTUTOR_GEMINI_MODEL"); m != "" {
		c.Gemini.Model = m
	}

	if k := os.Getenv("EDUTUTOR_OPENROUTER_API_KEY"); k != "" {
		c.OpenRouter.APIKey = k
	}
	if m := os.Getenv("EDUTUTOR_OPENROUTER_MODEL"); m != "" {
		c.OpenRouter.Model = m
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// DiscoverConfig probes standard credential env vars in priority order
// (IBM → Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for
// the first provider whose credentials are found. Returns (Config{}, false)
// if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k, p := os.Getenv("IBM_API_KEY"), os.Getenv("IBM_PROJECT_ID"); k != "" && p != "" {
		cfg.Provider = "watsonx"
		cfg.Watsonx.APIKey = k
		cfg.Watsonx.ProjectID = p
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required credentials set.
func (c Config) Validate() error {
	switch c.Provider {
	case "watsonx":
		if c.Watsonx.APIKey == "" || c.Watsonx.ProjectID == "" {
			return fmt.Errorf("IBM_API_KEY and IBM_PROJECT_ID are required for the watsonx provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("EDUTUTOR_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("EDUTUTOR_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("EDUTUTOR_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("EDUTUTOR_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ModelName returns the configured model name for the selected provider.
func (c Config) ModelName() string {
	switch c.Provider {
	case "watsonx":
		return resolveModel(c.Watsonx.Model, watsonxModels)
	case "anthropic":
		return resolveModel(c.Anthropic.Model, anthropicModels)
	case "openai":
		return resolveModel(c.OpenAI.Model, openaiModels)
	case "gemini":
		return resolveModel(c.Gemini.Model, geminiModels)
	case "openrouter":
		return c.OpenRouter.Model
	case "mock":
		return "mock"
	}
	return ""
}
