package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

const envPrefix = "LANGTRAINER_"

// Config selects a provider and holds the credentials for each backend.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves OpenAI-compatible endpoints through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in provider defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 90 * time.Second,
	}
}

// credential describes where one provider reads its key and model.
type credential struct {
	provider  string
	stdKeyEnv string
	key       func(*Config) *string
	model     func(*Config) *string
}

// credentials is ordered by discovery priority.
var credentials = []credential{
	{ProviderGemini, "GEMINI_API_KEY",
		func(c *Config) *string { return &c.Gemini.APIKey },
		func(c *Config) *string { return &c.Gemini.Model }},
	{ProviderOpenAI, "OPENAI_API_KEY",
		func(c *Config) *string { return &c.OpenAI.APIKey },
		func(c *Config) *string { return &c.OpenAI.Model }},
	{ProviderAnthropic, "ANTHROPIC_API_KEY",
		func(c *Config) *string { return &c.Anthropic.APIKey },
		func(c *Config) *string { return &c.Anthropic.Model }},
	{ProviderOpenRouter, "OPENROUTER_API_KEY",
		func(c *Config) *string { return &c.OpenRouter.APIKey },
		func(c *Config) *string { return &c.OpenRouter.Model }},
}

func keyEnv(provider string) string {
	return envPrefix + strings.ToUpper(provider) + "_API_KEY"
}

func modelEnv(provider string) string {
	return envPrefix + strings.ToUpper(provider) + "_MODEL"
}

// ConfigFromEnv reads LANGTRAINER_LLM_PROVIDER and the per-provider
// LANGTRAINER_<PROVIDER>_API_KEY / _MODEL variables over the defaults.
// When no provider is named, the first provider with a key set under
// either the LANGTRAINER_ or the vendor's standard variable is chosen.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	for _, cr := range credentials {
		k := os.Getenv(keyEnv(cr.provider))
		if k == "" {
			k = os.Getenv(cr.stdKeyEnv)
		}
		*cr.key(&cfg) = k
		if m := os.Getenv(modelEnv(cr.provider)); m != "" {
			*cr.model(&cfg) = m
		}
	}
	if u := os.Getenv(envPrefix + "OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if p := os.Getenv(envPrefix + "LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg
	}
	if d, ok := discover(cfg); ok {
		return d
	}
	return cfg
}

// discover picks the first provider in priority order with a key.
func discover(cfg Config) (Config, bool) {
	for _, cr := range credentials {
		if *cr.key(&cfg) != "" {
			cfg.Provider = cr.provider
			return cfg, true
		}
	}
	return cfg, false
}

// WithOverrides applies settings-file values. Empty values are ignored; a
// model applies to whichever provider is selected after the override.
func (c Config) WithOverrides(provider, model string, timeout time.Duration) Config {
	if provider != "" {
		c.Provider = provider
	}
	if timeout > 0 {
		c.Timeout = timeout
	}
	if model == "" {
		return c
	}
	for _, cr := range credentials {
		if cr.provider == c.Provider {
			*cr.model(&c) = model
		}
	}
	return c
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	for _, cr := range credentials {
		if cr.provider != c.Provider {
			continue
		}
		if *cr.key(&c) == "" {
			return fmt.Errorf("%s or %s is required for the %s provider",
				keyEnv(cr.provider), cr.stdKeyEnv, cr.provider)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
