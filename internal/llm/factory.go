package llm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// NewProvider builds the configured backend and wraps it so that every
// attempt is recorded and transient failures are retried:
//
//	caller -> retry -> recording -> backend
func NewProvider(ctx context.Context, cfg Config, rec Recorder, logger *log.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	recorded := WithRecording(base, cfg.Provider, rec, logger)
	return WithRetry(recorded, cfg.Retry, logger), nil
}
