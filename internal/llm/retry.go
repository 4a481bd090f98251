package llm

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/langtrainer/internal/logger"
)

// RetryProvider retries transient failures with exponential backoff and
// ±20% jitter. Invalid output is retried once; truncation and context
// errors are returned immediately.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *log.Logger
}

// WithRetry wraps p. A MaxAttempts below 1 is treated as 1.
func WithRetry(p Provider, cfg RetryConfig, l *log.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if l == nil {
		l = logger.Discard()
	}
	return &RetryProvider{inner: p, config: cfg, logger: l}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		lastErr       error
		invalidBudget = 1
	)
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidBudget) || attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.logger.Debug("retrying llm request", "attempt", attempt+1, "wait", wait, "err", err)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func retryable(err error, invalidBudget *int) bool {
	switch policyFor(err) {
	case retryNever:
		return false
	case retryOnce:
		if *invalidBudget == 0 {
			return false
		}
		*invalidBudget--
	}
	return true
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	if d := retryAfter(err); d > 0 {
		return d
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
