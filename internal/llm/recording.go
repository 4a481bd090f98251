package llm

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/langtrainer/internal/logger"
	"github.com/abhisek/langtrainer/internal/store"
)

// Recorder persists one row per LLM request. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// RecordingProvider writes every Generate call to a Recorder and the log.
type RecordingProvider struct {
	inner    Provider
	provider string
	rec      Recorder
	logger   *log.Logger
}

// WithRecording wraps p. A nil rec only logs.
func WithRecording(p Provider, providerName string, rec Recorder, l *log.Logger) Provider {
	if l == nil {
		l = logger.Discard()
	}
	return &RecordingProvider{inner: p, provider: providerName, rec: rec, logger: l}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		r.logger.Warn("llm request failed",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
			"latency_ms", data.LatencyMs, "err", err)
	} else {
		r.logger.Debug("llm request",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
			"latency_ms", data.LatencyMs, "tokens", data.InputTokens+data.OutputTokens)
	}

	if r.rec != nil {
		// Recording failures never fail the request.
		if recErr := r.rec.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil {
			r.logger.Warn("failed to record LLM request", "err", recErr)
		}
	}
	return resp, err
}

func (r *RecordingProvider) ModelID() string {
	return r.inner.ModelID()
}
