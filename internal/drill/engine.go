// Package drill composes the sampler, option builder, answer validator and
// affix suppressor into exercises a user interface can present and grade.
package drill

import (
	"github.com/abhisek/langtrainer/internal/affix"
	"github.com/abhisek/langtrainer/internal/deck"
	"github.com/abhisek/langtrainer/internal/options"
	"github.com/abhisek/langtrainer/internal/sampler"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSampler sets the task sampler.
func WithSampler(s *sampler.Sampler) Option {
	return func(e *Engine) { e.sampler = s }
}

// WithBuilder sets the option builder.
func WithBuilder(b *options.Builder) Option {
	return func(e *Engine) { e.builder = b }
}

// WithSuppressor sets the affix suppressor.
func WithSuppressor(s *affix.Suppressor) Option {
	return func(e *Engine) { e.suppressor = s }
}

// WithOptionCount sets how many choices an exercise aims to show.
func WithOptionCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.optionCount = n
		}
	}
}

// Engine hands out exercises. Like the sampler it owns, it must be driven
// from a single goroutine.
type Engine struct {
	sampler     *sampler.Sampler
	builder     *options.Builder
	suppressor  *affix.Suppressor
	optionCount int
}

// NewEngine creates an Engine with default components.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{optionCount: options.DefaultCount}
	for _, opt := range opts {
		opt(e)
	}
	if e.sampler == nil {
		e.sampler = sampler.New()
	}
	if e.builder == nil {
		e.builder = options.NewBuilder(nil)
	}
	if e.suppressor == nil {
		e.suppressor = affix.New()
	}
	return e
}

// Sampler returns the engine's sampler, for seeding and exporting recency.
func (e *Engine) Sampler() *sampler.Sampler {
	return e.sampler
}

// Next picks the next task from corpus and prepares it for display.
func (e *Engine) Next(corpus deck.Corpus) (*Exercise, error) {
	task, err := e.sampler.PickNext(corpus)
	if err != nil {
		return nil, err
	}
	return e.Present(task, corpus), nil
}
