// Package session runs a drill: it owns the active corpus, hands out
// exercises from the engine, and records answers and recency to the store.
//
// A Runner is not safe for concurrent use; the TUI drives it from its
// update loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/langtrainer/internal/deck"
	"github.com/abhisek/langtrainer/internal/drill"
	"github.com/abhisek/langtrainer/internal/logger"
	"github.com/abhisek/langtrainer/internal/store"
)

// ErrNotStarted is returned when an exercise is requested before Start.
var ErrNotStarted = errors.New("session not started")

// Deps are the collaborators of a Runner. Events and Recency may be nil,
// in which case nothing is persisted.
type Deps struct {
	Engine  *drill.Engine
	DataDir string
	Events  store.EventRepo
	Recency store.RecencyRepo
	Logger  *log.Logger

	// Interval is the pause between exercises.
	Interval time.Duration
}

// Runner ties the drill engine to deck files and persistence.
type Runner struct {
	engine   *drill.Engine
	dataDir  string
	events   store.EventRepo
	recency  store.RecencyRepo
	logger   *log.Logger
	interval time.Duration

	corpus   deck.Corpus
	report   deck.LoadReport
	usingSmp bool

	state *drill.Session
}

// NewRunner creates a Runner. Call Load before Start.
func NewRunner(d Deps) *Runner {
	if d.Engine == nil {
		d.Engine = drill.NewEngine()
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	return &Runner{
		engine:   d.Engine,
		dataDir:  d.DataDir,
		events:   d.Events,
		recency:  d.Recency,
		logger:   d.Logger,
		interval: d.Interval,
	}
}

// Load restores the recency history and loads the decks.
func (r *Runner) Load(ctx context.Context) error {
	if r.recency != nil {
		ids, err := r.recency.Load(ctx)
		if err != nil {
			r.logger.Warn("failed to load recent tasks", "err", err)
		} else {
			r.engine.Sampler().Seed(ids)
			r.logger.Debug("restored recent tasks", "count", len(ids))
		}
	}
	_, err := r.Reload(ctx)
	return err
}

// Reload reads the deck directory again and swaps the corpus wholesale.
// When the directory yields no decks the embedded sample deck is used.
func (r *Runner) Reload(ctx context.Context) (deck.LoadReport, error) {
	corpus, report, err := deck.LoadDir(ctx, r.dataDir)
	if err != nil {
		return report, fmt.Errorf("load decks from %s: %w", r.dataDir, err)
	}
	for _, fe := range report.Failed {
		r.logger.Warn("skipping deck file", "path", fe.Path, "err", fe.Err)
	}

	r.usingSmp = false
	if len(corpus) == 0 {
		sample, err := deck.Sample()
		if err != nil {
			return report, err
		}
		corpus = sample
		r.usingSmp = true
		r.logger.Info("no decks found, using sample deck", "dir", r.dataDir)
	}
	for _, d := range deck.Validate(corpus) {
		r.logger.Debug("deck defect", "defect", d.String())
	}

	r.corpus = corpus
	r.report = report
	r.logger.Info(report.Status())
	return report, nil
}

func (r *Runner) Corpus() deck.Corpus     { return r.corpus }
func (r *Runner) Report() deck.LoadReport { return r.report }
func (r *Runner) UsingSample() bool       { return r.usingSmp }
func (r *Runner) DataDir() string         { return r.dataDir }
func (r *Runner) State() *drill.Session   { return r.state }

// Interval returns the pause between exercises.
func (r *Runner) Interval() time.Duration { return r.interval }

// SetInterval changes the pause between exercises.
func (r *Runner) SetInterval(d time.Duration) {
	if d > 0 {
		r.interval = d
	}
}

// Start opens a new drill session.
func (r *Runner) Start(ctx context.Context) *drill.Session {
	r.state = drill.NewSession()
	r.appendSession(ctx, store.SessionEventData{SessionID: r.state.ID, Action: store.SessionStart})
	r.logger.Info("session started", "session", r.state.ID, "tasks", r.corpus.TaskCount())
	return r.state
}

// Next picks the next exercise and shows it.
func (r *Runner) Next() (*drill.Exercise, error) {
	if r.state == nil {
		return nil, ErrNotStarted
	}
	ex, err := r.engine.Next(r.corpus)
	if err != nil {
		return nil, err
	}
	r.state.Begin(ex)
	r.logger.Debug("exercise shown", "task", ex.Task.ID, "deck", ex.DeckID, "options", len(ex.Options))
	return ex, nil
}

// Answer grades userAnswer and records it. It returns nil when no exercise
// is awaiting an answer.
func (r *Runner) Answer(ctx context.Context, userAnswer string) *drill.Result {
	if r.state == nil {
		return nil
	}
	ex := r.state.Current
	res := r.state.Answer(userAnswer)
	if res == nil {
		return nil
	}

	if r.events != nil {
		err := r.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID: r.state.ID,
			DeckID:    ex.DeckID,
			TaskID:    ex.Task.ID,
			Answer:    userAnswer,
			Correct:   res.Correct,
			Blocked:   res.Blocked,
			TimeMs:    res.Elapsed.Milliseconds(),
		})
		if err != nil {
			r.logger.Warn("failed to record answer", "err", err)
		}
	}
	r.logger.Debug("answer graded", "task", ex.Task.ID, "correct", res.Correct, "blocked", res.Blocked)
	return res
}

// Dismiss hides the current exercise, answered or not.
func (r *Runner) Dismiss() {
	if r.state != nil {
		r.state.Wait()
	}
}

// Finish closes the session: it writes the end event and persists the
// recency history. Calling Finish twice, or before Start, only saves
// recency.
func (r *Runner) Finish(ctx context.Context) *drill.Summary {
	r.saveRecency(ctx)
	if r.state == nil {
		return nil
	}

	summary := drill.BuildSummary(r.state)
	r.appendSession(ctx, store.SessionEventData{
		SessionID:    r.state.ID,
		Action:       store.SessionEnd,
		Served:       summary.Served,
		Answered:     summary.Answered,
		Correct:      summary.Correct,
		DurationSecs: int(summary.Duration.Seconds()),
	})
	r.logger.Info("session ended", "session", r.state.ID, "answered", summary.Answered, "correct", summary.Correct)
	r.state = nil
	return summary
}

func (r *Runner) saveRecency(ctx context.Context) {
	if r.recency == nil {
		return
	}
	if err := r.recency.Save(ctx, r.engine.Sampler().Recent()); err != nil {
		r.logger.Warn("failed to save recent tasks", "err", err)
	}
}

func (r *Runner) appendSession(ctx context.Context, data store.SessionEventData) {
	if r.events == nil {
		return
	}
	if err := r.events.AppendSessionEvent(ctx, data); err != nil {
		r.logger.Warn("failed to record session event", "action", data.Action, "err", err)
	}
}
