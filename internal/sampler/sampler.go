// Package sampler selects the next exercise from a multi-deck corpus.
//
// Fairness is enforced at two nested levels: decks are visited in a cyclic
// shuffled order, and each deck hands out its tasks from its own shuffled
// permutation, so every task of a deck is returned once before any task of
// that deck repeats. A bounded recency window is layered on top to avoid
// short-term repeats across deck boundaries and permutation refills.
//
// A Sampler is not safe for concurrent use. It is meant to be owned by the
// single goroutine that drives the UI.
package sampler

import (
	"errors"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/abhisek/langtrainer/internal/deck"
)

// DefaultRecencyWindow is the number of recently returned task ids kept.
const DefaultRecencyWindow = 30

// ErrEmptyCorpus is returned when the corpus holds no tasks at all.
var ErrEmptyCorpus = errors.New("corpus has no tasks")

// Option configures a Sampler.
type Option func(*Sampler)

// WithRecencyWindow sets the recency FIFO capacity. Zero disables the
// recency filter.
func WithRecencyWindow(n int) Option {
	return func(s *Sampler) {
		if n < 0 {
			n = 0
		}
		s.window = n
	}
}

// WithRand sets the random source used for every permutation.
func WithRand(r *rand.Rand) Option {
	return func(s *Sampler) { s.rng = r }
}

// WithLogger sets the logger used for state rebuild and filter bypass
// diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

// Sampler picks tasks with round-robin fairness and a recency filter.
type Sampler struct {
	rng    *rand.Rand
	logger *log.Logger
	window int

	built     bool
	signature []deck.DeckShape
	decks     *indexQueue
	tasks     []*indexQueue
	recent    *recency
}

// New creates a Sampler.
func New(opts ...Option) *Sampler {
	s := &Sampler{window: DefaultRecencyWindow}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.recent = newRecency(s.window)
	return s
}

// PickNext returns the next task. The returned task is shared with the
// corpus and must not be modified.
func (s *Sampler) PickNext(corpus deck.Corpus) (*deck.Task, error) {
	s.ensureState(corpus)

	total := corpus.TaskCount()
	if total == 0 {
		return nil, ErrEmptyCorpus
	}

	// The filter only looks as far back as it can possibly be satisfied:
	// with n tasks, at most n-1 of them can be excluded at once.
	window := min(s.window, total-1)
	maxAttempts := 2 * total

	var (
		di, ti int
		task   *deck.Task
	)
	for attempt := 1; ; attempt++ {
		di, ti = s.nextCandidate(corpus)
		task = &corpus[di].Tasks[ti]

		if !s.recent.contains(task.ID, window) {
			break
		}
		if attempt >= maxAttempts {
			s.logger.Debug("recency filter bypassed", "task", task.ID, "attempts", attempt)
			break
		}
		// Rejected candidates go to the back of their deck's current
		// permutation so they are still served within this lap.
		s.tasks[di].push(ti)
	}

	s.recent.push(task.ID)
	return task, nil
}

// nextCandidate advances the deck rotation and returns the next task index
// of the first deck that has tasks. The caller guarantees at least one task.
func (s *Sampler) nextCandidate(corpus deck.Corpus) (int, int) {
	for {
		di, _ := s.decks.pop()
		s.decks.push(di)

		if d := corpus[di]; d == nil || len(d.Tasks) == 0 {
			continue
		}

		q := s.tasks[di]
		if q.len() == 0 {
			q.refill(s.rng)
		}
		ti, _ := q.pop()
		return di, ti
	}
}

// ensureState rebuilds the rotation state when the corpus shape changed.
func (s *Sampler) ensureState(corpus deck.Corpus) {
	sig := corpus.Signature()
	if s.built && slices.Equal(sig, s.signature) {
		return
	}

	if s.built {
		// Recency history does not survive a structural change. Ids seeded
		// before the first build are kept.
		s.recent.reset()
		s.logger.Debug("corpus changed, rebuilding sampler state", "decks", len(corpus))
	}

	s.signature = sig
	s.decks = newIndexQueue(len(corpus))
	s.decks.refill(s.rng)
	s.tasks = make([]*indexQueue, len(corpus))
	for i, d := range corpus {
		n := 0
		if d != nil {
			n = len(d.Tasks)
		}
		s.tasks[i] = newIndexQueue(n)
		s.tasks[i].refill(s.rng)
	}
	s.built = true
}

// Seed restores previously recorded recency ids, oldest first. Only the most
// recent ids that fit the window are kept.
func (s *Sampler) Seed(ids []string) {
	for _, id := range ids {
		if id != "" {
			s.recent.push(id)
		}
	}
}

// Recent returns the recency FIFO contents, oldest first, for persistence.
func (s *Sampler) Recent() []string {
	return s.recent.ids()
}

// Window returns the configured recency window.
func (s *Sampler) Window() int {
	return s.window
}

// Reset drops all rotation state and recency history.
func (s *Sampler) Reset() {
	s.built = false
	s.signature = nil
	s.decks = nil
	s.tasks = nil
	s.recent.reset()
}
