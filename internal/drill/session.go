package drill

import (
	"time"

	"github.com/google/uuid"
)

// Phase represents the current phase of a drill session.
type Phase int

const (
	PhaseWaiting  Phase = iota // Between exercises, timer armed
	PhaseActive                // Exercise visible, awaiting an answer
	PhaseFeedback              // Showing the graded result
)

// DeckResult tracks per-deck performance within a single session.
type DeckResult struct {
	DeckID   string
	Answered int
	Correct  int
}

// Session tracks the runtime state of one drill run.
type Session struct {
	// ID is the UUID for this session.
	ID string

	// StartTime is when the session began.
	StartTime time.Time

	// Phase is the current session phase.
	Phase Phase

	// Current is the exercise on screen (nil while waiting).
	Current *Exercise

	// LastResult is the grade of the most recent answer.
	LastResult *Result

	// Served counts exercises shown so far.
	Served int

	// Answered and Correct count graded submissions.
	Answered int
	Correct  int

	// Streak is the number of consecutive correct answers.
	Streak int

	// PerDeck tracks per-deck stats for the summary.
	PerDeck map[string]*DeckResult

	deckOrder []string
}

// NewSession creates a session with a fresh id.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		Phase:     PhaseWaiting,
		PerDeck:   make(map[string]*DeckResult),
	}
}

// Begin shows ex.
func (s *Session) Begin(ex *Exercise) {
	s.Current = ex
	s.LastResult = nil
	s.Phase = PhaseActive
	s.Served++
}

// Answer grades userAnswer against the current exercise and records it.
// It returns nil when no exercise is awaiting an answer.
func (s *Session) Answer(userAnswer string) *Result {
	if s.Current == nil || s.Phase != PhaseActive {
		return nil
	}

	res := s.Current.Submit(userAnswer)
	s.LastResult = &res
	s.Phase = PhaseFeedback
	s.Answered++

	dr := s.deckResult(s.Current.DeckID)
	dr.Answered++
	if res.Correct {
		s.Correct++
		s.Streak++
		dr.Correct++
	} else {
		s.Streak = 0
	}
	return &res
}

// Wait clears the current exercise, answered or not, and returns to the
// waiting phase.
func (s *Session) Wait() {
	s.Current = nil
	s.Phase = PhaseWaiting
}

func (s *Session) deckResult(deckID string) *DeckResult {
	dr, ok := s.PerDeck[deckID]
	if !ok {
		dr = &DeckResult{DeckID: deckID}
		s.PerDeck[deckID] = dr
		s.deckOrder = append(s.deckOrder, deckID)
	}
	return dr
}
