package drill

import "time"

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID   string
	Duration    time.Duration
	Served      int
	Answered    int
	Correct     int
	Accuracy    float64
	DeckResults []DeckResult
}

// BuildSummary creates a Summary from the session state.
func BuildSummary(s *Session) *Summary {
	results := make([]DeckResult, 0, len(s.deckOrder))
	for _, id := range s.deckOrder {
		results = append(results, *s.PerDeck[id])
	}

	var accuracy float64
	if s.Answered > 0 {
		accuracy = float64(s.Correct) / float64(s.Answered)
	}

	return &Summary{
		SessionID:   s.ID,
		Duration:    time.Since(s.StartTime),
		Served:      s.Served,
		Answered:    s.Answered,
		Correct:     s.Correct,
		Accuracy:    accuracy,
		DeckResults: results,
	}
}
