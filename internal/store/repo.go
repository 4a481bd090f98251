package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// RecencyRepo persists the sampler's recency window between runs.
type RecencyRepo interface {
	// Load returns the stored task ids, oldest first.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the stored ids.
	Save(ctx context.Context, ids []string) error
}

// AnswerEventData captures a single graded submission.
type AnswerEventData struct {
	SessionID string
	DeckID    string
	TaskID    string
	Answer    string
	Correct   bool
	Blocked   bool
	TimeMs    int64
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// Session actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	Action       string
	Served       int
	Answered     int
	Correct      int
	DurationSecs int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Stats aggregates the whole answer history.
type Stats struct {
	Answered     int
	Correct      int
	Sessions     int
	LLMRequests  int
	LLMTokens    int
	LastAnswered time.Time
}

// Accuracy returns Correct/Answered, or 0 without answers.
func (s Stats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// DeckStat aggregates answers for one deck.
type DeckStat struct {
	DeckID       string
	Answered     int
	Correct      int
	LastAnswered time.Time
}

// Accuracy returns Correct/Answered, or 0 without answers.
func (d DeckStat) Accuracy() float64 {
	if d.Answered == 0 {
		return 0
	}
	return float64(d.Correct) / float64(d.Answered)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records a graded submission.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAnswerEvents returns answer events, newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// Stats aggregates all events.
	Stats(ctx context.Context) (Stats, error)

	// DeckStats aggregates answers per deck, most answered first.
	DeckStats(ctx context.Context) ([]DeckStat, error)
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests by one key (purpose or model).
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Failures     int
}

// LLMEventRepo gives read access to recorded LLM calls.
type LLMEventRepo interface {
	// QueryLLMEvents returns LLM request events, newest first. A non-empty
	// purpose filters by purpose.
	QueryLLMEvents(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// LLMUsageByPurpose groups usage by request purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel groups usage by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
