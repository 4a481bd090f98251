package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insert(ctx, tableSessionEvents,
		[]string{"session_id", "action", "served", "answered", "correct", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Served, data.Answered, data.Correct, data.DurationSecs},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, tableAnswerEvents,
		[]string{"session_id", "deck_id", "task_id", "answer", "correct", "blocked", "time_ms"},
		[]any{data.SessionID, data.DeckID, data.TaskID, data.Answer, data.Correct, data.Blocked, data.TimeMs},
	)
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	sel := sqlite.Select(
		"sequence", "created_at", "session_id", "deck_id", "task_id",
		"answer", "correct", "blocked", "time_ms",
	).
		From(entsql.Table(tableAnswerEvents)).
		OrderBy(entsql.Desc("sequence"))

	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var (
			rec AnswerEventRecord
			ms  int64
		)
		if err := rows.Scan(
			&rec.Sequence, &ms, &rec.SessionID, &rec.DeckID, &rec.TaskID,
			&rec.Answer, &rec.Correct, &rec.Blocked, &rec.TimeMs,
		); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = fromMillis(ms)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// applyQueryOpts adds the pagination and time filters shared by event
// queries.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
}
