package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	var lastMs int64
	query, args := sqlite.Select(
		entsql.Count("*"),
		"COALESCE(SUM(correct), 0)",
		"COALESCE(MAX(created_at), 0)",
	).From(entsql.Table(tableAnswerEvents)).Query()
	if err := r.scanOne(ctx, query, args, &st.Answered, &st.Correct, &lastMs); err != nil {
		return st, fmt.Errorf("aggregate answers: %w", err)
	}
	st.LastAnswered = fromMillis(lastMs)

	query, args = sqlite.Select("COUNT(DISTINCT session_id)").
		From(entsql.Table(tableSessionEvents)).
		Query()
	if err := r.scanOne(ctx, query, args, &st.Sessions); err != nil {
		return st, fmt.Errorf("count sessions: %w", err)
	}

	query, args = sqlite.Select(
		entsql.Count("*"),
		"COALESCE(SUM(input_tokens + output_tokens), 0)",
	).From(entsql.Table(tableLLMEvents)).Query()
	if err := r.scanOne(ctx, query, args, &st.LLMRequests, &st.LLMTokens); err != nil {
		return st, fmt.Errorf("aggregate LLM requests: %w", err)
	}

	return st, nil
}

func (r *eventRepo) DeckStats(ctx context.Context) ([]DeckStat, error) {
	query, args := sqlite.Select(
		"deck_id",
		entsql.As(entsql.Count("*"), "answered"),
		"COALESCE(SUM(correct), 0)",
		"MAX(created_at)",
	).
		From(entsql.Table(tableAnswerEvents)).
		GroupBy("deck_id").
		OrderBy(entsql.Desc("answered"), "deck_id").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query deck stats: %w", err)
	}
	defer rows.Close()

	var out []DeckStat
	for rows.Next() {
		var (
			ds DeckStat
			ms int64
		)
		if err := rows.Scan(&ds.DeckID, &ds.Answered, &ds.Correct, &ms); err != nil {
			return nil, fmt.Errorf("scan deck stat: %w", err)
		}
		ds.LastAnswered = fromMillis(ms)
		out = append(out, ds)
	}
	return out, rows.Err()
}

// scanOne runs a single-row query and scans it into dest.
func (r *eventRepo) scanOne(ctx context.Context, query string, args []any, dest ...any) error {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return fmt.Errorf("no rows")
	}
	return rows.Scan(dest...)
}
