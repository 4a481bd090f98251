package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqlite builds statements quoted for SQLite.
var sqlite = entsql.Dialect(dialect.SQLite)

const (
	tableRecentTasks   = "recent_tasks"
	tableAnswerEvents  = "answer_events"
	tableSessionEvents = "session_events"
	tableLLMEvents     = "llm_request_events"
)

// allTables lists every table cleared by Reset.
var allTables = []string{tableRecentTasks, tableAnswerEvents, tableSessionEvents, tableLLMEvents}

// Event tables share the sequence and created_at columns: sequence orders
// events across tables, created_at is unix milliseconds.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS recent_tasks (
		position INTEGER PRIMARY KEY,
		task_id  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence   INTEGER NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		deck_id    TEXT NOT NULL,
		task_id    TEXT NOT NULL,
		answer     TEXT NOT NULL,
		correct    INTEGER NOT NULL,
		blocked    INTEGER NOT NULL DEFAULT 0,
		time_ms    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_deck ON answer_events (deck_id)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		created_at    INTEGER NOT NULL,
		session_id    TEXT NOT NULL,
		action        TEXT NOT NULL,
		served        INTEGER NOT NULL,
		answered      INTEGER NOT NULL,
		correct       INTEGER NOT NULL,
		duration_secs INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		created_at    INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    INTEGER NOT NULL,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
}

// migrate creates missing tables and indexes.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range ddl {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
