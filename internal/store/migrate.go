package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names.
const (
	tableLLMRequests = "llm_request_events"
	tableProvisions  = "provision_events"
	tablePractice    = "practice_events"
)

// schema lists the DDL for every event table. Each table carries the
// global sequence number and a unix-millisecond timestamp.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		ts INTEGER NOT NULL,
		provider TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE TABLE IF NOT EXISTS provision_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		ts INTEGER NOT NULL,
		level TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		requested INTEGER NOT NULL,
		provenance TEXT NOT NULL,
		challenge_count INTEGER NOT NULL,
		titles TEXT NOT NULL DEFAULT '[]',
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS practice_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		ts INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		level TEXT NOT NULL DEFAULT '',
		provenance TEXT NOT NULL DEFAULT '',
		challenge_index INTEGER NOT NULL DEFAULT 0,
		challenge_id TEXT NOT NULL DEFAULT '',
		challenge_title TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		passed INTEGER NOT NULL DEFAULT 0,
		solved_count INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL DEFAULT 0,
		elapsed_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS practice_events_session ON practice_events (session_id)`,
}

// migrate creates any missing tables. Statements are idempotent.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
