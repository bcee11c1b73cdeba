// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Tabulation snapshots
CREATE TABLE IF NOT EXISTS tabulation (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    source TEXT,
    method TEXT NOT NULL DEFAULT 'irv',
    inputs_hash TEXT NOT NULL,
    voters INTEGER NOT NULL,
    winner TEXT,
    tie BOOLEAN NOT NULL,
    computed_at TIMESTAMP NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tabulation_question ON tabulation(question);
CREATE INDEX IF NOT EXISTS idx_tabulation_inputs_hash ON tabulation(inputs_hash);

-- Rounds
CREATE TABLE IF NOT EXISTS tabulation_round (
    tabulation_id TEXT NOT NULL REFERENCES tabulation(id) ON DELETE CASCADE,
    round INTEGER NOT NULL,
    eliminated TEXT,
    counts TEXT NOT NULL,
    assignment TEXT NOT NULL,
    PRIMARY KEY (tabulation_id, round)
);
`
