// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all ledger tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Tables are listed in dependency order; DropSchema walks them backwards
var tables = []string{"ballot_round", "candidate_entry", "vote_receipt", "round_result"}

// DropSchema removes all ledger tables
func DropSchema(db *sql.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + tables[i]); err != nil {
			return fmt.Errorf("failed to drop %s: %w", tables[i], err)
		}
	}
	return nil
}

// Portable between SQLite and PostgreSQL: timestamps are bound from Go,
// never defaulted by the database.
const schema = `
-- Voting rounds (one per ballot box)
CREATE TABLE IF NOT EXISTS ballot_round (
    id TEXT PRIMARY KEY,
    opened_at TIMESTAMP NOT NULL,
    closed_at TIMESTAMP,
    electorate_size INTEGER NOT NULL CHECK (electorate_size >= 0)
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate_entry (
    round_id TEXT NOT NULL REFERENCES ballot_round(id) ON DELETE CASCADE,
    ballot_number INTEGER NOT NULL CHECK (ballot_number BETWEEN 1 AND 100),
    name TEXT NOT NULL,
    apartment_number INTEGER NOT NULL,
    PRIMARY KEY (round_id, ballot_number)
);

-- Vote receipts (the ballot number is only recoverable through the digest)
CREATE TABLE IF NOT EXISTS vote_receipt (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES ballot_round(id) ON DELETE CASCADE,
    apartment_number INTEGER NOT NULL,
    digest TEXT NOT NULL,
    short_code TEXT NOT NULL,
    cast_at TIMESTAMP NOT NULL,
    UNIQUE (round_id, apartment_number)
);

CREATE INDEX IF NOT EXISTS idx_vote_receipt_short_code ON vote_receipt(short_code);

-- Final tallies
CREATE TABLE IF NOT EXISTS round_result (
    round_id TEXT NOT NULL REFERENCES ballot_round(id) ON DELETE CASCADE,
    ballot_number INTEGER NOT NULL,
    votes INTEGER NOT NULL CHECK (votes >= 0),
    PRIMARY KEY (round_id, ballot_number)
);
`
