// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/building-election/cliparse"
	"github.com/danielhkuo/building-election/db"
	"github.com/danielhkuo/building-election/receipt"
	_ "modernc.org/sqlite"
)

// TestDBURL is an in-memory database; every SetupTestDB call gets a fresh one
const TestDBURL = "file::memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection, otherwise each one sees its own empty memory database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		LedgerURL:   TestDBURL,
		LedgerType:  cliparse.LedgerSQLite,
		ReceiptSalt: "test-receipt-salt",
		Seed:        42,
	}
}

// CreateTestRound inserts a round and returns its ID.
// Closed rounds get a closed_at timestamp.
func CreateTestRound(t *testing.T, conn *sql.DB, electorateSize int, closed bool) string {
	t.Helper()

	roundID := receipt.NewID()
	var closedAt *time.Time
	if closed {
		now := time.Now()
		closedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO ballot_round (id, opened_at, closed_at, electorate_size)
		VALUES ($1, $2, $3, $4)
	`, roundID, time.Now(), closedAt, electorateSize)
	if err != nil {
		t.Fatalf("Failed to create test round: %v", err)
	}

	return roundID
}

// CountRows returns the number of rows in table for a round
func CountRows(t *testing.T, conn *sql.DB, table, roundID string) int {
	t.Helper()

	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE round_id = $1`, roundID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return count
}

// Input joins lines the way a user would type them into the shell
func Input(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// AssertContains checks that output contains every expected fragment
func AssertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(output, f) {
			t.Errorf("Expected output to contain %q. Output:\n%s", f, output)
		}
	}
}
