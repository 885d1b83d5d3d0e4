// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles ledger schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on SQLite (modernc.org/sqlite) and PostgreSQL
(lib/pq).

# Tables

  - ballot_round: one row per ballot box, open and close times
  - candidate_entry: candidates and their ballot numbers
  - vote_receipt: one receipt per apartment per round
  - round_result: vote totals written when a round closes

# Relationships

	ballot_round 1──* candidate_entry
	ballot_round 1──* vote_receipt
	ballot_round 1──* round_result

All foreign keys use ON DELETE CASCADE.

# Indexes

  - vote_receipt.(round_id, apartment_number) (unique)
  - vote_receipt.short_code
*/
package db
