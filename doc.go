// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the building election console.

Residents register under their apartment, some of them run as candidates,
and each apartment casts exactly one vote. The round closes by itself once
every apartment that was registered when voting opened has voted.

# Starting a Session

	go run .

Or with flags:

	go run . -seed 7 -receipt-salt "s3cret" -log-level debug

# Configuration

All settings are optional:

  - LEDGER_URL (-d): audit ledger connection string (default: in-memory SQLite)
  - LEDGER_TYPE (-t): sqlite or postgres
  - RECEIPT_SALT (--receipt-salt): secret for vote receipts
  - BALLOT_SEED (--seed): reproducible ballot number draws
  - LOG_LEVEL (--log-level): debug, info, warn, or error

A .env file in the working directory is read first.

# Architecture

  - election: registry, candidates, and the ballot box engine
  - shell: interactive menu driving the engine
  - ledger: audit trail of rounds, candidates, and receipts
  - receipt: receipt IDs, digests, and short codes
  - models: ledger record types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
