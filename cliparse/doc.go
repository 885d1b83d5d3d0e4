// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - LedgerURL: audit ledger connection string (default: in-memory SQLite)
  - LedgerType: sqlite or postgres (default: sqlite)
  - ReceiptSalt: secret for vote receipt digests (optional)
  - Seed: seed for ballot number draws (0 = random)
  - LogLevel: slog level (default: info)
  - EnvFile: dotenv file loaded before reading the environment

# CLI Flags

	-d             Ledger URL
	-t             Ledger type
	--receipt-salt Receipt salt
	--seed         Ballot number seed
	--log-level    Log level
	--env          Environment file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	LEDGER_URL   → -d
	LEDGER_TYPE  → -t
	RECEIPT_SALT → --receipt-salt
	BALLOT_SEED  → --seed
	LOG_LEVEL    → --log-level

CLI flags take precedence over environment variables, and variables
already set in the environment take precedence over the env file. A
missing env file is not an error.

# Validation

ParseFlags returns an error if:

  - the ledger type is not sqlite or postgres
  - the seed is not a non-negative integer
  - the log level is unknown
*/
package cliparse
