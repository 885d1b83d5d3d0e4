// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the records written to and read from the ledger.

# Record Types

  - Round: one voting round, keyed by the ballot box ID
  - CandidateEntry: a candidate and the ballot number it drew
  - VoteReceipt: proof that an apartment voted, without the choice
  - CandidateResult: final vote total for one candidate
  - RoundSummary: a round with its turnout and results

# Constants

Round status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

A round is closed once its ClosedAt is set.
*/
package models
