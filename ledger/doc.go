// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger keeps an audit trail of voting rounds.

The ballot box in package election is the only source of truth for votes.
The ledger records what happened so it can be inspected and receipts can
be verified; nothing is ever loaded back from it into the engine.

# Usage

	l := ledger.NewLedger(conn, cfg)
	l.OpenRound(roundID, electorateSize)
	l.RecordCandidate(models.CandidateEntry{...})
	rec, err := l.RecordVote(roundID, apartment, ballotNumber)
	l.CloseRound(roundID, results)

# Receipts

RecordVote stores a receipt holding the apartment number and an HMAC
digest of the ballot number, never the number itself. The voter gets the
receipt's short code and can later check it:

	err := l.VerifyReceipt(code, apartment, ballotNumber)

VerifyReceipt returns receipt.ErrInvalidReceipt when the code exists but
does not match, and ErrReceiptNotFound when it does not exist.

# Errors

  - ErrRoundNotFound: no round with that ID
  - ErrRoundNotOpen: the round was already closed
  - ErrDuplicateReceipt: the apartment already has a receipt in the round
  - ErrReceiptNotFound: unknown short code
*/
package ledger
