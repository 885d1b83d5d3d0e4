// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/building-election/cliparse"
	"github.com/danielhkuo/building-election/models"
	"github.com/danielhkuo/building-election/receipt"
)

var (
	ErrRoundNotFound    = errors.New("round not found")
	ErrRoundNotOpen     = errors.New("round is not open")
	ErrDuplicateReceipt = errors.New("apartment already has a receipt for this round")
	ErrReceiptNotFound  = errors.New("receipt not found")
)

type Ledger struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLedger(db *sql.DB, cfg cliparse.Config) *Ledger {
	return &Ledger{db: db, cfg: cfg}
}

// OpenRound records the start of a voting round
func (l *Ledger) OpenRound(roundID string, electorateSize int) error {
	_, err := l.db.Exec(`
		INSERT INTO ballot_round (id, opened_at, electorate_size)
		VALUES ($1, $2, $3)
	`, roundID, time.Now(), electorateSize)
	if err != nil {
		return fmt.Errorf("failed to open round: %w", err)
	}

	slog.Debug("round opened", "round_id", roundID, "electorate_size", electorateSize)
	return nil
}

// RecordCandidate stores a candidate's ballot number for a round
func (l *Ledger) RecordCandidate(entry models.CandidateEntry) error {
	_, err := l.db.Exec(`
		INSERT INTO candidate_entry (round_id, ballot_number, name, apartment_number)
		VALUES ($1, $2, $3, $4)
	`, entry.RoundID, entry.BallotNumber, entry.Name, entry.ApartmentNumber)
	if err != nil {
		return fmt.Errorf("failed to record candidate: %w", err)
	}
	return nil
}

// RecordVote issues a receipt for an accepted vote.
// Only the digest of the ballot number is stored.
func (l *Ledger) RecordVote(roundID string, apartment, ballotNumber int) (models.VoteReceipt, error) {
	digest := receipt.Digest(roundID, apartment, ballotNumber, l.cfg.ReceiptSalt)
	rec := models.VoteReceipt{
		ID:              receipt.NewID(),
		RoundID:         roundID,
		ApartmentNumber: apartment,
		Digest:          digest,
		ShortCode:       receipt.ShortCode(digest),
		CastAt:          time.Now(),
	}

	tx, err := l.db.Begin()
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var closedAt sql.NullTime
	err = tx.QueryRow(`SELECT closed_at FROM ballot_round WHERE id = $1`, roundID).Scan(&closedAt)
	if err == sql.ErrNoRows {
		return models.VoteReceipt{}, ErrRoundNotFound
	}
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to query round: %w", err)
	}
	if closedAt.Valid {
		return models.VoteReceipt{}, ErrRoundNotOpen
	}

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM vote_receipt
			WHERE round_id = $1 AND apartment_number = $2
		)
	`, roundID, apartment).Scan(&exists)
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to check receipt: %w", err)
	}
	if exists {
		return models.VoteReceipt{}, ErrDuplicateReceipt
	}

	_, err = tx.Exec(`
		INSERT INTO vote_receipt (id, round_id, apartment_number, digest, short_code, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.RoundID, rec.ApartmentNumber, rec.Digest, rec.ShortCode, rec.CastAt)
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to insert receipt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to commit receipt: %w", err)
	}

	slog.Debug("receipt issued", "round_id", roundID, "apartment", apartment, "receipt_id", rec.ID)
	return rec, nil
}

// CloseRound marks the round closed and stores the final tallies
func (l *Ledger) CloseRound(roundID string, results []models.CandidateResult) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE ballot_round SET closed_at = $1
		WHERE id = $2 AND closed_at IS NULL
	`, time.Now(), roundID)
	if err != nil {
		return fmt.Errorf("failed to close round: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to close round: %w", err)
	}
	if affected == 0 {
		if _, err := l.roundTx(tx, roundID); err != nil {
			return err
		}
		return ErrRoundNotOpen
	}

	for _, r := range results {
		_, err = tx.Exec(`
			INSERT INTO round_result (round_id, ballot_number, votes)
			VALUES ($1, $2, $3)
		`, roundID, r.BallotNumber, r.Votes)
		if err != nil {
			return fmt.Errorf("failed to store result for %d: %w", r.BallotNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit round close: %w", err)
	}

	slog.Info("round closed", "round_id", roundID, "candidates", len(results))
	return nil
}

// Round loads a round by ID
func (l *Ledger) Round(roundID string) (models.Round, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return models.Round{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	return l.roundTx(tx, roundID)
}

func (l *Ledger) roundTx(tx *sql.Tx, roundID string) (models.Round, error) {
	var round models.Round
	var closedAt sql.NullTime
	err := tx.QueryRow(`
		SELECT id, opened_at, closed_at, electorate_size
		FROM ballot_round WHERE id = $1
	`, roundID).Scan(&round.ID, &round.OpenedAt, &closedAt, &round.ElectorateSize)
	if err == sql.ErrNoRows {
		return models.Round{}, ErrRoundNotFound
	}
	if err != nil {
		return models.Round{}, fmt.Errorf("failed to query round: %w", err)
	}
	if closedAt.Valid {
		round.ClosedAt = &closedAt.Time
	}
	return round, nil
}

// LookupReceipt finds a receipt by the short code shown to the voter
func (l *Ledger) LookupReceipt(shortCode string) (models.VoteReceipt, error) {
	var rec models.VoteReceipt
	err := l.db.QueryRow(`
		SELECT id, round_id, apartment_number, digest, short_code, cast_at
		FROM vote_receipt WHERE short_code = $1
	`, shortCode).Scan(&rec.ID, &rec.RoundID, &rec.ApartmentNumber, &rec.Digest, &rec.ShortCode, &rec.CastAt)
	if err == sql.ErrNoRows {
		return models.VoteReceipt{}, ErrReceiptNotFound
	}
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to query receipt: %w", err)
	}
	return rec, nil
}

// VerifyReceipt checks that a receipt records a vote from apartment for ballotNumber
func (l *Ledger) VerifyReceipt(shortCode string, apartment, ballotNumber int) error {
	rec, err := l.LookupReceipt(shortCode)
	if err != nil {
		return err
	}
	if rec.ApartmentNumber != apartment {
		return receipt.ErrInvalidReceipt
	}
	return receipt.Verify(rec.Digest, rec.RoundID, apartment, ballotNumber, l.cfg.ReceiptSalt)
}

// RoundResults returns a round with its turnout and stored tallies, most votes first
func (l *Ledger) RoundResults(roundID string) (models.RoundSummary, error) {
	round, err := l.Round(roundID)
	if err != nil {
		return models.RoundSummary{}, err
	}

	summary := models.RoundSummary{Round: round, Results: []models.CandidateResult{}}
	err = l.db.QueryRow(`
		SELECT COUNT(*) FROM vote_receipt WHERE round_id = $1
	`, roundID).Scan(&summary.Voted)
	if err != nil {
		return models.RoundSummary{}, fmt.Errorf("failed to count receipts: %w", err)
	}

	rows, err := l.db.Query(`
		SELECT c.ballot_number, c.name, COALESCE(r.votes, 0)
		FROM candidate_entry c
		LEFT JOIN round_result r
		  ON r.round_id = c.round_id AND r.ballot_number = c.ballot_number
		WHERE c.round_id = $1
		ORDER BY COALESCE(r.votes, 0) DESC, c.ballot_number ASC
	`, roundID)
	if err != nil {
		return models.RoundSummary{}, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.CandidateResult
		if err := rows.Scan(&r.BallotNumber, &r.Name, &r.Votes); err != nil {
			return models.RoundSummary{}, fmt.Errorf("failed to scan result: %w", err)
		}
		summary.Results = append(summary.Results, r)
	}
	if err := rows.Err(); err != nil {
		return models.RoundSummary{}, fmt.Errorf("failed to read results: %w", err)
	}

	return summary, nil
}
