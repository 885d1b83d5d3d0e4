// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"testing"

	"github.com/danielhkuo/building-election/models"
	"github.com/danielhkuo/building-election/receipt"
	"github.com/danielhkuo/building-election/testutil"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(testutil.SetupTestDB(t), testutil.GetTestConfig())
}

func TestOpenRound(t *testing.T) {
	l := newTestLedger(t)

	if err := l.OpenRound("round-1", 3); err != nil {
		t.Fatalf("OpenRound() error = %v", err)
	}

	round, err := l.Round("round-1")
	if err != nil {
		t.Fatalf("Round() error = %v", err)
	}
	if round.ElectorateSize != 3 {
		t.Errorf("ElectorateSize = %d, want 3", round.ElectorateSize)
	}
	if round.Status() != models.StatusOpen {
		t.Errorf("Status() = %s, want open", round.Status())
	}

	if err := l.OpenRound("round-1", 3); err == nil {
		t.Error("Opening the same round twice should fail")
	}

	if _, err := l.Round("missing"); !errors.Is(err, ErrRoundNotFound) {
		t.Errorf("Expected ErrRoundNotFound, got %v", err)
	}
}

func TestRecordVote(t *testing.T) {
	l := newTestLedger(t)
	roundID := testutil.CreateTestRound(t, l.db, 2, false)

	rec, err := l.RecordVote(roundID, 101, 42)
	if err != nil {
		t.Fatalf("RecordVote() error = %v", err)
	}

	if rec.ID == "" || rec.ShortCode == "" {
		t.Error("Receipt should have an ID and a short code")
	}
	if rec.ShortCode != receipt.ShortCode(rec.Digest) {
		t.Error("Short code should derive from the digest")
	}
	if err := receipt.Verify(rec.Digest, roundID, 101, 42, l.cfg.ReceiptSalt); err != nil {
		t.Errorf("Digest does not verify: %v", err)
	}

	// The ballot number must not appear in the stored row
	var digest string
	if err := l.db.QueryRow(`SELECT digest FROM vote_receipt WHERE id = $1`, rec.ID).Scan(&digest); err != nil {
		t.Fatal(err)
	}
	if digest != rec.Digest {
		t.Error("Stored digest mismatch")
	}

	if _, err := l.RecordVote(roundID, 101, 7); !errors.Is(err, ErrDuplicateReceipt) {
		t.Errorf("Expected ErrDuplicateReceipt, got %v", err)
	}
	if got := testutil.CountRows(t, l.db, "vote_receipt", roundID); got != 1 {
		t.Errorf("Expected 1 receipt, got %d", got)
	}
}

func TestRecordVoteRoundState(t *testing.T) {
	l := newTestLedger(t)
	closed := testutil.CreateTestRound(t, l.db, 1, true)

	tests := []struct {
		name    string
		roundID string
		wantErr error
	}{
		{"unknown round", "nope", ErrRoundNotFound},
		{"closed round", closed, ErrRoundNotOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.RecordVote(tt.roundID, 1, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordVote() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyReceipt(t *testing.T) {
	l := newTestLedger(t)
	roundID := testutil.CreateTestRound(t, l.db, 2, false)

	rec, err := l.RecordVote(roundID, 201, 17)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		code      string
		apartment int
		number    int
		wantErr   error
	}{
		{"matching vote", rec.ShortCode, 201, 17, nil},
		{"wrong ballot number", rec.ShortCode, 201, 18, receipt.ErrInvalidReceipt},
		{"wrong apartment", rec.ShortCode, 202, 17, receipt.ErrInvalidReceipt},
		{"unknown code", "zzz", 201, 17, ErrReceiptNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.VerifyReceipt(tt.code, tt.apartment, tt.number)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyReceipt() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloseRoundAndResults(t *testing.T) {
	l := newTestLedger(t)
	if err := l.OpenRound("r", 3); err != nil {
		t.Fatal(err)
	}

	entries := []models.CandidateEntry{
		{RoundID: "r", BallotNumber: 42, Name: "Ana", ApartmentNumber: 101},
		{RoundID: "r", BallotNumber: 7, Name: "Bruno", ApartmentNumber: 102},
		{RoundID: "r", BallotNumber: 88, Name: "Carla", ApartmentNumber: 103},
	}
	for _, e := range entries {
		if err := l.RecordCandidate(e); err != nil {
			t.Fatalf("RecordCandidate() error = %v", err)
		}
	}
	for apt, number := range map[int]int{101: 42, 102: 42, 103: 7} {
		if _, err := l.RecordVote("r", apt, number); err != nil {
			t.Fatal(err)
		}
	}

	results := []models.CandidateResult{
		{BallotNumber: 42, Name: "Ana", Votes: 2},
		{BallotNumber: 7, Name: "Bruno", Votes: 1},
	}
	if err := l.CloseRound("r", results); err != nil {
		t.Fatalf("CloseRound() error = %v", err)
	}

	summary, err := l.RoundResults("r")
	if err != nil {
		t.Fatalf("RoundResults() error = %v", err)
	}
	if summary.Round.Status() != models.StatusClosed {
		t.Error("Round should be closed")
	}
	if summary.Voted != 3 {
		t.Errorf("Voted = %d, want 3", summary.Voted)
	}
	if len(summary.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(summary.Results))
	}

	want := []models.CandidateResult{
		{BallotNumber: 42, Name: "Ana", Votes: 2},
		{BallotNumber: 7, Name: "Bruno", Votes: 1},
		{BallotNumber: 88, Name: "Carla", Votes: 0},
	}
	for i, w := range want {
		if summary.Results[i] != w {
			t.Errorf("Results[%d] = %+v, want %+v", i, summary.Results[i], w)
		}
	}

	if err := l.CloseRound("r", nil); !errors.Is(err, ErrRoundNotOpen) {
		t.Errorf("Second close error = %v, want ErrRoundNotOpen", err)
	}
	if err := l.CloseRound("missing", nil); !errors.Is(err, ErrRoundNotFound) {
		t.Errorf("Unknown round close error = %v, want ErrRoundNotFound", err)
	}
	if _, err := l.RecordVote("r", 104, 42); !errors.Is(err, ErrRoundNotOpen) {
		t.Errorf("Vote after close error = %v, want ErrRoundNotOpen", err)
	}
}
