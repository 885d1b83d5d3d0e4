// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/building-election/election"
	"github.com/danielhkuo/building-election/ledger"
	"github.com/danielhkuo/building-election/models"
	"github.com/danielhkuo/building-election/receipt"
)

// vote handles option f
func (s *Session) vote() error {
	defer s.pause(shortPause)

	if s.roundClosed {
		fmt.Fprintln(s.out, "Voting is closed.")
		return nil
	}
	if len(s.box.Candidates()) == 0 {
		fmt.Fprintln(s.out, "No candidates registered yet.")
		return nil
	}
	if !s.roundOpen && !s.openRound() {
		return nil
	}

	number, err := s.readNumber("Apartment number: ")
	if err != nil {
		return err
	}
	apt, ok := s.registry.Find(number)
	if !ok {
		fmt.Fprintf(s.out, "Apartment %d is not registered.\n", number)
		return nil
	}
	if apt.HasVoted() {
		fmt.Fprintln(s.out, "Your apartment has already voted.")
		return nil
	}

	var ballotNumber int
	for {
		ballotNumber, err = s.readNumber("Candidate number: ")
		if err != nil {
			return err
		}
		if s.box.IsKnownBallotNumber(ballotNumber) {
			break
		}
	}

	result := s.box.CastVote(apt, ballotNumber)
	slog.Info("vote cast", "apartment", apt.Number(), "result", result.String())

	switch result {
	case election.Accepted:
		rec, err := s.ledger.RecordVote(s.box.ID().String(), apt.Number(), ballotNumber)
		if err != nil {
			warn("failed to record vote", err, "apartment", apt.Number())
			fmt.Fprintln(s.out, "Vote recorded.")
		} else {
			fmt.Fprintf(s.out, "Vote recorded. Receipt code: %s\n", rec.ShortCode)
		}
	case election.AlreadyVoted:
		fmt.Fprintln(s.out, "Your apartment has already voted.")
	case election.UnknownCandidate:
		fmt.Fprintf(s.out, "No candidate with number %d.\n", ballotNumber)
	case election.NotEligible:
		fmt.Fprintf(s.out, "Apartment %d is not part of this round's electorate.\n", apt.Number())
	}

	if !s.box.IsInProgress() {
		s.closeRound()
	}
	return nil
}

// openRound fixes the electorate to the apartments registered right now
func (s *Session) openRound() bool {
	apartments := s.registry.AllApartments()
	if len(apartments) == 0 {
		fmt.Fprintln(s.out, "No apartments registered yet.")
		return false
	}
	s.box.SetElectorate(apartments)
	s.roundOpen = true

	roundID := s.box.ID().String()
	if err := s.ledger.OpenRound(roundID, len(apartments)); err != nil {
		warn("failed to open round in ledger", err, "round_id", roundID)
	} else {
		for _, c := range s.box.Candidates() {
			if err := s.ledger.RecordCandidate(candidateEntry(s.box, c)); err != nil {
				warn("failed to record candidate", err, "ballot_number", c.BallotNumber())
			}
		}
	}

	slog.Info("round opened", "round_id", roundID, "electorate_size", len(apartments))
	fmt.Fprintf(s.out, "Voting opened for %d apartments.\n", len(apartments))
	return true
}

func (s *Session) closeRound() {
	s.roundClosed = true

	standings := s.box.Standings()
	results := make([]models.CandidateResult, len(standings))
	for i, st := range standings {
		results[i] = models.CandidateResult{BallotNumber: st.BallotNumber, Name: st.Name, Votes: st.Votes}
	}
	if err := s.ledger.CloseRound(s.box.ID().String(), results); err != nil {
		warn("failed to close round in ledger", err)
	}

	fmt.Fprintln(s.out, "All apartments have voted. Voting is closed.")
	s.printStandings(standings)
}

// showResults handles option r
func (s *Session) showResults() {
	defer s.pause(longPause)

	switch {
	case s.roundClosed:
		fmt.Fprintln(s.out, "Voting closed.")
	case s.roundOpen:
		fmt.Fprintln(s.out, "Voting in progress.")
	default:
		fmt.Fprintln(s.out, "Voting has not started.")
	}

	if s.roundOpen {
		voted, eligible := s.box.Turnout()
		fmt.Fprintf(s.out, "Turnout: %d of %d apartments (%s%%)\n",
			voted, eligible, humanize.FtoaWithDigits(percent(voted, eligible), 1))
	}

	standings := s.box.Standings()
	if len(standings) == 0 {
		fmt.Fprintln(s.out, "No candidates registered yet.")
		return
	}
	s.printStandings(standings)
}

// printStandings lists candidates by vote count; tied candidates share a rank
func (s *Session) printStandings(standings []election.Standing) {
	rank := 0
	for i, st := range standings {
		if i == 0 || st.Votes != standings[i-1].Votes {
			rank = i + 1
		}
		marker := ""
		if st.Leader {
			marker = " *"
		}
		fmt.Fprintf(s.out, "%4s  #%-3d %-20s apt %-5d %s votes%s\n",
			humanize.Ordinal(rank), st.BallotNumber, st.Name, st.Apartment,
			humanize.Comma(int64(st.Votes)), marker)
	}
}

// verifyReceipt handles option v
func (s *Session) verifyReceipt() error {
	defer s.pause(shortPause)

	code, err := s.readName("Receipt code: ")
	if err != nil {
		return err
	}
	apartment, err := s.readNumber("Apartment number: ")
	if err != nil {
		return err
	}
	ballotNumber, err := s.readNumber("Candidate number: ")
	if err != nil {
		return err
	}

	err = s.ledger.VerifyReceipt(code, apartment, ballotNumber)
	switch {
	case err == nil:
		fmt.Fprintln(s.out, "Receipt is valid.")
	case errors.Is(err, receipt.ErrInvalidReceipt):
		fmt.Fprintln(s.out, "Receipt does not match that vote.")
	case errors.Is(err, ledger.ErrReceiptNotFound):
		fmt.Fprintln(s.out, "Receipt not found.")
	default:
		warn("failed to verify receipt", err)
		fmt.Fprintln(s.out, "Could not check the receipt right now.")
	}
	return nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
