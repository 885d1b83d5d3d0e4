// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"fmt"
	"log/slog"

	"github.com/danielhkuo/building-election/election"
	"github.com/danielhkuo/building-election/models"
)

// registerResident handles option a
func (s *Session) registerResident() error {
	resident, err := s.promptResident()
	if err != nil {
		return err
	}

	slog.Info("resident registered", "name", resident.Name, "apartment", resident.Apartment().Number())
	fmt.Fprintln(s.out, "Resident registered successfully.")
	s.pause(shortPause)
	return nil
}

// registerCandidate handles option b
func (s *Session) registerCandidate() error {
	if s.roundClosed {
		fmt.Fprintln(s.out, "Voting is closed. No new candidates can be registered.")
		s.pause(shortPause)
		return nil
	}
	if s.box.FreeBallotNumbers() == 0 {
		fmt.Fprintln(s.out, "No ballot numbers left for new candidates.")
		s.pause(shortPause)
		return nil
	}

	resident, err := s.promptResident()
	if err != nil {
		return err
	}

	candidate := election.Promote(resident)
	if err := s.box.RegisterCandidate(candidate); err != nil {
		fmt.Fprintf(s.out, "Could not register candidate: %v\n", err)
		s.pause(shortPause)
		return nil
	}

	// Candidates joining after the round opened go straight to the ledger
	if s.roundOpen {
		if err := s.ledger.RecordCandidate(candidateEntry(s.box, candidate)); err != nil {
			warn("failed to record candidate", err, "ballot_number", candidate.BallotNumber())
		}
	}

	slog.Info("candidate registered",
		"name", candidate.Name(),
		"apartment", candidate.Apartment().Number(),
		"ballot_number", candidate.BallotNumber(),
	)
	fmt.Fprintf(s.out, "Candidate registered successfully with number %d.\n", candidate.BallotNumber())
	s.pause(shortPause)
	return nil
}

// promptResident asks for a name and an apartment and registers the resident
func (s *Session) promptResident() (*election.Resident, error) {
	name, err := s.readName("Resident name: ")
	if err != nil {
		return nil, err
	}

	for {
		number, err := s.readNumber("Apartment number: ")
		if err != nil {
			return nil, err
		}
		resident, err := s.registry.AttachResident(number, name)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid apartment: %v\n", err)
			continue
		}
		return resident, nil
	}
}

// listApartments handles option c
func (s *Session) listApartments() {
	apartments := s.registry.AllApartments()
	if len(apartments) == 0 {
		fmt.Fprintln(s.out, "No apartments registered.")
	}
	for _, apt := range apartments {
		fmt.Fprintln(s.out, apt)
	}
	s.pause(longPause)
}

// listResidents handles option d
func (s *Session) listResidents() {
	apartments := s.registry.AllApartments()
	if len(apartments) == 0 {
		fmt.Fprintln(s.out, "No residents registered.")
	}
	for _, apt := range apartments {
		fmt.Fprintf(s.out, "Apartment %d residents:\n", apt.Number())
		for _, r := range apt.Residents() {
			fmt.Fprintf(s.out, "  %s\n", r.Name)
		}
	}
	s.pause(longPause)
}

func candidateEntry(box *election.BallotBox, c *election.Candidate) models.CandidateEntry {
	return models.CandidateEntry{
		RoundID:         box.ID().String(),
		BallotNumber:    c.BallotNumber(),
		Name:            c.Name(),
		ApartmentNumber: c.Apartment().Number(),
	}
}
