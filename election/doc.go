// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the building election engine.

# Registry

A Registry owns the apartments of one building. Apartments are created
lazily the first time a resident names them:

	reg := election.NewRegistry()
	ana, err := reg.AttachResident(101, "Ana")

Apartment numbers must be positive and unique. Create rejects a number
that is already registered; GetOrCreate returns the existing apartment.

# Candidates

A candidate is a resident promoted for one ballot box. Promotion does not
move the resident out of its apartment:

	cand := election.Promote(ana)

# Ballot Box

A BallotBox runs one voting round:

	box := election.NewBallotBox()
	if err := box.RegisterCandidate(cand); err != nil {
		// ErrBallotNumberPoolExhausted, ErrCandidateAlreadyRegistered
	}
	box.SetElectorate(reg.AllApartments())
	result := box.CastVote(apt, cand.BallotNumber())

Ballot numbers are drawn uniformly from the unused numbers in [1, 100].
CastVote returns one of:

	Accepted         // flag set, counter incremented
	AlreadyVoted     // apartment voted before, nothing changes
	UnknownCandidate // no candidate holds that number, nothing changes
	NotEligible      // apartment is not in the electorate

The round is in progress while any electorate apartment has not voted.
There is no stored state for this; IsInProgress recomputes it.

# Concurrency

BallotBox methods are safe for concurrent use. Registry is not; it is
populated by a single caller before voting starts.
*/
package election
