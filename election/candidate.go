// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"sync/atomic"
)

// Candidate is a resident running in a ballot box.
// The resident keeps its place in the apartment; the candidate only adds
// the ballot number and vote counter. Both are safe to read while a box
// is counting votes.
type Candidate struct {
	resident     *Resident
	ballotNumber atomic.Int64
	votes        atomic.Int64
}

// Promote makes a candidate out of a resident
func Promote(r *Resident) *Candidate {
	return &Candidate{resident: r}
}

func (c *Candidate) Resident() *Resident {
	return c.resident
}

func (c *Candidate) Name() string {
	return c.resident.Name
}

func (c *Candidate) Apartment() *Apartment {
	return c.resident.apartment
}

// BallotNumber is 0 until the candidate is registered in a ballot box
func (c *Candidate) BallotNumber() int {
	return int(c.ballotNumber.Load())
}

func (c *Candidate) VoteCount() int {
	return int(c.votes.Load())
}

// setBallotNumber assigns n once; it fails if the candidate already holds a number
func (c *Candidate) setBallotNumber(n int) bool {
	return c.ballotNumber.CompareAndSwap(0, int64(n))
}

func (c *Candidate) incrementVoteCount() {
	c.votes.Add(1)
}

func (c *Candidate) String() string {
	return fmt.Sprintf("Candidate %d: %s", c.BallotNumber(), c.Name())
}
