// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Ballot number range, inclusive
const (
	MinBallotNumber = 1
	MaxBallotNumber = 100
)

// VoteResult is the outcome of a CastVote call
type VoteResult int

const (
	Accepted VoteResult = iota
	AlreadyVoted
	UnknownCandidate
	NotEligible
)

func (v VoteResult) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case AlreadyVoted:
		return "already voted"
	case UnknownCandidate:
		return "unknown candidate"
	case NotEligible:
		return "not eligible"
	default:
		return "unknown"
	}
}

// Standing is a candidate's position in the raw vote count
type Standing struct {
	BallotNumber int
	Name         string
	Apartment    int
	Votes        int
	Leader       bool // shares the highest vote count
}

// BallotBox is the voting engine for one round
type BallotBox struct {
	id uuid.UUID

	mu         sync.Mutex
	rng        *rand.Rand
	electorate []*Apartment
	eligible   map[*Apartment]bool
	candidates []*Candidate
	byNumber   map[int]*Candidate
}

// NewBallotBox creates a ballot box drawing numbers from a random seed
func NewBallotBox() *BallotBox {
	return newBallotBox(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewBallotBoxWithSeed creates a ballot box with reproducible number draws
func NewBallotBoxWithSeed(seed uint64) *BallotBox {
	return newBallotBox(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func newBallotBox(rng *rand.Rand) *BallotBox {
	return &BallotBox{
		id:       uuid.New(),
		rng:      rng,
		eligible: make(map[*Apartment]bool),
		byNumber: make(map[int]*Candidate),
	}
}

func (b *BallotBox) ID() uuid.UUID {
	return b.id
}

// RegisterCandidate assigns the candidate a free ballot number and adds it to the box
func (b *BallotBox) RegisterCandidate(c *Candidate) error {
	if c == nil || c.resident == nil {
		return ErrNilCandidate
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// A candidate holds one number, in one box
	if c.BallotNumber() != 0 {
		return ErrCandidateAlreadyRegistered
	}

	// Sample from the complement of the numbers in use
	free := make([]int, 0, MaxBallotNumber-MinBallotNumber+1)
	for n := MinBallotNumber; n <= MaxBallotNumber; n++ {
		if _, used := b.byNumber[n]; !used {
			free = append(free, n)
		}
	}
	if len(free) == 0 {
		return ErrBallotNumberPoolExhausted
	}

	number := free[b.rng.IntN(len(free))]
	if !c.setBallotNumber(number) {
		// lost a race with another box
		return ErrCandidateAlreadyRegistered
	}
	b.candidates = append(b.candidates, c)
	b.byNumber[number] = c
	return nil
}

// SetElectorate replaces the set of apartments allowed to vote
func (b *BallotBox) SetElectorate(apartments []*Apartment) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.electorate = make([]*Apartment, 0, len(apartments))
	b.eligible = make(map[*Apartment]bool, len(apartments))
	for _, apt := range apartments {
		if apt == nil || b.eligible[apt] {
			continue
		}
		b.eligible[apt] = true
		b.electorate = append(b.electorate, apt)
	}
}

// Electorate returns the apartments allowed to vote
func (b *BallotBox) Electorate() []*Apartment {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*Apartment, len(b.electorate))
	copy(out, b.electorate)
	return out
}

// CastVote records a vote from apartment for the candidate holding ballotNumber.
// The apartment flag and the candidate counter change together or not at all.
func (b *BallotBox) CastVote(apartment *Apartment, ballotNumber int) VoteResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if apartment == nil || !b.eligible[apartment] {
		return NotEligible
	}
	if apartment.HasVoted() {
		return AlreadyVoted
	}

	candidate, ok := b.byNumber[ballotNumber]
	if !ok {
		return UnknownCandidate
	}

	// The flag may be shared with another box, so flip it atomically
	if !apartment.markVoted() {
		return AlreadyVoted
	}
	candidate.incrementVoteCount()
	return Accepted
}

// IsInProgress reports whether any electorate apartment has not voted yet
func (b *BallotBox) IsInProgress() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, apt := range b.electorate {
		if !apt.HasVoted() {
			return true
		}
	}
	return false
}

// Turnout returns how many electorate apartments voted and how many may vote
func (b *BallotBox) Turnout() (voted, eligible int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, apt := range b.electorate {
		if apt.HasVoted() {
			voted++
		}
	}
	return voted, len(b.electorate)
}

// KnownBallotNumbers returns the numbers of all registered candidates, ascending
func (b *BallotBox) KnownBallotNumbers() []int {
	b.mu.Lock()
	defer b.mu.Unlock()

	numbers := make([]int, 0, len(b.byNumber))
	for n := range b.byNumber {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// FreeBallotNumbers returns how many ballot numbers are still unassigned
func (b *BallotBox) FreeBallotNumbers() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return MaxBallotNumber - MinBallotNumber + 1 - len(b.byNumber)
}

// IsKnownBallotNumber reports whether a candidate holds the number
func (b *BallotBox) IsKnownBallotNumber(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.byNumber[n]
	return ok
}

// Candidate looks up a registered candidate by ballot number
func (b *BallotBox) Candidate(ballotNumber int) (*Candidate, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.byNumber[ballotNumber]
	return c, ok
}

// Candidates returns the registered candidates in registration order
func (b *BallotBox) Candidates() []*Candidate {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*Candidate, len(b.candidates))
	copy(out, b.candidates)
	return out
}

// Standings returns the raw vote count per candidate, most votes first.
// Equal counts are listed by ballot number; no tie is broken.
func (b *BallotBox) Standings() []Standing {
	b.mu.Lock()
	defer b.mu.Unlock()

	standings := make([]Standing, len(b.candidates))
	top := 0
	for i, c := range b.candidates {
		votes := c.VoteCount()
		standings[i] = Standing{
			BallotNumber: c.BallotNumber(),
			Name:         c.Name(),
			Votes:        votes,
		}
		if apt := c.Apartment(); apt != nil {
			standings[i].Apartment = apt.number
		}
		if votes > top {
			top = votes
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		x, y := standings[i], standings[j]
		if x.Votes != y.Votes {
			return x.Votes > y.Votes
		}
		return x.BallotNumber < y.BallotNumber
	})

	// Nobody leads before the first vote
	if top > 0 {
		for i := range standings {
			standings[i].Leader = standings[i].Votes == top
		}
	}
	return standings
}
