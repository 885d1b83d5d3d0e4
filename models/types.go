package models

import "time"

// Round status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Ledger records

type Round struct {
	ID             string     `json:"id"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	ElectorateSize int        `json:"electorate_size"`
}

// Status derives open/closed from ClosedAt
func (r Round) Status() string {
	if r.ClosedAt != nil {
		return StatusClosed
	}
	return StatusOpen
}

type CandidateEntry struct {
	RoundID         string `json:"round_id"`
	BallotNumber    int    `json:"ballot_number"`
	Name            string `json:"name"`
	ApartmentNumber int    `json:"apartment_number"`
}

type VoteReceipt struct {
	ID              string    `json:"id"`
	RoundID         string    `json:"round_id"`
	ApartmentNumber int       `json:"apartment_number"`
	Digest          string    `json:"-"` // Never expose in JSON
	ShortCode       string    `json:"short_code"`
	CastAt          time.Time `json:"cast_at"`
}

type CandidateResult struct {
	BallotNumber int    `json:"ballot_number"`
	Name         string `json:"name"`
	Votes        int    `json:"votes"`
}

type RoundSummary struct {
	Round   Round             `json:"round"`
	Voted   int               `json:"voted"`
	Results []CandidateResult `json:"results"`
}
