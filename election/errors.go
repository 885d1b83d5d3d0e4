// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrInvalidApartmentNumber     = errors.New("apartment number must be a positive integer")
	ErrDuplicateApartment         = errors.New("apartment already exists")
	ErrBallotNumberPoolExhausted  = errors.New("no free ballot numbers left")
	ErrCandidateAlreadyRegistered = errors.New("candidate already registered in a ballot box")
	ErrNilCandidate               = errors.New("candidate or its resident is nil")
)
