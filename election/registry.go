// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"sync/atomic"
)

// Resident is a named occupant of an apartment
type Resident struct {
	Name      string
	apartment *Apartment
}

// Apartment returns the apartment the resident was registered under
func (r *Resident) Apartment() *Apartment {
	return r.apartment
}

func (r *Resident) String() string {
	return fmt.Sprintf("Resident: %s", r.Name)
}

// Apartment is a uniquely numbered unit holding residents and one vote flag
type Apartment struct {
	number    int
	residents []*Resident
	voted     atomic.Bool
}

func (a *Apartment) Number() int {
	return a.number
}

// Residents returns a copy of the resident list in registration order
func (a *Apartment) Residents() []*Resident {
	out := make([]*Resident, len(a.residents))
	copy(out, a.residents)
	return out
}

// HasVoted reports whether a vote from this apartment has been accepted
func (a *Apartment) HasVoted() bool {
	return a.voted.Load()
}

// markVoted flips the flag from false to true.
// Returns false if the apartment had already voted.
func (a *Apartment) markVoted() bool {
	return a.voted.CompareAndSwap(false, true)
}

func (a *Apartment) String() string {
	return fmt.Sprintf("Apartment %d: %v", a.number, a.residents)
}

// Registry holds the apartments of one building
type Registry struct {
	apartments []*Apartment
	byNumber   map[int]*Apartment
}

func NewRegistry() *Registry {
	return &Registry{byNumber: make(map[int]*Apartment)}
}

// Find looks up an apartment by number
func (r *Registry) Find(number int) (*Apartment, bool) {
	apt, ok := r.byNumber[number]
	return apt, ok
}

// Create registers a new apartment.
// Fails with ErrDuplicateApartment if the number is taken.
func (r *Registry) Create(number int) (*Apartment, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidApartmentNumber, number)
	}
	if _, exists := r.byNumber[number]; exists {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateApartment, number)
	}

	apt := &Apartment{number: number}
	r.apartments = append(r.apartments, apt)
	r.byNumber[number] = apt
	return apt, nil
}

// GetOrCreate returns the apartment for number, creating it if needed
func (r *Registry) GetOrCreate(number int) (*Apartment, error) {
	if apt, ok := r.Find(number); ok {
		return apt, nil
	}
	return r.Create(number)
}

// AttachResident registers a resident under the given apartment number
func (r *Registry) AttachResident(number int, name string) (*Resident, error) {
	apt, err := r.GetOrCreate(number)
	if err != nil {
		return nil, err
	}

	resident := &Resident{Name: name, apartment: apt}
	apt.residents = append(apt.residents, resident)
	return resident, nil
}

// AllApartments returns a snapshot of the registered apartments in creation order
func (r *Registry) AllApartments() []*Apartment {
	out := make([]*Apartment, len(r.apartments))
	copy(out, r.apartments)
	return out
}

// Len returns the number of registered apartments
func (r *Registry) Len() int {
	return len(r.apartments)
}
