// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"testing"
)

func TestRegistryCreate(t *testing.T) {
	tests := []struct {
		name    string
		number  int
		wantErr error
	}{
		{"positive number", 101, nil},
		{"zero", 0, ErrInvalidApartmentNumber},
		{"negative", -5, ErrInvalidApartmentNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			apt, err := reg.Create(tt.number)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create(%d) error = %v, want %v", tt.number, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if apt != nil {
					t.Error("Expected nil apartment on error")
				}
				if reg.Len() != 0 {
					t.Errorf("Registry should be unchanged, has %d apartments", reg.Len())
				}
				return
			}
			if apt.Number() != tt.number {
				t.Errorf("Number() = %d, want %d", apt.Number(), tt.number)
			}
			if apt.HasVoted() {
				t.Error("New apartment should not have voted")
			}
		})
	}
}

func TestRegistryCreateDuplicate(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Create(101); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := reg.Create(102); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := reg.Create(101)
	if !errors.Is(err, ErrDuplicateApartment) {
		t.Fatalf("Expected ErrDuplicateApartment, got %v", err)
	}

	if reg.Len() != 2 {
		t.Errorf("Apartment count changed: got %d, want 2", reg.Len())
	}
}

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.GetOrCreate(201)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	second, err := reg.GetOrCreate(201)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if first != second {
		t.Error("GetOrCreate() should return the existing apartment")
	}
	if reg.Len() != 1 {
		t.Errorf("Expected 1 apartment, got %d", reg.Len())
	}

	if _, err := reg.GetOrCreate(0); !errors.Is(err, ErrInvalidApartmentNumber) {
		t.Errorf("Expected ErrInvalidApartmentNumber, got %v", err)
	}
}

func TestRegistryFind(t *testing.T) {
	reg := NewRegistry()
	created, _ := reg.Create(7)

	found, ok := reg.Find(7)
	if !ok || found != created {
		t.Error("Find() should return the created apartment")
	}

	if _, ok := reg.Find(8); ok {
		t.Error("Find() should not find an unregistered apartment")
	}
	if reg.Len() != 1 {
		t.Error("Find() must not create apartments")
	}
}

func TestAttachResident(t *testing.T) {
	reg := NewRegistry()

	ana, err := reg.AttachResident(101, "Ana")
	if err != nil {
		t.Fatalf("AttachResident() error = %v", err)
	}
	bruno, err := reg.AttachResident(101, "Bruno")
	if err != nil {
		t.Fatalf("AttachResident() error = %v", err)
	}
	if _, err := reg.AttachResident(102, "Carla"); err != nil {
		t.Fatalf("AttachResident() error = %v", err)
	}

	apt, ok := reg.Find(101)
	if !ok {
		t.Fatal("Apartment 101 should have been created lazily")
	}
	if ana.Apartment() != apt || bruno.Apartment() != apt {
		t.Error("Residents should point back to their apartment")
	}

	residents := apt.Residents()
	if len(residents) != 2 {
		t.Fatalf("Expected 2 residents, got %d", len(residents))
	}
	if residents[0].Name != "Ana" || residents[1].Name != "Bruno" {
		t.Errorf("Residents out of order: %v", residents)
	}

	if reg.Len() != 2 {
		t.Errorf("Expected 2 apartments, got %d", reg.Len())
	}

	if _, err := reg.AttachResident(-1, "Nobody"); !errors.Is(err, ErrInvalidApartmentNumber) {
		t.Errorf("Expected ErrInvalidApartmentNumber, got %v", err)
	}
	if reg.Len() != 2 {
		t.Error("Failed AttachResident should not add apartments")
	}
}

func TestAllApartmentsIsSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Create(1)
	reg.Create(2)

	snapshot := reg.AllApartments()
	reg.Create(3)

	if len(snapshot) != 2 {
		t.Errorf("Snapshot should not see later apartments, got %d", len(snapshot))
	}
	if snapshot[0].Number() != 1 || snapshot[1].Number() != 2 {
		t.Error("Snapshot should keep creation order")
	}
}

func TestPromoteKeepsResident(t *testing.T) {
	reg := NewRegistry()
	ana, _ := reg.AttachResident(101, "Ana")

	cand := Promote(ana)
	if cand.Resident() != ana {
		t.Error("Candidate should reference the promoted resident")
	}
	if cand.Name() != "Ana" {
		t.Errorf("Name() = %q, want Ana", cand.Name())
	}
	if cand.BallotNumber() != 0 || cand.VoteCount() != 0 {
		t.Error("Unregistered candidate should have no number and no votes")
	}

	apt, _ := reg.Find(101)
	if len(apt.Residents()) != 1 {
		t.Error("Promotion must not remove the resident from its apartment")
	}
}
