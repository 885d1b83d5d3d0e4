// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package receipt

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	id := NewID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("NewID() = %q is not a UUID: %v", id, err)
	}

	if NewID() == id {
		t.Error("NewID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestDigest(t *testing.T) {
	const round = "round-1"
	const salt = "secret-salt"
	digest := Digest(round, 101, 42, salt)

	if len(digest) != 64 {
		t.Errorf("Digest() length = %d, want 64 hex chars", len(digest))
	}
	if Digest(round, 101, 42, salt) != digest {
		t.Error("Digest() is not deterministic")
	}

	variants := []struct {
		name   string
		digest string
	}{
		{"different round", Digest("round-2", 101, 42, salt)},
		{"different apartment", Digest(round, 102, 42, salt)},
		{"different ballot number", Digest(round, 101, 43, salt)},
		{"different salt", Digest(round, 101, 42, "other")},
		// field boundaries must not blur: 1|12 vs 11|2
		{"shifted digits", Digest(round, 1012, 4, salt)},
	}
	for _, v := range variants {
		if v.digest == digest {
			t.Errorf("%s produced the same digest", v.name)
		}
	}
}

func TestVerify(t *testing.T) {
	const round = "round-abc"
	const salt = "test-salt"
	valid := Digest(round, 7, 13, salt)

	tests := []struct {
		name      string
		digest    string
		apartment int
		number    int
		salt      string
		wantErr   bool
	}{
		{"valid receipt", valid, 7, 13, salt, false},
		{"wrong number", valid, 7, 14, salt, true},
		{"wrong apartment", valid, 8, 13, salt, true},
		{"wrong salt", valid, 7, 13, "nope", true},
		{"empty digest", "", 7, 13, salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.digest, round, tt.apartment, tt.number, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidReceipt {
				t.Errorf("Verify() error = %v, want %v", err, ErrInvalidReceipt)
			}
		})
	}
}

func TestShortCode(t *testing.T) {
	digest := Digest("round", 1, 2, "salt")
	code := ShortCode(digest)

	if code == "" {
		t.Fatal("ShortCode() returned empty string")
	}
	if len(code) > 11 {
		t.Errorf("ShortCode() too long: %d chars", len(code))
	}
	for _, c := range code {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			t.Errorf("ShortCode() contains non-alphanumeric char: %c", c)
		}
	}
	if ShortCode(digest) != code {
		t.Error("ShortCode() is not deterministic")
	}

	if ShortCode("not-hex") != "" {
		t.Error("ShortCode() should reject non-hex input")
	}
	if ShortCode("abcd") != "" {
		t.Error("ShortCode() should reject short digests")
	}
}

func TestBase62Encode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"zero", []byte{0}, "0"},
		{"single digit", []byte{9}, "9"},
		{"rollover", []byte{62}, "10"},
		{"letters", []byte{61}, "Z"},
		{"two bytes", []byte{1, 0}, "48"},
		{"empty", nil, "0"},
		{"only first 8 bytes", []byte{0, 0, 0, 0, 0, 0, 0, 1, 0xff}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base62Encode(tt.in); got != tt.want {
				t.Errorf("base62Encode(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	full := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	if got := base62Encode(full); len(got) != 11 {
		t.Errorf("base62Encode(full) = %q, want 11 digits", got)
	}
}

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	if strings.Contains(salt, "=") {
		t.Error("GenerateSalt() contains padding characters")
	}
	if len(salt) < 30 {
		t.Errorf("GenerateSalt() too short: %d chars", len(salt))
	}

	other, _ := GenerateSalt()
	if other == salt {
		t.Error("GenerateSalt() produced duplicate salts")
	}
}
