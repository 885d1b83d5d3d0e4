// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package receipt

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidReceipt = errors.New("receipt does not match vote")

// NewID returns a random receipt ID
func NewID() string {
	return uuid.NewString()
}

// Digest creates the HMAC for one vote.
// Deterministic: the same inputs and salt always give the same digest.
func Digest(roundID string, apartment, ballotNumber int, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(roundID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(apartment)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(ballotNumber)))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks a digest against the vote it claims to record
func Verify(digest, roundID string, apartment, ballotNumber int, salt string) error {
	expected := Digest(roundID, apartment, ballotNumber, salt)
	if !hmac.Equal([]byte(digest), []byte(expected)) {
		return ErrInvalidReceipt
	}
	return nil
}

// ShortCode creates a short code for a digest to show the voter
func ShortCode(digest string) string {
	raw, err := hex.DecodeString(digest)
	if err != nil || len(raw) < 8 {
		return ""
	}
	return base62Encode(raw[:8])
}

// GenerateSalt creates a random secret for signing receipts
func GenerateSalt() (string, error) {
	b := make([]byte, 24) // 192 bits
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate receipt salt: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

const base62Digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// base62Encode reads up to 8 bytes big-endian and writes the value in base62
func base62Encode(data []byte) string {
	k := min(len(data), 8)
	var buf [8]byte
	copy(buf[8-k:], data[:k])
	num := binary.BigEndian.Uint64(buf[:])

	// 62^11 > 2^64, so 11 digits always fit
	var out [11]byte
	i := len(out)
	for {
		i--
		out[i] = base62Digits[num%62]
		num /= 62
		if num == 0 {
			return string(out[i:])
		}
	}
}
