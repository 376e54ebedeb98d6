// Package engine derives deterministic draw streams from opaque provenance
// bytes. The same provenance always yields the same stream, on any platform,
// across process restarts. All randomness used by sprite generation flows
// through a State obtained here.
package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"unicode/utf8"
)

// streamLabel domain-separates the HMAC stream from any other use of the
// same provenance digest.
const streamLabel = "spriteforge/v1"

// State is a deterministic byte stream keyed on the SHA-256 digest of the
// provenance input, expanded with HMAC-SHA256 over an incrementing round
// counter. A State belongs to exactly one generation run and is not safe for
// concurrent use; independent runs each derive their own.
type State struct {
	key          [sha256.Size]byte
	digest       string
	currentRound uint64
	currentPos   int
	buffer       [sha256.Size]byte
	draws        uint64
}

// DeriveState validates the provenance bytes and derives the draw stream for
// one generation run. Empty or non-canonical provenance fails with a
// *ProvenanceError.
func DeriveState(provenance []byte) (*State, error) {
	if err := validateProvenance(provenance); err != nil {
		return nil, err
	}

	s := &State{
		key:    sha256.Sum256(provenance),
		digest: Digest(provenance),
	}
	s.generateRound()
	return s, nil
}

// validateProvenance enforces the canonical provenance form: non-empty UTF-8
// text with no control bytes.
func validateProvenance(provenance []byte) error {
	if len(provenance) == 0 {
		return &ProvenanceError{Reason: "provenance is empty"}
	}
	if !utf8.Valid(provenance) {
		return &ProvenanceError{Reason: "provenance is not valid UTF-8"}
	}
	for _, b := range provenance {
		if b < 0x20 || b == 0x7f {
			return &ProvenanceError{Reason: fmt.Sprintf("provenance contains control byte 0x%02x", b)}
		}
	}
	return nil
}

// Digest returns the lowercase hex SHA-256 digest of the provenance bytes.
// Consumers log and persist this instead of the raw provenance.
func Digest(provenance []byte) string {
	sum := sha256.Sum256(provenance)
	return hex.EncodeToString(sum[:])
}

// Digest returns the digest of the provenance this state was derived from.
func (s *State) Digest() string {
	return s.digest
}

// Draws returns how many floats have been consumed from the stream.
func (s *State) Draws() uint64 {
	return s.draws
}

func (s *State) generateRound() {
	h := hmac.New(sha256.New, s.key[:])
	message := fmt.Sprintf("%s:%d", streamLabel, s.currentRound)
	h.Write([]byte(message))
	copy(s.buffer[:], h.Sum(nil))
}

// nextByte returns the next byte of the stream, advancing to the next HMAC
// round when the current 32-byte block is exhausted.
func (s *State) nextByte() byte {
	if s.currentPos >= len(s.buffer) {
		s.currentRound++
		s.currentPos = 0
		s.generateRound()
	}

	b := s.buffer[s.currentPos]
	s.currentPos++
	return b
}

// Float consumes exactly 4 bytes and returns a float in [0, 1).
func (s *State) Float() float64 {
	b0 := s.nextByte()
	b1 := s.nextByte()
	b2 := s.nextByte()
	b3 := s.nextByte()

	s.draws++
	return bytesToFloat([4]byte{b0, b1, b2, b3})
}

// Intn consumes one float and returns an integer in [0, n). n must be
// positive; non-positive n returns 0 without consuming a draw.
func (s *State) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	index := int(math.Floor(s.Float() * float64(n)))
	if index >= n {
		index = n - 1
	}
	return index
}

// IntBetween consumes one float and returns an integer in [lo, hi].
func (s *State) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// bytesToFloat converts exactly 4 bytes to float64 by summing b/256^(i+1).
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		divider := math.Pow(256, float64(i+1))
		result += float64(b) / divider
	}
	return result
}
