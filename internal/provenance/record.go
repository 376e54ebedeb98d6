// Package provenance builds the canonical provenance records that seed sprite
// generation. The canonical byte form is `kind|id|timestamp` with an RFC 3339
// UTC timestamp, so the same ownership event always reproduces the same
// sprite.
package provenance

import (
	"fmt"
	"strings"
	"time"
)

// Separator joins the canonical record fields.
const Separator = "|"

// Record identifies the event a sprite is generated for: a token mint, a
// faculty grant, or any other provenance-bearing issuance.
type Record struct {
	// Kind labels the issuance class, e.g. "token" or "faculty".
	Kind string
	// ID uniquely identifies the subject within the kind.
	ID string
	// IssuedAt is the issuance instant. It is canonicalized to UTC.
	IssuedAt time.Time
}

// TokenRecord builds the record for one token of a drop collection.
func TokenRecord(collection string, index int, issuedAt time.Time) Record {
	return Record{
		Kind:     "token",
		ID:       fmt.Sprintf("%s-%04d", collection, index),
		IssuedAt: issuedAt,
	}
}

// FacultyRecord builds the record for a faculty likeness grant.
func FacultyRecord(role string, issuedAt time.Time) Record {
	return Record{
		Kind:     "faculty",
		ID:       strings.ToLower(role),
		IssuedAt: issuedAt,
	}
}

// Validate checks that the record can take canonical form.
func (r Record) Validate() error {
	if err := validateField("kind", r.Kind); err != nil {
		return err
	}
	if err := validateField("id", r.ID); err != nil {
		return err
	}
	if r.IssuedAt.IsZero() {
		return fmt.Errorf("provenance record: issued_at is zero")
	}
	return nil
}

func validateField(name, value string) error {
	if value == "" {
		return fmt.Errorf("provenance record: %s is empty", name)
	}
	if strings.Contains(value, Separator) {
		return fmt.Errorf("provenance record: %s contains separator %q", name, Separator)
	}
	for _, c := range value {
		if c < 0x20 || c == 0x7f {
			return fmt.Errorf("provenance record: %s contains control character %U", name, c)
		}
	}
	return nil
}

// Canonical returns the canonical provenance bytes for the record. The result
// is stable: equal records always produce identical bytes.
func (r Record) Canonical() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	s := r.Kind + Separator + r.ID + Separator + r.IssuedAt.UTC().Format(time.RFC3339)
	return []byte(s), nil
}

// Parse reads a canonical provenance string back into a Record.
func Parse(s string) (Record, error) {
	parts := strings.Split(s, Separator)
	if len(parts) != 3 {
		return Record{}, fmt.Errorf("provenance record: expected 3 fields, got %d", len(parts))
	}
	issuedAt, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return Record{}, fmt.Errorf("provenance record: bad timestamp: %w", err)
	}
	r := Record{Kind: parts[0], ID: parts[1], IssuedAt: issuedAt.UTC()}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}
