package provenance

import (
	"testing"
	"time"
)

func TestCanonicalForm(t *testing.T) {
	r := Record{
		Kind:     "faculty",
		ID:       "warbler",
		IssuedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	got, err := r.Canonical()
	if err != nil {
		t.Fatalf("Canonical returned error: %v", err)
	}
	want := "faculty|warbler|2025-01-01T00:00:00Z"
	if string(got) != want {
		t.Errorf("Expected %q, got %q", want, string(got))
	}
}

func TestCanonicalNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	r := Record{
		Kind:     "token",
		ID:       "founders-0001",
		IssuedAt: time.Date(2025, 6, 15, 14, 0, 0, 0, loc),
	}
	got, err := r.Canonical()
	if err != nil {
		t.Fatalf("Canonical returned error: %v", err)
	}
	want := "token|founders-0001|2025-06-15T12:00:00Z"
	if string(got) != want {
		t.Errorf("Expected %q, got %q", want, string(got))
	}
}

func TestCanonicalStability(t *testing.T) {
	r := TokenRecord("founders", 1, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	a, err := r.Canonical()
	if err != nil {
		t.Fatalf("Canonical returned error: %v", err)
	}
	b, err := r.Canonical()
	if err != nil {
		t.Fatalf("Canonical returned error: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("Canonical not stable: %q vs %q", a, b)
	}
}

func TestTokenRecordIDs(t *testing.T) {
	issued := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	r0 := TokenRecord("founders", 0, issued)
	r1 := TokenRecord("founders", 1, issued)
	if r0.ID != "founders-0000" {
		t.Errorf("Expected founders-0000, got %s", r0.ID)
	}
	if r1.ID != "founders-0001" {
		t.Errorf("Expected founders-0001, got %s", r1.ID)
	}
	if r0.ID == r1.ID {
		t.Error("Expected distinct IDs for distinct indices")
	}
}

func TestValidateFailures(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		rec  Record
	}{
		{"empty kind", Record{Kind: "", ID: "x", IssuedAt: issued}},
		{"empty id", Record{Kind: "token", ID: "", IssuedAt: issued}},
		{"separator in kind", Record{Kind: "to|ken", ID: "x", IssuedAt: issued}},
		{"separator in id", Record{Kind: "token", ID: "a|b", IssuedAt: issued}},
		{"control char in id", Record{Kind: "token", ID: "a\tb", IssuedAt: issued}},
		{"zero timestamp", Record{Kind: "token", ID: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.rec.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
			if _, err := tc.rec.Canonical(); err == nil {
				t.Error("Expected Canonical to fail, got nil")
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	r := Record{
		Kind:     "faculty",
		ID:       "archivist",
		IssuedAt: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
	canonical, err := r.Canonical()
	if err != nil {
		t.Fatalf("Canonical returned error: %v", err)
	}
	parsed, err := Parse(string(canonical))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if parsed.Kind != r.Kind || parsed.ID != r.ID || !parsed.IssuedAt.Equal(r.IssuedAt) {
		t.Errorf("Round trip mismatch: %+v vs %+v", parsed, r)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"token",
		"token|only-two",
		"token|x|not-a-timestamp",
		"token|x|2025-01-01T00:00:00Z|extra",
	}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Expected Parse(%q) to fail", s)
		}
	}
}
