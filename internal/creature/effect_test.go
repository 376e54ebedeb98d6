package creature

import "testing"

func TestEffectSetOperations(t *testing.T) {
	s := NewEffectSet(EffectShellCrack, EffectCollar)

	if !s.Has(EffectShellCrack) {
		t.Error("Expected set to contain ShellCrack")
	}
	if !s.Has(EffectCollar) {
		t.Error("Expected set to contain Collar")
	}
	if s.Has(EffectMane) {
		t.Error("Expected set to not contain Mane")
	}
	if s.Count() != 2 {
		t.Errorf("Expected count 2, got %d", s.Count())
	}

	u := s.Union(NewEffectSet(EffectMane))
	if u.Count() != 3 {
		t.Errorf("Expected union count 3, got %d", u.Count())
	}
	if s.Count() != 2 {
		t.Error("Expected Union to leave the receiver unchanged")
	}
}

func TestEffectSetOrdering(t *testing.T) {
	// Members must come back in ascending bit order regardless of insertion order.
	s := NewEffectSet(EffectVoidVeil, EffectShellCrack, EffectMane)
	members := s.Effects()
	if len(members) != 3 {
		t.Fatalf("Expected 3 members, got %d", len(members))
	}
	for i := 1; i < len(members); i++ {
		if members[i] <= members[i-1] {
			t.Errorf("Members out of order: %v before %v", members[i-1], members[i])
		}
	}
	if members[0] != EffectShellCrack || members[2] != EffectVoidVeil {
		t.Errorf("Unexpected member ordering: %v", members)
	}
}

func TestEffectNames(t *testing.T) {
	for e := Effect(0); e < effectCount; e++ {
		name := e.String()
		if name == "" {
			t.Errorf("Effect %d has empty name", e)
		}
		got, err := ParseEffect(name)
		if err != nil {
			t.Errorf("ParseEffect(%q) returned error: %v", name, err)
		}
		if got != e {
			t.Errorf("ParseEffect(%q): expected %v, got %v", name, e, got)
		}
	}
	if _, err := ParseEffect("Sparkles"); err == nil {
		t.Error("Expected error for unknown effect name")
	}
}

func TestEmptyEffectSet(t *testing.T) {
	var s EffectSet
	if s.Count() != 0 {
		t.Errorf("Expected empty set count 0, got %d", s.Count())
	}
	if len(s.Effects()) != 0 {
		t.Error("Expected no members in empty set")
	}
	if s.String() != "{}" {
		t.Errorf("Expected {} for empty set, got %s", s.String())
	}
}
