package creature

import "testing"

func TestRarityOrdering(t *testing.T) {
	tiers := Rarities()
	if len(tiers) != 5 {
		t.Fatalf("Expected 5 rarity tiers, got %d", len(tiers))
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i] <= tiers[i-1] {
			t.Errorf("Expected %s to rank above %s", tiers[i], tiers[i-1])
		}
	}
	if RarityCommon >= RarityLegendary {
		t.Error("Expected Common to rank below Legendary")
	}
}

func TestStageOrdering(t *testing.T) {
	stages := Stages()
	if len(stages) != StageCount {
		t.Fatalf("Expected %d stages, got %d", StageCount, len(stages))
	}
	expected := []string{"Egg", "Hatchling", "Juvenile", "Adult", "Elder", "Legendary"}
	for i, s := range stages {
		if s.String() != expected[i] {
			t.Errorf("Stage %d: expected %s, got %s", i, expected[i], s)
		}
		if !s.Valid() {
			t.Errorf("Expected stage %s to be valid", s)
		}
	}
	if Stage(6).Valid() {
		t.Error("Expected Stage(6) to be invalid")
	}
}

func TestParseRoundTrips(t *testing.T) {
	for _, g := range Genres() {
		got, err := ParseGenre(g.String())
		if err != nil {
			t.Errorf("ParseGenre(%q) returned error: %v", g.String(), err)
		}
		if got != g {
			t.Errorf("ParseGenre(%q): expected %v, got %v", g.String(), g, got)
		}
	}
	for _, a := range Archetypes() {
		got, err := ParseArchetype(a.String())
		if err != nil {
			t.Errorf("ParseArchetype(%q) returned error: %v", a.String(), err)
		}
		if got != a {
			t.Errorf("ParseArchetype(%q): expected %v, got %v", a.String(), a, got)
		}
	}
	for _, r := range Rarities() {
		got, err := ParseRarity(r.String())
		if err != nil {
			t.Errorf("ParseRarity(%q) returned error: %v", r.String(), err)
		}
		if got != r {
			t.Errorf("ParseRarity(%q): expected %v, got %v", r.String(), r, got)
		}
	}
	for _, role := range FacultyRoles() {
		got, err := ParseFacultyRole(role.String())
		if err != nil {
			t.Errorf("ParseFacultyRole(%q) returned error: %v", role.String(), err)
		}
		if got != role {
			t.Errorf("ParseFacultyRole(%q): expected %v, got %v", role.String(), role, got)
		}
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	g, err := ParseGenre("fantasy")
	if err != nil {
		t.Fatalf("ParseGenre(fantasy) returned error: %v", err)
	}
	if g != GenreFantasy {
		t.Errorf("Expected GenreFantasy, got %v", g)
	}
	role, err := ParseFacultyRole("WARBLER")
	if err != nil {
		t.Fatalf("ParseFacultyRole(WARBLER) returned error: %v", err)
	}
	if role != RoleWarbler {
		t.Errorf("Expected RoleWarbler, got %v", role)
	}
}

func TestParseUnknownValues(t *testing.T) {
	if _, err := ParseGenre("western"); err == nil {
		t.Error("Expected error for unknown genre")
	}
	if _, err := ParseArchetype("kraken"); err == nil {
		t.Error("Expected error for unknown archetype")
	}
	if _, err := ParseRarity("mythic"); err == nil {
		t.Error("Expected error for unknown rarity")
	}
	if _, err := ParseFacultyRole("dean"); err == nil {
		t.Error("Expected error for unknown faculty role")
	}
	if GenreUnknown.Valid() {
		t.Error("Expected GenreUnknown to be invalid")
	}
}
