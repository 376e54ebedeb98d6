// Package creature defines the closed vocabularies the generation rules are
// keyed on: genres, archetypes, rarity tiers, evolution stages, faculty roles,
// and the visual effect flags a sprite can carry.
package creature

import (
	"fmt"
	"strings"
)

// Genre selects the visual theme family of a creature.
type Genre int

const (
	GenreUnknown Genre = iota
	GenreSciFi
	GenreFantasy
	GenreSteampunk
	GenreCyberpunk
)

var genreNames = map[Genre]string{
	GenreSciFi:     "SciFi",
	GenreFantasy:   "Fantasy",
	GenreSteampunk: "Steampunk",
	GenreCyberpunk: "Cyberpunk",
}

// Genres returns all supported genres in declaration order.
func Genres() []Genre {
	return []Genre{GenreSciFi, GenreFantasy, GenreSteampunk, GenreCyberpunk}
}

func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Genre(%d)", int(g))
}

// Valid reports whether g is one of the supported genres.
func (g Genre) Valid() bool {
	_, ok := genreNames[g]
	return ok
}

// ParseGenre resolves a case-insensitive genre name.
func ParseGenre(s string) (Genre, error) {
	for g, name := range genreNames {
		if strings.EqualFold(s, name) {
			return g, nil
		}
	}
	return GenreUnknown, fmt.Errorf("unknown genre %q", s)
}

// Archetype selects the structural body plan of a creature.
type Archetype int

const (
	ArchetypeUnknown Archetype = iota
	ArchetypeFamiliar
	ArchetypeWisp
	ArchetypeGolem
	ArchetypeSentinel
	ArchetypeDrake
	ArchetypeShade
)

var archetypeNames = map[Archetype]string{
	ArchetypeFamiliar: "Familiar",
	ArchetypeWisp:     "Wisp",
	ArchetypeGolem:    "Golem",
	ArchetypeSentinel: "Sentinel",
	ArchetypeDrake:    "Drake",
	ArchetypeShade:    "Shade",
}

// Archetypes returns all supported archetypes in declaration order.
func Archetypes() []Archetype {
	return []Archetype{
		ArchetypeFamiliar, ArchetypeWisp, ArchetypeGolem,
		ArchetypeSentinel, ArchetypeDrake, ArchetypeShade,
	}
}

func (a Archetype) String() string {
	if name, ok := archetypeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Archetype(%d)", int(a))
}

// Valid reports whether a is one of the supported archetypes.
func (a Archetype) Valid() bool {
	_, ok := archetypeNames[a]
	return ok
}

// ParseArchetype resolves a case-insensitive archetype name.
func ParseArchetype(s string) (Archetype, error) {
	for a, name := range archetypeNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return ArchetypeUnknown, fmt.Errorf("unknown archetype %q", s)
}

// Rarity is an ordered scarcity tier. Higher values are strictly rarer.
type Rarity int

const (
	RarityUnknown Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "Common",
	RarityUncommon:  "Uncommon",
	RarityRare:      "Rare",
	RarityEpic:      "Epic",
	RarityLegendary: "Legendary",
}

// Rarities returns all tiers from most to least common.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rarity(%d)", int(r))
}

// Valid reports whether r is one of the supported tiers.
func (r Rarity) Valid() bool {
	_, ok := rarityNames[r]
	return ok
}

// ParseRarity resolves a case-insensitive rarity tier name.
func ParseRarity(s string) (Rarity, error) {
	for r, name := range rarityNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return RarityUnknown, fmt.Errorf("unknown rarity %q", s)
}

// Stage is one step of the fixed six-stage evolution ladder. The ordering is
// part of the output contract: evolution sheets lay stages out in this order,
// and growth parameters never decrease along it.
type Stage int

const (
	StageEgg Stage = iota
	StageHatchling
	StageJuvenile
	StageAdult
	StageElder
	StageLegendary
)

// StageCount is the number of stages in an evolution chain.
const StageCount = 6

var stageNames = [StageCount]string{
	"Egg", "Hatchling", "Juvenile", "Adult", "Elder", "Legendary",
}

// Stages returns the six evolution stages in ascending order.
func Stages() []Stage {
	return []Stage{StageEgg, StageHatchling, StageJuvenile, StageAdult, StageElder, StageLegendary}
}

func (s Stage) String() string {
	if s >= 0 && int(s) < StageCount {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Valid reports whether s is one of the six stages.
func (s Stage) Valid() bool {
	return s >= 0 && int(s) < StageCount
}

// ParseStage resolves a case-insensitive stage name.
func ParseStage(str string) (Stage, error) {
	for i, name := range stageNames {
		if strings.EqualFold(str, name) {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", str)
}

// FacultyRole identifies one of the ultra-rare faculty likeness sprites.
type FacultyRole int

const (
	RoleUnknown FacultyRole = iota
	RoleWarbler
	RoleArchivist
	RoleProvost
	RoleChronicler
	RoleGatekeeper
)

var roleNames = map[FacultyRole]string{
	RoleWarbler:    "Warbler",
	RoleArchivist:  "Archivist",
	RoleProvost:    "Provost",
	RoleChronicler: "Chronicler",
	RoleGatekeeper: "Gatekeeper",
}

// FacultyRoles returns all supported roles in declaration order.
func FacultyRoles() []FacultyRole {
	return []FacultyRole{RoleWarbler, RoleArchivist, RoleProvost, RoleChronicler, RoleGatekeeper}
}

func (r FacultyRole) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("FacultyRole(%d)", int(r))
}

// Valid reports whether r is one of the supported roles.
func (r FacultyRole) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseFacultyRole resolves a case-insensitive faculty role name.
func ParseFacultyRole(s string) (FacultyRole, error) {
	for r, name := range roleNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown faculty role %q", s)
}
