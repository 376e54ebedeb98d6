package sprite

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
)

// Mode selects the overall shape of a generation run.
type Mode int

const (
	ModeUnknown Mode = iota
	// ModeGenreCreature renders a single fully grown creature frame.
	ModeGenreCreature
	// ModeFacultyUltraRare renders a single faculty likeness frame.
	ModeFacultyUltraRare
	// ModeEvolutionChain renders one frame for each evolution stage.
	ModeEvolutionChain
	// ModeAnimatedEvolutionChain renders an animation strip for each stage.
	ModeAnimatedEvolutionChain
)

var modeNames = map[Mode]string{
	ModeGenreCreature:          "GenreCreature",
	ModeFacultyUltraRare:       "FacultyUltraRare",
	ModeEvolutionChain:         "EvolutionChain",
	ModeAnimatedEvolutionChain: "AnimatedEvolutionChain",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Animated reports whether the mode renders more than one frame per stage.
func (m Mode) Animated() bool {
	return m == ModeAnimatedEvolutionChain
}

// Stages returns the evolution stages the mode renders, in sheet row order.
// Single-frame modes render the fully grown creature only.
func (m Mode) Stages() []creature.Stage {
	if m == ModeEvolutionChain || m == ModeAnimatedEvolutionChain {
		return creature.Stages()
	}
	return []creature.Stage{creature.StageAdult}
}

// ParseMode resolves a case-insensitive mode name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return ModeUnknown, fmt.Errorf("unknown mode %q", s)
}

// DefaultFrameSize is the square frame edge used when FrameSize is zero.
const DefaultFrameSize = 24

// DefaultAnimationFrames is the per-stage frame count animated presets use.
const DefaultAnimationFrames = 6

const (
	minFrameSize      = 16
	maxFrameSize      = 128
	maxFramesPerStage = 12
)

// SpriteSpec describes what to generate. The zero value is not usable; build
// specs with the preset constructors, or fill the fields and Validate.
type SpriteSpec struct {
	Mode           Mode
	Genre          creature.Genre
	Archetype      creature.Archetype
	Rarity         creature.Rarity
	Role           creature.FacultyRole
	UniqueID       string
	FramesPerStage int
	FrameSize      int
}

// GenreSpec is a single-frame creature at full growth.
func GenreSpec(g creature.Genre, a creature.Archetype, r creature.Rarity) SpriteSpec {
	return SpriteSpec{Mode: ModeGenreCreature, Genre: g, Archetype: a, Rarity: r, FramesPerStage: 1}
}

// FacultySpec is a single-frame ultra-rare faculty likeness. The unique id
// ties the sprite to its issuance record.
func FacultySpec(role creature.FacultyRole, uniqueID string) SpriteSpec {
	return SpriteSpec{Mode: ModeFacultyUltraRare, Role: role, UniqueID: uniqueID, FramesPerStage: 1}
}

// EvolutionChainSpec is a six-row sheet with one frame per stage.
func EvolutionChainSpec(g creature.Genre, a creature.Archetype, r creature.Rarity) SpriteSpec {
	return SpriteSpec{Mode: ModeEvolutionChain, Genre: g, Archetype: a, Rarity: r, FramesPerStage: 1}
}

// AnimatedEvolutionSpec is a six-row sheet with frames animation frames per
// stage. DefaultAnimationFrames is the usual choice.
func AnimatedEvolutionSpec(g creature.Genre, a creature.Archetype, r creature.Rarity, frames int) SpriteSpec {
	return SpriteSpec{Mode: ModeAnimatedEvolutionChain, Genre: g, Archetype: a, Rarity: r, FramesPerStage: frames}
}

// Validate checks every field and returns an *InvalidSpecError aggregating
// all violations. Out-of-range values fail outright, they are never clamped.
func (s SpriteSpec) Validate() error {
	var issues error

	switch s.Mode {
	case ModeGenreCreature, ModeEvolutionChain, ModeAnimatedEvolutionChain:
		if !s.Genre.Valid() {
			issues = multierr.Append(issues, fmt.Errorf("genre %s is not a supported genre", s.Genre))
		}
		if !s.Archetype.Valid() {
			issues = multierr.Append(issues, fmt.Errorf("archetype %s is not a supported archetype", s.Archetype))
		}
		if !s.Rarity.Valid() {
			issues = multierr.Append(issues, fmt.Errorf("rarity %s is not a supported tier", s.Rarity))
		}
	case ModeFacultyUltraRare:
		if !s.Role.Valid() {
			issues = multierr.Append(issues, fmt.Errorf("role %s is not a supported faculty role", s.Role))
		}
		if strings.TrimSpace(s.UniqueID) == "" {
			issues = multierr.Append(issues, fmt.Errorf("faculty sprites require a unique id"))
		}
	default:
		issues = multierr.Append(issues, fmt.Errorf("mode %s is not a supported mode", s.Mode))
	}

	if s.FramesPerStage < 1 || s.FramesPerStage > maxFramesPerStage {
		issues = multierr.Append(issues,
			fmt.Errorf("framesPerStage %d is outside [1, %d]", s.FramesPerStage, maxFramesPerStage))
	} else if s.FramesPerStage != 1 && s.Mode.Valid() && !s.Mode.Animated() {
		issues = multierr.Append(issues,
			fmt.Errorf("mode %s renders one frame per stage, got %d", s.Mode, s.FramesPerStage))
	}

	if s.FrameSize != 0 {
		if s.FrameSize < minFrameSize || s.FrameSize > maxFrameSize {
			issues = multierr.Append(issues,
				fmt.Errorf("frameSize %d is outside [%d, %d]", s.FrameSize, minFrameSize, maxFrameSize))
		} else if s.FrameSize%2 != 0 {
			issues = multierr.Append(issues, fmt.Errorf("frameSize %d is odd, frames are even-sized", s.FrameSize))
		}
	}

	if issues != nil {
		return &InvalidSpecError{Issues: issues}
	}
	return nil
}

// normalized returns the spec with defaults applied and fields that do not
// participate in the mode cleared, so equal requests generate equal sheets.
// Faculty sprites are always Legendary tier.
func (s SpriteSpec) normalized() SpriteSpec {
	n := s
	if n.FrameSize == 0 {
		n.FrameSize = DefaultFrameSize
	}
	if n.Mode == ModeFacultyUltraRare {
		n.Genre = creature.GenreUnknown
		n.Archetype = creature.ArchetypeUnknown
		n.Rarity = creature.RarityLegendary
		n.UniqueID = strings.TrimSpace(n.UniqueID)
	} else {
		n.Role = creature.RoleUnknown
		n.UniqueID = ""
	}
	return n
}
