package creature

import (
	"fmt"
	"math/bits"
	"strings"
)

// Effect is a single visual effect a sprite can carry: a stage marker, an
// archetype accessory, or a faculty emblem. Effects are identified by bit
// position so sets stay cheap to union and compare.
type Effect uint

const (
	EffectShellCrack Effect = iota
	EffectWisdomAura
	EffectDivineRadiance
	EffectCollar
	EffectMane
	EffectRadiantAura
	EffectEmber
	EffectSparkTrail
	EffectFlameCrown
	EffectRuneCarving
	EffectMossGrowth
	EffectCrystalGrowth
	EffectVisor
	EffectShoulderPlates
	EffectBeacon
	EffectHorns
	EffectWings
	EffectTailBlade
	EffectSmokeWisps
	EffectEmberEyes
	EffectVoidVeil

	effectCount
)

// EffectCount is the number of defined effects.
const EffectCount = int(effectCount)

var effectNames = [effectCount]string{
	"ShellCrack", "WisdomAura", "DivineRadiance",
	"Collar", "Mane", "RadiantAura",
	"Ember", "SparkTrail", "FlameCrown",
	"RuneCarving", "MossGrowth", "CrystalGrowth",
	"Visor", "ShoulderPlates", "Beacon",
	"Horns", "Wings", "TailBlade",
	"SmokeWisps", "EmberEyes", "VoidVeil",
}

func (e Effect) String() string {
	if e < effectCount {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect(%d)", uint(e))
}

// Valid reports whether e is a defined effect.
func (e Effect) Valid() bool {
	return e < effectCount
}

// ParseEffect resolves a case-insensitive effect name.
func ParseEffect(s string) (Effect, error) {
	for i, name := range effectNames {
		if strings.EqualFold(s, name) {
			return Effect(i), nil
		}
	}
	return 0, fmt.Errorf("unknown effect %q", s)
}

// EffectSet is a bitmask of effects. The zero value is the empty set.
type EffectSet uint32

// NewEffectSet builds a set from the given effects.
func NewEffectSet(effects ...Effect) EffectSet {
	var s EffectSet
	for _, e := range effects {
		s = s.With(e)
	}
	return s
}

// With returns the set extended by e.
func (s EffectSet) With(e Effect) EffectSet {
	if !e.Valid() {
		return s
	}
	return s | 1<<e
}

// Union returns the combined set.
func (s EffectSet) Union(o EffectSet) EffectSet {
	return s | o
}

// Has reports whether e is in the set.
func (s EffectSet) Has(e Effect) bool {
	return e.Valid() && s&(1<<e) != 0
}

// Count returns the number of effects in the set.
func (s EffectSet) Count() int {
	return bits.OnesCount32(uint32(s))
}

// Effects returns the members in ascending bit order. The ordering is stable
// and is what generation code iterates when consuming deterministic draws.
func (s EffectSet) Effects() []Effect {
	out := make([]Effect, 0, s.Count())
	for e := Effect(0); e < effectCount; e++ {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// Names returns the display names of the members in ascending bit order.
func (s EffectSet) Names() []string {
	members := s.Effects()
	names := make([]string, len(members))
	for i, e := range members {
		names[i] = e.String()
	}
	return names
}

func (s EffectSet) String() string {
	if s == 0 {
		return "{}"
	}
	return "{" + strings.Join(s.Names(), ", ") + "}"
}
