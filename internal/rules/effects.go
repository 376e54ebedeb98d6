package rules

import "github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"

// EffectKind selects how an effect renders and animates.
type EffectKind int

const (
	// EffectBadge is a static cell pattern. It never contributes frame deltas.
	EffectBadge EffectKind = iota
	// EffectOrbit animates particles around the anchor on the orbit ring.
	EffectOrbit
	// EffectPulse recolors the pattern cells through a cyclic blend ramp.
	EffectPulse
	// EffectShimmer draws the pattern statically and walks one highlight
	// cell along it.
	EffectShimmer
)

// Offset is a position on the 24-unit design grid, relative to frame center.
type Offset struct {
	X, Y int
}

// EffectSpec describes how one effect is placed and rendered.
//
// Placement consumes three deterministic draws: a variant index in
// [0, Variants) and an x/y jitter in [-Jitter, Jitter]. AnimCells is the
// number of grid cells the effect animates per frame. A moving cell touches
// at most the position it vacates and the one it enters, so adjacent frames
// differ by at most twice this many cells; capping the per-stage sum keeps
// frame deltas well under the quarter-area bound.
type EffectSpec struct {
	Effect    creature.Effect
	Kind      EffectKind
	Slot      PaletteSlot
	Anchor    Offset
	Variants  int
	Jitter    int
	Cells     []Offset
	Particles int
	AnimCells int
}

// orbitRing is the 16-slot integer approximation of a radius-3 circle that
// orbit particles travel. A literal table keeps the pixel path free of
// runtime trigonometry.
var orbitRing = [16]Offset{
	{3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1},
	{-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
	{0, -3}, {1, -3}, {2, -2}, {3, -1},
}

// OrbitRing returns the orbit slot offsets. Slot indices wrap modulo 16.
func OrbitRing() [16]Offset {
	return orbitRing
}

// OrbitSlots is the number of positions on the orbit ring.
const OrbitSlots = len(orbitRing)

// pulseRamp is the cyclic blend numerator ramp (over PulseRampDen) pulse
// effects step through. The zero entry is the rest point where cells show
// the pure slot color.
var pulseRamp = [4]int{0, 2, 3, 2}

// PulseRampDen is the blend denominator for pulse ramp values.
const PulseRampDen = 4

// PulseRamp returns the cyclic pulse blend ramp.
func PulseRamp() [4]int {
	return pulseRamp
}

var effectSpecs = []EffectSpec{
	{
		Effect: creature.EffectShellCrack, Kind: EffectShimmer, Slot: SlotOutline,
		Anchor: Offset{0, -1}, Variants: 4, Jitter: 1,
		Cells:     []Offset{{0, -2}, {1, -1}, {0, 0}, {-1, 1}, {0, 2}},
		AnimCells: 1,
	},
	{
		Effect: creature.EffectWisdomAura, Kind: EffectOrbit, Slot: SlotGlow,
		Anchor: Offset{0, -7}, Variants: 4, Jitter: 1,
		Particles: 3, AnimCells: 3,
	},
	{
		Effect: creature.EffectDivineRadiance, Kind: EffectOrbit, Slot: SlotGlow,
		Anchor: Offset{0, -9}, Variants: 4, Jitter: 1,
		Particles: 4, AnimCells: 4,
	},
	{
		Effect: creature.EffectCollar, Kind: EffectBadge, Slot: SlotAccent,
		Anchor: Offset{0, 0}, Variants: 2, Jitter: 1,
		Cells: []Offset{{-2, 0}, {-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	},
	{
		Effect: creature.EffectMane, Kind: EffectBadge, Slot: SlotAccent,
		Anchor: Offset{0, -3}, Variants: 2, Jitter: 0,
		Cells: []Offset{{-5, -1}, {-4, -4}, {-2, -6}, {0, -6}, {2, -6}, {4, -4}, {5, -1}},
	},
	{
		Effect: creature.EffectRadiantAura, Kind: EffectPulse, Slot: SlotGlow,
		Anchor: Offset{0, 0}, Variants: 4, Jitter: 0,
		Cells:     []Offset{{0, -7}, {7, 0}, {0, 7}, {-7, 0}},
		AnimCells: 4,
	},
	{
		Effect: creature.EffectEmber, Kind: EffectShimmer, Slot: SlotAccent,
		Anchor: Offset{0, -8}, Variants: 2, Jitter: 1,
		Cells:     []Offset{{0, -1}, {1, 0}, {0, 1}},
		AnimCells: 1,
	},
	{
		Effect: creature.EffectSparkTrail, Kind: EffectOrbit, Slot: SlotGlow,
		Anchor: Offset{0, 4}, Variants: 4, Jitter: 1,
		Particles: 2, AnimCells: 2,
	},
	{
		Effect: creature.EffectFlameCrown, Kind: EffectPulse, Slot: SlotAccent,
		Anchor: Offset{0, -8}, Variants: 4, Jitter: 0,
		Cells:     []Offset{{-3, 0}, {-1, -2}, {1, -2}, {3, 0}},
		AnimCells: 4,
	},
	{
		Effect: creature.EffectRuneCarving, Kind: EffectBadge, Slot: SlotDetail,
		Anchor: Offset{0, 2}, Variants: 4, Jitter: 1,
		Cells: []Offset{{0, -1}, {0, 0}, {0, 1}, {-1, 0}, {1, 0}},
	},
	{
		Effect: creature.EffectMossGrowth, Kind: EffectBadge, Slot: SlotDetail,
		Anchor: Offset{-4, 6}, Variants: 2, Jitter: 2,
		Cells: []Offset{{-2, 0}, {-1, 1}, {0, 0}, {1, 1}, {2, 0}},
	},
	{
		Effect: creature.EffectCrystalGrowth, Kind: EffectShimmer, Slot: SlotGlow,
		Anchor: Offset{5, -3}, Variants: 2, Jitter: 1,
		Cells:     []Offset{{0, -2}, {0, -1}, {0, 0}, {1, -1}},
		AnimCells: 1,
	},
	{
		Effect: creature.EffectVisor, Kind: EffectBadge, Slot: SlotEye,
		Anchor: Offset{0, -4}, Variants: 1, Jitter: 0,
		Cells: []Offset{{-2, 0}, {-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	},
	{
		Effect: creature.EffectShoulderPlates, Kind: EffectBadge, Slot: SlotAccent,
		Anchor: Offset{0, -1}, Variants: 1, Jitter: 0,
		Cells: []Offset{{-6, 0}, {-5, 0}, {-6, 1}, {5, 0}, {6, 0}, {6, 1}},
	},
	{
		Effect: creature.EffectBeacon, Kind: EffectPulse, Slot: SlotGlow,
		Anchor: Offset{0, -10}, Variants: 2, Jitter: 0,
		Cells:     []Offset{{0, 0}, {-1, 1}, {1, 1}},
		AnimCells: 3,
	},
	{
		Effect: creature.EffectHorns, Kind: EffectBadge, Slot: SlotDetail,
		Anchor: Offset{0, -8}, Variants: 2, Jitter: 0,
		Cells: []Offset{{-3, -1}, {-3, -2}, {3, -1}, {3, -2}},
	},
	{
		Effect: creature.EffectWings, Kind: EffectBadge, Slot: SlotShade,
		Anchor: Offset{0, 0}, Variants: 2, Jitter: 1,
		Cells: []Offset{{-8, -1}, {-9, -2}, {-10, -3}, {8, -1}, {9, -2}, {10, -3}},
	},
	{
		Effect: creature.EffectTailBlade, Kind: EffectShimmer, Slot: SlotAccent,
		Anchor: Offset{0, 9}, Variants: 2, Jitter: 1,
		Cells:     []Offset{{0, 0}, {1, 1}, {2, 2}},
		AnimCells: 1,
	},
	{
		Effect: creature.EffectSmokeWisps, Kind: EffectOrbit, Slot: SlotShade,
		Anchor: Offset{0, 7}, Variants: 4, Jitter: 1,
		Particles: 3, AnimCells: 3,
	},
	{
		Effect: creature.EffectEmberEyes, Kind: EffectPulse, Slot: SlotEye,
		Anchor: Offset{0, -3}, Variants: 2, Jitter: 0,
		Cells:     []Offset{{-2, 0}, {2, 0}},
		AnimCells: 2,
	},
	{
		Effect: creature.EffectVoidVeil, Kind: EffectPulse, Slot: SlotShade,
		Anchor: Offset{0, 2}, Variants: 4, Jitter: 0,
		Cells:     []Offset{{0, -6}, {6, 0}, {0, 6}, {-6, 0}},
		AnimCells: 4,
	},
}
