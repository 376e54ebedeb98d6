package rules

import "github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"

// FacultyPlan is the genre-independent ultra-rare plan for one faculty role:
// a dedicated structural template, a dedicated palette, and the emblem
// effects the role always carries.
type FacultyPlan struct {
	Role     creature.FacultyRole
	Template *StructuralTemplate
	Palette  Palette
	Effects  creature.EffectSet
}

type facultyPlanSpec struct {
	shapes  []Shape
	hexes   [slotCount]string
	effects creature.EffectSet
}

var facultyPlans = map[creature.FacultyRole]facultyPlanSpec{
	creature.RoleWarbler: {
		shapes: []Shape{
			{Kind: ShapeLine, Slot: SlotShade, X: 0, Y: 8, W: -3, H: 11},
			{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: 3, W: 5, H: 5},
			{Kind: ShapeRect, Slot: SlotShade, X: -4, Y: 3, W: 3, H: 4, Mirror: true},
			{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: -4, W: 3, H: 3},
			{Kind: ShapeRect, Slot: SlotAccent, X: 4, Y: -4, W: 2, H: 1},
			{Kind: ShapeDot, Slot: SlotEye, X: -1, Y: -5, Mirror: true},
			{Kind: ShapeDot, Slot: SlotDetail, X: 7, Y: -8},
			{Kind: ShapeDot, Slot: SlotDetail, X: 9, Y: -10},
		},
		hexes: [slotCount]string{
			SlotOutline: "1f2430", SlotBody: "f2c14e", SlotShade: "c28f2c",
			SlotAccent: "4ea3f2", SlotEye: "fdfdfd", SlotDetail: "8a6d3b",
			SlotGlow: "ffe9a8",
		},
		effects: creature.NewEffectSet(creature.EffectSparkTrail),
	},
	creature.RoleArchivist: {
		shapes: []Shape{
			{Kind: ShapeRect, Slot: SlotShade, X: 0, Y: 3, W: 11, H: 8},
			{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: 3, W: 9, H: 6},
			{Kind: ShapeLine, Slot: SlotOutline, X: 0, Y: 0, W: 0, H: 6},
			{Kind: ShapeRect, Slot: SlotEye, X: -4, Y: 3, W: 3, H: 4, Mirror: true},
			{Kind: ShapeRing, Slot: SlotOutline, X: -2, Y: -6, W: 1, H: 1, Mirror: true},
			{Kind: ShapeLine, Slot: SlotAccent, X: -3, Y: 8, W: 3, H: 8},
		},
		hexes: [slotCount]string{
			SlotOutline: "241f1c", SlotBody: "d9c7a7", SlotShade: "a8906a",
			SlotAccent: "7a4fbf", SlotEye: "f5f5f5", SlotDetail: "4a4238",
			SlotGlow: "cdb9ff",
		},
		effects: creature.NewEffectSet(creature.EffectRuneCarving),
	},
	creature.RoleProvost: {
		shapes: []Shape{
			{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: 3, W: 8, H: 10},
			{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: -6, W: 3, H: 3},
			{Kind: ShapeLine, Slot: SlotDetail, X: 6, Y: -9, W: 6, H: 7},
			{Kind: ShapeDot, Slot: SlotGlow, X: 6, Y: -10},
			{Kind: ShapeLine, Slot: SlotAccent, X: -3, Y: 8, W: 3, H: 8},
			{Kind: ShapeDot, Slot: SlotEye, X: -1, Y: -6, Mirror: true},
		},
		hexes: [slotCount]string{
			SlotOutline: "2a1218", SlotBody: "a43a3a", SlotShade: "6e2424",
			SlotAccent: "e0b14b", SlotEye: "f8f0e0", SlotDetail: "53302a",
			SlotGlow: "ffd9a0",
		},
		effects: creature.NewEffectSet(creature.EffectWisdomAura),
	},
	creature.RoleChronicler: {
		shapes: []Shape{
			{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: 5, W: 10, H: 4},
			{Kind: ShapeRect, Slot: SlotShade, X: -5, Y: 5, W: 1, H: 4, Mirror: true},
			{Kind: ShapeLine, Slot: SlotAccent, X: -2, Y: -8, W: 4, H: -1},
			{Kind: ShapeDot, Slot: SlotOutline, X: 4, Y: 0},
			{Kind: ShapeDot, Slot: SlotGlow, X: 0, Y: -4},
			{Kind: ShapeDot, Slot: SlotAccent, X: -2, Y: -3, Mirror: true},
		},
		hexes: [slotCount]string{
			SlotOutline: "122426", SlotBody: "3f8f86", SlotShade: "246059",
			SlotAccent: "e4e0c8", SlotEye: "f2fffb", SlotDetail: "1d4a45",
			SlotGlow: "bff5ea",
		},
		effects: creature.NewEffectSet(creature.EffectEmberEyes),
	},
	creature.RoleGatekeeper: {
		shapes: []Shape{
			{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: 1, W: 9, H: 11},
			{Kind: ShapeDisc, Slot: SlotAccent, X: 0, Y: 0, W: 2, H: 2},
			{Kind: ShapeDot, Slot: SlotDetail, X: -3, Y: -4, Mirror: true},
			{Kind: ShapeDot, Slot: SlotDetail, X: -3, Y: 6, Mirror: true},
			{Kind: ShapeDisc, Slot: SlotOutline, X: 0, Y: 0, W: 1, H: 1},
			{Kind: ShapeRect, Slot: SlotOutline, X: 0, Y: 2, W: 1, H: 3},
			{Kind: ShapeLine, Slot: SlotAccent, X: 0, Y: -8, W: 0, H: -6},
		},
		hexes: [slotCount]string{
			SlotOutline: "1a1a1f", SlotBody: "6d7585", SlotShade: "454b59",
			SlotAccent: "ff8c42", SlotEye: "e8ecf5", SlotDetail: "2e333f",
			SlotGlow: "ffc59e",
		},
		effects: creature.NewEffectSet(creature.EffectBeacon),
	},
}

func loadFacultyPlan(role creature.FacultyRole, spec facultyPlanSpec) (*FacultyPlan, error) {
	pal, err := parsePalette("faculty/"+role.String(), spec.hexes)
	if err != nil {
		return nil, err
	}
	return &FacultyPlan{
		Role:     role,
		Template: &StructuralTemplate{Archetype: creature.ArchetypeUnknown, Shapes: spec.shapes},
		Palette:  pal,
		Effects:  spec.effects,
	}, nil
}
