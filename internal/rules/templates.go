package rules

import (
	"fmt"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
)

// PaletteSlot names one color role inside a palette. Shapes and effects
// reference slots, never concrete colors, so the same template renders under
// any palette.
type PaletteSlot int

const (
	SlotOutline PaletteSlot = iota
	SlotBody
	SlotShade
	SlotAccent
	SlotEye
	SlotDetail
	SlotGlow

	slotCount
)

// SlotCount is the number of palette slots.
const SlotCount = int(slotCount)

var slotNames = [slotCount]string{
	"outline", "body", "shade", "accent", "eye", "detail", "glow",
}

func (s PaletteSlot) String() string {
	if s >= 0 && s < slotCount {
		return slotNames[s]
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// ShapeKind selects the drawing primitive of a template shape.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeDisc
	ShapeRing
	ShapeLine
	ShapeDot
)

// Shape is one primitive of a structural template, authored on a 24-unit
// design grid as integer offsets from the frame center (negative Y is up).
// Field meaning varies by kind:
//
//	Rect: X,Y center, W,H full extents
//	Disc: X,Y center, W,H radii
//	Ring: X,Y center, W outer radius, H ring thickness
//	Line: X,Y start point, W,H end point
//	Dot:  X,Y position
//
// Mirror additionally draws every pixel reflected across the vertical frame
// axis. Shapes render in list order, later shapes over earlier ones.
type Shape struct {
	Kind   ShapeKind
	Slot   PaletteSlot
	X, Y   int
	W, H   int
	Mirror bool
}

// StructuralTemplate is the ordered shape list for one (genre, archetype)
// pair: the archetype body plan with the genre motif layered on top.
type StructuralTemplate struct {
	Genre     creature.Genre
	Archetype creature.Archetype
	Shapes    []Shape
}

func composeTemplate(g creature.Genre, a creature.Archetype) *StructuralTemplate {
	body := bodyPlans[a]
	motif := genreMotifs[g]
	shapes := make([]Shape, 0, len(body)+len(motif))
	shapes = append(shapes, body...)
	shapes = append(shapes, motif...)
	return &StructuralTemplate{Genre: g, Archetype: a, Shapes: shapes}
}

// bodyPlans carry the archetype silhouettes. Core mass stays within ±9 grid
// units so even the Legendary growth scale keeps the body inside the frame.
var bodyPlans = map[creature.Archetype][]Shape{
	creature.ArchetypeFamiliar: {
		{Kind: ShapeLine, Slot: SlotShade, X: 5, Y: 6, W: 9, H: 1},
		{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: 4, W: 5, H: 5},
		{Kind: ShapeDisc, Slot: SlotDetail, X: 0, Y: 6, W: 2, H: 2},
		{Kind: ShapeRect, Slot: SlotBody, X: -3, Y: -8, W: 2, H: 3, Mirror: true},
		{Kind: ShapeDot, Slot: SlotDetail, X: -3, Y: -8, Mirror: true},
		{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: -3, W: 4, H: 4},
		{Kind: ShapeDot, Slot: SlotEye, X: -2, Y: -3, Mirror: true},
		{Kind: ShapeDot, Slot: SlotShade, X: -2, Y: 9, Mirror: true},
	},
	creature.ArchetypeWisp: {
		{Kind: ShapeRing, Slot: SlotAccent, X: 0, Y: 0, W: 5, H: 1},
		{Kind: ShapeDisc, Slot: SlotGlow, X: 0, Y: 0, W: 3, H: 3},
		{Kind: ShapeRect, Slot: SlotAccent, X: 0, Y: -5, W: 2, H: 3},
		{Kind: ShapeDot, Slot: SlotDetail, X: -5, Y: -2, Mirror: true},
		{Kind: ShapeDot, Slot: SlotShade, X: 0, Y: 5},
		{Kind: ShapeDot, Slot: SlotShade, X: 0, Y: 7},
		{Kind: ShapeDot, Slot: SlotEye, X: -1, Y: -1, Mirror: true},
	},
	creature.ArchetypeGolem: {
		{Kind: ShapeRect, Slot: SlotShade, X: -7, Y: 1, W: 3, H: 6, Mirror: true},
		{Kind: ShapeRect, Slot: SlotShade, X: -3, Y: 8, W: 3, H: 4, Mirror: true},
		{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: 1, W: 10, H: 8},
		{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: -7, W: 6, H: 4},
		{Kind: ShapeLine, Slot: SlotOutline, X: -2, Y: -8, W: 2, H: -8},
		{Kind: ShapeDot, Slot: SlotEye, X: -1, Y: -7, Mirror: true},
		{Kind: ShapeDisc, Slot: SlotAccent, X: 0, Y: 1, W: 2, H: 2},
		{Kind: ShapeLine, Slot: SlotOutline, X: 3, Y: 3, W: 5, H: 5},
	},
	creature.ArchetypeSentinel: {
		{Kind: ShapeRect, Slot: SlotShade, X: 0, Y: 9, W: 10, H: 3},
		{Kind: ShapeRect, Slot: SlotShade, X: -6, Y: -2, W: 2, H: 5, Mirror: true},
		{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: 2, W: 8, H: 12},
		{Kind: ShapeRect, Slot: SlotBody, X: 0, Y: -7, W: 6, H: 3},
		{Kind: ShapeLine, Slot: SlotEye, X: -2, Y: -7, W: 2, H: -7},
		{Kind: ShapeLine, Slot: SlotAccent, X: 0, Y: -11, W: 0, H: -9},
		{Kind: ShapeDot, Slot: SlotGlow, X: 0, Y: 2},
	},
	creature.ArchetypeDrake: {
		{Kind: ShapeRect, Slot: SlotShade, X: -9, Y: 0, W: 3, H: 7, Mirror: true},
		{Kind: ShapeDot, Slot: SlotAccent, X: -10, Y: -4, Mirror: true},
		{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: 3, W: 6, H: 6},
		{Kind: ShapeDisc, Slot: SlotDetail, X: 0, Y: 5, W: 3, H: 3},
		{Kind: ShapeLine, Slot: SlotShade, X: 0, Y: 9, W: 3, H: 11},
		{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: -5, W: 4, H: 4},
		{Kind: ShapeRect, Slot: SlotShade, X: 0, Y: -2, W: 4, H: 2},
		{Kind: ShapeDot, Slot: SlotOutline, X: -1, Y: -2, Mirror: true},
		{Kind: ShapeDot, Slot: SlotEye, X: -2, Y: -6, Mirror: true},
	},
	creature.ArchetypeShade: {
		{Kind: ShapeRect, Slot: SlotShade, X: 0, Y: 5, W: 9, H: 7},
		{Kind: ShapeDot, Slot: SlotShade, X: -3, Y: 9, Mirror: true},
		{Kind: ShapeDot, Slot: SlotShade, X: 0, Y: 10},
		{Kind: ShapeDisc, Slot: SlotBody, X: 0, Y: -2, W: 6, H: 6},
		{Kind: ShapeRing, Slot: SlotOutline, X: 0, Y: -2, W: 6, H: 1},
		{Kind: ShapeDot, Slot: SlotGlow, X: -2, Y: -3, Mirror: true},
		{Kind: ShapeDot, Slot: SlotAccent, X: 0, Y: 1},
	},
}

// genreMotifs are small overlays drawn on top of every body plan of the genre.
var genreMotifs = map[creature.Genre][]Shape{
	creature.GenreSciFi: {
		{Kind: ShapeLine, Slot: SlotDetail, X: 0, Y: -11, W: 0, H: -9},
		{Kind: ShapeDot, Slot: SlotGlow, X: 0, Y: -11},
		{Kind: ShapeLine, Slot: SlotAccent, X: -3, Y: 6, W: 3, H: 6},
	},
	creature.GenreFantasy: {
		{Kind: ShapeLine, Slot: SlotDetail, X: 0, Y: -11, W: 0, H: -10},
		{Kind: ShapeDot, Slot: SlotAccent, X: 1, Y: -11},
		{Kind: ShapeDot, Slot: SlotDetail, X: 0, Y: 8},
	},
	creature.GenreSteampunk: {
		{Kind: ShapeRing, Slot: SlotDetail, X: 7, Y: -6, W: 2, H: 1},
		{Kind: ShapeDot, Slot: SlotShade, X: 7, Y: -6},
		{Kind: ShapeDot, Slot: SlotDetail, X: -5, Y: 2, Mirror: true},
	},
	creature.GenreCyberpunk: {
		{Kind: ShapeLine, Slot: SlotGlow, X: -3, Y: -5, W: 3, H: -5},
		{Kind: ShapeDot, Slot: SlotAccent, X: 6, Y: -2},
		{Kind: ShapeLine, Slot: SlotGlow, X: -4, Y: 9, W: 4, H: 9},
	},
}
