// Package rules holds the static generation rule tables: structural templates
// per (genre, archetype), palettes per (genre, rarity), evolution stage
// parameters, archetype accessory progressions, effect render specs, and the
// faculty ultra-rare plans. Tables are immutable after Load and safe to share
// across concurrent generation runs.
package rules

import (
	"sync"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
)

// Tables is one loaded, immutable rule set.
type Tables struct {
	templates   map[pairKey]*StructuralTemplate
	palettes    map[paletteKey]Palette
	stages      [creature.StageCount]StageParams
	accessories map[creature.Archetype][]AccessoryGrant
	effects     [creature.EffectCount]EffectSpec
	faculty     map[creature.FacultyRole]*FacultyPlan
}

type pairKey struct {
	genre     creature.Genre
	archetype creature.Archetype
}

type paletteKey struct {
	genre  creature.Genre
	rarity creature.Rarity
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the process-wide rule set, loading it on first use. The
// authored tables are static, so a load failure here is a programming error.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Load()
		if err != nil {
			panic(err)
		}
		defaultTables = t
	})
	return defaultTables
}

// Load parses the authored tables into an immutable rule set.
func Load() (*Tables, error) {
	t := &Tables{
		templates:   make(map[pairKey]*StructuralTemplate),
		palettes:    make(map[paletteKey]Palette),
		accessories: accessoryGrants,
		faculty:     make(map[creature.FacultyRole]*FacultyPlan),
	}

	for _, g := range creature.Genres() {
		for _, a := range creature.Archetypes() {
			t.templates[pairKey{g, a}] = composeTemplate(g, a)
		}
	}

	for _, g := range creature.Genres() {
		for _, r := range creature.Rarities() {
			p, err := composePalette(g, r)
			if err != nil {
				return nil, err
			}
			t.palettes[paletteKey{g, r}] = p
		}
	}

	copy(t.stages[:], stageRows[:])

	for _, spec := range effectSpecs {
		t.effects[spec.Effect] = spec
	}

	for role, plan := range facultyPlans {
		loaded, err := loadFacultyPlan(role, plan)
		if err != nil {
			return nil, err
		}
		t.faculty[role] = loaded
	}

	return t, nil
}

// Template returns the structural template for a (genre, archetype) pair.
func (t *Tables) Template(g creature.Genre, a creature.Archetype) (*StructuralTemplate, error) {
	tpl, ok := t.templates[pairKey{g, a}]
	if !ok {
		return nil, missingPair("template", g, a)
	}
	return tpl, nil
}

// Palette returns the palette for a (genre, rarity) pair.
func (t *Tables) Palette(g creature.Genre, r creature.Rarity) (Palette, error) {
	p, ok := t.palettes[paletteKey{g, r}]
	if !ok {
		return Palette{}, missingPair("palette", g, r)
	}
	return p, nil
}

// Stage returns the growth parameters for an evolution stage.
func (t *Tables) Stage(s creature.Stage) (StageParams, error) {
	if !s.Valid() {
		return StageParams{}, missingKey("stage", s.String())
	}
	return t.stages[s], nil
}

// Accessories returns every accessory effect the archetype has gained at or
// before the given stage. Accessories persist once gained. Archetypes without
// a progression row simply have no accessories.
func (t *Tables) Accessories(a creature.Archetype, s creature.Stage) creature.EffectSet {
	var set creature.EffectSet
	for _, grant := range t.accessories[a] {
		if grant.Stage <= s {
			set = set.With(grant.Effect)
		}
	}
	return set
}

// Effect returns the render spec for an effect.
func (t *Tables) Effect(e creature.Effect) (EffectSpec, error) {
	if !e.Valid() {
		return EffectSpec{}, missingKey("effect", e.String())
	}
	return t.effects[e], nil
}

// Faculty returns the ultra-rare plan for a faculty role.
func (t *Tables) Faculty(role creature.FacultyRole) (*FacultyPlan, error) {
	plan, ok := t.faculty[role]
	if !ok {
		return nil, missingKey("faculty", role.String())
	}
	return plan, nil
}
