package rules

import (
	"errors"
	"testing"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
)

func TestStageParams(t *testing.T) {
	tables := Default()

	wantScale := [creature.StageCount]int{550, 700, 850, 1000, 1100, 1200}
	wantBoost := [creature.StageCount]int{0, 5, 10, 15, 22, 30}

	for i, stage := range creature.Stages() {
		params, err := tables.Stage(stage)
		if err != nil {
			t.Fatalf("Stage(%s) returned error: %v", stage, err)
		}
		if params.Stage != stage {
			t.Errorf("Stage(%s) labeled %s", stage, params.Stage)
		}
		if got := params.ScalePermille(); got != wantScale[i] {
			t.Errorf("Stage(%s) ScalePermille = %d, want %d", stage, got, wantScale[i])
		}
		if got := params.BoostPercent(); got != wantBoost[i] {
			t.Errorf("Stage(%s) BoostPercent = %d, want %d", stage, got, wantBoost[i])
		}
	}
}

func TestStageProgressionMonotonic(t *testing.T) {
	tables := Default()
	prev, err := tables.Stage(creature.StageEgg)
	if err != nil {
		t.Fatalf("Stage returned error: %v", err)
	}
	for _, stage := range creature.Stages()[1:] {
		cur, err := tables.Stage(stage)
		if err != nil {
			t.Fatalf("Stage(%s) returned error: %v", stage, err)
		}
		if cur.SizeScale < prev.SizeScale {
			t.Errorf("SizeScale shrinks from %s (%v) to %s (%v)",
				prev.Stage, prev.SizeScale, stage, cur.SizeScale)
		}
		if cur.SaturationBoost < prev.SaturationBoost {
			t.Errorf("SaturationBoost shrinks from %s (%v) to %s (%v)",
				prev.Stage, prev.SaturationBoost, stage, cur.SaturationBoost)
		}
		prev = cur
	}
}

func TestStageBaseEffects(t *testing.T) {
	tables := Default()

	cases := []struct {
		stage creature.Stage
		want  creature.EffectSet
	}{
		{creature.StageEgg, creature.NewEffectSet(creature.EffectShellCrack)},
		{creature.StageHatchling, creature.NewEffectSet()},
		{creature.StageJuvenile, creature.NewEffectSet()},
		{creature.StageAdult, creature.NewEffectSet()},
		{creature.StageElder, creature.NewEffectSet(creature.EffectWisdomAura)},
		{creature.StageLegendary, creature.NewEffectSet(creature.EffectDivineRadiance)},
	}
	for _, tc := range cases {
		params, err := tables.Stage(tc.stage)
		if err != nil {
			t.Fatalf("Stage(%s) returned error: %v", tc.stage, err)
		}
		if params.Effects != tc.want {
			t.Errorf("Stage(%s) effects = %s, want %s", tc.stage, params.Effects, tc.want)
		}
	}
}

func TestStageInvalid(t *testing.T) {
	tables := Default()
	_, err := tables.Stage(creature.Stage(99))
	if err == nil {
		t.Fatal("Expected error for out-of-range stage")
	}
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("Expected *ConfigurationError, got %T", err)
	}
}

func TestAccessoryProgression(t *testing.T) {
	tables := Default()

	// Once granted, an accessory stays for every later stage.
	for _, a := range creature.Archetypes() {
		prev := creature.NewEffectSet()
		for _, stage := range creature.Stages() {
			cur := tables.Accessories(a, stage)
			for _, e := range prev.Effects() {
				if !cur.Has(e) {
					t.Errorf("%s loses %s at stage %s", a, e, stage)
				}
			}
			prev = cur
		}
		if prev.Count() != 3 {
			t.Errorf("%s has %d accessories at Legendary, want 3", a, prev.Count())
		}
	}
}

func TestAccessoriesFamiliar(t *testing.T) {
	tables := Default()

	cases := []struct {
		stage creature.Stage
		want  creature.EffectSet
	}{
		{creature.StageEgg, creature.NewEffectSet()},
		{creature.StageHatchling, creature.NewEffectSet(creature.EffectCollar)},
		{creature.StageJuvenile, creature.NewEffectSet(creature.EffectCollar)},
		{creature.StageAdult, creature.NewEffectSet(creature.EffectCollar, creature.EffectMane)},
		{creature.StageElder, creature.NewEffectSet(creature.EffectCollar, creature.EffectMane)},
		{creature.StageLegendary, creature.NewEffectSet(
			creature.EffectCollar, creature.EffectMane, creature.EffectRadiantAura)},
	}
	for _, tc := range cases {
		got := tables.Accessories(creature.ArchetypeFamiliar, tc.stage)
		if got != tc.want {
			t.Errorf("Accessories(Familiar, %s) = %s, want %s", tc.stage, got, tc.want)
		}
	}
}

func TestAccessoriesUnknownArchetype(t *testing.T) {
	tables := Default()
	got := tables.Accessories(creature.ArchetypeUnknown, creature.StageLegendary)
	if got.Count() != 0 {
		t.Errorf("Accessories(Unknown, Legendary) = %s, want empty", got)
	}
}

func TestConcurrentEffectCap(t *testing.T) {
	tables := Default()

	// A stage never renders more than four effects at once: at most one
	// stage marker plus three accumulated accessories.
	for _, a := range creature.Archetypes() {
		for _, stage := range creature.Stages() {
			params, err := tables.Stage(stage)
			if err != nil {
				t.Fatalf("Stage(%s) returned error: %v", stage, err)
			}
			set := params.Effects.Union(tables.Accessories(a, stage))
			if set.Count() > 4 {
				t.Errorf("%s at %s renders %d effects: %s", a, stage, set.Count(), set)
			}
		}
	}
}
