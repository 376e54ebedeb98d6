package rules

import (
	"math"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
)

// StageParams are the growth parameters of one evolution stage. Along the
// stage ordering both SizeScale and SaturationBoost are non-decreasing;
// that monotonicity is part of the output contract.
type StageParams struct {
	Stage           creature.Stage
	SizeScale       float64
	SaturationBoost float64
	Effects         creature.EffectSet
}

// ScalePermille returns the size scale as integer per-mille for the
// integer-only pixel path.
func (p StageParams) ScalePermille() int {
	return int(math.Round(p.SizeScale * 1000))
}

// BoostPercent returns the saturation boost as an integer percentage.
func (p StageParams) BoostPercent() int {
	return int(math.Round(p.SaturationBoost * 100))
}

var stageRows = [creature.StageCount]StageParams{
	{Stage: creature.StageEgg, SizeScale: 0.55, SaturationBoost: 0.00,
		Effects: creature.NewEffectSet(creature.EffectShellCrack)},
	{Stage: creature.StageHatchling, SizeScale: 0.70, SaturationBoost: 0.05},
	{Stage: creature.StageJuvenile, SizeScale: 0.85, SaturationBoost: 0.10},
	{Stage: creature.StageAdult, SizeScale: 1.00, SaturationBoost: 0.15},
	{Stage: creature.StageElder, SizeScale: 1.10, SaturationBoost: 0.22,
		Effects: creature.NewEffectSet(creature.EffectWisdomAura)},
	{Stage: creature.StageLegendary, SizeScale: 1.20, SaturationBoost: 0.30,
		Effects: creature.NewEffectSet(creature.EffectDivineRadiance)},
}

// AccessoryGrant marks the stage at which an archetype gains an accessory
// effect. Gained accessories persist through every later stage.
type AccessoryGrant struct {
	Stage  creature.Stage
	Effect creature.Effect
}

var accessoryGrants = map[creature.Archetype][]AccessoryGrant{
	creature.ArchetypeFamiliar: {
		{Stage: creature.StageHatchling, Effect: creature.EffectCollar},
		{Stage: creature.StageAdult, Effect: creature.EffectMane},
		{Stage: creature.StageLegendary, Effect: creature.EffectRadiantAura},
	},
	creature.ArchetypeWisp: {
		{Stage: creature.StageHatchling, Effect: creature.EffectEmber},
		{Stage: creature.StageJuvenile, Effect: creature.EffectSparkTrail},
		{Stage: creature.StageElder, Effect: creature.EffectFlameCrown},
	},
	creature.ArchetypeGolem: {
		{Stage: creature.StageJuvenile, Effect: creature.EffectRuneCarving},
		{Stage: creature.StageAdult, Effect: creature.EffectMossGrowth},
		{Stage: creature.StageElder, Effect: creature.EffectCrystalGrowth},
	},
	creature.ArchetypeSentinel: {
		{Stage: creature.StageHatchling, Effect: creature.EffectVisor},
		{Stage: creature.StageAdult, Effect: creature.EffectShoulderPlates},
		{Stage: creature.StageLegendary, Effect: creature.EffectBeacon},
	},
	creature.ArchetypeDrake: {
		{Stage: creature.StageJuvenile, Effect: creature.EffectHorns},
		{Stage: creature.StageAdult, Effect: creature.EffectWings},
		{Stage: creature.StageElder, Effect: creature.EffectTailBlade},
	},
	creature.ArchetypeShade: {
		{Stage: creature.StageHatchling, Effect: creature.EffectSmokeWisps},
		{Stage: creature.StageJuvenile, Effect: creature.EffectEmberEyes},
		{Stage: creature.StageElder, Effect: creature.EffectVoidVeil},
	},
}
