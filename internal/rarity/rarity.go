// Package rarity defines the scarcity model shared by sprite traits and batch
// drops: per-tier weights, drop rates, and the derived rarity score. Rates and
// weights are decimal so aggregate reports stay exact.
package rarity

import (
	"github.com/shopspring/decimal"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
)

// weights express how much scarcer a tier is than Common.
var weights = map[creature.Rarity]decimal.Decimal{
	creature.RarityCommon:    decimal.RequireFromString("1"),
	creature.RarityUncommon:  decimal.RequireFromString("2.4"),
	creature.RarityRare:      decimal.RequireFromString("6"),
	creature.RarityEpic:      decimal.RequireFromString("15"),
	creature.RarityLegendary: decimal.RequireFromString("60"),
}

// dropRates are the per-tier drop percentages. They sum to exactly 100.
var dropRates = map[creature.Rarity]decimal.Decimal{
	creature.RarityCommon:    decimal.RequireFromString("60"),
	creature.RarityUncommon:  decimal.RequireFromString("25"),
	creature.RarityRare:      decimal.RequireFromString("10"),
	creature.RarityEpic:      decimal.RequireFromString("4"),
	creature.RarityLegendary: decimal.RequireFromString("1"),
}

// pickThresholds are cumulative drop-rate bounds over a [0, 100) roll.
var pickThresholds = []struct {
	limit int
	tier  creature.Rarity
}{
	{60, creature.RarityCommon},
	{85, creature.RarityUncommon},
	{95, creature.RarityRare},
	{99, creature.RarityEpic},
}

// Weight returns the scarcity weight of a tier relative to Common.
// Unknown tiers weigh zero.
func Weight(r creature.Rarity) decimal.Decimal {
	if w, ok := weights[r]; ok {
		return w
	}
	return decimal.Zero
}

// DropRate returns the drop percentage for a tier. Unknown tiers are zero.
func DropRate(r creature.Rarity) decimal.Decimal {
	if rate, ok := dropRates[r]; ok {
		return rate
	}
	return decimal.Zero
}

// Pick maps an integer roll in [0, 100) onto a tier according to the drop
// rates. Rolls at or above 100 land on Legendary, negative rolls on Common.
func Pick(roll int) creature.Rarity {
	for _, t := range pickThresholds {
		if roll < t.limit {
			return t.tier
		}
	}
	return creature.RarityLegendary
}

// Score is the trait-facing rarity score: the tier weight scaled up by the
// number of visual effects the sprite carries. Ten effects double the base
// weight.
func Score(r creature.Rarity, effectCount int) decimal.Decimal {
	if effectCount < 0 {
		effectCount = 0
	}
	scale := decimal.NewFromInt(10 + int64(effectCount))
	return Weight(r).Mul(scale).Div(decimal.NewFromInt(10))
}
