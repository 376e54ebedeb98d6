package rules

import (
	"fmt"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
)

// Palette is one resolved color set, indexed by PaletteSlot.
type Palette struct {
	colors [slotCount]pix.Color
}

// Color returns the color bound to a slot. Unknown slots resolve to the
// outline color so a bad slot is visible rather than invisible.
func (p Palette) Color(slot PaletteSlot) pix.Color {
	if slot < 0 || slot >= slotCount {
		return p.colors[SlotOutline]
	}
	return p.colors[slot]
}

// Saturate returns a copy with every slot boosted by pct percent.
func (p Palette) Saturate(pct int) Palette {
	var out Palette
	for i, c := range p.colors {
		out.colors[i] = c.Saturate(pct)
	}
	return out
}

// genreCoreHex authors the stable slots of each genre palette:
// outline, body, shade, eye, detail. Accent and glow come from the
// per-rarity trim table.
var genreCoreHex = map[creature.Genre][5]string{
	creature.GenreSciFi:     {"1b2735", "5aa9e6", "2e6f9e", "e8f7ff", "9bd1ff"},
	creature.GenreFantasy:   {"2d1e2f", "7bc47f", "4a8f50", "fff8e7", "c9a86a"},
	creature.GenreSteampunk: {"3b2a1a", "c08a3e", "8a5a24", "f5e9d0", "6e5a44"},
	creature.GenreCyberpunk: {"14101f", "b14aed", "6f2dbd", "f7f7ff", "3ddad7"},
}

// rarityTrimHex authors the accent and glow colors per (genre, rarity) pair.
// Every pair must be present; composePalette fails the load otherwise.
var rarityTrimHex = map[paletteKey][2]string{
	{creature.GenreSciFi, creature.RarityCommon}:    {"7fb4d9", "a8d8f0"},
	{creature.GenreSciFi, creature.RarityUncommon}:  {"6ec1ff", "b5e3ff"},
	{creature.GenreSciFi, creature.RarityRare}:      {"41a7ff", "9fe0ff"},
	{creature.GenreSciFi, creature.RarityEpic}:      {"2bd9ff", "c4f4ff"},
	{creature.GenreSciFi, creature.RarityLegendary}: {"ffd75e", "fff3c2"},

	{creature.GenreFantasy, creature.RarityCommon}:    {"a3c585", "d8ecc0"},
	{creature.GenreFantasy, creature.RarityUncommon}:  {"8fd175", "c9f0b0"},
	{creature.GenreFantasy, creature.RarityRare}:      {"5ebf6e", "b2f0c0"},
	{creature.GenreFantasy, creature.RarityEpic}:      {"49d9a6", "c8f7e6"},
	{creature.GenreFantasy, creature.RarityLegendary}: {"ffd75e", "ffedad"},

	{creature.GenreSteampunk, creature.RarityCommon}:    {"b98b50", "e3c592"},
	{creature.GenreSteampunk, creature.RarityUncommon}:  {"c99a45", "edd3a0"},
	{creature.GenreSteampunk, creature.RarityRare}:      {"d9a832", "f5dfa8"},
	{creature.GenreSteampunk, creature.RarityEpic}:      {"e6b954", "fbe9bd"},
	{creature.GenreSteampunk, creature.RarityLegendary}: {"ffd75e", "fff0b8"},

	{creature.GenreCyberpunk, creature.RarityCommon}:    {"d45fa8", "f0a8d0"},
	{creature.GenreCyberpunk, creature.RarityUncommon}:  {"e44fd0", "f7b8ec"},
	{creature.GenreCyberpunk, creature.RarityRare}:      {"ff3df0", "ffb3f9"},
	{creature.GenreCyberpunk, creature.RarityEpic}:      {"29f1ff", "baf9ff"},
	{creature.GenreCyberpunk, creature.RarityLegendary}: {"ffe45e", "fff6bd"},
}

func composePalette(g creature.Genre, r creature.Rarity) (Palette, error) {
	core, ok := genreCoreHex[g]
	if !ok {
		return Palette{}, missingKey("palette core", g.String())
	}
	trim, ok := rarityTrimHex[paletteKey{g, r}]
	if !ok {
		return Palette{}, missingPair("palette trim", g, r)
	}

	hexes := [slotCount]string{
		SlotOutline: core[0],
		SlotBody:    core[1],
		SlotShade:   core[2],
		SlotAccent:  trim[0],
		SlotEye:     core[3],
		SlotDetail:  core[4],
		SlotGlow:    trim[1],
	}
	return parsePalette(fmt.Sprintf("%s/%s", g, r), hexes)
}

func parsePalette(name string, hexes [slotCount]string) (Palette, error) {
	var p Palette
	for slot, hex := range hexes {
		c, err := pix.Hex(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s slot %s: %w", name, PaletteSlot(slot), err)
		}
		p.colors[slot] = c
	}
	return p, nil
}
