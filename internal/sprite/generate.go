// Package sprite renders deterministic creature sprite sheets. A provenance
// record seeds a keyed byte stream, the rule tables supply the structural and
// color vocabulary, and the compose/sequence/pack pipeline turns both into a
// packed sheet with frame geometry and searchable traits. Equal inputs yield
// byte-identical sheets on every platform, and independent calls are safe to
// run concurrently.
package sprite

import (
	"strconv"
	"strings"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/engine"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rarity"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rules"
)

// GenerationResult is everything one run produces. It is immutable once
// returned; rendering never retains references to it.
type GenerationResult struct {
	Sheet      *pix.Pixmap
	FrameRects []FrameRect
	Traits     map[string]string
	SeedUsed   []byte
	SeedDigest string
}

type options struct {
	tables *rules.Tables
}

// Option adjusts how Generate runs.
type Option func(*options)

// WithTables substitutes the rule tables, mainly for tests.
func WithTables(t *rules.Tables) Option {
	return func(o *options) { o.tables = t }
}

// Generate renders the sheet described by spec, seeded by the provenance
// bytes. The deterministic stream is consumed strictly in ascending stage
// order: each stage composes, then sequences, before the next stage begins.
func Generate(provenance []byte, spec SpriteSpec, opts ...Option) (*GenerationResult, error) {
	opt := options{tables: rules.Default()}
	for _, o := range opts {
		o(&opt)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	norm := spec.normalized()

	state, err := engine.DeriveState(provenance)
	if err != nil {
		return nil, err
	}

	stages := norm.Mode.Stages()
	rows := make([]StageFrames, 0, len(stages))
	var placed creature.EffectSet
	for _, stage := range stages {
		comp, err := Compose(state, opt.tables, norm, stage)
		if err != nil {
			return nil, err
		}
		for _, pe := range comp.Effects {
			placed = placed.With(pe.Spec.Effect)
		}
		rows = append(rows, StageFrames{
			Stage:  stage,
			Frames: SequenceFrames(state, comp, norm.FramesPerStage),
		})
	}

	sheet, rects, err := Pack(rows, norm.FramesPerStage, norm.FrameSize)
	if err != nil {
		return nil, err
	}

	seed := make([]byte, len(provenance))
	copy(seed, provenance)

	return &GenerationResult{
		Sheet:      sheet,
		FrameRects: rects,
		Traits:     buildTraits(norm, len(stages), placed),
		SeedUsed:   seed,
		SeedDigest: state.Digest(),
	}, nil
}

// buildTraits flattens the generation inputs and the rolled effect union into
// the string map consumers index and filter on.
func buildTraits(spec SpriteSpec, stageCount int, placed creature.EffectSet) map[string]string {
	traits := map[string]string{
		"mode":           spec.Mode.String(),
		"rarity":         spec.Rarity.String(),
		"framesPerStage": strconv.Itoa(spec.FramesPerStage),
		"frameSize":      strconv.Itoa(spec.FrameSize),
		"stageCount":     strconv.Itoa(stageCount),
		"rarityScore":    rarity.Score(spec.Rarity, placed.Count()).String(),
	}
	if spec.Mode == ModeFacultyUltraRare {
		traits["facultyRole"] = spec.Role.String()
		traits["uniqueId"] = spec.UniqueID
	} else {
		traits["genre"] = spec.Genre.String()
		traits["archetype"] = spec.Archetype.String()
	}
	if placed.Count() > 0 {
		traits["effects"] = strings.Join(placed.Names(), "+")
	}
	return traits
}
