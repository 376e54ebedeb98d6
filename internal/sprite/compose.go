package sprite

import (
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/engine"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rules"
)

// white is the highlight target shimmer glints and pulse ramps blend toward.
var white = pix.Color{R: 255, G: 255, B: 255, A: 255}

// PlacedEffect is one effect bound to the variant and jitter rolled for it.
type PlacedEffect struct {
	Spec    rules.EffectSpec
	Variant int
	JX, JY  int
}

// StageComposition is one composed evolution stage: the rolled effect
// placements plus the rendered base frame.
//
// Base is the frame-zero render, every static element plus each animated
// element at phase zero. The static layer alone is kept so the sequencer can
// re-render animated elements at later phases without disturbing rest pixels.
type StageComposition struct {
	Stage   creature.Stage
	Size    int
	Scale   int // growth scale in permille
	Effects []PlacedEffect
	Base    *pix.Pixmap

	static  *pix.Pixmap
	palette rules.Palette
}

// Compose renders the base frame for one evolution stage. It consumes exactly
// three draws per effect (variant, x jitter, y jitter), walking the effect
// set in ascending order. Animated elements always render above static
// detail, in the same order the sequencer uses, so frame zero of any
// animation strip equals Base byte for byte.
func Compose(state *engine.State, tables *rules.Tables, spec SpriteSpec, stage creature.Stage) (*StageComposition, error) {
	spec = spec.normalized()
	params, err := tables.Stage(stage)
	if err != nil {
		return nil, err
	}

	var (
		template *rules.StructuralTemplate
		palette  rules.Palette
		effects  creature.EffectSet
	)
	if spec.Mode == ModeFacultyUltraRare {
		plan, err := tables.Faculty(spec.Role)
		if err != nil {
			return nil, err
		}
		template = plan.Template
		palette = plan.Palette
		effects = plan.Effects.Union(params.Effects)
	} else {
		template, err = tables.Template(spec.Genre, spec.Archetype)
		if err != nil {
			return nil, err
		}
		palette, err = tables.Palette(spec.Genre, spec.Rarity)
		if err != nil {
			return nil, err
		}
		effects = params.Effects.Union(tables.Accessories(spec.Archetype, stage))
	}

	comp := &StageComposition{
		Stage:   stage,
		Size:    spec.FrameSize,
		Scale:   params.ScalePermille(),
		static:  pix.NewPixmap(spec.FrameSize, spec.FrameSize),
		palette: palette.Saturate(params.BoostPercent()),
	}

	for _, sh := range template.Shapes {
		renderShape(comp.static, sh, comp.palette.Color(sh.Slot), comp.Scale, comp.Size)
	}

	for _, e := range effects.Effects() {
		es, err := tables.Effect(e)
		if err != nil {
			return nil, err
		}
		pe := PlacedEffect{
			Spec:    es,
			Variant: state.Intn(es.Variants),
			JX:      state.Intn(2*es.Jitter+1) - es.Jitter,
			JY:      state.Intn(2*es.Jitter+1) - es.Jitter,
		}
		comp.Effects = append(comp.Effects, pe)
		renderEffectStatic(comp.static, pe, comp.palette, comp.Scale, comp.Size)
	}

	comp.Base = comp.static.Clone()
	for _, pe := range comp.Effects {
		renderEffectPhase(comp.Base, pe, comp.palette, comp.Scale, comp.Size, 0, 1, 1, 1)
	}
	return comp, nil
}

// renderEffectStatic draws the parts of an effect that never move: badge
// patterns and the cell run a shimmer glint walks along.
func renderEffectStatic(dst *pix.Pixmap, pe PlacedEffect, pal rules.Palette, permille, size int) {
	es := pe.Spec
	switch es.Kind {
	case rules.EffectBadge, rules.EffectShimmer:
		c := pal.Color(es.Slot)
		for _, cell := range es.Cells {
			drawCell(dst, es.Anchor.X+pe.JX+cell.X, es.Anchor.Y+pe.JY+cell.Y, c, permille, size)
		}
	}
}

// renderEffectPhase draws the moving parts of an effect at animation phase i.
// Every phase term vanishes at i zero and completes whole cycles at
// i equal to frameCount, for any direction or stride, which is what makes
// frame zero equal the base and the strip loop cleanly.
func renderEffectPhase(dst *pix.Pixmap, pe PlacedEffect, pal rules.Palette, permille, size, i, dir, stride, frameCount int) {
	es := pe.Spec
	ax := es.Anchor.X + pe.JX
	ay := es.Anchor.Y + pe.JY

	switch es.Kind {
	case rules.EffectOrbit:
		ring := rules.OrbitRing()
		c := pal.Color(es.Slot)
		phase := dir * (i * rules.OrbitSlots * stride) / frameCount
		for k := 0; k < es.Particles; k++ {
			slot := mod(pe.Variant*4+k*rules.OrbitSlots/es.Particles+phase, rules.OrbitSlots)
			drawCell(dst, ax+ring[slot].X, ay+ring[slot].Y, c, permille, size)
		}
	case rules.EffectPulse:
		ramp := rules.PulseRamp()
		phase := dir * (i * len(ramp) * stride) / frameCount
		idx := mod(pe.Variant+phase, len(ramp))
		c := pal.Color(es.Slot).Blend(white, ramp[idx], rules.PulseRampDen)
		for _, cell := range es.Cells {
			drawCell(dst, ax+cell.X, ay+cell.Y, c, permille, size)
		}
	case rules.EffectShimmer:
		n := len(es.Cells)
		phase := dir * (i * n * stride) / frameCount
		idx := mod(pe.Variant+phase, n)
		c := pal.Color(es.Slot).Blend(white, 3, 4)
		drawCell(dst, ax+es.Cells[idx].X, ay+es.Cells[idx].Y, c, permille, size)
	}
}
