package sprite

import (
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/engine"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rules"
)

// MaxFrameDelta bounds how many pixels may change between adjacent animation
// frames of a w by h frame, including the wrap from the last frame back to
// the first.
func MaxFrameDelta(w, h int) int {
	return w * h / 4
}

// effectMotion is the rolled animation direction and stride of one placed
// effect.
type effectMotion struct {
	dir    int
	stride int
}

// SequenceFrames renders the animation strip for a composed stage.
//
// A frame count of one returns just the base frame and consumes nothing from
// the state. Larger counts consume two draws per animated effect, direction
// then stride, in placement order, and then render every frame at its cyclic
// phase. Frame zero always equals comp.Base.
func SequenceFrames(state *engine.State, comp *StageComposition, frameCount int) []*pix.Pixmap {
	if frameCount <= 1 {
		return []*pix.Pixmap{comp.Base.Clone()}
	}

	motions := make([]effectMotion, len(comp.Effects))
	for idx, pe := range comp.Effects {
		if pe.Spec.Kind == rules.EffectBadge {
			continue
		}
		dir := 1
		if state.Intn(2) == 1 {
			dir = -1
		}
		motions[idx] = effectMotion{dir: dir, stride: 1 + state.Intn(2)}
	}

	frames := make([]*pix.Pixmap, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		frame := comp.static.Clone()
		for idx, pe := range comp.Effects {
			if pe.Spec.Kind == rules.EffectBadge {
				continue
			}
			m := motions[idx]
			renderEffectPhase(frame, pe, comp.palette, comp.Scale, comp.Size, i, m.dir, m.stride, frameCount)
		}
		frames = append(frames, frame)
	}
	return frames
}
