package sprite

import (
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
)

// StageFrames is one sheet row: a stage and its rendered animation frames.
type StageFrames struct {
	Stage  creature.Stage
	Frames []*pix.Pixmap
}

// FrameRect locates one frame inside a packed sheet.
type FrameRect struct {
	Stage creature.Stage `json:"stage"`
	Frame int            `json:"frame"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	W     int            `json:"w"`
	H     int            `json:"h"`
}

// Pack lays stage rows out as one sheet: a row per stage in the order given,
// a column per animation frame, no gaps. Every row must hold framesPerStage
// frames with a frameSize edge, or packing fails with a *LayoutError.
func Pack(rows []StageFrames, framesPerStage, frameSize int) (*pix.Pixmap, []FrameRect, error) {
	if len(rows) == 0 {
		return nil, nil, &LayoutError{Stage: creature.Stage(-1), What: "stage rows", Got: 0, Want: 1}
	}
	if framesPerStage < 1 {
		return nil, nil, &LayoutError{Stage: creature.Stage(-1), What: "frames per stage", Got: framesPerStage, Want: 1}
	}

	sheet := pix.NewPixmap(framesPerStage*frameSize, len(rows)*frameSize)
	rects := make([]FrameRect, 0, len(rows)*framesPerStage)
	for r, row := range rows {
		if len(row.Frames) != framesPerStage {
			return nil, nil, &LayoutError{Stage: row.Stage, What: "frame count", Got: len(row.Frames), Want: framesPerStage}
		}
		for c, frame := range row.Frames {
			if frame.Width() != frameSize || frame.Height() != frameSize {
				return nil, nil, &LayoutError{Stage: row.Stage, What: "frame edge", Got: frame.Width(), Want: frameSize}
			}
			x, y := c*frameSize, r*frameSize
			sheet.Blit(frame, x, y)
			rects = append(rects, FrameRect{Stage: row.Stage, Frame: c, X: x, Y: y, W: frameSize, H: frameSize})
		}
	}
	return sheet, rects, nil
}
