package export

import (
	"encoding/json"
	"fmt"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
)

// Atlas is the JSON sidecar importers read next to a sheet PNG. Frame rects
// are in sheet pixel coordinates, stage-major, matching the generation result
// exactly.
type Atlas struct {
	SheetWidth     int `json:"sheetWidth"`
	SheetHeight    int `json:"sheetHeight"`
	FrameWidth     int `json:"frameWidth"`
	FrameHeight    int `json:"frameHeight"`
	FramesPerStage int `json:"framesPerStage"`
	StageCount     int `json:"stageCount"`

	// Stages names the sheet rows top to bottom.
	Stages []string `json:"stages"`

	Frames     []sprite.FrameRect `json:"frames"`
	Traits     map[string]string  `json:"traits"`
	SeedDigest string             `json:"seedDigest"`
}

// BuildAtlas derives the atlas for one generation result.
func BuildAtlas(res *sprite.GenerationResult) (Atlas, error) {
	if res == nil || res.Sheet == nil {
		return Atlas{}, fmt.Errorf("atlas: result has no sheet")
	}
	if len(res.FrameRects) == 0 {
		return Atlas{}, fmt.Errorf("atlas: result has no frame rects")
	}

	framesPerStage := 0
	for _, r := range res.FrameRects {
		if r.Frame+1 > framesPerStage {
			framesPerStage = r.Frame + 1
		}
	}

	var stages []string
	for _, r := range res.FrameRects {
		if r.Frame == 0 {
			stages = append(stages, r.Stage.String())
		}
	}

	return Atlas{
		SheetWidth:     res.Sheet.Width(),
		SheetHeight:    res.Sheet.Height(),
		FrameWidth:     res.FrameRects[0].W,
		FrameHeight:    res.FrameRects[0].H,
		FramesPerStage: framesPerStage,
		StageCount:     len(stages),
		Stages:         stages,
		Frames:         res.FrameRects,
		Traits:         res.Traits,
		SeedDigest:     res.SeedDigest,
	}, nil
}

// AtlasJSON builds the atlas and marshals it with indentation, ready to sit
// next to the sheet file.
func AtlasJSON(res *sprite.GenerationResult) ([]byte, error) {
	atlas, err := BuildAtlas(res)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(atlas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	return data, nil
}
