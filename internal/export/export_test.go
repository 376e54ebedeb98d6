package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/batch"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
)

func chainResult(t *testing.T) *sprite.GenerationResult {
	t.Helper()
	spec := sprite.EvolutionChainSpec(creature.GenreFantasy, creature.ArchetypeFamiliar, creature.RarityCommon)
	res, err := sprite.Generate([]byte("token|founders-0001|2025-06-15T12:00:00Z"), spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return res
}

func TestEncodePNGRoundTrip(t *testing.T) {
	pm := pix.NewPixmap(8, 4)
	pm.Fill(pix.Color{R: 10, G: 20, B: 30, A: 255})
	pm.Set(3, 2, pix.Color{R: 200, G: 40, B: 40, A: 255})

	data, err := EncodePNG(pm)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding the sheet png failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("decoded bounds = %dx%d, want 8x4", b.Dx(), b.Dy())
	}
	got := color.NRGBAModel.Convert(img.At(3, 2)).(color.NRGBA)
	if got != (color.NRGBA{R: 200, G: 40, B: 40, A: 255}) {
		t.Errorf("pixel (3,2) = %+v, want the marker color", got)
	}

	if _, err := EncodePNG(nil); err == nil {
		t.Error("expected error for a nil sheet")
	}
}

func TestWritePNGFile(t *testing.T) {
	pm := pix.NewPixmap(4, 4)
	pm.Fill(pix.Color{R: 1, G: 2, B: 3, A: 255})

	path := filepath.Join(t.TempDir(), "sheet.png")
	if err := WritePNGFile(path, pm); err != nil {
		t.Fatalf("WritePNGFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading the written file failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding the written file failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("decoded bounds = %dx%d, want 4x4", b.Dx(), b.Dy())
	}
}

func TestPreviewScales(t *testing.T) {
	pm := pix.NewPixmap(6, 3)
	pm.Set(1, 1, pix.Color{R: 255, A: 255})

	img, err := Preview(pm, 4)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Fatalf("preview bounds = %dx%d, want 24x12", b.Dx(), b.Dy())
	}

	if got := img.NRGBAAt(6, 6); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("center of the scaled block = %+v, want the source pixel", got)
	}
	if got := img.NRGBAAt(22, 10); got.A != 0 {
		t.Errorf("empty region pixel = %+v, want transparent", got)
	}

	for _, factor := range []int{0, -1, maxPreviewFactor + 1} {
		if _, err := Preview(pm, factor); err == nil {
			t.Errorf("factor %d: expected error", factor)
		}
	}
}

func TestPreviewPNG(t *testing.T) {
	pm := pix.NewPixmap(6, 3)
	data, err := PreviewPNG(pm, 2)
	if err != nil {
		t.Fatalf("PreviewPNG failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding the preview failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Errorf("preview bounds = %dx%d, want 12x6", b.Dx(), b.Dy())
	}
}

func TestBuildAtlas(t *testing.T) {
	res := chainResult(t)

	atlas, err := BuildAtlas(res)
	if err != nil {
		t.Fatalf("BuildAtlas failed: %v", err)
	}

	if atlas.SheetWidth != 24 || atlas.SheetHeight != 144 {
		t.Errorf("sheet = %dx%d, want 24x144", atlas.SheetWidth, atlas.SheetHeight)
	}
	if atlas.FrameWidth != 24 || atlas.FrameHeight != 24 {
		t.Errorf("frame = %dx%d, want 24x24", atlas.FrameWidth, atlas.FrameHeight)
	}
	if atlas.FramesPerStage != 1 {
		t.Errorf("FramesPerStage = %d, want 1", atlas.FramesPerStage)
	}
	if atlas.StageCount != 6 || len(atlas.Stages) != 6 {
		t.Fatalf("StageCount = %d, len(Stages) = %d, want 6", atlas.StageCount, len(atlas.Stages))
	}
	if atlas.Stages[0] != "Egg" || atlas.Stages[5] != "Legendary" {
		t.Errorf("stage rows = %v, want Egg first, Legendary last", atlas.Stages)
	}
	if !reflect.DeepEqual(atlas.Frames, res.FrameRects) {
		t.Error("atlas frames differ from the generation frame rects")
	}
	if atlas.SeedDigest != res.SeedDigest {
		t.Errorf("SeedDigest = %q, want %q", atlas.SeedDigest, res.SeedDigest)
	}
	if atlas.Traits["mode"] != "EvolutionChain" {
		t.Errorf("mode trait = %q, want EvolutionChain", atlas.Traits["mode"])
	}
}

func TestAtlasJSON(t *testing.T) {
	res := chainResult(t)

	data, err := AtlasJSON(res)
	if err != nil {
		t.Fatalf("AtlasJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("atlas json does not parse: %v", err)
	}
	if got := decoded["sheetWidth"].(float64); got != 24 {
		t.Errorf("sheetWidth = %v, want 24", got)
	}
	frames, ok := decoded["frames"].([]any)
	if !ok || len(frames) != 6 {
		t.Errorf("frames = %v, want 6 entries", decoded["frames"])
	}

	if _, err := BuildAtlas(nil); err == nil {
		t.Error("expected error for a nil result")
	}
	if _, err := AtlasJSON(&sprite.GenerationResult{}); err == nil {
		t.Error("expected error for a result without a sheet")
	}
}

func TestWriteTraitsCSV(t *testing.T) {
	tokens := []batch.Token{
		{
			Index:    0,
			UniqueID: "founders-0000",
			Rarity:   creature.RarityCommon,
			Result: &sprite.GenerationResult{
				SeedDigest: "aa11",
				Traits: map[string]string{
					"mode":           "GenreCreature",
					"genre":          "Fantasy",
					"archetype":      "Familiar",
					"framesPerStage": "1",
					"frameSize":      "24",
					"effects":        "Collar+Mane",
					"rarityScore":    "1.2",
				},
			},
		},
		{
			Index:    1,
			UniqueID: "founders-0001",
			Rarity:   creature.RarityLegendary,
			Result: &sprite.GenerationResult{
				SeedDigest: "bb22",
				Traits: map[string]string{
					"mode":        "FacultyUltraRare",
					"facultyRole": "Provost",
				},
			},
		},
	}

	data, err := TraitsCSV(tokens)
	if err != nil {
		t.Fatalf("TraitsCSV failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing the csv failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want header plus 2 rows", len(records))
	}

	if records[0][0] != "index" || records[0][4] != "mode" {
		t.Errorf("header = %v", records[0])
	}

	first := records[1]
	if first[0] != "0" || first[1] != "founders-0000" || first[2] != "Common" || first[3] != "aa11" {
		t.Errorf("first row = %v", first)
	}
	if first[5] != "Fantasy" || first[10] != "Collar+Mane" {
		t.Errorf("first row traits = %v", first)
	}

	second := records[2]
	if second[2] != "Legendary" || second[7] != "Provost" {
		t.Errorf("second row = %v", second)
	}
	if second[5] != "" {
		t.Errorf("faculty row genre = %q, want empty", second[5])
	}
}
