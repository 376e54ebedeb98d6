// Package export turns generation results into the files downstream consumers
// ingest: PNG sheets, upscaled previews, atlas JSON sidecars for game-engine
// importers, and trait tables in CSV.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
)

// maxPreviewFactor caps preview upscaling.
const maxPreviewFactor = 16

// EncodePNG encodes the sheet as PNG bytes.
func EncodePNG(sheet *pix.Pixmap) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("encode png: sheet is nil")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, sheet.ToImage()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNGFile writes the sheet to path as a PNG file.
func WritePNGFile(path string, sheet *pix.Pixmap) error {
	data, err := EncodePNG(sheet)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Preview upscales the sheet by an integer factor with nearest-neighbor
// sampling, keeping pixel-art edges hard. Factor 1 is a plain copy.
func Preview(sheet *pix.Pixmap, factor int) (*image.NRGBA, error) {
	if sheet == nil {
		return nil, fmt.Errorf("preview: sheet is nil")
	}
	if factor < 1 || factor > maxPreviewFactor {
		return nil, fmt.Errorf("preview: factor %d is outside [1, %d]", factor, maxPreviewFactor)
	}

	src := sheet.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, sheet.Width()*factor, sheet.Height()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// PreviewPNG renders the upscaled preview and encodes it as PNG bytes.
func PreviewPNG(sheet *pix.Pixmap, factor int) ([]byte, error) {
	img, err := Preview(sheet, factor)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode preview png: %w", err)
	}
	return buf.Bytes(), nil
}
