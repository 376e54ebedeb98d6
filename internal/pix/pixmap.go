// Package pix provides the small RGBA pixel buffer sprite generation renders
// into. All drawing goes through bounds-guarded pixel writes; out-of-range
// coordinates are silently clipped.
package pix

import (
	"bytes"
	"image"
	"image/color"
)

// Pixmap is a rectangular RGBA pixel buffer, 4 bytes per pixel, row-major.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Set writes a single pixel. Writes outside the buffer are dropped.
func (p *Pixmap) Set(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// PixelAt returns the color of a single pixel. Reads outside the buffer
// return Transparent.
func (p *Pixmap) PixelAt(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Fill sets every pixel to c.
func (p *Pixmap) Fill(c Color) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clone returns an independent copy.
func (p *Pixmap) Clone() *Pixmap {
	out := NewPixmap(p.width, p.height)
	copy(out.data, p.data)
	return out
}

// Blit copies src in full onto p with its top-left corner at (x, y).
// Pixels landing outside p are dropped.
func (p *Pixmap) Blit(src *Pixmap, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			p.Set(x+sx, y+sy, src.PixelAt(sx, sy))
		}
	}
}

// Equal reports whether two pixmaps have identical dimensions and bytes.
func (p *Pixmap) Equal(o *Pixmap) bool {
	if o == nil {
		return false
	}
	return p.width == o.width && p.height == o.height && bytes.Equal(p.data, o.data)
}

// PixelDelta counts pixels that differ between two same-sized pixmaps.
// Mismatched dimensions count every pixel of the larger area as different.
func (p *Pixmap) PixelDelta(o *Pixmap) int {
	if p.width != o.width || p.height != o.height {
		a := p.width * p.height
		b := o.width * o.height
		if a > b {
			return a
		}
		return b
	}
	delta := 0
	for i := 0; i < len(p.data); i += 4 {
		if p.data[i] != o.data[i] || p.data[i+1] != o.data[i+1] ||
			p.data[i+2] != o.data[i+2] || p.data[i+3] != o.data[i+3] {
			delta++
		}
	}
	return delta
}

// ToImage converts the pixmap to an image.NRGBA copy.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.PixelAt(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
