package pix

import (
	"fmt"
	"image/color"
)

// Color is an 8-bit-per-channel RGBA color. Channels stay integral end to end
// so rendered output is byte-identical across platforms.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the zero color.
var Transparent = Color{}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Hex parses "RRGGBB" or "RRGGBBAA", with an optional leading '#'.
func Hex(hex string) (Color, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint8
	a := uint8(255)

	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("parse hex color %q: %w", hex, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Color{}, fmt.Errorf("parse hex color %q: %w", hex, err)
		}
	default:
		return Color{}, fmt.Errorf("parse hex color %q: bad length %d", hex, len(hex))
	}

	return Color{R: r, G: g, B: b, A: a}, nil
}

// MustHex parses a hex color and panics on malformed input. Reserved for
// static table literals that are covered by load tests.
func MustHex(hex string) Color {
	c, err := Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Opaque reports whether the color has full alpha.
func (c Color) Opaque() bool {
	return c.A == 255
}

// luma is the integer rec601 luma of the color, in [0, 255].
func (c Color) luma() int {
	return (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
}

// Saturate scales each channel away from the pixel's luma by pct percent.
// Saturate(0) is the identity; alpha is preserved. The arithmetic is pure
// integer so results match on every platform.
func (c Color) Saturate(pct int) Color {
	if pct == 0 || c.A == 0 {
		return c
	}
	gray := c.luma()
	scale := func(ch uint8) uint8 {
		v := gray + (int(ch)-gray)*(100+pct)/100
		return clamp255(v)
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// Blend mixes c toward o by num/den using integer arithmetic. num=0 returns
// c unchanged; num=den returns o.
func (c Color) Blend(o Color, num, den int) Color {
	if den <= 0 || num <= 0 {
		return c
	}
	if num >= den {
		return o
	}
	mix := func(a, b uint8) uint8 {
		return clamp255(int(a) + (int(b)-int(a))*num/den)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B), A: mix(c.A, o.A)}
}

// NRGBA converts to the standard library color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
