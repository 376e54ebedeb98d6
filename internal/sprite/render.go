package sprite

import (
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rules"
)

// gridUnits is the edge of the design grid templates and effect cells are
// authored on. Scaling maps grid coordinates onto frames of any supported
// size with integer arithmetic only.
const gridUnits = 24

// roundDiv divides rounding half away from zero. den must be positive.
func roundDiv(num, den int) int {
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}

func ceilDiv(num, den int) int {
	return (num + den - 1) / den
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mod is the non-negative remainder of a by n.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// scaleOffset maps a signed grid offset to a pixel offset from the frame
// center at the given growth scale.
func scaleOffset(off, permille, size int) int {
	return roundDiv(off*permille*size, gridUnits*1000)
}

// scaleLen maps a grid length to pixels, never collapsing below one.
func scaleLen(l, permille, size int) int {
	v := roundDiv(l*permille*size, gridUnits*1000)
	if v < 1 {
		v = 1
	}
	return v
}

// cellDot is the rendered edge of a single grid cell. Rounding up keeps
// scaled cell runs free of holes at every growth scale.
func cellDot(permille, size int) int {
	d := ceilDiv(permille*size, gridUnits*1000)
	if d < 1 {
		d = 1
	}
	return d
}

// drawCellInto paints one grid cell as a centered square dot through plot.
func drawCellInto(plot func(x, y int), cx, cy, permille, size int) {
	dot := cellDot(permille, size)
	px := size/2 + scaleOffset(cx, permille, size) - dot/2
	py := size/2 + scaleOffset(cy, permille, size) - dot/2
	for y := 0; y < dot; y++ {
		for x := 0; x < dot; x++ {
			plot(px+x, py+y)
		}
	}
}

// drawCell paints one grid cell directly onto a pixmap.
func drawCell(pm *pix.Pixmap, cx, cy int, c pix.Color, permille, size int) {
	drawCellInto(func(x, y int) { pm.Set(x, y, c) }, cx, cy, permille, size)
}

// lineCells walks the grid cells of a straight stroke from (x0, y0) to
// (x1, y1), endpoints included.
func lineCells(x0, y0, x1, y1 int, visit func(gx, gy int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		visit(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// renderShape rasterizes one template shape at the growth scale. Shapes draw
// in template order, so later shapes overwrite earlier ones. Mirrored shapes
// also paint their reflection across the vertical frame axis.
func renderShape(pm *pix.Pixmap, sh rules.Shape, c pix.Color, permille, size int) {
	plot := plotMirror(pm, c, sh.Mirror, size)
	cx := size/2 + scaleOffset(sh.X, permille, size)
	cy := size/2 + scaleOffset(sh.Y, permille, size)

	switch sh.Kind {
	case rules.ShapeRect:
		w := scaleLen(sh.W, permille, size)
		h := scaleLen(sh.H, permille, size)
		x0, y0 := cx-w/2, cy-h/2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				plot(x0+x, y0+y)
			}
		}
	case rules.ShapeDisc:
		rx := scaleLen(sh.W, permille, size)
		ry := scaleLen(sh.H, permille, size)
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				if dx*dx*ry*ry+dy*dy*rx*rx <= rx*rx*ry*ry {
					plot(cx+dx, cy+dy)
				}
			}
		}
	case rules.ShapeRing:
		rOut := scaleLen(sh.W, permille, size)
		rIn := rOut - scaleLen(sh.H, permille, size)
		for dy := -rOut; dy <= rOut; dy++ {
			for dx := -rOut; dx <= rOut; dx++ {
				d2 := dx*dx + dy*dy
				if d2 <= rOut*rOut && d2 > rIn*rIn {
					plot(cx+dx, cy+dy)
				}
			}
		}
	case rules.ShapeLine:
		lineCells(sh.X, sh.Y, sh.W, sh.H, func(gx, gy int) {
			drawCellInto(plot, gx, gy, permille, size)
		})
	case rules.ShapeDot:
		drawCellInto(plot, sh.X, sh.Y, permille, size)
	}
}

// plotMirror builds a pixel setter that honors the mirror flag.
func plotMirror(pm *pix.Pixmap, c pix.Color, mirror bool, size int) func(x, y int) {
	return func(x, y int) {
		pm.Set(x, y, c)
		if mirror {
			pm.Set(size-1-x, y, c)
		}
	}
}
