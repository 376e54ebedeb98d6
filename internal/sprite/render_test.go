package sprite

import (
	"testing"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/pix"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rules"
)

func TestRoundDiv(t *testing.T) {
	cases := []struct {
		num, den, want int
	}{
		{0, 5, 0},
		{3, 2, 2},
		{-3, 2, -2},
		{5, 2, 3},
		{-5, 2, -3},
		{1, 2, 1},
		{-1, 2, -1},
		{7, 3, 2},
		{-7, 3, -2},
		{79200, 24000, 3},
		{86400, 24000, 4},
	}
	for _, tc := range cases {
		if got := roundDiv(tc.num, tc.den); got != tc.want {
			t.Errorf("roundDiv(%d, %d) = %d, want %d", tc.num, tc.den, got, tc.want)
		}
	}
}

func TestScaleOffsetIdentityAtNativeScale(t *testing.T) {
	for off := -11; off <= 11; off++ {
		if got := scaleOffset(off, 1000, gridUnits); got != off {
			t.Errorf("scaleOffset(%d, 1000, %d) = %d, want %d", off, gridUnits, got, off)
		}
	}
}

func TestScaleOffsetSymmetricAndMonotonic(t *testing.T) {
	for _, permille := range []int{550, 850, 1000, 1200} {
		for _, size := range []int{16, 24, 64, 128} {
			prev := scaleOffset(-11, permille, size)
			for off := -11; off <= 11; off++ {
				got := scaleOffset(off, permille, size)
				if got != -scaleOffset(-off, permille, size) {
					t.Errorf("scaleOffset(%d, %d, %d) is not odd-symmetric", off, permille, size)
				}
				if got < prev {
					t.Errorf("scaleOffset not monotonic at off=%d permille=%d size=%d", off, permille, size)
				}
				prev = got
			}
		}
	}
}

func TestCellDot(t *testing.T) {
	cases := []struct {
		permille, size, want int
	}{
		{1000, 24, 1},
		{1200, 24, 2},
		{550, 16, 1},
		{550, 24, 1},
		{1000, 128, 6},
		{1200, 128, 7},
		{550, 128, 3},
	}
	for _, tc := range cases {
		if got := cellDot(tc.permille, tc.size); got != tc.want {
			t.Errorf("cellDot(%d, %d) = %d, want %d", tc.permille, tc.size, got, tc.want)
		}
	}
}

func TestLineCells(t *testing.T) {
	var visited []rules.Offset
	lineCells(0, 0, 3, 0, func(x, y int) {
		visited = append(visited, rules.Offset{X: x, Y: y})
	})
	want := []rules.Offset{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	if len(visited) != len(want) {
		t.Fatalf("Visited %d cells, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Cell %d = %+v, want %+v", i, visited[i], want[i])
		}
	}
}

func TestLineCellsStepsAreAdjacent(t *testing.T) {
	ends := [][4]int{
		{0, 0, 2, 2},
		{0, 0, -2, 1},
		{-5, 3, 4, -6},
		{1, 1, 1, 1},
	}
	for _, e := range ends {
		var visited []rules.Offset
		lineCells(e[0], e[1], e[2], e[3], func(x, y int) {
			visited = append(visited, rules.Offset{X: x, Y: y})
		})
		if len(visited) == 0 {
			t.Fatalf("Line %v visited nothing", e)
		}
		first, last := visited[0], visited[len(visited)-1]
		if first.X != e[0] || first.Y != e[1] || last.X != e[2] || last.Y != e[3] {
			t.Errorf("Line %v runs %+v -> %+v, want both endpoints included", e, first, last)
		}
		for i := 1; i < len(visited); i++ {
			dx := abs(visited[i].X - visited[i-1].X)
			dy := abs(visited[i].Y - visited[i-1].Y)
			if dx > 1 || dy > 1 || dx+dy == 0 {
				t.Errorf("Line %v jumps from %+v to %+v", e, visited[i-1], visited[i])
			}
		}
	}
}

func TestRenderShapeRect(t *testing.T) {
	pm := pix.NewPixmap(24, 24)
	c := pix.Color{R: 200, A: 255}
	renderShape(pm, rules.Shape{Kind: rules.ShapeRect, X: 0, Y: 0, W: 4, H: 2}, c, 1000, 24)

	count := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			if pm.PixelAt(x, y).A != 0 {
				count++
				if x < 10 || x > 13 || y < 11 || y > 12 {
					t.Errorf("Rect pixel at (%d, %d) is outside the expected box", x, y)
				}
			}
		}
	}
	if count != 8 {
		t.Errorf("Rect covers %d pixels, want 8", count)
	}
}

func TestRenderShapeMirror(t *testing.T) {
	pm := pix.NewPixmap(24, 24)
	c := pix.Color{G: 180, A: 255}
	renderShape(pm, rules.Shape{Kind: rules.ShapeDisc, X: -5, Y: 1, W: 3, H: 2, Mirror: true}, c, 1000, 24)

	painted := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			if pm.PixelAt(x, y) != pm.PixelAt(23-x, y) {
				t.Fatalf("Mirror asymmetry at (%d, %d)", x, y)
			}
			if pm.PixelAt(x, y).A != 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("Mirrored disc painted nothing")
	}
}
