package pix

import "testing"

func TestSetAndPixelAt(t *testing.T) {
	p := NewPixmap(4, 4)
	c := RGB(10, 20, 30)
	p.Set(1, 2, c)

	if got := p.PixelAt(1, 2); got != c {
		t.Errorf("Expected %+v, got %+v", c, got)
	}
	if got := p.PixelAt(0, 0); got != Transparent {
		t.Errorf("Expected transparent at (0,0), got %+v", got)
	}
}

func TestBoundsGuard(t *testing.T) {
	p := NewPixmap(2, 2)
	// Out-of-range writes must be dropped, not panic.
	p.Set(-1, 0, RGB(1, 1, 1))
	p.Set(0, -1, RGB(1, 1, 1))
	p.Set(2, 0, RGB(1, 1, 1))
	p.Set(0, 2, RGB(1, 1, 1))

	for _, b := range p.Data() {
		if b != 0 {
			t.Fatal("Out-of-range write leaked into the buffer")
		}
	}
	if got := p.PixelAt(5, 5); got != Transparent {
		t.Errorf("Expected transparent for out-of-range read, got %+v", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	p := NewPixmap(3, 3)
	p.Set(1, 1, RGB(200, 100, 50))
	c := p.Clone()

	if !p.Equal(c) {
		t.Fatal("Expected clone to equal original")
	}
	c.Set(0, 0, RGB(1, 2, 3))
	if p.Equal(c) {
		t.Error("Expected mutation of clone to not affect original")
	}
}

func TestBlitPlacement(t *testing.T) {
	dst := NewPixmap(6, 6)
	src := NewPixmap(2, 2)
	src.Fill(RGB(9, 9, 9))

	dst.Blit(src, 3, 4)

	if got := dst.PixelAt(3, 4); got != RGB(9, 9, 9) {
		t.Errorf("Expected blitted pixel at (3,4), got %+v", got)
	}
	if got := dst.PixelAt(4, 5); got != RGB(9, 9, 9) {
		t.Errorf("Expected blitted pixel at (4,5), got %+v", got)
	}
	if got := dst.PixelAt(2, 4); got != Transparent {
		t.Errorf("Expected transparent outside blit area, got %+v", got)
	}
}

func TestPixelDelta(t *testing.T) {
	a := NewPixmap(4, 4)
	b := NewPixmap(4, 4)
	if got := a.PixelDelta(b); got != 0 {
		t.Errorf("Expected delta 0 for identical pixmaps, got %d", got)
	}

	b.Set(0, 0, RGB(1, 1, 1))
	b.Set(3, 3, RGB(2, 2, 2))
	if got := a.PixelDelta(b); got != 2 {
		t.Errorf("Expected delta 2, got %d", got)
	}
}

func TestHexParsing(t *testing.T) {
	c, err := Hex("#1a2b3c")
	if err != nil {
		t.Fatalf("Hex returned error: %v", err)
	}
	if c != (Color{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}) {
		t.Errorf("Unexpected color %+v", c)
	}

	c, err = Hex("1a2b3c80")
	if err != nil {
		t.Fatalf("Hex returned error: %v", err)
	}
	if c.A != 0x80 {
		t.Errorf("Expected alpha 0x80, got 0x%02x", c.A)
	}

	if _, err := Hex("xyz"); err == nil {
		t.Error("Expected error for malformed hex")
	}
	if _, err := Hex("12345"); err == nil {
		t.Error("Expected error for bad length")
	}
}

func TestSaturate(t *testing.T) {
	c := Color{R: 100, G: 150, B: 200, A: 255}

	if got := c.Saturate(0); got != c {
		t.Errorf("Expected Saturate(0) identity, got %+v", got)
	}

	// gray = (299*100 + 587*150 + 114*200) / 1000 = 140, each channel is
	// scaled away from it by 130/100.
	boosted := c.Saturate(30)
	want := Color{R: 88, G: 153, B: 218, A: 255}
	if boosted != want {
		t.Errorf("Expected %+v, got %+v", want, boosted)
	}

	// Pure gray is a fixed point.
	g := Color{R: 80, G: 80, B: 80, A: 255}
	if got := g.Saturate(30); got != g {
		t.Errorf("Expected gray to be unchanged, got %+v", got)
	}
}

func TestSaturateDeterminism(t *testing.T) {
	c := Color{R: 13, G: 201, B: 77, A: 255}
	first := c.Saturate(22)
	for i := 0; i < 100; i++ {
		if got := c.Saturate(22); got != first {
			t.Fatalf("Saturate not stable: %+v vs %+v", got, first)
		}
	}
}

func TestBlend(t *testing.T) {
	a := RGB(0, 0, 0)
	b := RGB(100, 200, 50)

	if got := a.Blend(b, 0, 4); got != a {
		t.Errorf("Expected num=0 to return receiver, got %+v", got)
	}
	if got := a.Blend(b, 4, 4); got != b {
		t.Errorf("Expected num=den to return target, got %+v", got)
	}
	mid := a.Blend(b, 2, 4)
	if mid != (Color{R: 50, G: 100, B: 25, A: 255}) {
		t.Errorf("Unexpected midpoint blend %+v", mid)
	}
}
