package encode

import (
	"image"
	"image/color"
	"testing"
)

var red = color.RGBA{255, 0, 0, 255}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestCanvas_HorizontalLine(t *testing.T) {
	c := NewCanvas(20, 10)
	defer c.Release()

	c.Polyline([]image.Point{{2, 5}, {11, 5}}, red)
	if got := countColor(c.Image(), red); got != 10 {
		t.Errorf("painted %d pixels, want 10", got)
	}
	if c.Image().RGBAAt(1, 5) == red || c.Image().RGBAAt(12, 5) == red {
		t.Error("line extends past its endpoints")
	}
}

func TestCanvas_DiagonalLine(t *testing.T) {
	c := NewCanvas(10, 10)
	defer c.Release()

	c.Polyline([]image.Point{{0, 0}, {9, 9}}, red)
	for i := 0; i < 10; i++ {
		if c.Image().RGBAAt(i, i) != red {
			t.Errorf("pixel (%d,%d) not painted", i, i)
		}
	}
}

func TestCanvas_ClipsFarSegments(t *testing.T) {
	c := NewCanvas(100, 50)
	defer c.Release()

	// Crosses the canvas horizontally from far outside on both sides.
	c.Polyline([]image.Point{{-300000, 25}, {400000, 25}}, red)
	if got := countColor(c.Image(), red); got != 100 {
		t.Errorf("painted %d pixels, want 100", got)
	}

	// Entirely outside.
	c.Fill(color.RGBA{})
	c.Polyline([]image.Point{{-50, -50}, {-10, 200}}, red)
	if got := countColor(c.Image(), red); got != 0 {
		t.Errorf("painted %d pixels for an off-canvas segment, want 0", got)
	}
}

func TestCanvas_Marker(t *testing.T) {
	c := NewCanvas(20, 20)
	defer c.Release()

	c.Marker(image.Pt(10, 10), 2, red)
	// Two 5-pixel strokes sharing the center pixel.
	if got := countColor(c.Image(), red); got != 9 {
		t.Errorf("painted %d pixels, want 9", got)
	}
}

func TestCanvas_FillAndReuse(t *testing.T) {
	c := NewCanvas(8, 8)
	white := color.RGBA{255, 255, 255, 255}
	c.Fill(white)
	if got := countColor(c.Image(), white); got != 64 {
		t.Fatalf("fill painted %d pixels, want 64", got)
	}
	c.Release()

	// A recycled raster comes back cleared.
	c2 := NewCanvas(8, 8)
	defer c2.Release()
	if got := countColor(c2.Image(), white); got != 0 {
		t.Errorf("recycled canvas has %d painted pixels, want 0", got)
	}
}

func TestClipSegment(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	a, b, ok := clipSegment(image.Pt(-5, 5), image.Pt(15, 5), r)
	if !ok {
		t.Fatal("segment crossing the rect was rejected")
	}
	if a != image.Pt(0, 5) || b != image.Pt(9, 5) {
		t.Errorf("clip = %v-%v, want (0,5)-(9,5)", a, b)
	}
	if _, _, ok := clipSegment(image.Pt(20, 20), image.Pt(30, 25), r); ok {
		t.Error("segment outside the rect was accepted")
	}
}
