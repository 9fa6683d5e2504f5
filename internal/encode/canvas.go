package encode

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

type canvasKey struct {
	w, h int
}

// canvasPools maps (width, height) to a *sync.Pool of *image.RGBA. A run
// usually renders a single viewport size, so the map stays tiny.
var canvasPools sync.Map

func getRGBA(w, h int) *image.RGBA {
	if p, ok := canvasPools.Load(canvasKey{w, h}); ok {
		if v := p.(*sync.Pool).Get(); v != nil {
			img := v.(*image.RGBA)
			clear(img.Pix)
			return img
		}
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func putRGBA(img *image.RGBA) {
	if img == nil {
		return
	}
	p, _ := canvasPools.LoadOrStore(canvasKey{img.Rect.Dx(), img.Rect.Dy()}, &sync.Pool{})
	p.(*sync.Pool).Put(img)
}

// Canvas is a viewport-sized RGBA raster that projected geometry is drawn
// onto in pixel coordinates.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a transparent canvas. Call Release when done with it.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: getRGBA(width, height)}
}

// Image returns the backing raster. It is invalid after Release.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Release hands the raster back for reuse by a later canvas.
func (c *Canvas) Release() {
	putRGBA(c.img)
	c.img = nil
}

// Fill paints the whole canvas with col.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// Polyline draws straight segments between consecutive points. Segments are
// clipped to the canvas first, so far off-screen vertices are cheap.
func (c *Canvas) Polyline(pts []image.Point, col color.Color) {
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i], rgba)
	}
}

// Marker draws a small cross centered on p.
func (c *Canvas) Marker(p image.Point, size int, col color.Color) {
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	c.line(image.Pt(p.X-size, p.Y), image.Pt(p.X+size, p.Y), rgba)
	c.line(image.Pt(p.X, p.Y-size), image.Pt(p.X, p.Y+size), rgba)
}

func (c *Canvas) line(a, b image.Point, col color.RGBA) {
	a, b, ok := clipSegment(a, b, c.img.Rect)
	if !ok {
		return
	}
	// Bresenham.
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		c.img.SetRGBA(x, y, col)
		if x == b.X && y == b.Y {
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

// clipSegment clips a-b to r (Liang-Barsky). The returned endpoints lie
// inside r.
func clipSegment(a, b image.Point, r image.Rectangle) (image.Point, image.Point, bool) {
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	minX, minY := float64(r.Min.X), float64(r.Min.Y)
	maxX, maxY := float64(r.Max.X-1), float64(r.Max.Y-1)

	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return a, b, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	clamp := func(v, lo, hi float64) int {
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		return int(v + 0.5)
	}
	ca := image.Pt(clamp(x0+t0*dx, minX, maxX), clamp(y0+t0*dy, minY, maxY))
	cb := image.Pt(clamp(x0+t1*dx, minX, maxX), clamp(y0+t1*dy, minY, maxY))
	return ca, cb, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
