package proj

import (
	"math"

	"github.com/paulmach/orb/geo"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

// panTolerance is how close (degrees) an azimuth must be to a compass
// point to snap to the matching viewport edge or corner.
const panTolerance = 0.01

// panSnap maps a compass azimuth to the pixel that becomes the new center.
type panSnap struct {
	azimuth float64
	pixel   func(w, h int) coord.ScreenPoint
}

var panSnaps = []panSnap{
	{180, func(w, h int) coord.ScreenPoint { return coord.Pt(w/2, h) }}, // south
	{-135, func(w, h int) coord.ScreenPoint { return coord.Pt(0, h) }},  // southwest
	{-90, func(w, h int) coord.ScreenPoint { return coord.Pt(0, h/2) }}, // west
	{-45, func(w, h int) coord.ScreenPoint { return coord.Pt(0, 0) }},   // northwest
	{0, func(w, h int) coord.ScreenPoint { return coord.Pt(w/2, 0) }},   // north
	{45, func(w, h int) coord.ScreenPoint { return coord.Pt(w, 0) }},    // northeast
	{90, func(w, h int) coord.ScreenPoint { return coord.Pt(w, h/2) }},  // east
	{135, func(w, h int) coord.ScreenPoint { return coord.Pt(w, h) }},   // southeast
}

// snapPixel returns the edge or corner pixel for azimuths within
// panTolerance of a principal or intercardinal direction.
func snapPixel(azimuth float64, width, height int) (coord.ScreenPoint, bool) {
	az := coord.WrapLongitude(azimuth)
	for _, s := range panSnaps {
		// -180 and 180 are both south.
		if coord.ApproxEqual(az, s.azimuth, panTolerance) ||
			(s.azimuth == 180 && coord.ApproxEqual(az, -180, panTolerance)) {
			return s.pixel(width, height), true
		}
	}
	return coord.ScreenPoint{}, false
}

// pan re-centers p one viewport edge in the azimuth's direction.
func pan(p Projection, azimuth float64) error {
	prm := p.Params()
	if px, ok := snapPixel(azimuth, prm.Width, prm.Height); ok {
		return p.SetCenter(p.Inverse(px))
	}
	return p.SetCenter(panCenter(p, prm, azimuth))
}

// panCenter moves the center along the great circle leaving it at the
// azimuth, by the distance from the center to where the matching screen
// ray exits the viewport.
func panCenter(p Projection, prm Params, azimuth float64) coord.GeoPoint {
	cx, cy := float64(prm.Width)/2, float64(prm.Height)/2
	s, c := math.Sincos(coord.DegToRad(azimuth))
	dx, dy := s, -c

	t := math.Inf(1)
	if math.Abs(dx) > 1e-12 {
		t = math.Min(t, cx/math.Abs(dx))
	}
	if math.Abs(dy) > 1e-12 {
		t = math.Min(t, cy/math.Abs(dy))
	}
	edge := p.Inverse(coord.Pt(coord.Round(cx+t*dx), coord.Round(cy+t*dy)))

	from := prm.Center.OrbPoint()
	dist := geo.Distance(from, edge.OrbPoint())
	return coord.FromOrb(geo.PointAtBearingAndDistance(from, azimuth, dist)).Normalize()
}
