package proj

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

// LineType selects how the edge between two vertices is drawn.
type LineType int

const (
	// LineStraight connects vertices with straight screen segments.
	LineStraight LineType = iota
	// LineRhumb follows lines of constant bearing.
	LineRhumb
	// LineGreatCircle follows the shortest path on the sphere.
	LineGreatCircle
)

func (lt LineType) String() string {
	switch lt {
	case LineStraight:
		return "straight"
	case LineRhumb:
		return "rhumb"
	case LineGreatCircle:
		return "greatcircle"
	default:
		return fmt.Sprintf("LineType(%d)", int(lt))
	}
}

// Polyline is a projected vertex list as parallel pixel slices.
type Polyline struct {
	X []int
	Y []int
}

// Len returns the number of projected vertices.
func (p Polyline) Len() int { return len(p.X) }

// Empty reports whether nothing was projected.
func (p Polyline) Empty() bool { return len(p.X) == 0 }

// Points returns the vertices as screen points.
func (p Polyline) Points() []coord.ScreenPoint {
	pts := make([]coord.ScreenPoint, len(p.X))
	for i := range p.X {
		pts[i] = coord.Pt(p.X[i], p.Y[i])
	}
	return pts
}

// polyProjector projects vertex lists with one forward function and a
// southern cutoff below which whole geometries are dropped.
type polyProjector struct {
	forward func(coord.RadPoint) coord.ScreenPoint
	minLat  float64 // radians
}

func (pp polyProjector) project(raw []float64, lt LineType, nsegs int, filled bool) Polyline {
	n := len(raw) / 2
	if n < 2 {
		return Polyline{}
	}

	allBelow := true
	for i := 0; i < n; i++ {
		if raw[2*i] >= pp.minLat {
			allBelow = false
			break
		}
	}
	if allBelow {
		return Polyline{}
	}

	pts := make([]coord.RadPoint, n)
	for i := range pts {
		pts[i] = coord.RadPoint{Lat: raw[2*i], Lon: raw[2*i+1]}
	}
	if d, ok := densifiers[lt]; ok {
		pts = d.densify(pts, nsegs, filled)
	}

	out := Polyline{X: make([]int, len(pts)), Y: make([]int, len(pts))}
	for i, p := range pts {
		sp := pp.forward(p)
		out.X[i], out.Y[i] = sp.X, sp.Y
	}
	return out
}

// FlattenRadians converts an orb point list in degrees to the flat
// lat,lon,... radian layout ProjectPolyline takes.
func FlattenRadians(pts []orb.Point) []float64 {
	raw := make([]float64, 0, 2*len(pts))
	for _, pt := range pts {
		r := coord.FromOrb(pt).Radians()
		raw = append(raw, r.Lat, r.Lon)
	}
	return raw
}

// ProjectLineString projects an open orb line string given in degrees.
func ProjectLineString(p Projection, ls orb.LineString, lt LineType, nsegs int) Polyline {
	return p.ProjectPolyline(FlattenRadians(ls), lt, nsegs, false)
}

// ProjectRing projects a closed orb ring given in degrees as a filled
// polygon outline.
func ProjectRing(p Projection, r orb.Ring, lt LineType, nsegs int) Polyline {
	return p.ProjectPolyline(FlattenRadians(r), lt, nsegs, true)
}
