package proj

import (
	"github.com/golang/geo/s2"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

// interpolator finds points along one kind of line between two vertices.
type interpolator interface {
	// interpolate returns the point a fraction t of the way from a to b.
	interpolate(a, b coord.GeoPoint, t float64) coord.GeoPoint
}

// densifier inserts intermediate vertices along each edge so that a curved
// line type survives being drawn as straight screen segments.
type densifier struct {
	interpolator
}

// densifiers holds the strategy for each line type that needs one.
// LineStraight has no entry and is projected vertex by vertex.
var densifiers = map[LineType]densifier{
	LineRhumb:       {rhumb{}},
	LineGreatCircle: {greatCircle{}},
}

// autoSegments picks the intermediate point count for an edge when the
// caller asked for automatic segmentation: one per degree of arc.
func autoSegments(a, b coord.GeoPoint) int {
	return int(coord.ArcDistance(a, b).Degrees())
}

// densify walks the edges of pts, inserting nsegs intermediate points into
// each (automatic when nsegs < 1). When closed is set the edge from the last
// vertex back to the first is densified too.
func (d densifier) densify(pts []coord.RadPoint, nsegs int, closed bool) []coord.RadPoint {
	out := make([]coord.RadPoint, 0, len(pts)*2)
	edge := func(a, b coord.RadPoint) {
		ga, gb := a.Degrees(), b.Degrees()
		segs := nsegs
		if segs < 1 {
			segs = autoSegments(ga, gb)
		}
		for i := 1; i <= segs; i++ {
			t := float64(i) / float64(segs+1)
			out = append(out, d.interpolate(ga, gb, t).Radians())
		}
	}

	for i := 0; i < len(pts)-1; i++ {
		out = append(out, pts[i])
		edge(pts[i], pts[i+1])
	}
	last := pts[len(pts)-1]
	out = append(out, last)
	if closed && last != pts[0] {
		edge(last, pts[0])
	}
	return out
}

// greatCircle interpolates along the shortest arc using s2.
type greatCircle struct{}

func (greatCircle) interpolate(a, b coord.GeoPoint, t float64) coord.GeoPoint {
	pa := s2.PointFromLatLng(a.LatLng())
	pb := s2.PointFromLatLng(b.LatLng())
	return coord.FromLatLng(s2.LatLngFromPoint(s2.Interpolate(t, pa, pb)))
}

// rhumb interpolates along a loxodrome, which is a straight line on the
// Mercator plane. Latitudes beyond the Mercator limit are clamped.
type rhumb struct {
	plane coord.WebMercator
}

func (r rhumb) interpolate(a, b coord.GeoPoint, t float64) coord.GeoPoint {
	ax, ay := r.plane.Project(a)
	bx, by := r.plane.Project(b)
	dx := bx - ax
	if dx > coord.OriginShift {
		dx -= coord.EarthCircumference
	} else if dx < -coord.OriginShift {
		dx += coord.EarthCircumference
	}
	p := r.plane.Unproject(ax+t*dx, ay+t*(by-ay))
	p.Lon = coord.WrapLongitude(p.Lon)
	return p
}
