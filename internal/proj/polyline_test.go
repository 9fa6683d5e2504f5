package proj

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

func radPoints(deg ...float64) []coord.RadPoint {
	out := make([]coord.RadPoint, 0, len(deg)/2)
	for i := 0; i+1 < len(deg); i += 2 {
		out = append(out, coord.LatLon(deg[i], deg[i+1]).Radians())
	}
	return out
}

func rawRadians(deg ...float64) []float64 {
	out := make([]float64, len(deg))
	for i, d := range deg {
		out[i] = coord.DegToRad(d)
	}
	return out
}

func TestDensifyCounts(t *testing.T) {
	d := densifiers[LineGreatCircle]
	tests := []struct {
		name   string
		pts    []coord.RadPoint
		nsegs  int
		closed bool
		want   int
	}{
		{"single edge", radPoints(0, 0, 10, 10), 3, false, 5},
		{"open triangle", radPoints(0, 0, 10, 0, 0, 10), 2, false, 7},
		{"filled triangle", radPoints(0, 0, 10, 0, 0, 10), 2, true, 9},
		{"filled closed ring", radPoints(0, 0, 10, 0, 0, 10, 0, 0), 2, true, 10},
		{"auto segments", radPoints(0, 0, 0, 10.5), 0, false, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.densify(tt.pts, tt.nsegs, tt.closed)
			assert.Len(t, got, tt.want)
			assert.Equal(t, tt.pts[0], got[0])
		})
	}
}

func TestAutoSegments(t *testing.T) {
	assert.Equal(t, 10, autoSegments(coord.LatLon(0, 0), coord.LatLon(0, 10.5)))
	assert.Equal(t, 0, autoSegments(coord.LatLon(0, 0), coord.LatLon(0, 0.5)))
}

func TestGreatCircleMidpoint(t *testing.T) {
	got := greatCircle{}.interpolate(coord.LatLon(0, 0), coord.LatLon(0, 90), 0.5)
	assert.InDelta(t, 0, got.Lat, 1e-9)
	assert.InDelta(t, 45, got.Lon, 1e-9)

	// Between two points on the 45th parallel the great circle bows poleward.
	got = greatCircle{}.interpolate(coord.LatLon(45, 0), coord.LatLon(45, 90), 0.5)
	assert.Greater(t, got.Lat, 45.0)
	assert.InDelta(t, 45, got.Lon, 1e-9)
}

func TestRhumbMidpoint(t *testing.T) {
	r := rhumb{}
	got := r.interpolate(coord.LatLon(45, 0), coord.LatLon(45, 90), 0.5)
	assert.InDelta(t, 45, got.Lat, 1e-9)
	assert.InDelta(t, 45, got.Lon, 1e-9)

	got = r.interpolate(coord.LatLon(0, 170), coord.LatLon(0, -170), 0.5)
	assert.InDelta(t, 0, got.Lat, 1e-9)
	assert.InDelta(t, 0, lonDelta(got.Lon, 180), 1e-9, "crosses the dateline the short way")
}

func TestProjectPolylineStraight(t *testing.T) {
	l := newScenario(t)
	raw := rawRadians(0, 0, 0.01, 0.01, 0.02, -0.01)
	pl := l.ProjectPolyline(raw, LineStraight, 5, false)
	require.Equal(t, 3, pl.Len())
	assert.Equal(t, coord.Pt(310, 240), pl.Points()[0])
	assert.Equal(t, l.Forward(coord.LatLon(0.01, 0.01)), coord.Pt(pl.X[1], pl.Y[1]))
}

func TestProjectPolylineDensified(t *testing.T) {
	l := newScenario(t)
	raw := rawRadians(0, 0, 0.02, 0.02)
	gc := l.ProjectPolyline(raw, LineGreatCircle, 3, false)
	assert.Equal(t, 5, gc.Len())
	rh := l.ProjectPolyline(raw, LineRhumb, 3, false)
	assert.Equal(t, 5, rh.Len())

	filled := l.ProjectPolyline(rawRadians(0, 0, 0.02, 0, 0, 0.02), LineGreatCircle, 2, true)
	assert.Equal(t, 9, filled.Len())
}

func TestProjectPolylineDegenerate(t *testing.T) {
	l := newScenario(t)
	assert.True(t, l.ProjectPolyline(nil, LineStraight, 0, false).Empty())
	assert.True(t, l.ProjectPolyline(rawRadians(10, 10), LineGreatCircle, 0, false).Empty())
	assert.True(t, l.ProjectPolyline(rawRadians(10, 10, 20), LineStraight, 0, false).Empty(), "odd length")

	south := rawRadians(-61, 0, -70, 10, -65, 20)
	assert.True(t, l.ProjectPolyline(south, LineRhumb, 0, true).Empty())

	partly := rawRadians(-61, 0, -59, 10)
	assert.Equal(t, 2, l.ProjectPolyline(partly, LineStraight, 0, false).Len())
}

func TestProjectOrbGeometry(t *testing.T) {
	l := newScenario(t)
	ls := orb.LineString{{0, 0}, {0.02, 0.01}}
	pl := ProjectLineString(l, ls, LineStraight, 0)
	require.Equal(t, 2, pl.Len())
	assert.Equal(t, l.Forward(coord.LatLon(0.01, 0.02)), pl.Points()[1])

	ring := orb.Ring{{0, 0}, {0.02, 0}, {0, 0.02}, {0, 0}}
	assert.Equal(t, 10, ProjectRing(l, ring, LineGreatCircle, 2).Len())

	raw := FlattenRadians(ls)
	assert.Equal(t, []float64{0, 0, coord.DegToRad(0.01), coord.DegToRad(0.02)}, raw)
}

func TestLineTypeString(t *testing.T) {
	assert.Equal(t, "straight", LineStraight.String())
	assert.Equal(t, "rhumb", LineRhumb.String())
	assert.Equal(t, "greatcircle", LineGreatCircle.String())
	assert.Equal(t, "LineType(7)", LineType(7).String())
}
