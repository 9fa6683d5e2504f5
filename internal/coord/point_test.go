package coord

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestWrapLongitude(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{540, 180},
		{-540, 180},
		{725, 5},
		{-359, 1},
	}
	for _, tt := range tests {
		if got := WrapLongitude(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := LatLon(95, 200).Normalize()
	if got.Lat != 90 || got.Lon != -160 {
		t.Errorf("Normalize() = %+v, want {90 -160}", got)
	}
	got = LatLon(-91, -180).Normalize()
	if got.Lat != -90 || got.Lon != 180 {
		t.Errorf("Normalize() = %+v, want {-90 180}", got)
	}
}

func TestRadiansDegreesRoundTrip(t *testing.T) {
	p := LatLon(47.3769, 8.5417)
	r := p.Radians()
	if math.Abs(r.Lat-p.Lat*math.Pi/180) > 1e-15 {
		t.Errorf("Radians().Lat = %v", r.Lat)
	}
	back := r.Degrees()
	if math.Abs(back.Lat-p.Lat) > 1e-12 || math.Abs(back.Lon-p.Lon) > 1e-12 {
		t.Errorf("Degrees() = %+v, want %+v", back, p)
	}
}

func TestOrbConversion(t *testing.T) {
	p := LatLon(10, 20)
	op := p.OrbPoint()
	if op != (orb.Point{20, 10}) {
		t.Errorf("OrbPoint() = %v, want [20 10]", op)
	}
	if FromOrb(op) != p {
		t.Errorf("FromOrb() = %v, want %v", FromOrb(op), p)
	}
}

func TestArcDistance(t *testing.T) {
	// A quarter of the equator.
	d := ArcDistance(LatLon(0, 0), LatLon(0, 90)).Degrees()
	if math.Abs(d-90) > 1e-9 {
		t.Errorf("ArcDistance = %v, want 90", d)
	}
}

func TestInViewport(t *testing.T) {
	tests := []struct {
		p    ScreenPoint
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(619, 479), true},
		{Pt(620, 0), false},
		{Pt(0, 480), false},
		{Pt(-1, 10), false},
	}
	for _, tt := range tests {
		if got := InViewport(tt.p, 620, 480); got != tt.want {
			t.Errorf("InViewport(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.49, 0}, {0.5, 1}, {-0.5, 0}, {-0.51, -1}, {309.99, 310},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGeoPointString(t *testing.T) {
	tests := []struct {
		p    GeoPoint
		want string
	}{
		{LatLon(0, 0), "0°00'00.0\"N 0°00'00.0\"E"},
		{LatLon(-33.5, 151.25), "33°30'00.0\"S 151°15'00.0\"E"},
		{LatLon(47.999999, -8.5), "48°00'00.0\"N 8°30'00.0\"W"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String(%v, %v) = %q, want %q", tt.p.Lat, tt.p.Lon, got, tt.want)
		}
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(-179.995, -180, 0.01) {
		t.Error("values inside eps reported unequal")
	}
	if ApproxEqual(45.02, 45, 0.01) {
		t.Error("values outside eps reported equal")
	}
	if ApproxEqual(math.NaN(), 0, 1) {
		t.Error("NaN reported equal")
	}
}
