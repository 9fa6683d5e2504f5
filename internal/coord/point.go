// Package coord holds the geographic and screen coordinate types shared by
// the projection engine, plus the spherical constants they are measured with.
package coord

import (
	"image"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

const (
	// EarthRadius is the spherical earth radius in meters.
	EarthRadius = 6378137.0
	// PixelsPerMeter is the nominal display density used to relate map
	// scale (1:N) to screen pixels.
	PixelsPerMeter = 3272.492

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// GeoPoint is a geographic position in decimal degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// RadPoint is a geographic position in radians.
type RadPoint struct {
	Lat float64
	Lon float64
}

// ScreenPoint is a device pixel. The origin is the top-left corner and y
// grows downward. Points outside the viewport are still valid values.
type ScreenPoint = image.Point

// Pt is shorthand for a ScreenPoint literal.
func Pt(x, y int) ScreenPoint { return image.Pt(x, y) }

// LatLon builds a GeoPoint from degrees.
func LatLon(lat, lon float64) GeoPoint { return GeoPoint{Lat: lat, Lon: lon} }

// Radians converts the point to radians.
func (p GeoPoint) Radians() RadPoint {
	return RadPoint{Lat: p.Lat * degToRad, Lon: p.Lon * degToRad}
}

// Degrees converts the point to decimal degrees.
func (r RadPoint) Degrees() GeoPoint {
	return GeoPoint{Lat: r.Lat * radToDeg, Lon: r.Lon * radToDeg}
}

// Normalize clamps the latitude to [-90, 90] and wraps the longitude into
// (-180, 180].
func (p GeoPoint) Normalize() GeoPoint {
	return GeoPoint{Lat: ClampLatitude(p.Lat, -90, 90), Lon: WrapLongitude(p.Lon)}
}

// LatLng returns the equivalent s2.LatLng.
func (p GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

// FromLatLng converts an s2.LatLng back to degrees.
func FromLatLng(ll s2.LatLng) GeoPoint {
	return GeoPoint{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

// OrbPoint returns the point in orb's [lon, lat] order.
func (p GeoPoint) OrbPoint() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// FromOrb converts an orb [lon, lat] point to a GeoPoint.
func FromOrb(pt orb.Point) GeoPoint {
	return GeoPoint{Lat: pt.Lat(), Lon: pt.Lon()}
}

// ArcDistance returns the great-circle angle between two points.
func ArcDistance(a, b GeoPoint) s1.Angle {
	return a.LatLng().Distance(b.LatLng())
}

// WrapLongitude wraps a longitude in degrees into (-180, 180].
func WrapLongitude(lon float64) float64 {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return lon
	}
	if lon > -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon, 360)
	if lon > 180 {
		lon -= 360
	} else if lon <= -180 {
		lon += 360
	}
	return lon
}

// ClampLatitude limits lat to [min, max].
func ClampLatitude(lat, min, max float64) float64 {
	if lat > max {
		return max
	}
	if lat < min {
		return min
	}
	return lat
}

// InViewport reports whether p lies in [0,width)x[0,height).
func InViewport(p ScreenPoint, width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Round converts a fractional pixel coordinate to the nearest integer,
// rounding halves up.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * degToRad }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * radToDeg }

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
