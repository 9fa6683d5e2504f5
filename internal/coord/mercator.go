package coord

import "math"

const (
	// EarthCircumference is the equatorial circumference in meters.
	EarthCircumference = 2 * math.Pi * EarthRadius
	// OriginShift is half the earth's circumference.
	OriginShift = EarthCircumference / 2.0
	// MercatorMaxLat is the latitude at which spherical Mercator y equals
	// OriginShift, i.e. where the square world map ends.
	MercatorMaxLat = 85.0511287798066
)

// WebMercator is the spherical Mercator plane (EPSG:3857) in meters. It is
// the planar space used for Mercator views and for rhumb line
// interpolation, since rhumb lines are straight in it.
type WebMercator struct{}

// Project converts a geographic point to Mercator meters. Latitudes are
// clamped to ±MercatorMaxLat so the result is always finite.
func (WebMercator) Project(p GeoPoint) (x, y float64) {
	lat := ClampLatitude(p.Lat, -MercatorMaxLat, MercatorMaxLat)
	x = p.Lon * OriginShift / 180.0
	y = math.Log(math.Tan((90.0+lat)*math.Pi/360.0)) / (math.Pi / 180.0)
	y = y * OriginShift / 180.0
	return
}

// Unproject converts Mercator meters back to a geographic point. The
// longitude is not wrapped.
func (WebMercator) Unproject(x, y float64) GeoPoint {
	lon := (x / OriginShift) * 180.0
	lat := (y / OriginShift) * 180.0
	lat = 180.0 / math.Pi * (2.0*math.Atan(math.Exp(lat*math.Pi/180.0)) - math.Pi/2.0)
	return GeoPoint{Lat: lat, Lon: lon}
}
