package coord

import (
	"fmt"
	"math"
)

// String formats the point as degrees, minutes and seconds with hemisphere
// letters, e.g. 47°22'36.8"N 8°32'30.1"E.
func (p GeoPoint) String() string {
	return formatDMS(p.Lat, 'N', 'S') + " " + formatDMS(p.Lon, 'E', 'W')
}

func formatDMS(v float64, pos, neg byte) string {
	hemi := pos
	if v < 0 {
		hemi = neg
	}
	v = math.Abs(v)
	deg := math.Floor(v)
	min := math.Floor((v - deg) * 60)
	sec := (v - deg - min/60) * 3600
	// Carry rounding overflow so we never print 60.0".
	if sec >= 59.95 {
		sec = 0
		min++
	}
	if min >= 60 {
		min = 0
		deg++
	}
	return fmt.Sprintf("%d°%02d'%04.1f\"%c", int(deg), int(min), sec, hemi)
}
