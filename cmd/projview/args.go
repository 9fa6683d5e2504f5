package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

// listFlag collects every occurrence of a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, " ") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// parsePair splits "a,b" into two floats.
func parsePair(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two comma-separated values, got %q", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", parts[0], err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", parts[1], err)
	}
	return a, b, nil
}

// parseGeo parses "lat,lon" in decimal degrees.
func parseGeo(s string) (coord.GeoPoint, error) {
	lat, lon, err := parsePair(s)
	if err != nil {
		return coord.GeoPoint{}, err
	}
	return coord.LatLon(lat, lon), nil
}

// parsePixel parses "x,y" as integer pixel coordinates.
func parsePixel(s string) (coord.ScreenPoint, error) {
	x, y, err := parsePair(s)
	if err != nil {
		return coord.ScreenPoint{}, err
	}
	if x != float64(int(x)) || y != float64(int(y)) {
		return coord.ScreenPoint{}, fmt.Errorf("pixel coordinates must be integers, got %q", s)
	}
	return coord.Pt(int(x), int(y)), nil
}

// parseAzimuths parses a comma-separated list of pan azimuths in degrees.
// Compass names n, ne, e, se, s, sw, w and nw are accepted too.
func parseAzimuths(s string) ([]float64, error) {
	compass := map[string]float64{
		"n": 0, "ne": 45, "e": 90, "se": 135,
		"s": 180, "sw": -135, "w": -90, "nw": -45,
	}
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if az, ok := compass[f]; ok {
			out = append(out, az)
			continue
		}
		az, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("pan azimuth %q: %w", f, err)
		}
		out = append(out, az)
	}
	return out, nil
}
