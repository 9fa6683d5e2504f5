// Package graticule builds the ten-degree latitude/longitude reference grid
// and projects it through a proj.Projection.
package graticule

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"github.com/pk-codebox-evo/openmap/internal/proj"
)

// Kind classifies a graticule line.
type Kind int

const (
	// Parallel is a ten-degree line of latitude other than the equator.
	Parallel Kind = iota
	// Meridian is a ten-degree line of longitude other than 0 and 180.
	Meridian
	// Marker is the equator, prime meridian or dateline.
	Marker
)

func (k Kind) String() string {
	switch k {
	case Parallel:
		return "parallel"
	case Meridian:
		return "meridian"
	case Marker:
		return "marker"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spacing is the distance in degrees between grid lines.
const Spacing = 10

// meridianExtent keeps ordinary meridians off the poles, where they all
// converge. The 90 degree meridians run pole to pole.
const meridianExtent = 80.0

// Line is one unprojected graticule line. Points are orb [lon, lat] pairs.
type Line struct {
	Kind     Kind
	Label    string
	Points   orb.LineString
	LineType proj.LineType
}

// Projected is a Line after projection.
type Projected struct {
	Line
	Polyline proj.Polyline
}

// Lines returns the grid for a projection family. Cylindrical projections
// draw every line straight; other families draw parallels as rhumb lines and
// meridians as great circles.
func Lines(f proj.Family) []Line {
	parallel, meridian := proj.LineRhumb, proj.LineGreatCircle
	if f == proj.Cylindrical {
		parallel, meridian = proj.LineStraight, proj.LineStraight
	}

	lines := make([]Line, 0, 53)
	for i := 1; i <= 8; i++ {
		for _, sign := range []float64{1, -1} {
			lat := sign * float64(i*Spacing)
			lines = append(lines, Line{
				Kind:     Parallel,
				Label:    latLabel(lat),
				Points:   parallelPoints(lat),
				LineType: parallel,
			})
		}
	}
	for i := 1; i < 18; i++ {
		for _, sign := range []float64{1, -1} {
			lon := sign * float64(i*Spacing)
			extent := meridianExtent
			if i == 9 {
				extent = 90
			}
			lines = append(lines, Line{
				Kind:     Meridian,
				Label:    lonLabel(lon),
				Points:   meridianPoints(lon, extent),
				LineType: meridian,
			})
		}
	}

	lines = append(lines,
		Line{Kind: Marker, Label: "Prime Meridian", Points: meridianPoints(0, 90), LineType: meridian},
		Line{Kind: Marker, Label: "Dateline", Points: meridianPoints(180, 90), LineType: meridian},
		Line{Kind: Marker, Label: "Equator", Points: parallelPoints(0), LineType: meridian},
	)
	return lines
}

// Project projects every line through p, densifying curved lines with nsegs
// intermediate points per edge (automatic when nsegs < 1). Lines that
// project to nothing are left out.
func Project(p proj.Projection, nsegs int, log logrus.FieldLogger) []Projected {
	lines := Lines(p.Family())
	out := make([]Projected, 0, len(lines))
	for _, l := range lines {
		pl := proj.ProjectLineString(p, l.Points, l.LineType, nsegs)
		if pl.Empty() {
			continue
		}
		out = append(out, Projected{Line: l, Polyline: pl})
	}
	if log != nil {
		log.WithFields(logrus.Fields{
			"projection": p.Name(),
			"lines":      len(lines),
			"projected":  len(out),
		}).Debug("Projected graticule")
	}
	return out
}

func parallelPoints(lat float64) orb.LineString {
	return orb.LineString{{-180, lat}, {-90, lat}, {0, lat}, {90, lat}, {180, lat}}
}

func meridianPoints(lon, extent float64) orb.LineString {
	return orb.LineString{{lon, extent}, {lon, 0}, {lon, -extent}}
}

func latLabel(lat float64) string {
	if lat < 0 {
		return fmt.Sprintf("%gS", -lat)
	}
	return fmt.Sprintf("%gN", lat)
}

func lonLabel(lon float64) string {
	if lon < 0 {
		return fmt.Sprintf("%gW", -lon)
	}
	return fmt.Sprintf("%gE", lon)
}
