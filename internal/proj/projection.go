// Package proj converts geographic coordinates to device pixels and back
// under a chosen map projection.
//
// A Projection is a pure computation object. Read operations (Forward,
// Inverse, ForwardBatch, ProjectPolyline, IsPlotable, UpperLeft/LowerRight)
// run against an immutable snapshot of derived constants and are safe to
// call concurrently with each other. Mutations (SetCenter, SetScale, Resize,
// Pan) must be serialized by the caller. A read racing a mutation sees
// either the old or the new snapshot, never a mix.
package proj

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

// Family identifies the geometric class of a projection.
type Family int

const (
	Cylindrical Family = iota
	Conic
)

func (f Family) String() string {
	switch f {
	case Cylindrical:
		return "cylindrical"
	case Conic:
		return "conic"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Params configures a projection instance. Angles are decimal degrees;
// FalseEasting and FalseNorthing are meters.
type Params struct {
	Center            coord.GeoPoint
	Scale             float64
	Width             int
	Height            int
	CentralMeridian   float64
	StdParallel1      float64
	StdParallel2      float64
	ReferenceLatitude float64
	FalseEasting      float64
	FalseNorthing     float64
}

// Projection is the contract every projection family implements.
type Projection interface {
	// Name returns the fixed identifier of the projection family.
	Name() string
	Family() Family
	// Params returns a copy of the current parameters.
	Params() Params

	// Forward projects a point to pixels. It never fails; off-screen
	// results are returned as-is.
	Forward(p coord.GeoPoint) coord.ScreenPoint
	ForwardRadians(p coord.RadPoint) coord.ScreenPoint
	// Inverse converts a pixel back to a geographic point.
	Inverse(p coord.ScreenPoint) coord.GeoPoint
	// ForwardBatch projects many points and flags which ones are visible.
	ForwardBatch(pts []coord.GeoPoint) Batch
	// ProjectPolyline projects a flat lat,lon,lat,lon,... slice in radians.
	ProjectPolyline(rawRad []float64, lt LineType, nsegs int, filled bool) Polyline

	IsPlotable(p coord.GeoPoint) bool
	UpperLeft() coord.GeoPoint
	LowerRight() coord.GeoPoint

	// Pan moves the center by a fixed step in the azimuth direction
	// (degrees clockwise from north). A step whose recomputed constants
	// are invalid is dropped and the previous state kept; the rejection is
	// reported only to the logger passed with WithLogger, at debug level.
	Pan(azimuth float64)
	SetCenter(c coord.GeoPoint) error
	SetScale(scale float64) error
	Resize(width, height int) error
}

var (
	_ Projection = (*LambertConformal)(nil)
	_ Projection = (*Mercator)(nil)
)

// ErrInvalidParameter is returned (wrapped in a *ParamError) for parameters
// that would produce undefined projection constants.
var ErrInvalidParameter = errors.New("invalid projection parameter")

// ParamError describes which parameter was rejected and why.
type ParamError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func invalid(field string, value any, reason string) error {
	return &ParamError{Field: field, Value: value, Reason: reason}
}

// validateViewport checks the parameters every family shares.
func validateViewport(p Params) error {
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return invalid("scale", p.Scale, "must be a positive finite number")
	}
	if p.Width <= 0 {
		return invalid("width", p.Width, "must be positive")
	}
	if p.Height <= 0 {
		return invalid("height", p.Height, "must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"center_latitude", p.Center.Lat},
		{"center_longitude", p.Center.Lon},
		{"central_meridian", p.CentralMeridian},
		{"reference_latitude", p.ReferenceLatitude},
		{"false_easting", p.FalseEasting},
		{"false_northing", p.FalseNorthing},
	} {
		if !finite(f.v) {
			return invalid(f.name, f.v, "must be finite")
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MaxScale returns the scale at which the whole planet circumference fits
// the given viewport width.
func MaxScale(width int) float64 {
	return math.Floor(coord.EarthCircumference * coord.PixelsPerMeter / float64(width))
}

type options struct {
	logger      logrus.FieldLogger
	calibration float64
}

// Option customizes a projection at construction time.
type Option func(*options)

// WithLogger routes debug output about recomputed constants to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithCalibration overrides the Lambert pixels-per-unit calibration
// multiplier. Non-positive values are ignored.
func WithCalibration(c float64) Option {
	return func(o *options) {
		if c > 0 {
			o.calibration = c
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{calibration: DefaultCalibration}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// New builds a projection by family name. Names are matched
// case-insensitively; "lcc" and "lambert" select Lambert Conformal,
// "merc" selects Mercator.
func New(name string, p Params, opts ...Option) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case strings.ToLower(LambertConformalName), "lambert", "lcc":
		return NewLambertConformal(p, opts...)
	case strings.ToLower(MercatorName), "merc":
		return NewMercator(p, opts...)
	default:
		return nil, invalid("projection", name, "unsupported (supported: Lambert Conformal, Mercator)")
	}
}
