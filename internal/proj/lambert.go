package proj

import (
	"math"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

const (
	// LambertConformalName identifies the Lambert Conformal Conic family.
	LambertConformalName = "Lambert Conformal"

	// NorthPoleBound and SouthPoleBound are the latitudes (degrees) every
	// input is clamped to. The conic transform degenerates at the poles.
	NorthPoleBound = 80.0
	SouthPoleBound = -80.0

	// PlotableMinLat is the southernmost latitude IsPlotable accepts.
	PlotableMinLat = -55.0
	// PolylineMinLat drops geometry lying entirely south of it.
	PolylineMinLat = -60.0

	// DefaultCalibration multiplies the Lambert pixels-per-unit ratio so
	// that a given scale looks about as zoomed as it does on the
	// cylindrical projections. It is an empirical value, not a physical
	// constant; override it with WithCalibration.
	DefaultCalibration = 100.0

	// minConeConstant rejects parallels symmetric about the equator, where
	// n is zero up to rounding.
	minConeConstant = 1e-10
)

// lccConstants is an immutable snapshot of a Lambert projection's
// parameters and everything derived from them.
type lccConstants struct {
	params Params

	n float64 // cone constant
	f float64 // cone apex factor

	centerXPixel, centerYPixel int
	pixelsPerUnit              float64

	originX, originY float64 // conformal origin (reference latitude, central meridian)
	centerX, centerY float64 // conformal position of the view center
}

// LambertConformal is the Lambert Conformal Conic projection on a sphere.
type LambertConformal struct {
	opts  options
	state atomic.Pointer[lccConstants]
}

// NewLambertConformal validates p and computes the derived constants. A
// non-nil error means no projection was built.
func NewLambertConformal(p Params, opts ...Option) (*LambertConformal, error) {
	l := &LambertConformal{opts: buildOptions(opts)}
	c, err := computeParameters(p, l.opts.calibration)
	if err != nil {
		return nil, err
	}
	l.store(c)
	return l, nil
}

// computeParameters derives the conic constants from p.
func computeParameters(p Params, calibration float64) (*lccConstants, error) {
	if err := validateViewport(p); err != nil {
		return nil, err
	}
	for _, sp := range []struct {
		name string
		v    float64
	}{{"std_parallel_1", p.StdParallel1}, {"std_parallel_2", p.StdParallel2}} {
		if math.IsNaN(sp.v) || sp.v <= -90 || sp.v >= 90 {
			return nil, invalid(sp.name, sp.v, "must lie strictly between -90 and 90")
		}
	}
	if p.StdParallel1 == p.StdParallel2 {
		return nil, invalid("std_parallel_2", p.StdParallel2, "must differ from std_parallel_1")
	}

	p.CentralMeridian = coord.WrapLongitude(p.CentralMeridian)
	p.Center = coord.GeoPoint{
		Lat: coord.ClampLatitude(p.Center.Lat, SouthPoleBound, NorthPoleBound),
		Lon: coord.WrapLongitude(p.Center.Lon),
	}

	angle1 := coord.DegToRad(90 - p.StdParallel1)
	angle2 := coord.DegToRad(90 - p.StdParallel2)

	c := &lccConstants{params: p}
	c.n = (math.Log(math.Sin(angle1)) - math.Log(math.Sin(angle2))) /
		(math.Log(math.Tan(angle1/2)) - math.Log(math.Tan(angle2/2)))
	if math.Abs(c.n) < minConeConstant || math.IsNaN(c.n) || math.IsInf(c.n, 0) {
		return nil, invalid("std_parallel_2", p.StdParallel2, "parallels give a degenerate cone constant")
	}
	c.f = math.Sin(angle1) / (c.n * math.Pow(math.Tan(angle1/2), c.n))
	if c.f == 0 || math.IsNaN(c.f) || math.IsInf(c.f, 0) {
		return nil, invalid("std_parallel_1", p.StdParallel1, "parallels give a degenerate cone apex")
	}

	c.centerXPixel = coord.Round(float64(p.Width) / 2)
	c.centerYPixel = coord.Round(float64(p.Height) / 2)
	c.pixelsPerUnit = MaxScale(p.Width) / p.Scale * calibration

	c.originX, c.originY = c.toConformal(p.ReferenceLatitude, p.CentralMeridian)
	c.centerX, c.centerY = c.toConformal(p.Center.Lat, p.Center.Lon)
	if !finite(c.pixelsPerUnit) || c.pixelsPerUnit <= 0 {
		return nil, invalid("scale", p.Scale, "gives no usable pixels-per-unit ratio")
	}
	if !finite(c.originX) || !finite(c.originY) {
		return nil, invalid("reference_latitude", p.ReferenceLatitude, "gives a non-finite grid origin")
	}
	if !finite(c.centerX) || !finite(c.centerY) {
		return nil, invalid("center", p.Center, "gives a non-finite conformal position")
	}
	return c, nil
}

// toConformal maps degrees to cone-plane coordinates in earth radii.
func (c *lccConstants) toConformal(lat, lon float64) (x, y float64) {
	lat = coord.ClampLatitude(lat, SouthPoleBound, NorthPoleBound)
	rho := math.Abs(c.f) * math.Pow(math.Abs(math.Tan(coord.DegToRad(90-lat)/2)), math.Abs(c.n))
	dlon := coord.WrapLongitude(lon - c.params.CentralMeridian)
	theta := coord.DegToRad(math.Abs(c.n) * dlon)
	return rho * math.Sin(theta), rho * math.Cos(theta)
}

// fromConformal is the inverse of toConformal.
func (c *lccConstants) fromConformal(x, y float64) coord.GeoPoint {
	theta := math.Atan2(x, y)
	rho := math.Hypot(x, y)

	lon := coord.RadToDeg(theta/math.Abs(c.n)) + c.params.CentralMeridian
	lat := 90 - coord.RadToDeg(2*math.Atan2(math.Pow(rho/math.Abs(c.f), 1/c.n), 1))
	if c.n < 0 {
		lat = -lat
	}
	return coord.GeoPoint{Lat: lat, Lon: coord.WrapLongitude(lon)}
}

func (c *lccConstants) forward(p coord.GeoPoint) coord.ScreenPoint {
	x, y := c.toConformal(p.Lat, p.Lon)
	px := float64(c.centerXPixel) + (x-c.centerX)*c.pixelsPerUnit
	py := float64(c.centerYPixel) + (y-c.centerY)*c.pixelsPerUnit
	return coord.Pt(coord.Round(px), coord.Round(py))
}

func (c *lccConstants) inverse(p coord.ScreenPoint) coord.GeoPoint {
	x := c.centerX + float64(p.X-c.centerXPixel)/c.pixelsPerUnit
	y := c.centerY + float64(p.Y-c.centerYPixel)/c.pixelsPerUnit
	return c.fromConformal(x, y)
}

func (l *LambertConformal) load() *lccConstants { return l.state.Load() }

func (l *LambertConformal) store(c *lccConstants) {
	l.state.Store(c)
	if l.opts.logger != nil {
		l.opts.logger.WithFields(logrus.Fields{
			"projection":      LambertConformalName,
			"cone_constant":   c.n,
			"apex_factor":     c.f,
			"pixels_per_unit": c.pixelsPerUnit,
			"center_x":        c.centerX,
			"center_y":        c.centerY,
			"origin_x":        c.originX,
			"origin_y":        c.originY,
		}).Debug("Computed projection constants")
	}
}

// update applies fn to a copy of the current parameters and swaps in the
// recomputed constants. On error the previous state is kept.
func (l *LambertConformal) update(fn func(*Params)) error {
	p := l.load().params
	fn(&p)
	c, err := computeParameters(p, l.opts.calibration)
	if err != nil {
		return err
	}
	l.store(c)
	return nil
}

func (l *LambertConformal) Name() string   { return LambertConformalName }
func (l *LambertConformal) Family() Family { return Conic }
func (l *LambertConformal) Params() Params { return l.load().params }

// ConeConstant returns n, the ratio by which longitude is compressed on the
// unrolled cone.
func (l *LambertConformal) ConeConstant() float64 { return l.load().n }

func (l *LambertConformal) Forward(p coord.GeoPoint) coord.ScreenPoint {
	return l.load().forward(p)
}

func (l *LambertConformal) ForwardRadians(p coord.RadPoint) coord.ScreenPoint {
	return l.load().forward(p.Degrees())
}

func (l *LambertConformal) Inverse(p coord.ScreenPoint) coord.GeoPoint {
	return l.load().inverse(p)
}

func (l *LambertConformal) ForwardBatch(pts []coord.GeoPoint) Batch {
	c := l.load()
	return forwardBatch(c.forward, c.params.Width, c.params.Height, pts)
}

func (l *LambertConformal) ProjectPolyline(rawRad []float64, lt LineType, nsegs int, filled bool) Polyline {
	c := l.load()
	pp := polyProjector{
		forward: func(r coord.RadPoint) coord.ScreenPoint { return c.forward(r.Degrees()) },
		minLat:  coord.DegToRad(PolylineMinLat),
	}
	return pp.project(rawRad, lt, nsegs, filled)
}

// IsPlotable reports whether p is inside the usable latitude range and
// projects into the viewport. Latitudes past the north pole bound are
// rejected rather than clamped.
func (l *LambertConformal) IsPlotable(p coord.GeoPoint) bool {
	if math.IsNaN(p.Lat) || p.Lat < PlotableMinLat || p.Lat > NorthPoleBound {
		return false
	}
	c := l.load()
	return coord.InViewport(c.forward(p), c.params.Width, c.params.Height)
}

// UpperLeft returns the northwest extreme of the projection's domain. A
// conic view has no meaningful geographic bounding box, so the domain
// limits are returned instead.
func (l *LambertConformal) UpperLeft() coord.GeoPoint {
	return coord.GeoPoint{Lat: NorthPoleBound, Lon: -180}
}

// LowerRight returns the southeast extreme of the projection's domain.
func (l *LambertConformal) LowerRight() coord.GeoPoint {
	return coord.GeoPoint{Lat: SouthPoleBound, Lon: 180}
}

func (l *LambertConformal) Pan(azimuth float64) {
	if err := pan(l, azimuth); err != nil && l.opts.logger != nil {
		l.opts.logger.WithError(err).WithField("azimuth", azimuth).Debug("Pan ignored")
	}
}

func (l *LambertConformal) SetCenter(center coord.GeoPoint) error {
	return l.update(func(p *Params) { p.Center = center })
}

func (l *LambertConformal) SetScale(scale float64) error {
	return l.update(func(p *Params) { p.Scale = scale })
}

func (l *LambertConformal) Resize(width, height int) error {
	return l.update(func(p *Params) { p.Width, p.Height = width, height })
}

// Grid returns map grid coordinates in meters: the offset of p from the
// projection origin plus the false easting and northing.
func (l *LambertConformal) Grid(p coord.GeoPoint) (easting, northing float64) {
	c := l.load()
	x, y := c.toConformal(p.Lat, p.Lon)
	easting = (x-c.originX)*coord.EarthRadius + c.params.FalseEasting
	// Conformal y grows southward.
	northing = (c.originY-y)*coord.EarthRadius + c.params.FalseNorthing
	return
}

// FromGrid is the inverse of Grid.
func (l *LambertConformal) FromGrid(easting, northing float64) coord.GeoPoint {
	c := l.load()
	x := (easting-c.params.FalseEasting)/coord.EarthRadius + c.originX
	y := c.originY - (northing-c.params.FalseNorthing)/coord.EarthRadius
	return c.fromConformal(x, y)
}
