package proj

import (
	"math"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

// MercatorName identifies the spherical Mercator family.
const MercatorName = "Mercator"

type mercConstants struct {
	params Params

	centerXPixel, centerYPixel int
	pixelsPerMeter             float64
	centerX, centerY           float64 // Web Mercator meters of the view center
}

// Mercator is the spherical Mercator projection. The central meridian
// follows the view center; CentralMeridian and the standard parallels in
// Params are ignored.
type Mercator struct {
	opts  options
	plane coord.WebMercator
	state atomic.Pointer[mercConstants]
}

// NewMercator validates p and builds a Mercator view.
func NewMercator(p Params, opts ...Option) (*Mercator, error) {
	m := &Mercator{opts: buildOptions(opts)}
	c, err := m.compute(p)
	if err != nil {
		return nil, err
	}
	m.store(c)
	return m, nil
}

func (m *Mercator) compute(p Params) (*mercConstants, error) {
	if err := validateViewport(p); err != nil {
		return nil, err
	}
	p.Center = coord.GeoPoint{
		Lat: coord.ClampLatitude(p.Center.Lat, -coord.MercatorMaxLat, coord.MercatorMaxLat),
		Lon: coord.WrapLongitude(p.Center.Lon),
	}
	c := &mercConstants{
		params:         p,
		centerXPixel:   coord.Round(float64(p.Width) / 2),
		centerYPixel:   coord.Round(float64(p.Height) / 2),
		pixelsPerMeter: coord.PixelsPerMeter / p.Scale,
	}
	if !finite(c.pixelsPerMeter) || c.pixelsPerMeter <= 0 {
		return nil, invalid("scale", p.Scale, "gives no usable pixels-per-meter ratio")
	}
	c.centerX, c.centerY = m.plane.Project(p.Center)
	return c, nil
}

func (m *Mercator) load() *mercConstants { return m.state.Load() }

func (m *Mercator) store(c *mercConstants) {
	m.state.Store(c)
	if m.opts.logger != nil {
		m.opts.logger.WithFields(logrus.Fields{
			"projection":       MercatorName,
			"pixels_per_meter": c.pixelsPerMeter,
			"center_x":         c.centerX,
			"center_y":         c.centerY,
		}).Debug("Computed projection constants")
	}
}

func (m *Mercator) update(fn func(*Params)) error {
	p := m.load().params
	fn(&p)
	c, err := m.compute(p)
	if err != nil {
		return err
	}
	m.store(c)
	return nil
}

func (m *Mercator) forward(c *mercConstants, p coord.GeoPoint) coord.ScreenPoint {
	x, y := m.plane.Project(p)
	dx := x - c.centerX
	// Take the short way around the antimeridian.
	if dx > coord.OriginShift {
		dx -= coord.EarthCircumference
	} else if dx <= -coord.OriginShift {
		dx += coord.EarthCircumference
	}
	px := float64(c.centerXPixel) + dx*c.pixelsPerMeter
	py := float64(c.centerYPixel) - (y-c.centerY)*c.pixelsPerMeter
	return coord.Pt(coord.Round(px), coord.Round(py))
}

func (m *Mercator) inverse(c *mercConstants, p coord.ScreenPoint) coord.GeoPoint {
	x := c.centerX + float64(p.X-c.centerXPixel)/c.pixelsPerMeter
	y := c.centerY - float64(p.Y-c.centerYPixel)/c.pixelsPerMeter
	return m.plane.Unproject(x, y).Normalize()
}

func (m *Mercator) Name() string   { return MercatorName }
func (m *Mercator) Family() Family { return Cylindrical }
func (m *Mercator) Params() Params { return m.load().params }

func (m *Mercator) Forward(p coord.GeoPoint) coord.ScreenPoint {
	return m.forward(m.load(), p)
}

func (m *Mercator) ForwardRadians(p coord.RadPoint) coord.ScreenPoint {
	return m.forward(m.load(), p.Degrees())
}

func (m *Mercator) Inverse(p coord.ScreenPoint) coord.GeoPoint {
	return m.inverse(m.load(), p)
}

func (m *Mercator) ForwardBatch(pts []coord.GeoPoint) Batch {
	c := m.load()
	fwd := func(p coord.GeoPoint) coord.ScreenPoint { return m.forward(c, p) }
	return forwardBatch(fwd, c.params.Width, c.params.Height, pts)
}

func (m *Mercator) ProjectPolyline(rawRad []float64, lt LineType, nsegs int, filled bool) Polyline {
	c := m.load()
	pp := polyProjector{
		forward: func(r coord.RadPoint) coord.ScreenPoint { return m.forward(c, r.Degrees()) },
		minLat:  math.Inf(-1),
	}
	return pp.project(rawRad, lt, nsegs, filled)
}

func (m *Mercator) IsPlotable(p coord.GeoPoint) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	c := m.load()
	return coord.InViewport(m.forward(c, p), c.params.Width, c.params.Height)
}

// UpperLeft returns the geographic point under the top-left pixel. When the
// viewport spans the whole world horizontally the longitude is -180.
func (m *Mercator) UpperLeft() coord.GeoPoint {
	c := m.load()
	ul := m.inverse(c, coord.Pt(0, 0))
	ul.Lat = coord.ClampLatitude(ul.Lat, -coord.MercatorMaxLat, coord.MercatorMaxLat)
	if m.spansWorld(c) {
		ul.Lon = -180
	}
	return ul
}

// LowerRight returns the geographic point under the bottom-right corner.
func (m *Mercator) LowerRight() coord.GeoPoint {
	c := m.load()
	lr := m.inverse(c, coord.Pt(c.params.Width, c.params.Height))
	lr.Lat = coord.ClampLatitude(lr.Lat, -coord.MercatorMaxLat, coord.MercatorMaxLat)
	if m.spansWorld(c) {
		lr.Lon = 180
	}
	return lr
}

func (m *Mercator) spansWorld(c *mercConstants) bool {
	return float64(c.params.Width)/c.pixelsPerMeter >= coord.EarthCircumference
}

func (m *Mercator) Pan(azimuth float64) {
	if err := pan(m, azimuth); err != nil && m.opts.logger != nil {
		m.opts.logger.WithError(err).WithField("azimuth", azimuth).Debug("Pan ignored")
	}
}

func (m *Mercator) SetCenter(center coord.GeoPoint) error {
	return m.update(func(p *Params) { p.Center = center })
}

func (m *Mercator) SetScale(scale float64) error {
	return m.update(func(p *Params) { p.Scale = scale })
}

func (m *Mercator) Resize(width, height int) error {
	return m.update(func(p *Params) { p.Width, p.Height = width, height })
}
