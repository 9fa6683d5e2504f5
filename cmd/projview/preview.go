package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pk-codebox-evo/openmap/internal/coord"
	"github.com/pk-codebox-evo/openmap/internal/encode"
	"github.com/pk-codebox-evo/openmap/internal/graticule"
	"github.com/pk-codebox-evo/openmap/internal/proj"
)

var (
	backgroundColor = color.RGBA{0x1b, 0x26, 0x3b, 0xff}
	tenDegreeColor  = color.RGBA{0x7f, 0x8c, 0x8d, 0xff}
	markerColor     = color.RGBA{0xe6, 0x7e, 0x22, 0xff}
	pointColor      = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
)

// renderPreview draws the graticule and the plotable sample points and
// returns the encoded image.
func renderPreview(p proj.Projection, pts []coord.GeoPoint, nsegs int, enc encode.Encoder, log logrus.FieldLogger) ([]byte, error) {
	prm := p.Params()
	c := encode.NewCanvas(prm.Width, prm.Height)
	defer c.Release()

	c.Fill(backgroundColor)
	for _, line := range graticule.Project(p, nsegs, log) {
		col := tenDegreeColor
		if line.Kind == graticule.Marker {
			col = markerColor
		}
		c.Polyline(line.Polyline.Points(), col)
	}

	b := p.ForwardBatch(pts)
	for i, sp := range b.Points {
		if b.Visible[i] && p.IsPlotable(pts[i]) {
			c.Marker(sp, 4, pointColor)
		}
	}

	data, err := enc.Encode(c.Image())
	if err != nil {
		return nil, fmt.Errorf("encode %s preview: %w", enc.Format(), err)
	}
	return data, nil
}

// writePreview renders the preview and writes it to path.
func writePreview(path string, p proj.Projection, pts []coord.GeoPoint, nsegs, quality int, log logrus.FieldLogger) (int, error) {
	format, err := encode.FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	enc, err := encode.NewEncoder(format, quality)
	if err != nil {
		return 0, err
	}
	data, err := renderPreview(p, pts, nsegs, enc, log)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write preview: %w", err)
	}
	return len(data), nil
}
