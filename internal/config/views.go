package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pk-codebox-evo/openmap/internal/coord"
	"github.com/pk-codebox-evo/openmap/internal/proj"
)

// Lambert parameters used by views that name the projection without
// giving parallels.
const (
	DefaultCentralMeridian = 15.0
	DefaultStdParallel1    = 21.67
	DefaultStdParallel2    = 48.33
)

// View is a saved map location.
type View struct {
	Name       string  `yaml:"name"`
	Projection string  `yaml:"projection"`
	Latitude   float64 `yaml:"latitude"`
	Longitude  float64 `yaml:"longitude"`
	// Scale is the 1:N scale denominator. Zero fits the whole world
	// across the viewport width.
	Scale float64 `yaml:"scale,omitempty"`

	CentralMeridian   *float64 `yaml:"central_meridian,omitempty"`
	StdParallel1      float64  `yaml:"std_parallel_1,omitempty"`
	StdParallel2      float64  `yaml:"std_parallel_2,omitempty"`
	ReferenceLatitude float64  `yaml:"reference_latitude,omitempty"`
	FalseEasting      float64  `yaml:"false_easting,omitempty"`
	FalseNorthing     float64  `yaml:"false_northing,omitempty"`
}

type viewFile struct {
	Views []View `yaml:"views"`
}

// DefaultViews returns the built-in views.
func DefaultViews() []View {
	return []View{
		{Name: "World", Projection: proj.MercatorName},
	}
}

// ParseViews decodes a YAML document with a top-level "views" list.
func ParseViews(data []byte) ([]View, error) {
	var f viewFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	for i, v := range f.Views {
		if strings.TrimSpace(v.Name) == "" {
			return nil, fmt.Errorf("parse views: view %d has no name", i)
		}
		if v.Scale < 0 {
			return nil, fmt.Errorf("parse views: view %q has negative scale %g", v.Name, v.Scale)
		}
	}
	return f.Views, nil
}

// LoadViews reads saved views from a YAML file.
func LoadViews(path string) ([]View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read views: %w", err)
	}
	return ParseViews(data)
}

// MarshalViews encodes views in the format ParseViews reads.
func MarshalViews(views []View) ([]byte, error) {
	return yaml.Marshal(viewFile{Views: views})
}

// FindView looks a view up by name, ignoring case.
func FindView(views []View, name string) (View, bool) {
	for _, v := range views {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return View{}, false
}

// Params returns projection parameters for the view in a width x height
// viewport.
func (v View) Params(width, height int) proj.Params {
	p := proj.Params{
		Center:            coord.LatLon(v.Latitude, v.Longitude),
		Scale:             v.Scale,
		Width:             width,
		Height:            height,
		CentralMeridian:   DefaultCentralMeridian,
		StdParallel1:      v.StdParallel1,
		StdParallel2:      v.StdParallel2,
		ReferenceLatitude: v.ReferenceLatitude,
		FalseEasting:      v.FalseEasting,
		FalseNorthing:     v.FalseNorthing,
	}
	if v.CentralMeridian != nil {
		p.CentralMeridian = *v.CentralMeridian
	}
	if p.StdParallel1 == 0 && p.StdParallel2 == 0 {
		p.StdParallel1, p.StdParallel2 = DefaultStdParallel1, DefaultStdParallel2
	}
	if p.Scale == 0 && width > 0 {
		p.Scale = proj.MaxScale(width)
	}
	return p
}

// Build constructs the view's projection. An empty projection name
// selects Mercator.
func (v View) Build(width, height int, opts ...proj.Option) (proj.Projection, error) {
	name := v.Projection
	if name == "" {
		name = proj.MercatorName
	}
	p, err := proj.New(name, v.Params(width, height), opts...)
	if err != nil {
		return nil, fmt.Errorf("view %q: %w", v.Name, err)
	}
	return p, nil
}
