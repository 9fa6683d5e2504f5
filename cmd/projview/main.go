package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/pk-codebox-evo/openmap/internal/config"
	"github.com/pk-codebox-evo/openmap/internal/coord"
	"github.com/pk-codebox-evo/openmap/internal/logging"
	"github.com/pk-codebox-evo/openmap/internal/proj"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// defaults holds flag defaults that can be overridden from the
// environment or a .env file.
type defaults struct {
	projection string
	width      int
	height     int
	verbose    bool
}

func envDefaults() defaults {
	return defaults{
		projection: config.GetEnv(config.ProjectionEnv, proj.LambertConformalName),
		width:      config.GetEnvInt(config.WidthEnv, 620),
		height:     config.GetEnvInt(config.HeightEnv, 480),
		verbose:    config.GetEnvBool(config.VerboseEnv, false),
	}
}

// gridder is implemented by projections with a metric grid.
type gridder interface {
	Grid(p coord.GeoPoint) (easting, northing float64)
}

func main() {
	var (
		projection  string
		viewName    string
		viewsFile   string
		lat, lon    float64
		scale       float64
		width       int
		height      int
		cm          float64
		sp1, sp2    float64
		refLat      float64
		falseE      float64
		falseN      float64
		calibration float64
		pan         string
		nsegs       int
		preview     string
		quality     int
		dump        bool
		verbose     bool
		showVersion bool
		forward     listFlag
		inverse     listFlag
	)

	log := logging.NewLoggerWithComponent("projview")
	config.LoadEnv(log)
	// LOG_LEVEL may have come from a .env file.
	log.Logger.SetLevel(config.GetLogLevel())
	def := envDefaults()

	flag.StringVar(&projection, "projection", def.projection, "Projection: lcc, mercator (default from $"+config.ProjectionEnv+")")
	flag.StringVar(&viewName, "view", "", "Start from a saved view (overrides the center/scale/projection flags)")
	flag.StringVar(&viewsFile, "views", "", "YAML file with saved views (default: built-in views only)")
	flag.Float64Var(&lat, "lat", 0, "Center latitude in degrees")
	flag.Float64Var(&lon, "lon", 0, "Center longitude in degrees")
	flag.Float64Var(&scale, "scale", 1e5, "Scale denominator (1:N)")
	flag.IntVar(&width, "width", def.width, "Viewport width in pixels (default from $"+config.WidthEnv+")")
	flag.IntVar(&height, "height", def.height, "Viewport height in pixels (default from $"+config.HeightEnv+")")
	flag.Float64Var(&cm, "cm", config.DefaultCentralMeridian, "Lambert central meridian in degrees")
	flag.Float64Var(&sp1, "sp1", config.DefaultStdParallel1, "Lambert first standard parallel in degrees")
	flag.Float64Var(&sp2, "sp2", config.DefaultStdParallel2, "Lambert second standard parallel in degrees")
	flag.Float64Var(&refLat, "ref-lat", 0, "Lambert reference latitude (grid origin) in degrees")
	flag.Float64Var(&falseE, "false-easting", 0, "Lambert false easting in meters")
	flag.Float64Var(&falseN, "false-northing", 0, "Lambert false northing in meters")
	flag.Float64Var(&calibration, "calibration", 0, "Lambert pixels-per-unit calibration (default: $"+config.CalibrationEnv+" or 100)")
	flag.StringVar(&pan, "pan", "", "Comma-separated pan azimuths in degrees or compass names, applied in order")
	flag.IntVar(&nsegs, "nsegs", 0, "Intermediate points per graticule edge (0 = one per degree)")
	flag.StringVar(&preview, "preview", "", "Write a preview image (.png, .jpg or .webp)")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP quality 1-100 (0 = default)")
	flag.BoolVar(&dump, "dump", false, "Dump the final projection parameters")
	flag.BoolVar(&verbose, "verbose", def.verbose, "Log recomputed projection constants (default from $"+config.VerboseEnv+")")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Var(&forward, "fwd", "Project lat,lon to pixels (repeatable)")
	flag.Var(&inverse, "inv", "Convert pixel x,y to lat,lon (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: projview [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Build a map projection, convert points and render a graticule preview.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("projview %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if verbose && log.Logger.GetLevel() < logrus.DebugLevel {
		log.Logger.SetLevel(logrus.DebugLevel)
	}

	if calibration <= 0 {
		calibration = config.Calibration(proj.DefaultCalibration)
	}
	opts := []proj.Option{proj.WithLogger(log), proj.WithCalibration(calibration)}

	p, err := buildProjection(viewName, viewsFile, width, height, opts, func() (string, proj.Params) {
		return projection, proj.Params{
			Center:            coord.LatLon(lat, lon),
			Scale:             scale,
			Width:             width,
			Height:            height,
			CentralMeridian:   cm,
			StdParallel1:      sp1,
			StdParallel2:      sp2,
			ReferenceLatitude: refLat,
			FalseEasting:      falseE,
			FalseNorthing:     falseN,
		}
	})
	if err != nil {
		log.WithError(err).Fatal("Building projection")
	}

	azimuths, err := parseAzimuths(pan)
	if err != nil {
		log.WithError(err).Fatal("Parsing -pan")
	}
	for _, az := range azimuths {
		p.Pan(az)
		log.WithFields(logging.Fields{"azimuth": az, "center": p.Params().Center.String()}).Info("Panned")
	}

	prm := p.Params()
	fmt.Printf("projview %s (commit %s, built %s)\n", version, commit, buildDate)
	fmt.Printf("  %-14s %s (%s)\n", "Projection:", p.Name(), p.Family())
	fmt.Printf("  %-14s %s\n", "Center:", prm.Center)
	fmt.Printf("  %-14s 1:%.0f\n", "Scale:", prm.Scale)
	fmt.Printf("  %-14s %dx%d\n", "Viewport:", prm.Width, prm.Height)
	fmt.Printf("  %-14s %s\n", "Upper left:", p.UpperLeft())
	fmt.Printf("  %-14s %s\n", "Lower right:", p.LowerRight())

	var samples []coord.GeoPoint
	for _, s := range forward {
		g, err := parseGeo(s)
		if err != nil {
			log.WithError(err).Fatal("Parsing -fwd")
		}
		samples = append(samples, g)
		sp := p.Forward(g)
		fmt.Printf("fwd %s -> (%d, %d) plotable=%t", g, sp.X, sp.Y, p.IsPlotable(g))
		if gr, ok := p.(gridder); ok {
			e, n := gr.Grid(g)
			fmt.Printf(" grid=(%.1f E, %.1f N)", e, n)
		}
		fmt.Println()
	}
	for _, s := range inverse {
		px, err := parsePixel(s)
		if err != nil {
			log.WithError(err).Fatal("Parsing -inv")
		}
		g := p.Inverse(px)
		fmt.Printf("inv (%d, %d) -> %.6f, %.6f (%s)\n", px.X, px.Y, g.Lat, g.Lon, g)
	}

	if dump {
		spew.Dump(prm)
	}

	if preview != "" {
		n, err := writePreview(preview, p, samples, nsegs, quality, log)
		if err != nil {
			log.WithError(err).Fatal("Writing preview")
		}
		log.WithFields(logging.Fields{"path": preview, "bytes": n}).Info("Wrote preview")
	}
}

// buildProjection builds from a saved view when one is named, otherwise
// from the flag values returned by fromFlags.
func buildProjection(viewName, viewsFile string, width, height int, opts []proj.Option, fromFlags func() (string, proj.Params)) (proj.Projection, error) {
	if viewName == "" {
		name, prm := fromFlags()
		return proj.New(name, prm, opts...)
	}

	views := config.DefaultViews()
	if viewsFile != "" {
		loaded, err := config.LoadViews(viewsFile)
		if err != nil {
			return nil, err
		}
		views = append(views, loaded...)
	}
	v, ok := config.FindView(views, viewName)
	if !ok {
		return nil, fmt.Errorf("no saved view named %q", viewName)
	}
	return v.Build(width, height, opts...)
}
