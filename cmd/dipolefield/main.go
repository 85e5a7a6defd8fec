package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dipolefield/internal/analysis"
	"github.com/san-kum/dipolefield/internal/config"
	"github.com/san-kum/dipolefield/internal/export"
	"github.com/san-kum/dipolefield/internal/field"
	"github.com/san-kum/dipolefield/internal/integrators"
	"github.com/san-kum/dipolefield/internal/metrics"
	"github.com/san-kum/dipolefield/internal/physics"
	"github.com/san-kum/dipolefield/internal/render"
	"github.com/san-kum/dipolefield/internal/stream"
	"github.com/san-kum/dipolefield/internal/viz"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"
)

var (
	configFile string
	preset     string
	verbose    bool

	b0          float64
	radius      float64
	tilt        float64
	nx          int
	ny          int
	xmax        float64
	ymax        float64
	allowOrigin bool

	output     string
	dpi        int
	sizeIn     float64
	density    float64
	arrowSize  float64
	integrator string
	trace      string
	show       bool
	theme      string

	width   int
	height  int
	plain   bool
	angle   float64
	samples int
	format  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dipolefield",
		Short: "render the dipole approximation of a planetary magnetic field",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE:         runRender,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or ini)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64Var(&b0, "b0", physics.DefaultB0, "equatorial surface field in tesla")
	pf.Float64Var(&radius, "radius", physics.DefaultRadius, "planet radius in 10^6 m")
	pf.Float64Var(&tilt, "tilt", physics.DefaultTiltDeg, "magnetic axis tilt in degrees")
	pf.IntVar(&nx, "nx", config.DefaultN, "grid samples along x")
	pf.IntVar(&ny, "ny", config.DefaultN, "grid samples along y")
	pf.Float64Var(&xmax, "xmax", config.DefaultExtent, "half width of the domain in 10^6 m")
	pf.Float64Var(&ymax, "ymax", config.DefaultExtent, "half height of the domain in 10^6 m")
	pf.BoolVar(&allowOrigin, "allow-origin", false, "allow a grid that samples r = 0")
	pf.Float64Var(&density, "density", config.DefaultDensity, "streamline density")
	pf.StringVar(&integrator, "integrator", "rk4", "streamline integrator (rk4, euler)")
	pf.StringVar(&trace, "trace", config.TraceGrid, "trace the interpolated grid or the analytic field (grid, analytic)")
	pf.StringVar(&theme, "theme", "figure", fmt.Sprintf("preview theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	addRenderFlags := func(fs *pflag.FlagSet) {
		fs.StringVarP(&output, "output", "o", config.DefaultOutput, "output image (png, jpg, tif, svg, pdf, eps)")
		fs.IntVar(&dpi, "dpi", config.DefaultDPI, "raster resolution")
		fs.Float64Var(&sizeIn, "size", config.DefaultSizeIn, "figure width and height in inches")
		fs.Float64Var(&arrowSize, "arrow-size", config.DefaultArrow, "arrowhead size")
		fs.BoolVar(&show, "show", false, "print a terminal preview after saving")
	}
	addRenderFlags(rootCmd.Flags())

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "compute the field and save the figure",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addRenderFlags(renderCmd.Flags())

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "draw the field lines in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&width, "width", viz.DefaultWidth, "preview width in cells")
	previewCmd.Flags().IntVar(&height, "height", viz.DefaultHeight, "preview height in cells")
	previewCmd.Flags().BoolVar(&plain, "plain", false, "print the bare canvas without colour or frame")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot |B| along a ray from the surface to the domain edge",
		Args:  cobra.NoArgs,
		RunE:  runProfile,
	}
	profileCmd.Flags().Float64Var(&angle, "angle", 0, "ray angle in degrees from +x")
	profileCmd.Flags().IntVar(&samples, "samples", 80, "samples along the ray")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "dump the sampled grid to stdout",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}
	sampleCmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(renderCmd, previewCmd, profileCmd, sampleCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			if s := config.SuggestPreset(preset); s != "" {
				return nil, fmt.Errorf("unknown preset: %s (did you mean %s?)", preset, s)
			}
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	params := make(map[string]float64)
	if flags.Changed("b0") {
		params["b0"] = b0
	}
	if flags.Changed("radius") {
		params["radius"] = radius
	}
	if flags.Changed("tilt") {
		params["tilt"] = tilt
	}
	if err := cfg.SetFieldParams(params); err != nil {
		return nil, err
	}
	if flags.Changed("nx") {
		cfg.NX = nx
	}
	if flags.Changed("ny") {
		cfg.NY = ny
	}
	if flags.Changed("xmax") {
		cfg.XMax = xmax
	}
	if flags.Changed("ymax") {
		cfg.YMax = ymax
	}
	if flags.Changed("allow-origin") {
		cfg.AllowOrigin = allowOrigin
	}
	if flags.Changed("density") {
		cfg.Render.Density = density
	}
	if flags.Changed("integrator") {
		cfg.Render.Integrator = integrator
	}
	if flags.Changed("trace") {
		cfg.Render.Trace = trace
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if flags.Lookup("output") != nil {
		if flags.Changed("output") {
			cfg.Render.Output = output
		}
		if flags.Changed("dpi") {
			cfg.Render.DPI = dpi
		}
		if flags.Changed("size") {
			cfg.Render.SizeIn = sizeIn
		}
		if flags.Changed("arrow-size") {
			cfg.Render.ArrowSize = arrowSize
		}
		if flags.Changed("show") {
			cfg.Render.Show = show
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func computeField(cfg *config.Config) (*field.VectorField, error) {
	start := time.Now()
	f, err := field.Compute(cfg.Params())
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"nx":        cfg.NX,
		"ny":        cfg.NY,
		"extent":    fmt.Sprintf("±%g x ±%g", cfg.XMax, cfg.YMax),
		"tilt_deg":  cfg.TiltDeg,
		"nonfinite": f.NonFinite(),
		"elapsed":   time.Since(start),
	}).Debug("field sampled")
	return f, nil
}

func traceLines(cfg *config.Config, f *field.VectorField) ([]stream.Line, error) {
	integ, ok := integrators.ByName(cfg.Render.Integrator)
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", cfg.Render.Integrator)
	}
	opts := stream.DefaultOptions()
	opts.Density = cfg.Render.Density
	opts.Integrator = integ

	var src stream.Field = f
	if cfg.Render.Trace == config.TraceAnalytic {
		src = f.Analytic()
	}

	start := time.Now()
	lines := stream.Trace(src, opts)
	fields := log.Fields{
		"density":    opts.Density,
		"integrator": cfg.Render.Integrator,
		"trace":      cfg.Render.Trace,
		"elapsed":    time.Since(start),
	}
	for name, v := range metrics.Summarize(lines, metrics.Default()...) {
		fields[name] = v
	}
	log.WithFields(fields).Debug("streamlines traced")
	return lines, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := computeField(cfg)
	if err != nil {
		return err
	}
	lines, err := traceLines(cfg, f)
	if err != nil {
		return err
	}

	style := render.DefaultStyle()
	style.ArrowSize = cfg.Render.ArrowSize
	fig := &render.Figure{Field: f, Lines: lines, Style: style}
	p, err := fig.Plot()
	if err != nil {
		return fmt.Errorf("compose figure: %w", err)
	}

	size := vg.Length(cfg.Render.SizeIn) * vg.Inch
	n, err := render.Save(p, cfg.Render.Output, size, cfg.Render.DPI)
	if err != nil {
		return fmt.Errorf("write %s: %w", cfg.Render.Output, err)
	}
	log.WithFields(log.Fields{
		"path":  cfg.Render.Output,
		"size":  humanize.Bytes(uint64(n)),
		"dpi":   cfg.Render.DPI,
		"lines": len(lines),
	}).Info("figure written")

	if cfg.Render.Show {
		fmt.Println(viz.Preview(f, lines, viz.DefaultWidth, viz.DefaultHeight, viz.GetTheme(cfg.Render.Theme)))
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("preview size must be positive, got %dx%d", width, height)
	}
	f, err := computeField(cfg)
	if err != nil {
		return err
	}
	lines, err := traceLines(cfg, f)
	if err != nil {
		return err
	}
	if plain {
		fmt.Print(viz.Draw(f, lines, width, height).String())
		return nil
	}
	t := viz.GetTheme(cfg.Render.Theme)
	fmt.Println(viz.Preview(f, lines, width, height, t))
	fmt.Println()
	fmt.Println(viz.Stats(metrics.Summarize(lines, metrics.Default()...), t))
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", samples)
	}

	d := physics.NewDipole(cfg.B0, cfg.Radius, cfg.Alpha())
	theta := physics.Radians(angle)
	rmax := rayExtent(theta, cfg.XMax, cfg.YMax)
	if rmax <= cfg.Radius {
		return fmt.Errorf("planet (radius %g) fills the domain along %g°", cfg.Radius, angle)
	}

	prof := analysis.Profile(d, theta, cfg.Radius, rmax, samples)
	caption := fmt.Sprintf("|B| in µT along %.1f°, r from %.3g to %.3g (10⁶ m)", angle, cfg.Radius, rmax)
	graph := asciigraph.Plot(prof.Scaled(1e6),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "surface |B| at (RE, 0):\t%.6e T\n", d.SurfaceEquator())
	fmt.Fprintf(w, "|B| at r = %.3g:\t%.6e T\n", cfg.Radius, prof.B[0])
	fmt.Fprintf(w, "|B| at r = %.3g:\t%.6e T\n", rmax, prof.B[len(prof.B)-1])
	fmt.Fprintf(w, "decay exponent:\t%.4f\n", prof.DecayExponent())
	return w.Flush()
}

// rayExtent returns the distance from the origin to the domain boundary
// along theta.
func rayExtent(theta, xmax, ymax float64) float64 {
	sin, cos := math.Sincos(theta)
	r := math.Inf(1)
	if c := math.Abs(cos); c > 1e-12 {
		r = xmax / c
	}
	if s := math.Abs(sin); s > 1e-12 {
		r = math.Min(r, ymax/s)
	}
	return r
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := computeField(cfg)
	if err != nil {
		return err
	}
	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, f)
	case "json":
		return export.WriteJSON(os.Stdout, f)
	}
	return fmt.Errorf("unknown format: %s (csv, json)", format)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTILT\tGRID\tEXTENT\tDENSITY\tOUTPUT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1f°\t%dx%d\t±%g x ±%g\t%g\t%s\n",
			name, p.TiltDeg, p.NX, p.NY, p.XMax, p.YMax, p.Render.Density, p.Render.Output)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", args[0])
	return nil
}
