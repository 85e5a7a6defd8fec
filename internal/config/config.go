package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/dipolefield/internal/field"
	"github.com/san-kum/dipolefield/internal/grid"
	"github.com/san-kum/dipolefield/internal/integrators"
	"github.com/san-kum/dipolefield/internal/physics"
	"github.com/san-kum/dipolefield/internal/viz"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultN       = 64
	DefaultExtent  = 40.0
	DefaultDPI     = 300
	DefaultSizeIn  = 8.0
	DefaultDensity = 2.0
	DefaultArrow   = 1.5
	DefaultOutput  = "earths_magnetic_field.png"

	TraceGrid     = "grid"
	TraceAnalytic = "analytic"
)

var (
	ErrInvalid       = errors.New("config: invalid value")
	ErrOriginSampled = errors.New("config: grid samples the singular point r = 0")
	ErrFormat        = errors.New("config: unsupported config file format")
)

type Config struct {
	B0          float64      `yaml:"b0"`
	Radius      float64      `yaml:"radius"`
	TiltDeg     float64      `yaml:"tilt_deg"`
	NX          int          `yaml:"nx"`
	NY          int          `yaml:"ny"`
	XMax        float64      `yaml:"xmax"`
	YMax        float64      `yaml:"ymax"`
	AllowOrigin bool         `yaml:"allow_origin"`
	Render      RenderConfig `yaml:"render"`
}

type RenderConfig struct {
	Output     string  `yaml:"output"`
	DPI        int     `yaml:"dpi"`
	SizeIn     float64 `yaml:"size_in"`
	Density    float64 `yaml:"density"`
	ArrowSize  float64 `yaml:"arrow_size"`
	Integrator string  `yaml:"integrator"`
	Trace      string  `yaml:"trace"`
	Show       bool    `yaml:"show"`
	Theme      string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		B0:      physics.DefaultB0,
		Radius:  physics.DefaultRadius,
		TiltDeg: physics.DefaultTiltDeg,
		NX:      DefaultN,
		NY:      DefaultN,
		XMax:    DefaultExtent,
		YMax:    DefaultExtent,
		Render: RenderConfig{
			Output:     DefaultOutput,
			DPI:        DefaultDPI,
			SizeIn:     DefaultSizeIn,
			Density:    DefaultDensity,
			ArrowSize:  DefaultArrow,
			Integrator: "rk4",
			Trace:      TraceGrid,
			Theme:      "figure",
		},
	}
}

// Alpha returns the tilt in radians.
func (c *Config) Alpha() float64 {
	return physics.Radians(c.TiltDeg)
}

func (c *Config) Params() field.Params {
	return field.Params{
		B0:     c.B0,
		Radius: c.Radius,
		Alpha:  c.Alpha(),
		NX:     c.NX,
		NY:     c.NY,
		XMax:   c.XMax,
		YMax:   c.YMax,
	}
}

func (c *Config) Validate() error {
	positive := map[string]float64{
		"radius":  c.Radius,
		"xmax":    c.XMax,
		"ymax":    c.YMax,
		"size_in": c.Render.SizeIn,
		"density": c.Render.Density,
		"arrow":   c.Render.ArrowSize,
		"dpi":     float64(c.Render.DPI),
		"|b0|":    math.Abs(c.B0),
	}
	for _, name := range []string{"radius", "xmax", "ymax", "size_in", "density", "arrow", "dpi", "|b0|"} {
		if v := positive[name]; !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalid, name, v)
		}
	}
	if math.IsNaN(c.TiltDeg) || math.IsInf(c.TiltDeg, 0) {
		return fmt.Errorf("%w: tilt_deg must be finite", ErrInvalid)
	}
	if c.NX < 2 || c.NY < 2 {
		return fmt.Errorf("%w: nx and ny must be at least 2, got %dx%d", ErrInvalid, c.NX, c.NY)
	}
	if c.Render.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	if _, ok := integrators.ByName(c.Render.Integrator); !ok {
		return fmt.Errorf("%w: unknown integrator %q (rk4, euler)", ErrInvalid, c.Render.Integrator)
	}
	if c.Render.Trace != TraceGrid && c.Render.Trace != TraceAnalytic {
		return fmt.Errorf("%w: unknown trace mode %q (%s, %s)", ErrInvalid, c.Render.Trace, TraceGrid, TraceAnalytic)
	}
	if !validTheme(c.Render.Theme) {
		return fmt.Errorf("%w: unknown theme %q (%s)", ErrInvalid, c.Render.Theme, strings.Join(viz.ThemeNames(), ", "))
	}

	g, err := grid.New(c.NX, c.NY, c.XMax, c.YMax)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if g.HasOrigin() && !c.AllowOrigin {
		return fmt.Errorf("%w (nx=%d, ny=%d); use even counts or set allow_origin", ErrOriginSampled, c.NX, c.NY)
	}
	return nil
}

func validTheme(name string) bool {
	for _, t := range viz.ThemeNames() {
		if t == name {
			return true
		}
	}
	return false
}

// SetFieldParams applies named dipole parameters ("b0", "radius", "tilt" in
// degrees) to c.
func (c *Config) SetFieldParams(params map[string]float64) error {
	d := physics.NewDipole(c.B0, c.Radius, c.Alpha())
	for name, v := range params {
		if err := d.SetParam(name, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	got := d.GetParams()
	c.B0, c.Radius = got["b0"], got["radius"]
	// GetParams reports tilt through radians; keep the degrees as given.
	if tilt, ok := params["tilt"]; ok {
		c.TiltDeg = tilt
	}
	return nil
}

// Load reads a YAML (.yaml, .yml) or INI (.ini) file over the defaults.
func Load(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".ini":
		return loadINI(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrFormat, path)
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadINI(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	def := DefaultConfig()
	f := file.Section("field")
	r := file.Section("render")
	return &Config{
		B0:          f.Key("b0").MustFloat64(def.B0),
		Radius:      f.Key("radius").MustFloat64(def.Radius),
		TiltDeg:     f.Key("tilt_deg").MustFloat64(def.TiltDeg),
		NX:          f.Key("nx").MustInt(def.NX),
		NY:          f.Key("ny").MustInt(def.NY),
		XMax:        f.Key("xmax").MustFloat64(def.XMax),
		YMax:        f.Key("ymax").MustFloat64(def.YMax),
		AllowOrigin: f.Key("allow_origin").MustBool(def.AllowOrigin),
		Render: RenderConfig{
			Output:     r.Key("output").MustString(def.Render.Output),
			DPI:        r.Key("dpi").MustInt(def.Render.DPI),
			SizeIn:     r.Key("size_in").MustFloat64(def.Render.SizeIn),
			Density:    r.Key("density").MustFloat64(def.Render.Density),
			ArrowSize:  r.Key("arrow_size").MustFloat64(def.Render.ArrowSize),
			Integrator: r.Key("integrator").MustString(def.Render.Integrator),
			Trace:      r.Key("trace").MustString(def.Render.Trace),
			Show:       r.Key("show").MustBool(def.Render.Show),
			Theme:      r.Key("theme").MustString(def.Render.Theme),
		},
	}, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
