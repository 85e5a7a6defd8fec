// Package stream traces streamlines of a planar vector field.
//
// Seeding follows the occupancy-mask scheme of matplotlib's streamplot: the
// domain is covered by a coarse mask of 30*density cells per side, seeds are
// visited in an inward spiral from the boundary, and every trajectory is
// integrated forwards and backwards until it leaves the domain, reaches a
// cell already claimed by another line, hits an undefined field, or exceeds
// its maximum length. Lines shorter than the minimum length are discarded and
// release the cells they claimed.
package stream

import (
	"math"

	"github.com/san-kum/dipolefield/internal/dynamo"
	"github.com/san-kum/dipolefield/internal/integrators"
)

const (
	DefaultDensity   = 1.0
	DefaultMinLength = 0.1
	DefaultMaxLength = 4.0
	DefaultStep      = 0.25
)

// Field is a direction field over a rectangular domain. Derive must return a
// unit vector, or a zero vector where the field is undefined.
type Field interface {
	dynamo.System
	Bounds() (xmin, xmax, ymin, ymax float64)
}

type Options struct {
	Density float64
	// MinLength and MaxLength are fractions of the domain width.
	MinLength float64
	MaxLength float64
	// Step is the integration step as a fraction of a mask cell.
	Step       float64
	Integrator dynamo.Integrator
}

func DefaultOptions() Options {
	return Options{
		Density:   DefaultDensity,
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		Step:      DefaultStep,
	}
}

// Line is a streamline ordered along the field direction. Arrow indexes the
// point at which a direction marker belongs.
type Line struct {
	Points []dynamo.State
	Arrow  int
}

// Length returns the polyline length of l.
func (l Line) Length() float64 {
	total := 0.0
	for i := 1; i < len(l.Points); i++ {
		total += l.Points[i].Sub(l.Points[i-1]).Norm()
	}
	return total
}

type cell struct{ x, y int }

type tracer struct {
	f      Field
	integ  dynamo.Integrator
	mask   [][]bool
	nx, ny int

	xmin, ymin   float64
	width, depth float64

	ds      float64
	minLen  float64
	maxLen  float64
	maxStep int
}

// Trace returns the streamlines of f.
func Trace(f Field, opts Options) []Line {
	t := newTracer(f, opts)
	lines := make([]Line, 0)
	for _, seed := range spiral(t.nx, t.ny) {
		if t.mask[seed.y][seed.x] {
			continue
		}
		if l, ok := t.trajectory(seed); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

func newTracer(f Field, opts Options) *tracer {
	def := DefaultOptions()
	if opts.Density <= 0 {
		opts.Density = def.Density
	}
	if opts.MinLength <= 0 {
		opts.MinLength = def.MinLength
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = def.MaxLength
	}
	if opts.Step <= 0 {
		opts.Step = def.Step
	}
	if opts.Integrator == nil {
		opts.Integrator = integrators.NewRK4()
	}

	n := int(30 * opts.Density)
	if n < 1 {
		n = 1
	}
	xmin, xmax, ymin, ymax := f.Bounds()
	t := &tracer{
		f:      f,
		integ:  opts.Integrator,
		mask:   make([][]bool, n),
		nx:     n,
		ny:     n,
		xmin:   xmin,
		ymin:   ymin,
		width:  xmax - xmin,
		depth:  ymax - ymin,
		minLen: opts.MinLength * (xmax - xmin),
		maxLen: opts.MaxLength * (xmax - xmin),
	}
	for i := range t.mask {
		t.mask[i] = make([]bool, n)
	}
	t.ds = opts.Step * math.Min(t.width/float64(t.nx), t.depth/float64(t.ny))
	t.maxStep = int(t.maxLen/t.ds) + 1
	return t
}

func (t *tracer) cellOf(x dynamo.State) cell {
	cx := int((x[0] - t.xmin) / t.width * float64(t.nx))
	cy := int((x[1] - t.ymin) / t.depth * float64(t.ny))
	return cell{clamp(cx, t.nx-1), clamp(cy, t.ny-1)}
}

func (t *tracer) center(c cell) dynamo.State {
	return dynamo.State{
		t.xmin + (float64(c.x)+0.5)*t.width/float64(t.nx),
		t.ymin + (float64(c.y)+0.5)*t.depth/float64(t.ny),
	}
}

func (t *tracer) inside(x dynamo.State) bool {
	return x[0] >= t.xmin && x[0] <= t.xmin+t.width &&
		x[1] >= t.ymin && x[1] <= t.ymin+t.depth
}

func (t *tracer) trajectory(seed cell) (Line, bool) {
	start := t.center(seed)
	t.mask[seed.y][seed.x] = true
	claimed := []cell{seed}

	fwd, lf := t.integrate(start, seed, t.ds, &claimed)
	bwd, lb := t.integrate(start, seed, -t.ds, &claimed)

	if lf+lb < t.minLen {
		for _, c := range claimed {
			t.mask[c.y][c.x] = false
		}
		return Line{}, false
	}

	points := make([]dynamo.State, 0, len(bwd)+len(fwd)+1)
	for i := len(bwd) - 1; i >= 0; i-- {
		points = append(points, bwd[i])
	}
	points = append(points, start)
	points = append(points, fwd...)
	return Line{Points: points, Arrow: len(points) / 2}, true
}

func (t *tracer) integrate(x dynamo.State, cur cell, ds float64, claimed *[]cell) ([]dynamo.State, float64) {
	points := make([]dynamo.State, 0)
	arc := 0.0
	for step := 0; step < t.maxStep && arc < t.maxLen; step++ {
		if dir := t.f.Derive(x, arc); dir.Norm() == 0 {
			break
		}
		next := t.integ.Step(t.f, x, arc, ds)
		if dynamo.Check(t.f, next) != nil || !t.inside(next) {
			break
		}
		c := t.cellOf(next)
		if c != cur {
			if t.mask[c.y][c.x] {
				break
			}
			t.mask[c.y][c.x] = true
			*claimed = append(*claimed, c)
			cur = c
		}
		arc += next.Sub(x).Norm()
		points = append(points, next)
		x = next
	}
	return points, arc
}

// spiral lists every cell of an nx by ny mask, walking the boundary inwards.
func spiral(nx, ny int) []cell {
	out := make([]cell, 0, nx*ny)
	xlo, xhi, ylo, yhi := 0, nx-1, 0, ny-1
	for xlo <= xhi && ylo <= yhi {
		for x := xlo; x <= xhi; x++ {
			out = append(out, cell{x, ylo})
		}
		ylo++
		for y := ylo; y <= yhi; y++ {
			out = append(out, cell{xhi, y})
		}
		xhi--
		if ylo <= yhi {
			for x := xhi; x >= xlo; x-- {
				out = append(out, cell{x, yhi})
			}
			yhi--
		}
		if xlo <= xhi {
			for y := yhi; y >= ylo; y-- {
				out = append(out, cell{xlo, y})
			}
			xlo++
		}
	}
	return out
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
