// Package field samples the dipole model over a Cartesian grid.
//
// [Compute] is the pure part of the pipeline: it builds the grid, converts
// every point to polar form, evaluates the field and rotates the components
// back to Cartesian. It performs no plotting and no I/O.
package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dipolefield/internal/dynamo"
	"github.com/san-kum/dipolefield/internal/grid"
	"github.com/san-kum/dipolefield/internal/physics"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrBadRadius = errors.New("field: planet radius must be positive")
	ErrBadExtent = errors.New("field: domain extent must be positive")
)

// Params fully determines a sampled field.
type Params struct {
	B0     float64 // T
	Radius float64 // 10^6 m
	Alpha  float64 // rad
	NX, NY int
	XMax   float64
	YMax   float64
}

// VectorField holds every intermediate array of the pipeline. All matrices
// share the grid's (len(Y), len(X)) shape.
type VectorField struct {
	Grid   *grid.Grid
	Dipole *physics.Dipole

	R, Theta   *mat.Dense
	Br, Btheta *mat.Dense
	Bx, By     *mat.Dense
}

func Compute(p Params) (*VectorField, error) {
	if !(p.Radius > 0) {
		return nil, ErrBadRadius
	}
	if !(p.XMax > 0) || !(p.YMax > 0) {
		return nil, ErrBadExtent
	}
	g, err := grid.New(p.NX, p.NY, p.XMax, p.YMax)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}

	d := physics.NewDipole(p.B0, p.Radius, p.Alpha)
	r, theta := g.Polar()
	br, btheta := d.FieldGrid(r, theta)
	bx, by := physics.ToCartesianGrid(br, btheta, theta)

	return &VectorField{
		Grid:   g,
		Dipole: d,
		R:      r,
		Theta:  theta,
		Br:     br,
		Btheta: btheta,
		Bx:     bx,
		By:     by,
	}, nil
}

// Magnitude returns |B| per grid point.
func (f *VectorField) Magnitude() *mat.Dense {
	rows, cols := f.Grid.Dims()
	m := mat.NewDense(rows, cols, nil)
	m.Apply(func(i, j int, _ float64) float64 {
		return math.Hypot(f.Bx.At(i, j), f.By.At(i, j))
	}, m)
	return m
}

// NonFinite counts grid points whose Cartesian components are NaN or Inf.
func (f *VectorField) NonFinite() int {
	rows, cols := f.Grid.Dims()
	n := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if !finite(f.Bx.At(i, j)) || !finite(f.By.At(i, j)) {
				n++
			}
		}
	}
	return n
}

// Bounds returns the sampled domain.
func (f *VectorField) Bounds() (xmin, xmax, ymin, ymax float64) {
	x, y := f.Grid.X, f.Grid.Y
	return x[0], x[len(x)-1], y[0], y[len(y)-1]
}

func (f *VectorField) Contains(x, y float64) bool {
	xmin, xmax, ymin, ymax := f.Bounds()
	return x >= xmin && x <= xmax && y >= ymin && y <= ymax
}

// At bilinearly interpolates (Bx, By) at (x, y). ok is false outside the
// domain or where a neighbouring sample is not finite.
func (f *VectorField) At(x, y float64) (bx, by float64, ok bool) {
	if !f.Contains(x, y) {
		return 0, 0, false
	}
	dx, dy := f.Grid.Cell()
	j, tx := locate(f.Grid.X, dx, x)
	i, ty := locate(f.Grid.Y, dy, y)

	bx = bilinear(f.Bx, i, j, tx, ty)
	by = bilinear(f.By, i, j, tx, ty)
	if !finite(bx) || !finite(by) {
		return 0, 0, false
	}
	return bx, by, true
}

func (f *VectorField) StateDim() int { return 2 }

// Derive returns the unit direction of the interpolated field, or zero where
// it is undefined, so that f can be traced as a dynamo.System.
func (f *VectorField) Derive(x dynamo.State, _ float64) dynamo.State {
	bx, by, ok := f.At(x[0], x[1])
	if !ok {
		return dynamo.State{0, 0}
	}
	n := math.Hypot(bx, by)
	if n == 0 {
		return dynamo.State{0, 0}
	}
	return dynamo.State{bx / n, by / n}
}

// Analytic evaluates the closed-form dipole over the domain of the sampled
// field, so streamlines can be traced without interpolation error.
type Analytic struct {
	*physics.Dipole
	field *VectorField
}

// Analytic returns the exact field over f's bounds.
func (f *VectorField) Analytic() Analytic {
	return Analytic{Dipole: f.Dipole, field: f}
}

func (a Analytic) Bounds() (xmin, xmax, ymin, ymax float64) {
	return a.field.Bounds()
}

// locate returns the lower cell index k and fraction t in [0, 1] such that
// v == axis[k] + t*step.
func locate(axis []float64, step, v float64) (int, float64) {
	n := len(axis)
	fk := (v - axis[0]) / step
	k := int(math.Floor(fk))
	if k < 0 {
		k = 0
	}
	if k > n-2 {
		k = n - 2
	}
	return k, fk - float64(k)
}

func bilinear(m *mat.Dense, i, j int, tx, ty float64) float64 {
	v00 := m.At(i, j)
	v01 := m.At(i, j+1)
	v10 := m.At(i+1, j)
	v11 := m.At(i+1, j+1)
	return v00*(1-tx)*(1-ty) + v01*tx*(1-ty) + v10*(1-tx)*ty + v11*tx*ty
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
