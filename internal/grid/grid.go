// Package grid builds the Cartesian sampling lattice the field is evaluated on.
package grid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrTooFewSamples = errors.New("grid: need at least 2 samples per axis")

// Linspace returns n evenly spaced samples over [min, max], endpoints included.
func Linspace(min, max float64, n int) []float64 {
	if n < 2 {
		return nil
	}
	s := floats.Span(make([]float64, n), min, max)
	s[0], s[n-1] = min, max
	return s
}

// Grid is the outer product of two axes. Row i follows Y[i], column j follows
// X[j], so XX.At(i, j) == X[j] and YY.At(i, j) == Y[i].
type Grid struct {
	X, Y   []float64
	XX, YY *mat.Dense
}

// New builds an nx by ny grid spanning [-xmax, xmax] x [-ymax, ymax].
func New(nx, ny int, xmax, ymax float64) (*Grid, error) {
	if nx < 2 || ny < 2 {
		return nil, ErrTooFewSamples
	}
	g := &Grid{
		X:  Linspace(-xmax, xmax, nx),
		Y:  Linspace(-ymax, ymax, ny),
		XX: mat.NewDense(ny, nx, nil),
		YY: mat.NewDense(ny, nx, nil),
	}
	for i, y := range g.Y {
		for j, x := range g.X {
			g.XX.Set(i, j, x)
			g.YY.Set(i, j, y)
		}
	}
	return g, nil
}

// Dims returns (rows, cols) = (len(Y), len(X)).
func (g *Grid) Dims() (int, int) { return len(g.Y), len(g.X) }

// Polar returns r = hypot(X, Y) and theta = atan2(Y, X) per grid point.
func (g *Grid) Polar() (r, theta *mat.Dense) {
	rows, cols := g.Dims()
	r = mat.NewDense(rows, cols, nil)
	theta = mat.NewDense(rows, cols, nil)
	r.Apply(func(i, j int, _ float64) float64 {
		return math.Hypot(g.X[j], g.Y[i])
	}, r)
	theta.Apply(func(i, j int, _ float64) float64 {
		return math.Atan2(g.Y[i], g.X[j])
	}, theta)
	return r, theta
}

// HasOrigin reports whether some grid point lies exactly on r = 0.
func (g *Grid) HasOrigin() bool {
	return contains(g.X, 0) && contains(g.Y, 0)
}

// Cell returns the spacing between adjacent samples along each axis.
func (g *Grid) Cell() (dx, dy float64) {
	dx = (g.X[len(g.X)-1] - g.X[0]) / float64(len(g.X)-1)
	dy = (g.Y[len(g.Y)-1] - g.Y[0]) / float64(len(g.Y)-1)
	return dx, dy
}

func contains(s []float64, v float64) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
