package analysis

import (
	"math"

	"github.com/san-kum/dipolefield/internal/grid"
	"github.com/san-kum/dipolefield/internal/physics"
)

// RadialProfile samples |B| along a ray leaving the origin at a fixed angle.
type RadialProfile struct {
	Theta float64
	R     []float64
	B     []float64
}

// Profile evaluates d at n radii evenly spaced over [rmin, rmax] along theta.
func Profile(d *physics.Dipole, theta, rmin, rmax float64, n int) *RadialProfile {
	r := grid.Linspace(rmin, rmax, n)
	if r == nil {
		return nil
	}
	p := &RadialProfile{
		Theta: theta,
		R:     r,
		B:     make([]float64, len(r)),
	}
	for i, ri := range r {
		p.B[i] = d.Magnitude(ri, theta)
	}
	return p
}

// DecayExponent fits |B| ~ r^k by least squares in log-log space and
// returns k. A pure dipole gives -3.
func (p *RadialProfile) DecayExponent() float64 {
	if p == nil || len(p.R) < 2 {
		return math.NaN()
	}
	var sx, sy, sxx, sxy float64
	n := 0.0
	for i := range p.R {
		if p.R[i] <= 0 || p.B[i] <= 0 {
			continue
		}
		x, y := math.Log(p.R[i]), math.Log(p.B[i])
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		n++
	}
	den := n*sxx - sx*sx
	if n < 2 || den == 0 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}

// Scaled returns B multiplied by factor, for display in other units.
func (p *RadialProfile) Scaled(factor float64) []float64 {
	out := make([]float64, len(p.B))
	for i, b := range p.B {
		out[i] = b * factor
	}
	return out
}
