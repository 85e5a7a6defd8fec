package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dipolefield/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Reference values for Earth.
const (
	DefaultB0      = 3.12e-5 // mean equatorial surface field, T
	DefaultRadius  = 6.370   // planet radius, 10^6 m
	DefaultTiltDeg = 9.6     // magnetic pole offset from the rotation axis, degrees
)

// Dipole is a point magnetic dipole whose axis is tilted by Alpha from the
// polar axis of the coordinate grid.
type Dipole struct {
	B0    float64
	RE    float64
	Alpha float64
}

func NewDipole(b0, re, alpha float64) *Dipole {
	return &Dipole{B0: b0, RE: re, Alpha: alpha}
}

func NewEarth() *Dipole {
	return NewDipole(DefaultB0, DefaultRadius, Radians(DefaultTiltDeg))
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Field returns the polar components (Br, Btheta) at (r, theta).
// At r == 0 the components are non-finite.
func (d *Dipole) Field(r, theta float64) (br, btheta float64) {
	q := d.RE / r
	fac := d.B0 * q * q * q
	sin, cos := math.Sincos(theta + d.Alpha)
	return -2 * fac * cos, -fac * sin
}

// Magnitude returns |B| at (r, theta).
func (d *Dipole) Magnitude(r, theta float64) float64 {
	return math.Hypot(d.Field(r, theta))
}

// SurfaceEquator returns |B| at (RE, 0), B0*sqrt((2cos a)^2 + sin^2 a).
func (d *Dipole) SurfaceEquator() float64 {
	sin, cos := math.Sincos(d.Alpha)
	return d.B0 * math.Sqrt(4*cos*cos+sin*sin)
}

// FieldGrid evaluates Field elementwise. r and theta must share a shape.
func (d *Dipole) FieldGrid(r, theta mat.Matrix) (br, btheta *mat.Dense) {
	rows, cols := r.Dims()
	if tr, tc := theta.Dims(); tr != rows || tc != cols {
		panic(mat.ErrShape)
	}
	br = mat.NewDense(rows, cols, nil)
	btheta = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a, b := d.Field(r.At(i, j), theta.At(i, j))
			br.Set(i, j, a)
			btheta.Set(i, j, b)
		}
	}
	return br, btheta
}

// ToCartesian rotates the local (radial, tangential) components at angular
// position theta into fixed (x, y) components.
func ToCartesian(br, btheta, theta float64) (bx, by float64) {
	s, c := math.Sincos(math.Pi/2 + theta)
	return -btheta*s + br*c, btheta*c + br*s
}

// FromCartesian is the inverse of ToCartesian at the same theta.
func FromCartesian(bx, by, theta float64) (br, btheta float64) {
	s, c := math.Sincos(math.Pi/2 + theta)
	return c*bx + s*by, -s*bx + c*by
}

// ToCartesianGrid applies ToCartesian elementwise.
func ToCartesianGrid(br, btheta, theta mat.Matrix) (bx, by *mat.Dense) {
	rows, cols := theta.Dims()
	for _, m := range []mat.Matrix{br, btheta} {
		if mr, mc := m.Dims(); mr != rows || mc != cols {
			panic(mat.ErrShape)
		}
	}
	bx = mat.NewDense(rows, cols, nil)
	by = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x, y := ToCartesian(br.At(i, j), btheta.At(i, j), theta.At(i, j))
			bx.Set(i, j, x)
			by.Set(i, j, y)
		}
	}
	return bx, by
}

func (d *Dipole) StateDim() int { return 2 }

// Derive returns the unit field direction at the planar position x, or a zero
// vector where the field vanishes or is not finite.
func (d *Dipole) Derive(x dynamo.State, _ float64) dynamo.State {
	if len(x) < 2 {
		return make(dynamo.State, 2)
	}
	r := math.Hypot(x[0], x[1])
	theta := math.Atan2(x[1], x[0])
	br, btheta := d.Field(r, theta)
	return unit(ToCartesian(br, btheta, theta))
}

func unit(bx, by float64) dynamo.State {
	n := math.Hypot(bx, by)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return dynamo.State{0, 0}
	}
	return dynamo.State{bx / n, by / n}
}

func (d *Dipole) GetParams() map[string]float64 {
	return map[string]float64{
		"b0":     d.B0,
		"radius": d.RE,
		"tilt":   d.Alpha * 180 / math.Pi,
	}
}

func (d *Dipole) SetParam(name string, value float64) error {
	switch name {
	case "b0":
		d.B0 = value
	case "radius":
		d.RE = value
	case "tilt":
		d.Alpha = Radians(value)
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
