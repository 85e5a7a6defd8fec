// Package physics provides the analytic magnetic field model.
//
// [Dipole] evaluates the tilted point-dipole field in polar form
//
//	fac     = B0 * (RE / r)^3
//	Br      = -2 * fac * cos(theta + alpha)
//	Btheta  =     -fac * sin(theta + alpha)
//
// and [ToCartesian] rotates the (radial, tangential) components into the fixed
// (x, y) basis. Both have elementwise forms over gonum matrices
// ([Dipole.FieldGrid], [ToCartesianGrid]).
//
// [Dipole] also implements [dynamo.System]: its derivative is the unit field
// direction, so an integrator traces exact field lines:
//
//	d := physics.NewEarth()
//	next := integrators.NewRK4().Step(d, dynamo.State{x, y}, 0, ds)
//
// The field is singular at the origin. Evaluation there yields non-finite
// components rather than an error.
package physics
