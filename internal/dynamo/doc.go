// Package dynamo provides the ODE primitives used to trace field lines.
//
// A field line of a planar vector field F is the solution of
//
//	dX/ds = F(X) / |F(X)|
//
// parameterised by arc length s. The package defines:
//
//   - [State]: a point on the curve
//   - [System]: an ODE right-hand side
//   - [Integrator]: a numerical stepper
//   - [Check]: validation of a state against a system
//
// # Example
//
//	f, _ := field.Compute(params) // *field.VectorField is a System
//	integ := integrators.NewRK4()
//	next := integ.Step(f, dynamo.State{x, y}, 0, ds)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
package dynamo
