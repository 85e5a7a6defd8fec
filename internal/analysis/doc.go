// Package analysis provides diagnostics for the sampled field.
//
//   - [Profile]: |B| along a ray from the planet surface outwards
//   - [RadialProfile.DecayExponent]: log-log slope of that profile
//
// For a pure dipole the slope is -3 at every angle:
//
//	p := analysis.Profile(physics.NewEarth(), 0, 6.37, 40, 64)
//	k := p.DecayExponent() // -3
package analysis
