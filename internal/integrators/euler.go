package integrators

import "github.com/san-kum/dipolefield/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, s, ds float64) dynamo.State {
	return x.Add(sys.Derive(x, s).Scale(ds))
}

// ByName returns the stepper registered under name.
func ByName(name string) (dynamo.Integrator, bool) {
	switch name {
	case "rk4", "":
		return NewRK4(), true
	case "euler":
		return NewEuler(), true
	}
	return nil, false
}
