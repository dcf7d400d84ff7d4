package ode

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is dx/ds = f(x, s).
type System interface {
	Derive(x State, s float64) State
	Dim() int
}

// Integrator advances a System by one step of size h.
type Integrator interface {
	Step(sys System, x State, s, h float64) State
}
