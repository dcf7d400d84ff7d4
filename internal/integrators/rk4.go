package integrators

import "github.com/san-kum/beamlab/internal/ode"

// RK4 is the classical fourth-order Runge-Kutta stepper. Scratch buffers are
// reused between steps, so one RK4 must not be shared across goroutines.
type RK4 struct {
	k1, k2, k3, k4 ode.State
	scratch        ode.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(ode.State, n)
		r.k2 = make(ode.State, n)
		r.k3 = make(ode.State, n)
		r.k4 = make(ode.State, n)
		r.scratch = make(ode.State, n)
	}
}

func (r *RK4) Step(sys ode.System, x ode.State, s, h float64) ode.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, s))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, s+h*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, s+h*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, s+h))

	result := make(ode.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}

// Integrate takes steps fixed steps from s0 to s1 and returns every state,
// x0 included, so the trajectory has steps+1 entries.
func Integrate(integ ode.Integrator, sys ode.System, x0 ode.State, s0, s1 float64, steps int) []ode.State {
	traj := make([]ode.State, 0, steps+1)
	traj = append(traj, x0.Clone())
	if steps <= 0 {
		return traj
	}

	h := (s1 - s0) / float64(steps)
	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, s0+float64(i)*h, h)
		traj = append(traj, x)
	}
	return traj
}
