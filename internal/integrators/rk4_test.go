package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/beamlab/internal/ode"
)

type harmonic struct{}

func (harmonic) Derive(x ode.State, s float64) ode.State {
	return ode.State{x[1], -x[0]}
}

func (harmonic) Dim() int { return 2 }

// circle is the elastica with constant curvature k.
type circle struct{ k float64 }

func (c circle) Derive(x ode.State, s float64) ode.State {
	return ode.State{math.Cos(x[2]), math.Sin(x[2]), c.k}
}

func (circle) Dim() int { return 3 }

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := ode.State{1.0, 0.0}
	h := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(harmonic{}, x, float64(i)*h, h)
	}

	expectedX := math.Cos(float64(steps) * h)
	expectedV := -math.Sin(float64(steps) * h)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestIntegrate_Trajectory(t *testing.T) {
	traj := Integrate(NewRK4(), circle{k: 1}, ode.State{0, 0, 0}, 0, math.Pi/2, 100)

	if len(traj) != 101 {
		t.Fatalf("trajectory length = %d, want 101", len(traj))
	}
	if traj[0][0] != 0 || traj[0][1] != 0 {
		t.Errorf("trajectory should start at the origin, got %v", traj[0])
	}

	// quarter circle of unit radius ends at (1, 1) with slope pi/2
	end := traj[100]
	if math.Abs(end[0]-1) > 1e-8 || math.Abs(end[1]-1) > 1e-8 {
		t.Errorf("end = (%.10f, %.10f), want (1, 1)", end[0], end[1])
	}
	if math.Abs(end[2]-math.Pi/2) > 1e-12 {
		t.Errorf("end slope = %v, want pi/2", end[2])
	}
}

func TestIntegrate_DoesNotAliasInitialState(t *testing.T) {
	x0 := ode.State{0, 0, 0}
	traj := Integrate(NewRK4(), circle{k: 1}, x0, 0, 1, 0)
	if len(traj) != 1 {
		t.Fatalf("zero steps should return only x0, got %d states", len(traj))
	}
	traj[0][0] = 5
	if x0[0] != 0 {
		t.Error("Integrate aliased x0")
	}
}
