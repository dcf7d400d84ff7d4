package beam

import (
	"fmt"
	"math"
)

// Params describes one cantilever and its tip loading. All fields are SI.
type Params struct {
	E  float64 `json:"e" yaml:"e"`   // elastic modulus (Pa)
	I  float64 `json:"i" yaml:"i"`   // second moment of area (m^4)
	L  float64 `json:"l" yaml:"l"`   // length (m)
	P  float64 `json:"p" yaml:"p"`   // vertical tip force (N)
	NP float64 `json:"np" yaml:"np"` // horizontal tip force (N), absolute
	M0 float64 `json:"m0" yaml:"m0"` // applied tip moment (N*m)
	C  float64 `json:"c" yaml:"c"`   // distance to extreme fiber (m)
	A  float64 `json:"a" yaml:"a"`   // cross-section area (m^2), carried for stress context
}

// EI returns the bending stiffness.
func (p Params) EI() float64 {
	return p.E * p.I
}

// Unloaded reports whether no tip force or moment is applied.
func (p Params) Unloaded() bool {
	return p.P == 0 && p.NP == 0 && p.M0 == 0
}

// Validate checks the physical preconditions the outer layers enforce.
// Solvers never call it; a zero EI is a degenerate case, not an error.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"E", p.E}, {"I", p.I}, {"L", p.L}, {"P", p.P},
		{"nP", p.NP}, {"M0", p.M0}, {"c", p.C}, {"A", p.A},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, f.name)
		}
	}

	switch {
	case p.E <= 0:
		return fmt.Errorf("%w: E must be positive, got %g", ErrInvalidParams, p.E)
	case p.L <= 0:
		return fmt.Errorf("%w: L must be positive, got %g", ErrInvalidParams, p.L)
	case p.I < 0:
		return fmt.Errorf("%w: I must not be negative, got %g", ErrInvalidParams, p.I)
	case p.C < 0:
		return fmt.Errorf("%w: c must not be negative, got %g", ErrInvalidParams, p.C)
	case p.A < 0:
		return fmt.Errorf("%w: A must not be negative, got %g", ErrInvalidParams, p.A)
	}
	return nil
}

// Rectangle is a solid rectangular cross-section.
type Rectangle struct {
	Width  float64 // b (m)
	Height float64 // h, measured in the bending plane (m)
}

// Inertia returns b*h^3/12.
func (r Rectangle) Inertia() float64 {
	return r.Width * r.Height * r.Height * r.Height / 12
}

// Extreme returns the distance from the neutral axis to the outer fiber.
func (r Rectangle) Extreme() float64 {
	return r.Height / 2
}

// Area returns b*h.
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}
