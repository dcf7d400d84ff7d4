// Package units converts user-facing beam quantities to and from SI.
package units

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSystem = errors.New("units: unknown unit system")

// System is a consistent set of units for beam input.
type System int

const (
	SI System = iota
	Imperial
)

const (
	MetersPerInch   = 0.0254
	NewtonsPerPound = 4.4482216152605
	PascalsPerPsi   = NewtonsPerPound / (MetersPerInch * MetersPerInch)
)

func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "si", "metric":
		return SI, nil
	case "imperial", "us", "in":
		return Imperial, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
}

func (s System) String() string {
	if s == Imperial {
		return "imperial"
	}
	return "si"
}

func (s System) lengthScale() float64 {
	if s == Imperial {
		return MetersPerInch
	}
	return 1
}

func (s System) forceScale() float64 {
	if s == Imperial {
		return NewtonsPerPound
	}
	return 1
}

// Length converts in -> m.
func (s System) Length(v float64) float64 { return v * s.lengthScale() }

// Force converts lbf -> N.
func (s System) Force(v float64) float64 { return v * s.forceScale() }

// Moment converts lbf*in -> N*m.
func (s System) Moment(v float64) float64 { return v * s.forceScale() * s.lengthScale() }

// Modulus converts psi -> Pa.
func (s System) Modulus(v float64) float64 {
	l := s.lengthScale()
	return v * s.forceScale() / (l * l)
}

// Inertia converts in^4 -> m^4.
func (s System) Inertia(v float64) float64 {
	l := s.lengthScale()
	return v * l * l * l * l
}

// Area converts in^2 -> m^2.
func (s System) Area(v float64) float64 {
	l := s.lengthScale()
	return v * l * l
}

// LengthFrom converts meters back into the system's length unit.
func (s System) LengthFrom(m float64) float64 { return m / s.lengthScale() }

// StressFrom converts Pa back into the system's stress unit.
func (s System) StressFrom(pa float64) float64 { return pa / s.Modulus(1) }

// LengthUnit is the display suffix for lengths.
func (s System) LengthUnit() string {
	if s == Imperial {
		return "in"
	}
	return "m"
}

// StressUnit is the display suffix for stresses.
func (s System) StressUnit() string {
	if s == Imperial {
		return "psi"
	}
	return "Pa"
}
