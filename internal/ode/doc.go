// Package ode provides the state vector and system interface for
// first-order ODEs integrated over a scalar parameter (arc length for the
// elastica, time in general).
package ode
