// Package beam holds the data model shared by every cantilever solver.
//
// A solve takes a [Params] value in SI units and produces a [Result]:
//
//   - [Params]: geometry, material and tip loads of one cantilever
//   - [Point]: planar coordinate in the beam-local frame
//   - [Result]: deflected centerline polyline plus tip state
//   - [Model]: closed selector for the four mechanical models
//   - [Diagnostics]: per-family pseudo-rigid-body constants
//
// The frame origin is the fixed support and x runs along the undeformed
// axis. Unit conversion belongs to the caller.
package beam
