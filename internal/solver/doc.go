// Package solver implements the four cantilever models.
//
//   - [Linear]: closed-form Euler-Bernoulli superposition
//   - [Nonlinear]: elastica integrated with RK4 inside a shooting loop
//   - [PRB1R]: one-pivot pseudo-rigid-body model, damped Newton
//   - [PRB3R]: three-joint chain, under-relaxed fixed point
//
// Each model is a pure function of [beam.Params]. Iteration budgets are
// fixed, so every call finishes in bounded time and non-convergence is
// reported only through [beam.Result.Convergence], never as an error.
// Any number of calls may run concurrently; see [Compare].
package solver
