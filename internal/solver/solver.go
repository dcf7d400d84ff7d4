package solver

import (
	"context"
	"fmt"

	"github.com/san-kum/beamlab/internal/beam"
	"golang.org/x/sync/errgroup"
)

// Solve runs one model. The load case only affects PRB1R.
func Solve(m beam.Model, p beam.Params, lc beam.LoadCase) (beam.Result, error) {
	switch m {
	case beam.Linear:
		return Linear(p), nil
	case beam.Nonlinear:
		return Nonlinear(p), nil
	case beam.PRB1R:
		return PRB1R(p, lc), nil
	case beam.PRB3R:
		return PRB3R(p), nil
	}
	return beam.Result{}, fmt.Errorf("%w: %d", beam.ErrUnknownModel, int(m))
}

// Compare evaluates models concurrently and returns results in the order
// given. A cancelled context stops models that have not started yet.
func Compare(ctx context.Context, p beam.Params, models []beam.Model, lc beam.LoadCase) ([]beam.Result, error) {
	results := make([]beam.Result, len(models))

	g, ctx := errgroup.WithContext(ctx)
	for i, m := range models {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Solve(m, p, lc)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Find returns the result for model m, if present.
func Find(results []beam.Result, m beam.Model) (beam.Result, bool) {
	for _, r := range results {
		if r.Model == m {
			return r, true
		}
	}
	return beam.Result{}, false
}

// RelativeTipError compares the tip deflection of r against ref.
// A zero reference deflection yields 0.
func RelativeTipError(r, ref beam.Result) float64 {
	if ref.TipY == 0 {
		return 0
	}
	return (r.TipY - ref.TipY) / ref.TipY
}
