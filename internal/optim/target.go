package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/solver"
)

const (
	coarseSteps      = 21
	bisectIterations = 80
)

var ErrUnreachable = errors.New("optim: target tip deflection not reachable")

// LoadForTip finds the tip force in [0, maxLoad] at which model m deflects
// the tip by target. A coarse grid brackets the answer, then bisection
// refines it.
func LoadForTip(ctx context.Context, base beam.Params, m beam.Model, lc beam.LoadCase, target, maxLoad float64) (float64, error) {
	if maxLoad <= 0 || math.IsNaN(target) {
		return 0, fmt.Errorf("optim: need maxLoad > 0, got %g", maxLoad)
	}

	tip := func(load float64) (float64, error) {
		p := base
		p.P = load
		r, err := solver.Solve(m, p, lc)
		if err != nil {
			return 0, err
		}
		if r.IsEmpty() {
			return 0, fmt.Errorf("%w: zero stiffness", ErrUnreachable)
		}
		return r.TipY, nil
	}

	gs := NewGridSearch([]string{"p"}, [][]float64{Linspace(0, maxLoad, coarseSteps)})
	best, _, err := gs.Search(ctx, base, func(p beam.Params) (float64, error) {
		y, err := tip(p.P)
		return math.Abs(y - target), err
	})
	if err != nil {
		return 0, err
	}

	step := maxLoad / (coarseSteps - 1)
	lo := math.Max(best["p"]-step, 0)
	hi := math.Min(best["p"]+step, maxLoad)
	flo, err := tip(lo)
	if err != nil {
		return 0, err
	}
	fhi, err := tip(hi)
	if err != nil {
		return 0, err
	}
	if (flo-target)*(fhi-target) > 0 {
		return 0, fmt.Errorf("%w: %g with %s and P <= %g", ErrUnreachable, target, m, maxLoad)
	}

	for i := 0; i < bisectIterations && hi-lo > 1e-14*maxLoad; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		mid := 0.5 * (lo + hi)
		fm, err := tip(mid)
		if err != nil {
			return 0, err
		}
		if (flo-target)*(fm-target) <= 0 {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}
	return 0.5 * (lo + hi), nil
}
