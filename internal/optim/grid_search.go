// Package optim searches beam inputs for a target response.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/beamlab/internal/beam"
)

var ErrUnknownParam = errors.New("optim: unknown parameter")

// Objective scores one set of inputs; lower is better.
type Objective func(p beam.Params) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch searches the Cartesian product of ranges. Names are the
// Params JSON keys: e, i, l, p, np, m0.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

func set(p *beam.Params, name string, v float64) error {
	switch name {
	case "e":
		p.E = v
	case "i":
		p.I = v
	case "l":
		p.L = v
	case "p":
		p.P = v
	case "np":
		p.NP = v
	case "m0":
		p.M0 = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

// Search returns the best-scoring assignment. Ties keep the first point
// visited, so a grid listed in ascending order favors smaller values.
func (g *GridSearch) Search(ctx context.Context, base beam.Params, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}
	probe := base
	for _, name := range g.paramNames {
		if err := set(&probe, name, 0); err != nil {
			return nil, 0, err
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	p beam.Params,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		val, err := objective(p)
		if err != nil {
			return err
		}

		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		next := p
		set(&next, paramName, val)
		if err := g.searchRecursive(ctx, depth+1, newParams, next, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}
