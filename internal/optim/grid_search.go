// Package optim searches parameter grids for the configuration that
// minimizes a run metric.
package optim

import (
	"context"
	"math"
)

// RunFunc executes one simulation for a parameter assignment and
// returns its metrics by name.
type RunFunc func(ctx context.Context, params map[string]float64) (map[string]float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch pairs each parameter name with its candidate values.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates the cartesian product of the ranges and returns the
// assignment with the smallest value of metricName. Assignments whose
// run fails are skipped.
func (g *GridSearch) Search(ctx context.Context, run RunFunc, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), run, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	run RunFunc,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		metrics, err := run(ctx, current)
		if err != nil {
			return nil
		}

		val, ok := metrics[metricName]
		if !ok {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, run, metricName, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, name)

	return nil
}
