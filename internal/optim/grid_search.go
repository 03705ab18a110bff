// Package optim searches policy parameters for the best headless score.
package optim

import (
	"context"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/suikasim/internal/experiment"
	"github.com/san-kum/suikasim/internal/sim"
)

// Objective scores one ensemble of games; higher is better.
type Objective func(results []*sim.Result) float64

// MeanScore is the default objective.
func MeanScore(results []*sim.Result) float64 {
	return sim.Summarize(results).MeanScore
}

// Survival rewards long games, for tuning toward not losing.
func Survival(results []*sim.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, r := range results {
		total += r.Ticks
	}
	return float64(total) / float64(len(results))
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	runs       int
	trials     []Trial
}

// NewGridSearch evaluates every combination of ranges, each over runs games.
func NewGridSearch(params []string, ranges [][]float64, runs int) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, runs: max(1, runs)}
}

// Trials returns every point evaluated by the last Search, in grid order.
func (g *GridSearch) Trials() []Trial {
	return g.trials
}

func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if objective == nil {
		objective = MeanScore
	}
	g.trials = g.trials[:0]

	best := math.Inf(-1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, objective, &best, &bestParams)
	if err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("optim: empty grid")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return fmt.Errorf("optim: %v: %w", current, err)
		}

		results, err := exp.RunEnsemble(ctx, g.runs)
		if err != nil {
			return err
		}

		val := objective(results)
		g.trials = append(g.trials, Trial{Params: maps.Clone(current), Value: val})
		if val > *best {
			*best = val
			*bestParams = maps.Clone(current)
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := maps.Clone(current)
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
