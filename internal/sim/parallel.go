package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same simulator setup over consecutive seeds in parallel.
// Every run gets its own game state, policy and metrics from the factory.
type Ensemble struct {
	factory   func() *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory func() *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = e.factory().Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Summary aggregates ensemble results.
type Summary struct {
	Runs      int
	MeanScore float64
	BestScore int
	BestSeed  int64
	GameOvers int
}

func Summarize(results []*Result) Summary {
	var sum Summary
	if len(results) == 0 {
		return sum
	}
	total := 0
	for i, r := range results {
		total += r.Score
		if i == 0 || r.Score > sum.BestScore {
			sum.BestScore = r.Score
			sum.BestSeed = r.Seed
		}
		if r.GameOver {
			sum.GameOvers++
		}
	}
	sum.Runs = len(results)
	sum.MeanScore = float64(total) / float64(len(results))
	return sum
}
