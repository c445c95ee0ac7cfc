package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biogenesis/config"
	"github.com/pthm-cable/biogenesis/game"
)

// sweep runs one headless game per seed, at most parallel at a time.
// Results come back in seed order regardless of completion order.
func sweep(ctx context.Context, cfg *config.Config, seeds []int64, maxGenerations, parallel int) ([]game.Outcome, error) {
	outcomes := make([]game.Outcome, len(seeds))

	eg, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		eg.SetLimit(parallel)
	}
	for i, seed := range seeds {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = game.RunHeadless(game.Options{
				Seed:   seed,
				Config: cfg,
				RunID:  fmt.Sprintf("sweep-%d", seed),
			}, maxGenerations, nil)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Summary aggregates a sweep.
type Summary struct {
	Runs          int
	Extinctions   int
	ExtinctRate   float64
	MeanGens      float64
	StdGens       float64
	MedianGens    float64
	MinGens       float64
	MaxGens       float64
	MeanEdits     float64
	MeanLongevity float64
}

// summarize computes run-length statistics over every outcome.
// Surviving runs count with the generation they were stopped at.
func summarize(outcomes []game.Outcome) Summary {
	s := Summary{Runs: len(outcomes)}
	if len(outcomes) == 0 {
		return s
	}

	gens := make([]float64, len(outcomes))
	edits := make([]float64, len(outcomes))
	longevity := make([]float64, len(outcomes))
	for i, o := range outcomes {
		gens[i] = float64(o.Generations)
		edits[i] = float64(o.Edits)
		longevity[i] = float64(o.LongestLife)
		if o.Extinct {
			s.Extinctions++
		}
	}

	s.ExtinctRate = float64(s.Extinctions) / float64(s.Runs)
	s.MeanGens, s.StdGens = stat.PopMeanStdDev(gens, nil)
	s.MinGens = floats.Min(gens)
	s.MaxGens = floats.Max(gens)
	sort.Float64s(gens)
	s.MedianGens = stat.Quantile(0.5, stat.Empirical, gens, nil)
	s.MeanEdits = stat.Mean(edits, nil)
	s.MeanLongevity = stat.Mean(longevity, nil)
	return s
}

func (s Summary) print(w io.Writer) {
	fmt.Fprintf(w, "runs: %d, extinct: %d (%.1f%%)\n", s.Runs, s.Extinctions, s.ExtinctRate*100)
	fmt.Fprintf(w, "generations: mean %.1f ± %.1f, median %.0f, range %.0f-%.0f\n",
		s.MeanGens, s.StdGens, s.MedianGens, s.MinGens, s.MaxGens)
	fmt.Fprintf(w, "edits per run: %.1f, longest life: %.1f generations\n", s.MeanEdits, s.MeanLongevity)
}
