package main

import (
	"context"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biogenesis/config"
	"github.com/pthm-cable/biogenesis/game"
	"github.com/pthm-cable/biogenesis/telemetry"
)

// FitnessEvaluator plays headless games and scores how close their
// length lands to the target.
type FitnessEvaluator struct {
	params         *ParamVector
	targetGens     int
	maxGenerations int
	seeds          []int64
	baseConfig     *config.Config
	sem            *semaphore.Weighted

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
}

// EvalSummary describes the games played for one parameter vector.
type EvalSummary struct {
	Fitness     float64 // lower is better
	MeanGens    float64
	StdGens     float64
	ExtinctRate float64 // fraction of seeds that went extinct before the cap
}

// NewFitnessEvaluator creates a new evaluator. Runs are capped at twice the
// target so a config that never goes extinct still scores.
func NewFitnessEvaluator(params *ParamVector, targetGens int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		targetGens:     targetGens,
		maxGenerations: 2 * targetGens,
		seeds:          seeds,
		baseConfig:     baseCfg,
		sem:            semaphore.NewWeighted(int64(runtime.NumCPU())),
		bestFitness:    math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// Evaluate plays every seed with the parameters x and scores the result.
func (fe *FitnessEvaluator) Evaluate(x []float64) EvalSummary {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel, bounded by the CPU count
	outcomes := make([]game.Outcome, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		if err := fe.sem.Acquire(context.Background(), 1); err != nil {
			break
		}
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			defer fe.sem.Release(1)
			outcomes[idx] = game.RunHeadless(game.Options{Seed: s, Config: cfg, RunID: "optimize"}, fe.maxGenerations, nil)
		}(i, seed)
	}
	wg.Wait()

	gens := make([]float64, len(outcomes))
	best, extinct := 0, 0
	for i, o := range outcomes {
		gens[i] = float64(o.Generations)
		if o.Extinct {
			extinct++
		}
		if o.LongestLife > outcomes[best].LongestLife {
			best = i
		}
	}

	var s EvalSummary
	s.MeanGens, s.StdGens = stat.PopMeanStdDev(gens, nil)
	s.Fitness = computeFitness(s.MeanGens, s.StdGens, float64(fe.targetGens))
	if len(outcomes) > 0 {
		s.ExtinctRate = float64(extinct) / float64(len(outcomes))
	}

	fe.mu.Lock()
	if s.Fitness < fe.bestFitness {
		fe.bestFitness = s.Fitness
		fe.bestHallOfFame = outcomes[best].HallOfFame
	}
	fe.mu.Unlock()

	return s
}

// spreadWeight scales how much run-to-run variance is penalized
// relative to missing the target mean.
const spreadWeight = 0.25

// computeFitness is the squared relative miss of the mean run length plus
// a smaller penalty on its spread. A perfect, perfectly repeatable config scores 0.
func computeFitness(mean, std, target float64) float64 {
	miss := (mean - target) / target
	spread := std / target
	return miss*miss + spreadWeight*spread*spread
}

// copyConfig returns a copy of the base config the parameters can be written to.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Population.Founders = append([]string(nil), fe.baseConfig.Population.Founders...)
	return &cfg
}
