package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/biogenesis/config"
	"github.com/pthm-cable/biogenesis/telemetry"
)

// logFile is the per-evaluation CSV written to the output directory.
const logFile = "optimize_log.csv"

// EvalRecord is one row of optimize_log.csv. Parameter columns hold the
// clamped values the games were actually played with.
type EvalRecord struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	MeanGens    float64 `csv:"mean_generations"`
	StdGens     float64 `csv:"std_generations"`
	ExtinctRate float64 `csv:"extinct_rate"`

	TemperaturePenalty      float64 `csv:"temperature_penalty"`
	FitnessThreshold        float64 `csv:"fitness_threshold"`
	FitnessHazard           float64 `csv:"fitness_hazard"`
	AgeHazard               float64 `csv:"age_hazard"`
	RatioStep               float64 `csv:"ratio_step"`
	TempStep                float64 `csv:"temp_step"`
	SpontaneousMutationRate float64 `csv:"spontaneous_mutation_rate"`
}

func newEvalRecord(eval int, s EvalSummary, cfg *config.Config) EvalRecord {
	return EvalRecord{
		Eval:        eval,
		Fitness:     s.Fitness,
		MeanGens:    s.MeanGens,
		StdGens:     s.StdGens,
		ExtinctRate: s.ExtinctRate,

		TemperaturePenalty:      cfg.Survival.TemperaturePenalty,
		FitnessThreshold:        cfg.Survival.FitnessThreshold,
		FitnessHazard:           cfg.Survival.FitnessHazard,
		AgeHazard:               cfg.Survival.AgeHazard,
		RatioStep:               cfg.Environment.RatioStep,
		TempStep:                cfg.Environment.TempStep,
		SpontaneousMutationRate: cfg.Controller.SpontaneousMutationRate,
	}
}

// tracker is the objective handed to CMA-ES. It scores each normalized
// point, logs the evaluation and remembers the best parameters seen.
// Calls must not overlap.
type tracker struct {
	params    *ParamVector
	evaluator *FitnessEvaluator
	out       *telemetry.OutputManager
	progress  io.Writer
	maxEvals  int

	start   time.Time
	evals   int
	best    EvalSummary
	bestRaw []float64
}

func newTracker(params *ParamVector, evaluator *FitnessEvaluator, out *telemetry.OutputManager, progress io.Writer, maxEvals int) *tracker {
	return &tracker{
		params:    params,
		evaluator: evaluator,
		out:       out,
		progress:  progress,
		maxEvals:  maxEvals,
		start:     time.Now(),
		best:      EvalSummary{Fitness: math.Inf(1)},
	}
}

func (tr *tracker) evaluate(x []float64) float64 {
	raw := tr.params.Clamp(tr.params.Denormalize(x))
	s := tr.evaluator.Evaluate(raw)
	tr.evals++

	if s.Fitness < tr.best.Fitness {
		tr.best = s
		tr.bestRaw = raw
	}

	cfg := tr.evaluator.copyConfig()
	tr.params.ApplyToConfig(cfg, raw)
	if err := tr.out.WriteRecords(logFile, []EvalRecord{newEvalRecord(tr.evals, s, cfg)}); err != nil {
		slog.Warn("failed to log evaluation", "eval", tr.evals, "error", err)
	}

	elapsed := time.Since(tr.start)
	left := time.Duration(tr.maxEvals-tr.evals) * (elapsed / time.Duration(tr.evals))
	fmt.Fprintf(tr.progress, "eval %3d/%d  gens %5.1f ± %4.1f  extinct %3.0f%%  fitness %.4f (best %.4f)  %s elapsed, ~%s left\n",
		tr.evals, tr.maxEvals, s.MeanGens, s.StdGens, 100*s.ExtinctRate, s.Fitness, tr.best.Fitness,
		elapsed.Round(time.Second), max(0, left).Round(time.Second))

	return s.Fitness
}

// bestConfig returns the base config with the best parameters applied,
// falling back to fallback (raw values) when nothing was evaluated.
func (tr *tracker) bestConfig(fallback []float64) *config.Config {
	raw := tr.bestRaw
	if raw == nil {
		raw = fallback
	}
	cfg := tr.evaluator.copyConfig()
	tr.params.ApplyToConfig(cfg, raw)
	return cfg
}
