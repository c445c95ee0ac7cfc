// Command optimize tunes difficulty parameters with CMA-ES so that games
// played by the auto-player last a target number of generations.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/biogenesis/config"
	"github.com/pthm-cable/biogenesis/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Int("target", 50, "Desired mean game length in generations")
	seeds := flag.Int("seeds", 32, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = gonum default, 4 + floor(3*ln(dim)))")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	// Every evaluation plays many games; keep their logs to warnings
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *target < 1 {
		log.Fatal("--target must be at least 1")
	}

	config.MustInit(*configPath)
	baseCfg := config.Cfg()

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to prepare output: %v", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("failed to close output: %v", err)
		}
	}()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, *target, evalSeeds, baseCfg)
	tr := newTracker(params, evaluator, out, os.Stdout, *maxEvals)

	initRaw := params.Clamp(params.ExtractFromConfig(baseCfg))
	problem := optimize.Problem{Func: tr.evaluate}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: *population}

	fmt.Printf("Tuning %d parameters toward %d generations: %d seeds per evaluation, up to %d evaluations\n",
		params.Dim(), *target, *seeds, *maxEvals)

	if _, err := optimize.Minimize(problem, params.Normalize(initRaw), settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := tr.best
	fmt.Printf("\n%d evaluations in %s\n", tr.evals, time.Since(tr.start).Round(time.Second))
	fmt.Printf("Best: fitness %.4f, %.1f ± %.1f generations, %.0f%% extinct\n",
		best.Fitness, best.MeanGens, best.StdGens, 100*best.ExtinctRate)

	bestCfg := tr.bestConfig(initRaw)
	fmt.Println("\nBest parameters:")
	for i, v := range params.ExtractFromConfig(bestCfg) {
		fmt.Printf("  %-28s %.4f\n", params.Specs[i].Path, v)
	}

	if err := out.WriteConfigAs("best_config.yaml", bestCfg); err != nil {
		log.Printf("failed to write best config: %v", err)
	}
	if err := out.WriteHallOfFame(evaluator.BestHallOfFame()); err != nil {
		log.Printf("failed to write hall of fame: %v", err)
	}
	fmt.Printf("\nResults saved to %s\n", out.Dir())
}
