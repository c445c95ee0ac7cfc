// Command sweep plays many seeded headless games in parallel and reports
// how long the auto-player keeps the population alive.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/biogenesis/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 100, "Number of seeds to run")
	firstSeed := flag.Int64("first-seed", 1, "Seed of the first run; later runs count up")
	maxGenerations := flag.Int("max-generations", 200, "Stop surviving runs after N generations")
	parallel := flag.Int("parallel", runtime.NumCPU(), "Games run at once")
	outputDir := flag.String("output", "", "Directory for outcomes.csv (empty = none)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	runSeeds := make([]int64, *seeds)
	for i := range runSeeds {
		runSeeds[i] = *firstSeed + int64(i)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := sweep(ctx, cfg, runSeeds, *maxGenerations, *parallel)
	if err != nil {
		slog.Error("sweep interrupted", "error", err)
		os.Exit(1)
	}

	summarize(outcomes).print(os.Stdout)

	if *outputDir == "" {
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	f, err := os.Create(filepath.Join(*outputDir, "outcomes.csv"))
	if err != nil {
		slog.Error("failed to create outcomes.csv", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := gocsv.Marshal(outcomes, f); err != nil {
		slog.Error("failed to write outcomes", "error", err)
	}
}
