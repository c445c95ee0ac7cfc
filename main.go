package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/biogenesis/config"
	"github.com/pthm-cable/biogenesis/game"
	"github.com/pthm-cable/biogenesis/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Auto-play without the interactive shell")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	logFormat := flag.String("log-format", "json", "Log format: json or text")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 100, "Stop headless runs after N generations (0 = until extinct)")

	flag.Parse()

	// Set up slog (JSON to stderr so the shell owns stdout)
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if *logFormat == "text" {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Config:    config.Cfg(),
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	if !*headless {
		if err := ui.NewConsole(os.Stdin, os.Stdout, opts).Run(); err != nil {
			slog.Error("console failed", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("starting headless run",
		"seed", rngSeed,
		"max_generations", *maxGenerations,
	)

	game.SetLogWriter(os.Stdout)
	out := game.RunHeadless(opts, *maxGenerations, game.LogReport)
	slog.Info("headless run finished",
		"generations", out.Generations,
		"extinct", out.Extinct,
		"alive", out.Alive,
		"edits", out.Edits,
		"longest_life", out.LongestLife,
	)
	game.LogOutcome(out)
}
