package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one generation.
type GenerationStats struct {
	RunID      string `csv:"run_id"`
	Generation int    `csv:"generation"`

	// Environment after drift
	IdealRatio  float64 `csv:"ideal_ratio"`
	Temperature float64 `csv:"temperature"`

	// Population counts after survival
	Alive   int  `csv:"alive"`
	Total   int  `csv:"total"`
	Extinct bool `csv:"extinct"`

	// Events during the generation
	Deaths               int `csv:"deaths"`
	DeathsLowFitness     int `csv:"deaths_low_fitness"`
	DeathsOldAge         int `csv:"deaths_old_age"`
	SpontaneousMutations int `csv:"spontaneous_mutations"`
	EditsApplied         int `csv:"edits_applied"`
	EditsRejected        int `csv:"edits_rejected"`

	// Fitness distribution over organisms evaluated this generation
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessMin  float64 `csv:"fitness_min"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessMax  float64 `csv:"fitness_max"`

	// Mean GC ratio of survivors
	RatioMean float64 `csv:"ratio_mean"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std, Min, P50, Max float64
}

// ComputeDistribution returns mean, population std, min, median and max.
// Returns the zero value for an empty sample.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(sorted),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("generation", s.Generation),
		slog.Float64("ideal_ratio", s.IdealRatio),
		slog.Float64("temperature", s.Temperature),
		slog.Int("alive", s.Alive),
		slog.Int("total", s.Total),
		slog.Bool("extinct", s.Extinct),
		slog.Int("deaths", s.Deaths),
		slog.Int("deaths_low_fitness", s.DeathsLowFitness),
		slog.Int("deaths_old_age", s.DeathsOldAge),
		slog.Int("spontaneous_mutations", s.SpontaneousMutations),
		slog.Int("edits_applied", s.EditsApplied),
		slog.Int("edits_rejected", s.EditsRejected),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_min", s.FitnessMin),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("ratio_mean", s.RatioMean),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
