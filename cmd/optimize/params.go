package main

import (
	"github.com/pthm-cable/biogenesis/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
// The edit budget and genome length stay fixed; they define the game.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Survival
			{Name: "temperature_penalty", Path: "survival.temperature_penalty", Min: 0.5, Max: 4.0, Default: 2.0},
			{Name: "fitness_threshold", Path: "survival.fitness_threshold", Min: 10, Max: 60, Default: 30},
			{Name: "fitness_hazard", Path: "survival.fitness_hazard", Min: 0.1, Max: 0.9, Default: 0.5},
			{Name: "age_hazard", Path: "survival.age_hazard", Min: 0.05, Max: 0.6, Default: 0.3},
			// Environment drift
			{Name: "ratio_step", Path: "environment.ratio_step", Min: 0.02, Max: 0.2, Default: 0.1},
			{Name: "temp_step", Path: "environment.temp_step", Min: 1.0, Max: 10.0, Default: 5.0},
			// Controller
			{Name: "spontaneous_mutation_rate", Path: "controller.spontaneous_mutation_rate", Min: 0.0, Max: 0.3, Default: 0.1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Survival.TemperaturePenalty = c[0]
	cfg.Survival.FitnessThreshold = c[1]
	cfg.Survival.FitnessHazard = c[2]
	cfg.Survival.AgeHazard = c[3]

	cfg.Environment.RatioStep = c[4]
	cfg.Environment.TempStep = c[5]

	cfg.Controller.SpontaneousMutationRate = c[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Survival.TemperaturePenalty,
		cfg.Survival.FitnessThreshold,
		cfg.Survival.FitnessHazard,
		cfg.Survival.AgeHazard,
		cfg.Environment.RatioStep,
		cfg.Environment.TempStep,
		cfg.Controller.SpontaneousMutationRate,
	}
}
