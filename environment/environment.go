// Package environment provides the drifting conditions organisms are scored against.
package environment

import (
	"math"
	"math/rand"
)

// Bounds limits how far and how fast the environment drifts.
type Bounds struct {
	RatioMin  float64
	RatioMax  float64
	RatioStep float64 // max absolute ratio change per generation
	TempMin   float64
	TempMax   float64
	TempStep  float64 // max absolute temperature change per generation
}

// DefaultBounds returns the standard drift limits.
func DefaultBounds() Bounds {
	return Bounds{
		RatioMin:  0.3,
		RatioMax:  0.7,
		RatioStep: 0.1,
		TempMin:   25,
		TempMax:   45,
		TempStep:  5,
	}
}

// Environment holds the fitness landscape for the current generation.
type Environment struct {
	name        string
	idealRatio  float64
	temperature float64
	generation  int
	bounds      Bounds
}

// New creates an environment with default drift bounds.
// Initial values are stored verbatim; only Drift clamps.
func New(name string, idealRatio, temperature float64) *Environment {
	return NewWithBounds(name, idealRatio, temperature, DefaultBounds())
}

// NewWithBounds creates an environment with custom drift bounds.
func NewWithBounds(name string, idealRatio, temperature float64, b Bounds) *Environment {
	return &Environment{
		name:        name,
		idealRatio:  idealRatio,
		temperature: temperature,
		bounds:      b,
	}
}

// Drift advances one generation and nudges ratio then temperature by a
// uniform symmetric delta, clamping each to its range.
func (e *Environment) Drift(rng *rand.Rand) {
	b := e.bounds
	e.generation++
	e.idealRatio = clamp(e.idealRatio+uniform(rng, b.RatioStep), b.RatioMin, b.RatioMax)
	e.temperature = clamp(e.temperature+uniform(rng, b.TempStep), b.TempMin, b.TempMax)
}

// TargetCount returns how many G/C bases a genome of the given length
// needs to match the ideal ratio as closely as possible.
func (e *Environment) TargetCount(length int) int {
	return int(math.Round(e.idealRatio * float64(length)))
}

func (e *Environment) Name() string { return e.name }
func (e *Environment) IdealRatio() float64 { return e.idealRatio }
func (e *Environment) Temperature() float64 { return e.temperature }
func (e *Environment) Generation() int { return e.generation }
func (e *Environment) Bounds() Bounds { return e.bounds }

// uniform draws from [-step, step).
func uniform(rng *rand.Rand, step float64) float64 {
	return (rng.Float64()*2 - 1) * step
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
