// Package organism scores a genome against the environment and applies the
// per-generation survival rule.
package organism

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/biogenesis/environment"
	"github.com/pthm-cable/biogenesis/genome"
)

// MaxFitness is the best possible score: a perfect ratio match at the optimal temperature.
const MaxFitness = 100.0

// Rules holds the fitness and survival constants.
type Rules struct {
	OptimalTemperature float64 // temperature with no penalty
	TemperaturePenalty float64 // fitness lost per degree away from optimal
	FitnessThreshold   float64 // below this the fitness hazard applies
	FitnessHazard      float64 // death probability under the fitness threshold
	MaxSafeAge         int     // above this the age hazard applies
	AgeHazard          float64 // death probability past MaxSafeAge
}

// DefaultRules returns the standard survival model.
func DefaultRules() Rules {
	return Rules{
		OptimalTemperature: 37,
		TemperaturePenalty: 2,
		FitnessThreshold:   30,
		FitnessHazard:      0.5,
		MaxSafeAge:         10,
		AgeHazard:          0.3,
	}
}

// DeathCause records which hazard killed an organism.
type DeathCause uint8

const (
	DeathNone DeathCause = iota
	DeathLowFitness
	DeathOldAge
)

func (c DeathCause) String() string {
	switch c {
	case DeathLowFitness:
		return "low_fitness"
	case DeathOldAge:
		return "old_age"
	default:
		return "none"
	}
}

// Organism owns one genome and tracks its fitness, age and liveness.
// Once dead it stays dead.
type Organism struct {
	name    string
	genome  *genome.Genome
	rules   Rules
	fitness float64
	age     int
	alive   bool
	cause   DeathCause
}

// New creates a living organism with default rules. A nil or empty genome is
// replaced by a random one of genome.DefaultLength drawn from rng.
func New(name string, g *genome.Genome, rng *rand.Rand) *Organism {
	return NewWithRules(name, g, rng, DefaultRules())
}

// NewWithRules is like New with explicit survival rules.
func NewWithRules(name string, g *genome.Genome, rng *rand.Rand, rules Rules) *Organism {
	if g == nil || g.Len() == 0 {
		g = genome.New(rng, genome.DefaultLength)
	}
	return &Organism{
		name:   name,
		genome: g,
		rules:  rules,
		alive:  true,
	}
}

// EvaluateFitness scores the genome against env, stores the score and returns it.
//
// The ratio match gives up to 100 points, then every degree away from the
// optimal temperature costs TemperaturePenalty. The result is clamped to
// [0, MaxFitness].
func (o *Organism) EvaluateFitness(env *environment.Environment) float64 {
	ratioDiff := math.Abs(o.genome.CompositionRatio() - env.IdealRatio())
	score := math.Max(0, MaxFitness-ratioDiff*100)

	tempDiff := math.Abs(env.Temperature() - o.rules.OptimalTemperature)
	score -= tempDiff * o.rules.TemperaturePenalty

	o.fitness = math.Min(MaxFitness, math.Max(0, score))
	return o.fitness
}

// AttemptSurvival ages the organism one generation, rescores it and rolls
// the death hazards. The fitness hazard is checked first; if it kills, the
// age hazard is not rolled. Each applicable hazard consumes exactly one draw.
//
// Dead organisms are left untouched and report false without drawing.
func (o *Organism) AttemptSurvival(env *environment.Environment, rng *rand.Rand) bool {
	if !o.alive {
		return false
	}

	o.age++
	fitness := o.EvaluateFitness(env)

	if fitness < o.rules.FitnessThreshold {
		if rng.Float64() < o.rules.FitnessHazard {
			o.die(DeathLowFitness)
			return false
		}
	}

	if o.age > o.rules.MaxSafeAge {
		if rng.Float64() < o.rules.AgeHazard {
			o.die(DeathOldAge)
			return false
		}
	}

	return true
}

func (o *Organism) die(cause DeathCause) {
	o.alive = false
	o.cause = cause
}

func (o *Organism) Name() string { return o.name }
func (o *Organism) Genome() *genome.Genome { return o.genome }
func (o *Organism) Fitness() float64 { return o.fitness }
func (o *Organism) Age() int { return o.age }
func (o *Organism) Alive() bool { return o.alive }
func (o *Organism) Cause() DeathCause { return o.cause }
func (o *Organism) Rules() Rules { return o.rules }
