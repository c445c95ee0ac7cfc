package organism

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/biogenesis/environment"
	"github.com/pthm-cable/biogenesis/genome"
)

// scriptedSource feeds fixed Int63 values so Float64 draws can be forced.
// Float64 returns v / 2^63, so draw(p) yields exactly p for dyadic p.
type scriptedSource struct {
	values []int64
	calls  int
}

func (s *scriptedSource) Int63() int64 {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v
}

func (s *scriptedSource) Seed(int64) {}

func draw(p float64) int64 {
	return int64(p * (1 << 63))
}

func scripted(ps ...float64) (*rand.Rand, *scriptedSource) {
	src := &scriptedSource{}
	for _, p := range ps {
		src.values = append(src.values, draw(p))
	}
	return rand.New(src), src
}

func TestEvaluateFitnessScenarios(t *testing.T) {
	env := environment.New("E", 0.5, 37)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name string
		seq  string
		want float64
	}{
		{"balanced genome", "ATCGATCGATCGATCGATCG", 100.0},
		{"all GC genome", "GCGCGCGCGCGCGCGCGCGC", 50.0},
		{"all AT genome", "ATATATATATATATATATAT", 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New("org", genome.FromString(tt.seq), rng)
			got := o.EvaluateFitness(env)
			if got != tt.want {
				t.Errorf("EvaluateFitness = %v, want %v", got, tt.want)
			}
			if o.Fitness() != got {
				t.Errorf("stored fitness %v != returned %v", o.Fitness(), got)
			}
		})
	}
}

func TestEvaluateFitnessTemperaturePenalty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)

	// 5 degrees off costs 10 points
	if got := o.EvaluateFitness(environment.New("E", 0.5, 42)); got != 90 {
		t.Errorf("fitness at 42C = %v, want 90", got)
	}
	if got := o.EvaluateFitness(environment.New("E", 0.5, 32)); got != 90 {
		t.Errorf("fitness at 32C = %v, want 90", got)
	}
}

func TestEvaluateFitnessNegativePenaltyCapped(t *testing.T) {
	rules := DefaultRules()
	rules.TemperaturePenalty = -2
	o := NewWithRules("org", genome.FromString("ATCGATCGATCGATCGATCG"), rand.New(rand.NewSource(1)), rules)

	if got := o.EvaluateFitness(environment.New("E", 0.5, 45)); got != MaxFitness {
		t.Errorf("fitness at 45C with penalty -2 = %v, want %v", got, MaxFitness)
	}
}

func TestEvaluateFitnessAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	envs := []*environment.Environment{
		environment.New("frozen", 0.0, -500),
		environment.New("inferno", 1.0, 1000),
		environment.New("mismatch", 5, 37),
		environment.New("negative", -5, 37),
		environment.New("mild", 0.5, 37),
	}

	for i := 0; i < 200; i++ {
		o := New("org", nil, rng)
		for _, env := range envs {
			f := o.EvaluateFitness(env)
			if f < 0 || f > MaxFitness {
				t.Fatalf("fitness %v out of [0, 100] in %s for %s", f, env.Name(), o.Genome())
			}
		}
	}
}

func TestNewDefaults(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	o := New("Species-1", nil, rng)

	if o.Name() != "Species-1" {
		t.Errorf("name = %q", o.Name())
	}
	if o.Genome().Len() != genome.DefaultLength {
		t.Errorf("genome length = %d, want %d", o.Genome().Len(), genome.DefaultLength)
	}
	if o.Fitness() != 0 || o.Age() != 0 || !o.Alive() || o.Cause() != DeathNone {
		t.Errorf("fresh organism: fitness=%v age=%d alive=%v cause=%v",
			o.Fitness(), o.Age(), o.Alive(), o.Cause())
	}
}

func TestNewReplacesEmptyGenome(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	o := New("org", genome.FromString(""), rng)

	if o.Genome().Len() != genome.DefaultLength {
		t.Fatalf("genome length = %d, want %d", o.Genome().Len(), genome.DefaultLength)
	}
	env := environment.New("E", 0.5, 37)
	if f := o.EvaluateFitness(env); f < 0 || f > 100 {
		t.Errorf("fitness = %v, want [0,100]", f)
	}
}

func TestAttemptSurvivalIncrementsAge(t *testing.T) {
	env := environment.New("E", 0.5, 37)
	rng := rand.New(rand.NewSource(8))
	o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)

	// Fitness 100 and age 1: no hazard applies
	if !o.AttemptSurvival(env, rng) {
		t.Fatal("fit young organism should survive")
	}
	if o.Age() != 1 {
		t.Errorf("age = %d, want 1", o.Age())
	}
	if o.Fitness() != 100 {
		t.Errorf("fitness = %v, want recomputed 100", o.Fitness())
	}
}

func TestAttemptSurvivalAgeAlwaysAdvances(t *testing.T) {
	// Hostile environment: fitness 0 every generation
	env := environment.New("E", 0.5, 100)
	rng := rand.New(rand.NewSource(13))

	for i := 0; i < 100; i++ {
		o := New("org", nil, rng)
		before := o.Age()
		o.AttemptSurvival(env, rng)
		if o.Age() != before+1 {
			t.Fatalf("age went %d -> %d", before, o.Age())
		}
	}
}

func TestAttemptSurvivalNoDrawWhenFitAndYoung(t *testing.T) {
	env := environment.New("E", 0.5, 37)
	rng, src := scripted(0.0)
	o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)

	// A zero draw would kill under any hazard, so survival proves no hazard rolled
	if !o.AttemptSurvival(env, rng) {
		t.Fatal("organism should survive without any hazard roll")
	}
	if src.calls != 0 {
		t.Errorf("drew %d times, want 0", src.calls)
	}
}

func TestAttemptSurvivalFitnessHazard(t *testing.T) {
	// 40 degrees off costs 80 points: fitness 20, under the threshold
	env := environment.New("E", 0.5, 37+40)

	t.Run("dies on low draw", func(t *testing.T) {
		rng, src := scripted(0.25)
		o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
		if o.AttemptSurvival(env, rng) {
			t.Fatal("should die under fitness hazard")
		}
		if o.Alive() || o.Cause() != DeathLowFitness {
			t.Errorf("alive=%v cause=%v", o.Alive(), o.Cause())
		}
		if src.calls != 1 {
			t.Errorf("drew %d times, want 1", src.calls)
		}
	})

	t.Run("survives on high draw", func(t *testing.T) {
		rng, src := scripted(0.75)
		o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
		if !o.AttemptSurvival(env, rng) {
			t.Fatal("should survive fitness hazard")
		}
		if src.calls != 1 {
			t.Errorf("drew %d times, want 1", src.calls)
		}
	})

	t.Run("boundary draw equal to hazard survives", func(t *testing.T) {
		rng, _ := scripted(0.5)
		o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
		if !o.AttemptSurvival(env, rng) {
			t.Fatal("draw of exactly 0.5 is not < 0.5")
		}
	})
}

// ageTo advances an organism to the given age in a benign environment.
func ageTo(t *testing.T, o *Organism, age int) {
	t.Helper()
	benign := environment.New("benign", o.Genome().CompositionRatio(), 37)
	calm := rand.New(&scriptedSource{values: []int64{draw(0.99)}})
	for o.Age() < age {
		if !o.AttemptSurvival(benign, calm) {
			t.Fatalf("organism died while aging to %d", age)
		}
	}
}

func TestAttemptSurvivalAgeHazard(t *testing.T) {
	env := environment.New("E", 0.5, 37)

	t.Run("no age hazard at exactly MaxSafeAge", func(t *testing.T) {
		rng, src := scripted(0.0)
		o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
		ageTo(t, o, 9)
		if !o.AttemptSurvival(env, rng) {
			t.Fatal("age 10 is not past MaxSafeAge")
		}
		if src.calls != 0 {
			t.Errorf("drew %d times at age 10, want 0", src.calls)
		}
	})

	t.Run("old organism dies on low draw", func(t *testing.T) {
		rng, src := scripted(0.25)
		o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
		ageTo(t, o, 10)
		if o.AttemptSurvival(env, rng) {
			t.Fatal("should die under age hazard")
		}
		if o.Cause() != DeathOldAge || o.Age() != 11 {
			t.Errorf("cause=%v age=%d", o.Cause(), o.Age())
		}
		if src.calls != 1 {
			t.Errorf("drew %d times, want 1", src.calls)
		}
	})

	t.Run("old organism survives on high draw", func(t *testing.T) {
		rng, _ := scripted(0.3)
		o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
		ageTo(t, o, 10)
		if !o.AttemptSurvival(env, rng) {
			t.Fatal("draw of 0.3 is not < 0.3")
		}
	})
}

func TestAttemptSurvivalFitnessHazardShortCircuitsAge(t *testing.T) {
	hostile := environment.New("E", 0.5, 37+40)

	// Old and unfit: the fitness hazard kills and the age hazard is never rolled
	rng, src := scripted(0.0)
	o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
	ageTo(t, o, 15)
	if o.AttemptSurvival(hostile, rng) {
		t.Fatal("should die")
	}
	if o.Cause() != DeathLowFitness {
		t.Errorf("cause = %v, want low_fitness", o.Cause())
	}
	if src.calls != 1 {
		t.Errorf("drew %d times, want exactly 1", src.calls)
	}

	// Old and unfit but survives the fitness roll: the age hazard gets its own roll
	rng, src = scripted(0.75, 0.25)
	o = New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)
	ageTo(t, o, 15)
	if o.AttemptSurvival(hostile, rng) {
		t.Fatal("should die under age hazard after surviving fitness roll")
	}
	if o.Cause() != DeathOldAge {
		t.Errorf("cause = %v, want old_age", o.Cause())
	}
	if src.calls != 2 {
		t.Errorf("drew %d times, want 2", src.calls)
	}
}

func TestAttemptSurvivalDeadIsInert(t *testing.T) {
	hostile := environment.New("E", 0.5, 37+40)
	rng, src := scripted(0.0)
	o := New("org", genome.FromString("ATCGATCGATCGATCGATCG"), rng)

	o.AttemptSurvival(hostile, rng)
	if o.Alive() {
		t.Fatal("setup: organism should be dead")
	}
	age, calls := o.Age(), src.calls

	if o.AttemptSurvival(environment.New("E", 0.5, 37), rng) {
		t.Error("dead organism reported survival")
	}
	if o.Alive() || o.Age() != age || src.calls != calls {
		t.Errorf("dead organism changed: alive=%v age=%d draws=%d", o.Alive(), o.Age(), src.calls-calls)
	}
}

func TestDeathCauseString(t *testing.T) {
	if DeathLowFitness.String() != "low_fitness" || DeathOldAge.String() != "old_age" || DeathNone.String() != "none" {
		t.Error("unexpected DeathCause strings")
	}
}
