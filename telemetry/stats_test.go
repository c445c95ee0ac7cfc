package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/biogenesis/organism"
)

func TestComputeDistribution(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Distribution
	}{
		{"empty", nil, Distribution{}},
		{"single", []float64{42}, Distribution{Mean: 42, Std: 0, Min: 42, P50: 42, Max: 42}},
		{"unsorted", []float64{30, 10, 20}, Distribution{Mean: 20, Std: math.Sqrt(200.0 / 3), Min: 10, P50: 20, Max: 30}},
		{"constant", []float64{5, 5, 5, 5}, Distribution{Mean: 5, Std: 0, Min: 5, P50: 5, Max: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDistribution(tt.values)
			check := func(field string, got, want float64) {
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("%s = %v, want %v", field, got, want)
				}
			}
			check("mean", got.Mean, tt.want.Mean)
			check("std", got.Std, tt.want.Std)
			check("min", got.Min, tt.want.Min)
			check("p50", got.P50, tt.want.P50)
			check("max", got.Max, tt.want.Max)
		})
	}
}

func TestComputeDistributionDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeDistribution(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector("run-1")

	c.Record(NewDeathEvent(1, 0, organism.DeathLowFitness))
	c.Record(NewDeathEvent(1, 1, organism.DeathOldAge))
	c.Record(NewDeathEvent(1, 2, organism.DeathLowFitness))
	c.Record(NewMutationEvent(1, 3, 4, 'G'))
	c.Record(NewEditEvent(1, 3, 0, 'C', true))
	c.Record(NewEditEvent(1, 3, 99, 'C', false))

	stats := c.Flush(Sample{
		Generation:  1,
		IdealRatio:  0.55,
		Temperature: 40,
		Alive:       1,
		Total:       4,
		Fitnesses:   []float64{10, 20, 30, 40},
		Ratios:      []float64{0.6},
	})

	if stats.RunID != "run-1" || stats.Generation != 1 {
		t.Errorf("run=%q generation=%d", stats.RunID, stats.Generation)
	}
	if stats.Deaths != 3 || stats.DeathsLowFitness != 2 || stats.DeathsOldAge != 1 {
		t.Errorf("deaths=%d low=%d old=%d", stats.Deaths, stats.DeathsLowFitness, stats.DeathsOldAge)
	}
	if stats.SpontaneousMutations != 1 || stats.EditsApplied != 1 || stats.EditsRejected != 1 {
		t.Errorf("mutations=%d applied=%d rejected=%d",
			stats.SpontaneousMutations, stats.EditsApplied, stats.EditsRejected)
	}
	if stats.FitnessMean != 25 || stats.FitnessMin != 10 || stats.FitnessMax != 40 {
		t.Errorf("fitness mean=%v min=%v max=%v", stats.FitnessMean, stats.FitnessMin, stats.FitnessMax)
	}
	if stats.RatioMean != 0.6 || stats.Extinct {
		t.Errorf("ratio_mean=%v extinct=%v", stats.RatioMean, stats.Extinct)
	}

	// Counters reset after flush
	next := c.Flush(Sample{Generation: 2, Alive: 0, Total: 4})
	if next.Deaths != 0 || next.SpontaneousMutations != 0 || next.EditsApplied != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if !next.Extinct {
		t.Error("zero alive should flag extinct")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventSpontaneousMutation.String() != "spontaneous_mutation" {
		t.Errorf("got %q", EventSpontaneousMutation.String())
	}
	if NewEditEvent(0, 0, 0, 'A', false).Type != EventEditRejected {
		t.Error("rejected edit should map to EventEditRejected")
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, "Species-1", 0)

	lt.RecordEdit(7)
	lt.RecordEdit(7)
	lt.RecordMutation(7)
	lt.UpdateFitness(7, 80)
	lt.UpdateFitness(7, 60)

	// Unknown IDs are ignored
	lt.RecordEdit(99)

	s := lt.Get(7)
	if s == nil {
		t.Fatal("stats missing")
	}
	if s.Edits != 2 || s.Mutations != 1 || s.PeakFitness != 80 {
		t.Errorf("edits=%d mutations=%d peak=%v", s.Edits, s.Mutations, s.PeakFitness)
	}

	if removed := lt.Remove(7); removed != s || lt.Count() != 0 {
		t.Errorf("Remove returned %v, count=%d", removed, lt.Count())
	}
}
