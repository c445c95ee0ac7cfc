package telemetry

import "github.com/pthm-cable/biogenesis/organism"

// Collector accumulates events for the current generation and produces GenerationStats.
type Collector struct {
	runID string

	// Event counters for the current generation
	deathsLowFitness     int
	deathsOldAge         int
	spontaneousMutations int
	editsApplied         int
	editsRejected        int
}

// NewCollector creates a new stats collector stamping every record with runID.
func NewCollector(runID string) *Collector {
	return &Collector{runID: runID}
}

// Record counts one event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventDeath:
		if ev.Cause == organism.DeathOldAge {
			c.deathsOldAge++
		} else {
			c.deathsLowFitness++
		}
	case EventSpontaneousMutation:
		c.spontaneousMutations++
	case EventEditApplied:
		c.editsApplied++
	case EventEditRejected:
		c.editsRejected++
	}
}

// Sample is the population state the caller hands to Flush.
type Sample struct {
	Generation  int
	IdealRatio  float64
	Temperature float64
	Alive       int
	Total       int
	Fitnesses   []float64 // one per organism evaluated this generation
	Ratios      []float64 // one per survivor
}

// Flush produces GenerationStats and resets counters for the next generation.
// Edits recorded since the previous flush land in this record.
func (c *Collector) Flush(s Sample) GenerationStats {
	fit := ComputeDistribution(s.Fitnesses)
	ratio := ComputeDistribution(s.Ratios)

	stats := GenerationStats{
		RunID:       c.runID,
		Generation:  s.Generation,
		IdealRatio:  s.IdealRatio,
		Temperature: s.Temperature,

		Alive:   s.Alive,
		Total:   s.Total,
		Extinct: s.Alive == 0,

		Deaths:               c.deathsLowFitness + c.deathsOldAge,
		DeathsLowFitness:     c.deathsLowFitness,
		DeathsOldAge:         c.deathsOldAge,
		SpontaneousMutations: c.spontaneousMutations,
		EditsApplied:         c.editsApplied,
		EditsRejected:        c.editsRejected,

		FitnessMean: fit.Mean,
		FitnessStd:  fit.Std,
		FitnessMin:  fit.Min,
		FitnessP50:  fit.P50,
		FitnessMax:  fit.Max,

		RatioMean: ratio.Mean,
	}

	// Reset for next generation
	c.deathsLowFitness = 0
	c.deathsOldAge = 0
	c.spontaneousMutations = 0
	c.editsApplied = 0
	c.editsRejected = 0

	return stats
}

// RunID returns the identifier stamped on every record.
func (c *Collector) RunID() string {
	return c.runID
}
