package telemetry

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	Name            string
	BirthGeneration int

	// Genome changes
	Edits     int // player-directed
	Mutations int // spontaneous

	PeakFitness float64
}

// LifetimeTracker manages per-organism lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new organism.
func (lt *LifetimeTracker) Register(id uint32, name string, birthGeneration int) {
	lt.stats[id] = &LifetimeStats{
		Name:            name,
		BirthGeneration: birthGeneration,
	}
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an organism's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordEdit increments the player edit count.
func (lt *LifetimeTracker) RecordEdit(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Edits++
	}
}

// RecordMutation increments the spontaneous mutation count.
func (lt *LifetimeTracker) RecordMutation(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Mutations++
	}
}

// UpdateFitness tracks peak fitness.
func (lt *LifetimeTracker) UpdateFitness(id uint32, fitness float64) {
	if s := lt.stats[id]; s != nil {
		if fitness > s.PeakFitness {
			s.PeakFitness = fitness
		}
	}
}

// Count returns the number of tracked organisms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
