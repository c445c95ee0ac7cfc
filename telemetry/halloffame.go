package telemetry

import (
	"encoding/json"
	"sort"
)

// HallEntry records a dead organism worth remembering.
type HallEntry struct {
	Name           string  `json:"name"`
	Sequence       string  `json:"sequence"`
	Origin         string  `json:"origin"`
	Age            int     `json:"age"`
	PeakFitness    float64 `json:"peak_fitness"`
	FinalFitness   float64 `json:"final_fitness"`
	Edits          int     `json:"edits"`
	Mutations      int     `json:"mutations"`
	Cause          string  `json:"cause"`
	DiedGeneration int     `json:"died_generation"`
}

// HallOfFame keeps the longest-lived organisms of a run, best first.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers a dead organism to the hall.
// Returns true if the organism was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	// Find insertion point (sorted by age, then peak fitness, descending)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return outranks(entry, hof.entries[i])
	})

	// If hall is full and entry would be last, skip it
	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// outranks reports whether a sorts strictly before b. Ties keep arrival order.
func outranks(a, b HallEntry) bool {
	if a.Age != b.Age {
		return a.Age > b.Age
	}
	return a.PeakFitness > b.PeakFitness
}

// Entries returns the hall contents, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// MarshalJSON serializes the hall as an ordered list.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}
