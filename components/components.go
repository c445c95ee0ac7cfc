// Package components defines the ECS components a population is stored as.
package components

// Identity fixes an organism's name and its slot in the population.
// ID equals the 0-based insertion index and never changes.
type Identity struct {
	ID              uint32
	Name            string
	BirthGeneration int
}

// Lineage records where an organism's genome came from.
type Lineage struct {
	Founder bool   // part of the starting population
	Origin  string // sequence at birth
}
