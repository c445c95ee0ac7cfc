package game

import "github.com/pthm-cable/biogenesis/organism"

// Report summarizes one generation advance.
type Report struct {
	Generation  int
	IdealRatio  float64
	Temperature float64
	Alive       int
	Total       int
	Extinct     bool
	Deaths      []Death
	Mutations   []SpontaneousMutation
}

// Death describes an organism that died this generation.
type Death struct {
	Index   int
	Name    string
	Age     int
	Fitness float64
	Cause   organism.DeathCause
}

// SpontaneousMutation describes a random mutation applied to a survivor.
type SpontaneousMutation struct {
	Index    int
	Name     string
	Position int
	Symbol   byte
}
