// Package genome provides the fixed-alphabet DNA sequence carried by every organism.
package genome

import (
	"errors"
	"fmt"
	"math/rand"
)

// DefaultLength is the sequence length used when none is given.
const DefaultLength = 20

// Bases is the genome alphabet, in draw order for random generation.
var Bases = [4]byte{'A', 'T', 'C', 'G'}

var (
	ErrEmptySequence = errors.New("genome: empty sequence")
	ErrInvalidSymbol = errors.New("genome: invalid symbol")
)

// Genome is an ordered, fixed-length sequence of bases.
// The length never changes after construction; only single positions are rewritten.
type Genome struct {
	seq []byte
}

// New generates a random genome of the given length.
// A length below 1 falls back to DefaultLength so the sequence is never empty.
func New(rng *rand.Rand, length int) *Genome {
	if length < 1 {
		length = DefaultLength
	}
	seq := make([]byte, length)
	for i := range seq {
		seq[i] = Bases[rng.Intn(len(Bases))]
	}
	return &Genome{seq: seq}
}

// FromString adopts a literal sequence as-is. Callers should only pass valid
// bases. An empty sequence yields a zero-length genome, which organisms and
// games replace with a random one.
func FromString(seq string) *Genome {
	return &Genome{seq: []byte(seq)}
}

// Parse builds a genome from user input, rejecting empty sequences and foreign symbols.
func Parse(seq string) (*Genome, error) {
	if seq == "" {
		return nil, ErrEmptySequence
	}
	for i := 0; i < len(seq); i++ {
		if !IsBase(seq[i]) {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidSymbol, seq[i], i)
		}
	}
	return FromString(seq), nil
}

// IsBase reports whether b is one of A, T, C, G.
func IsBase(b byte) bool {
	switch b {
	case 'A', 'T', 'C', 'G':
		return true
	}
	return false
}

// MutateAt overwrites the base at pos. It reports false and leaves the
// sequence untouched when pos is out of range or sym is not a base.
func (g *Genome) MutateAt(pos int, sym byte) bool {
	if pos < 0 || pos >= len(g.seq) || !IsBase(sym) {
		return false
	}
	g.seq[pos] = sym
	return true
}

// RandomMutation rewrites one uniformly chosen position with a uniformly
// chosen base and returns what it applied. The new base may equal the old one.
func (g *Genome) RandomMutation(rng *rand.Rand) (pos int, sym byte) {
	pos = rng.Intn(len(g.seq))
	sym = Bases[rng.Intn(len(Bases))]
	g.MutateAt(pos, sym)
	return pos, sym
}

// CompositionRatio returns the fraction of G and C bases (GC content).
func (g *Genome) CompositionRatio() float64 {
	return float64(g.Count('G')+g.Count('C')) / float64(len(g.seq))
}

// Count returns the number of positions holding sym.
func (g *Genome) Count(sym byte) int {
	n := 0
	for _, b := range g.seq {
		if b == sym {
			n++
		}
	}
	return n
}

// Len returns the sequence length.
func (g *Genome) Len() int {
	return len(g.seq)
}

// At returns the base at pos. It panics if pos is out of range.
func (g *Genome) At(pos int) byte {
	return g.seq[pos]
}

// Clone returns an independent copy.
func (g *Genome) Clone() *Genome {
	seq := make([]byte, len(g.seq))
	copy(seq, g.seq)
	return &Genome{seq: seq}
}

func (g *Genome) String() string {
	return string(g.seq)
}
