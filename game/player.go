package game

// Autoplayer spends the edit budget steering genomes toward the
// environment's ideal ratio. It is deterministic and draws no randomness.
type Autoplayer struct{}

// Play spends edits on g until the budget runs out or every living organism
// already holds the target G/C count. Returns the number of edits applied.
func (Autoplayer) Play(g *Game) int {
	applied := 0
	for g.Budget() > 0 {
		index, pos, sym, ok := nextEdit(g)
		if !ok {
			break
		}
		if g.RequestEdit(index, pos, sym) != EditApplied {
			break
		}
		applied++
	}
	return applied
}

// nextEdit picks the living organism furthest from the target G/C count
// (lowest index on ties) and the first base that moves it one step closer.
func nextEdit(g *Game) (index, pos int, sym byte, ok bool) {
	bestGap := 0
	index = -1
	for i, org := range g.Population() {
		if !org.Alive() {
			continue
		}
		gen := org.Genome()
		gap := g.env.TargetCount(gen.Len()) - (gen.Count('G') + gen.Count('C'))
		if abs(gap) > abs(bestGap) {
			bestGap = gap
			index = i
		}
	}
	if index < 0 {
		return 0, 0, 0, false
	}

	gen := g.Organism(index).Genome()
	for p := 0; p < gen.Len(); p++ {
		b := gen.At(p)
		if bestGap > 0 && (b == 'A' || b == 'T') {
			return index, p, 'G', true
		}
		if bestGap < 0 && (b == 'G' || b == 'C') {
			return index, p, 'A', true
		}
	}
	return 0, 0, 0, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
