package game

import (
	"strings"
	"testing"
)

func TestAutoplayerSpreadsEdits(t *testing.T) {
	g := newTestGame(t, calmConfig(allA, allA, allA))

	// All three are 10 G/C short; ties go to the lowest index, so each
	// organism gets one edit.
	if n := (Autoplayer{}).Play(g); n != 3 {
		t.Fatalf("Play() = %d edits, want 3", n)
	}
	if g.Budget() != 0 {
		t.Errorf("Budget() = %d, want 0", g.Budget())
	}
	for i, org := range g.Population() {
		if got := org.Genome().String(); got != "G"+allA[1:] {
			t.Errorf("organism %d = %s", i, got)
		}
	}
}

func TestAutoplayerReachesTarget(t *testing.T) {
	cfg := calmConfig(allA, strings.Repeat("G", 20), balanced)
	cfg.Controller.EditBudget = 100
	g := newTestGame(t, cfg)

	if n := (Autoplayer{}).Play(g); n != 20 {
		t.Fatalf("Play() = %d edits, want 20", n)
	}
	for i, org := range g.Population() {
		if r := org.Genome().CompositionRatio(); r != 0.5 {
			t.Errorf("organism %d ratio = %v, want 0.5", i, r)
		}
	}
	if got := g.Organism(1).Genome().String(); got != strings.Repeat("A", 10)+strings.Repeat("G", 10) {
		t.Errorf("over-target organism = %s", got)
	}
	if g.Budget() != 80 {
		t.Errorf("Budget() = %d, want 80", g.Budget())
	}
}

func TestAutoplayerIdleOnTarget(t *testing.T) {
	g := newTestGame(t, calmConfig(balanced, balanced))
	if n := (Autoplayer{}).Play(g); n != 0 {
		t.Errorf("Play() = %d edits on matched genomes, want 0", n)
	}
	if g.Budget() != 3 {
		t.Errorf("Budget() = %d, want 3", g.Budget())
	}
}

func TestAutoplayerSkipsDead(t *testing.T) {
	g := newTestGame(t, doomedConfig(allA))
	if _, err := g.AdvanceGeneration(); err != nil {
		t.Fatal(err)
	}
	if n := (Autoplayer{}).Play(g); n != 0 {
		t.Errorf("Play() = %d edits on a dead population, want 0", n)
	}
}
