// Package ui provides the interactive text shell. It renders game state and
// forwards player commands to the controller; it holds no game rules.
package ui

import (
	"fmt"
	"io"

	"github.com/pthm-cable/biogenesis/game"
)

// HUD renders game state as text.
type HUD struct {
	out io.Writer
}

// NewHUD creates a HUD writing to out.
func NewHUD(out io.Writer) *HUD {
	return &HUD{out: out}
}

func (h *HUD) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

// DrawStatus renders the environment and every living organism.
// Organisms are numbered from 1 by their position in the population.
func (h *HUD) DrawStatus(g *game.Game) {
	env := g.Environment()
	h.printf("%s\n", rule)
	h.printf("%s (generation %d)\n", env.Name(), env.Generation())
	h.printf("ideal G/C ratio: %.2f | temperature: %.1f°C\n", env.IdealRatio(), env.Temperature())
	h.printf("edits left: %d | alive: %d/%d\n\n", g.Budget(), g.AliveCount(), g.Len())
	for i, org := range g.Population() {
		if !org.Alive() {
			continue
		}
		h.printf("%2d. %-14s %s ratio %.2f fitness %5.1f age %d\n",
			i+1, org.Name(), org.Genome(), org.Genome().CompositionRatio(), org.Fitness(), org.Age())
	}
	h.printf("%s\n", rule)
}

// DrawEnvironment renders drift limits and the G/C count that matches the ideal ratio.
func (h *HUD) DrawEnvironment(g *game.Game) {
	env := g.Environment()
	b := env.Bounds()
	length := g.Config().Genome.Length
	h.printf("%s (generation %d)\n", env.Name(), env.Generation())
	h.printf("ideal G/C ratio: %.2f (drifts ±%.2f within %.2f-%.2f)\n", env.IdealRatio(), b.RatioStep, b.RatioMin, b.RatioMax)
	h.printf("temperature: %.1f°C (drifts ±%.1f within %.0f-%.0f)\n", env.Temperature(), b.TempStep, b.TempMin, b.TempMax)
	h.printf("hint: a %d-base genome needs %d G/C bases to match\n", length, env.TargetCount(length))
}

// DrawReport renders the outcome of one generation.
func (h *HUD) DrawReport(r game.Report) {
	h.printf("generation %d: ratio %.2f, temperature %.1f°C\n", r.Generation, r.IdealRatio, r.Temperature)
	for _, d := range r.Deaths {
		h.printf("  %s died (%s) at age %d, fitness %.1f\n", d.Name, d.Cause, d.Age, d.Fitness)
	}
	for _, m := range r.Mutations {
		h.printf("  %s mutated spontaneously: position %d -> %c\n", m.Name, m.Position+1, m.Symbol)
	}
	h.printf("survivors: %d/%d\n", r.Alive, r.Total)
	if r.Extinct {
		h.printf("every species is extinct. game over.\n")
	}
}

const rule = "============================================================"
