package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biogenesis/organism"
	"github.com/pthm-cable/biogenesis/telemetry"
)

// AdvanceGeneration runs one generation: the environment drifts, every
// organism alive at the start rolls for survival in insertion order, and
// each survivor may take a spontaneous mutation. The edit budget is then
// refilled.
//
// Once the population is extinct it returns ErrExtinct and changes nothing.
func (g *Game) AdvanceGeneration() (Report, error) {
	if g.state == StateExtinct {
		return Report{}, ErrExtinct
	}

	g.env.Drift(g.rng)
	gen := g.env.Generation()

	report := Report{
		Generation:  gen,
		IdealRatio:  g.env.IdealRatio(),
		Temperature: g.env.Temperature(),
		Total:       len(g.entities),
	}

	rate := g.cfg.Controller.SpontaneousMutationRate
	var fitnesses []float64
	var deaths []telemetry.DeathRecord

	for _, i := range g.aliveIndices() {
		entity := g.entities[i]
		org := g.organismMap.Get(entity)
		id := uint32(i)

		survived := org.AttemptSurvival(g.env, g.rng)
		fitnesses = append(fitnesses, org.Fitness())
		g.lifetime.UpdateFitness(id, org.Fitness())

		if !survived {
			report.Deaths = append(report.Deaths, Death{
				Index:   i,
				Name:    org.Name(),
				Age:     org.Age(),
				Fitness: org.Fitness(),
				Cause:   org.Cause(),
			})
			deaths = append(deaths, g.deathRecord(org))
			g.emit(telemetry.NewDeathEvent(gen, id, org.Cause()))
			g.retire(entity, org)
			continue
		}

		if g.rng.Float64() < rate {
			pos, sym := org.Genome().RandomMutation(g.rng)
			report.Mutations = append(report.Mutations, SpontaneousMutation{
				Index:    i,
				Name:     org.Name(),
				Position: pos,
				Symbol:   sym,
			})
			g.lifetime.RecordMutation(id)
			g.emit(telemetry.NewMutationEvent(gen, id, pos, sym))
		}
	}

	g.budget = g.cfg.Controller.EditBudget
	report.Alive = g.AliveCount()

	if report.Alive == 0 {
		report.Extinct = true
		g.state = StateExtinct
		g.emit(telemetry.NewExtinctionEvent(gen))
		g.log.Warn("population extinct", "generation", gen, "total", report.Total)
	}

	g.flushTelemetry(fitnesses, deaths)
	return report, nil
}

// aliveIndices snapshots who is alive before any survival roll, so deaths
// during the pass cannot change the iteration set.
func (g *Game) aliveIndices() []int {
	var alive []int
	for i, e := range g.entities {
		if g.organismMap.Get(e).Alive() {
			alive = append(alive, i)
		}
	}
	return alive
}

// retire moves a dead organism's lifetime stats into the hall of fame.
// The entity itself stays in the world so indices remain stable.
func (g *Game) retire(entity ecs.Entity, org *organism.Organism) {
	ident := g.identityMap.Get(entity)
	lineage := g.lineageMap.Get(entity)

	stats := g.lifetime.Remove(ident.ID)
	if stats == nil {
		return
	}
	g.hallOfFame.Consider(telemetry.HallEntry{
		Name:           ident.Name,
		Sequence:       org.Genome().String(),
		Origin:         lineage.Origin,
		Age:            org.Age(),
		PeakFitness:    stats.PeakFitness,
		FinalFitness:   org.Fitness(),
		Edits:          stats.Edits,
		Mutations:      stats.Mutations,
		Cause:          org.Cause().String(),
		DiedGeneration: g.env.Generation(),
	})
}

func (g *Game) deathRecord(org *organism.Organism) telemetry.DeathRecord {
	return telemetry.DeathRecord{
		RunID:      g.RunID(),
		Generation: g.env.Generation(),
		Name:       org.Name(),
		Age:        org.Age(),
		Fitness:    org.Fitness(),
		Cause:      org.Cause().String(),
		Sequence:   org.Genome().String(),
	}
}
