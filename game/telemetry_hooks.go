package game

import "github.com/pthm-cable/biogenesis/telemetry"

// emit records an event and forwards it to the event callback.
func (g *Game) emit(ev telemetry.Event) {
	g.collector.Record(ev)
	if g.eventCallback != nil {
		g.eventCallback(ev)
	}
}

// flushTelemetry closes out the generation's stats, writes output and checks bookmarks.
func (g *Game) flushTelemetry(fitnesses []float64, deaths []telemetry.DeathRecord) {
	ratios, oldest := g.sampleSurvivors()

	stats := g.collector.Flush(telemetry.Sample{
		Generation:  g.env.Generation(),
		IdealRatio:  g.env.IdealRatio(),
		Temperature: g.env.Temperature(),
		Alive:       len(ratios),
		Total:       len(g.entities),
		Fitnesses:   fitnesses,
		Ratios:      ratios,
	})

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		g.log.Error("failed to write generation", "error", err)
	}
	if err := g.outputManager.WriteDeaths(deaths); err != nil {
		g.log.Error("failed to write deaths", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats, oldest) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			g.log.Error("failed to write bookmark", "error", err)
		}
	}
}

// sampleSurvivors collects composition ratios of the living and the oldest age.
func (g *Game) sampleSurvivors() (ratios []float64, oldest int) {
	query := g.organismFilter.Query()
	for query.Next() {
		org := query.Get()
		if !org.Alive() {
			continue
		}
		ratios = append(ratios, org.Genome().CompositionRatio())
		if org.Age() > oldest {
			oldest = org.Age()
		}
	}
	return ratios, oldest
}
