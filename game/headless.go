package game

import "github.com/pthm-cable/biogenesis/telemetry"

// Outcome summarizes one headless run.
type Outcome struct {
	Seed        int64   `csv:"seed"`
	Generations int     `csv:"generations"`
	Extinct     bool    `csv:"extinct"`
	Alive       int     `csv:"alive"`
	Edits       int     `csv:"edits"`
	Deaths      int     `csv:"deaths"`
	Mutations   int     `csv:"mutations"`
	LongestLife int     `csv:"longest_life"`
	FinalRatio  float64 `csv:"final_ideal_ratio"`
	FinalTemp   float64 `csv:"final_temperature"`

	HallOfFame *telemetry.HallOfFame `csv:"-"`
}

// RunHeadless plays a game with the Autoplayer until extinction or
// maxGenerations (0 = no limit). onReport, if set, sees every generation.
// The game is closed before returning.
func RunHeadless(opts Options, maxGenerations int, onReport func(Report)) Outcome {
	g := NewGame(opts)
	defer func() {
		if err := g.Close(); err != nil {
			g.log.Error("failed to close output", "error", err)
		}
	}()

	out := Outcome{Seed: g.Seed()}
	for g.Running() && (maxGenerations == 0 || g.Generation() < maxGenerations) {
		out.Edits += Autoplayer{}.Play(g)
		r, err := g.AdvanceGeneration()
		if err != nil {
			break
		}
		out.Deaths += len(r.Deaths)
		out.Mutations += len(r.Mutations)
		if onReport != nil {
			onReport(r)
		}
	}

	out.Generations = g.Generation()
	out.Extinct = g.State() == StateExtinct
	out.Alive = g.AliveCount()
	out.FinalRatio = g.env.IdealRatio()
	out.FinalTemp = g.env.Temperature()
	for _, org := range g.Population() {
		if org.Age() > out.LongestLife {
			out.LongestLife = org.Age()
		}
	}
	out.HallOfFame = g.hallOfFame

	g.log.Debug("headless run finished",
		"generations", out.Generations,
		"extinct", out.Extinct,
		"edits", out.Edits,
	)
	return out
}
