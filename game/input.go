package game

import "github.com/pthm-cable/biogenesis/telemetry"

// EditOutcome is the result of a player edit request.
type EditOutcome uint8

const (
	EditApplied EditOutcome = iota
	EditNoBudget
	EditInvalidTarget
	EditMutationRejected
)

func (o EditOutcome) String() string {
	switch o {
	case EditApplied:
		return "applied"
	case EditNoBudget:
		return "no_budget"
	case EditInvalidTarget:
		return "invalid_target"
	case EditMutationRejected:
		return "mutation_rejected"
	default:
		return "unknown"
	}
}

// RequestEdit asks to set position pos of organism index to sym.
//
// The budget is checked first, then the target, then the mutation itself.
// Only an applied edit spends budget. Edits are allowed after extinction
// but can never find a living target.
func (g *Game) RequestEdit(index, pos int, sym byte) EditOutcome {
	if g.budget <= 0 {
		return EditNoBudget
	}

	org := g.Organism(index)
	if org == nil || !org.Alive() {
		return EditInvalidTarget
	}

	id := uint32(index)
	gen := g.env.Generation()

	if !org.Genome().MutateAt(pos, sym) {
		g.emit(telemetry.NewEditEvent(gen, id, pos, sym, false))
		return EditMutationRejected
	}

	g.budget--
	g.lifetime.RecordEdit(id)
	g.emit(telemetry.NewEditEvent(gen, id, pos, sym, true))
	return EditApplied
}
