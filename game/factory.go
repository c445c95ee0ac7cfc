package game

import (
	"fmt"

	"github.com/pthm-cable/biogenesis/components"
	"github.com/pthm-cable/biogenesis/genome"
	"github.com/pthm-cable/biogenesis/organism"
)

// spawnFounders creates the starting population. Literal founder
// sequences take precedence over random genomes.
func (g *Game) spawnFounders() {
	pop := g.cfg.Population

	if len(pop.Founders) > 0 {
		for i, seq := range pop.Founders {
			gen, err := genome.Parse(seq)
			if err != nil {
				// Validate rejects these; reaching here means an unvalidated config.
				g.log.Warn("skipping invalid founder", "index", i, "error", err)
				continue
			}
			g.addOrganism(founderName(pop.NamePrefix, i), gen, true)
		}
		return
	}

	for i := 0; i < pop.Initial; i++ {
		gen := genome.New(g.rng, g.cfg.Genome.Length)
		g.addOrganism(founderName(pop.NamePrefix, i), gen, true)
	}
}

func founderName(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i+1)
}

// AddOrganism appends an organism to the population and returns its index.
// The population keeps its own copy of gen, so later changes by the caller
// do not leak in. A nil or empty genome gets a random one of the configured
// length.
func (g *Game) AddOrganism(name string, gen *genome.Genome) int {
	if gen == nil || gen.Len() == 0 {
		return g.addOrganism(name, genome.New(g.rng, g.cfg.Genome.Length), false)
	}
	return g.addOrganism(name, gen.Clone(), false)
}

func (g *Game) addOrganism(name string, gen *genome.Genome, founder bool) int {
	index := len(g.entities)
	id := uint32(index)
	birth := g.env.Generation()

	ident := components.Identity{ID: id, Name: name, BirthGeneration: birth}
	lineage := components.Lineage{Founder: founder, Origin: gen.String()}
	org := organism.NewWithRules(name, gen, g.rng, g.rules)

	entity := g.specimenMapper.NewEntity(&ident, &lineage, org)
	g.entities = append(g.entities, entity)

	g.lifetime.Register(id, name, birth)
	return index
}
