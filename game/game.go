// Package game runs the generation loop: environment drift, survival,
// spontaneous mutation, the per-generation edit budget and extinction.
package game

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biogenesis/components"
	"github.com/pthm-cable/biogenesis/config"
	"github.com/pthm-cable/biogenesis/environment"
	"github.com/pthm-cable/biogenesis/organism"
	"github.com/pthm-cable/biogenesis/telemetry"
)

// State is the controller's lifecycle state.
type State uint8

const (
	StateActive State = iota
	StateExtinct
)

func (s State) String() string {
	if s == StateExtinct {
		return "extinct"
	}
	return "active"
}

// ErrExtinct is returned by AdvanceGeneration once no organism is alive.
var ErrExtinct = errors.New("game: population is extinct")

// Options configures a new game.
type Options struct {
	Seed      int64          // RNG seed (0 = time-based)
	Config    *config.Config // nil = embedded defaults
	RunID     string         // "" = random UUID
	OutputDir string         // CSV/JSON output directory ("" = disabled)
	LogStats  bool           // log every generation's stats via slog

	// Optional hooks
	EventCallback func(telemetry.Event)
	StatsCallback func(telemetry.GenerationStats)
}

// Game holds the complete simulation state for one playthrough.
// It is not safe for concurrent use.
type Game struct {
	cfg   *config.Config
	rules organism.Rules
	rng   *rand.Rand
	seed  int64

	// Population storage. entities keeps insertion order; component
	// pointers from the maps are valid until the next AddOrganism.
	world          *ecs.World
	specimenMapper *ecs.Map3[components.Identity, components.Lineage, organism.Organism]
	identityMap    *ecs.Map1[components.Identity]
	lineageMap     *ecs.Map1[components.Lineage]
	organismMap    *ecs.Map1[organism.Organism]
	organismFilter *ecs.Filter1[organism.Organism]
	entities       []ecs.Entity

	env    *environment.Environment
	budget int
	state  State

	// Telemetry
	collector     *telemetry.Collector
	lifetime      *telemetry.LifetimeTracker
	hallOfFame    *telemetry.HallOfFame
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	logStats      bool
	eventCallback func(telemetry.Event)
	statsCallback func(telemetry.GenerationStats)
	log           *slog.Logger
}

// NewGame creates a game and spawns its founders.
func NewGame(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		rules: cfg.Rules(),
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,

		world:          world,
		specimenMapper: ecs.NewMap3[components.Identity, components.Lineage, organism.Organism](world),
		identityMap:    ecs.NewMap1[components.Identity](world),
		lineageMap:     ecs.NewMap1[components.Lineage](world),
		organismMap:    ecs.NewMap1[organism.Organism](world),
		organismFilter: ecs.NewFilter1[organism.Organism](world),

		env: environment.NewWithBounds(
			cfg.Environment.Name,
			cfg.Environment.IdealRatio,
			cfg.Environment.Temperature,
			cfg.Bounds(),
		),
		budget: cfg.Controller.EditBudget,
		state:  StateActive,

		collector:  telemetry.NewCollector(runID),
		lifetime:   telemetry.NewLifetimeTracker(),
		hallOfFame: telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
		bookmarks: telemetry.NewBookmarkDetector(
			cfg.Environment.TempMin,
			cfg.Environment.TempMax,
			cfg.Survival.MaxSafeAge,
		),
		logStats:      opts.LogStats || cfg.Telemetry.LogGenerations,
		eventCallback: opts.EventCallback,
		statsCallback: opts.StatsCallback,
		log:           slog.Default().With("run_id", runID),
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.log.Error("failed to create output manager", "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			g.log.Error("failed to write config snapshot", "error", err)
		}
	}

	g.spawnFounders()

	g.log.Info("game started",
		"seed", seed,
		"organisms", len(g.entities),
		"environment", g.env.Name(),
		"ideal_ratio", g.env.IdealRatio(),
		"temperature", g.env.Temperature(),
	)
	return g
}

// State returns the controller state.
func (g *Game) State() State {
	return g.state
}

// Running reports whether generations can still be advanced.
func (g *Game) Running() bool {
	return g.state == StateActive
}

// Budget returns the edits left this generation.
func (g *Game) Budget() int {
	return g.budget
}

// Environment returns the environment. Callers must treat it as read-only.
func (g *Game) Environment() *environment.Environment {
	return g.env
}

// Generation returns the current generation number.
func (g *Game) Generation() int {
	return g.env.Generation()
}

// Len returns the population size, dead organisms included.
func (g *Game) Len() int {
	return len(g.entities)
}

// Organism returns the organism at index, or nil when out of range.
// The pointer is valid until the next AddOrganism.
func (g *Game) Organism(index int) *organism.Organism {
	if index < 0 || index >= len(g.entities) {
		return nil
	}
	return g.organismMap.Get(g.entities[index])
}

// Population returns every organism in insertion order, dead ones included.
// The pointers are valid until the next AddOrganism.
func (g *Game) Population() []*organism.Organism {
	pop := make([]*organism.Organism, len(g.entities))
	for i, e := range g.entities {
		pop[i] = g.organismMap.Get(e)
	}
	return pop
}

// AliveCount returns the number of living organisms.
func (g *Game) AliveCount() int {
	n := 0
	query := g.organismFilter.Query()
	for query.Next() {
		if query.Get().Alive() {
			n++
		}
	}
	return n
}

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// RunID returns the identifier stamped on telemetry output.
func (g *Game) RunID() string {
	return g.collector.RunID()
}

// Config returns the active configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// HallOfFame returns the longest-lived dead organisms so far.
func (g *Game) HallOfFame() *telemetry.HallOfFame {
	return g.hallOfFame
}

// Close writes final output and releases files.
func (g *Game) Close() error {
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
		g.log.Error("failed to write hall of fame", "error", err)
	}
	return g.outputManager.Close()
}
