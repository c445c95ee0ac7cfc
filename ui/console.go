package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pthm-cable/biogenesis/game"
)

const help = `commands:
  start                        begin a new game
  status                       show the environment and living species
  edit <species> <pos> <base>  set one base (species and pos count from 1)
  advance                      move to the next generation
  env                          inspect the environment
  quit                         leave the game
`

// Console is the interactive command loop.
type Console struct {
	in   *bufio.Scanner
	out  io.Writer
	hud  *HUD
	opts game.Options

	game  *game.Game
	games int
}

// NewConsole creates a console reading commands from in. Every start
// creates a game from opts; later games offset the seed so each differs.
func NewConsole(in io.Reader, out io.Writer, opts game.Options) *Console {
	return &Console{
		in:   bufio.NewScanner(in),
		out:  out,
		hud:  NewHUD(out),
		opts: opts,
	}
}

// Game returns the current game, or nil before the first start.
func (c *Console) Game() *game.Game {
	return c.game
}

// Run processes commands until quit or end of input.
func (c *Console) Run() error {
	fmt.Fprintln(c.out, "Biogenesis: steer your species' DNA through a drifting world.")
	fmt.Fprint(c.out, help)
	defer c.closeGame()

	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		if quit := c.Execute(c.in.Text()); quit {
			return nil
		}
	}
}

// Execute runs one command line. Returns true when the player quits.
func (c *Console) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	if cmd == "quit" || cmd == "exit" {
		fmt.Fprintln(c.out, "thanks for playing Biogenesis")
		return true
	}
	if cmd == "help" {
		fmt.Fprint(c.out, help)
		return false
	}
	if cmd == "start" {
		c.start()
		return false
	}

	if c.game == nil {
		fmt.Fprintln(c.out, "no game in progress; type start")
		return false
	}

	switch cmd {
	case "status":
		c.hud.DrawStatus(c.game)
	case "env":
		c.hud.DrawEnvironment(c.game)
	case "edit":
		c.edit(args)
	case "advance", "next":
		c.advance()
	default:
		fmt.Fprintf(c.out, "unknown command %q; type help\n", cmd)
	}
	return false
}

func (c *Console) start() {
	c.closeGame()
	opts := c.opts
	if opts.Seed != 0 {
		opts.Seed += int64(c.games)
	}
	c.game = game.NewGame(opts)
	c.games++
	c.hud.DrawStatus(c.game)
}

func (c *Console) closeGame() {
	if c.game == nil {
		return
	}
	if err := c.game.Close(); err != nil {
		slog.Error("failed to close game", "error", err)
	}
}

func (c *Console) edit(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(c.out, "usage: edit <species> <pos> <base>")
		return
	}
	species, err1 := strconv.Atoi(args[0])
	pos, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || len(args[2]) != 1 {
		fmt.Fprintln(c.out, "species and position must be numbers, base a single letter")
		return
	}
	base := strings.ToUpper(args[2])[0]

	switch c.game.RequestEdit(species-1, pos-1, base) {
	case game.EditApplied:
		org := c.game.Organism(species - 1)
		fmt.Fprintf(c.out, "%s is now %s (%d edits left)\n", org.Name(), org.Genome(), c.game.Budget())
	case game.EditNoBudget:
		fmt.Fprintln(c.out, "no edits left this generation")
	case game.EditInvalidTarget:
		fmt.Fprintf(c.out, "no living species %d\n", species)
	case game.EditMutationRejected:
		fmt.Fprintln(c.out, "edit rejected: position must be on the sequence and base one of A T C G")
	}
}

func (c *Console) advance() {
	r, err := c.game.AdvanceGeneration()
	if errors.Is(err, game.ErrExtinct) {
		fmt.Fprintln(c.out, "every species is extinct; type start for a new game")
		return
	}
	if err != nil {
		fmt.Fprintf(c.out, "advance failed: %v\n", err)
		return
	}
	c.hud.DrawReport(r)
	if !r.Extinct {
		c.hud.DrawStatus(c.game)
	}
}
