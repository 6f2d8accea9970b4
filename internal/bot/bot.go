// Package bot provides automated Star Match players used by the simulator.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/starmatch/internal/game"
)

// Player picks the next button to click.
type Player interface {
	Name() string
	// Choose returns the number to click in state s, which must be active.
	Choose(s game.State) int
}

// Strategies lists the names accepted by New.
var Strategies = []string{"solver", "random"}

// New creates the bot registered under name.
func New(name string, rng *rand.Rand, logger *log.Logger) (Player, error) {
	switch name {
	case "solver":
		return NewSolverBot(rng, logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, Strategies)
	}
}
