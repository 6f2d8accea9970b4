package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/starmatch/internal/game"
)

// RandBot clicks uniformly among the numbers that are not used yet.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("rand-bot")}
}

func (r *RandBot) Name() string { return "random" }

func (r *RandBot) Choose(s game.State) int {
	n := s.Available[r.rng.IntN(len(s.Available))]
	r.logger.Debug("Random click", "number", n, "stars", s.Stars)
	return n
}
