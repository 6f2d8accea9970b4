package bot

import (
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/starmatch/internal/game"
)

// SolverBot plays perfectly: it picks one of the subsets of the available
// numbers that matches the stars and clicks its members in order. If the
// current guess cannot be completed it takes a number back out.
type SolverBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewSolverBot creates a new SolverBot instance
func NewSolverBot(rng *rand.Rand, logger *log.Logger) *SolverBot {
	return &SolverBot{rng: rng, logger: logger.WithPrefix("solver-bot")}
}

func (b *SolverBot) Name() string { return "solver" }

func (b *SolverBot) Choose(s game.State) int {
	plans := Completions(s.Available, s.Candidates, s.Stars)
	if len(plans) == 0 {
		// Nothing extends the guess; undo the most recent pick.
		n := s.Candidates[len(s.Candidates)-1]
		b.logger.Debug("Backing out candidate", "number", n, "candidates", s.Candidates)
		return n
	}

	plan := plans[b.rng.IntN(len(plans))]
	for _, n := range plan {
		if !slices.Contains(s.Candidates, n) {
			b.logger.Debug("Following plan", "number", n, "plan", plan, "stars", s.Stars)
			return n
		}
	}
	// A plan equal to the candidates would already have been committed.
	panic("solver plan adds no numbers")
}

// Completions returns every subset of available that contains all of
// candidates and sums to target, each in ascending order.
func Completions(available, candidates []int, target int) [][]int {
	var free []int
	base := 0
	for _, n := range available {
		if slices.Contains(candidates, n) {
			base += n
		} else {
			free = append(free, n)
		}
	}

	var plans [][]int
	for mask := 1; mask < 1<<len(free); mask++ {
		total := base
		for i, n := range free {
			if mask&(1<<i) != 0 {
				total += n
			}
		}
		if total != target {
			continue
		}

		plan := slices.Clone(candidates)
		for i, n := range free {
			if mask&(1<<i) != 0 {
				plan = append(plan, n)
			}
		}
		slices.Sort(plan)
		plans = append(plans, plan)
	}
	return plans
}
