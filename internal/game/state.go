package game

import (
	"slices"

	"github.com/lox/starmatch/internal/puzzle"
)

// State is a snapshot of one round. Methods never modify the receiver;
// transitions return a new State backed by fresh slices.
type State struct {
	Pool        []int // every number in play, fixed for the round
	Available   []int // numbers not yet matched
	Candidates  []int // the player's current guess, a subset of Available
	Stars       int   // target the candidates must sum to
	SecondsLeft int
}

// NewState starts a round: the whole pool available, nothing selected, a
// full countdown and a star count drawn from the pool.
func NewState(rng puzzle.Source) State {
	if rng == nil {
		panic("rng is required to start a round")
	}
	pool := NumberPool()
	return State{
		Pool:        pool,
		Available:   slices.Clone(pool),
		Candidates:  []int{},
		Stars:       puzzle.SampleAchievableSum(rng, pool, MaxStars),
		SecondsLeft: RoundSeconds,
	}
}

// Status derives the round's lifecycle state. Clearing the board wins even
// when the clock has also reached zero.
func (s State) Status() Status {
	switch {
	case len(s.Available) == 0:
		return Won
	case s.SecondsLeft <= 0:
		return Lost
	default:
		return Active
	}
}

// CandidatesWrong reports whether the current guess already overshoots the
// star count.
func (s State) CandidatesWrong() bool {
	return sum(s.Candidates) > s.Stars
}

// NumberStatus derives the display state of button n.
func (s State) NumberStatus(n int) NumberStatus {
	mustInPool(n)
	if !slices.Contains(s.Available, n) {
		return Used
	}
	if slices.Contains(s.Candidates, n) {
		if s.CandidatesWrong() {
			return Wrong
		}
		return Candidate
	}
	return Available
}

// Select applies a click on button n whose displayed status was current.
//
// A button displayed as used, a number already matched and a finished round
// are all left untouched. Otherwise the number leaves the guess if it is in
// it and joins it if not; the displayed status only gates the used no-op, so
// a stale one cannot put a matched number back in play. When the guess then
// sums to the star count exactly it is committed: its numbers become used,
// the guess is cleared and, unless the board is now empty, a new star count
// is drawn from the remaining numbers.
func (s State) Select(rng puzzle.Source, n int, current NumberStatus) State {
	mustInPool(n)
	if current == Used || s.Status() != Active || !slices.Contains(s.Available, n) {
		return s
	}

	var candidates []int
	if slices.Contains(s.Candidates, n) {
		candidates = without(s.Candidates, []int{n})
	} else {
		candidates = append(slices.Clone(s.Candidates), n)
	}

	next := s
	if sum(candidates) != s.Stars {
		next.Candidates = candidates
		return next
	}

	next.Available = without(s.Available, candidates)
	next.Candidates = []int{}
	if len(next.Available) > 0 {
		next.Stars = puzzle.SampleAchievableSum(rng, next.Available, MaxStars)
	}
	return next
}

// Click selects n using its current derived status.
func (s State) Click(rng puzzle.Source, n int) State {
	return s.Select(rng, n, s.NumberStatus(n))
}

// Tick takes one second off the clock while the round is active.
func (s State) Tick() State {
	if s.Status() != Active {
		return s
	}
	next := s
	next.SecondsLeft--
	return next
}
