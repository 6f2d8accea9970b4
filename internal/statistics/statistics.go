package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RoundResult is the outcome of one finished round.
type RoundResult struct {
	RoundID     string        `json:"round_id,omitempty"`
	Seed        int64         `json:"seed,omitempty"` // RNG seed for this round (for replay)
	Won         bool          `json:"won"`
	SecondsLeft int           `json:"seconds_left"`
	Matches     int           `json:"matches"` // committed subsets
	Clicks      int           `json:"clicks"`
	Duration    time.Duration `json:"duration"`
}

// Summary is the small tally shown alongside a live game.
type Summary struct {
	Played int `json:"played"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
	Streak int `json:"streak"` // consecutive wins ending with the latest round
}

// Session accumulates round results. It is not safe for concurrent use; the
// engine records from its run loop and the simulator merges worker results
// after they finish.
type Session struct {
	Rounds int
	Wins   int
	Losses int
	Streak int
	Best   int // longest win streak

	Clicks  int
	Matches int

	// seconds left on won rounds, for spread and percentiles
	SumSecondsLeft  float64
	SumSecondsLeft2 float64
	SecondsLeft     []float64
}

// Add incorporates a finished round.
func (s *Session) Add(result RoundResult) {
	s.Rounds++
	s.Clicks += result.Clicks
	s.Matches += result.Matches

	if !result.Won {
		s.Losses++
		s.Streak = 0
		return
	}

	s.Wins++
	s.Streak++
	if s.Streak > s.Best {
		s.Best = s.Streak
	}

	left := float64(result.SecondsLeft)
	s.SumSecondsLeft += left
	s.SumSecondsLeft2 += left * left
	s.SecondsLeft = append(s.SecondsLeft, left)
}

// Summary returns the live-game tally.
func (s *Session) Summary() Summary {
	return Summary{Played: s.Rounds, Won: s.Wins, Lost: s.Losses, Streak: s.Streak}
}

// WinRate returns the fraction of rounds won
func (s *Session) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// WinRateInterval95 returns the 95% Wilson score interval for the win rate
func (s *Session) WinRateInterval95() (float64, float64) {
	if s.Rounds == 0 {
		return 0, 0
	}
	const z = 1.96
	n := float64(s.Rounds)
	p := s.WinRate()
	denom := 1 + z*z/n
	centre := (p + z*z/(2*n)) / denom
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom
	return math.Max(0, centre-margin), math.Min(1, centre+margin)
}

// MeanSecondsLeft returns the average clock remaining on won rounds
func (s *Session) MeanSecondsLeft() float64 {
	if s.Wins == 0 {
		return 0
	}
	return s.SumSecondsLeft / float64(s.Wins)
}

// StdDevSecondsLeft returns the sample standard deviation of the clock
// remaining on won rounds
func (s *Session) StdDevSecondsLeft() float64 {
	if s.Wins < 2 {
		return 0
	}
	mean := s.MeanSecondsLeft()
	variance := (s.SumSecondsLeft2 - float64(s.Wins)*mean*mean) / float64(s.Wins-1)
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// Percentile returns the seconds left on won rounds at percentile p (0.0 to 1.0)
func (s *Session) Percentile(p float64) float64 {
	if len(s.SecondsLeft) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.SecondsLeft))
	copy(sorted, s.SecondsLeft)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Merge folds other into s. Streaks are not meaningful across merged
// batches, so the current streak is reset and only the best is kept.
func (s *Session) Merge(other *Session) {
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Clicks += other.Clicks
	s.Matches += other.Matches
	s.SumSecondsLeft += other.SumSecondsLeft
	s.SumSecondsLeft2 += other.SumSecondsLeft2
	s.SecondsLeft = append(s.SecondsLeft, other.SecondsLeft...)
	if other.Best > s.Best {
		s.Best = other.Best
	}
	s.Streak = 0
}

// Validate checks that the tallies are consistent
func (s *Session) Validate() error {
	if s.Wins+s.Losses != s.Rounds {
		return fmt.Errorf("tally mismatch: wins=%d losses=%d rounds=%d", s.Wins, s.Losses, s.Rounds)
	}
	if len(s.SecondsLeft) != s.Wins {
		return fmt.Errorf("recorded %d clock samples for %d wins", len(s.SecondsLeft), s.Wins)
	}
	if s.Best < s.Streak {
		return fmt.Errorf("best streak %d below current streak %d", s.Best, s.Streak)
	}
	return nil
}
