package simulator

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/starmatch/internal/bot"
	"github.com/lox/starmatch/internal/game"
	"github.com/lox/starmatch/internal/randutil"
	"github.com/lox/starmatch/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds     int
	Strategy   string
	ClickDelay time.Duration // virtual time a bot spends on each click
	Workers    int
	Seed       int64
	Logger     *log.Logger
}

// Report is the outcome of a simulation batch.
type Report struct {
	Strategy   string                   `json:"strategy"`
	Seed       int64                    `json:"seed"`
	ClickDelay time.Duration            `json:"click_delay"`
	Summary    statistics.Summary       `json:"summary"`
	WinRate    float64                  `json:"win_rate"`
	Results    []statistics.RoundResult `json:"results"`
	Session    *statistics.Session      `json:"-"`
}

// Simulator plays bot rounds against the state machine on virtual time.
// Ticks are applied whenever the bot's accumulated thinking time crosses a
// whole second, so a batch runs as fast as the CPU allows.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns results in round order.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	if s.config.ClickDelay <= 0 {
		return nil, fmt.Errorf("click delay must be positive, got %s", s.config.ClickDelay)
	}
	// Fail fast on an unknown strategy before starting workers.
	if _, err := bot.New(s.config.Strategy, randutil.New(s.config.Seed), s.config.Logger); err != nil {
		return nil, err
	}

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"strategy", s.config.Strategy,
		"click_delay", s.config.ClickDelay,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	results := make([]statistics.RoundResult, s.config.Rounds)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Rounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := randutil.Derive(s.config.Seed, i)
			result, err := s.playRound(seed)
			if err != nil {
				return fmt.Errorf("round %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	session := &statistics.Session{}
	for _, r := range results {
		session.Add(r)
	}

	logger.Info("Simulation complete",
		"rounds", session.Rounds,
		"wins", session.Wins,
		"win_rate", session.WinRate())

	return &Report{
		Strategy:   s.config.Strategy,
		Seed:       s.config.Seed,
		ClickDelay: s.config.ClickDelay,
		Summary:    session.Summary(),
		WinRate:    session.WinRate(),
		Results:    results,
		Session:    session,
	}, nil
}

// playRound plays one round with a bot seeded from seed.
func (s *Simulator) playRound(seed int64) (statistics.RoundResult, error) {
	rng := randutil.New(seed)
	player, err := bot.New(s.config.Strategy, rng, s.config.Logger)
	if err != nil {
		return statistics.RoundResult{}, err
	}

	state := game.NewState(rng)
	result := statistics.RoundResult{Seed: seed}

	var elapsed time.Duration
	nextTick := time.Second
	for state.Status() == game.Active {
		elapsed += s.config.ClickDelay
		for elapsed >= nextTick && state.Status() == game.Active {
			state = state.Tick()
			nextTick += time.Second
		}
		if state.Status() != game.Active {
			break
		}

		n := player.Choose(state)
		before := len(state.Available)
		state = state.Click(rng, n)
		result.Clicks++
		if len(state.Available) < before {
			result.Matches++
		}
	}

	result.Won = state.Status() == game.Won
	result.SecondsLeft = state.SecondsLeft
	result.Duration = elapsed
	return result, nil
}
