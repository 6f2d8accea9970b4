package simulator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestSolverWinsEveryRound(t *testing.T) {
	sim := New(Config{
		Rounds:     50,
		Strategy:   "solver",
		ClickDelay: 250 * time.Millisecond,
		Workers:    4,
		Seed:       42,
		Logger:     quietLogger(),
	})

	report, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 50)

	for i, r := range report.Results {
		assert.True(t, r.Won, "round %d", i)
		assert.Equal(t, 9, r.Clicks, "round %d", i)
		// nine clicks take 2.25s of virtual time: two ticks
		assert.Equal(t, 8, r.SecondsLeft, "round %d", i)
	}
	assert.Equal(t, 50, report.Session.Wins)
	assert.InDelta(t, 1.0, report.WinRate, 1e-9)
	require.NoError(t, report.Session.Validate())
}

func TestSlowSolverRunsOutOfTime(t *testing.T) {
	sim := New(Config{
		Rounds:     10,
		Strategy:   "solver",
		ClickDelay: 2 * time.Second,
		Seed:       1,
		Logger:     quietLogger(),
	})

	report, err := sim.Run(context.Background())
	require.NoError(t, err)
	for _, r := range report.Results {
		assert.False(t, r.Won)
		assert.Zero(t, r.SecondsLeft)
		assert.Equal(t, 4, r.Clicks, "clicks at 2s, 4s, 6s, 8s before the clock hits zero at 10s")
	}
	assert.Equal(t, 10, report.Summary.Lost)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) *Report {
		report, err := New(Config{
			Rounds:     40,
			Strategy:   "random",
			ClickDelay: 100 * time.Millisecond,
			Workers:    workers,
			Seed:       7,
			Logger:     quietLogger(),
		}).Run(context.Background())
		require.NoError(t, err)
		return report
	}

	assert.Equal(t, run(1).Results, run(8).Results)
}

func TestRandomBotLosesMoreThanSolver(t *testing.T) {
	cfg := Config{Rounds: 200, ClickDelay: 300 * time.Millisecond, Seed: 3, Logger: quietLogger()}

	cfg.Strategy = "random"
	random, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Strategy = "solver"
	solver, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Less(t, random.WinRate, solver.WinRate)
	for _, r := range random.Results {
		assert.Positive(t, r.Clicks)
	}
}

func TestRunValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no rounds", Config{Strategy: "solver", ClickDelay: time.Second}},
		{"no delay", Config{Rounds: 1, Strategy: "solver"}},
		{"unknown strategy", Config{Rounds: 1, Strategy: "psychic", ClickDelay: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = quietLogger()
			_, err := New(tt.cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{
		Rounds:     10,
		Strategy:   "solver",
		ClickDelay: time.Second,
		Workers:    1,
		Logger:     quietLogger(),
	}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
