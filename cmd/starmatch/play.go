package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/starmatch/cmd/starmatch/shared"
	"github.com/lox/starmatch/internal/config"
	"github.com/lox/starmatch/internal/game"
	"github.com/lox/starmatch/internal/randutil"
	"github.com/lox/starmatch/internal/statistics"
	"github.com/lox/starmatch/internal/tui"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

// PlayCmd runs the interactive game
type PlayCmd struct {
	Config  string `kong:"default='starmatch.hcl',help='Path to the HCL config file'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (overrides config)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
	NoColor bool   `kong:"help='Disable colours'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	level := cfg.LogLevel()
	if c.Debug {
		level = log.DebugLevel
	}
	logger, closeLog, err := shared.SetupFileLogger(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closeLog()

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	seed := cfg.Game.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	seed = randutil.Seed(seed)
	logger.Info("Starting game", "seed", seed, "config", c.Config)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	session := &statistics.Session{}
	engine := game.NewEngine(quartz.NewReal(), randutil.New(seed), logger, game.WithSession(session))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(ctx)
	})
	g.Go(func() error {
		// Quitting the interface ends the engine too.
		defer cancel()
		return tui.Run(ctx, engine, logger, tui.Options{
			Theme:   *cfg.UI.Theme,
			Refresh: cfg.RefreshInterval(),
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("Session finished",
		"played", session.Rounds,
		"won", session.Wins,
		"lost", session.Losses,
		"best_streak", session.Best)
	return nil
}
