package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/starmatch/cmd/starmatch/shared"
	"github.com/lox/starmatch/internal/fileutil"
	"github.com/lox/starmatch/internal/randutil"
	"github.com/lox/starmatch/internal/simulator"
)

// SimulateCmd plays bot rounds headless
type SimulateCmd struct {
	Rounds   int    `kong:"default='1000',help='Number of rounds to play'"`
	Strategy string `kong:"default='solver',enum='solver,random',help='Bot strategy (solver, random)'"`
	ClickMs  int    `kong:"default='500',help='Virtual milliseconds the bot spends per click'"`
	Workers  int    `kong:"default='0',help='Parallel workers (0 = GOMAXPROCS)'"`
	Seed     int64  `kong:"default='0',help='RNG seed (0 = time based)'"`
	Output   string `kong:"help='Write the JSON report to this file'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	reportLabelStyle = lipgloss.NewStyle().Width(20).Foreground(lipgloss.Color("#AAAAAA"))
)

func (c *SimulateCmd) Run() error {
	level := log.InfoLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := shared.SetupLogger(os.Stderr, level)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	seed := randutil.Seed(c.Seed)
	sim := simulator.New(simulator.Config{
		Rounds:     c.Rounds,
		Strategy:   c.Strategy,
		ClickDelay: time.Duration(c.ClickMs) * time.Millisecond,
		Workers:    c.Workers,
		Seed:       seed,
		Logger:     logger,
	})

	start := time.Now()
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Simulation timing", "elapsed", time.Since(start).Round(time.Millisecond))

	printReport(os.Stdout, report)

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "file", c.Output)
	}
	return nil
}

func printReport(w io.Writer, report *simulator.Report) {
	s := report.Session
	lo, hi := s.WinRateInterval95()

	row := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", reportLabelStyle.Render(label), value)
	}

	fmt.Fprintln(w, reportTitleStyle.Render(fmt.Sprintf("Star Match simulation: %s bot", report.Strategy)))
	fmt.Fprintln(w, strings.Repeat("─", 44))
	row("Seed", fmt.Sprintf("%d", report.Seed))
	row("Click delay", report.ClickDelay.String())
	row("Rounds", fmt.Sprintf("%d", s.Rounds))
	row("Won / Lost", fmt.Sprintf("%d / %d", s.Wins, s.Losses))
	row("Win rate", fmt.Sprintf("%.1f%% (95%% CI %.1f%% to %.1f%%)", 100*s.WinRate(), 100*lo, 100*hi))
	row("Best streak", fmt.Sprintf("%d", s.Best))
	row("Seconds left", fmt.Sprintf("%.2f ± %.2f (median %.0f)", s.MeanSecondsLeft(), s.StdDevSecondsLeft(), s.Percentile(0.5)))
	if s.Clicks > 0 {
		row("Clicks per match", fmt.Sprintf("%.2f", float64(s.Clicks)/float64(max(s.Matches, 1))))
	}
}
