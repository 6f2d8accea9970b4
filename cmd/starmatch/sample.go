package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/starmatch/internal/game"
	"github.com/lox/starmatch/internal/puzzle"
	"github.com/lox/starmatch/internal/randutil"
)

// SampleCmd draws star counts and prints the observed distribution
type SampleCmd struct {
	Pool    []int `kong:"default='1,2,3,4,5,6,7,8,9',help='Available numbers to draw from'"`
	Ceiling int   `kong:"default='9',help='Largest sum that may be drawn'"`
	Draws   int   `kong:"default='10000',help='Number of draws'"`
	Seed    int64 `kong:"default='0',help='RNG seed (0 = time based)'"`
}

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))

func (c *SampleCmd) Run() error {
	if err := c.validate(); err != nil {
		return err
	}
	rng := randutil.New(randutil.Seed(c.Seed))

	observed := make(map[int]int)
	for range c.Draws {
		observed[puzzle.SampleAchievableSum(rng, c.Pool, c.Ceiling)]++
	}
	printHistogram(os.Stdout, puzzle.Distribution(c.Pool, c.Ceiling), observed, c.Draws)
	return nil
}

func (c *SampleCmd) validate() error {
	if len(c.Pool) == 0 {
		return fmt.Errorf("pool must not be empty")
	}
	// Every subset is enumerated, so the pool is capped at the board size.
	if len(c.Pool) > game.MaxNumber {
		return fmt.Errorf("pool holds at most %d numbers, got %d", game.MaxNumber, len(c.Pool))
	}
	seen := make(map[int]bool, len(c.Pool))
	for _, n := range c.Pool {
		if n < game.MinNumber {
			return fmt.Errorf("pool numbers must be positive, got %d", n)
		}
		if seen[n] {
			return fmt.Errorf("pool numbers must be distinct, %d appears twice", n)
		}
		seen[n] = true
	}
	if c.Ceiling < 1 {
		return fmt.Errorf("ceiling must be positive, got %d", c.Ceiling)
	}
	if c.Draws <= 0 {
		return fmt.Errorf("draws must be positive, got %d", c.Draws)
	}
	if len(puzzle.AchievableSums(c.Pool, c.Ceiling)) == 0 {
		return fmt.Errorf("no subset of %v sums to %d or less", c.Pool, c.Ceiling)
	}
	return nil
}

// printHistogram lists each achievable sum with its expected share, the
// observed share, and a bar scaled to the most frequent sum.
func printHistogram(w io.Writer, expected, observed map[int]int, draws int) {
	sums := make([]int, 0, len(expected))
	total := 0
	for sum, count := range expected {
		sums = append(sums, sum)
		total += count
	}
	slices.Sort(sums)

	peak := 0
	for _, n := range observed {
		peak = max(peak, n)
	}

	const width = 40
	fmt.Fprintf(w, "%4s %9s %9s\n", "sum", "expected", "observed")
	for _, sum := range sums {
		want := float64(expected[sum]) / float64(total)
		got := float64(observed[sum]) / float64(draws)
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", observed[sum]*width/peak)
		}
		fmt.Fprintf(w, "%4d %8.2f%% %8.2f%% %s\n", sum, 100*want, 100*got, barStyle.Render(bar))
	}
}
