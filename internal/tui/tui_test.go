package tui

import (
	"context"
	"io"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/starmatch/internal/game"
	"github.com/lox/starmatch/internal/puzzle"
	"github.com/lox/starmatch/internal/randutil"
	"github.com/lox/starmatch/internal/statistics"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// fakeEngine applies commands straight to a State without a clock.
type fakeEngine struct {
	state     game.State
	rng       puzzle.Source
	selected  []int
	newRounds int
	err       error
}

func newFakeEngine(stars int) *fakeEngine {
	return &fakeEngine{
		state: game.State{
			Pool:        game.NumberPool(),
			Available:   game.NumberPool(),
			Candidates:  []int{},
			Stars:       stars,
			SecondsLeft: game.RoundSeconds,
		},
		rng: randutil.New(1),
	}
}

func (f *fakeEngine) snapshot() (game.View, error) {
	if f.err != nil {
		return game.View{}, f.err
	}
	return game.NewView("round_test", f.state, statistics.Summary{}), nil
}

func (f *fakeEngine) Select(_ context.Context, n int) (game.View, error) {
	f.selected = append(f.selected, n)
	f.state = f.state.Click(f.rng, n)
	return f.snapshot()
}

func (f *fakeEngine) NewRound(context.Context) (game.View, error) {
	f.newRounds++
	f.state = game.NewState(f.rng)
	return f.snapshot()
}

func (f *fakeEngine) View(context.Context) (game.View, error) {
	return f.snapshot()
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and feeds the resulting engine reply back in.
func press(t *testing.T, m *Model, s string) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(keyPress(s))
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg.(type) {
	case viewMsg, errMsg:
		m.Update(msg)
		return nil
	}
	return cmd
}

func loadedModel(t *testing.T, engine Engine) *Model {
	t.Helper()
	m := New(context.Background(), engine, quietLogger(), Options{})
	m.Update(m.fetch()())
	require.True(t, m.loaded)
	return m
}

func TestModelShowsLoadingUntilFirstView(t *testing.T) {
	m := New(context.Background(), newFakeEngine(5), quietLogger(), Options{})
	assert.Equal(t, "Loading...", m.View())
	assert.NotNil(t, m.Init())
}

func TestModelRendersBoard(t *testing.T) {
	m := loadedModel(t, newFakeEngine(5))
	out := m.View()

	assert.Contains(t, out, "Star Match")
	assert.Contains(t, out, "Pick 1 or more numbers that sum to the number of stars")
	assert.Equal(t, 5+2, strings.Count(out, "★"), "five stars plus the two in the header")
	assert.Contains(t, out, "Time Remaining: 10")
	for n := 1; n <= 9; n++ {
		assert.Contains(t, out, string(rune('0'+n)))
	}
	assert.NotContains(t, out, "game over")
}

func TestModelPicksNumbers(t *testing.T) {
	engine := newFakeEngine(5)
	m := loadedModel(t, engine)

	press(t, m, "2")
	assert.Equal(t, game.Candidate, m.view.StatusOf(2))

	press(t, m, "3")
	assert.Equal(t, game.Used, m.view.StatusOf(2))
	assert.Equal(t, game.Used, m.view.StatusOf(3))
	assert.Equal(t, []int{2, 3}, engine.selected)
}

func TestModelIgnoresPicksOnceOver(t *testing.T) {
	engine := newFakeEngine(5)
	engine.state.SecondsLeft = 0
	m := loadedModel(t, engine)
	require.Equal(t, game.Lost, m.view.Status)

	assert.Nil(t, press(t, m, "4"))
	assert.Empty(t, engine.selected)
	assert.Contains(t, m.View(), "game over")
}

func TestModelPlayAgainOnlyWhenOver(t *testing.T) {
	engine := newFakeEngine(5)
	m := loadedModel(t, engine)

	press(t, m, "enter")
	assert.Zero(t, engine.newRounds, "play again is hidden while the round is active")

	engine.state.Available = []int{}
	m.Update(m.fetch()())
	require.Equal(t, game.Won, m.view.Status)
	assert.Contains(t, m.View(), "nice")

	press(t, m, "enter")
	assert.Equal(t, 1, engine.newRounds)
	assert.Equal(t, game.Active, m.view.Status)
	assert.Equal(t, game.RoundSeconds, m.view.SecondsLeft)
	assert.Equal(t, game.NumberPool(), m.view.Available)
}

func TestModelQuits(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := loadedModel(t, newFakeEngine(5))
			cmd := press(t, m, k)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModelQuitsWhenEngineStops(t *testing.T) {
	engine := newFakeEngine(5)
	m := loadedModel(t, engine)

	engine.err = game.ErrEngineStopped
	_, cmd := m.Update(m.fetch()())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelToggleHelp(t *testing.T) {
	m := loadedModel(t, newFakeEngine(5))
	assert.False(t, m.help.ShowAll)
	press(t, m, "?")
	assert.True(t, m.help.ShowAll)
}

// TestModelFollowsEngineClock drives a real engine on a mock clock and checks
// the interface picks up ticks on refresh.
func TestModelFollowsEngineClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	engine := game.NewEngine(mClock, randutil.New(4), quietLogger())
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- engine.Run(runCtx) }()
	defer func() {
		stop()
		require.NoError(t, <-done)
	}()

	m := New(ctx, engine, quietLogger(), Options{Refresh: time.Millisecond})
	m.Update(m.fetch()())
	require.Equal(t, game.RoundSeconds, m.view.SecondsLeft)

	for range 3 {
		mClock.Advance(time.Second).MustWait(ctx)
		m.Update(m.fetch()())
	}

	assert.Equal(t, game.RoundSeconds-3, m.view.SecondsLeft)
	assert.Contains(t, m.View(), "Time Remaining: 7")
	assert.True(t, slices.Equal(game.NumberPool(), m.view.Available))
}
