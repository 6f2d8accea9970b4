package game

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/starmatch/internal/gameid"
	"github.com/lox/starmatch/internal/puzzle"
	"github.com/lox/starmatch/internal/statistics"
)

var (
	// ErrEngineStopped is returned by commands sent after Run has returned.
	ErrEngineStopped = errors.New("engine stopped")

	// ErrNumberOutOfRange is returned when a selection names a number that
	// is not one of the buttons.
	ErrNumberOutOfRange = errors.New("number out of range")

	// ErrAlreadyRunning is returned when Run is called more than once.
	ErrAlreadyRunning = errors.New("engine already running")
)

type commandKind int

const (
	cmdView commandKind = iota
	cmdSelect
	cmdNewRound
	cmdTick
)

type command struct {
	kind       commandKind
	number     int
	status     NumberStatus
	withStatus bool   // status was supplied by the caller
	round      string // round a tick belongs to
	reply      chan View
}

// EngineOption configures an Engine during creation.
type EngineOption func(*Engine)

// WithIDGenerator sets the generator used to name rounds.
func WithIDGenerator(ids *gameid.Generator) EngineOption {
	return func(e *Engine) { e.ids = ids }
}

// WithTickInterval changes how much clock time one tick represents.
func WithTickInterval(d time.Duration) EngineOption {
	return func(e *Engine) { e.interval = d }
}

// WithSession records finished rounds into s.
func WithSession(s *statistics.Session) EngineOption {
	return func(e *Engine) { e.session = s }
}

// Engine serialises every state change of a game onto the goroutine running
// Run. Exported methods are safe to call from any goroutine.
type Engine struct {
	clock    quartz.Clock
	rng      puzzle.Source
	logger   *log.Logger
	ids      *gameid.Generator
	session  *statistics.Session
	interval time.Duration

	commands chan command
	done     chan struct{}
	running  atomic.Bool

	// Owned by the Run goroutine.
	state   State
	roundID string
	timer   *roundTimer
	started time.Time
	clicks  int
	matches int
}

// NewEngine creates an engine. The first round starts when Run is called.
func NewEngine(clock quartz.Clock, rng puzzle.Source, logger *log.Logger, opts ...EngineOption) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.Default()
	}

	e := &Engine{
		clock:    clock,
		rng:      rng,
		logger:   logger.WithPrefix("engine"),
		interval: time.Second,
		commands: make(chan command),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ids == nil {
		e.ids = gameid.NewGenerator(clock, nil)
	}
	if e.session == nil {
		e.session = &statistics.Session{}
	}
	return e
}

// Run starts the first round and processes commands and ticks until ctx is
// cancelled. It stops the round timer before returning.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(e.done)
	defer e.stopTimer()

	e.startRound()

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("Engine stopping", "round", e.roundID)
			return nil
		case cmd := <-e.commands:
			e.handle(cmd)
		}
	}
}

// Select clicks number n using its current status.
func (e *Engine) Select(ctx context.Context, n int) (View, error) {
	if !InPool(n) {
		return View{}, fmt.Errorf("%w: %d", ErrNumberOutOfRange, n)
	}
	return e.do(ctx, command{kind: cmdSelect, number: n})
}

// SelectWithStatus clicks number n as it was displayed with status current.
// A click displayed as used, or on a number already matched, is a no-op.
// Otherwise n is toggled by whether it is in the guess right now.
func (e *Engine) SelectWithStatus(ctx context.Context, n int, current NumberStatus) (View, error) {
	if !InPool(n) {
		return View{}, fmt.Errorf("%w: %d", ErrNumberOutOfRange, n)
	}
	return e.do(ctx, command{kind: cmdSelect, number: n, status: current, withStatus: true})
}

// NewRound discards the current round and starts a fresh one.
func (e *Engine) NewRound(ctx context.Context) (View, error) {
	return e.do(ctx, command{kind: cmdNewRound})
}

// View returns the current round as the presentation layer draws it.
func (e *Engine) View(ctx context.Context) (View, error) {
	return e.do(ctx, command{kind: cmdView})
}

func (e *Engine) do(ctx context.Context, cmd command) (View, error) {
	cmd.reply = make(chan View, 1)
	select {
	case e.commands <- cmd:
	case <-e.done:
		return View{}, ErrEngineStopped
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
	return <-cmd.reply, nil
}

func (e *Engine) handle(cmd command) {
	switch cmd.kind {
	case cmdSelect:
		e.selectNumber(cmd)
	case cmdNewRound:
		e.logger.Info("Starting new round on request", "previous", e.roundID, "status", e.state.Status())
		e.stopTimer()
		e.startRound()
	case cmdTick:
		e.tick(cmd.round)
	}

	if cmd.reply != nil {
		cmd.reply <- NewView(e.roundID, e.state, e.session.Summary())
	}
}

func (e *Engine) selectNumber(cmd command) {
	current := cmd.status
	if !cmd.withStatus {
		current = e.state.NumberStatus(cmd.number)
	}

	// A stale status cannot revive a matched number.
	if current == Used || e.state.NumberStatus(cmd.number) == Used || e.state.Status() != Active {
		e.logger.Debug("Ignoring selection", "number", cmd.number, "status", current, "round", e.state.Status())
		return
	}

	before := len(e.state.Available)
	e.state = e.state.Select(e.rng, cmd.number, current)
	e.clicks++

	if len(e.state.Available) < before {
		e.matches++
		e.logger.Debug("Matched stars",
			"number", cmd.number,
			"remaining", len(e.state.Available),
			"stars", e.state.Stars)
	} else {
		e.logger.Debug("Updated candidates",
			"number", cmd.number,
			"candidates", e.state.Candidates,
			"wrong", e.state.CandidatesWrong())
	}

	if e.state.Status() == Won {
		e.finishRound()
	}
}

func (e *Engine) tick(roundID string) {
	if roundID != e.roundID || e.timer == nil {
		e.logger.Debug("Dropping stale tick", "tick_round", roundID, "round", e.roundID)
		return
	}

	e.state = e.state.Tick()
	e.logger.Debug("Tick", "seconds_left", e.state.SecondsLeft)

	if e.state.Status() != Active {
		e.finishRound()
		return
	}
	e.timer.arm()
}

func (e *Engine) startRound() {
	e.state = NewState(e.rng)
	e.roundID = e.ids.Generate()
	e.started = e.clock.Now()
	e.clicks = 0
	e.matches = 0

	e.timer = newRoundTimer(e.clock, e.interval, e.roundID, e.postTick)
	e.timer.arm()

	e.logger.Info("Round started", "round", e.roundID, "stars", e.state.Stars, "seconds", e.state.SecondsLeft)
}

// finishRound stops the clock and records the result. The round's timer is
// cleared so later ticks for it are dropped.
func (e *Engine) finishRound() {
	e.stopTimer()

	status := e.state.Status()
	e.session.Add(statistics.RoundResult{
		RoundID:     e.roundID,
		Won:         status == Won,
		SecondsLeft: e.state.SecondsLeft,
		Matches:     e.matches,
		Clicks:      e.clicks,
		Duration:    e.clock.Now().Sub(e.started),
	})

	e.logger.Info("Round finished",
		"round", e.roundID,
		"status", status,
		"seconds_left", e.state.SecondsLeft,
		"remaining", len(e.state.Available))
}

func (e *Engine) stopTimer() {
	if e.timer != nil {
		e.timer.stop()
		e.timer = nil
	}
}

// postTick runs on the timer's goroutine and hands the tick to Run.
func (e *Engine) postTick(roundID string) {
	select {
	case e.commands <- command{kind: cmdTick, round: roundID}:
	case <-e.done:
	}
}

// roundTimer schedules one tick at a time for a single round. Once stopped
// it never schedules again.
type roundTimer struct {
	clock    quartz.Clock
	interval time.Duration
	roundID  string
	fire     func(roundID string)

	timer   *quartz.Timer
	stopped bool
}

func newRoundTimer(clock quartz.Clock, interval time.Duration, roundID string, fire func(string)) *roundTimer {
	return &roundTimer{clock: clock, interval: interval, roundID: roundID, fire: fire}
}

func (rt *roundTimer) arm() {
	if rt.stopped {
		return
	}
	rt.timer = rt.clock.AfterFunc(rt.interval, func() {
		rt.fire(rt.roundID)
	}, "round", "tick")
}

func (rt *roundTimer) stop() {
	if rt.stopped {
		return
	}
	rt.stopped = true
	if rt.timer != nil {
		rt.timer.Stop()
	}
}
