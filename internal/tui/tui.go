// Package tui draws a Star Match game in the terminal with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/starmatch/internal/config"
	"github.com/lox/starmatch/internal/game"
)

// Engine is the part of *game.Engine the interface drives.
type Engine interface {
	Select(ctx context.Context, n int) (game.View, error)
	NewRound(ctx context.Context) (game.View, error)
	View(ctx context.Context) (game.View, error)
}

// Options configures a Model.
type Options struct {
	Theme   config.Theme
	Refresh time.Duration // how often the clock is re-read
}

// viewMsg carries a fresh snapshot from the engine
type viewMsg struct{ view game.View }

// errMsg reports a failed engine command
type errMsg struct{ err error }

// refreshMsg asks the model to re-read the engine
type refreshMsg struct{}

// Model is the Bubble Tea model for one game session.
type Model struct {
	ctx    context.Context
	engine Engine
	logger *log.Logger

	keys    keyMap
	help    help.Model
	timer   progress.Model
	styles  NumberStyles
	refresh time.Duration

	view     game.View
	loaded   bool
	err      error
	quitting bool
}

// New creates a model driving engine. Engine calls use ctx.
func New(ctx context.Context, engine Engine, logger *log.Logger, opts Options) *Model {
	if opts.Refresh <= 0 {
		opts.Refresh = 100 * time.Millisecond
	}
	if opts.Theme == (config.Theme{}) {
		opts.Theme = config.DefaultTheme()
	}

	return &Model{
		ctx:    ctx,
		engine: engine,
		logger: logger.WithPrefix("tui"),
		keys:   defaultKeyMap(),
		help:   help.New(),
		timer: progress.New(
			progress.WithSolidFill("#7D56F4"),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		),
		styles:  NewNumberStyles(opts.Theme),
		refresh: opts.Refresh,
	}
}

// Init fetches the first snapshot and starts the refresh loop
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.scheduleRefresh())
}

func (m *Model) fetch() tea.Cmd {
	return func() tea.Msg {
		return toMsg(m.engine.View(m.ctx))
	}
}

func (m *Model) pick(n int) tea.Cmd {
	return func() tea.Msg {
		return toMsg(m.engine.Select(m.ctx, n))
	}
}

func (m *Model) playAgain() tea.Cmd {
	return func() tea.Msg {
		return toMsg(m.engine.NewRound(m.ctx))
	}
}

func (m *Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func toMsg(v game.View, err error) tea.Msg {
	if err != nil {
		return errMsg{err: err}
	}
	return viewMsg{view: v}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		if msg.view.RoundID != m.view.RoundID {
			m.logger.Debug("Showing round", "round", msg.view.RoundID, "stars", msg.view.Stars)
		}
		m.view = msg.view
		m.loaded = true
		m.err = nil

	case errMsg:
		m.err = msg.err
		if errors.Is(msg.err, game.ErrEngineStopped) || errors.Is(msg.err, context.Canceled) {
			m.quitting = true
			return m, tea.Quit
		}
		m.logger.Error("Engine command failed", "error", msg.err)

	case refreshMsg:
		return m, tea.Batch(m.fetch(), m.scheduleRefresh())

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Pick):
		// Buttons are disabled outside an active round.
		if !m.loaded || m.view.Status != game.Active {
			return nil
		}
		n := int(msg.String()[0] - '0')
		m.logger.Debug("Picked number", "number", n, "status", m.view.StatusOf(n))
		return m.pick(n)

	case key.Matches(msg, m.keys.PlayAgain):
		if !m.loaded || !m.view.Status.IsOver() {
			return nil
		}
		return m.playAgain()
	}
	return nil
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("★ Star Match ★"))
	b.WriteString("\n\n")
	b.WriteString(HelpTextStyle.Render("Pick 1 or more numbers that sum to the number of stars"))
	b.WriteString("\n\n")

	left := m.renderStars()
	if m.view.Status.IsOver() {
		left = m.renderPlayAgain()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Width(22).Render(left),
		" ",
		PanelStyle.Render(m.renderNumbers()),
	)
	b.WriteString(body)
	b.WriteString("\n\n")

	b.WriteString(m.renderTimer())
	b.WriteString("\n")
	b.WriteString(m.renderSession())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderStars lays the stars out three to a row
func (m *Model) renderStars() string {
	var rows []string
	for i := 0; i < m.view.Stars; i += 3 {
		count := min(3, m.view.Stars-i)
		rows = append(rows, strings.TrimSpace(strings.Repeat("★ ", count)))
	}
	return StarStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderPlayAgain() string {
	message := SuccessStyle.Render("nice")
	if m.view.Status == game.Lost {
		message = ErrorStyle.Render("game over")
	}
	return message + "\n\n" + InfoStyle.Render("enter: play again")
}

// renderNumbers draws the 3x3 button grid
func (m *Model) renderNumbers() string {
	var rows []string
	var row []string
	for _, nv := range m.view.Numbers {
		style := m.styles[nv.Status]
		if m.view.Status != game.Active {
			style = style.Faint(true)
		}
		row = append(row, style.Render(fmt.Sprintf("%d", nv.Number)))
		if len(row) == 3 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n\n")
}

func (m *Model) renderTimer() string {
	fraction := float64(m.view.SecondsLeft) / float64(game.RoundSeconds)
	return m.timer.ViewAs(fraction) + " " +
		TimerStyle.Render(fmt.Sprintf("Time Remaining: %d", m.view.SecondsLeft))
}

func (m *Model) renderSession() string {
	s := m.view.Session
	return InfoStyle.Render(fmt.Sprintf("Played %d · Won %d · Lost %d · Streak %d", s.Played, s.Won, s.Lost, s.Streak))
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctx context.Context, engine Engine, logger *log.Logger, opts Options) error {
	model := New(ctx, engine, logger, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
