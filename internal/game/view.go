package game

import (
	"slices"

	"github.com/lox/starmatch/internal/statistics"
)

// NumberView is one button as the presentation layer draws it.
type NumberView struct {
	Number int          `json:"number"`
	Status NumberStatus `json:"status"`
}

// View is what a presentation layer reads after every command or tick.
type View struct {
	RoundID     string             `json:"round_id"`
	Stars       int                `json:"stars"`
	SecondsLeft int                `json:"seconds_left"`
	Status      Status             `json:"status"`
	Numbers     []NumberView       `json:"numbers"`
	Candidates  []int              `json:"candidates"`
	Available   []int              `json:"available"`
	Session     statistics.Summary `json:"session"`
}

// NewView derives the presentation snapshot for s.
func NewView(roundID string, s State, session statistics.Summary) View {
	numbers := make([]NumberView, 0, len(s.Pool))
	for _, n := range s.Pool {
		numbers = append(numbers, NumberView{Number: n, Status: s.NumberStatus(n)})
	}
	return View{
		RoundID:     roundID,
		Stars:       s.Stars,
		SecondsLeft: s.SecondsLeft,
		Status:      s.Status(),
		Numbers:     numbers,
		Candidates:  slices.Clone(s.Candidates),
		Available:   slices.Clone(s.Available),
		Session:     session,
	}
}

// StatusOf returns the status of button n, or Used if n is not on the board.
func (v View) StatusOf(n int) NumberStatus {
	for _, nv := range v.Numbers {
		if nv.Number == n {
			return nv.Status
		}
	}
	return Used
}
