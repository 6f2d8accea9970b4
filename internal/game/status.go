package game

// NumberStatus is the display state of one numbered button. The string values
// are consumed by presentation layers and must not change.
type NumberStatus string

const (
	Available NumberStatus = "available"
	Used      NumberStatus = "used"
	Candidate NumberStatus = "candidate"
	Wrong     NumberStatus = "wrong"
)

func (s NumberStatus) String() string {
	return string(s)
}

// Status is the lifecycle state of a round.
type Status string

const (
	Active Status = "active"
	Won    Status = "won"
	Lost   Status = "lost"
)

func (s Status) String() string {
	return string(s)
}

// IsOver reports whether the round has reached a terminal state.
func (s Status) IsOver() bool {
	return s == Won || s == Lost
}
