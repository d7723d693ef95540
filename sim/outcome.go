package sim

import (
	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/timeline"
)

// Status classifies a ResolveTurn result
type Status uint8

const (
	// StatusIdle means no input, nothing changed
	StatusIdle Status = iota
	// StatusResolved means a turn was appended to the current timeline
	StatusResolved
	// StatusRejected means the turn was illegal, nothing changed
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusResolved:
		return "resolved"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Reason explains a rejection
type Reason uint8

const (
	ReasonNone Reason = iota
	// ReasonBlocked is an immovable occupant or the world edge in the push chain
	ReasonBlocked
	// ReasonFinished is input after the goal was reached
	ReasonFinished
	// ReasonFallen is input after the current player left the world
	ReasonFallen
)

func (r Reason) String() string {
	switch r {
	case ReasonBlocked:
		return "blocked"
	case ReasonFinished:
		return "finished"
	case ReasonFallen:
		return "fallen"
	default:
		return "none"
	}
}

// Outcome is the well-formed result of every ResolveTurn call
type Outcome struct {
	Status Status
	Reason Reason

	// Turn is the resolved turn, nil unless StatusResolved
	Turn *timeline.Turn

	// RewindQueued is set when the current player came to rest on a rewind tile
	RewindQueued bool
	// GoalReached is set when the current player came to rest on a goal tile
	GoalReached bool
	// Fallen lists entities that left the world this turn
	Fallen []entity.ID
}
