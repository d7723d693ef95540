package timeline

import (
	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/input"
)

// Timeline is one play-through between rewinds
type Timeline struct {
	Index int
	Turns []Turn
}

// History keeps every timeline, indexed by timeline counter then turn counter
// Earlier timelines are retained as replay sources
type History struct {
	timelines []*Timeline
}

// NewHistory creates a history with timeline 0 open
func NewHistory() *History {
	h := &History{}
	h.Begin()
	return h
}

// Begin opens a new empty timeline and returns its index
func (h *History) Begin() int {
	idx := len(h.timelines)
	h.timelines = append(h.timelines, &Timeline{Index: idx})
	return idx
}

// Current returns the open timeline
func (h *History) Current() *Timeline {
	return h.timelines[len(h.timelines)-1]
}

// CurrentIndex is the timeline counter
func (h *History) CurrentIndex() int {
	return len(h.timelines) - 1
}

// TurnCounter is the number of turns resolved in the open timeline
func (h *History) TurnCounter() int {
	return len(h.Current().Turns)
}

// Append stores a resolved turn in the open timeline
func (h *History) Append(t Turn) {
	cur := h.Current()
	cur.Turns = append(cur.Turns, t)
}

// Timeline returns timeline idx, nil if out of range
func (h *History) Timeline(idx int) *Timeline {
	if idx < 0 || idx >= len(h.timelines) {
		return nil
	}
	return h.timelines[idx]
}

// Len returns the number of timelines
func (h *History) Len() int {
	return len(h.timelines)
}

// Replay returns the direction echo used at turn in its origin timeline
// ok is false once the recording is exhausted
func (h *History) Replay(echo entity.ID, origin, turn int) (input.Direction, bool) {
	tl := h.Timeline(origin)
	if tl == nil || turn < 0 || turn >= len(tl.Turns) {
		return input.None, false
	}
	st := tl.Turns[turn].SubTurnOf(echo)
	if st == nil {
		return input.None, false
	}
	return st.Direction, true
}
