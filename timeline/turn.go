package timeline

import (
	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/input"
	"github.com/lixenwraith/rewind/vmath"
)

// SubTurn is one echo's resolved move within a turn
type SubTurn struct {
	Echo      entity.ID
	Direction input.Direction
	Move      vmath.Coord

	// Order lists displaced entities by first displacement, each once
	Order []entity.ID
	// From is the cell each displaced entity started from
	From map[entity.ID]vmath.Coord
	// Paths holds the cells traversed, start cell excluded
	Paths map[entity.ID][]vmath.Coord

	// Blocked is set when the echo's own push chain could not move
	Blocked bool
	// Collapsed is set when the echo split from its superposition this turn
	Collapsed bool
}

// NewSubTurn creates an empty record for echo moving in dir
func NewSubTurn(echo entity.ID, dir input.Direction) SubTurn {
	return SubTurn{
		Echo:      echo,
		Direction: dir,
		Move:      dir.Delta(),
		From:      make(map[entity.ID]vmath.Coord),
		Paths:     make(map[entity.ID][]vmath.Coord),
	}
}

// Record appends one cell transition of id
// Consecutive transitions of the same entity extend its path
func (st *SubTurn) Record(id entity.ID, from, to vmath.Coord) {
	if _, ok := st.From[id]; !ok {
		st.From[id] = from
		st.Order = append(st.Order, id)
	}
	st.Paths[id] = append(st.Paths[id], to)
}

// Empty reports no displacement
func (st *SubTurn) Empty() bool {
	return len(st.Order) == 0
}

// Final returns the last recorded cell of id
func (st *SubTurn) Final(id entity.ID) (vmath.Coord, bool) {
	p := st.Paths[id]
	if len(p) == 0 {
		return vmath.Coord{}, false
	}
	return p[len(p)-1], true
}

// Turn is the ordered set of subturns resolved for one TurnCounter value
// SubTurns[0] is the oldest echo, the last is the current player
type Turn struct {
	Index    int
	SubTurns []SubTurn
}

// SubTurnOf returns the subturn of echo, nil if absent
func (t *Turn) SubTurnOf(echo entity.ID) *SubTurn {
	for i := range t.SubTurns {
		if t.SubTurns[i].Echo == echo {
			return &t.SubTurns[i]
		}
	}
	return nil
}

// Moved reports whether any subturn displaced anything
func (t *Turn) Moved() bool {
	for i := range t.SubTurns {
		if !t.SubTurns[i].Empty() {
			return true
		}
	}
	return false
}
