package sim

import (
	"log"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/input"
	"github.com/lixenwraith/rewind/timeline"
	"github.com/lixenwraith/rewind/vmath"
)

// ResolveTurn resolves one discrete step for every live echo
// The current player receives dir, historical echoes replay their origin timeline
// None and illegal input leave all state untouched
func (s *Simulation) ResolveTurn(dir input.Direction) Outcome {
	if dir == input.None {
		return Outcome{Status: StatusIdle}
	}
	if s.won {
		log.Printf("sim: %v ignored, level complete", dir)
		return Outcome{Status: StatusRejected, Reason: ReasonFinished}
	}
	if s.current.Fallen {
		log.Printf("sim: %v ignored, current player fell off the world", dir)
		return Outcome{Status: StatusRejected, Reason: ReasonFallen}
	}

	if !s.probe(s.UnitOf(s.current), dir.Delta()) {
		log.Printf("sim: %v blocked at %v", dir, s.UnitOf(s.current).Pos)
		return Outcome{Status: StatusRejected, Reason: ReasonBlocked}
	}

	turnIdx := s.history.TurnCounter()
	echoes := s.LiveEchoes()
	turn := timeline.Turn{
		Index:    turnIdx,
		SubTurns: make([]timeline.SubTurn, 0, len(echoes)),
	}
	for _, p := range echoes {
		d := dir
		if p != s.current {
			replayed, ok := s.history.Replay(p.ID, p.Player.Origin, turnIdx)
			if !ok {
				replayed = input.Pass
			}
			d = replayed
		}
		turn.SubTurns = append(turn.SubTurns, timeline.NewSubTurn(p.ID, d))
	}

	out := Outcome{Status: StatusResolved}
	s.beginTurn(&out)
	s.split(&turn)

	// Newest echo first, a unit moves once on behalf of all its members
	moved := make(map[entity.ID]bool, len(turn.SubTurns))
	for i := len(turn.SubTurns) - 1; i >= 0; i-- {
		st := &turn.SubTurns[i]
		p := s.store.Get(st.Echo)
		if p.Fallen {
			continue
		}
		unit := s.UnitOf(p)
		if moved[unit.ID] {
			continue
		}
		moved[unit.ID] = true

		if st.Move.IsZero() {
			continue
		}
		if !s.move(st, unit, st.Move) {
			st.Blocked = true
		}
	}

	s.placePending(&turn)
	s.detectTiles(&out)
	s.endTurn()

	s.history.Append(turn)
	out.Turn = &turn
	return out
}

func (s *Simulation) beginTurn(out *Outcome) {
	s.out = out
	s.sites = s.sites[:0]
	s.pendingAt = make(map[entity.ID]vmath.Coord)

	s.store.Each(func(e *entity.Entity) {
		switch e.Kind {
		case entity.KindPlayer:
			e.Player.Separated = false
		case entity.KindSuperposition:
			e.Super.Previous = 0
		}
	})
}

func (s *Simulation) endTurn() {
	s.out = nil
	s.sites = s.sites[:0]
	s.pendingAt = nil
}

// probe walks the push chain of unit without mutating anything
// Returns false when an immovable occupant or the world edge ends the chain
func (s *Simulation) probe(unit *entity.Entity, delta vmath.Coord) bool {
	if delta.IsZero() {
		return true
	}
	_, ok := s.chain(unit, delta)
	return ok
}

// chain collects unit and every moveable occupant ahead of it up to the first free cell
func (s *Simulation) chain(unit *entity.Entity, delta vmath.Coord) ([]*entity.Entity, bool) {
	chain := []*entity.Entity{unit}
	cur := unit.Pos
	for {
		cur = cur.Add(delta)
		if !s.grid.InBounds(cur) {
			return nil, false
		}
		id := s.grid.QueryAt(cur)
		if id == 0 {
			return chain, true
		}
		occ := s.store.Get(id)
		if s.passThrough(unit, occ) {
			return chain, true
		}
		if !occ.Moveable() {
			return nil, false
		}
		chain = append(chain, occ)
	}
}

// passThrough reports an occupant that belongs to mover's own superposition
// or split from it this turn
func (s *Simulation) passThrough(mover, occ *entity.Entity) bool {
	sup := mover.SuperpositionOf()
	if sup == 0 || occ.ID == mover.ID {
		return false
	}
	switch occ.Kind {
	case entity.KindPlayer:
		return occ.Player.Superposition == sup
	case entity.KindSuperposition:
		return occ.Super.Previous == sup
	}
	return false
}

// move displaces the chain headed by unit farthest first
// Returns false when unit itself did not leave its cell
func (s *Simulation) move(st *timeline.SubTurn, unit *entity.Entity, delta vmath.Coord) bool {
	chain, ok := s.chain(unit, delta)
	if !ok {
		return false
	}

	for i := len(chain) - 1; i >= 0; i-- {
		e := chain[i]
		if e.Fallen {
			continue
		}
		base := e.Pos
		if !s.grid.Empty(base.Add(delta)) {
			// Something settled into the vacated cell, the rest of the chain stays
			log.Printf("sim: chain stalled at %v, %d entities left behind", base, i+1)
			return false
		}
		s.step(st, e, delta)
		s.settle(st, e)
		s.rideAlong(st, base, delta)
	}
	return true
}

// step moves e by one cell and records the transition
func (s *Simulation) step(st *timeline.SubTurn, e *entity.Entity, delta vmath.Coord) {
	from := e.Pos
	to := from.Add(delta)

	if s.grid.QueryAt(from) == e.ID {
		s.grid.SetAt(from, 0)
	}
	delete(s.pendingAt, e.ID)

	s.grid.SetAt(to, e.ID)
	s.setPos(e, to)
	st.Record(e.ID, from, to)
}

func (s *Simulation) setPos(e *entity.Entity, c vmath.Coord) {
	e.Pos = c
	if e.IsSuperposition() {
		for _, id := range e.Super.Members {
			s.store.Get(id).Pos = c
		}
	}
}

// settle drops e until it rests on an occupied cell or leaves the world
func (s *Simulation) settle(st *timeline.SubTurn, e *entity.Entity) {
	for !e.Fallen {
		below := e.Pos.Add(vmath.Down)
		if below.Z < s.opts.FloorZ {
			s.fallOff(st, e, below)
			return
		}
		if s.grid.QueryAt(below) != 0 {
			return
		}
		s.step(st, e, vmath.Down)
	}
}

// rideAlong carries the moveable column standing on base by delta
// A rider whose destination is taken stays put and settles into the vacated space
func (s *Simulation) rideAlong(st *timeline.SubTurn, base, delta vmath.Coord) {
	for c := base.Add(vmath.Up); s.grid.InBounds(c); c = c.Add(vmath.Up) {
		id := s.grid.QueryAt(c)
		if id == 0 {
			return
		}
		rider := s.store.Get(id)
		if !rider.Moveable() {
			return
		}
		if s.grid.Empty(c.Add(delta)) {
			s.step(st, rider, delta)
		}
		s.settle(st, rider)
	}
}

// fallOff removes e from play, a superposition takes its members along
func (s *Simulation) fallOff(st *timeline.SubTurn, e *entity.Entity, below vmath.Coord) {
	if s.grid.QueryAt(e.Pos) == e.ID {
		s.grid.SetAt(e.Pos, 0)
	}
	delete(s.pendingAt, e.ID)
	st.Record(e.ID, e.Pos, below)

	var fallen []entity.ID
	if e.IsSuperposition() {
		for _, id := range e.Super.Members {
			m := s.store.Get(id)
			m.Pos = below
			m.Fallen = true
			m.Player.Superposition = 0
			m.Clear(entity.FlagSuper)
			fallen = append(fallen, id)
		}
		s.release(e)
	} else {
		e.Pos = below
		e.Fallen = true
		fallen = append(fallen, e.ID)
	}

	log.Printf("sim: %s %d fell off the world below z=%d", e.Kind, e.ID, s.opts.FloorZ)
	if s.out != nil {
		s.out.Fallen = append(s.out.Fallen, fallen...)
	}
}

// detectTiles checks the tile beneath the current player's resting unit
func (s *Simulation) detectTiles(out *Outcome) {
	if s.current.Fallen {
		return
	}
	unit := s.UnitOf(s.current)
	below := unit.Pos.Add(vmath.Down)
	if !s.grid.InBounds(below) {
		return
	}
	tile := s.store.Get(s.grid.QueryAt(below))
	if tile == nil {
		return
	}

	if tile.Has(entity.FlagRewind) {
		s.rewindQueue = append(s.rewindQueue, s.current.ID)
		out.RewindQueued = true
		log.Printf("sim: rewind queued at %v, timeline %d turn %d", unit.Pos, s.TimelineIndex(), s.TurnCounter())
	}
	if tile.Has(entity.FlagGoal) {
		s.won = true
		out.GoalReached = true
		log.Printf("sim: goal reached at %v, timeline %d", unit.Pos, s.TimelineIndex())
	}
}
