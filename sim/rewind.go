package sim

import (
	"log"

	"github.com/lixenwraith/rewind/entity"
)

// RewindQueued reports a pending rewind trigger
func (s *Simulation) RewindQueued() bool {
	return len(s.rewindQueue) > 0
}

// DoRewind starts a new timeline
// The current player becomes a historical echo, crates return home, every echo
// returns to the start cell superposed with a fresh current player
func (s *Simulation) DoRewind() {
	idx := s.history.Begin()
	s.rewindQueue = s.rewindQueue[:0]
	s.current.Clear(entity.FlagCurrentPlayer)

	for _, sup := range s.store.Superpositions() {
		s.release(sup)
		sup.Super.Previous = 0
		sup.Fallen = false
	}

	players := s.store.Players()
	for _, p := range players {
		if !p.Fallen && !p.Hidden && s.grid.InBounds(p.Pos) && s.grid.QueryAt(p.Pos) == p.ID {
			s.grid.SetAt(p.Pos, 0)
		}
	}

	s.resetCrates()

	start := s.level.Start
	for _, p := range players {
		p.Fallen = false
		p.Player.Separated = false
		p.Pos = start
	}

	s.current = s.spawnCurrent(idx)
	players = append(players, s.current)

	host := s.acquire()
	host.Pos = start
	s.assign(host, players)
	s.grid.SetAt(start, host.ID)

	log.Printf("sim: rewind to timeline %d, %d echoes superposed at %v", idx, len(players), start)
}

// resetCrates returns every moveable block to its level cell
func (s *Simulation) resetCrates() {
	for _, c := range s.crates {
		e := s.store.Get(c.id)
		if !e.Fallen && s.grid.InBounds(e.Pos) && s.grid.QueryAt(e.Pos) == e.ID {
			s.grid.SetAt(e.Pos, 0)
		}
	}
	for _, c := range s.crates {
		e := s.store.Get(c.id)
		e.Fallen = false
		e.Pos = c.home
		s.grid.SetAt(c.home, e.ID)
	}
}
